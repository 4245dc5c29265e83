package models

import (
	"time"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// Task represents a task in the system. A task always belongs to
// exactly one project and carries at least one tag from creation.
type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	ProjectID   uint       `json:"project_id" gorm:"not null;index:idx_tasks_project_status"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status" gorm:"not null;type:varchar(50);index:idx_tasks_project_status"`
	CreatedAt   time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// Foreign Key Relations
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`

	// Many-to-Many Relations
	Tags      []*Tag  `json:"tags,omitempty" gorm:"many2many:task_tags"`
	Assignees []*User `json:"assignees,omitempty" gorm:"many2many:task_assignees"`
}

// Completed reports whether the task has reached its terminal status.
func (t *Task) Completed() bool {
	return t.Status == TaskStatusCompleted
}
