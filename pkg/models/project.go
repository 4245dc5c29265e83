package models

import (
	"time"

	"gorm.io/datatypes"
)

// Project represents a project in the system. The creator is fixed at
// creation time and is always part of the member set.
type Project struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Settings    datatypes.JSON `json:"settings,omitempty"`
	CreatorID   uint           `json:"creator_id" gorm:"not null;index:idx_projects_creator"`
	CreatedAt   time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// Foreign Key Relations
	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`

	// One-to-Many Relations
	Tasks []*Task `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`

	// Many-to-Many Relations
	Members []*User `json:"members,omitempty" gorm:"many2many:project_members"`
}
