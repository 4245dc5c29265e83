package repository

import (
	"gorm.io/gorm"

	"github.com/taskio/taskboard/pkg/models"
)

// TaskRepository handles task persistence, including the task_tags and
// task_assignees join tables.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create persists the task and attaches the given tags in the same
// transaction.
func (r *TaskRepository) Create(task *models.Task, tagIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			if err := tx.Exec(
				"INSERT INTO task_tags (task_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
				task.ID, tagID,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns one page of tasks with their tags and assignees,
// optionally narrowed by status and/or project.
func (r *TaskRepository) List(page, size int, status *models.TaskStatus, projectID *uint) ([]models.Task, error) {
	var tasks []models.Task
	offset := (page - 1) * size

	query := r.db.
		Preload("Tags").
		Preload("Assignees").
		Offset(offset).Limit(size).Order("id")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	err := query.Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ByID(id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Preload("Tags").
		Preload("Assignees").
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

func (r *TaskRepository) Delete(id uint) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// AddTags unions the given tag ids into the task's tag set.
func (r *TaskRepository) AddTags(taskID uint, tagIDs []uint) (*models.Task, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, tagID := range tagIDs {
			if err := tx.Exec(
				"INSERT INTO task_tags (task_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
				taskID, tagID,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.ByID(taskID)
}

// AddAssignee adds the user to the task's assignee set. Re-adding an
// existing assignee is a no-op.
func (r *TaskRepository) AddAssignee(taskID, userID uint) error {
	return r.db.Exec(
		"INSERT INTO task_assignees (task_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		taskID, userID,
	).Error
}
