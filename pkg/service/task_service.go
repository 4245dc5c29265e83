package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskio/taskboard/pkg/models"
	"github.com/taskio/taskboard/pkg/repository"
)

// PaginatedTasks is one page of tasks.
type PaginatedTasks struct {
	Tasks       []models.Task `json:"tasks"`
	CurrentPage int           `json:"currentPage"`
	PageSize    int           `json:"pageSize"`
}

// CreateTask carries the fields of a new task.
type CreateTask struct {
	Title       string
	Description string
	Status      models.TaskStatus
	ProjectID   uint
	TagIDs      []uint
}

// TaskPatch lists the task fields a partial update may carry. Status
// transitions are unrestricted in direction; COMPLETED only blocks
// further patches once stored.
type TaskPatch struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status"`
}

// TaskService implements the task board rules.
type TaskService struct {
	tasks    *repository.TaskRepository
	projects *repository.ProjectRepository
	users    *UserService
}

func NewTaskService(tasks *repository.TaskRepository, projects *repository.ProjectRepository, users *UserService) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, users: users}
}

// Create persists a task in the given project. The caller must be a
// member of that project and supply at least one tag.
func (s *TaskService) Create(input CreateTask, bearer string) (*models.Task, error) {
	userID, err := subjectFromBearer(bearer)
	if err != nil {
		return nil, err
	}

	isMember, err := s.projects.IsMember(input.ProjectID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotMember
	}

	if len(input.TagIDs) == 0 {
		return nil, ErrNoTags
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusPending
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		ProjectID:   input.ProjectID,
	}
	if err := s.tasks.Create(task, input.TagIDs); err != nil {
		return nil, err
	}
	return s.Get(task.ID)
}

// List returns one page of tasks, optionally narrowed by status and/or
// project.
func (s *TaskService) List(page, size int, status *models.TaskStatus, projectID *uint) (*PaginatedTasks, error) {
	if page <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}

	tasks, err := s.tasks.List(page, size, status, projectID)
	if err != nil {
		return nil, err
	}

	return &PaginatedTasks{
		Tasks:       tasks,
		CurrentPage: page,
		PageSize:    len(tasks),
	}, nil
}

// Get returns the task with tags and assignees attached.
func (s *TaskService) Get(id uint) (*models.Task, error) {
	task, err := s.tasks.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task with id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return task, nil
}

// Update applies a partial update. A task whose stored status is
// COMPLETED rejects every field update.
func (s *TaskService) Update(id uint, patch TaskPatch) (*models.Task, error) {
	task, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if task.Completed() {
		return nil, ErrTaskCompleted
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}

	if err := s.tasks.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.tasks.Delete(id)
}

// AddTags unions the given tag ids into the task's tag set. Unlike
// field updates, this is permitted on COMPLETED tasks.
func (s *TaskService) AddTags(id uint, tagIDs []uint) (*models.Task, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	return s.tasks.AddTags(id, tagIDs)
}

// AddAssignee adds an existing user to the task's assignee set. The
// user is resolved through the user directory first, so an unknown
// user id leaves the assignee set untouched.
func (s *TaskService) AddAssignee(taskID, userID uint) (*models.Task, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.Get(taskID); err != nil {
		return nil, err
	}

	if err := s.tasks.AddAssignee(taskID, user.ID); err != nil {
		return nil, err
	}
	return s.Get(taskID)
}
