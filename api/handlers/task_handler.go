package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskio/taskboard/pkg/models"
	"github.com/taskio/taskboard/pkg/service"
)

// TaskHandler serves the task board.
type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// CreateTaskInput DTO for creating a new task
type CreateTaskInput struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	ProjectID   uint              `json:"projectId" binding:"required"`
	Tags        []uint            `json:"tags"`
}

// Create creates a new task in a project the token subject belongs to.
func (h *TaskHandler) Create(c *gin.Context) {
	var input CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Create(service.CreateTask{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		ProjectID:   input.ProjectID,
		TagIDs:      input.Tags,
	}, c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// List returns one page of tasks, optionally narrowed by status and/or
// project.
func (h *TaskHandler) List(c *gin.Context) {
	page, size := pageParams(c)

	var status *models.TaskStatus
	if raw := c.Query("status"); raw != "" {
		s := models.TaskStatus(raw)
		status = &s
	}

	result, err := h.tasks.List(page, size, status, uintQuery(c, "projectId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns a task with its tags and assignees.
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Update applies a partial update to a task. Completed tasks reject
// every field update.
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var patch service.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Update(id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete removes a task.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// AddTagsInput DTO for adding tags to a task
type AddTagsInput struct {
	TagIDs []uint `json:"tagIds" binding:"required"`
}

// AddTags unions the given tags into the task's tag set.
func (h *TaskHandler) AddTags(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input AddTagsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.AddTags(id, input.TagIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// AddAssigneeInput DTO for assigning a user to a task
type AddAssigneeInput struct {
	UserID uint `json:"userId" binding:"required"`
}

// AddAssignee adds an existing user to the task's assignee set.
func (h *TaskHandler) AddAssignee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input AddAssigneeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.AddAssignee(id, input.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}
