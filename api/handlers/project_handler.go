package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/taskio/taskboard/pkg/service"
)

// ProjectHandler serves the project registry.
type ProjectHandler struct {
	projects *service.ProjectService
}

func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// CreateProjectInput DTO for creating a new project
type CreateProjectInput struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Settings    datatypes.JSON `json:"settings"`
}

// Create creates a new project owned by the token subject.
func (h *ProjectHandler) Create(c *gin.Context) {
	var input CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.Create(service.CreateProject{
		Name:        input.Name,
		Description: input.Description,
		Settings:    input.Settings,
	}, c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// List returns one page of projects, optionally filtered by creator.
func (h *ProjectHandler) List(c *gin.Context) {
	page, size := pageParams(c)

	result, err := h.projects.List(page, size, uintQuery(c, "creatorId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns a project with its creator, members and tasks.
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	project, err := h.projects.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Update applies a partial update to a project.
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var patch service.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.Update(id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Delete removes a project.
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.projects.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// AddMembersInput DTO for adding members to a project
type AddMembersInput struct {
	MemberIDs []uint `json:"memberIds" binding:"required"`
}

// AddMembers unions the given users into the member set. Creator only.
func (h *ProjectHandler) AddMembers(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input AddMembersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.AddMembers(id, input.MemberIDs, c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}
