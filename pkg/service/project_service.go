package service

import (
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/taskio/taskboard/pkg/models"
	"github.com/taskio/taskboard/pkg/repository"
)

// PaginatedProjects is one page of projects.
type PaginatedProjects struct {
	Projects    []models.Project `json:"projects"`
	CurrentPage int              `json:"currentPage"`
	PageSize    int              `json:"pageSize"`
}

// CreateProject carries the fields of a new project. The creator comes
// from the bearer token, never from the payload.
type CreateProject struct {
	Name        string
	Description string
	Settings    datatypes.JSON
}

// ProjectPatch lists the project fields a partial update may carry.
type ProjectPatch struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Settings    datatypes.JSON `json:"settings"`
}

// ProjectService implements the project registry rules.
type ProjectService struct {
	projects *repository.ProjectRepository
}

func NewProjectService(projects *repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// Create persists a project whose creator is the token subject. The
// creator is enrolled as a member at creation.
func (s *ProjectService) Create(input CreateProject, bearer string) (*models.Project, error) {
	userID, err := subjectFromBearer(bearer)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		Settings:    input.Settings,
		CreatorID:   userID,
	}
	if err := s.projects.Create(project); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns one page of projects, optionally filtered by creator.
func (s *ProjectService) List(page, size int, creatorID *uint) (*PaginatedProjects, error) {
	if page <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}

	projects, err := s.projects.List(page, size, creatorID)
	if err != nil {
		return nil, err
	}

	return &PaginatedProjects{
		Projects:    projects,
		CurrentPage: page,
		PageSize:    len(projects),
	}, nil
}

// Get returns the project with creator, members and tasks attached.
func (s *ProjectService) Get(id uint) (*models.Project, error) {
	project, err := s.projects.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project with id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Update(id uint, patch ProjectPatch) (*models.Project, error) {
	project, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		project.Name = *patch.Name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Settings != nil {
		project.Settings = patch.Settings
	}

	if err := s.projects.Update(project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.projects.Delete(id)
}

// AddMembers unions the given user ids into the member set. Only the
// project's creator may do this.
func (s *ProjectService) AddMembers(id uint, memberIDs []uint, bearer string) (*models.Project, error) {
	userID, err := subjectFromBearer(bearer)
	if err != nil {
		return nil, err
	}

	project, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if project.CreatorID != userID {
		return nil, ErrNotCreator
	}

	return s.projects.AddMembers(id, memberIDs)
}
