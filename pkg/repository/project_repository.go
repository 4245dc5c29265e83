package repository

import (
	"gorm.io/gorm"

	"github.com/taskio/taskboard/pkg/models"
)

// ProjectRepository handles project persistence, including the
// project_members join table.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create persists the project and enrolls its creator as a member in
// the same transaction, so the creator-in-members invariant holds from
// the first read.
func (r *ProjectRepository) Create(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		return tx.Exec(
			"INSERT INTO project_members (project_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			project.ID, project.CreatorID,
		).Error
	})
}

// List returns one page of projects, optionally restricted to a
// creator.
func (r *ProjectRepository) List(page, size int, creatorID *uint) ([]models.Project, error) {
	var projects []models.Project
	offset := (page - 1) * size

	query := r.db.Offset(offset).Limit(size).Order("id")
	if creatorID != nil {
		query = query.Where("creator_id = ?", *creatorID)
	}

	err := query.Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) ByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Preload("Creator").
		Preload("Members").
		Preload("Tasks").
		First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

func (r *ProjectRepository) Delete(id uint) error {
	return r.db.Delete(&models.Project{}, id).Error
}

// AddMembers unions the given user ids into the project's member set.
// Re-adding an existing member is a no-op.
func (r *ProjectRepository) AddMembers(projectID uint, memberIDs []uint) (*models.Project, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, userID := range memberIDs {
			if err := tx.Exec(
				"INSERT INTO project_members (project_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
				projectID, userID,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.ByID(projectID)
}

// IsMember reports whether the user belongs to the project's member
// set. The creator counts as a member through its join row.
func (r *ProjectRepository) IsMember(projectID, userID uint) (bool, error) {
	var count int64
	err := r.db.Table("project_members").
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}
