package repository

import (
	"gorm.io/gorm"

	"github.com/taskio/taskboard/pkg/models"
)

// TagRepository handles tag persistence.
type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

func (r *TagRepository) List(page, size int) ([]models.Tag, error) {
	var tags []models.Tag
	offset := (page - 1) * size
	err := r.db.Offset(offset).Limit(size).Order("id").Find(&tags).Error
	return tags, err
}

func (r *TagRepository) ByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepository) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

func (r *TagRepository) Delete(id uint) error {
	return r.db.Delete(&models.Tag{}, id).Error
}
