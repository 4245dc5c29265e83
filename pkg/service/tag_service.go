package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskio/taskboard/pkg/models"
	"github.com/taskio/taskboard/pkg/repository"
)

// PaginatedTags is one page of tags.
type PaginatedTags struct {
	Tags        []models.Tag `json:"tags"`
	CurrentPage int          `json:"currentPage"`
	PageSize    int          `json:"pageSize"`
}

// TagPatch lists the tag fields a partial update may carry.
type TagPatch struct {
	Title *string `json:"title"`
}

// TagService implements the tag catalog. Plain CRUD, no cross-entity
// authorization.
type TagService struct {
	tags *repository.TagRepository
}

func NewTagService(tags *repository.TagRepository) *TagService {
	return &TagService{tags: tags}
}

func (s *TagService) Create(title string) (*models.Tag, error) {
	tag := &models.Tag{Title: title}
	if err := s.tags.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) List(page, size int) (*PaginatedTags, error) {
	if page <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}

	tags, err := s.tags.List(page, size)
	if err != nil {
		return nil, err
	}

	return &PaginatedTags{
		Tags:        tags,
		CurrentPage: page,
		PageSize:    len(tags),
	}, nil
}

func (s *TagService) Get(id uint) (*models.Tag, error) {
	tag, err := s.tags.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tag with id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Update(id uint, patch TagPatch) (*models.Tag, error) {
	tag, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		tag.Title = *patch.Title
	}

	if err := s.tags.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.tags.Delete(id)
}
