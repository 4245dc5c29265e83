package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskio/taskboard/pkg/auth"
	"github.com/taskio/taskboard/pkg/models"
	"github.com/taskio/taskboard/pkg/repository"
)

// PaginatedUsers is one page of credential-stripped users.
type PaginatedUsers struct {
	Users       []models.SimpleUser `json:"users"`
	CurrentPage int                 `json:"currentPage"`
	PageSize    int                 `json:"pageSize"`
}

// UserPatch lists the user fields a partial update may carry. Nil
// fields are left untouched.
type UserPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserService implements the user directory rules.
type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register creates a user with a hashed password. The email must not
// already be taken.
func (s *UserService) Register(name, email, password string) (models.SimpleUser, error) {
	_, err := s.users.ByEmail(email)
	if err == nil {
		return models.SimpleUser{}, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.SimpleUser{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.SimpleUser{}, err
	}

	user := &models.User{Name: name, Email: email, Password: hash}
	if err := s.users.Create(user); err != nil {
		return models.SimpleUser{}, err
	}

	return user.Simple(), nil
}

// List returns one page of users. The page number is validated before
// the store is touched.
func (s *UserService) List(page, size int) (*PaginatedUsers, error) {
	if page <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}

	users, err := s.users.List(page, size)
	if err != nil {
		return nil, err
	}

	simple := make([]models.SimpleUser, len(users))
	for i := range users {
		simple[i] = users[i].Simple()
	}

	return &PaginatedUsers{
		Users:       simple,
		CurrentPage: page,
		PageSize:    len(simple),
	}, nil
}

func (s *UserService) Get(id uint) (models.SimpleUser, error) {
	user, err := s.users.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SimpleUser{}, fmt.Errorf("%w: user with id %d", ErrNotFound, id)
		}
		return models.SimpleUser{}, err
	}
	return user.Simple(), nil
}

// Update applies a partial update and returns the post-update
// projection. A provided password is re-hashed before storage.
func (s *UserService) Update(id uint, patch UserPatch) (models.SimpleUser, error) {
	user, err := s.users.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SimpleUser{}, fmt.Errorf("%w: user with id %d", ErrNotFound, id)
		}
		return models.SimpleUser{}, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return models.SimpleUser{}, err
		}
		user.Password = hash
	}

	if err := s.users.Update(user); err != nil {
		return models.SimpleUser{}, err
	}
	return user.Simple(), nil
}

func (s *UserService) Delete(id uint) error {
	if _, err := s.users.ByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user with id %d", ErrNotFound, id)
		}
		return err
	}
	return s.users.Delete(id)
}
