package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/taskio/taskboard/pkg/auth"
	"github.com/taskio/taskboard/pkg/repository"
)

// AuthService exchanges credentials for signed tokens.
type AuthService struct {
	users  *repository.UserRepository
	issuer *auth.Issuer
}

func NewAuthService(users *repository.UserRepository, issuer *auth.Issuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

// Login validates the email/password pair against the stored hash and
// issues a token with the user id as subject. Unknown emails and
// password mismatches are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.users.ByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", ErrInvalidCredentials
	}

	return s.issuer.Issue(user.ID)
}
