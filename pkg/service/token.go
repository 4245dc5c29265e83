package service

import (
	"fmt"
	"strings"

	"github.com/taskio/taskboard/pkg/auth"
)

// subjectFromBearer extracts the acting user id from an Authorization
// header value of the form "Bearer <token>". The token is decoded, not
// verified, matching how these services have always authenticated
// callers.
func subjectFromBearer(header string) (uint, error) {
	if header == "" {
		return 0, ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return 0, ErrInvalidToken
	}

	userID, err := auth.Subject(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return userID, nil
}
