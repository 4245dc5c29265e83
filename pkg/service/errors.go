package service

import "errors"

// Error kinds surfaced by the services. Handlers map these onto HTTP
// statuses; everything else is treated as a store failure.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidPage        = errors.New("invalid page number")
	ErrDuplicateEmail     = errors.New("there is already a user with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingToken       = errors.New("a token is required for this request")
	ErrInvalidToken       = errors.New("invalid token format")
	ErrNotCreator         = errors.New("only the creator of the project can add members")
	ErrNotMember          = errors.New("only project members can create tasks")
	ErrNoTags             = errors.New("tasks must have at least one tag")
	ErrTaskCompleted      = errors.New("completed tasks cannot be edited")
)
