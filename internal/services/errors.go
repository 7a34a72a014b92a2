package services

import (
	"errors"
	"fmt"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrUsernameLength       = errors.New("username must be between 5 and 50 characters")
	ErrEmailTaken           = errors.New("email already exists")
	ErrRoleNameTaken        = errors.New("role name already exists")
	ErrRoleIDsEmpty         = errors.New("role IDs list cannot be empty")
	ErrUserIDsEmpty         = errors.New("user IDs list cannot be empty")
	ErrInvalidSortField     = errors.New("invalid field for sorting")
	ErrInvalidOrder         = errors.New("order must be asc or desc")
	ErrInvalidStatus        = errors.New("status must be one of pending, in_progress, completed")
	ErrTitleLength          = errors.New("title must be between 5 and 60 characters")
	ErrDueDateNotFuture     = errors.New("due_date must be in the future")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordConfirmation = errors.New("new password confirmation does not match")
	ErrPasswordLength       = errors.New("password must be between 5 and 20 characters")
)

// NotFoundError reports that no record of the named entity exists under the
// given id. It is the lookup-by-id failure for every entity type.
type NotFoundError struct {
	Entity string
	ID     uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

func newNotFound(entity string, id uint64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err carries a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
