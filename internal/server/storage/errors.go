package storage

import (
	"errors"
	"fmt"
)

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage or is deactivated
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrSessionNotFound indicates that session is unknown, inactive, expired
	// or belongs to a deactivated user
	ErrSessionNotFound = errors.New("session not found")

	// ErrApplicationNotFound indicates that job application was not found
	ErrApplicationNotFound = errors.New("application not found")

	// ErrNotOwner indicates that job application exists but belongs to another user.
	// It wraps ErrApplicationNotFound, so callers checking for not found
	// cannot tell the two apart.
	ErrNotOwner = fmt.Errorf("%w: not owned by user", ErrApplicationNotFound)
)
