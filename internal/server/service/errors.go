package service

import "errors"

var (
	// ErrInvalidCredentials returned when email is unknown, user is inactive
	// or password does not match. The reasons are not distinguished.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidInput returned when an operation receives malformed fields
	ErrInvalidInput = errors.New("invalid input")
)
