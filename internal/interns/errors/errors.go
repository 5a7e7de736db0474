package errors

import "errors"

var (
	ErrNotFound = errors.New("intern not found")

	ErrInvalidID = errors.New("invalid intern ID format")

	// ErrEmailTaken maps the unique-index violation on email.
	ErrEmailTaken = errors.New("email already registered")
)
