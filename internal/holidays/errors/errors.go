package errors

import "errors"

var (
	ErrNotFound = errors.New("holiday not found")

	ErrInvalidID = errors.New("invalid holiday ID format")

	// ErrDuplicateDate maps the unique-index violation on date.
	ErrDuplicateDate = errors.New("holiday already registered for this date")
)
