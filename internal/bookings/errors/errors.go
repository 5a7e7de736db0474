package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrSeatTaken maps the unique-index violation on (date, seat_number).
	ErrSeatTaken = errors.New("seat already booked for this date")
)
