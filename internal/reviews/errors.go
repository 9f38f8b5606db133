package reviews

import "errors"

var (
	// ErrNotFound indicates a review entry was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
