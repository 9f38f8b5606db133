package workspace

import "errors"

var (
	// ErrUnknownKey indicates a key outside the fixed workspace set.
	ErrUnknownKey = errors.New("unknown workspace key")

	// ErrValueTooLarge indicates a value over MaxValueBytes.
	ErrValueTooLarge = errors.New("workspace value too large")
)
