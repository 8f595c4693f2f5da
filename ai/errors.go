package ai

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrRecognizerRequired is returned when a nil recognizer is wrapped.
	ErrRecognizerRequired = errors.New("entity recognizer required")
)
