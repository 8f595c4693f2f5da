package chat

import "errors"

var (
	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrModelRequired is returned when a language model is not provided.
	ErrModelRequired = errors.New("language model required")

	// ErrEmptyQuestion is returned by Ask for a blank question.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrUnexpectedOutput is returned when the chain output lacks the answer text.
	ErrUnexpectedOutput = errors.New("unexpected chain output")
)
