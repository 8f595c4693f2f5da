package core

import "errors"

var (
	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptyContent indicates the Contents field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyPath indicates the Path field is empty.
	ErrEmptyPath = errors.New("path cannot be empty")

	// ErrNegativeIndex indicates a chunk index below zero.
	ErrNegativeIndex = errors.New("chunk index cannot be negative")

	// ErrCorruptData indicates stored bytes could not be decoded.
	ErrCorruptData = errors.New("corrupt data")

	// ErrInvalidCheckpoint indicates a Checkpoint failed validation.
	ErrInvalidCheckpoint = errors.New("invalid checkpoint")
)
