package reembed

import "errors"

var (
	// ErrEmbeddingMismatch is returned when the embedder returns a different number of vectors than texts.
	ErrEmbeddingMismatch = errors.New("embedding count mismatch")
)
