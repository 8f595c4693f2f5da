package ingestion

import "errors"

var (
	// ErrFetcherRequired is returned when a bucket fetcher is not provided.
	ErrFetcherRequired = errors.New("bucket fetcher required")

	// ErrLoaderRequired is returned when a document loader is not provided.
	ErrLoaderRequired = errors.New("document loader required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrChunkRepositoryRequired is returned when a chunk repository is not provided.
	ErrChunkRepositoryRequired = errors.New("chunk repository required")

	// ErrCheckpointRepositoryRequired is returned when a checkpoint repository is not provided.
	ErrCheckpointRepositoryRequired = errors.New("checkpoint repository required")

	// ErrLoaderPanic is reported for a document whose loading panicked.
	ErrLoaderPanic = errors.New("document loader panicked")

	// ErrEmbeddingMismatch is returned when the embedder returns a different number of vectors than texts.
	ErrEmbeddingMismatch = errors.New("embedding result mismatch")
)
