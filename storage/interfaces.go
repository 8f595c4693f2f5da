package storage

import (
	"context"

	"github.com/highestlab/ai4restory/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// Repository calls made with the context passed to fn join the transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ChunkRepository stores embedded document chunks.
type ChunkRepository interface {
	Repository

	// AddChunks inserts or replaces chunks. Chunks with ID=0 get core.ChunkID(Path, Index).
	// InsertedAt is kept from a replaced chunk; UpdatedAt is always set.
	// Returns core.ErrInvalidChunk if any chunk fails validation.
	AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// UpdateChunks replaces existing chunks and sets UpdatedAt.
	// Returns ErrNotFound if any chunk doesn't exist.
	UpdateChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// GetChunk retrieves a single chunk by ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error)

	// GetChunks retrieves multiple chunks by their IDs.
	// Returns only the chunks that exist (no error for missing chunks).
	GetChunks(ctx context.Context, ids ...core.ID) ([]*core.Chunk, error)

	// GetChunksByPath returns the chunks of one object, ordered by Index.
	GetChunksByPath(ctx context.Context, path string) ([]*core.Chunk, error)

	// DeleteChunksByPath removes every chunk of one object and returns how many were removed.
	DeleteChunksByPath(ctx context.Context, path string) (int, error)

	// ForEachChunk calls fn with successive batches of at most batchSize chunks.
	// fn runs outside any storage transaction, so it may write to the repository.
	// Iteration stops at the first error from fn or when ctx is cancelled.
	ForEachChunk(ctx context.Context, batchSize int, fn func(ctx context.Context, batch []*core.Chunk) error) error

	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)

	// FindSimilar finds chunks similar to the given vector.
	// Returns chunks with similarity >= minSimilarity, up to limit results.
	// Results are ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)
}

// CheckpointRepository records which objects have been ingested.
type CheckpointRepository interface {
	// SaveCheckpoint persists the checkpoint for checkpoint.Path and sets UpdatedAt.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for path.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, path string) (*core.Checkpoint, error)

	// DeleteCheckpoint removes the checkpoint for path, if any.
	DeleteCheckpoint(ctx context.Context, path string) error
}
