package badger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/highestlab/ai4restory/core"
	"github.com/highestlab/ai4restory/storage"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
// Similarity search is a full scan; the archive holds tens of thousands of
// chunks at most.
type ChunkRepository struct {
	backend *Backend
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository.
//
// Returns storage.ChunkRepository interface to enforce abstraction.
func NewChunkRepository(backend *Backend) storage.ChunkRepository {
	return newChunkRepository(backend)
}

func newChunkRepository(backend *Backend) *ChunkRepository {
	return &ChunkRepository{backend: backend}
}

// Close is a no-op; the backend owns the database.
func (r *ChunkRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ChunkRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddChunks inserts or replaces chunks.
func (r *ChunkRepository) AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error) {
	for _, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		now := time.Now().UTC().Truncate(time.Microsecond)
		for _, chunk := range chunks {
			if chunk.Id == 0 {
				chunk.Id = core.ChunkID(chunk.Path, chunk.Index)
			}

			old, err := r.readChunk(tx, chunk.Id)
			if err != nil {
				return err
			}
			chunk.InsertedAt = now
			if old != nil {
				chunk.InsertedAt = old.InsertedAt
			}
			chunk.UpdatedAt = now

			if err := r.writeChunk(tx, old, chunk); err != nil {
				return err
			}
		}
		return nil
	}, true)
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// UpdateChunks replaces existing chunks.
func (r *ChunkRepository) UpdateChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error) {
	for _, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		now := time.Now().UTC().Truncate(time.Microsecond)
		for _, chunk := range chunks {
			old, err := r.readChunk(tx, chunk.Id)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}
			chunk.UpdatedAt = now
			if err := r.writeChunk(tx, old, chunk); err != nil {
				return err
			}
		}
		return nil
	}, true)
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// writeChunk stores chunk and keeps the path index in step with it.
func (r *ChunkRepository) writeChunk(tx *badger.Txn, old, chunk *core.Chunk) error {
	if old != nil && old.Path != chunk.Path {
		if err := tx.Delete(makeChunkPathKey(old.Path, old.Id)); err != nil {
			return err
		}
	}
	if err := tx.Set(makeChunkKey(chunk.Id), storage.MarshalChunk(chunk)); err != nil {
		return err
	}
	return tx.Set(makeChunkPathKey(chunk.Path, chunk.Id), nil)
}

// GetChunk retrieves a single chunk by ID.
func (r *ChunkRepository) GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error) {
	var result *core.Chunk
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = r.readChunk(tx, id)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetChunks retrieves multiple chunks by their IDs.
func (r *ChunkRepository) GetChunks(ctx context.Context, ids ...core.ID) ([]*core.Chunk, error) {
	var result []*core.Chunk
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			chunk, err := r.readChunk(tx, id)
			if err != nil {
				return err
			}
			if chunk != nil {
				result = append(result, chunk)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetChunksByPath returns the chunks of one object, ordered by Index.
func (r *ChunkRepository) GetChunksByPath(ctx context.Context, path string) ([]*core.Chunk, error) {
	var result []*core.Chunk
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		for _, id := range pathIDs(tx, path) {
			chunk, err := r.readChunk(tx, id)
			if err != nil {
				return err
			}
			if chunk != nil {
				result = append(result, chunk)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(result, func(a, b *core.Chunk) int {
		return a.Index - b.Index
	})
	return result, nil
}

// DeleteChunksByPath removes every chunk of one object.
func (r *ChunkRepository) DeleteChunksByPath(ctx context.Context, path string) (int, error) {
	var deleted int
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		// Collect first; deleting while an iterator is open is not allowed.
		ids := pathIDs(tx, path)
		for _, id := range ids {
			if err := tx.Delete(makeChunkKey(id)); err != nil {
				return err
			}
			if err := tx.Delete(makeChunkPathKey(path, id)); err != nil {
				return err
			}
		}
		deleted = len(ids)
		return nil
	}, true)
	return deleted, err
}

// pathIDs lists the chunk IDs indexed under path.
func pathIDs(tx *badger.Txn, path string) []core.ID {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = makePartialChunkPathKey(path)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var ids []core.ID
	for iter.Rewind(); iter.Valid(); iter.Next() {
		ids = append(ids, idFromKey(iter.Item().Key()))
	}
	return ids
}

// allIDs lists every stored chunk ID in key order.
func allIDs(tx *badger.Txn) []core.ID {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(chunkPrefix)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var ids []core.ID
	for iter.Rewind(); iter.Valid(); iter.Next() {
		ids = append(ids, idFromKey(iter.Item().Key()))
	}
	return ids
}

// ForEachChunk snapshots the chunk IDs, then loads and hands out one batch at a time.
// Chunks deleted after the snapshot are skipped.
func (r *ChunkRepository) ForEachChunk(ctx context.Context, batchSize int, fn func(ctx context.Context, batch []*core.Chunk) error) error {
	if batchSize <= 0 {
		return storage.ErrInvalidQuery
	}

	var ids []core.ID
	if err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		ids = allIDs(tx)
		return nil
	}, false); err != nil {
		return err
	}

	for start := 0; start < len(ids); start += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+batchSize, len(ids))
		batch, err := r.GetChunks(ctx, ids[start:end]...)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			continue
		}
		if err := fn(ctx, batch); err != nil {
			return err
		}
	}
	return nil
}

// CountChunks returns the number of stored chunks.
func (r *ChunkRepository) CountChunks(ctx context.Context) (int, error) {
	var count int
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		count = len(allIDs(tx))
		return nil
	}, false)
	return count, err
}

// FindSimilar scans every chunk with a vector and scores it by dot product,
// which equals cosine similarity for the unit vectors stored by ingestion.
func (r *ChunkRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.SearchResult
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		scanned := 0
		for iter.Rewind(); iter.Valid(); iter.Next() {
			scanned++
			if scanned%1000 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}

			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}

			// Skip chunks without embeddings
			if len(chunk.Vector) == 0 {
				continue
			}

			similarity := core.DotProduct(vector, chunk.Vector)
			if similarity >= minSimilarity {
				results = append(results, &core.SearchResult{
					Chunk: chunk,
					Score: similarity,
				})
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// readChunk loads a chunk by ID. Returns nil, nil when it doesn't exist.
func (r *ChunkRepository) readChunk(tx *badger.Txn, id core.ID) (*core.Chunk, error) {
	item, err := tx.Get(makeChunkKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var chunk *core.Chunk
	err = item.Value(func(val []byte) error {
		var err error
		chunk, err = storage.UnmarshalChunk(val)
		return err
	})
	return chunk, err
}
