package reembed

import (
	"context"
	"fmt"

	"github.com/highestlab/ai4restory/ai"
	"github.com/highestlab/ai4restory/core"
	"github.com/highestlab/ai4restory/storage"
)

// BatchProcessor re-embeds batches of chunks.
type BatchProcessor struct {
	repo     storage.ChunkRepository
	embedder ai.Embedder
	retry    ai.RetryPolicy
}

// NewBatchProcessor creates a new batch processor.
// retry governs the embedding API calls.
func NewBatchProcessor(repo storage.ChunkRepository, embedder ai.Embedder, retry ai.RetryPolicy) *BatchProcessor {
	return &BatchProcessor{
		repo:     repo,
		embedder: embedder,
		retry:    retry,
	}
}

// Process generates embeddings for a batch of chunks and updates them in the database.
// Vectors are normalized after embedding to ensure compatibility with cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, chunks []*core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Contents
	}

	var embeddings [][]float32
	err := bp.retry.Do(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.retry.MaxAttempts, err)
	}

	if len(embeddings) != len(chunks) {
		return fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingMismatch, len(chunks), len(embeddings))
	}

	for i := range chunks {
		chunks[i].Vector = core.NormalizeVector(embeddings[i])
	}

	if _, err := bp.repo.UpdateChunks(ctx, chunks...); err != nil {
		return fmt.Errorf("failed to update chunks: %w", err)
	}

	return nil
}
