package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/highestlab/ai4restory/ai"
	"github.com/highestlab/ai4restory/core"
)

// embeddingProcessor generates unit-length embeddings for chunks.
type embeddingProcessor struct {
	embedder  ai.Embedder
	batchSize int
	retry     ai.RetryPolicy
	logger    *slog.Logger
}

func newEmbeddingProcessor(embedder ai.Embedder, batchSize int, retry ai.RetryPolicy, logger *slog.Logger) *embeddingProcessor {
	return &embeddingProcessor{
		embedder:  embedder,
		batchSize: batchSize,
		retry:     retry,
		logger:    logger.With("processor", "embeddings"),
	}
}

// process sets the Vector of every chunk, one batch of texts per embedder call.
func (ep *embeddingProcessor) process(ctx context.Context, chunks []*core.Chunk) error {
	for start := 0; start < len(chunks); start += ep.batchSize {
		end := min(start+ep.batchSize, len(chunks))
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Contents
		}

		ep.logger.Debug("generating embeddings", "chunks", len(texts))
		var embeddings [][]float32
		err := ep.retry.Do(ctx, func() error {
			var err error
			embeddings, err = ep.embedder.EmbedTexts(ctx, texts)
			return err
		})
		if err != nil {
			return fmt.Errorf("embedding chunks: %w", err)
		}

		if len(embeddings) != len(batch) {
			return fmt.Errorf("%w: expected %d, received %d", ErrEmbeddingMismatch, len(batch), len(embeddings))
		}

		for i := range embeddings {
			batch[i].Vector = core.NormalizeVector(embeddings[i])
		}
	}
	return nil
}
