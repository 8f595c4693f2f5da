package reembed

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/highestlab/ai4restory/ai/mock"
	"github.com/highestlab/ai4restory/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 100, config.BatchSize)
	assert.Equal(t, 100, config.ReportInterval)
	assert.Equal(t, 3, config.Retry.MaxAttempts)
}

func TestReembedder_Run(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	seedChunks(t, repo, 25)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = unnormalized

	config := DefaultConfig()
	config.BatchSize = 10
	config.ReportInterval = 10
	config.Retry = testRetry()

	var progress bytes.Buffer
	processed, err := NewReembedder(repo, embedder, config, &progress).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, processed)
	assert.Equal(t, 3, embedder.CallCount())

	err = repo.ForEachChunk(ctx, 100, func(ctx context.Context, chunks []*core.Chunk) error {
		for _, chunk := range chunks {
			assert.InDelta(t, 1.0, core.DotProduct(chunk.Vector, chunk.Vector), 1e-5)
		}
		return nil
	})
	require.NoError(t, err)

	output := progress.String()
	assert.Contains(t, output, "Re-embedding 25 chunks (batch size: 10)")
	assert.Contains(t, output, "25/25")
	assert.Contains(t, output, "Done: 25 chunks")
}

func TestReembedder_EmptyDatabase(t *testing.T) {
	embedder := mock.NewMockEmbedder()

	var progress bytes.Buffer
	processed, err := NewReembedder(setupTestDB(t), embedder, nil, &progress).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, processed)
	assert.Zero(t, embedder.CallCount())
	assert.Contains(t, progress.String(), "No chunks found")
}

func TestReembedder_Failure(t *testing.T) {
	repo := setupTestDB(t)
	seedChunks(t, repo, 15)

	calls := 0
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("quota exceeded")
		}
		return unnormalized(ctx, texts)
	}

	config := DefaultConfig()
	config.BatchSize = 10
	config.Retry = testRetry()

	processed, err := NewReembedder(repo, embedder, config, nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, 10, processed)
}
