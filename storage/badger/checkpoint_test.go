package badger

import (
	"context"
	"testing"

	"github.com/highestlab/ai4restory/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointRepository(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	repo := NewCheckpointRepository(backend)
	ctx := context.Background()

	t.Run("missing checkpoint", func(t *testing.T) {
		cp, err := repo.LoadCheckpoint(ctx, "a/1.pdf")
		require.NoError(t, err)
		assert.Nil(t, cp)
	})

	t.Run("save and load", func(t *testing.T) {
		saved := &core.Checkpoint{Path: "a/1.pdf", Chunks: 4}
		require.NoError(t, repo.SaveCheckpoint(ctx, saved))

		cp, err := repo.LoadCheckpoint(ctx, "a/1.pdf")
		require.NoError(t, err)
		require.NotNil(t, cp)
		assert.Equal(t, "a/1.pdf", cp.Path)
		assert.Equal(t, 4, cp.Chunks)
		assert.False(t, cp.UpdatedAt.IsZero())
		assert.Equal(t, saved.UpdatedAt, cp.UpdatedAt)
	})

	t.Run("paths are independent", func(t *testing.T) {
		cp, err := repo.LoadCheckpoint(ctx, "a/1")
		require.NoError(t, err)
		assert.Nil(t, cp)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteCheckpoint(ctx, "a/1.pdf"))

		cp, err := repo.LoadCheckpoint(ctx, "a/1.pdf")
		require.NoError(t, err)
		assert.Nil(t, cp)

		require.NoError(t, repo.DeleteCheckpoint(ctx, "never-saved.pdf"))
	})

	t.Run("invalid checkpoint", func(t *testing.T) {
		err := repo.SaveCheckpoint(ctx, &core.Checkpoint{})
		assert.ErrorIs(t, err, core.ErrInvalidCheckpoint)
	})
}
