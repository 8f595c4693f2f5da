package ai

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecognizer struct {
	mu    sync.Mutex
	calls map[string]int
	err   error
}

func (r *countingRecognizer) RecognizeEntities(ctx context.Context, text string) ([]Entity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = make(map[string]int)
	}
	r.calls[text]++
	if r.err != nil {
		return nil, r.err
	}
	return []Entity{{Text: text, Label: LabelPerson}}, nil
}

func TestNewCachingRecognizer(t *testing.T) {
	t.Run("nil recognizer", func(t *testing.T) {
		_, err := NewCachingRecognizer(nil, 10)
		assert.ErrorIs(t, err, ErrRecognizerRequired)
	})

	t.Run("zero size returns inner", func(t *testing.T) {
		inner := &countingRecognizer{}
		rec, err := NewCachingRecognizer(inner, 0)
		require.NoError(t, err)
		assert.Same(t, inner, rec)
	})
}

func TestCachingRecognizer_RecognizeEntities(t *testing.T) {
	ctx := context.Background()

	t.Run("repeated text hits cache", func(t *testing.T) {
		inner := &countingRecognizer{}
		rec, err := NewCachingRecognizer(inner, 10)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			entities, err := rec.RecognizeEntities(ctx, "Mario Rossi")
			require.NoError(t, err)
			require.Len(t, entities, 1)
			assert.Equal(t, "Mario Rossi", entities[0].Text)
		}
		assert.Equal(t, 1, inner.calls["Mario Rossi"])
		assert.Equal(t, 1, rec.(*CachingRecognizer).Len())
	})

	t.Run("eviction beyond size", func(t *testing.T) {
		inner := &countingRecognizer{}
		rec, err := NewCachingRecognizer(inner, 1)
		require.NoError(t, err)

		_, _ = rec.RecognizeEntities(ctx, "a")
		_, _ = rec.RecognizeEntities(ctx, "b")
		_, _ = rec.RecognizeEntities(ctx, "a")
		assert.Equal(t, 2, inner.calls["a"])
	})

	t.Run("errors are not cached", func(t *testing.T) {
		inner := &countingRecognizer{err: errors.New("boom")}
		rec, err := NewCachingRecognizer(inner, 10)
		require.NoError(t, err)

		_, err = rec.RecognizeEntities(ctx, "x")
		assert.Error(t, err)
		_, err = rec.RecognizeEntities(ctx, "x")
		assert.Error(t, err)
		assert.Equal(t, 2, inner.calls["x"])
	})
}
