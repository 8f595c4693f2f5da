package mock

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/highestlab/ai4restory/ai"
	"github.com/highestlab/ai4restory/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	ctx := context.Background()
	e := NewMockEmbedder()

	a, err := e.EmbedText(ctx, "affresco")
	require.NoError(t, err)
	b, err := e.EmbedText(ctx, "affresco")
	require.NoError(t, err)
	c, err := e.EmbedText(ctx, "tela")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, Dimensions)
	assert.InDelta(t, 1.0, core.DotProduct(a, a), 1e-5)
	assert.Equal(t, 3, e.CallCount())
}

func TestMockRecognizer_Persons(t *testing.T) {
	ctx := context.Background()
	r := NewMockRecognizer("Bellini", "Mario Rossi")

	entities, err := r.RecognizeEntities(ctx, "mario rossi e Bellini")
	require.NoError(t, err)
	assert.Equal(t, []ai.Entity{
		{Text: "mario rossi", Label: ai.LabelPerson},
		{Text: "Bellini", Label: ai.LabelPerson},
	}, entities)

	entities, err = r.RecognizeEntities(ctx, "Lampadario")
	require.NoError(t, err)
	assert.Empty(t, entities)
	assert.Equal(t, []string{"mario rossi e Bellini", "Lampadario"}, r.Inputs())
}

func TestMockRecognizer_CustomFuncConcurrent(t *testing.T) {
	r := NewMockRecognizer("Bellini")
	r.RecognizeEntitiesFunc = func(ctx context.Context, text string) ([]ai.Entity, error) {
		return nil, errors.New("model offline")
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entities, err := r.RecognizeEntities(context.Background(), "Bellini")
			assert.EqualError(t, err, "model offline")
			assert.Empty(t, entities)
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, r.CallCount())
	assert.Len(t, r.Inputs(), 8)
}

func TestMockChatModel_RecordsPrompts(t *testing.T) {
	ctx := context.Background()
	m := NewMockChatModel()

	answer, err := m.Call(ctx, "Chi ha restaurato la pala?")
	require.NoError(t, err)
	assert.Equal(t, DefaultAnswer, answer)
	require.Len(t, m.Prompts(), 1)
	assert.Contains(t, m.Prompts()[0], "Chi ha restaurato la pala?")
}

func TestMockProvider(t *testing.T) {
	p := NewMockProvider()
	mp := p.(*MockProvider)

	assert.Same(t, mp.GetMockEmbedder(), p.Embedder())
	assert.Same(t, mp.GetMockRecognizer(), p.EntityRecognizer())
	assert.Same(t, mp.GetMockTranscriber(), p.ImageTranscriber())
	assert.Same(t, mp.GetMockChatModel(), p.ChatModel())
	assert.NoError(t, p.Close())
}
