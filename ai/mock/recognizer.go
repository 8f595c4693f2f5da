package mock

import (
	"context"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/highestlab/ai4restory/ai"
)

// MockRecognizer is a test double for ai.EntityRecognizer.
// By default it labels every registered person name found in the input as PER.
type MockRecognizer struct {
	// RecognizeEntitiesFunc is called by RecognizeEntities if set.
	// Set it before the recognizer is shared between goroutines.
	RecognizeEntitiesFunc func(ctx context.Context, text string) ([]ai.Entity, error)

	mu        sync.Mutex
	persons   []string
	inputs    []string
	callCount atomic.Int64
}

// NewMockRecognizer creates a recognizer that knows the given person names.
func NewMockRecognizer(persons ...string) *MockRecognizer {
	return &MockRecognizer{persons: persons}
}

// RecognizeEntities returns the registered names contained in text, ordered by
// position. Matching ignores case; the returned text is copied from the input.
func (m *MockRecognizer) RecognizeEntities(ctx context.Context, text string) ([]ai.Entity, error) {
	m.callCount.Add(1)
	m.mu.Lock()
	m.inputs = append(m.inputs, text)
	persons := slices.Clone(m.persons)
	fn := m.RecognizeEntitiesFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, text)
	}

	type match struct {
		pos  int
		text string
	}
	lower := strings.ToLower(text)
	var matches []match
	for _, name := range persons {
		needle := strings.ToLower(name)
		start := 0
		for {
			i := strings.Index(lower[start:], needle)
			if i < 0 {
				break
			}
			pos := start + i
			found := name
			if len(lower) == len(text) {
				found = text[pos : pos+len(needle)]
			}
			matches = append(matches, match{pos: pos, text: found})
			start = pos + len(needle)
		}
	}
	slices.SortStableFunc(matches, func(a, b match) int { return a.pos - b.pos })

	entities := make([]ai.Entity, 0, len(matches))
	for _, mt := range matches {
		entities = append(entities, ai.Entity{Text: mt.text, Label: ai.LabelPerson})
	}
	return entities, nil
}

// Inputs returns the texts passed to RecognizeEntities, in call order.
func (m *MockRecognizer) Inputs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.inputs)
}

// CallCount returns the number of times RecognizeEntities was called.
func (m *MockRecognizer) CallCount() int {
	return int(m.callCount.Load())
}
