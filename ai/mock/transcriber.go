package mock

import (
	"context"
	"sync/atomic"
)

// DefaultTranscription is returned by MockTranscriber when no function is set.
const DefaultTranscription = "testo trascritto dall'immagine"

// MockTranscriber is a test double for ai.ImageTranscriber.
type MockTranscriber struct {
	// TranscribeImageFunc is called by TranscribeImage if set.
	TranscribeImageFunc func(ctx context.Context, mimeType string, data []byte) (string, error)

	callCount atomic.Int64
}

func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

func (m *MockTranscriber) TranscribeImage(ctx context.Context, mimeType string, data []byte) (string, error) {
	m.callCount.Add(1)
	if m.TranscribeImageFunc != nil {
		return m.TranscribeImageFunc(ctx, mimeType, data)
	}
	return DefaultTranscription, nil
}

// CallCount returns the number of times TranscribeImage was called.
func (m *MockTranscriber) CallCount() int {
	return int(m.callCount.Load())
}
