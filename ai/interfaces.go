package ai

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// EntityRecognizer finds named entities in a short piece of Italian text.
// Implementations must be thread-safe for concurrent use.
type EntityRecognizer interface {
	// RecognizeEntities returns the entities found in text, in order of appearance.
	// Returns an empty slice if nothing is recognized.
	RecognizeEntities(ctx context.Context, text string) ([]Entity, error)
}

// ImageTranscriber extracts readable text from an image.
// Implementations must be thread-safe for concurrent use.
type ImageTranscriber interface {
	// TranscribeImage returns the text visible in the image. mimeType describes
	// the encoding of data, e.g. "image/jpeg".
	TranscribeImage(ctx context.Context, mimeType string, data []byte) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// EntityRecognizer returns the named-entity recognition service.
	EntityRecognizer() EntityRecognizer

	// ImageTranscriber returns the image transcription service.
	ImageTranscriber() ImageTranscriber

	// ChatModel returns the language model used to answer questions.
	ChatModel() llms.Model

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
