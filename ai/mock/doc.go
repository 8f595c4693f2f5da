// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.EntityRecognizer,
// ai.ImageTranscriber, llms.Model and ai.AIProvider for use in unit tests. The
// mocks allow tests to run without external AI service dependencies and enable
// controlled, deterministic behavior. All mocks are safe for concurrent use.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Known people are recognized wherever they appear
//	recognizer := mock.NewMockRecognizer("Mario Rossi", "Bellini")
//
//	// Custom behavior injection
//	mockEmbedder := mock.NewMockEmbedder()
//	mockEmbedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{0.1, 0.2, 0.3}, nil
//	}
//
//	// Check call counts
//	count := mockEmbedder.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic unit vectors based on text hash
//   - MockRecognizer: Labels registered names as PER, in order of appearance
//   - MockTranscriber: Returns a fixed transcription
//   - MockChatModel: Returns a fixed answer and records the prompts it saw
//   - MockProvider: Aggregates the mocks above
package mock
