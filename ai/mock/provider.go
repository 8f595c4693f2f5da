// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import (
	"github.com/highestlab/ai4restory/ai"
	"github.com/tmc/langchaingo/llms"
)

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock embedder, recognizer, transcriber and chat model instances.
type MockProvider struct {
	embedder    *MockEmbedder
	recognizer  *MockRecognizer
	transcriber *MockTranscriber
	chat        *MockChatModel
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Type-assert to *MockProvider to reach the concrete mocks for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		embedder:    NewMockEmbedder(),
		recognizer:  NewMockRecognizer(),
		transcriber: NewMockTranscriber(),
		chat:        NewMockChatModel(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// Nil arguments are replaced with default mocks.
func NewMockProviderWithServices(embedder *MockEmbedder, recognizer *MockRecognizer, transcriber *MockTranscriber, chat *MockChatModel) ai.AIProvider {
	if embedder == nil {
		embedder = NewMockEmbedder()
	}
	if recognizer == nil {
		recognizer = NewMockRecognizer()
	}
	if transcriber == nil {
		transcriber = NewMockTranscriber()
	}
	if chat == nil {
		chat = NewMockChatModel()
	}
	return &MockProvider{
		embedder:    embedder,
		recognizer:  recognizer,
		transcriber: transcriber,
		chat:        chat,
	}
}

func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

func (p *MockProvider) EntityRecognizer() ai.EntityRecognizer {
	return p.recognizer
}

func (p *MockProvider) ImageTranscriber() ai.ImageTranscriber {
	return p.transcriber
}

func (p *MockProvider) ChatModel() llms.Model {
	return p.chat
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockRecognizer returns the underlying mock recognizer for test assertions.
func (p *MockProvider) GetMockRecognizer() *MockRecognizer {
	return p.recognizer
}

// GetMockTranscriber returns the underlying mock transcriber for test assertions.
func (p *MockProvider) GetMockTranscriber() *MockTranscriber {
	return p.transcriber
}

// GetMockChatModel returns the underlying mock chat model for test assertions.
func (p *MockProvider) GetMockChatModel() *MockChatModel {
	return p.chat
}
