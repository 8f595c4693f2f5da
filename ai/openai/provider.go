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


package openai

import (
	"log/slog"

	"github.com/highestlab/ai4restory/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Provider implements ai.AIProvider using OpenAI-compatible services.
// It manages embedder, recognizer, transcriber and chat model instances.
type Provider struct {
	config      *ai.Config
	embedder    *Embedder
	recognizer  ai.EntityRecognizer
	transcriber *ImageTranscriber
	chat        llms.Model
	logger      *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use. The entity recognizer is
// wrapped in an LRU cache when config.EntityCacheSize is positive.
//
// Returns ai.AIProvider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	chat, err := newChatClient(config.ChatHost, config.Token, config.ChatModel)
	if err != nil {
		return nil, err
	}

	recognizer, err := ai.NewCachingRecognizer(newEntityRecognizer(chat), config.EntityCacheSize)
	if err != nil {
		return nil, err
	}

	vision := llms.Model(chat)
	if config.VisionModel != config.ChatModel {
		vision, err = newChatClient(config.ChatHost, config.Token, config.VisionModel)
		if err != nil {
			return nil, err
		}
	}

	return &Provider{
		config:      config,
		embedder:    embedder,
		recognizer:  recognizer,
		transcriber: newImageTranscriber(vision),
		chat:        chat,
		logger:      slog.Default().With("component", "openai-provider"),
	}, nil
}

// newChatClient creates a langchaingo client bound to one chat model.
func newChatClient(host, token, model string) (*openai.LLM, error) {
	return openai.New(
		openai.WithBaseURL(host),
		openai.WithToken(token),
		openai.WithModel(model),
	)
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// EntityRecognizer returns the named-entity recognition service.
func (p *Provider) EntityRecognizer() ai.EntityRecognizer {
	return p.recognizer
}

// ImageTranscriber returns the image transcription service.
func (p *Provider) ImageTranscriber() ai.ImageTranscriber {
	return p.transcriber
}

// ChatModel returns the model used for question answering.
func (p *Provider) ChatModel() llms.Model {
	return p.chat
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
