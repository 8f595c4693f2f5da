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
	"context"
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/highestlab/ai4restory/ai"
	"github.com/tmc/langchaingo/llms"
)

// EntityRecognizer implements ai.EntityRecognizer by prompting a chat model in JSON mode.
type EntityRecognizer struct {
	client llms.Model
	logger *slog.Logger
}

// entity matches the structure expected from the LLM.
type entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

type recognition struct {
	Entities []entity `json:"entities"`
}

func newEntityRecognizer(client llms.Model) *EntityRecognizer {
	return &EntityRecognizer{
		client: client,
		logger: slog.Default().With("component", "openai-recognizer"),
	}
}

// NewEntityRecognizer creates a new entity recognizer using the provided configuration.
//
// Returns ai.EntityRecognizer interface to enforce abstraction.
func NewEntityRecognizer(config *ai.Config) (ai.EntityRecognizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newChatClient(config.ChatHost, config.Token, config.ChatModel)
	if err != nil {
		return nil, err
	}
	return newEntityRecognizer(client), nil
}

// RecognizeEntities asks the model for the entities in text.
// Entities with unknown labels or text absent from the input are dropped.
func (r *EntityRecognizer) RecognizeEntities(ctx context.Context, text string) ([]ai.Entity, error) {
	text = collapseSpaces(text)
	if text == "" {
		return []ai.Entity{}, nil
	}

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, buildEntityPrompt()),
		llms.TextParts(llms.ChatMessageTypeHuman, text),
	}

	// Try up to 3 times in case of malformed JSON
	var result recognition
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			r.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			r.logger.Debug("no choices returned from model")
			return []ai.Entity{}, nil
		}

		responseText := repairJSON(stripCodeFence(response.Choices[0].Content))
		result = recognition{}
		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			r.logger.Warn("error parsing recognizer response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		r.logger.Error("failed to parse recognizer response after retries", "err", lastErr)
		return nil, lastErr
	}

	entities := filterEntities(text, result.Entities)
	r.logger.Debug("recognized entities", "input", text, "total", len(result.Entities), "kept", len(entities))
	return entities, nil
}

// filterEntities keeps well-formed entities the model did not invent.
func filterEntities(input string, raw []entity) []ai.Entity {
	entities := make([]ai.Entity, 0, len(raw))
	for _, e := range raw {
		e.Text = collapseSpaces(e.Text)
		if e.Text == "" || !slices.Contains(ai.EntityLabels, e.Label) {
			continue
		}
		if !containsFold(input, e.Text) {
			continue
		}
		entities = append(entities, ai.Entity{Text: e.Text, Label: e.Label})
	}
	return entities
}
