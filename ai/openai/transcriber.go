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
	"errors"
	"log/slog"
	"strings"

	"github.com/highestlab/ai4restory/ai"
	"github.com/tmc/langchaingo/llms"
)

// ErrEmptyImage is returned when there are no image bytes to transcribe.
var ErrEmptyImage = errors.New("image data is empty")

// ImageTranscriber implements ai.ImageTranscriber using a vision-capable chat model.
type ImageTranscriber struct {
	client llms.Model
	logger *slog.Logger
}

func newImageTranscriber(client llms.Model) *ImageTranscriber {
	return &ImageTranscriber{
		client: client,
		logger: slog.Default().With("component", "openai-transcriber"),
	}
}

// NewImageTranscriber creates a new image transcriber using the provided configuration.
func NewImageTranscriber(config *ai.Config) (ai.ImageTranscriber, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newChatClient(config.ChatHost, config.Token, config.VisionModel)
	if err != nil {
		return nil, err
	}
	return newImageTranscriber(client), nil
}

// TranscribeImage sends the image inline with the transcription prompt.
func (t *ImageTranscriber) TranscribeImage(ctx context.Context, mimeType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(transcriptionPrompt),
				llms.BinaryPart(mimeType, data),
			},
		},
	}

	t.logger.Debug("transcribing image", "mime", mimeType, "bytes", len(data))
	response, err := t.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		t.logger.Error("failed to transcribe image", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", nil
	}
	return strings.TrimSpace(response.Choices[0].Content), nil
}
