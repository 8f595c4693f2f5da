package mock

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// DefaultAnswer is returned by MockChatModel when no function is set.
const DefaultAnswer = "Risposta di prova."

// MockChatModel is a test double for llms.Model.
type MockChatModel struct {
	// GenerateFunc is called with the flattened prompt text if set.
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

func NewMockChatModel() *MockChatModel {
	return &MockChatModel{}
}

// GenerateContent flattens the text parts of messages into one prompt and answers it.
func (m *MockChatModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var sb strings.Builder
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				sb.WriteString(text.Text)
				sb.WriteString("\n")
			}
		}
	}
	prompt := sb.String()

	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	answer := DefaultAnswer
	if m.GenerateFunc != nil {
		var err error
		answer, err = m.GenerateFunc(ctx, prompt)
		if err != nil {
			return nil, err
		}
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: answer}}}, nil
}

func (m *MockChatModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

// Prompts returns every prompt seen, in call order.
func (m *MockChatModel) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.prompts)
}
