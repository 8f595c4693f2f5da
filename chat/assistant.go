package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
	"github.com/tmc/langchaingo/schema"
)

// Generation settings for answers.
const (
	Temperature = 0.0
	MaxTokens   = 500
)

const qaTemplate = `Sei un assistente che risponde a domande sull'archivio dei restauri.
Usa solo le informazioni seguenti. Se non sono sufficienti, dillo.

{{.context}}

Domanda: {{.question}}
Risposta:`

// Source is one document an answer was drawn from.
type Source struct {
	Name  string
	Tag   string
	Path  string
	Score float32
}

// Answer is the model's reply and the documents it was given.
type Answer struct {
	Text    string
	Sources []Source
}

// Format renders the answer followed by its list of sources.
// A missing name prints as "Documento" and a missing tag as "-".
func (a Answer) Format() string {
	if len(a.Sources) == 0 {
		return a.Text
	}

	var sb strings.Builder
	sb.WriteString(a.Text)
	sb.WriteString("\n\n📚 **Fonti**:")
	for _, src := range a.Sources {
		name := src.Name
		if name == "" {
			name = "Documento"
		}
		tag := src.Tag
		if tag == "" {
			tag = "-"
		}
		fmt.Fprintf(&sb, "\n- **%s** (Tag: %s)", name, tag)
	}
	return sb.String()
}

// Assistant answers questions with a retrieval QA chain.
type Assistant struct {
	chain  chains.RetrievalQA
	logger *slog.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAssistant builds an assistant answering with model over documents from retriever.
func NewAssistant(model llms.Model, retriever schema.Retriever, opts ...Option) (*Assistant, error) {
	if model == nil {
		return nil, ErrModelRequired
	}
	if retriever == nil {
		return nil, ErrSearcherRequired
	}

	prompt := prompts.NewPromptTemplate(qaTemplate, []string{"context", "question"})
	qa := chains.NewRetrievalQA(chains.NewStuffDocuments(chains.NewLLMChain(model, prompt)), retriever)
	qa.ReturnSourceDocuments = true

	a := &Assistant{
		chain:  qa,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("component", "chat")
	return a, nil
}

// Ask answers question from the retrieved documents.
func (a *Assistant) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	a.logger.Debug("answering question", "question", question)
	out, err := chains.Call(ctx, a.chain, map[string]any{"query": question},
		chains.WithTemperature(Temperature),
		chains.WithMaxTokens(MaxTokens),
	)
	if err != nil {
		return nil, fmt.Errorf("running qa chain: %w", err)
	}

	text, ok := out["text"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing text", ErrUnexpectedOutput)
	}

	answer := &Answer{Text: strings.TrimSpace(text)}
	docs, _ := out["source_documents"].([]schema.Document)
	for _, doc := range docs {
		answer.Sources = append(answer.Sources, Source{
			Name:  metadataString(doc.Metadata, MetadataSource),
			Tag:   metadataString(doc.Metadata, MetadataTag),
			Path:  metadataString(doc.Metadata, MetadataPath),
			Score: doc.Score,
		})
	}
	return answer, nil
}

func metadataString(metadata map[string]any, key string) string {
	s, _ := metadata[key].(string)
	return s
}
