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


// Package ai4restory ties the restoration archive tools together: a Database
// owns the vector store and the AI services, and builds the extractor,
// ingestion pipeline, searcher, assistant and reembedder on top of them.
package ai4restory

import (
	"io"
	"log/slog"

	"github.com/highestlab/ai4restory/ai"
	"github.com/highestlab/ai4restory/ai/openai"
	"github.com/highestlab/ai4restory/bucket"
	"github.com/highestlab/ai4restory/chat"
	"github.com/highestlab/ai4restory/ingestion"
	"github.com/highestlab/ai4restory/loader"
	"github.com/highestlab/ai4restory/metadata"
	"github.com/highestlab/ai4restory/reembed"
	"github.com/highestlab/ai4restory/search"
	"github.com/highestlab/ai4restory/storage"
	"github.com/highestlab/ai4restory/storage/badger"
)

type Database struct {
	backend        *badger.Backend
	chunkRepo      storage.ChunkRepository
	checkpointRepo storage.CheckpointRepository
	provider       ai.AIProvider
	logger         *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
}

// WithAIConfig sets the configuration of the OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithProvider uses provider instead of creating one from the AI configuration.
// The Database takes ownership and closes it.
func WithProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemory keeps the store in memory; the path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:        backend,
		chunkRepo:      badger.NewChunkRepository(backend),
		checkpointRepo: badger.NewCheckpointRepository(backend),
		provider:       provider,
		logger:         slog.Default().With("component", "database"),
	}, nil
}

func (db *Database) Close() error {
	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.chunkRepo.Close(); err != nil {
		db.logger.Error("error closing chunk repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ChunkRepository() storage.ChunkRepository {
	return db.chunkRepo
}

func (db *Database) CheckpointRepository() storage.CheckpointRepository {
	return db.checkpointRepo
}

func (db *Database) Provider() ai.AIProvider {
	return db.provider
}

// NewExtractor returns a metadata extractor backed by the provider's entity recognizer.
func (db *Database) NewExtractor(opts ...metadata.ExtractorOption) *metadata.Extractor {
	return metadata.NewExtractor(db.provider.EntityRecognizer(), opts...)
}

// NewIngestionPipeline returns a pipeline reading documents from fetcher.
func (db *Database) NewIngestionPipeline(fetcher bucket.Fetcher, opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(
		fetcher,
		loader.New(db.provider.ImageTranscriber()),
		db.provider.Embedder(),
		db.chunkRepo,
		db.checkpointRepo,
		opts...,
	)
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.chunkRepo, db.provider.Embedder(), opts...)
}

// NewAssistant returns a question-answering assistant over the top k chunks.
func (db *Database) NewAssistant(k int, opts ...search.Option) (*chat.Assistant, error) {
	searcher, err := db.NewSearcher(opts...)
	if err != nil {
		return nil, err
	}
	retriever, err := chat.NewRetriever(searcher, k)
	if err != nil {
		return nil, err
	}
	return chat.NewAssistant(db.provider.ChatModel(), retriever)
}

// NewReembedder returns a reembedder writing progress to progress.
func (db *Database) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(db.chunkRepo, db.provider.Embedder(), config, progress)
}
