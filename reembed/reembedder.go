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


package reembed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/highestlab/ai4restory/ai"
	"github.com/highestlab/ai4restory/core"
	"github.com/highestlab/ai4restory/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of chunks to embed per call
	BatchSize int

	// ReportInterval is how often to report progress (number of chunks)
	ReportInterval int

	// Retry governs failed embedding calls
	Retry ai.RetryPolicy
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 100,
		Retry:          ai.DefaultRetryPolicy(),
	}
}

// Reembedder re-embeds every chunk in a database.
type Reembedder struct {
	repo      storage.ChunkRepository
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *ChunkIterator
	logger    *slog.Logger
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(repo storage.ChunkRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reembedder{
		repo:      repo,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(repo, embedder, config.Retry),
		iterator:  NewChunkIterator(repo, config.BatchSize),
		logger:    slog.Default().With("component", "reembed"),
	}
}

// Run re-embeds all stored chunks and returns how many were updated.
// Progress is reported to the configured writer.
func (r *Reembedder) Run(ctx context.Context) (int, error) {
	total, err := r.repo.CountChunks(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}

	if total == 0 {
		fmt.Fprintf(r.progress, "No chunks found in database\n")
		return 0, nil
	}

	fmt.Fprintf(r.progress, "Re-embedding %d chunks (batch size: %d)\n", total, r.iterator.batchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	err = r.iterator.ForEach(ctx, func(chunks []*core.Chunk) error {
		if err := r.processor.Process(ctx, chunks); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		processed += len(chunks)
		tracker.Update(processed)
		return nil
	})
	if err != nil {
		r.logger.Error("reembedding stopped", "processed", processed, "total", total, "err", err)
		return processed, err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Done: %d chunks in %v (%.1f chunks/s)\n",
		processed, elapsed.Round(time.Millisecond), rate(processed, elapsed))

	return processed, nil
}
