package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/highestlab/ai4restory/ai"
	"github.com/highestlab/ai4restory/bucket"
	"github.com/highestlab/ai4restory/core"
	"github.com/highestlab/ai4restory/manifest"
	"github.com/highestlab/ai4restory/storage"
	"github.com/panjf2000/ants/v2"
)

// DefaultBatchSize is the number of chunks embedded and stored per batch.
const DefaultBatchSize = 100

// Pipeline orchestrates the ingestion of manifest entries into the vector store.
type Pipeline struct {
	chunkRepository      storage.ChunkRepository
	checkpointRepository storage.CheckpointRepository
	pool                 *ants.Pool
	documentProc         *documentProcessor
	embeddingProc        *embeddingProcessor
	fetcher              bucket.Fetcher
	loader               DocumentLoader
	embedder             ai.Embedder
	batchSize            int
	retry                ai.RetryPolicy
	force                bool
	logger               *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent document loading.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		if p.pool != nil {
			p.pool.Release()
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithForce re-ingests documents that already have a checkpoint.
func WithForce(force bool) Option {
	return func(p *Pipeline) error {
		p.force = force
		return nil
	}
}

// WithBatchSize sets how many chunks are embedded per embedder call.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		p.batchSize = size
		return nil
	}
}

// WithRetryPolicy sets the retry policy for embedder calls.
// Default is ai.DefaultRetryPolicy().
func WithRetryPolicy(policy ai.RetryPolicy) Option {
	return func(p *Pipeline) error {
		if policy.MaxAttempts <= 0 {
			return ai.ErrInvalidMaxAttempts
		}
		p.retry = policy
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	fetcher bucket.Fetcher,
	loader DocumentLoader,
	embedder ai.Embedder,
	chunkRepository storage.ChunkRepository,
	checkpointRepository storage.CheckpointRepository,
	opts ...Option,
) (*Pipeline, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if loader == nil {
		return nil, ErrLoaderRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if checkpointRepository == nil {
		return nil, ErrCheckpointRepositoryRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		chunkRepository:      chunkRepository,
		checkpointRepository: checkpointRepository,
		pool:                 pool,
		fetcher:              fetcher,
		loader:               loader,
		embedder:             embedder,
		batchSize:            DefaultBatchSize,
		retry:                ai.DefaultRetryPolicy(),
		logger:               slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create processors after options are applied (so they get final config)
	p.logger = p.logger.With("component", "ingestion")
	p.documentProc = newDocumentProcessor(p.fetcher, p.loader, p.logger)
	p.embeddingProc = newEmbeddingProcessor(p.embedder, p.batchSize, p.retry, p.logger)

	return p, nil
}

// Report summarizes one ingestion run.
type Report struct {
	Processed int // documents stored
	Skipped   int // documents with a checkpoint or an unsupported type
	Failed    int // documents that could not be stored
	Chunks    int // chunks stored

	// Errors holds one error per failed document.
	Errors []error
}

// Err joins the per-document errors, or returns nil if none failed.
func (r *Report) Err() error {
	return errors.Join(r.Errors...)
}

func (r *Report) fail(path string, err error) {
	r.Failed++
	r.Errors = append(r.Errors, fmt.Errorf("%s: %w", path, err))
}

// Run ingests every entry. Entries without a path are ignored.
// The returned error is non-nil only when ctx is cancelled or the run cannot start;
// per-document failures are reported in the Report.
func (p *Pipeline) Run(ctx context.Context, entries []manifest.Entry) (*Report, error) {
	report := &Report{}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		docs []*document
	)

	for _, entry := range entries {
		objectName := strings.TrimSpace(entry.Record.Path)
		if objectName == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			break
		}

		if !p.loader.Supports(objectName) {
			p.logger.Warn("skipping unsupported file type", "path", objectName)
			report.Skipped++
			continue
		}

		if !p.force {
			checkpoint, err := p.checkpointRepository.LoadCheckpoint(ctx, objectName)
			if err != nil {
				return report, fmt.Errorf("loading checkpoint: %w", err)
			}
			if checkpoint != nil {
				p.logger.Debug("skipping ingested document", "path", objectName)
				report.Skipped++
				continue
			}
		}

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			doc, err := p.loadDocument(ctx, entry)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				p.logger.Error("error loading document", "path", objectName, "err", err)
				report.fail(objectName, err)
				return
			}
			docs = append(docs, doc)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			report.fail(objectName, submitErr)
			mu.Unlock()
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return report, err
	}

	slices.SortFunc(docs, func(a, b *document) int {
		return strings.Compare(a.path, b.path)
	})

	for _, doc := range docs {
		if err := p.store(ctx, doc); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			p.logger.Error("error storing document", "path", doc.path, "err", err)
			report.fail(doc.path, err)
			continue
		}
		report.Processed++
		report.Chunks += len(doc.chunks)
		p.logger.Info("document ingested", "path", doc.path, "chunks", len(doc.chunks))
	}

	return report, nil
}

// loadDocument runs the document processor, reporting a panic as an error.
func (p *Pipeline) loadDocument(ctx context.Context, entry manifest.Entry) (doc *document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: %v", ErrLoaderPanic, r)
		}
	}()
	return p.documentProc.process(ctx, entry)
}

// store embeds a document and replaces its chunks and checkpoint atomically.
func (p *Pipeline) store(ctx context.Context, doc *document) error {
	if err := p.embeddingProc.process(ctx, doc.chunks); err != nil {
		return err
	}

	return p.chunkRepository.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := p.chunkRepository.DeleteChunksByPath(ctx, doc.path); err != nil {
			return err
		}
		for start := 0; start < len(doc.chunks); start += p.batchSize {
			end := min(start+p.batchSize, len(doc.chunks))
			if _, err := p.chunkRepository.AddChunks(ctx, doc.chunks[start:end]...); err != nil {
				return err
			}
		}
		return p.checkpointRepository.SaveCheckpoint(ctx, &core.Checkpoint{
			Path:   doc.path,
			Chunks: len(doc.chunks),
		})
	})
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
