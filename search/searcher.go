package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/highestlab/ai4restory/ai"
	"github.com/highestlab/ai4restory/core"
	"github.com/highestlab/ai4restory/storage"
)

const (
	// VerbatimBoost is added to the score of chunks containing every query word.
	VerbatimBoost = 0.3

	// candidateFactor widens the similarity search so boosted chunks just
	// below the cut can still reach the top maxHits.
	candidateFactor = 3
)

// Searcher provides semantic search over document chunks.
type Searcher struct {
	chunkRepository storage.ChunkRepository
	embedder        ai.Embedder
	minSimilarity   float32
	logger          *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMinSimilarity drops chunks whose similarity to the query is below threshold.
// Default is 0.
func WithMinSimilarity(threshold float32) Option {
	return func(s *Searcher) error {
		s.minSimilarity = threshold
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	chunkRepository storage.ChunkRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Searcher, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		chunkRepository: chunkRepository,
		embedder:        embedder,
		logger:          slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "search")

	return s, nil
}

// FindSimilar searches for chunks similar to the query.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilar(ctx context.Context, query string, maxHits int) ([]*core.SearchResult, error) {
	return s.FindSimilarWithMonitor(ctx, query, maxHits, nil)
}

// FindSimilarWithMonitor searches for chunks similar to the query with monitoring.
// The monitor receives callbacks at each stage of the search process.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilarWithMonitor(ctx context.Context, query string, maxHits int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if maxHits <= 0 {
		return nil, ErrInvalidMaxHits
	}

	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	candidates, err := s.chunkRepository.FindSimilar(ctx, core.NormalizeVector(embedding), s.minSimilarity, maxHits*candidateFactor)
	if err != nil {
		s.logger.Error("error querying for similar chunks", "err", err)
		return nil, err
	}
	monitor.AfterSemanticSearch(candidates)

	results := make([]*core.SearchResult, 0, len(candidates))
	for _, candidate := range candidates {
		score := candidate.Score

		// Apply verbatim match boost
		if containsAllQueryWords(candidate.Chunk.Contents, query) {
			score += VerbatimBoost
			monitor.VerbatimHit(candidate.Chunk)
		}

		results = append(results, &core.SearchResult{
			Chunk: candidate.Chunk,
			Score: score,
		})
	}

	// Sort by score descending
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxHits {
		results = results[:maxHits]
	}
	monitor.Finish(results)

	s.logger.Debug("search complete", "query", query, "candidates", len(candidates), "results", len(results))
	return results, nil
}
