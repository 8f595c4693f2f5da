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


package chat

import (
	"context"

	"github.com/highestlab/ai4restory/core"
	"github.com/tmc/langchaingo/schema"
)

// Metadata keys set on retrieved documents.
const (
	MetadataSource  = "source"
	MetadataTag     = "tag"
	MetadataPath    = "path"
	MetadataChunkID = "chunk_id"
	MetadataScore   = "score"
)

// DefaultTopK is the number of chunks handed to the model per question.
const DefaultTopK = 5

// ChunkSearcher finds the chunks most relevant to a query.
type ChunkSearcher interface {
	FindSimilar(ctx context.Context, query string, maxHits int) ([]*core.SearchResult, error)
}

// Retriever adapts a ChunkSearcher to the langchaingo retriever interface.
type Retriever struct {
	searcher ChunkSearcher
	k        int
}

var _ schema.Retriever = (*Retriever)(nil)

// NewRetriever returns a retriever yielding up to k documents per query.
// k <= 0 selects DefaultTopK.
func NewRetriever(searcher ChunkSearcher, k int) (*Retriever, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if k <= 0 {
		k = DefaultTopK
	}
	return &Retriever{searcher: searcher, k: k}, nil
}

// GetRelevantDocuments returns the best matching chunks as documents, best first.
func (r *Retriever) GetRelevantDocuments(ctx context.Context, query string) ([]schema.Document, error) {
	results, err := r.searcher.FindSimilar(ctx, query, r.k)
	if err != nil {
		return nil, err
	}

	docs := make([]schema.Document, 0, len(results))
	for _, result := range results {
		chunk := result.Chunk
		docs = append(docs, schema.Document{
			PageContent: chunk.Contents,
			Score:       result.Score,
			Metadata: map[string]any{
				MetadataSource:  chunk.Source,
				MetadataTag:     chunk.Tag,
				MetadataPath:    chunk.Path,
				MetadataChunkID: chunk.Index,
				MetadataScore:   result.Score,
			},
		})
	}
	return docs, nil
}
