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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/highestlab/ai4restory/bucket"
	"github.com/highestlab/ai4restory/core"
	"github.com/highestlab/ai4restory/manifest"
	"github.com/tmc/langchaingo/textsplitter"
)

// Chunking parameters for document text.
const (
	ChunkSize    = 1000
	ChunkOverlap = 200
)

// Separators used by the splitter, tried in order.
var Separators = []string{"\n\n", "\n", ".", " "}

// DocumentLoader extracts plain text from an object's contents.
// Supports is checked before an object is fetched.
type DocumentLoader interface {
	Supports(name string) bool
	Load(ctx context.Context, name string, data []byte) (string, error)
}

// document is one manifest entry after loading and splitting.
type document struct {
	path   string
	chunks []*core.Chunk
}

// documentProcessor turns manifest entries into unembedded chunks.
type documentProcessor struct {
	fetcher  bucket.Fetcher
	loader   DocumentLoader
	splitter textsplitter.TextSplitter
	logger   *slog.Logger
}

func newDocumentProcessor(fetcher bucket.Fetcher, loader DocumentLoader, logger *slog.Logger) *documentProcessor {
	return &documentProcessor{
		fetcher: fetcher,
		loader:  loader,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(ChunkSize),
			textsplitter.WithChunkOverlap(ChunkOverlap),
			textsplitter.WithSeparators(Separators),
		),
		logger: logger.With("processor", "documents"),
	}
}

// process fetches, loads and splits one entry.
func (dp *documentProcessor) process(ctx context.Context, entry manifest.Entry) (*document, error) {
	objectName := entry.Record.Path
	data, err := dp.fetcher.Get(ctx, objectName)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", objectName, err)
	}

	text, err := dp.loader.Load(ctx, objectName, data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", objectName, err)
	}

	var parts []string
	if strings.TrimSpace(text) != "" {
		parts, err = dp.splitter.SplitText(text)
		if err != nil {
			return nil, fmt.Errorf("splitting %s: %w", objectName, err)
		}
	}

	source := entry.Record.SourceTitle
	if source == "" {
		source = path.Base(objectName)
	}
	tag := entry.ResolvedTag()

	doc := &document{path: objectName}
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		doc.chunks = append(doc.chunks, &core.Chunk{
			Source:   source,
			Path:     objectName,
			Tag:      tag,
			Index:    len(doc.chunks),
			Contents: part,
		})
	}

	dp.logger.Debug("document split", "path", objectName, "chunks", len(doc.chunks))
	return doc, nil
}
