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


package metadata

import (
	"context"
	"log/slog"
	"strings"

	"github.com/highestlab/ai4restory/ai"
	"github.com/highestlab/ai4restory/core"
)

// Extractor derives FileRecords from object names.
// It holds no state between calls beyond what the recognizer keeps.
type Extractor struct {
	recognizer ai.EntityRecognizer
	logger     *slog.Logger
}

type ExtractorOption func(*Extractor)

// WithLogger sets the logger used to report recognizer failures.
func WithLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates an extractor that identifies authors with recognizer.
// A nil recognizer finds no people, so authors fall back to the token rules.
func NewExtractor(recognizer ai.EntityRecognizer, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		recognizer: recognizer,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "metadata-extractor")
	return e
}

// Extract returns one record per name, in input order.
func (e *Extractor) Extract(ctx context.Context, names []string) []core.FileRecord {
	records := make([]core.FileRecord, 0, len(names))
	for _, name := range names {
		records = append(records, e.ExtractOne(ctx, name))
	}
	e.logger.Debug("extracted metadata", "records", len(records))
	return records
}

// ExtractOne derives the record for a single object name.
func (e *Extractor) ExtractOne(ctx context.Context, name string) core.FileRecord {
	segments := strings.Split(name, "/")
	fileName := segments[len(segments)-1]
	f := parseFolder(detectFolder(segments))

	record := core.FileRecord{
		SourceTitle:     fileName,
		Path:            name,
		ProjectCode:     f.commessa,
		Location:        f.luogo,
		RestorationYear: f.year(),
	}

	if f.rest != "" {
		record.Author = e.resolveAuthor(ctx, f.rest)
		record.Title = resolveTitle(f.rest, record.Author)
	}

	record.FileType = documentType(fileName, f)
	return record
}

// recognize runs the recognizer, treating failures as "no entities".
func (e *Extractor) recognize(ctx context.Context, text string) []ai.Entity {
	if e.recognizer == nil {
		return nil
	}
	entities, err := e.recognizer.RecognizeEntities(ctx, text)
	if err != nil {
		e.logger.Warn("entity recognition failed", "text", text, "err", err)
		return nil
	}
	return entities
}
