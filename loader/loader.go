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


// Package loader extracts plain text from the document formats found in the
// archive: PDF reports, Excel tables and photographs.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/highestlab/ai4restory/ai"
	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedType is returned for extensions the loader cannot read.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrTranscriberRequired is returned when an image is loaded without a transcriber.
	ErrTranscriberRequired = errors.New("image transcriber required")
)

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Loader dispatches on file extension.
type Loader struct {
	transcriber ai.ImageTranscriber
	logger      *slog.Logger
}

// New returns a loader. transcriber may be nil when no images will be loaded.
func New(transcriber ai.ImageTranscriber) *Loader {
	return &Loader{
		transcriber: transcriber,
		logger:      slog.Default().With("component", "loader"),
	}
}

// Supported reports whether name has an extension the loader can read.
func Supported(name string) bool {
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".pdf", ".xlsx":
		return true
	default:
		_, ok := imageTypes[ext]
		return ok
	}
}

// Supports reports whether the loader can read name.
func (l *Loader) Supports(name string) bool {
	return Supported(name)
}

// Load returns the text of the document named name with contents data.
func (l *Loader) Load(ctx context.Context, name string, data []byte) (string, error) {
	ext := strings.ToLower(path.Ext(name))
	switch ext {
	case ".pdf":
		return l.loadPDF(data)
	case ".xlsx":
		return loadSpreadsheet(data)
	}

	mimeType, ok := imageTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, name)
	}
	if l.transcriber == nil {
		return "", ErrTranscriberRequired
	}
	return l.transcriber.TranscribeImage(ctx, mimeType, data)
}

// loadPDF joins the text of each page with blank lines. A page's text is
// followed by its table rows. Pages that cannot be decoded are logged and skipped.
func (l *Loader) loadPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			l.logger.Warn("skipping unreadable pdf page", "page", i, "err", err)
			continue
		}

		parts := make([]string, 0, 2)
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
		rows, err := tableRows(page)
		if err != nil {
			l.logger.Warn("skipping pdf page tables", "page", i, "err", err)
		} else if len(rows) > 0 {
			parts = append(parts, strings.Join(rows, "\n"))
		}
		if len(parts) > 0 {
			pages = append(pages, strings.Join(parts, "\n"))
		}
	}
	return strings.Join(pages, "\n\n"), nil
}

// tableRows renders the page lines that hold text at more than one horizontal
// position as comma-separated cells. Runs sharing a position form one cell.
func tableRows(page pdf.Page) ([]string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, row := range rows {
		var (
			cells []string
			lastX float64
		)
		for _, run := range row.Content {
			s := strings.TrimSpace(run.S)
			if s == "" {
				continue
			}
			if len(cells) > 0 && run.X == lastX {
				cells[len(cells)-1] += " " + s
				continue
			}
			cells = append(cells, s)
			lastX = run.X
		}
		if len(cells) > 1 {
			lines = append(lines, strings.Join(cells, ", "))
		}
	}
	return lines, nil
}

// loadSpreadsheet renders every sheet as lines of comma-separated cells.
func loadSpreadsheet(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("reading spreadsheet: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("reading sheet %s: %w", sheet, err)
		}
		for _, row := range rows {
			line := strings.Join(row, ", ")
			if strings.TrimSpace(strings.ReplaceAll(line, ",", "")) == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
