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


// Package manifest reads and writes the spreadsheets exchanged between
// listing, metadata extraction and ingestion.
//
// A manifest is a single-sheet xlsx file with a header row naming the columns
// and one row per object. Readers match columns by header name, so columns may
// appear in any order and unknown columns are ignored.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/highestlab/ai4restory/core"
	"github.com/xuri/excelize/v2"
)

// Sheet is the worksheet manifests are written to and read from.
const Sheet = "Sheet1"

// Column is a manifest header.
type Column string

const (
	SourceTitle     Column = "Source_title"
	Path            Column = "Path"
	ProjectCode     Column = "Numero_commessa"
	Location        Column = "Luogo"
	Author          Column = "Autore"
	Title           Column = "Titolo_opera"
	RestorationYear Column = "Anno_inizio_restauro"
	FileType        Column = "Tipo_file"
	Tag             Column = "Tag_completo"
)

var (
	// ListingColumns are written by a plain bucket listing.
	ListingColumns = []Column{SourceTitle, Path}

	// MetadataColumns are written by metadata extraction, in FileRecord order.
	MetadataColumns = []Column{SourceTitle, Path, ProjectCode, Location, Author, Title, RestorationYear, FileType}
)

var (
	// ErrNoColumns is returned when WriteFile is called without columns.
	ErrNoColumns = errors.New("no columns to write")

	// ErrMissingPath is returned when a manifest has no Path column.
	ErrMissingPath = errors.New("manifest has no Path column")

	// ErrEmptyManifest is returned when the sheet has no header row.
	ErrEmptyManifest = errors.New("manifest is empty")
)

// TagSeparator joins the fields of a composed tag.
const TagSeparator = " | "

// Entry is one manifest row.
type Entry struct {
	Record core.FileRecord

	// Tag is the Tag_completo column, empty when the manifest has none.
	Tag string
}

// ResolvedTag returns Tag, or a tag composed from the record's non-empty
// type, title, author, location, year and project code.
func (e Entry) ResolvedTag() string {
	if e.Tag != "" {
		return e.Tag
	}
	r := e.Record
	var parts []string
	for _, v := range []string{r.FileType, r.Title, r.Author, r.Location, r.RestorationYear, r.ProjectCode} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, TagSeparator)
}

func (c Column) value(e Entry) string {
	switch c {
	case SourceTitle:
		return e.Record.SourceTitle
	case Path:
		return e.Record.Path
	case ProjectCode:
		return e.Record.ProjectCode
	case Location:
		return e.Record.Location
	case Author:
		return e.Record.Author
	case Title:
		return e.Record.Title
	case RestorationYear:
		return e.Record.RestorationYear
	case FileType:
		return e.Record.FileType
	case Tag:
		return e.ResolvedTag()
	}
	return ""
}

func (c Column) set(e *Entry, v string) {
	switch c {
	case SourceTitle:
		e.Record.SourceTitle = v
	case Path:
		e.Record.Path = v
	case ProjectCode:
		e.Record.ProjectCode = v
	case Location:
		e.Record.Location = v
	case Author:
		e.Record.Author = v
	case Title:
		e.Record.Title = v
	case RestorationYear:
		e.Record.RestorationYear = v
	case FileType:
		e.Record.FileType = v
	case Tag:
		e.Tag = v
	}
}

// Entries wraps records without tags.
func Entries(records []core.FileRecord) []Entry {
	entries := make([]Entry, len(records))
	for i, r := range records {
		entries[i] = Entry{Record: r}
	}
	return entries
}

// WriteFile writes a manifest of records with the given columns to path,
// replacing any existing file.
func WriteFile(path string, records []core.FileRecord, columns ...Column) error {
	f, err := build(Entries(records), columns)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving manifest %s: %w", path, err)
	}
	slog.Debug("wrote manifest", "path", path, "rows", len(records), "columns", len(columns))
	return nil
}

// Write encodes a manifest of entries to w.
func Write(w io.Writer, entries []Entry, columns ...Column) error {
	f, err := build(entries, columns)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}

func build(entries []Entry, columns []Column) (*excelize.File, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}

	f := excelize.NewFile()
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = string(c)
	}
	if err := f.SetSheetRow(Sheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	for i, e := range entries {
		row := make([]any, len(columns))
		for j, c := range columns {
			row[j] = c.value(e)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(Sheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// ReadFile reads the manifest at path.
func ReadFile(path string) ([]Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest %s: %w", path, err)
	}
	defer f.Close()
	return read(f)
}

// Read decodes a manifest from r.
func Read(r io.Reader) ([]Entry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()
	return read(f)
}

// read parses the first sheet. Rows with an empty Path are skipped.
func read(f *excelize.File) ([]Entry, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyManifest
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyManifest
	}

	known := map[Column]bool{Tag: true}
	for _, c := range MetadataColumns {
		known[c] = true
	}
	columns := make([]Column, len(rows[0]))
	hasPath := false
	for i, h := range rows[0] {
		c := Column(strings.TrimSpace(h))
		if known[c] {
			columns[i] = c
			hasPath = hasPath || c == Path
		}
	}
	if !hasPath {
		return nil, ErrMissingPath
	}

	entries := make([]Entry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var e Entry
		for i, v := range row {
			if i < len(columns) && columns[i] != "" {
				columns[i].set(&e, strings.TrimSpace(v))
			}
		}
		if e.Record.Path == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
