package manifest

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/highestlab/ai4restory/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testRecords = []core.FileRecord{
	{
		SourceTitle:     "RES_scheda.pdf",
		Path:            "2021_Torino_MarioRossi-inv2023/RES_scheda.pdf",
		ProjectCode:     "2021",
		Location:        "Torino",
		Author:          "anonimo",
		Title:           "MarioRossi",
		RestorationYear: "2021",
		FileType:        "Scheda di restauro",
	},
	{
		SourceTitle: "photo.jpg",
		Path:        "2021ABC22-LOC-Rossi-inv001/photo.jpg",
		ProjectCode: "2021ABC22-LOC-Rossi",
		Location:    "inv001",
		FileType:    "jpg",
	},
}

func TestWriteFile_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadati.xlsx")
	require.NoError(t, WriteFile(path, testRecords, MetadataColumns...))

	entries, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, testRecords[0], entries[0].Record)
	assert.Equal(t, testRecords[1], entries[1].Record)
	assert.Empty(t, entries[0].Tag)
}

func TestWriteFile_Header(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elenco.xlsx")
	require.NoError(t, WriteFile(path, testRecords, ListingColumns...))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(Sheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Source_title", "Path"},
		{"RES_scheda.pdf", "2021_Torino_MarioRossi-inv2023/RES_scheda.pdf"},
		{"photo.jpg", "2021ABC22-LOC-Rossi-inv001/photo.jpg"},
	}, rows)
}

func TestWriteFile_NoColumns(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "x.xlsx"), testRecords)
	assert.ErrorIs(t, err, ErrNoColumns)
}

func TestWriteFile_EmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vuoto.xlsx")
	require.NoError(t, WriteFile(path, nil, MetadataColumns...))

	entries, err := ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRead_ColumnsByName(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]any{
		{"Tag_completo", "Extra", "Path", "Source_title"},
		{"Scheda | Pala", "ignored", "a/RES_1.pdf", "RES_1.pdf"},
		{"", "ignored", "", "orphan.pdf"},
		{"", "", "b/2.jpg"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(Sheet, cell, &row))
	}
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	entries, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a/RES_1.pdf", entries[0].Record.Path)
	assert.Equal(t, "RES_1.pdf", entries[0].Record.SourceTitle)
	assert.Equal(t, "Scheda | Pala", entries[0].Tag)
	assert.Equal(t, "b/2.jpg", entries[1].Record.Path)
	assert.Empty(t, entries[1].Record.SourceTitle)
}

func TestRead_MissingPath(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Entries(testRecords), SourceTitle, FileType))

	_, err := Read(&buf)
	assert.ErrorIs(t, err, ErrMissingPath)
}

func TestWrite_TagColumnComposes(t *testing.T) {
	var buf bytes.Buffer
	entries := []Entry{
		{Record: testRecords[0]},
		{Record: testRecords[1], Tag: "Foto"},
	}
	require.NoError(t, Write(&buf, entries, Path, Tag))

	read, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, read, 2)
	assert.Equal(t, "Scheda di restauro | MarioRossi | anonimo | Torino | 2021 | 2021", read[0].Tag)
	assert.Equal(t, "Foto", read[1].Tag)
}

func TestEntry_ResolvedTag(t *testing.T) {
	assert.Equal(t, "explicit", Entry{Record: testRecords[0], Tag: "explicit"}.ResolvedTag())
	assert.Equal(t, "jpg | inv001 | 2021ABC22-LOC-Rossi", Entry{Record: testRecords[1]}.ResolvedTag())
	assert.Empty(t, Entry{}.ResolvedTag())
}
