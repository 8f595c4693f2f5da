package main

import (
	"bytes"
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/highestlab/ai4restory/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func writeFiles(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("contenuto"), 0o644))
	}
	return dir
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"ai4restory", "--env-file", ""}, args...))
	return out.String(), err
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			set := flag.NewFlagSet("test", flag.ContinueOnError)
			set.String("log-level", tt.level, "")
			c := cli.NewContext(cli.NewApp(), set, nil)

			err := setupLogger(c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, slog.Default().Enabled(context.Background(), tt.want))
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("empty path is ignored", func(t *testing.T) {
		assert.NoError(t, loadEnvFile(""))
	})

	t.Run("sets unset variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("AI4R_TEST_BUCKET=restauri\n"), 0o644))
		t.Cleanup(func() { os.Unsetenv("AI4R_TEST_BUCKET") })

		require.NoError(t, loadEnvFile(path))
		assert.Equal(t, "restauri", os.Getenv("AI4R_TEST_BUCKET"))
	})

	t.Run("does not override the environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("AI4R_TEST_MODEL=from-file\n"), 0o644))
		t.Setenv("AI4R_TEST_MODEL", "from-env")

		require.NoError(t, loadEnvFile(path))
		assert.Equal(t, "from-env", os.Getenv("AI4R_TEST_MODEL"))
	})
}

func TestListCommand(t *testing.T) {
	dir := writeFiles(t, "b/2.pdf", "a/1.pdf")

	t.Run("stdout", func(t *testing.T) {
		out, err := runApp(t, "list", "--local-dir", dir)
		require.NoError(t, err)
		assert.Equal(t, "a/1.pdf\nb/2.pdf\n", out)
	})

	t.Run("xlsx", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "elenco.xlsx")
		_, err := runApp(t, "list", "--local-dir", dir, "--output", path)
		require.NoError(t, err)

		entries, err := manifest.ReadFile(path)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "a/1.pdf", entries[0].Record.Path)
		assert.Equal(t, "1.pdf", entries[0].Record.SourceTitle)
		assert.Empty(t, entries[0].Record.FileType)
	})
}

func TestExtractMetadataCommand(t *testing.T) {
	dir := writeFiles(t, "2021_Torino_MarioRossi-inv2023/RES_scheda.pdf")
	path := filepath.Join(t.TempDir(), "metadata.xlsx")

	_, err := runApp(t, "extract-metadata", "--local-dir", dir, "--no-ner", "--output", path)
	require.NoError(t, err)

	entries, err := manifest.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	record := entries[0].Record
	assert.Equal(t, "2021", record.ProjectCode)
	assert.Equal(t, "Torino", record.Location)
	assert.Equal(t, "Scheda di restauro", record.FileType)
}

func TestIngestCommand(t *testing.T) {
	dir := writeFiles(t, "Restauri/appunti.txt", "Restauri/rotto.pdf")
	manifestPath := filepath.Join(t.TempDir(), "metadata.xlsx")
	_, err := runApp(t, "extract-metadata", "--local-dir", dir, "--no-ner", "--output", manifestPath)
	require.NoError(t, err)

	t.Run("manifest is required", func(t *testing.T) {
		_, err := runApp(t, "ingest", "--local-dir", dir)
		assert.Error(t, err)
	})

	t.Run("unsupported documents are skipped and failures reported", func(t *testing.T) {
		db := filepath.Join(t.TempDir(), "db")
		out, err := runApp(t, "ingest", "--local-dir", dir, "--manifest", manifestPath, "--db", db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 documents failed")
		assert.Contains(t, err.Error(), "Restauri/rotto.pdf")
		assert.Contains(t, out, "0 ingested, 1 skipped, 1 failed")
	})

	t.Run("invalid batch size", func(t *testing.T) {
		db := filepath.Join(t.TempDir(), "db")
		_, err := runApp(t, "ingest", "--local-dir", dir, "--manifest", manifestPath, "--db", db, "--batch-size", "0")
		assert.ErrorContains(t, err, "batch-size")
	})
}

func TestSearchAndAskRequireText(t *testing.T) {
	db := filepath.Join(t.TempDir(), "db")

	_, err := runApp(t, "search", "--db", db)
	assert.ErrorContains(t, err, "query is required")

	_, err = runApp(t, "ask", "--db", db, "  ")
	assert.ErrorContains(t, err, "question is required")
}

func TestReembedCommand(t *testing.T) {
	t.Run("empty database", func(t *testing.T) {
		db := filepath.Join(t.TempDir(), "db")
		out, err := runApp(t, "reembed", "--db", db)
		assert.NoError(t, err)
		assert.Contains(t, out, "No chunks found in database")
	})

	t.Run("invalid report interval", func(t *testing.T) {
		db := filepath.Join(t.TempDir(), "db")
		_, err := runApp(t, "reembed", "--db", db, "--report-interval", "0")
		assert.ErrorContains(t, err, "report-interval")
	})

	t.Run("invalid max retries", func(t *testing.T) {
		db := filepath.Join(t.TempDir(), "db")
		_, err := runApp(t, "reembed", "--db", db, "--max-retries", "0")
		assert.ErrorContains(t, err, "max-retries")
	})
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := runApp(t, "--log-level", "loud", "list", "--local-dir", t.TempDir())
	assert.ErrorContains(t, err, "invalid log level")
}
