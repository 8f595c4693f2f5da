package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/highestlab/ai4restory/bucket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name, contents string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(contents), 0o644))
}

func TestNew(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "x.txt", "x")

		_, err := New(filepath.Join(root, "x.txt"))
		assert.ErrorContains(t, err, "not a directory")
	})
}

func TestBucket_List(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "2019AB22_Venezia_Pala/RES_scheda.pdf", "pdf")
	writeFile(t, root, "2019AB22_Venezia_Pala/foto/2019AB22-P1.jpg", "jpg")
	writeFile(t, root, "2021_Torino_Tela/M01.tif", "tif")
	writeFile(t, root, "LEGGIMI.txt", "txt")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vuota"), 0o755))

	b, err := New(root)
	require.NoError(t, err)

	names, err := b.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2019AB22_Venezia_Pala/RES_scheda.pdf",
		"2019AB22_Venezia_Pala/foto/2019AB22-P1.jpg",
		"2021_Torino_Tela/M01.tif",
		"LEGGIMI.txt",
	}, names)
}

func TestBucket_ListEmpty(t *testing.T) {
	b, err := New(t.TempDir())
	require.NoError(t, err)

	names, err := b.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestBucket_Get(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/b.txt", "contenuto")
	b, err := New(root)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("existing object", func(t *testing.T) {
		data, err := b.Get(ctx, "a/b.txt")
		require.NoError(t, err)
		assert.Equal(t, "contenuto", string(data))
	})

	t.Run("missing object", func(t *testing.T) {
		_, err := b.Get(ctx, "a/c.txt")
		assert.ErrorIs(t, err, bucket.ErrObjectNotFound)
	})

	t.Run("names outside the root are rejected", func(t *testing.T) {
		for _, name := range []string{"", "/etc/passwd", "../x", "a/../../x"} {
			_, err := b.Get(ctx, name)
			assert.ErrorIs(t, err, ErrInvalidName, name)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := b.Get(cctx, "a/b.txt")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
