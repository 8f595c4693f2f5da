package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent_Deterministic(t *testing.T) {
	assert.Equal(t, IDFromContent("scheda"), IDFromContent("scheda"))
	assert.NotEqual(t, IDFromContent("scheda"), IDFromContent("relazione"))
}

func TestChunkID(t *testing.T) {
	path := "2021_Torino_Rossi/RES_scheda.pdf"

	assert.Equal(t, ChunkID(path, 0), ChunkID(path, 0))
	assert.NotEqual(t, ChunkID(path, 0), ChunkID(path, 1))
	assert.NotEqual(t, ChunkID(path, 0), ChunkID("altro/RES_scheda.pdf", 0))
	assert.Equal(t, IDFromContent(path+"#3"), ChunkID(path, 3))
}
