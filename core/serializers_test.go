package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkMUS_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	chunk := Chunk{
		Id:         ChunkID("2021_Torino_Rossi/RES_scheda.pdf", 2),
		Source:     "RES_scheda.pdf",
		Path:       "2021_Torino_Rossi/RES_scheda.pdf",
		Tag:        "Scheda di restauro | Torino",
		Index:      2,
		Contents:   "Consolidamento della pellicola pittorica — velinatura",
		Vector:     []float32{0.25, -0.5, 0.125},
		InsertedAt: now,
		UpdatedAt:  now.Add(time.Second),
	}

	buf := make([]byte, ChunkMUS.Size(chunk))
	n := ChunkMUS.Marshal(chunk, buf)
	assert.Equal(t, len(buf), n)

	decoded, m, err := ChunkMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, n, m)
	assert.Equal(t, chunk, decoded)
}

func TestChunkMUS_ZeroTimesAndEmptyVector(t *testing.T) {
	chunk := Chunk{Path: "a.pdf", Contents: "x"}

	buf := make([]byte, ChunkMUS.Size(chunk))
	ChunkMUS.Marshal(chunk, buf)

	decoded, _, err := ChunkMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.True(t, decoded.InsertedAt.IsZero())
	assert.Nil(t, decoded.Vector)
}

func TestChunkMUS_Truncated(t *testing.T) {
	chunk := Chunk{Path: "a.pdf", Contents: "contenuto", Vector: []float32{1, 2, 3}}
	buf := make([]byte, ChunkMUS.Size(chunk))
	ChunkMUS.Marshal(chunk, buf)

	_, _, err := ChunkMUS.Unmarshal(buf[:len(buf)/2])
	assert.Error(t, err)
}

func TestCheckpointMUS_RoundTrip(t *testing.T) {
	checkpoint := Checkpoint{
		Path:      "2021_Torino_Rossi/RES_scheda.pdf",
		Chunks:    7,
		UpdatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	buf := make([]byte, CheckpointMUS.Size(checkpoint))
	CheckpointMUS.Marshal(checkpoint, buf)

	decoded, _, err := CheckpointMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, checkpoint, decoded)
}
