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


package core

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

type ID uint64

func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ChunkID derives the stable ID of the index-th chunk of the object at path.
// Re-ingesting a document therefore overwrites its previous chunks.
func ChunkID(path string, index int) ID {
	return IDFromContent(path + "#" + strconv.Itoa(index))
}

// AnonymousAuthor is the author value used when a folder names several people
// or no single token can be attributed.
const AnonymousAuthor = "anonimo"

// FileRecord is the metadata derived for one object in the bucket.
// Absent values are empty strings.
type FileRecord struct {
	SourceTitle     string // file name, last path segment
	Path            string // full object name
	ProjectCode     string // numero di commessa
	Location        string
	Author          string
	Title           string // titolo dell'opera
	RestorationYear string // anno di inizio restauro
	FileType        string
}

type Chunk struct {
	Id         ID
	Source     string // file name the chunk was extracted from
	Path       string // object name in the bucket
	Tag        string
	Index      int // position of the chunk within its document
	Contents   string
	Vector     []float32 // Embedding vector (populated by ingestion)
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Checkpoint marks a bucket object as ingested.
type Checkpoint struct {
	Path      string
	Chunks    int
	UpdatedAt time.Time
}

type SearchResult struct {
	Chunk *Chunk
	Score float32
}
