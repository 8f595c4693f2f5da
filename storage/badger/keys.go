package badger

import (
	"encoding/binary"

	"github.com/highestlab/ai4restory/core"
)

// Key prefixes for different data types
const (
	chunkPrefix      = "chunk:"
	chunkPathPrefix  = "chunkpath:"
	checkpointPrefix = "chkpt:"
)

// pathTerminator separates a path from the ID in path index keys.
// Object names never contain NUL, so one path's keys never prefix another's.
const pathTerminator = 0x00

// makeChunkKey generates a key for a chunk by ID.
// Format: prefix + BigEndian(id)
func makeChunkKey(id core.ID) []byte {
	buf := make([]byte, len(chunkPrefix)+8)
	offset := copy(buf, chunkPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialChunkPathKey generates the prefix shared by all index keys of one path.
// Format: prefix + path + NUL
func makePartialChunkPathKey(path string) []byte {
	buf := make([]byte, 0, len(chunkPathPrefix)+len(path)+1)
	buf = append(buf, chunkPathPrefix...)
	buf = append(buf, path...)
	return append(buf, pathTerminator)
}

// makeChunkPathKey generates the path index key of one chunk.
// Format: prefix + path + NUL + BigEndian(id)
func makeChunkPathKey(path string, id core.ID) []byte {
	partial := makePartialChunkPathKey(path)
	buf := make([]byte, len(partial)+8)
	offset := copy(buf, partial)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// idFromKey decodes the ID stored in the last 8 bytes of a chunk or path index key.
func idFromKey(key []byte) core.ID {
	if len(key) < 8 {
		return 0
	}
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
}

// makeCheckpointKey generates a key for the ingestion checkpoint of an object.
func makeCheckpointKey(path string) []byte {
	return []byte(checkpointPrefix + path)
}
