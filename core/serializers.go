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
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the stored types. Field order is the wire order;
// append new fields at the end only.
var (
	IDMUS         = idMUS{}
	ChunkMUS      = chunkMUS{}
	CheckpointMUS = checkpointMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

type chunkMUS struct{}

func (chunkMUS) Marshal(v Chunk, bs []byte) (n int) {
	w := musWriter{bs: bs}
	w.id(v.Id)
	w.str(v.Source)
	w.str(v.Path)
	w.str(v.Tag)
	w.integer(v.Index)
	w.str(v.Contents)
	w.vector(v.Vector)
	w.timestamp(v.InsertedAt)
	w.timestamp(v.UpdatedAt)
	return w.n
}

func (chunkMUS) Unmarshal(bs []byte) (v Chunk, n int, err error) {
	r := musReader{bs: bs}
	v.Id = r.id()
	v.Source = r.str()
	v.Path = r.str()
	v.Tag = r.str()
	v.Index = r.integer()
	v.Contents = r.str()
	v.Vector = r.vector()
	v.InsertedAt = r.timestamp()
	v.UpdatedAt = r.timestamp()
	return v, r.n, r.err
}

func (chunkMUS) Size(v Chunk) (size int) {
	return IDMUS.Size(v.Id) +
		ord.String.Size(v.Source) +
		ord.String.Size(v.Path) +
		ord.String.Size(v.Tag) +
		varint.Int64.Size(int64(v.Index)) +
		ord.String.Size(v.Contents) +
		vectorSize(v.Vector) +
		timeSize(v.InsertedAt) +
		timeSize(v.UpdatedAt)
}

type checkpointMUS struct{}

func (checkpointMUS) Marshal(v Checkpoint, bs []byte) (n int) {
	w := musWriter{bs: bs}
	w.str(v.Path)
	w.integer(v.Chunks)
	w.timestamp(v.UpdatedAt)
	return w.n
}

func (checkpointMUS) Unmarshal(bs []byte) (v Checkpoint, n int, err error) {
	r := musReader{bs: bs}
	v.Path = r.str()
	v.Chunks = r.integer()
	v.UpdatedAt = r.timestamp()
	return v, r.n, r.err
}

func (checkpointMUS) Size(v Checkpoint) (size int) {
	return ord.String.Size(v.Path) +
		varint.Int64.Size(int64(v.Chunks)) +
		timeSize(v.UpdatedAt)
}

// Timestamps are stored as Unix microseconds; the zero time is stored as 0.
func unixMicro(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func timeSize(t time.Time) int {
	return varint.Int64.Size(unixMicro(t))
}

func vectorSize(v []float32) int {
	size := varint.Uint64.Size(uint64(len(v)))
	for _, f := range v {
		size += raw.Float32.Size(f)
	}
	return size
}

// musWriter marshals fields sequentially into a buffer sized by the caller.
type musWriter struct {
	bs []byte
	n  int
}

func (w *musWriter) id(v ID) {
	w.n += IDMUS.Marshal(v, w.bs[w.n:])
}

func (w *musWriter) str(v string) {
	w.n += ord.String.Marshal(v, w.bs[w.n:])
}

func (w *musWriter) integer(v int) {
	w.n += varint.Int64.Marshal(int64(v), w.bs[w.n:])
}

func (w *musWriter) timestamp(v time.Time) {
	w.n += varint.Int64.Marshal(unixMicro(v), w.bs[w.n:])
}

func (w *musWriter) vector(v []float32) {
	w.n += varint.Uint64.Marshal(uint64(len(v)), w.bs[w.n:])
	for _, f := range v {
		w.n += raw.Float32.Marshal(f, w.bs[w.n:])
	}
}

// musReader unmarshals fields sequentially, stopping at the first error.
type musReader struct {
	bs  []byte
	n   int
	err error
}

func (r *musReader) id() ID {
	if r.err != nil {
		return 0
	}
	v, n, err := IDMUS.Unmarshal(r.bs[r.n:])
	r.n += n
	r.err = err
	return v
}

func (r *musReader) str() string {
	if r.err != nil {
		return ""
	}
	v, n, err := ord.String.Unmarshal(r.bs[r.n:])
	r.n += n
	r.err = err
	return v
}

func (r *musReader) integer() int {
	if r.err != nil {
		return 0
	}
	v, n, err := varint.Int64.Unmarshal(r.bs[r.n:])
	r.n += n
	r.err = err
	return int(v)
}

func (r *musReader) timestamp() time.Time {
	if r.err != nil {
		return time.Time{}
	}
	v, n, err := varint.Int64.Unmarshal(r.bs[r.n:])
	r.n += n
	r.err = err
	if err != nil || v == 0 {
		return time.Time{}
	}
	return time.UnixMicro(v).UTC()
}

func (r *musReader) vector() []float32 {
	if r.err != nil {
		return nil
	}
	length, n, err := varint.Uint64.Unmarshal(r.bs[r.n:])
	r.n += n
	if err != nil {
		r.err = err
		return nil
	}
	if length == 0 {
		return nil
	}
	if length > uint64(len(r.bs)-r.n) {
		r.err = ErrCorruptData
		return nil
	}
	v := make([]float32, 0, length)
	for i := uint64(0); i < length; i++ {
		f, n, err := raw.Float32.Unmarshal(r.bs[r.n:])
		r.n += n
		if err != nil {
			r.err = err
			return nil
		}
		v = append(v, f)
	}
	return v
}
