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


// Package storage provides the storage abstraction layer for ai4restory.
//
// This package defines repository interfaces that decouple the vector store
// from ingestion, search and chat. Chunks carry their embedding vectors and
// are searched by cosine similarity; checkpoints record which bucket objects
// have already been ingested.
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces to keep callers independent of the
// backend:
//
//	repo, err := badger.NewChunkRepository(backend) // storage.ChunkRepository
//
// Internal constructors may return concrete types since they're only used
// within the implementation package.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	chunks := badger.NewChunkRepository(backend)
//	results, err := chunks.FindSimilar(ctx, queryVector, 0.3, 5)
//
// In tests, open the backend in memory with badger.OpenBackend("", true) or
// use badger.NewMemoryRepositories.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context. Inside WithTransaction the
// context also carries the open transaction, so nested repository calls are
// committed or rolled back together.
package storage
