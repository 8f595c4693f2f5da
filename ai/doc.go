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


// Package ai provides abstractions for the AI services used by ai4restory.
//
// This package defines interfaces for text embeddings, named-entity
// recognition and image transcription. The metadata extractor, the ingestion
// pipeline and the chat assistant depend on these abstractions rather than on
// a concrete model vendor.
//
// # Interfaces
//
//   - Embedder: Generates vector embeddings from text
//   - EntityRecognizer: Finds named entities (people, places, ...) in Italian text
//   - ImageTranscriber: Turns a scanned page or photograph into text
//   - AIProvider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors in ai/openai return INTERFACE types; mock constructors
// return CONCRETE types so tests can inject behavior and inspect call counts.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	recognizer := ai.NewCachingRecognizer(provider.EntityRecognizer(), 1024)
//	entities, err := recognizer.RecognizeEntities(ctx, "Mario Rossi")
package ai
