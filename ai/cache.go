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


package ai

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachingRecognizer memoizes the results of another EntityRecognizer.
// Folder names repeat across every file they contain, so most lookups hit.
type CachingRecognizer struct {
	inner EntityRecognizer
	cache *lru.Cache[string, []Entity]
}

// NewCachingRecognizer wraps inner with an LRU cache holding up to size results.
// A size of zero or less returns inner unchanged.
func NewCachingRecognizer(inner EntityRecognizer, size int) (EntityRecognizer, error) {
	if inner == nil {
		return nil, ErrRecognizerRequired
	}
	if size <= 0 {
		return inner, nil
	}
	cache, err := lru.New[string, []Entity](size)
	if err != nil {
		return nil, err
	}
	return &CachingRecognizer{inner: inner, cache: cache}, nil
}

// RecognizeEntities returns the cached entities for text or asks the wrapped recognizer.
// Errors are not cached.
func (c *CachingRecognizer) RecognizeEntities(ctx context.Context, text string) ([]Entity, error) {
	if entities, ok := c.cache.Get(text); ok {
		return entities, nil
	}
	entities, err := c.inner.RecognizeEntities(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(text, entities)
	return entities, nil
}

// Len returns the number of cached results.
func (c *CachingRecognizer) Len() int {
	return c.cache.Len()
}
