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


package bucket

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned by Fetcher.Get when no object has the requested name.
var ErrObjectNotFound = errors.New("object not found")

// Lister enumerates the objects in a bucket.
type Lister interface {
	// List returns every object name in lexicographic order.
	List(ctx context.Context) ([]string, error)
}

// Fetcher reads object contents.
type Fetcher interface {
	// Get returns the full contents of the named object.
	Get(ctx context.Context, name string) ([]byte, error)
}

// Bucket lists and fetches objects.
type Bucket interface {
	Lister
	Fetcher
}
