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


package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/highestlab/ai4restory/bucket"
	"github.com/saracen/walker"
)

// ErrInvalidName is returned for object names that leave the bucket root.
var ErrInvalidName = errors.New("invalid object name")

// Bucket serves a directory tree as a bucket. Object names are file paths
// relative to the root, always separated by '/'.
type Bucket struct {
	root   string
	logger *slog.Logger
}

var _ bucket.Bucket = (*Bucket)(nil)

// New returns a bucket rooted at dir. The directory must exist.
func New(dir string) (*Bucket, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}
	return &Bucket{
		root:   root,
		logger: slog.Default().With("component", "local-bucket", "root", root),
	}, nil
}

// List walks the tree concurrently and returns the regular files found.
func (b *Bucket) List(ctx context.Context) ([]string, error) {
	var (
		mu    sync.Mutex
		names []string
	)

	walkFn := func(pathname string, fi os.FileInfo) error {
		if !fi.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(b.root, pathname)
		if err != nil {
			return err
		}
		mu.Lock()
		names = append(names, filepath.ToSlash(rel))
		mu.Unlock()
		return nil
	}

	errorCallback := walker.WithErrorCallback(func(pathname string, err error) error {
		if errors.Is(err, fs.ErrPermission) {
			b.logger.Warn("skipping unreadable path", "path", pathname, "err", err)
			return nil
		}
		return err
	})

	if err := walker.WalkWithContext(ctx, b.root, walkFn, errorCallback); err != nil {
		return nil, err
	}

	slices.Sort(names)
	b.logger.Debug("listed objects", "count", len(names))
	return names, nil
}

// Get reads the named file.
func (b *Bucket) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := b.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", bucket.ErrObjectNotFound, name)
	}
	return data, err
}

// resolve maps an object name to a file path inside the root.
func (b *Bucket) resolve(name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	full := filepath.Join(b.root, filepath.FromSlash(name))
	rel, err := filepath.Rel(b.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return full, nil
}
