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


// Package oci reads a bucket in Oracle Cloud Infrastructure Object Storage.
package oci

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"slices"

	"github.com/highestlab/ai4restory/bucket"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/objectstorage"
)

// ErrBucketRequired is returned when no bucket name is configured.
var ErrBucketRequired = errors.New("bucket name required")

// DefaultProfile is the profile read from the OCI configuration file when none is set.
const DefaultProfile = "DEFAULT"

// Config locates the bucket and the credentials used to reach it.
type Config struct {
	// ConfigFile is the OCI CLI configuration file. Defaults to ~/.oci/config.
	ConfigFile string

	// Profile selects a section of ConfigFile. Defaults to DefaultProfile.
	Profile string

	// Namespace is the Object Storage namespace. Resolved from the service when empty.
	Namespace string

	// Bucket is the bucket name.
	Bucket string
}

// objectStorage is the subset of the SDK client used here.
type objectStorage interface {
	GetNamespace(ctx context.Context, request objectstorage.GetNamespaceRequest) (objectstorage.GetNamespaceResponse, error)
	ListObjects(ctx context.Context, request objectstorage.ListObjectsRequest) (objectstorage.ListObjectsResponse, error)
	GetObject(ctx context.Context, request objectstorage.GetObjectRequest) (objectstorage.GetObjectResponse, error)
}

// Bucket lists and fetches objects of one OCI bucket.
type Bucket struct {
	client    objectStorage
	namespace string
	name      string
	logger    *slog.Logger
}

var _ bucket.Bucket = (*Bucket)(nil)

// New creates a client from the OCI configuration file and resolves the
// namespace when cfg does not name one.
func New(ctx context.Context, cfg Config) (*Bucket, error) {
	if cfg.Bucket == "" {
		return nil, ErrBucketRequired
	}
	if cfg.ConfigFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.ConfigFile = filepath.Join(home, ".oci", "config")
	}
	if cfg.Profile == "" {
		cfg.Profile = DefaultProfile
	}

	provider, err := common.ConfigurationProviderFromFileWithProfile(cfg.ConfigFile, cfg.Profile, "")
	if err != nil {
		return nil, fmt.Errorf("loading OCI config %s: %w", cfg.ConfigFile, err)
	}
	client, err := objectstorage.NewObjectStorageClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("creating object storage client: %w", err)
	}
	return newBucket(ctx, client, cfg.Namespace, cfg.Bucket)
}

func newBucket(ctx context.Context, client objectStorage, namespace, name string) (*Bucket, error) {
	logger := slog.Default().With("component", "oci-bucket", "bucket", name)
	if namespace == "" {
		resp, err := client.GetNamespace(ctx, objectstorage.GetNamespaceRequest{})
		if err != nil {
			return nil, fmt.Errorf("resolving namespace: %w", err)
		}
		if resp.Value == nil || *resp.Value == "" {
			return nil, errors.New("resolving namespace: empty response")
		}
		namespace = *resp.Value
		logger.Debug("resolved namespace", "namespace", namespace)
	}
	return &Bucket{
		client:    client,
		namespace: namespace,
		name:      name,
		logger:    logger.With("namespace", namespace),
	}, nil
}

// Namespace returns the Object Storage namespace in use.
func (b *Bucket) Namespace() string {
	return b.namespace
}

// List follows NextStartWith until every page has been read.
func (b *Bucket) List(ctx context.Context) ([]string, error) {
	var names []string
	var start *string
	for page := 1; ; page++ {
		resp, err := b.client.ListObjects(ctx, objectstorage.ListObjectsRequest{
			NamespaceName: common.String(b.namespace),
			BucketName:    common.String(b.name),
			Start:         start,
		})
		if err != nil {
			return nil, fmt.Errorf("listing objects (page %d): %w", page, err)
		}
		for _, obj := range resp.Objects {
			if obj.Name != nil {
				names = append(names, *obj.Name)
			}
		}
		if resp.NextStartWith == nil || *resp.NextStartWith == "" {
			break
		}
		start = resp.NextStartWith
	}

	slices.Sort(names)
	b.logger.Debug("listed objects", "count", len(names))
	return names, nil
}

// Get downloads the named object.
func (b *Bucket) Get(ctx context.Context, name string) ([]byte, error) {
	resp, err := b.client.GetObject(ctx, objectstorage.GetObjectRequest{
		NamespaceName: common.String(b.namespace),
		BucketName:    common.String(b.name),
		ObjectName:    common.String(name),
	})
	if err != nil {
		if serviceErr, ok := common.IsServiceError(err); ok && serviceErr.GetHTTPStatusCode() == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", bucket.ErrObjectNotFound, name)
		}
		return nil, fmt.Errorf("getting object %s: %w", name, err)
	}
	defer resp.Content.Close()

	data, err := io.ReadAll(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("reading object %s: %w", name, err)
	}
	return data, nil
}
