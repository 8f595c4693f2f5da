package oci

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/highestlab/ai4restory/bucket"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/objectstorage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStorage serves pages of object names and a fixed set of objects.
type fakeStorage struct {
	namespace string
	pages     [][]string
	objects   map[string]string
	requests  []objectstorage.ListObjectsRequest
	listErr   error
}

func (f *fakeStorage) GetNamespace(ctx context.Context, request objectstorage.GetNamespaceRequest) (objectstorage.GetNamespaceResponse, error) {
	return objectstorage.GetNamespaceResponse{Value: common.String(f.namespace)}, nil
}

func (f *fakeStorage) ListObjects(ctx context.Context, request objectstorage.ListObjectsRequest) (objectstorage.ListObjectsResponse, error) {
	f.requests = append(f.requests, request)
	if f.listErr != nil {
		return objectstorage.ListObjectsResponse{}, f.listErr
	}
	page := 0
	if request.Start != nil {
		page = int((*request.Start)[0] - '0')
	}
	var resp objectstorage.ListObjectsResponse
	for _, name := range f.pages[page] {
		resp.Objects = append(resp.Objects, objectstorage.ObjectSummary{Name: common.String(name)})
	}
	if page+1 < len(f.pages) {
		resp.NextStartWith = common.String(string(rune('0' + page + 1)))
	}
	return resp, nil
}

func (f *fakeStorage) GetObject(ctx context.Context, request objectstorage.GetObjectRequest) (objectstorage.GetObjectResponse, error) {
	contents, ok := f.objects[*request.ObjectName]
	if !ok {
		return objectstorage.GetObjectResponse{}, notFoundError{}
	}
	return objectstorage.GetObjectResponse{Content: io.NopCloser(strings.NewReader(contents))}, nil
}

// notFoundError satisfies common.ServiceError.
type notFoundError struct{}

func (notFoundError) Error() string           { return "ObjectNotFound" }
func (notFoundError) GetHTTPStatusCode() int  { return 404 }
func (notFoundError) GetMessage() string      { return "object not found" }
func (notFoundError) GetCode() string         { return "ObjectNotFound" }
func (notFoundError) GetOpcRequestID() string { return "req" }

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrBucketRequired)
}

func TestNewBucket_ResolvesNamespace(t *testing.T) {
	ctx := context.Background()

	b, err := newBucket(ctx, &fakeStorage{namespace: "tenancy"}, "", "bucket-ai4restory")
	require.NoError(t, err)
	assert.Equal(t, "tenancy", b.Namespace())

	b, err = newBucket(ctx, &fakeStorage{namespace: "tenancy"}, "explicit", "bucket-ai4restory")
	require.NoError(t, err)
	assert.Equal(t, "explicit", b.Namespace())
}

func TestBucket_List(t *testing.T) {
	ctx := context.Background()

	t.Run("follows pagination", func(t *testing.T) {
		storage := &fakeStorage{
			namespace: "ns",
			pages: [][]string{
				{"b/2.pdf", "a/1.pdf"},
				{"c/3.jpg"},
				{"d/4.xlsx"},
			},
		}
		b, err := newBucket(ctx, storage, "", "bucket")
		require.NoError(t, err)

		names, err := b.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a/1.pdf", "b/2.pdf", "c/3.jpg", "d/4.xlsx"}, names)

		require.Len(t, storage.requests, 3)
		assert.Nil(t, storage.requests[0].Start)
		assert.Equal(t, "1", *storage.requests[1].Start)
		assert.Equal(t, "ns", *storage.requests[2].NamespaceName)
		assert.Equal(t, "bucket", *storage.requests[2].BucketName)
	})

	t.Run("empty bucket", func(t *testing.T) {
		b, err := newBucket(ctx, &fakeStorage{pages: [][]string{nil}}, "ns", "bucket")
		require.NoError(t, err)

		names, err := b.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("service error", func(t *testing.T) {
		b, err := newBucket(ctx, &fakeStorage{listErr: errors.New("unauthorized")}, "ns", "bucket")
		require.NoError(t, err)

		_, err = b.List(ctx)
		assert.ErrorContains(t, err, "unauthorized")
	})
}

func TestBucket_Get(t *testing.T) {
	ctx := context.Background()
	b, err := newBucket(ctx, &fakeStorage{objects: map[string]string{"a/1.pdf": "%PDF"}}, "ns", "bucket")
	require.NoError(t, err)

	data, err := b.Get(ctx, "a/1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	_, err = b.Get(ctx, "missing.pdf")
	assert.ErrorIs(t, err, bucket.ErrObjectNotFound)
}
