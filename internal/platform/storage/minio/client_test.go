package minio

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putErr      error
	putName     string
	putData     string
	putSize     int64
	contentType string

	removeErr error
	removed   []string
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeMinio) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = bucket
	return f.makeBucketErr
}

func (f *fakeMinio) PutObject(_ context.Context, _ string, name string, r io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return minioLib.UploadInfo{}, err
	}
	f.putName, f.putData, f.putSize, f.contentType = name, string(b), size, opts.ContentType
	return minioLib.UploadInfo{Key: name, Size: size}, nil
}

func (f *fakeMinio) RemoveObject(_ context.Context, _ string, name string, _ minioLib.RemoveObjectOptions) error {
	f.removed = append(f.removed, name)
	return f.removeErr
}

func TestNewClientWithAPI_BucketExists(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, "b", "")
	require.NoError(t, err)
	assert.Equal(t, "b", c.bucket)
	assert.Empty(t, api.madeBucket, "existing bucket must not be recreated")
}

func TestNewClientWithAPI_CreateBucket(t *testing.T) {
	api := &fakeMinio{}
	_, err := NewClientWithAPI(context.Background(), api, "bucket", "")
	require.NoError(t, err)
	assert.Equal(t, "bucket", api.madeBucket)
}

func TestNewClientWithAPI_Errors(t *testing.T) {
	for name, api := range map[string]*fakeMinio{
		"bucket exists error": {bucketExistsErr: errors.New("boom")},
		"make bucket error":   {makeBucketErr: errors.New("fail")},
	} {
		t.Run(name, func(t *testing.T) {
			c, err := NewClientWithAPI(context.Background(), api, "bucket", "")
			assert.Nil(t, c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to ensure bucket exists")
		})
	}
}

func TestClient_Put(t *testing.T) {
	ctx := context.Background()

	t.Run("reference is prefixed with the public url", func(t *testing.T) {
		api := &fakeMinio{}
		c := &Client{api: api, bucket: "b", publicURL: "http://cdn.local/b"}

		ref, err := c.Put(ctx, "x.png", strings.NewReader("data"), 4, "image/png")

		require.NoError(t, err)
		assert.Equal(t, "http://cdn.local/b/x.png", ref)
		assert.Equal(t, "x.png", api.putName)
		assert.Equal(t, "data", api.putData)
		assert.Equal(t, int64(4), api.putSize)
		assert.Equal(t, "image/png", api.contentType)
	})

	t.Run("bare object name without public url", func(t *testing.T) {
		c := &Client{api: &fakeMinio{}, bucket: "b"}
		ref, err := c.Put(ctx, "x.png", strings.NewReader("data"), 4, "image/png")
		require.NoError(t, err)
		assert.Equal(t, "x.png", ref)
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{putErr: errors.New("put-fail")}, bucket: "b"}
		_, err := c.Put(ctx, "x.png", strings.NewReader("data"), 4, "image/png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestClient_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("strips the public url", func(t *testing.T) {
		api := &fakeMinio{}
		c := &Client{api: api, bucket: "b", publicURL: "http://cdn.local/b"}
		require.NoError(t, c.Remove(ctx, "http://cdn.local/b/x.png"))
		assert.Equal(t, []string{"x.png"}, api.removed)
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{removeErr: errors.New("rm-fail")}, bucket: "b"}
		err := c.Remove(ctx, "x.png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete object")
	})
}
