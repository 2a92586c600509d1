package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records what it was asked to store.
type fakeStore struct {
	name        string
	contentType string
	data        []byte
	putErr      error
	removed     []string
	removeCtx   []error
	removeErr   error
}

func (f *fakeStore) Put(_ context.Context, name string, r io.Reader, _ int64, contentType string) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.name, f.contentType, f.data = name, contentType, data
	return "uploads/images/" + name, nil
}

func (f *fakeStore) Remove(ctx context.Context, ref string) error {
	f.removed = append(f.removed, ref)
	f.removeCtx = append(f.removeCtx, ctx.Err())
	return f.removeErr
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// fileHeader builds a real multipart.FileHeader holding content.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["image"][0]
}

func TestImage_StoresPNG(t *testing.T) {
	t.Parallel()

	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{1}, 2048)...)
	store := &fakeStore{}

	ref, err := Image(context.Background(), store, fileHeader(t, "photo.png", content))

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(store.name, ".png"), "stored name %q must carry the png extension", store.name)
	assert.Equal(t, "image/png", store.contentType)
	assert.Equal(t, content, store.data, "sniffed bytes must be replayed to the store")
	assert.Equal(t, "uploads/images/"+store.name, ref)
}

func TestImage_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content []byte
		wantErr error
	}{
		{"plain text", []byte("definitely not an image"), ErrUnsupportedImage},
		{"gif", []byte("GIF89a\x01\x00\x01\x00"), ErrUnsupportedImage},
		{"too large", append(append([]byte{}, pngHeader...), make([]byte, MaxImageSize)...), ErrImageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &fakeStore{}
			_, err := Image(context.Background(), store, fileHeader(t, "upload.bin", tt.content))

			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsInvalid(err))
			assert.Empty(t, store.name, "nothing must be stored")
		})
	}
}

func TestImage_StoreFailure(t *testing.T) {
	t.Parallel()

	store := &fakeStore{putErr: errors.New("disk full")}

	_, err := Image(context.Background(), store, fileHeader(t, "photo.png", pngHeader))

	require.Error(t, err)
	assert.False(t, IsInvalid(err), "storage failures are not client errors")
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	store := &fakeStore{removeErr: errors.New("gone")}

	Discard(context.Background(), store, "")
	Discard(context.Background(), store, "uploads/images/a.png")

	assert.Equal(t, []string{"uploads/images/a.png"}, store.removed)
}

func TestDiscard_AfterClientDisconnect(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := &fakeStore{}

	Discard(ctx, store, "uploads/images/a.png")

	assert.Equal(t, []string{"uploads/images/a.png"}, store.removed)
	assert.Equal(t, []error{nil}, store.removeCtx, "removal must not inherit the request cancellation")
}
