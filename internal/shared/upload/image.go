// Package upload validates multipart image uploads and hands them to an image store.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
)

// MaxImageSize は画像アップロードの最大サイズ（バイト）です。
const MaxImageSize = 500000

var (
	// ErrImageTooLarge is returned when the file exceeds MaxImageSize.
	ErrImageTooLarge = errors.New("image exceeds maximum size")
	// ErrUnsupportedImage is returned when the sniffed content type is not an allowed image type.
	ErrUnsupportedImage = errors.New("invalid mime type")
)

// extensions maps allowed content types to the file extension used for the stored name.
var extensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

// Store persists image bytes and returns a reference that can later be passed to Remove.
type Store interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, ref string) error
}

// Image validates fh and stores it under a fresh UUID name.
// The content type is sniffed from the first bytes; the client-declared type is ignored.
func Image(ctx context.Context, store Store, fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxImageSize {
		return "", fmt.Errorf("%w: %d bytes", ErrImageTooLarge, fh.Size)
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close upload", "error", err)
		}
	}()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	ext, ok := extensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}

	name := uuid.NewString() + "." + ext
	ref, err := store.Put(ctx, name, io.MultiReader(bytes.NewReader(head), f), fh.Size, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return ref, nil
}

// IsInvalid reports whether err is a client-side upload problem rather than a storage failure.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrImageTooLarge) || errors.Is(err, ErrUnsupportedImage)
}

// Discard removes ref best effort. Used when the request that uploaded the image fails afterwards.
// The removal runs even if ctx is already cancelled, e.g. because the client disconnected.
func Discard(ctx context.Context, store Store, ref string) {
	if ref == "" {
		return
	}
	if err := store.Remove(context.WithoutCancel(ctx), ref); err != nil {
		slog.Warn("failed to discard uploaded image", "error", err, "image", ref)
	}
}
