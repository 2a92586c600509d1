// Package local stores uploaded images on the local filesystem.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"places_backend/internal/shared/upload"
)

// Store writes images into Dir and returns references of the form "<URLPrefix>/<name>".
type Store struct {
	dir       string
	urlPrefix string
}

var _ upload.Store = (*Store)(nil)

// NewStore creates dir if needed.
func NewStore(dir, urlPrefix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Dir returns the directory served under the URL prefix.
func (s *Store) Dir() string { return s.dir }

func (s *Store) Put(ctx context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name = path.Base(name)
	full := filepath.Join(s.dir, name)

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	return s.urlPrefix + "/" + name, nil
}

// Remove deletes the file behind ref. A missing file is not an error.
func (s *Store) Remove(_ context.Context, ref string) error {
	name := path.Base(ref)
	if name == "." || name == "/" {
		return fmt.Errorf("invalid image reference %q", ref)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
