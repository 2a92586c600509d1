// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"

	"places_backend/internal/app/config"
	"places_backend/internal/platform/storage/local"
	"places_backend/internal/platform/storage/minio"
	"places_backend/internal/shared/upload"
)

// NewImageStore creates the image store selected by STORAGE_DRIVER.
// staticDir is the directory the router should serve, empty when images are not on local disk.
func NewImageStore(ctx context.Context, cfg *config.Config) (store upload.Store, staticDir string, err error) {
	switch cfg.Storage.Driver {
	case config.StorageMinio:
		c, err := minio.New(ctx, cfg.Minio)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create minio image store: %w", err)
		}
		return c, "", nil
	default:
		s, err := local.NewStore(cfg.Storage.Dir, cfg.Storage.URLPrefix)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create local image store: %w", err)
		}
		return s, s.Dir(), nil
	}
}
