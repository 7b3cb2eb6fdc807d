package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-admin-api/internal/application/ports"
	"github.com/jhoicas/catalogo-admin-api/pkg/config"
)

// New construye el driver indicado en STORAGE_DRIVER (local | s3).
func New(ctx context.Context, cfg config.StorageConfig) (ports.FileStorage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalDisk(cfg.LocalRoot, cfg.BaseURL)
	case "s3":
		return NewS3Disk(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
	}
}
