// Package backend builds the configured ObjectStore and mounts it where the
// query engine expects the league tables.
package backend

import (
	"context"
	"fmt"

	"github.com/courtside/courtside/internal/config"
	"github.com/courtside/courtside/internal/storage"
	"github.com/courtside/courtside/internal/storage/local"
	s3store "github.com/courtside/courtside/internal/storage/s3"
)

func Open(ctx context.Context, cfg config.ObjectStoreConfig) (storage.ObjectStore, error) {
	switch cfg.Backend {
	case config.BackendLocal:
		return local.New(cfg.LocalRoot)
	case config.BackendS3:
		return s3store.New(ctx, s3store.Config{
			Endpoint:         cfg.Endpoint,
			Region:           cfg.Region,
			Bucket:           cfg.Bucket,
			AccessKeyID:      cfg.AccessKeyID,
			SecretAccessKey:  cfg.SecretAccessKey,
			UseSSL:           cfg.UseSSL,
			Prefix:           cfg.Prefix,
			AutoCreateBucket: cfg.AutoCreateBucket,
		})
	default:
		return nil, fmt.Errorf("unsupported object store backend %q", cfg.Backend)
	}
}

// Mount serves store as scheme://container/... for the engine.
func Mount(tables config.TablesConfig, store storage.ObjectStore) (*storage.MountFS, error) {
	fs, err := storage.NewMountFS(tables.Scheme)
	if err != nil {
		return nil, err
	}
	if err := fs.Mount(tables.Container, store); err != nil {
		return nil, err
	}
	return fs, nil
}
