package main

import (
	"context"
	"fmt"

	"github.com/udisondev/regionflags/internal/config"
	"github.com/udisondev/regionflags/internal/db"
	"github.com/udisondev/regionflags/internal/region"
	"github.com/udisondev/regionflags/internal/zone"
)

var configPath string

func loadConfig() (config.Server, error) {
	path := configPath
	if path == "" {
		path = config.Path()
	}
	return config.LoadServer(path)
}

// openStore opens storage and loads every persisted region into a store.
// The caller must call the returned close function.
func openStore(ctx context.Context) (*region.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	storage, err := db.Open(ctx, cfg.StorageType, cfg.StorageDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("opening storage: %w", err)
	}

	zones, err := zone.LoadFile(cfg.RegionsFile)
	if err != nil {
		storage.Close()
		return nil, nil, err
	}

	store := region.NewStore(zones, storage)
	if _, err := region.NewSyncer(store, storage).LoadAll(ctx); err != nil {
		storage.Close()
		return nil, nil, err
	}
	return store, storage.Close, nil
}

// withStore runs fn against a loaded store.
func withStore(ctx context.Context, fn func(*region.Store) error) error {
	store, closeFn, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(store)
}
