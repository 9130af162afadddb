package region

import (
	"context"
	"fmt"
	"log/slog"
)

// Syncer keeps the Store in step with its backing repository.
// Write-through of single mutations is done by the Store itself;
// Syncer handles bulk load and reload.
type Syncer struct {
	store *Store
	repo  Repository
}

// NewSyncer creates a Syncer for store backed by repo.
func NewSyncer(store *Store, repo Repository) *Syncer {
	return &Syncer{store: store, repo: repo}
}

// LoadAll reads every persisted row and imports it into the store,
// replacing whatever the store held.
func (s *Syncer) LoadAll(ctx context.Context) ([]Row, error) {
	rows, err := s.store.Load(ctx, s.repo)
	if err != nil {
		return nil, fmt.Errorf("loading region configuration: %w", err)
	}

	slog.Info("region configuration loaded", "regions", len(rows))
	return rows, nil
}

// Reload replaces the store with the persisted rows, so rows deleted from the
// backing store do not survive in memory. A failed read keeps the current
// configuration.
func (s *Syncer) Reload(ctx context.Context) error {
	if _, err := s.LoadAll(ctx); err != nil {
		return fmt.Errorf("reloading region configuration: %w", err)
	}
	return nil
}
