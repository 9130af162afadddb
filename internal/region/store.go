package region

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
)

// Store holds the configuration of every defined region.
//
// Readers (tick loop, drop and strike hooks) take a read lock only for the map
// lookup. Configs are never modified in place: every mutation stores a fresh
// copy, so a Config returned by Get (including its BannedItems slice) stays
// valid and must be treated as read-only.
//
// Mutations are serialized by writeMu and written through to the repository
// while readers keep working on the already swapped-in value.
type Store struct {
	mu      sync.RWMutex
	regions map[string]Config

	writeMu  sync.Mutex
	resolver Resolver
	repo     Repository
}

// NewStore creates an empty store. repo may be nil for a memory-only store.
func NewStore(resolver Resolver, repo Repository) *Store {
	return &Store{
		regions:  make(map[string]Config),
		resolver: resolver,
		repo:     repo,
	}
}

// Get returns the configuration of name. Absence means "no special behavior".
func (s *Store) Get(name string) (Config, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.regions[name]
	return cfg, ok
}

// Len returns the number of configured regions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.regions)
}

// Names returns the configured region names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.regions))
	for name := range s.regions {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names
}

// All returns every configuration sorted by name.
func (s *Store) All() []Config {
	s.mu.RLock()
	out := make([]Config, 0, len(s.regions))
	for _, cfg := range s.regions {
		out = append(out, cfg)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Define creates a zero configuration for a region known to the region system.
func (s *Store) Define(ctx context.Context, name string) error {
	if name == "" || len(name) > MaxNameLength {
		return fmt.Errorf("region name %q: %w", name, ErrInvalidInput)
	}
	if s.resolver != nil && !s.resolver.RegionExists(name) {
		return fmt.Errorf("defining %q: %w", name, ErrUnknownRegion)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if _, ok := s.regions[name]; ok {
		s.mu.Unlock()
		return fmt.Errorf("defining %q: %w", name, ErrAlreadyExists)
	}
	cfg := Config{Name: name, BannedItems: []string{}}
	s.regions[name] = cfg
	s.mu.Unlock()

	slog.Info("region defined", "region", name)
	return s.persist(ctx, cfg)
}

// SetFlag sets flag on the region.
func (s *Store) SetFlag(ctx context.Context, name string, flag Flag) error {
	return s.update(ctx, name, func(c *Config) error {
		c.Flags = c.Flags.With(flag)
		return nil
	})
}

// ClearFlag clears flag on the region.
func (s *Store) ClearFlag(ctx context.Context, name string, flag Flag) error {
	return s.update(ctx, name, func(c *Config) error {
		c.Flags = c.Flags.Without(flag)
		return nil
	})
}

// SetDamageRate sets the damage dealt per second of presence. 0 disables damage.
func (s *Store) SetDamageRate(ctx context.Context, name string, rate int32) error {
	if rate < 0 {
		return fmt.Errorf("damage rate %d: %w", rate, ErrInvalidInput)
	}
	return s.update(ctx, name, func(c *Config) error {
		c.DamagePerSecond = rate
		return nil
	})
}

// SetHealRate sets the number of seconds between heals. 0 disables healing.
func (s *Store) SetHealRate(ctx context.Context, name string, seconds int32) error {
	if seconds < 0 {
		return fmt.Errorf("heal interval %d: %w", seconds, ErrInvalidInput)
	}
	return s.update(ctx, name, func(c *Config) error {
		c.HealInterval = seconds
		return nil
	})
}

// BanItem adds itemID to the banned list. Banning an already banned item is a no-op.
func (s *Store) BanItem(ctx context.Context, name, itemID string) error {
	itemID, err := validItemID(itemID)
	if err != nil {
		return err
	}
	return s.update(ctx, name, func(c *Config) error {
		if c.IsItemBanned(itemID) {
			return nil
		}
		items := make([]string, 0, len(c.BannedItems)+1)
		c.BannedItems = append(append(items, c.BannedItems...), itemID)
		return nil
	})
}

// UnbanItem removes itemID from the banned list.
func (s *Store) UnbanItem(ctx context.Context, name, itemID string) error {
	itemID, err := validItemID(itemID)
	if err != nil {
		return err
	}
	return s.update(ctx, name, func(c *Config) error {
		c.BannedItems = slices.DeleteFunc(slices.Clone(c.BannedItems), func(id string) bool {
			return id == itemID
		})
		return nil
	})
}

// ImportAll replaces the whole mapping with rows. Later duplicates win.
func (s *Store) ImportAll(rows []Row) {
	next := buildRegions(rows)

	s.mu.Lock()
	s.regions = next
	s.mu.Unlock()
}

// Load reads every row from repo and swaps them in as the whole mapping.
// Mutations wait until the swap is done, and readers keep seeing the previous
// mapping while repo is read. On error the store is left unchanged.
func (s *Store) Load(ctx context.Context, repo Repository) ([]Row, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	rows, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	next := buildRegions(rows)

	s.mu.Lock()
	s.regions = next
	s.mu.Unlock()
	return rows, nil
}

func buildRegions(rows []Row) map[string]Config {
	next := make(map[string]Config, len(rows))
	for _, r := range rows {
		next[r.Name] = FromRow(r)
	}
	return next
}

// Clear drops every configuration.
func (s *Store) Clear() {
	s.mu.Lock()
	s.regions = make(map[string]Config)
	s.mu.Unlock()
}

// update applies fn to a copy of the region and swaps it in, then persists it.
// A persistence failure leaves the in-memory change applied.
func (s *Store) update(ctx context.Context, name string, fn func(*Config) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	cur, ok := s.regions[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("updating %q: %w", name, ErrNotFound)
	}

	next := cur
	if err := fn(&next); err != nil {
		return fmt.Errorf("updating %q: %w", name, err)
	}

	s.mu.Lock()
	s.regions[name] = next
	s.mu.Unlock()

	slog.Debug("region updated",
		"region", name,
		"flags", next.Flags.String(),
		"damage", next.DamagePerSecond,
		"heal", next.HealInterval,
		"banned", len(next.BannedItems))

	return s.persist(ctx, next)
}

func (s *Store) persist(ctx context.Context, cfg Config) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Upsert(ctx, cfg.ToRow()); err != nil {
		slog.Warn("region write-through failed", "region", cfg.Name, "error", err)
		return fmt.Errorf("persisting %q: %w: %w", cfg.Name, ErrPersistence, err)
	}
	return nil
}

func validItemID(itemID string) (string, error) {
	id := ParseBannedItems(itemID)
	if len(id) != 1 {
		return "", fmt.Errorf("item id %q: %w", itemID, ErrInvalidInput)
	}
	return id[0], nil
}
