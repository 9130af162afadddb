// Package region attaches behavioral configuration (flags, damage, healing,
// banned items) to named regions owned by an external region system.
package region

import (
	"slices"
	"strings"
)

// MaxNameLength is the width of the persisted name column.
const MaxNameLength = 56

// Config is the behavioral configuration of one region.
type Config struct {
	Name  string
	Flags FlagSet

	// DamagePerSecond is applied once per second of continuous presence. 0 disables.
	DamagePerSecond int32

	// HealInterval is the number of seconds between two heals. 0 disables.
	// Stored in the "heal" column.
	HealInterval int32

	BannedItems []string
}

// Clone returns a deep copy safe to hand out of the store.
func (c Config) Clone() Config {
	c.BannedItems = slices.Clone(c.BannedItems)
	if c.BannedItems == nil {
		c.BannedItems = []string{}
	}
	return c
}

// IsItemBanned reports whether itemID is in the banned list (case-insensitive).
func (c Config) IsItemBanned(itemID string) bool {
	for _, id := range c.BannedItems {
		if strings.EqualFold(id, itemID) {
			return true
		}
	}
	return false
}

// Row is the persisted shape of a Config.
type Row struct {
	Name        string
	Flags       int32
	Damage      int32
	Heal        int32
	BannedItems string // comma-joined
}

// ToRow converts c into its persisted form.
func (c Config) ToRow() Row {
	return Row{
		Name:        c.Name,
		Flags:       int32(c.Flags),
		Damage:      c.DamagePerSecond,
		Heal:        c.HealInterval,
		BannedItems: JoinBannedItems(c.BannedItems),
	}
}

// FromRow converts a persisted row into a Config.
func FromRow(r Row) Config {
	return Config{
		Name:            r.Name,
		Flags:           FlagSet(uint32(r.Flags)),
		DamagePerSecond: r.Damage,
		HealInterval:    r.Heal,
		BannedItems:     ParseBannedItems(r.BannedItems),
	}
}

// ParseBannedItems splits a comma-joined list, trimming whitespace and dropping empty entries.
func ParseBannedItems(s string) []string {
	items := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// JoinBannedItems is the inverse of ParseBannedItems.
func JoinBannedItems(items []string) string {
	return strings.Join(items, ",")
}
