package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/regionflags/internal/region"
)

// RegionRepository stores region rows in PostgreSQL.
type RegionRepository struct {
	pool *pgxpool.Pool
}

// NewRegionRepository creates a new region repository.
func NewRegionRepository(pool *pgxpool.Pool) *RegionRepository {
	return &RegionRepository{pool: pool}
}

// LoadAll loads all region rows.
func (r *RegionRepository) LoadAll(ctx context.Context) ([]region.Row, error) {
	query := `
		SELECT name, flags, damage, heal, banned_items
		FROM regions
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading all regions: %w", err)
	}
	defer rows.Close()

	result := make([]region.Row, 0, 16)
	for rows.Next() {
		var (
			row    region.Row
			banned *string // NULL в отредактированной вручную строке
		)
		if err := rows.Scan(&row.Name, &row.Flags, &row.Damage, &row.Heal, &banned); err != nil {
			return nil, fmt.Errorf("scanning region row: %w", err)
		}
		if banned != nil {
			row.BannedItems = *banned
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating region rows: %w", err)
	}

	return result, nil
}

// Upsert inserts or replaces the row keyed by name.
func (r *RegionRepository) Upsert(ctx context.Context, row region.Row) error {
	query := `
		INSERT INTO regions (name, flags, damage, heal, banned_items)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET
			flags = EXCLUDED.flags,
			damage = EXCLUDED.damage,
			heal = EXCLUDED.heal,
			banned_items = EXCLUDED.banned_items
	`

	_, err := r.pool.Exec(ctx, query, row.Name, row.Flags, row.Damage, row.Heal, row.BannedItems)
	if err != nil {
		return fmt.Errorf("upserting region %q: %w", row.Name, err)
	}
	return nil
}
