package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/udisondev/regionflags/internal/region"
)

// SQLiteRegionRepository stores region rows in an SQLite file.
type SQLiteRegionRepository struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the SQLite database at path and ensures the schema.
// ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRegionRepository, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// Один writer; для :memory: ещё и одна общая база.
	sqlDB.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 30000;",
		"PRAGMA journal_mode = WAL;",
	}
	for _, pragma := range pragmas {
		if _, err := sqlDB.ExecContext(ctx, pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}

	if err := migrate(ctx, sqlDB, "sqlite3"); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &SQLiteRegionRepository{db: sqlDB}, nil
}

// Close closes the database.
func (r *SQLiteRegionRepository) Close() {
	_ = r.db.Close()
}

// LoadAll loads all region rows.
func (r *SQLiteRegionRepository) LoadAll(ctx context.Context) ([]region.Row, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, flags, damage, heal, banned_items FROM regions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("loading all regions: %w", err)
	}
	defer rows.Close()

	result := make([]region.Row, 0, 16)
	for rows.Next() {
		var (
			row    region.Row
			banned sql.NullString
		)
		if err := rows.Scan(&row.Name, &row.Flags, &row.Damage, &row.Heal, &banned); err != nil {
			return nil, fmt.Errorf("scanning region row: %w", err)
		}
		row.BannedItems = banned.String
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating region rows: %w", err)
	}

	return result, nil
}

// Upsert inserts or replaces the row keyed by name.
func (r *SQLiteRegionRepository) Upsert(ctx context.Context, row region.Row) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO regions (name, flags, damage, heal, banned_items)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (name) DO UPDATE SET
			flags = excluded.flags,
			damage = excluded.damage,
			heal = excluded.heal,
			banned_items = excluded.banned_items`,
		row.Name, row.Flags, row.Damage, row.Heal, row.BannedItems,
	)
	if err != nil {
		return fmt.Errorf("upserting region %q: %w", row.Name, err)
	}
	return nil
}
