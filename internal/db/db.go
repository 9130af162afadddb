// Package db stores region configuration rows in PostgreSQL or SQLite.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/regionflags/internal/region"
)

// ErrConfigurationFatal means storage is unreachable or the schema cannot be ensured.
var ErrConfigurationFatal = errors.New("storage configuration fatal")

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DB wraps a pgx connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a DB handle.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the underlying pgx pool.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// Storage is an opened region row backend.
type Storage interface {
	region.Repository
	Close()
}

type postgresStorage struct {
	*DB
	*RegionRepository
}

// Open connects to the backend named by driver, ensures the schema and
// returns the region repository. Every failure wraps ErrConfigurationFatal.
func Open(ctx context.Context, driver, dsn string) (Storage, error) {
	switch driver {
	case DriverPostgres:
		d, err := New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigurationFatal, err)
		}
		if err := RunMigrations(ctx, dsn); err != nil {
			d.Close()
			return nil, fmt.Errorf("%w: %w", ErrConfigurationFatal, err)
		}
		return postgresStorage{DB: d, RegionRepository: NewRegionRepository(d.Pool())}, nil

	case DriverSQLite:
		repo, err := OpenSQLite(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigurationFatal, err)
		}
		return repo, nil

	default:
		return nil, fmt.Errorf("%w: unknown storage type %q", ErrConfigurationFatal, driver)
	}
}
