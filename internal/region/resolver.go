package region

import "context"

// Resolver is the external region system: geometry, ownership and
// "topmost region at a point" are all its business.
type Resolver interface {
	// TopRegion returns the name of the topmost region containing the tile, if any.
	TopRegion(tileX, tileY int32) (string, bool)
	// RegionExists reports whether the region system knows name.
	RegionExists(name string) bool
}

// Repository persists region configuration rows keyed by name.
type Repository interface {
	LoadAll(ctx context.Context) ([]Row, error)
	Upsert(ctx context.Context, row Row) error
}
