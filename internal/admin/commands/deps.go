package commands

import (
	"context"

	"github.com/udisondev/regionflags/internal/model"
	"github.com/udisondev/regionflags/internal/region"
)

// Store is the region configuration store used by the commands.
type Store interface {
	Get(name string) (region.Config, bool)
	Names() []string
	Define(ctx context.Context, name string) error
	SetFlag(ctx context.Context, name string, flag region.Flag) error
	ClearFlag(ctx context.Context, name string, flag region.Flag) error
	SetDamageRate(ctx context.Context, name string, rate int32) error
	SetHealRate(ctx context.Context, name string, seconds int32) error
	BanItem(ctx context.Context, name, itemID string) error
	UnbanItem(ctx context.Context, name, itemID string) error
}

// Reloader reloads the store from persistent storage.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Locator resolves the topmost region at a world location.
type Locator interface {
	RegionAt(loc model.Location) (string, bool)
}
