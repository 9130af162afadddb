package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/udisondev/regionflags/internal/admin"
	"github.com/udisondev/regionflags/internal/model"
	"github.com/udisondev/regionflags/internal/region"
)

// Info handles /rfinfo [region]: shows region configuration.
// Without a region name, shows the region the player stands in.
type Info struct {
	store   Store
	locator Locator
}

// NewInfo creates the info command handler.
func NewInfo(store Store, locator Locator) *Info {
	return &Info{store: store, locator: locator}
}

func (c *Info) Names() []string    { return []string{"rfinfo"} }
func (c *Info) Permission() string { return PermSetFlags }

func (c *Info) Handle(_ context.Context, player *model.Player, args []string) error {
	var name string
	switch len(args) {
	case 1:
		here, ok := c.locator.RegionAt(player.Location())
		if !ok {
			player.SendMessage("You are not in a region.")
			return nil
		}
		name = here
	case 2:
		name = args[1]
	default:
		return admin.UsageError("/rfinfo [region]")
	}

	cfg, ok := c.store.Get(name)
	if !ok {
		return fmt.Errorf("region %q: %w", name, region.ErrNotFound)
	}

	banned := "none"
	if len(cfg.BannedItems) > 0 {
		banned = strings.Join(cfg.BannedItems, ", ")
	}
	player.SendMessage(fmt.Sprintf("%s: flags=%s damage=%d/s heal=every %ds banned=%s",
		cfg.Name, cfg.Flags, cfg.DamagePerSecond, cfg.HealInterval, banned))
	return nil
}

// List handles /rflist: lists defined regions.
type List struct {
	store Store
}

// NewList creates the list command handler.
func NewList(store Store) *List {
	return &List{store: store}
}

func (c *List) Names() []string    { return []string{"rflist"} }
func (c *List) Permission() string { return PermSetFlags }

func (c *List) Handle(_ context.Context, player *model.Player, _ []string) error {
	names := c.store.Names()
	if len(names) == 0 {
		player.SendMessage("No regions defined.")
		return nil
	}
	player.SendMessage(fmt.Sprintf("Defined regions (%d): %s", len(names), strings.Join(names, ", ")))
	return nil
}

// Reload handles /rfreload: rereads every region configuration from storage.
type Reload struct {
	reloader Reloader
}

// NewReload creates the reload command handler.
func NewReload(reloader Reloader) *Reload {
	return &Reload{reloader: reloader}
}

func (c *Reload) Names() []string    { return []string{"rfreload"} }
func (c *Reload) Permission() string { return PermSetFlags }

func (c *Reload) Handle(ctx context.Context, player *model.Player, _ []string) error {
	if err := c.reloader.Reload(ctx); err != nil {
		return fmt.Errorf("reloading regions: %w", err)
	}
	player.SendMessage("Region flags reloaded.")
	return nil
}
