package commands

import (
	"context"
	"fmt"

	"github.com/udisondev/regionflags/internal/admin"
	"github.com/udisondev/regionflags/internal/model"
)

// Ban handles /regban <region> <item>.
type Ban struct {
	store Store
}

// NewBan creates the item ban command handler.
func NewBan(store Store) *Ban {
	return &Ban{store: store}
}

func (c *Ban) Names() []string    { return []string{"regban"} }
func (c *Ban) Permission() string { return PermSetFlags }

func (c *Ban) Handle(ctx context.Context, player *model.Player, args []string) error {
	if len(args) != 3 {
		return admin.UsageError("/regban <region> <item>")
	}
	if err := c.store.BanItem(ctx, args[1], args[2]); err != nil {
		return err
	}
	player.SendMessage(fmt.Sprintf("Item %s is now banned in %s.", args[2], args[1]))
	return nil
}

// Unban handles /regunban <region> <item>.
type Unban struct {
	store Store
}

// NewUnban creates the item unban command handler.
func NewUnban(store Store) *Unban {
	return &Unban{store: store}
}

func (c *Unban) Names() []string    { return []string{"regunban"} }
func (c *Unban) Permission() string { return PermSetFlags }

func (c *Unban) Handle(ctx context.Context, player *model.Player, args []string) error {
	if len(args) != 3 {
		return admin.UsageError("/regunban <region> <item>")
	}
	if err := c.store.UnbanItem(ctx, args[1], args[2]); err != nil {
		return err
	}
	player.SendMessage(fmt.Sprintf("Item %s is no longer banned in %s.", args[2], args[1]))
	return nil
}
