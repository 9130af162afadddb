package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/udisondev/regionflags/internal/admin"
	"github.com/udisondev/regionflags/internal/model"
	"github.com/udisondev/regionflags/internal/region"
)

// Damage handles /regdamage <region> <damage per second>.
type Damage struct {
	store Store
}

// NewDamage creates the damage rate command handler.
func NewDamage(store Store) *Damage {
	return &Damage{store: store}
}

func (c *Damage) Names() []string    { return []string{"regdamage", "rd"} }
func (c *Damage) Permission() string { return PermSetFlags }

func (c *Damage) Handle(ctx context.Context, player *model.Player, args []string) error {
	if len(args) != 3 {
		return admin.UsageError("/regdamage(/rd) <region> <damage>")
	}
	damage, err := parseRate(args[2], "damage as a number")
	if err != nil {
		return err
	}
	if err := c.store.SetDamageRate(ctx, args[1], damage); err != nil {
		return err
	}
	player.SendMessage(fmt.Sprintf("DPS for %s is now %d", args[1], damage))
	return nil
}

// Heal handles /regheal <region> <seconds between heals>.
type Heal struct {
	store Store
}

// NewHeal creates the heal rate command handler.
func NewHeal(store Store) *Heal {
	return &Heal{store: store}
}

func (c *Heal) Names() []string    { return []string{"regheal", "rh"} }
func (c *Heal) Permission() string { return PermSetFlags }

func (c *Heal) Handle(ctx context.Context, player *model.Player, args []string) error {
	if len(args) != 3 {
		return admin.UsageError("/regheal(/rh) <region> <seconds between heals>")
	}
	seconds, err := parseRate(args[2], "health as a number of seconds between heals")
	if err != nil {
		return err
	}
	if err := c.store.SetHealRate(ctx, args[1], seconds); err != nil {
		return err
	}
	if seconds == 0 {
		player.SendMessage(fmt.Sprintf("Healing disabled for %s", args[1]))
		return nil
	}
	player.SendMessage(fmt.Sprintf("%s now heals every %d seconds", args[1], seconds))
	return nil
}

func parseRate(s, what string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("you must specify %s: %w", what, region.ErrInvalidInput)
	}
	return int32(v), nil
}
