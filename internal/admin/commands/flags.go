package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/udisondev/regionflags/internal/admin"
	"github.com/udisondev/regionflags/internal/model"
	"github.com/udisondev/regionflags/internal/region"
)

// PermSetFlags allows changing configuration of defined regions.
const PermSetFlags = "setflags"

// Flags handles /rflags set|add|rem|remove <region> <flag> and /rflags flags.
type Flags struct {
	store Store
}

// NewFlags creates the flags command handler.
func NewFlags(store Store) *Flags {
	return &Flags{store: store}
}

func (c *Flags) Names() []string    { return []string{"rflags", "rf"} }
func (c *Flags) Permission() string { return PermSetFlags }

func (c *Flags) Handle(ctx context.Context, player *model.Player, args []string) error {
	if len(args) == 2 && strings.EqualFold(args[1], "flags") {
		player.SendMessage("Available flags: " + strings.Join(region.FlagNames(), ", "))
		return nil
	}
	if len(args) != 4 {
		return admin.UsageError("/rflags(/rf) set|rem <region> <flag> or /rflags flags")
	}

	name := args[2]
	flag, err := region.ParseFlag(args[3])
	if err != nil {
		return err
	}

	switch strings.ToLower(args[1]) {
	case "set", "add":
		if err := c.store.SetFlag(ctx, name, flag); err != nil {
			return err
		}
		player.SendMessage(fmt.Sprintf("Region %s now has flag %s.", name, flag))
	case "rem", "remove":
		if err := c.store.ClearFlag(ctx, name, flag); err != nil {
			return err
		}
		player.SendMessage(fmt.Sprintf("Flag %s has been removed from region %s.", flag, name))
	default:
		return admin.UsageError("/rflags(/rf) set|rem <region> <flag>")
	}
	return nil
}

// Define handles /dreg <region>.
type Define struct {
	store Store
}

// PermDefineFlag allows defining new flagged regions.
const PermDefineFlag = "defineflag"

// NewDefine creates the define command handler.
func NewDefine(store Store) *Define {
	return &Define{store: store}
}

func (c *Define) Names() []string    { return []string{"dreg"} }
func (c *Define) Permission() string { return PermDefineFlag }

func (c *Define) Handle(ctx context.Context, player *model.Player, args []string) error {
	if len(args) != 2 {
		return admin.UsageError("/dreg <region>")
	}
	if err := c.store.Define(ctx, args[1]); err != nil {
		return err
	}
	player.SendMessage(fmt.Sprintf("Region %s has been defined.", args[1]))
	return nil
}
