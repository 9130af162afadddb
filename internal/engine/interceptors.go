package engine

import (
	"log/slog"

	"github.com/udisondev/regionflags/internal/model"
	"github.com/udisondev/regionflags/internal/region"
)

// ItemDropEvent is raised when an item is about to appear on the ground.
// Setting Handled tells the host not to spawn it.
type ItemDropEvent struct {
	Item    *model.DroppedItem
	Handled bool
}

// StrikeEvent is raised when an NPC is about to take a hit.
// Damage may be modified; Cancelled drops the hit entirely.
type StrikeEvent struct {
	Attacker  *model.Character // nil for environmental damage
	Target    *model.Npc
	Damage    int32
	Cancelled bool
}

// OnItemDrop cancels drops inside NOITEM regions and drops of items banned
// in the region. The cancelled item is neutralized. Returns ev.Handled.
func (e *Engine) OnItemDrop(ev *ItemDropEvent) bool {
	if ev == nil || ev.Item == nil || ev.Handled {
		return ev != nil && ev.Handled
	}

	cfg, ok := e.configAt(ev.Item.Location())
	if !ok {
		return false
	}

	itemID := ev.Item.ItemID()
	if !cfg.Flags.Has(region.FlagNoItem) && !cfg.IsItemBanned(itemID) {
		return false
	}

	ev.Handled = true
	ev.Item.Neutralize()
	slog.Debug("item drop cancelled by region", "item", itemID, "region", cfg.Name)
	return true
}

// OnStrike cancels hits that would repeat or fight region rules:
// the target is already out of simulation, already killed by MOBKILL,
// or standing in a NOMOB region awaiting despawn. Returns ev.Cancelled.
func (e *Engine) OnStrike(ev *StrikeEvent) bool {
	if ev == nil || ev.Target == nil || ev.Cancelled {
		return ev != nil && ev.Cancelled
	}

	if !ev.Target.IsActive() {
		ev.Cancelled = true
		return true
	}

	cfg, ok := e.configAt(ev.Target.Location())
	if !ok {
		return false
	}

	switch {
	case cfg.Flags.Has(region.FlagNoMob) && !ev.Target.IsFriendly():
		ev.Cancelled = true
	case cfg.Flags.Has(region.FlagMobKill) && ev.Target.IsDead():
		ev.Cancelled = true
	}
	return ev.Cancelled
}
