package model

import "sync/atomic"

// Npc is a non-player mobile actor.
type Npc struct {
	*Character

	templateID int32
	friendly   bool
	active     atomic.Bool
}

// NewNpc creates an active NPC. Friendly NPCs (town folk, vendors) are
// left alone by region mob rules.
func NewNpc(objectID uint32, templateID int32, name string, loc Location, maxHP int32, friendly bool) *Npc {
	n := &Npc{
		Character:  NewCharacter(objectID, name, loc, maxHP),
		templateID: templateID,
		friendly:   friendly,
	}
	n.active.Store(true)
	return n
}

// TemplateID returns the NPC template identifier.
func (n *Npc) TemplateID() int32 { return n.templateID }

// IsFriendly returns true for non-hostile NPCs.
func (n *Npc) IsFriendly() bool { return n.friendly }

// IsActive returns false once the NPC was removed from simulation.
func (n *Npc) IsActive() bool { return n.active.Load() }

// Deactivate removes the NPC from simulation. Returns true if it was active.
func (n *Npc) Deactivate() bool { return n.active.Swap(false) }

// Strike applies damage to the NPC.
func (n *Npc) Strike(damage int32) {
	n.ReduceCurrentHP(damage)
}
