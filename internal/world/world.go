// Package world holds the simulated actors: NPCs and items on the ground.
package world

import (
	"errors"
	"fmt"
	"sync"

	"github.com/udisondev/regionflags/internal/model"
)

var (
	ErrDuplicateObject = errors.New("object already in world")
)

// World is the registry of live NPCs and ground items.
type World struct {
	ids   *ObjectIDGenerator
	npcs  sync.Map // map[uint32]*model.Npc, objectID → npc
	items sync.Map // map[uint32]*model.DroppedItem, objectID → item
}

// New creates an empty world.
func New() *World {
	return &World{ids: NewObjectIDGenerator()}
}

// IDs returns the world's object ID generator.
func (w *World) IDs() *ObjectIDGenerator {
	return w.ids
}

// AddNpc registers an NPC.
func (w *World) AddNpc(npc *model.Npc) error {
	if _, loaded := w.npcs.LoadOrStore(npc.ObjectID(), npc); loaded {
		return fmt.Errorf("adding npc %d: %w", npc.ObjectID(), ErrDuplicateObject)
	}
	return nil
}

// SpawnNpc creates an active NPC with a fresh object ID and registers it.
func (w *World) SpawnNpc(templateID int32, name string, loc model.Location, maxHP int32, friendly bool) *model.Npc {
	npc := model.NewNpc(w.ids.NextNpcID(), templateID, name, loc, maxHP, friendly)
	w.npcs.Store(npc.ObjectID(), npc)
	return npc
}

// GetNpc returns NPC by ObjectID.
func (w *World) GetNpc(objectID uint32) (*model.Npc, bool) {
	value, ok := w.npcs.Load(objectID)
	if !ok {
		return nil, false
	}
	return value.(*model.Npc), true
}

// DespawnNpc deactivates the NPC and removes it from the world.
// Returns false if it was already gone.
func (w *World) DespawnNpc(npc *model.Npc) bool {
	npc.Deactivate()
	_, ok := w.npcs.LoadAndDelete(npc.ObjectID())
	return ok
}

// ForEachNpc calls fn for every active NPC until fn returns false.
// Safe to call DespawnNpc from fn.
func (w *World) ForEachNpc(fn func(*model.Npc) bool) {
	w.npcs.Range(func(_, value any) bool {
		npc := value.(*model.Npc)
		if !npc.IsActive() {
			return true
		}
		return fn(npc)
	})
}

// NpcCount returns number of NPCs in world (O(N)).
func (w *World) NpcCount() int {
	count := 0
	w.npcs.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// DropItem places an item on the ground and returns it.
func (w *World) DropItem(itemID string, count int32, loc model.Location, dropperID uint32) *model.DroppedItem {
	item := model.NewDroppedItem(w.ids.NextItemID(), itemID, count, loc, dropperID)
	w.items.Store(item.ObjectID(), item)
	return item
}

// RemoveItem removes an item from the ground.
func (w *World) RemoveItem(objectID uint32) {
	w.items.Delete(objectID)
}

// GetItem returns a ground item by ObjectID.
func (w *World) GetItem(objectID uint32) (*model.DroppedItem, bool) {
	value, ok := w.items.Load(objectID)
	if !ok {
		return nil, false
	}
	return value.(*model.DroppedItem), true
}

// ItemCount returns number of items on the ground (O(N)).
func (w *World) ItemCount() int {
	count := 0
	w.items.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}
