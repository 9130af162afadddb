package model

import "sync"

// DroppedItem represents an item lying on the ground in the world.
type DroppedItem struct {
	*WorldObject // embedded for position and ObjectID

	itemID    string
	count     int32
	dropperID uint32 // ObjectID of the character who dropped (0 = world spawn)

	mu sync.RWMutex
}

// NewDroppedItem creates a dropped item at the given location.
func NewDroppedItem(objectID uint32, itemID string, count int32, loc Location, dropperID uint32) *DroppedItem {
	return &DroppedItem{
		WorldObject: NewWorldObject(objectID, itemID, loc),
		itemID:      itemID,
		count:       count,
		dropperID:   dropperID,
	}
}

// ItemID returns the item type identifier ("" once neutralized).
func (d *DroppedItem) ItemID() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.itemID
}

// Count returns the stack size.
func (d *DroppedItem) Count() int32 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.count
}

// DropperID returns ObjectID of the character who dropped the item.
func (d *DroppedItem) DropperID() uint32 {
	return d.dropperID
}

// Neutralize turns the item into nothing so a cancelled drop cannot be picked up.
func (d *DroppedItem) Neutralize() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.itemID = ""
	d.count = 0
}

// IsNeutralized reports whether Neutralize was called.
func (d *DroppedItem) IsNeutralized() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.itemID == ""
}
