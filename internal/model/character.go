package model

import "sync"

// Character: базовый класс для живых существ (Player, NPC).
// Добавляет HP к WorldObject.
type Character struct {
	*WorldObject // embedded

	hpMu      sync.RWMutex
	currentHP int32
	maxHP     int32
}

// NewCharacter создаёт персонажа с полным HP.
func NewCharacter(objectID uint32, name string, loc Location, maxHP int32) *Character {
	if maxHP < 1 {
		maxHP = 1
	}
	return &Character{
		WorldObject: NewWorldObject(objectID, name, loc),
		currentHP:   maxHP,
		maxHP:       maxHP,
	}
}

// CurrentHP возвращает текущее HP.
func (c *Character) CurrentHP() int32 {
	c.hpMu.RLock()
	defer c.hpMu.RUnlock()
	return c.currentHP
}

// MaxHP возвращает максимальное HP.
func (c *Character) MaxHP() int32 {
	c.hpMu.RLock()
	defer c.hpMu.RUnlock()
	return c.maxHP
}

// SetCurrentHP устанавливает текущее HP с валидацией (clamp 0..maxHP).
func (c *Character) SetCurrentHP(hp int32) {
	c.hpMu.Lock()
	defer c.hpMu.Unlock()
	c.currentHP = min(max(hp, 0), c.maxHP)
}

// ReduceCurrentHP subtracts damage, never going below zero.
func (c *Character) ReduceCurrentHP(damage int32) {
	if damage <= 0 {
		return
	}
	c.hpMu.Lock()
	defer c.hpMu.Unlock()
	if damage >= c.currentHP {
		c.currentHP = 0
		return
	}
	c.currentHP -= damage
}

// RestoreHP adds up to amount HP, capped at MaxHP, and returns what was actually restored.
func (c *Character) RestoreHP(amount int32) int32 {
	if amount <= 0 {
		return 0
	}
	c.hpMu.Lock()
	defer c.hpMu.Unlock()
	restored := min(amount, c.maxHP-c.currentHP)
	c.currentHP += restored
	return restored
}

// IsDead returns true when HP is zero.
func (c *Character) IsDead() bool {
	return c.CurrentHP() <= 0
}
