package model

import (
	"strings"
	"sync"
)

// Player is a connected player character.
type Player struct {
	*Character

	playerMu    sync.RWMutex
	permissions map[string]bool
	lastMessage string
	sink        func(msg string)
}

// NewPlayer creates a player with the given permissions.
func NewPlayer(objectID uint32, name string, loc Location, maxHP int32, permissions ...string) *Player {
	p := &Player{
		Character:   NewCharacter(objectID, name, loc, maxHP),
		permissions: make(map[string]bool, len(permissions)),
	}
	for _, perm := range permissions {
		p.permissions[strings.ToLower(perm)] = true
	}
	return p
}

// HasPermission reports whether the player holds perm (case-insensitive).
// The "*" permission grants everything.
func (p *Player) HasPermission(perm string) bool {
	p.playerMu.RLock()
	defer p.playerMu.RUnlock()
	return p.permissions["*"] || p.permissions[strings.ToLower(perm)]
}

// GrantPermission adds perm to the player.
func (p *Player) GrantPermission(perm string) {
	p.playerMu.Lock()
	defer p.playerMu.Unlock()
	p.permissions[strings.ToLower(perm)] = true
}

// SetMessageSink sets where SendMessage delivers text (the player's connection).
func (p *Player) SetMessageSink(fn func(msg string)) {
	p.playerMu.Lock()
	defer p.playerMu.Unlock()
	p.sink = fn
}

// SendMessage delivers a system message to the player and remembers it.
func (p *Player) SendMessage(msg string) {
	p.playerMu.Lock()
	p.lastMessage = msg
	sink := p.sink
	p.playerMu.Unlock()

	if sink != nil {
		sink(msg)
	}
}

// LastMessage returns the last message sent to the player.
func (p *Player) LastMessage() string {
	p.playerMu.RLock()
	defer p.playerMu.RUnlock()
	return p.lastMessage
}
