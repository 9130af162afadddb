// Package engine applies region effects to players and NPCs every tick
// and intercepts item drops and strikes inside flagged regions.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/udisondev/regionflags/internal/model"
	"github.com/udisondev/regionflags/internal/region"
)

// LethalDamage exceeds the maximum HP of any actor.
const LethalDamage int32 = math.MaxInt32

var (
	ErrServerFull     = errors.New("no free player slot")
	ErrSlotOutOfRange = errors.New("player slot out of range")
	ErrSlotOccupied   = errors.New("player slot occupied")
)

// ConfigSource returns the flag configuration of a region.
type ConfigSource interface {
	Get(name string) (region.Config, bool)
}

// ActorSource iterates and removes NPCs.
type ActorSource interface {
	ForEachNpc(fn func(*model.Npc) bool)
	DespawnNpc(npc *model.Npc) bool
}

// Notifier broadcasts entity state changes to observers.
type Notifier interface {
	PlayerUpdated(slot int, p *model.Player)
	NpcUpdated(npc *model.Npc)
	NpcRemoved(npc *model.Npc)
}

type nopNotifier struct{}

func (nopNotifier) PlayerUpdated(int, *model.Player) {}
func (nopNotifier) NpcUpdated(*model.Npc)            {}
func (nopNotifier) NpcRemoved(*model.Npc)            {}

// Config holds engine tuning.
type Config struct {
	MaxPlayers    int           // size of the slot table
	TileSize      float64       // world units per tile
	HealAmount    int32         // HP restored per heal
	ActorInterval time.Duration // minimum time between actor passes
}

// DefaultConfig returns default engine settings.
func DefaultConfig() Config {
	return Config{
		MaxPlayers:    64,
		TileSize:      16,
		HealAmount:    20,
		ActorInterval: time.Second,
	}
}

// Engine runs the per-tick effect passes.
type Engine struct {
	cfg      Config
	resolver region.Resolver
	configs  ConfigSource
	actors   ActorSource
	notifier Notifier

	mu    sync.Mutex // guards slots
	slots []*TrackedPlayer

	// Состояние тика, трогается только из Update.
	lastUpdate  time.Time
	sinceActors time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
}

// New creates an engine. actors and notifier may be nil.
func New(cfg Config, resolver region.Resolver, configs ConfigSource, actors ActorSource, notifier Notifier) *Engine {
	def := DefaultConfig()
	if cfg.MaxPlayers <= 0 {
		cfg.MaxPlayers = def.MaxPlayers
	}
	if cfg.TileSize <= 0 {
		cfg.TileSize = def.TileSize
	}
	if cfg.HealAmount <= 0 {
		cfg.HealAmount = def.HealAmount
	}
	if cfg.ActorInterval <= 0 {
		cfg.ActorInterval = def.ActorInterval
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}

	return &Engine{
		cfg:      cfg,
		resolver: resolver,
		configs:  configs,
		actors:   actors,
		notifier: notifier,
		slots:    make([]*TrackedPlayer, cfg.MaxPlayers),
		stopCh:   make(chan struct{}),
	}
}

// SetNotifier replaces the notifier. Call before Run.
func (e *Engine) SetNotifier(n Notifier) {
	if n == nil {
		n = nopNotifier{}
	}
	e.notifier = n
}

// Connect starts tracking p at slot.
func (e *Engine) Connect(slot int, p *model.Player) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if slot < 0 || slot >= len(e.slots) {
		return fmt.Errorf("connect slot %d: %w", slot, ErrSlotOutOfRange)
	}
	if e.slots[slot] != nil {
		return fmt.Errorf("connect slot %d: %w", slot, ErrSlotOccupied)
	}
	e.slots[slot] = newTrackedPlayer(p)

	slog.Debug("player tracked", "slot", slot, "player", p.Name())
	return nil
}

// ClaimSlot tracks p at the lowest free slot and returns it.
func (e *Engine) ClaimSlot(p *model.Player) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, t := range e.slots {
		if t == nil {
			e.slots[i] = newTrackedPlayer(p)
			slog.Debug("player tracked", "slot", i, "player", p.Name())
			return i, nil
		}
	}
	return -1, ErrServerFull
}

// Disconnect stops tracking slot. Unknown or empty slots are ignored.
func (e *Engine) Disconnect(slot int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if slot < 0 || slot >= len(e.slots) || e.slots[slot] == nil {
		return
	}
	slog.Debug("player untracked", "slot", slot, "player", e.slots[slot].player.Name())
	e.slots[slot] = nil
}

// Player returns the player at slot.
func (e *Engine) Player(slot int) (*model.Player, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if slot < 0 || slot >= len(e.slots) || e.slots[slot] == nil {
		return nil, false
	}
	return e.slots[slot].player, true
}

// PlayerCount returns the number of occupied slots.
func (e *Engine) PlayerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := 0
	for _, t := range e.slots {
		if t != nil {
			count++
		}
	}
	return count
}

// Update is the host tick callback. now must not go backwards between calls;
// if it does, the frame counts as zero elapsed time.
func (e *Engine) Update(now time.Time) {
	var dt time.Duration
	if !e.lastUpdate.IsZero() {
		dt = max(now.Sub(e.lastUpdate), 0)
	}
	e.lastUpdate = now

	e.updatePlayers(dt)

	e.sinceActors += dt
	if e.sinceActors >= e.cfg.ActorInterval {
		e.sinceActors %= e.cfg.ActorInterval
		e.updateActors()
	}
}

type playerUpdate struct {
	slot   int
	player *model.Player
}

// updatePlayers is Pass A. Notifications go out after the slot lock is released.
func (e *Engine) updatePlayers(dt time.Duration) {
	var updated []playerUpdate

	e.mu.Lock()
	for slot, t := range e.slots {
		if t == nil {
			continue
		}
		if t.update(dt, e) {
			updated = append(updated, playerUpdate{slot: slot, player: t.player})
		}
	}
	e.mu.Unlock()

	for _, u := range updated {
		e.notifier.PlayerUpdated(u.slot, u.player)
	}
}

// updateActors is Pass B.
func (e *Engine) updateActors() {
	if e.actors == nil {
		return
	}

	e.actors.ForEachNpc(func(npc *model.Npc) bool {
		if npc.IsFriendly() || !npc.IsActive() {
			return true
		}

		cfg, ok := e.configAt(npc.Location())
		if !ok {
			return true
		}

		switch {
		case cfg.Flags.Has(region.FlagNoMob):
			if e.actors.DespawnNpc(npc) {
				slog.Debug("npc despawned by region", "npc", npc.ObjectID(), "region", cfg.Name)
				e.notifier.NpcRemoved(npc)
			}
		case cfg.Flags.Has(region.FlagMobKill):
			if npc.IsDead() {
				return true
			}
			npc.Strike(LethalDamage)
			slog.Debug("npc killed by region", "npc", npc.ObjectID(), "region", cfg.Name)
			e.notifier.NpcUpdated(npc)
		}
		return true
	})
}

// configAt resolves the topmost region at loc and returns its configuration.
func (e *Engine) configAt(loc model.Location) (region.Config, bool) {
	name, ok := e.RegionAt(loc)
	if !ok {
		return region.Config{}, false
	}
	return e.configs.Get(name)
}

// RegionAt returns the topmost region at a world location.
func (e *Engine) RegionAt(loc model.Location) (string, bool) {
	x, y := loc.Tile(e.cfg.TileSize)
	return e.resolver.TopRegion(x, y)
}

// Run calls Update every tickRate until ctx is cancelled or Stop is called.
func (e *Engine) Run(ctx context.Context, tickRate time.Duration) error {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	slog.Info("region effect engine started", "tick", tickRate, "slots", len(e.slots))

	for {
		select {
		case <-ctx.Done():
			slog.Info("region effect engine stopping")
			return ctx.Err()

		case <-e.stopCh:
			slog.Info("region effect engine stopped")
			return nil

		case now := <-ticker.C:
			e.Update(now)
		}
	}
}

// Stop stops Run.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stopCh) })
}
