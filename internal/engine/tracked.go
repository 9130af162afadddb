package engine

import (
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/regionflags/internal/model"
)

// TrackedPlayer is the effect state of one occupied player slot.
type TrackedPlayer struct {
	player *model.Player

	resolved bool   // region below was resolved at least once
	inRegion bool   // player stood in a region on the last frame
	region   string // topmost region on the last frame

	sinceDamage time.Duration
	sinceHeal   time.Duration
}

func newTrackedPlayer(p *model.Player) *TrackedPlayer {
	return &TrackedPlayer{player: p}
}

// Player returns the tracked player.
func (t *TrackedPlayer) Player() *model.Player {
	return t.player
}

func (t *TrackedPlayer) reset() {
	t.sinceDamage = 0
	t.sinceHeal = 0
}

// update advances the accumulators by dt and applies due effects.
// Returns true if the player's HP changed.
func (t *TrackedPlayer) update(dt time.Duration, e *Engine) bool {
	name, ok := e.RegionAt(t.player.Location())

	// Смена региона (вход, выход, переход) сбрасывает накопители,
	// время этого кадра не засчитывается.
	if !t.resolved || ok != t.inRegion || name != t.region {
		t.resolved, t.inRegion, t.region = true, ok, name
		t.reset()
		return false
	}
	if !ok {
		return false
	}

	cfg, found := e.configs.Get(name)
	if !found || t.player.IsDead() {
		t.reset()
		return false
	}

	changed := false

	if cfg.DamagePerSecond > 0 {
		t.sinceDamage += dt
		if n := t.sinceDamage / time.Second; n > 0 {
			t.sinceDamage -= n * time.Second
			damage := clampInt32(int64(n) * int64(cfg.DamagePerSecond))
			t.player.ReduceCurrentHP(damage)
			changed = true
			slog.Debug("region damage", "player", t.player.Name(), "region", name, "damage", damage)
		}
	} else {
		t.sinceDamage = 0
	}

	if cfg.HealInterval > 0 && !t.player.IsDead() {
		interval := time.Duration(cfg.HealInterval) * time.Second
		t.sinceHeal += dt
		if n := t.sinceHeal / interval; n > 0 {
			t.sinceHeal -= n * interval
			amount := clampInt32(int64(n) * int64(e.cfg.HealAmount))
			if restored := t.player.RestoreHP(amount); restored > 0 {
				changed = true
				slog.Debug("region heal", "player", t.player.Name(), "region", name, "hp", restored)
			}
		}
	} else {
		t.sinceHeal = 0
	}

	return changed
}

func clampInt32(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v)
}
