package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/regionflags/internal/model"
	"github.com/udisondev/regionflags/internal/region"
	"github.com/udisondev/regionflags/internal/world"
	"github.com/udisondev/regionflags/internal/zone"
)

var (
	inArena  = model.NewLocation(5.5, 5.5)
	inField  = model.NewLocation(25.5, 5.5)
	outside  = model.NewLocation(50.5, 50.5)
	baseTime = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
)

type recordingNotifier struct {
	mu      sync.Mutex
	players []int32
	updated []uint32
	removed []uint32
}

func (n *recordingNotifier) PlayerUpdated(_ int, p *model.Player) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.players = append(n.players, p.CurrentHP())
}

func (n *recordingNotifier) NpcUpdated(npc *model.Npc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updated = append(n.updated, npc.ObjectID())
}

func (n *recordingNotifier) NpcRemoved(npc *model.Npc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.removed = append(n.removed, npc.ObjectID())
}

// countingActors counts actor passes.
type countingActors struct {
	*world.World
	passes int
}

func (c *countingActors) ForEachNpc(fn func(*model.Npc) bool) {
	c.passes++
	c.World.ForEachNpc(fn)
}

func newTestStore(t *testing.T, rows ...region.Row) (*zone.Manager, *region.Store) {
	t.Helper()
	zones, err := zone.NewManager(
		zone.Area{Name: "Arena", X: 0, Y: 0, Width: 10, Height: 10},
		zone.Area{Name: "Field", X: 20, Y: 0, Width: 10, Height: 10},
	)
	require.NoError(t, err)

	store := region.NewStore(zones, nil)
	store.ImportAll(rows)
	return zones, store
}

func newTestEngine(t *testing.T, rows ...region.Row) (*Engine, *world.World, *recordingNotifier) {
	t.Helper()
	zones, store := newTestStore(t, rows...)
	w := world.New()
	n := &recordingNotifier{}
	cfg := Config{MaxPlayers: 4, TileSize: 1, HealAmount: 20, ActorInterval: time.Second}
	return New(cfg, zones, store, w, n), w, n
}

func advance(e *Engine, now time.Time, step time.Duration, steps int) time.Time {
	for range steps {
		now = now.Add(step)
		e.Update(now)
	}
	return now
}

func TestEngine_DamageInWholeSecondSteps(t *testing.T) {
	e, _, n := newTestEngine(t, region.Row{Name: "Arena", Damage: 10})
	p := model.NewPlayer(1, "Hero", inArena, 100)
	require.NoError(t, e.Connect(0, p))

	e.Update(baseTime)

	var seen []int32
	now := baseTime
	for range 30 {
		now = advance(e, now, 100*time.Millisecond, 1)
		seen = append(seen, p.CurrentHP())
	}

	assert.Equal(t, int32(70), p.CurrentHP(), "3.0s at 10 dps")
	assert.Equal(t, int32(100), seen[8], "no damage before the first full second")
	assert.Equal(t, int32(90), seen[9])
	assert.Equal(t, int32(90), seen[18])
	assert.Equal(t, int32(80), seen[19])
	assert.Equal(t, int32(70), seen[29])
	assert.Equal(t, []int32{90, 80, 70}, n.players)
}

func TestEngine_DamageIndependentOfTickRate(t *testing.T) {
	for _, step := range []time.Duration{16 * time.Millisecond, 50 * time.Millisecond, 250 * time.Millisecond, 3 * time.Second} {
		t.Run(step.String(), func(t *testing.T) {
			e, _, _ := newTestEngine(t, region.Row{Name: "Arena", Damage: 10})
			p := model.NewPlayer(1, "Hero", inArena, 1000)
			require.NoError(t, e.Connect(0, p))
			e.Update(baseTime)

			steps := int(12 * time.Second / step)
			advance(e, baseTime, step, steps)

			elapsed := time.Duration(steps) * step
			want := int32(1000 - 10*int32(elapsed/time.Second))
			assert.Equal(t, want, p.CurrentHP())
		})
	}
}

func TestEngine_LeavingRegionResetsAccumulator(t *testing.T) {
	e, _, _ := newTestEngine(t, region.Row{Name: "Arena", Damage: 10})
	p := model.NewPlayer(1, "Hero", inArena, 100)
	require.NoError(t, e.Connect(0, p))

	e.Update(baseTime)
	now := advance(e, baseTime, 100*time.Millisecond, 7)

	p.SetLocation(outside)
	now = advance(e, now, 100*time.Millisecond, 1)
	p.SetLocation(inArena)
	now = advance(e, now, 100*time.Millisecond, 1)

	now = advance(e, now, 100*time.Millisecond, 9)
	assert.Equal(t, int32(100), p.CurrentHP(), "re-entry must wait a full fresh interval")

	advance(e, now, 100*time.Millisecond, 1)
	assert.Equal(t, int32(90), p.CurrentHP())
}

func TestEngine_SwitchingRegionsResetsAccumulator(t *testing.T) {
	e, _, _ := newTestEngine(t,
		region.Row{Name: "Arena", Damage: 10},
		region.Row{Name: "Field", Damage: 10},
	)
	p := model.NewPlayer(1, "Hero", inArena, 100)
	require.NoError(t, e.Connect(0, p))

	e.Update(baseTime)
	now := advance(e, baseTime, 100*time.Millisecond, 9)

	p.SetLocation(inField)
	now = advance(e, now, 100*time.Millisecond, 1)
	advance(e, now, 100*time.Millisecond, 9)
	assert.Equal(t, int32(100), p.CurrentHP())
}

func TestEngine_HealEveryIntervalSeconds(t *testing.T) {
	e, _, _ := newTestEngine(t, region.Row{Name: "Arena", Heal: 2})
	p := model.NewPlayer(1, "Hero", inArena, 100)
	p.SetCurrentHP(50)
	require.NoError(t, e.Connect(0, p))

	e.Update(baseTime)
	now := advance(e, baseTime, 100*time.Millisecond, 19)
	assert.Equal(t, int32(50), p.CurrentHP(), "no heal before the interval elapses")

	now = advance(e, now, 100*time.Millisecond, 1)
	assert.Equal(t, int32(70), p.CurrentHP(), "one heal restores HealAmount")

	now = advance(e, now, 100*time.Millisecond, 20)
	assert.Equal(t, int32(90), p.CurrentHP())

	advance(e, now, 100*time.Millisecond, 20)
	assert.Equal(t, int32(100), p.CurrentHP(), "capped at max")
}

func TestEngine_DamageAndHealIndependentCadence(t *testing.T) {
	e, _, _ := newTestEngine(t, region.Row{Name: "Arena", Damage: 10, Heal: 3})
	p := model.NewPlayer(1, "Hero", inArena, 100)
	require.NoError(t, e.Connect(0, p))

	e.Update(baseTime)
	advance(e, baseTime, 500*time.Millisecond, 12)

	// 6s: six hits of 10, two heals of 20.
	assert.Equal(t, int32(80), p.CurrentHP())
}

func TestEngine_DeadPlayerGetsNoEffects(t *testing.T) {
	e, _, n := newTestEngine(t, region.Row{Name: "Arena", Damage: 10, Heal: 1})
	p := model.NewPlayer(1, "Hero", inArena, 100)
	p.SetCurrentHP(0)
	require.NoError(t, e.Connect(0, p))

	e.Update(baseTime)
	advance(e, baseTime, 250*time.Millisecond, 20)

	assert.True(t, p.IsDead())
	assert.Empty(t, n.players)
}

func TestEngine_NoRegionOrNoConfigIsNoEffect(t *testing.T) {
	e, _, n := newTestEngine(t, region.Row{Name: "Arena", Damage: 10})
	lost := model.NewPlayer(1, "Lost", outside, 100)
	plain := model.NewPlayer(2, "Plain", inField, 100)
	require.NoError(t, e.Connect(0, lost))
	require.NoError(t, e.Connect(1, plain))

	e.Update(baseTime)
	advance(e, baseTime, time.Second, 5)

	assert.Equal(t, int32(100), lost.CurrentHP())
	assert.Equal(t, int32(100), plain.CurrentHP())
	assert.Empty(t, n.players)
}

func TestEngine_NoMobTakesPrecedenceOverMobKill(t *testing.T) {
	e, w, n := newTestEngine(t, region.Row{
		Name:  "Arena",
		Flags: int32(region.FlagNoMob | region.FlagMobKill),
	})
	wolf := w.SpawnNpc(1000, "Wolf", inArena, 300, false)

	e.Update(baseTime)
	advance(e, baseTime, time.Second, 1)

	assert.False(t, wolf.IsActive(), "despawned")
	assert.Equal(t, int32(300), wolf.CurrentHP(), "never struck")
	assert.Equal(t, []uint32{wolf.ObjectID()}, n.removed)
	assert.Empty(t, n.updated)
	assert.Zero(t, w.NpcCount())
}

func TestEngine_MobKill(t *testing.T) {
	e, w, n := newTestEngine(t, region.Row{Name: "Arena", Flags: int32(region.FlagMobKill)})
	wolf := w.SpawnNpc(1000, "Wolf", inArena, 300, false)
	rat := w.SpawnNpc(1001, "Rat", outside, 30, false)

	e.Update(baseTime)
	now := advance(e, baseTime, time.Second, 1)

	assert.True(t, wolf.IsDead())
	assert.True(t, wolf.IsActive(), "killed, not despawned")
	assert.False(t, rat.IsDead())
	assert.Equal(t, []uint32{wolf.ObjectID()}, n.updated)

	advance(e, now, time.Second, 3)
	assert.Len(t, n.updated, 1, "dead actors are not struck again")
}

func TestEngine_FriendlyNpcUntouched(t *testing.T) {
	e, w, n := newTestEngine(t, region.Row{Name: "Arena", Flags: int32(region.FlagNoMob)})
	guard := w.SpawnNpc(2000, "Guard", inArena, 500, true)

	e.Update(baseTime)
	advance(e, baseTime, time.Second, 2)

	assert.True(t, guard.IsActive())
	assert.Empty(t, n.removed)
}

func TestEngine_ActorPassThrottled(t *testing.T) {
	zones, store := newTestStore(t)
	actors := &countingActors{World: world.New()}
	e := New(Config{MaxPlayers: 1, TileSize: 1}, zones, store, actors, nil)

	e.Update(baseTime)
	now := advance(e, baseTime, 16*time.Millisecond, 62)
	assert.Zero(t, actors.passes, "0.992s elapsed")

	now = advance(e, now, 16*time.Millisecond, 1)
	assert.Equal(t, 1, actors.passes)

	advance(e, now, 100*time.Millisecond, 15)
	assert.Equal(t, 2, actors.passes)
}

func TestEngine_Slots(t *testing.T) {
	e, _, _ := newTestEngine(t)

	for i := range 4 {
		slot, err := e.ClaimSlot(model.NewPlayer(uint32(i+1), "P", outside, 100))
		require.NoError(t, err)
		assert.Equal(t, i, slot)
	}

	_, err := e.ClaimSlot(model.NewPlayer(9, "Late", outside, 100))
	assert.ErrorIs(t, err, ErrServerFull)

	assert.ErrorIs(t, e.Connect(2, model.NewPlayer(10, "X", outside, 100)), ErrSlotOccupied)
	assert.ErrorIs(t, e.Connect(4, model.NewPlayer(10, "X", outside, 100)), ErrSlotOutOfRange)
	assert.ErrorIs(t, e.Connect(-1, model.NewPlayer(10, "X", outside, 100)), ErrSlotOutOfRange)

	e.Disconnect(2)
	e.Disconnect(2)
	e.Disconnect(99)
	assert.Equal(t, 3, e.PlayerCount())
	_, ok := e.Player(2)
	assert.False(t, ok)

	slot, err := e.ClaimSlot(model.NewPlayer(11, "Next", outside, 100))
	require.NoError(t, err)
	assert.Equal(t, 2, slot)
}

func TestEngine_ConnectDisconnectDuringUpdate(t *testing.T) {
	e, _, _ := newTestEngine(t, region.Row{Name: "Arena", Damage: 1, Heal: 1})

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for g := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				slot, err := e.ClaimSlot(model.NewPlayer(uint32(g+1), "P", inArena, 100))
				if err != nil {
					continue
				}
				e.Disconnect(slot)
			}
		}()
	}

	advance(e, baseTime, 50*time.Millisecond, 500)
	close(stop)
	wg.Wait()

	assert.Zero(t, e.PlayerCount())
}

func TestEngine_RunStops(t *testing.T) {
	e, _, _ := newTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- e.Run(ctx, 5*time.Millisecond) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	e2, _, _ := newTestEngine(t)
	go func() { errCh <- e2.Run(context.Background(), 5*time.Millisecond) }()
	e2.Stop()
	e2.Stop()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
