package region

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncer_LoadAll(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.rows["Spawn"] = Row{Name: "Spawn", Flags: int32(FlagNoItem), BannedItems: " bomb,dynamite "}
	repo.rows["Lava"] = Row{Name: "Lava", Damage: 20}

	store := NewStore(fakeResolver{}, repo)
	rows, err := NewSyncer(store, repo).LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	spawn, ok := store.Get("Spawn")
	require.True(t, ok)
	assert.Equal(t, []string{"bomb", "dynamite"}, spawn.BannedItems)

	lava, ok := store.Get("Lava")
	require.True(t, ok)
	assert.Equal(t, int32(20), lava.DamagePerSecond)
	assert.Empty(t, lava.BannedItems)
}

func TestSyncer_ReloadDropsExternallyDeletedRows(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.rows["Spawn"] = Row{Name: "Spawn"}
	repo.rows["Lava"] = Row{Name: "Lava"}

	store := NewStore(fakeResolver{}, repo)
	syncer := NewSyncer(store, repo)
	_, err := syncer.LoadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	delete(repo.rows, "Lava")
	require.NoError(t, syncer.Reload(ctx))

	assert.Equal(t, []string{"Spawn"}, store.Names())
}

func TestSyncer_LoadFailure(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.failErr = errors.New("db down")

	store := NewStore(fakeResolver{}, repo)
	err := NewSyncer(store, repo).Reload(ctx)
	assert.ErrorIs(t, err, repo.failErr)
	assert.Zero(t, store.Len())
}

func TestSyncer_ReloadFailureKeepsConfiguration(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.rows["Spawn"] = Row{Name: "Spawn", Flags: int32(FlagNoItem)}

	store := NewStore(fakeResolver{}, repo)
	syncer := NewSyncer(store, repo)
	_, err := syncer.LoadAll(ctx)
	require.NoError(t, err)

	repo.failErr = errors.New("db down")
	require.Error(t, syncer.Reload(ctx))

	spawn, ok := store.Get("Spawn")
	require.True(t, ok)
	assert.True(t, spawn.Flags.Has(FlagNoItem))
}

// gatedRepo blocks LoadAll until release is closed.
type gatedRepo struct {
	*memRepo
	entered chan struct{}
	release chan struct{}
}

func (r *gatedRepo) LoadAll(ctx context.Context) ([]Row, error) {
	close(r.entered)
	<-r.release
	return r.memRepo.LoadAll(ctx)
}

func TestSyncer_ReloadDoesNotLoseConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	mem := newMemRepo()
	mem.rows["Old"] = Row{Name: "Old"}

	store := NewStore(fakeResolver{"Old": true, "Arena": true}, mem)
	_, err := NewSyncer(store, mem).LoadAll(ctx)
	require.NoError(t, err)

	gated := &gatedRepo{memRepo: mem, entered: make(chan struct{}), release: make(chan struct{})}
	reloadDone := make(chan error, 1)
	go func() { reloadDone <- NewSyncer(store, gated).Reload(ctx) }()
	<-gated.entered

	// Readers still see the previous configuration while storage is read.
	_, ok := store.Get("Old")
	assert.True(t, ok, "Old must stay visible during reload")

	setDone := make(chan error, 1)
	defineDone := make(chan error, 1)
	go func() { setDone <- store.SetFlag(ctx, "Old", FlagNoMob) }()
	go func() { defineDone <- store.Define(ctx, "Arena") }()

	close(gated.release)
	require.NoError(t, <-reloadDone)
	require.NoError(t, <-setDone)
	require.NoError(t, <-defineDone)

	old, ok := store.Get("Old")
	require.True(t, ok)
	assert.True(t, old.Flags.Has(FlagNoMob))

	_, ok = store.Get("Arena")
	assert.True(t, ok, "Arena must be in memory")
	_, ok = mem.row("Arena")
	assert.True(t, ok, "Arena must be persisted")
}
