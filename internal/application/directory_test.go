package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectory_ResolveSkipsUnknownAndDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice@example.com", "Alice")
	bob := f.register(t, "bob@example.com", "Bob")

	got, err := f.dir.Resolve(ctx, []string{alice.ID, bob.ID, alice.ID, "", "junk", "00000000-0000-0000-0000-000000000001"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Alice", got[alice.ID].Name)
	require.Equal(t, "Bob", got[bob.ID].Name)

	empty, err := f.dir.Resolve(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestDirectory_ReadThroughCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cache := newMapCache()
	f.dir.Cache = cache
	alice := f.register(t, "alice@example.com", "Alice")

	_, err := f.dir.Resolve(ctx, []string{alice.ID})
	require.NoError(t, err)
	require.Contains(t, cache.entries, alice.ID)

	// A snapshot served from cache wins over the store.
	stale := cache.entries[alice.ID]
	stale.Name = "Cached Alice"
	cache.entries[alice.ID] = stale

	got, err := f.dir.Resolve(ctx, []string{alice.ID})
	require.NoError(t, err)
	require.Equal(t, "Cached Alice", got[alice.ID].Name)
}

func TestDirectory_CacheFailureFallsBackToStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cache := newMapCache()
	cache.err = errors.New("redis down")
	f.dir.Cache = cache
	alice := f.register(t, "alice@example.com", "Alice")

	got, err := f.dir.Resolve(ctx, []string{alice.ID})
	require.NoError(t, err)
	require.Equal(t, "Alice", got[alice.ID].Name)

	require.NotPanics(t, func() { f.dir.Invalidate(ctx, alice.ID) })
}

func TestNilNotifierIsNoop(t *testing.T) {
	var n *Notifier
	require.False(t, n.Enabled())
	require.NotPanics(t, func() {
		n.RequestReceived(context.Background(), nil, nil, nil)
	})
}
