package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenStoreRoundTrip(t *testing.T) {
	store := NewInMemoryTokenStore()
	ctx := context.Background()

	_, err := store.Retrieve(ctx)
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.Persist(ctx, "tok-1"))
	got, err := store.Retrieve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	require.NoError(t, store.Remove(ctx))
	_, err = store.Retrieve(ctx)
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestInMemoryTokenStoreRemoveIdempotent(t *testing.T) {
	store := NewInMemoryTokenStore()
	ctx := context.Background()

	require.NoError(t, store.Remove(ctx))
	require.NoError(t, store.Remove(ctx))
}

func TestInMemoryTokenStoreWatch(t *testing.T) {
	store := NewInMemoryTokenStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := store.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Persist(context.Background(), "tok-1"))
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no notification for persist")
	}

	require.NoError(t, store.Remove(context.Background()))
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no notification for remove")
	}

	// Removing an already absent token stays silent.
	require.NoError(t, store.Remove(context.Background()))
	select {
	case <-ch:
		t.Fatal("unexpected notification for no-op remove")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestInMemoryTokenStoreWatchCoalesces(t *testing.T) {
	store := NewInMemoryTokenStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := store.Watch(ctx)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Persist(context.Background(), "tok"))
	}

	// A burst collapses to at least one pending signal, never a backlog that
	// blocks writers.
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("burst produced no signal")
	}
}

func TestInMemoryTokenStoreWatchTeardown(t *testing.T) {
	store := NewInMemoryTokenStore()
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := store.Watch(ctx)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel must close on ctx end")
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
