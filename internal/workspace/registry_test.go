package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/inventory_api/internal/models"
)

func TestRegistryOpenReusesWorkspace(t *testing.T) {
	f := newFixture()
	f.seedProduct(owner, "a", "Tools", 1, 5, "2", "5")
	created := 0
	r := NewRegistry(func(ownerID string) *Workspace {
		created++
		return f.workspace(ownerID)
	}, nil)

	first, err := r.Open(context.Background(), owner)
	require.NoError(t, err)
	second, err := r.Open(context.Background(), owner)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, created)
	assert.Len(t, first.Snapshot().Products, 1)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryOpenReturnsLoadError(t *testing.T) {
	f := newFixture()
	f.products.listErr = errBackend
	r := NewRegistry(f.workspace, nil)

	ws, err := r.Open(context.Background(), owner)

	require.Error(t, err)
	require.NotNil(t, ws)
	got, ok := r.Get(owner)
	assert.True(t, ok)
	assert.Same(t, ws, got)
}

func TestRegistryOpenWaitsForFirstLoad(t *testing.T) {
	f := newFixture()
	f.seedProduct(owner, "a", "Tools", 1, 5, "2", "5")
	f.products.listGate = make(chan struct{})
	r := NewRegistry(f.workspace, nil)

	go func() { _, _ = r.Open(context.Background(), owner) }()
	require.Eventually(t, func() bool { return r.Len() == 1 }, time.Second, time.Millisecond)

	_, ok := r.Get(owner)
	assert.False(t, ok, "not visible before the first load")

	second := make(chan *Workspace, 1)
	go func() {
		ws, err := r.Open(context.Background(), owner)
		assert.NoError(t, err)
		second <- ws
	}()
	select {
	case <-second:
		t.Fatal("second Open returned before the first load finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(f.products.listGate)
	select {
	case ws := <-second:
		assert.Len(t, ws.Snapshot().Products, 1)
	case <-time.After(time.Second):
		t.Fatal("second Open never returned")
	}
}

func TestRegistryOpenStopsWaitingOnCancel(t *testing.T) {
	f := newFixture()
	f.products.listGate = make(chan struct{})
	defer close(f.products.listGate)
	r := NewRegistry(f.workspace, nil)

	go func() { _, _ = r.Open(context.Background(), owner) }()
	require.Eventually(t, func() bool { return r.Len() == 1 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Open(ctx, owner)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistryCloseClearsWorkspace(t *testing.T) {
	f := newFixture()
	f.seedProduct(owner, "a", "Tools", 1, 5, "2", "5")
	r := NewRegistry(f.workspace, nil)
	ws, err := r.Open(context.Background(), owner)
	require.NoError(t, err)

	r.Close(owner)

	_, ok := r.Get(owner)
	assert.False(t, ok)
	assert.Empty(t, ws.Snapshot().Products)
	assert.Equal(t, 0, r.Len())

	// closing twice is harmless
	r.Close(owner)
}

func TestRegistryEvictIdle(t *testing.T) {
	f := newFixture()
	now := testNow
	r := NewRegistry(f.workspace, func() time.Time { return now })

	_, err := r.Open(context.Background(), "idle")
	require.NoError(t, err)
	_, err = r.Open(context.Background(), "busy")
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	_, ok := r.Get("busy")
	require.True(t, ok)

	now = now.Add(15 * time.Minute)
	evicted := r.EvictIdle(30 * time.Minute)

	assert.Equal(t, 1, evicted)
	_, ok = r.Get("idle")
	assert.False(t, ok)
	_, ok = r.Get("busy")
	assert.True(t, ok)
}

func TestRegistryIsolatesOwners(t *testing.T) {
	f := newFixture()
	f.seedProduct("alice", "a", "Tools", 1, 5, "2", "5")
	f.seedProduct("bob", "b", "Paint", 1, 5, "2", "5")
	r := NewRegistry(f.workspace, nil)

	alice, err := r.Open(context.Background(), "alice")
	require.NoError(t, err)
	bob, err := r.Open(context.Background(), "bob")
	require.NoError(t, err)

	ids := func(ps []models.Product) []string {
		out := []string{}
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}
	assert.Equal(t, []string{"a"}, ids(alice.Snapshot().Products))
	assert.Equal(t, []string{"b"}, ids(bob.Snapshot().Products))

	r.Close("alice")
	assert.Len(t, bob.Snapshot().Products, 1)
}
