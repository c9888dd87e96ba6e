package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/inventory_api/internal/utils"
)

type memoryBackend struct {
	mu   sync.Mutex
	kv   map[string]string
	ttls map[string]time.Duration
	sets map[string]map[string]bool
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{
		kv:   map[string]string{},
		ttls: map[string]time.Duration{},
		sets: map[string]map[string]bool{},
	}
}

func (m *memoryBackend) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memoryBackend) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.kv[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *memoryBackend) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.kv, k)
	}
	return nil
}

func (m *memoryBackend) AddMember(_ context.Context, key, member string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sets[key] == nil {
		m.sets[key] = map[string]bool{}
	}
	m.sets[key][member] = true
	return nil
}

func (m *memoryBackend) RemoveMember(_ context.Context, key, member string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sets[key], member)
	return int64(len(m.sets[key])), nil
}

func TestSessionCacheRoundTrip(t *testing.T) {
	backend := newMemoryBackend()
	c := newSessionCache(backend, time.Hour)
	ctx := context.Background()

	s, err := c.Create(ctx, "owner-1", "a@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, time.Hour, backend.ttls["session:"+s.ID])

	got, err := c.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", got.OwnerID)
	assert.Equal(t, "a@example.com", got.Email)
}

func TestSessionCacheMissingIsExpired(t *testing.T) {
	c := newSessionCache(newMemoryBackend(), time.Hour)

	_, err := c.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, utils.ErrSessionExpired)
}

func TestSessionCacheRevokeCountsRemaining(t *testing.T) {
	c := newSessionCache(newMemoryBackend(), time.Hour)
	ctx := context.Background()

	laptop, err := c.Create(ctx, "owner-1", "a@example.com")
	require.NoError(t, err)
	phone, err := c.Create(ctx, "owner-1", "a@example.com")
	require.NoError(t, err)

	remaining, err := c.Revoke(ctx, laptop)
	require.NoError(t, err)
	assert.EqualValues(t, 1, remaining)

	_, err = c.Get(ctx, laptop.ID)
	assert.ErrorIs(t, err, utils.ErrSessionExpired)

	remaining, err = c.Revoke(ctx, phone)
	require.NoError(t, err)
	assert.EqualValues(t, 0, remaining)
}
