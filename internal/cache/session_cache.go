package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/GTDGit/inventory_api/internal/utils"
)

// Session is the server-side record behind an access token.
type Session struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type sessionBackend interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	AddMember(ctx context.Context, key, member string, ttl time.Duration) error
	RemoveMember(ctx context.Context, key, member string) (int64, error)
}

// SessionCache stores sessions in Redis.
// Keys: session:{id} holds the session JSON, owner_sessions:{ownerId} the
// set of live session ids of an owner.
type SessionCache struct {
	redis sessionBackend
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionCache creates a SessionCache whose sessions live for ttl.
func NewSessionCache(client *RedisClient, ttl time.Duration) *SessionCache {
	return newSessionCache(client, ttl)
}

func newSessionCache(backend sessionBackend, ttl time.Duration) *SessionCache {
	return &SessionCache{redis: backend, ttl: ttl, now: time.Now}
}

// TTL returns the session lifetime.
func (c *SessionCache) TTL() time.Duration {
	return c.ttl
}

func (c *SessionCache) keySession(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (c *SessionCache) keyOwner(ownerID string) string {
	return fmt.Sprintf("owner_sessions:%s", ownerID)
}

// Create starts a new session for the owner.
func (c *SessionCache) Create(ctx context.Context, ownerID, email string) (*Session, error) {
	s := &Session{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Email:     email,
		CreatedAt: c.now(),
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := c.redis.Set(ctx, c.keySession(s.ID), string(data), c.ttl); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	if err := c.redis.AddMember(ctx, c.keyOwner(ownerID), s.ID, c.ttl); err != nil {
		return nil, fmt.Errorf("failed to index session: %w", err)
	}
	return s, nil
}

// Get returns the session with id, or utils.ErrSessionExpired when it is
// gone.
func (c *SessionCache) Get(ctx context.Context, id string) (*Session, error) {
	data, err := c.redis.Get(ctx, c.keySession(id))
	if errors.Is(err, redis.Nil) {
		return nil, utils.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

// Revoke deletes a session and returns how many sessions the owner still
// has.
func (c *SessionCache) Revoke(ctx context.Context, s *Session) (int64, error) {
	if err := c.redis.Delete(ctx, c.keySession(s.ID)); err != nil {
		return 0, fmt.Errorf("failed to delete session: %w", err)
	}
	remaining, err := c.redis.RemoveMember(ctx, c.keyOwner(s.OwnerID), s.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to unindex session: %w", err)
	}
	return remaining, nil
}
