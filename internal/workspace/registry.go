package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/inventory_api/internal/telemetry"
)

// Factory builds an empty workspace for an owner.
type Factory func(ownerID string) *Workspace

// Registry keeps one loaded Workspace per signed-in owner.
type Registry struct {
	factory Factory
	clock   func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	ws       *Workspace
	lastUsed time.Time
	// ready is closed once the first Load returned.
	ready chan struct{}
}

// NewRegistry creates a Registry that builds workspaces with factory.
func NewRegistry(factory Factory, clock func() time.Time) *Registry {
	if clock == nil {
		clock = time.Now
	}
	return &Registry{
		factory: factory,
		clock:   clock,
		entries: make(map[string]*entry),
	}
}

// Open returns the owner's workspace, creating and loading it on first use.
// A load failure is returned together with the workspace, which stays
// registered with whatever was fetched. Callers arriving while the first
// load runs wait for it instead of reading an empty snapshot.
func (r *Registry) Open(ctx context.Context, ownerID string) (*Workspace, error) {
	r.mu.Lock()
	if e, ok := r.entries[ownerID]; ok {
		e.lastUsed = r.clock()
		r.mu.Unlock()
		select {
		case <-e.ready:
			return e.ws, nil
		case <-ctx.Done():
			return e.ws, ctx.Err()
		}
	}
	e := &entry{ws: r.factory(ownerID), lastUsed: r.clock(), ready: make(chan struct{})}
	r.entries[ownerID] = e
	telemetry.OpenWorkspaces.Set(float64(len(r.entries)))
	r.mu.Unlock()

	err := e.ws.Load(ctx)
	close(e.ready)
	return e.ws, err
}

// Get returns the owner's workspace if it is open and its first load has
// finished.
func (r *Registry) Get(ownerID string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[ownerID]
	if !ok || !e.loaded() {
		return nil, false
	}
	e.lastUsed = r.clock()
	return e.ws, true
}

func (e *entry) loaded() bool {
	select {
	case <-e.ready:
		return true
	default:
		return false
	}
}

// Close clears and forgets the owner's workspace.
func (r *Registry) Close(ownerID string) {
	r.mu.Lock()
	e, ok := r.entries[ownerID]
	delete(r.entries, ownerID)
	telemetry.OpenWorkspaces.Set(float64(len(r.entries)))
	r.mu.Unlock()

	if ok {
		e.ws.Clear()
	}
}

// EvictIdle closes every workspace unused for longer than maxIdle and
// returns how many were closed.
func (r *Registry) EvictIdle(maxIdle time.Duration) int {
	cutoff := r.clock().Add(-maxIdle)

	r.mu.Lock()
	var idle []*Workspace
	for ownerID, e := range r.entries {
		if e.loaded() && e.lastUsed.Before(cutoff) {
			idle = append(idle, e.ws)
			delete(r.entries, ownerID)
		}
	}
	telemetry.OpenWorkspaces.Set(float64(len(r.entries)))
	r.mu.Unlock()

	for _, ws := range idle {
		ws.Clear()
		log.Debug().Str("owner_id", ws.OwnerID()).Msg("idle workspace evicted")
	}
	return len(idle)
}

// Len returns the number of open workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
