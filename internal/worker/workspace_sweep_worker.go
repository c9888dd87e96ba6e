package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// WorkspaceEvicter closes workspaces left unused for too long.
type WorkspaceEvicter interface {
	EvictIdle(maxIdle time.Duration) int
}

// LimiterSweeper drops per-client rate limiter state.
type LimiterSweeper interface {
	Sweep(idle time.Duration) int
}

// WorkspaceSweepWorker periodically frees the memory of owners who went
// quiet without signing out.
type WorkspaceSweepWorker struct {
	workspaces WorkspaceEvicter
	limiter    LimiterSweeper
	interval   time.Duration
	maxIdle    time.Duration
}

// NewWorkspaceSweepWorker constructs a WorkspaceSweepWorker. limiter may be nil.
func NewWorkspaceSweepWorker(
	workspaces WorkspaceEvicter,
	limiter LimiterSweeper,
	interval time.Duration,
	maxIdle time.Duration,
) *WorkspaceSweepWorker {
	return &WorkspaceSweepWorker{
		workspaces: workspaces,
		limiter:    limiter,
		interval:   interval,
		maxIdle:    maxIdle,
	}
}

// Start begins the periodic sweep loop until context is canceled.
func (w *WorkspaceSweepWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Dur("max_idle", w.maxIdle).Msg("Starting workspace sweep worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run()
		case <-ctx.Done():
			log.Info().Msg("Workspace sweep worker stopped")
			return
		}
	}
}

func (w *WorkspaceSweepWorker) run() {
	evicted := w.workspaces.EvictIdle(w.maxIdle)

	var limiters int
	if w.limiter != nil {
		limiters = w.limiter.Sweep(w.maxIdle)
	}

	if evicted > 0 || limiters > 0 {
		log.Info().Int("workspaces", evicted).Int("limiters", limiters).Msg("Idle state swept")
	}
}
