// Package panel keeps one workspace per browser session.
//
// A workspace owns the session's role table. Nothing is shared between
// sessions and nothing outlives the process.
package panel

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/code-server-panel/code-server-panel/internal/rbac"
)

// Workspace is the state of one session.
type Workspace struct {
	ID    string
	Roles *rbac.Store

	lastSeen    atomic.Int64 // unix nanoseconds
	unsubscribe func()
}

// LastSeen returns when the workspace was last handed out.
func (w *Workspace) LastSeen() time.Time {
	return time.Unix(0, w.lastSeen.Load())
}

func (w *Workspace) touch(now time.Time) {
	w.lastSeen.Store(now.UnixNano())
}

// Registry maps session ids to workspaces.
type Registry struct {
	mu    sync.Mutex
	items map[string]*Workspace
	seed  func() []rbac.Role
	now   func() time.Time
}

// NewRegistry returns a registry whose new workspaces start with seed().
// A nil seed uses rbac.DefaultRoles.
func NewRegistry(seed func() []rbac.Role) *Registry {
	if seed == nil {
		seed = rbac.DefaultRoles
	}

	return &Registry{
		items: make(map[string]*Workspace),
		seed:  seed,
		now:   time.Now,
	}
}

// Get returns the workspace of sessionID, creating it on first use.
func (r *Registry) Get(sessionID string) *Workspace {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.items[sessionID]
	if !ok {
		w = &Workspace{
			ID:    sessionID,
			Roles: rbac.NewStore(r.seed()),
		}
		w.unsubscribe = w.Roles.Subscribe(observe(sessionID))
		r.items[sessionID] = w
		activeWorkspaces.Inc()

		log.Debug().Str("session", sessionID).Msg("workspace created")
	}

	w.touch(now)

	return w
}

// Len returns the number of workspaces held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.items)
}

// Forget drops the workspace of sessionID, if any.
func (r *Registry) Forget(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.drop(sessionID)
}

// Sweep drops workspaces idle for longer than maxIdle and returns how many went.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	var n int

	for id, w := range r.items {
		if w.LastSeen().Before(cutoff) {
			r.drop(id)
			n++
		}
	}

	return n
}

// Run sweeps every period until ctx is done. A period <= 0 disables sweeping.
func (r *Registry) Run(ctx context.Context, period, maxIdle time.Duration) {
	if period <= 0 {
		log.Warn().Dur("period", period).Msg("workspace sweep disabled")
		return
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(maxIdle); n > 0 {
				log.Info().Int("dropped", n).Int("remaining", r.Len()).Msg("idle workspaces swept")
			}
		}
	}
}

// drop must be called with r.mu held.
func (r *Registry) drop(sessionID string) {
	w, ok := r.items[sessionID]
	if !ok {
		return
	}

	w.unsubscribe()
	delete(r.items, sessionID)
	activeWorkspaces.Dec()
}

func observe(sessionID string) rbac.Listener {
	return func(ev rbac.Event) {
		roleMutations.WithLabelValues(string(ev.Op)).Inc()

		log.Debug().
			Str("session", sessionID).
			Str("op", string(ev.Op)).
			Str("role_id", ev.RoleID).
			Int("roles", ev.Count).
			Msg("role table changed")
	}
}
