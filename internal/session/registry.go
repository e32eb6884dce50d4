package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/phrazzld/scry-study/internal/events"
)

// RegistryConfig controls session creation.
type RegistryConfig struct {
	// MaxSessions caps the number of live sessions; 0 means unlimited.
	MaxSessions int

	// ShuffleSeed, when non-zero, seeds every session's shuffle source so
	// runs are reproducible.
	ShuffleSeed uint64

	// IdleTimeout, when non-zero, lets Create reclaim sessions that have not
	// been looked up for this long once MaxSessions is reached.
	IdleTimeout time.Duration
}

// Registry tracks one Store per client session.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Store
	created  uint64
	cfg      RegistryConfig
	emitter  events.EventEmitter
	logger   *slog.Logger
	newID    func() (string, error)
	now      func() time.Time
}

// NewRegistry creates an empty registry. emitter may be nil.
func NewRegistry(cfg RegistryConfig, emitter events.EventEmitter, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		sessions: make(map[string]*Store),
		cfg:      cfg,
		emitter:  emitter,
		logger:   logger.With("component", "session_registry"),
		newID:    func() (string, error) { return gonanoid.New() },
		now:      time.Now,
	}
}

// Create starts a new session and returns its store.
func (r *Registry) Create(ctx context.Context) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cfg.MaxSessions > 0 && len(r.sessions) >= r.cfg.MaxSessions {
		if r.cfg.IdleTimeout > 0 {
			r.pruneLocked(ctx, r.cfg.IdleTimeout)
		}
		if len(r.sessions) >= r.cfg.MaxSessions {
			return nil, ErrTooManySessions
		}
	}

	id, err := r.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}
	if _, exists := r.sessions[id]; exists {
		return nil, fmt.Errorf("session ID collision: %s", id)
	}

	r.created++
	opts := []StoreOption{
		WithID(id),
		WithLogger(r.logger),
		WithEmitter(r.emitter),
	}
	if r.cfg.ShuffleSeed != 0 {
		opts = append(opts, WithRand(rand.New(rand.NewPCG(r.cfg.ShuffleSeed, r.created))))
	}

	store := NewStore(opts...)
	store.touch(r.now())
	r.sessions[id] = store

	r.logger.InfoContext(ctx, "session created",
		"session_id", id,
		"active_sessions", len(r.sessions))
	return store, nil
}

// Get returns the store for id and marks it as recently used.
func (r *Registry) Get(id string) (*Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	store, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	store.touch(r.now())
	return store, nil
}

// Delete removes the session with id.
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)

	r.logger.InfoContext(ctx, "session deleted",
		"session_id", id,
		"active_sessions", len(r.sessions))
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Prune removes every session that has not been looked up within idle and
// returns how many were removed.
func (r *Registry) Prune(ctx context.Context, idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pruneLocked(ctx, idle)
}

func (r *Registry) pruneLocked(ctx context.Context, idle time.Duration) int {
	cutoff := r.now().Add(-idle)
	removed := 0
	for id, store := range r.sessions {
		if store.lastUsed().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.InfoContext(ctx, "idle sessions pruned",
			"pruned", removed,
			"active_sessions", len(r.sessions))
	}
	return removed
}
