package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/events"
)

// DefaultID is the identifier of a store created without WithID.
const DefaultID = "default"

// Store owns a single session State and is its only mutator. Each transition
// is applied under a lock, so readers never observe a half-applied change.
type Store struct {
	mu      sync.Mutex
	id      string
	state   State
	seq     uint64
	rng     RandomSource
	emitter events.EventEmitter
	logger  *slog.Logger

	// emitMu is taken before mu is released so events leave in apply order.
	emitMu sync.Mutex

	// lastAccess is the UnixNano time of the last registry lookup.
	lastAccess atomic.Int64
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithID sets the session identifier reported in events and logs.
func WithID(id string) StoreOption {
	return func(s *Store) {
		s.id = id
	}
}

// WithRand sets the random source used by Shuffle. Tests pass a seeded
// *rand.Rand to get a reproducible order.
func WithRand(rng RandomSource) StoreOption {
	return func(s *Store) {
		s.rng = rng
	}
}

// WithLogger sets the store's logger.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEmitter sets the emitter notified after every applied transition.
// Events are delivered in the order transitions were applied and carry an
// increasing Seq. Handlers may call Snapshot but must not dispatch to the
// same store.
func WithEmitter(emitter events.EventEmitter) StoreOption {
	return func(s *Store) {
		s.emitter = emitter
	}
}

// NewStore creates a Store holding the initial state.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		id:     DefaultID,
		state:  Initial(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "session_store", "session_id", s.id)
	return s
}

func (s *Store) touch(t time.Time) {
	s.lastAccess.Store(t.UnixNano())
}

func (s *Store) lastUsed() time.Time {
	return time.Unix(0, s.lastAccess.Load())
}

// ID returns the session identifier.
func (s *Store) ID() string {
	return s.id
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dispatch applies action to the session. A precondition violation is
// returned as an error and leaves the state unchanged.
func (s *Store) Dispatch(ctx context.Context, action Action) error {
	return s.apply(ctx, func(State) Action { return action })
}

// apply builds an action from the current state and reduces it while holding
// the lock, so actions derived from the state (Next, Previous) are atomic.
func (s *Store) apply(ctx context.Context, build func(State) Action) error {
	s.mu.Lock()
	action := build(s.state)
	if action == nil {
		s.mu.Unlock()
		return ErrUnknownAction
	}
	next, err := Reduce(s.state, action, s.rng)
	if err != nil {
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "rejected session transition",
			"action", action.Kind(),
			"error", err)
		return fmt.Errorf("%s: %w", action.Kind(), err)
	}
	s.state = next
	s.seq++
	seq, cardCount, index := s.seq, len(next.Cards), next.CurrentIndex
	s.emitMu.Lock()
	s.mu.Unlock()
	defer s.emitMu.Unlock()

	s.logger.DebugContext(ctx, "applied session transition",
		"action", action.Kind(),
		"card_count", cardCount,
		"current_index", index)

	if s.emitter != nil {
		event := events.NewSessionEvent(s.id, action.Kind(), cardCount, index)
		event.Seq = seq
		if err := s.emitter.EmitEvent(ctx, event); err != nil {
			// Observers cannot undo a transition.
			s.logger.WarnContext(ctx, "session event handler failed",
				"action", action.Kind(),
				"error", err)
		}
	}
	return nil
}

// LoadCards replaces the deck with cards.
func (s *Store) LoadCards(ctx context.Context, cards []domain.Flashcard) error {
	return s.Dispatch(ctx, LoadCards{Cards: cards})
}

// SetMetadata replaces the set metadata.
func (s *Store) SetMetadata(ctx context.Context, metadata *domain.SetMetadata) error {
	return s.Dispatch(ctx, SetMetadata{Metadata: metadata})
}

// SetActiveSet records the loaded catalog entry.
func (s *Store) SetActiveSet(ctx context.Context, set *domain.SetDescriptor) error {
	return s.Dispatch(ctx, SetActiveSet{Set: set})
}

// SetCurrentIndex moves to the card at index.
func (s *Store) SetCurrentIndex(ctx context.Context, index int) error {
	return s.Dispatch(ctx, SetCurrentIndex{Index: index})
}

// ToggleAnswer flips answer visibility.
func (s *Store) ToggleAnswer(ctx context.Context) error {
	return s.Dispatch(ctx, ToggleAnswer{})
}

// Shuffle randomly permutes the deck.
func (s *Store) Shuffle(ctx context.Context) error {
	return s.Dispatch(ctx, Shuffle{})
}

// Reset empties the deck.
func (s *Store) Reset(ctx context.Context) error {
	return s.Dispatch(ctx, Reset{})
}

// SetLoading marks a load as started or finished.
func (s *Store) SetLoading(ctx context.Context, loading bool) error {
	return s.Dispatch(ctx, SetLoading{Loading: loading})
}

// SetError records a load failure; nil clears it.
func (s *Store) SetError(ctx context.Context, message *string) error {
	return s.Dispatch(ctx, SetError{Message: message})
}

// Next moves to the following card. At the last card it returns
// ErrIndexOutOfRange.
func (s *Store) Next(ctx context.Context) error {
	return s.apply(ctx, func(st State) Action {
		return SetCurrentIndex{Index: st.CurrentIndex + 1}
	})
}

// Previous moves to the preceding card. At the first card it returns
// ErrIndexOutOfRange.
func (s *Store) Previous(ctx context.Context) error {
	return s.apply(ctx, func(st State) Action {
		return SetCurrentIndex{Index: st.CurrentIndex - 1}
	})
}
