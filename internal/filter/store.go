package filter

import (
	"sync"

	"github.com/namebay/namebay/pkg/logger"
	"github.com/namebay/namebay/pkg/persistence"
)

// Store is the single source of truth for one context's filter state.
// Readers get value snapshots; mutation happens only through Dispatch.
type Store struct {
	mu    sync.RWMutex
	state State
	store persistence.Store // nil disables persistence
	subs  []func(State)
}

// NewStore creates a store seeded with the context default. When svc is
// non-nil the previous session's state is restored from it.
func NewStore(c Context, svc persistence.Service) *Store {
	s := &Store{state: NewState(c)}
	if svc != nil {
		s.store = svc.NewStore("state", string(c), "filters")
		var saved State
		if err := s.store.Load(&saved); err == nil && saved.Context == c {
			s.state = saved
		} else if err != nil && err != persistence.ErrNotExists {
			logger.Warnf("[filter] restore state for %s failed: %v", c, err)
		}
	}
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Dispatch applies one action and notifies subscribers with the new state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state.clone()
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Hydrate replaces the whole state, e.g. from a parsed share link. The
// context is forced to the store's own; a link from another context only
// contributes the fields its vocabulary shares.
func (s *Store) Hydrate(state State) {
	s.mu.Lock()
	state.Context = s.state.Context
	s.state = state.clone()
	s.mu.Unlock()
}

// Subscribe registers a callback invoked after every Dispatch.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Persist writes the current state through the persistence service.
// Call it on shutdown; scroll offsets survive restarts this way.
func (s *Store) Persist() error {
	s.mu.RLock()
	state := s.state.clone()
	store := s.store
	s.mu.RUnlock()

	if store == nil {
		return nil
	}
	return store.Save(state)
}
