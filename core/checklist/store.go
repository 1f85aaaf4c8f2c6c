package checklist

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iwneis/neishelper/core"
)

const defaultSaveTimeout = 5 * time.Second

// Status is the lifecycle of a Store: Uninitialized -> Loading -> Ready, never back.
type Status int

const (
	StatusUninitialized Status = iota
	StatusLoading
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

type (
	// Store owns one user's checked state for a session.
	// Mutations apply to memory at once; once Ready, each one schedules a save of the full snapshot.
	// Storage failures never reach the caller: a failed load starts empty, a failed save is dropped.
	Store struct {
		gw          Gateway
		userID      string
		logger      core.Logger
		saveTimeout time.Duration

		mu     sync.Mutex
		status Status
		state  State
		seq    uint64 // last scheduled save

		putMu   sync.Mutex
		written uint64 // last save that reached the gateway
		saves   sync.WaitGroup
	}

	StoreOption func(*Store)
)

func WithLogger(logger core.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// WithSaveTimeout bounds each background save.
func WithSaveTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.saveTimeout = d
		}
	}
}

func NewStore(gw Gateway, userID string, opts ...StoreOption) *Store {
	s := &Store{
		gw:          gw,
		userID:      userID,
		logger:      nopLogger{},
		saveTimeout: defaultSaveTimeout,
		state:       State{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) UserID() string { return s.userID }

func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Load reads the user's state through the gateway and makes the store Ready.
// An absent, unreadable or corrupt blob yields an empty state. Load never saves.
// Only the first call reaches the gateway; later calls return the current state.
func (s *Store) Load(ctx context.Context) State {
	s.mu.Lock()
	if s.status != StatusUninitialized {
		defer s.mu.Unlock()
		return s.state.Clone()
	}
	s.status = StatusLoading
	s.mu.Unlock()

	state := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.status = StatusReady
	return s.state.Clone()
}

func (s *Store) fetch(ctx context.Context) State {
	blob, found, err := s.gw.Get(ctx, s.userID)
	if err != nil {
		s.logger.Warn("checklist: load failed, starting empty", err, core.Person{ID: s.userID})
		return State{}
	}
	if !found {
		return State{}
	}
	state, err := Decode(blob)
	if err != nil {
		s.logger.Warn("checklist: stored state is corrupt, starting empty", err, core.Person{ID: s.userID})
		return State{}
	}
	return state
}

func (s *Store) Checked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state[id]
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Toggle flips the flag of `id` (unchecked when absent) and returns the new value.
func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	v := !s.state[id]
	s.state[id] = v
	snapshot, ready := s.snapshot()
	s.mu.Unlock()

	if ready {
		s.Save(snapshot)
	}
	return v
}

// ResetScope deletes every id of `ids`. Sub-item ids must be listed by the caller.
func (s *Store) ResetScope(ids ...string) {
	s.mu.Lock()
	for _, id := range ids {
		delete(s.state, id)
	}
	snapshot, ready := s.snapshot()
	s.mu.Unlock()

	if ready {
		s.Save(snapshot)
	}
}

// snapshot must be called with mu held.
func (s *Store) snapshot() (State, bool) {
	if s.status != StatusReady {
		return nil, false
	}
	return s.state.Clone(), true
}

// Save writes `state` through the gateway in the background and returns immediately.
// Failures are logged and dropped. A save older than one already written is skipped.
func (s *Store) Save(state State) {
	blob, err := state.Encode()
	if err != nil {
		s.logger.Warn("checklist: save skipped", err, core.Person{ID: s.userID})
		return
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	s.saves.Add(1)
	go func() {
		defer s.saves.Done()

		s.putMu.Lock()
		defer s.putMu.Unlock()
		if seq <= s.written {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
		defer cancel()
		if err := s.gw.Put(ctx, s.userID, blob); err != nil {
			s.logger.Warn("checklist: save failed", err, core.Person{ID: s.userID})
			return
		}
		s.written = seq
	}()
}

// Wait blocks until every scheduled save has finished.
func (s *Store) Wait() {
	s.saves.Wait()
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
