// internal/store/memory.go
//
// In-memory implementation of the session Store.
// Each connected client gets its own *game.Session; nothing survives a
// process restart.
//
// Characteristics:
//   - Sessions keyed by Session.ID() in a map, with the time each was last seen.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - ErrNotFound for unknown IDs.
//   - Prune drops sessions idle since a cutoff; callers decide when to run it.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jesuscallejadev/WordScramble/internal/game"
)

// ErrNotFound is returned when no session has the requested ID.
var ErrNotFound = errors.New("store: session not found")

// Store holds live game sessions.
type Store interface {
	// Save adds or replaces a session and marks it as seen.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID and marks it as seen, or returns ErrNotFound.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Delete drops a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Prune drops every session last seen before cutoff and reports how
	// many were removed.
	Prune(ctx context.Context, cutoff time.Time) int

	// Len reports how many sessions are held.
	Len() int
}

type entry struct {
	sess     *game.Session
	lastSeen time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions
	sessions map[string]*entry // keyed by Session.ID()
	now      func() time.Time
}

// Option configures the memory store.
type Option func(*memory)

// WithClock replaces time.Now for last-seen bookkeeping.
func WithClock(now func() time.Time) Option { return func(m *memory) { m.now = now } }

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore(opts ...Option) Store {
	m := &memory{sessions: make(map[string]*entry), now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *memory) Save(_ context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = &entry{sess: s, lastSeen: m.now()}
	return nil
}

// Get takes the write lock because it updates the last-seen time.
func (m *memory) Get(_ context.Context, id string) (*game.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = m.now()
	return e.sess, nil
}

func (m *memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Prune(_ context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
