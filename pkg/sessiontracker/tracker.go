package sessiontracker

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one tracked unit of work, e.g. a visualization request.
type Session struct {
	ID        string
	Key       string
	StartedAt time.Time
}

// Tracker keeps active sessions in a keyed map with an explicit
// start/finish lifecycle. Instances are handed to their consumers
// explicitly instead of living in package-level state, so every call chain
// owns its tracker.
type Tracker struct {
	mu     sync.Mutex
	active map[string]Session
}

func NewTracker() *Tracker {
	return &Tracker{
		active: map[string]Session{},
	}
}

// Start registers a new session under the given key. Starting a key that is
// already active replaces the previous session.
func (t *Tracker) Start(key string) Session {
	session := Session{
		ID:        uuid.NewString(),
		Key:       key,
		StartedAt: time.Now(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.active[key] = session
	return session
}

// Finish removes the session under the given key and returns it together
// with its duration. Finishing an unknown key is a no-op.
func (t *Tracker) Finish(key string) (Session, time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	session, ok := t.active[key]
	if !ok {
		return Session{}, 0, false
	}
	delete(t.active, key)
	return session, time.Since(session.StartedAt), true
}

func (t *Tracker) ActiveCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}
