package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/gesturegate/internal/classify"
	"github.com/ayusman/gesturegate/internal/gate"
)

// ErrSessionNotFound is returned when a requested session does not exist.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidTarget is returned when a session is created with a zero target.
var ErrInvalidTarget = errors.New("target must be positive")

// Options configure a new session.
type Options struct {
	// Target is the number of scored gestures required for success.
	Target uint32

	// StableFrames overrides the gate's default stability threshold when
	// positive.
	StableFrames uint32

	// Classifier tuning for this session's gate.
	Classifier classify.Config

	// Timeout, when positive, fails a running attempt after this duration.
	Timeout time.Duration
}

// Manager owns all live sessions, one per independent landmark stream.
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewManager creates an empty session Manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// Create builds a new idle session and registers it under a fresh ID.
func (m *Manager) Create(opts Options) (*Session, error) {
	if opts.Target == 0 {
		return nil, ErrInvalidTarget
	}

	cls := opts.Classifier
	if cls == (classify.Config{}) {
		cls = classify.DefaultConfig()
	}

	stable := opts.StableFrames
	if stable == 0 {
		stable = gate.DefaultStableFrames
	}

	g := gate.NewWithConfig(gate.Config{
		Target:       opts.Target,
		StableFrames: stable,
		Classifier:   cls,
	})

	s := newSession(uuid.NewString(), g, stable, opts.Timeout)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove discards a session and cancels its deadline timer.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	s.Close()
	return nil
}

// List returns snapshots of all live sessions.
func (m *Manager) List() []Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshots := make([]Snapshot, 0, len(m.sessions))
	for _, s := range m.sessions {
		snapshots = append(snapshots, s.Snapshot())
	}
	return snapshots
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
