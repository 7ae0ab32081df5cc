// Package session fans gate attempts out per independent landmark stream. A
// gate is single-owner by contract, so each session serializes access from
// HTTP handlers, WebSocket readers and the deadline timer behind one mutex.
package session

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/gesturegate/internal/gate"
	"github.com/ayusman/gesturegate/internal/landmark"
	"github.com/ayusman/gesturegate/internal/recorder"
)

// Session wraps one gate attempt with an identity, an optional wall-clock
// deadline and an optional frame recording.
type Session struct {
	ID string

	mu      sync.Mutex
	gate    *gate.Gate
	stable  uint32
	timeout time.Duration
	timer   *time.Timer
	rec     *recorder.Recorder

	// timerGen invalidates deadline callbacks that were already in flight
	// when the attempt was reset or restarted.
	timerGen uint64
}

// Snapshot is a read-only view of a session for API responses.
type Snapshot struct {
	ID           string `json:"id"`
	State        string `json:"state"`
	Count        uint32 `json:"count"`
	Target       uint32 `json:"target"`
	StableFrames uint32 `json:"stable_frames"`
	Recording    string `json:"recording,omitempty"`
}

func newSession(id string, g *gate.Gate, stableFrames uint32, timeout time.Duration) *Session {
	return &Session{
		ID:      id,
		gate:    g,
		timeout: timeout,
		stable:  stableFrames,
	}
}

// AttachRecorder tees every frame processed by this session into rec. The
// recorder is closed when the session is closed or removed.
func (s *Session) AttachRecorder(rec *recorder.Recorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec
}

// Start begins the attempt and arms the deadline timer if the session has
// one. The timer fires the gate's Fail transition, which is a no-op when the
// attempt already concluded.
func (s *Session) Start() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.gate.Start()

	if s.timeout > 0 {
		gen := s.timerGen
		s.timer = time.AfterFunc(s.timeout, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.timerGen == gen {
				s.gate.Fail()
			}
		})
	}

	return s.snapshotLocked()
}

// Reset cancels any pending deadline and returns the attempt to idle.
func (s *Session) Reset() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.gate.Reset()
	return s.snapshotLocked()
}

// Fail applies the external timeout transition.
func (s *Session) Fail() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gate.Fail()
	return s.snapshotLocked()
}

// ProcessFrame feeds one frame of landmark points to the gate, recording it
// first when a recorder is attached. A recording failure is logged and never
// disturbs the frame loop.
func (s *Session) ProcessFrame(points []landmark.Point3D) gate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rec != nil {
		if err := s.rec.Write(points); err != nil {
			log.Printf("session %s: recording frame failed: %v", s.ID, err)
		}
	}

	return s.gate.ProcessFrame(points)
}

// ProcessArrays feeds one frame in the flat parallel-array shape.
func (s *Session) ProcessArrays(xs, ys []float64) gate.Result {
	return s.ProcessFrame(landmark.FromArrays(xs, ys))
}

// Snapshot returns the session's current state for API responses.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close cancels any pending deadline timer and finalizes the recording.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()

	if s.rec != nil {
		if err := s.rec.Close(); err != nil {
			log.Printf("session %s: closing recording failed: %v", s.ID, err)
		}
		s.rec = nil
	}
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:           s.ID,
		State:        s.gate.State().String(),
		Count:        s.gate.Count(),
		Target:       s.gate.Target(),
		StableFrames: s.stable,
	}
	if s.rec != nil {
		snap.Recording = s.rec.Path()
	}
	return snap
}

func (s *Session) stopTimerLocked() {
	s.timerGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
