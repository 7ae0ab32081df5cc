// Package gate implements the counting challenge state machine. A gate
// consumes one classified frame at a time, debounces the raw classification
// into a stable signal, and awards at most one count per gesture occurrence
// until the target is reached or an external timer fails the attempt.
package gate

import (
	"github.com/ayusman/gesturegate/internal/classify"
	"github.com/ayusman/gesturegate/internal/landmark"
)

// State is the lifecycle stage of a gate attempt.
type State int

const (
	// StateIdle is the initial state; no scoring occurs.
	StateIdle State = iota
	// StateRunning is the active counting state.
	StateRunning
	// StateSuccess means the target count was reached while running.
	StateSuccess
	// StateFailed means the external timer expired while running.
	StateFailed
)

// String returns the wire label for the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// DefaultStableFrames is the minimum run of consecutive identical non-none
// classifications before a gesture is trusted for scoring.
const DefaultStableFrames = 3

// Config holds gate construction parameters.
type Config struct {
	// Target is the number of scored gestures required for success. Must be
	// positive.
	Target uint32

	// StableFrames overrides DefaultStableFrames when positive.
	StableFrames uint32

	// Classifier holds the extension thresholds for the internal classifier.
	Classifier classify.Config
}

// Result is the per-frame outcome returned to the caller. Gesture carries
// the raw classification for the frame, not the debounced one.
type Result struct {
	Gesture string `json:"gesture"`
	State   string `json:"state"`
	Count   uint32 `json:"count"`
	Scored  bool   `json:"scored"`
}

// Gate is a single counting challenge attempt. It is exclusively owned by
// one calling context; it performs no locking, no I/O and no background
// work. Frames must arrive in capture order.
type Gate struct {
	classifier *classify.Classifier

	state  State
	count  uint32
	target uint32

	// canScore locks out scoring after a hit until the hand visibly leaves
	// any recognized pose. It re-arms on the raw signal, not the stable one,
	// so rapid repeats are not penalized.
	canScore bool

	// pending/stableRun track the run length of consecutive identical
	// non-none classifications; scoring trusts the classification only once
	// the run reaches stableFrames.
	pending      classify.Gesture
	stableRun    uint32
	stableFrames uint32
}

// New creates an idle gate requiring target scored gestures, with default
// stability and classifier thresholds.
func New(target uint32) *Gate {
	return NewWithConfig(Config{Target: target, Classifier: classify.DefaultConfig()})
}

// NewWithConfig creates an idle gate from explicit parameters.
func NewWithConfig(cfg Config) *Gate {
	stable := cfg.StableFrames
	if stable == 0 {
		stable = DefaultStableFrames
	}

	return &Gate{
		classifier:   classify.New(cfg.Classifier),
		state:        StateIdle,
		target:       cfg.Target,
		canScore:     true,
		pending:      classify.GestureNone,
		stableFrames: stable,
	}
}

// Start clears counters and stability state and begins a running attempt.
func (g *Gate) Start() {
	g.state = StateRunning
	g.clear()
}

// Reset clears counters and stability state and returns the gate to idle.
func (g *Gate) Reset() {
	g.state = StateIdle
	g.clear()
}

func (g *Gate) clear() {
	g.count = 0
	g.canScore = true
	g.pending = classify.GestureNone
	g.stableRun = 0
}

// Fail marks a running attempt as failed. It is the entry point for the
// external timeout notifier and a no-op in any other state, so a timer may
// race harmlessly with an attempt that already concluded.
func (g *Gate) Fail() {
	if g.state == StateRunning {
		g.state = StateFailed
	}
}

// Count returns the current score.
func (g *Gate) Count() uint32 { return g.count }

// Target returns the required score.
func (g *Gate) Target() uint32 { return g.target }

// State returns the current lifecycle state.
func (g *Gate) State() State { return g.state }

// IsSuccess reports whether the attempt reached its target.
func (g *Gate) IsSuccess() bool { return g.state == StateSuccess }

// IsFailed reports whether the attempt failed.
func (g *Gate) IsFailed() bool { return g.state == StateFailed }

// IsRunning reports whether the attempt is in progress.
func (g *Gate) IsRunning() bool { return g.state == StateRunning }

// ProcessFrame classifies one frame of landmarks and folds it into the
// attempt. Frames with fewer than 21 points classify as none and never
// score; a bad tracking frame must not disturb the session.
func (g *Gate) ProcessFrame(points []landmark.Point3D) Result {
	gesture := g.classifier.Classify(points)
	scored := false

	// Stability tracking runs in every state so the counter is warm when a
	// run begins mid-pose.
	if gesture == g.pending && gesture != classify.GestureNone {
		g.stableRun++
	} else {
		g.pending = gesture
		if gesture != classify.GestureNone {
			g.stableRun = 1
		} else {
			g.stableRun = 0
		}
	}

	if g.state == StateRunning {
		stable := g.stableRun >= g.stableFrames && gesture != classify.GestureNone

		if stable && g.canScore {
			g.count++
			g.canScore = false
			scored = true

			if g.count >= g.target {
				g.state = StateSuccess
			}
		}
	}

	// Re-arm on the raw signal: a momentary departure from any recognized
	// pose releases the lockout, regardless of how long the pose was held.
	if gesture == classify.GestureNone {
		g.canScore = true
	}

	return Result{
		Gesture: gesture.String(),
		State:   g.state.String(),
		Count:   g.count,
		Scored:  scored,
	}
}

// ProcessArrays is ProcessFrame for the flat parallel-array input shape.
// Arrays shorter than 21 entries classify as none.
func (g *Gate) ProcessArrays(xs, ys []float64) Result {
	return g.ProcessFrame(landmark.FromArrays(xs, ys))
}
