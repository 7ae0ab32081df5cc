// Package classify maps a single frame of hand landmarks to a gesture label
// using finger extension geometry. Classification is stateless: temporal
// smoothing is the gate's job.
package classify

import "github.com/ayusman/gesturegate/internal/landmark"

// Gesture is the label produced for one frame.
type Gesture int

const (
	// GestureNone means no recognized gesture, including malformed input.
	GestureNone Gesture = iota
	// GestureA is thumb and pinky extended with index/middle/ring folded.
	GestureA
	// GestureB is index and middle extended with thumb/ring/pinky folded.
	GestureB
)

// String returns the wire label for the gesture.
func (g Gesture) String() string {
	switch g {
	case GestureA:
		return "gesture_a"
	case GestureB:
		return "gesture_b"
	default:
		return "none"
	}
}

// Config holds the tunable thresholds of the extension heuristics. The
// values are empirical noise margins; accuracy retuning happens here, not in
// control flow.
type Config struct {
	// YMargin is the minimum vertical gap (normalized units) a fingertip
	// must clear above its PIP joint to count as extended.
	YMargin float64

	// ThumbRatio is the factor by which the thumb tip must be farther from
	// the MCP than the IP joint is to count as extended.
	ThumbRatio float64
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		YMargin:    0.02,
		ThumbRatio: 1.1,
	}
}

// Classifier labels landmark frames according to its configured thresholds.
type Classifier struct {
	cfg Config
}

// New creates a Classifier with the given thresholds.
func New(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify maps one frame's landmarks to a gesture label. Frames with fewer
// than 21 points classify as GestureNone; upstream tracking loss is common
// and must not fault the frame loop.
func (c *Classifier) Classify(points []landmark.Point3D) Gesture {
	if len(points) < landmark.NumLandmarks {
		return GestureNone
	}

	thumb := c.thumbExtended(points)
	index := c.fingerExtended(points, landmark.IndexTip, landmark.IndexPIP)
	middle := c.fingerExtended(points, landmark.MiddleTip, landmark.MiddlePIP)
	ring := c.fingerExtended(points, landmark.RingTip, landmark.RingPIP)
	pinky := c.fingerExtended(points, landmark.PinkyTip, landmark.PinkyPIP)

	if thumb && pinky && !index && !middle && !ring {
		return GestureA
	}

	if index && middle && !thumb && !ring && !pinky {
		return GestureB
	}

	return GestureNone
}

// fingerExtended reports whether a finger is extended. In the tracker's
// image coordinates y increases downward, so an extended fingertip sits
// above its PIP joint by at least the noise margin.
func (c *Classifier) fingerExtended(points []landmark.Point3D, tipIdx, pipIdx int) bool {
	return points[tipIdx].Y < points[pipIdx].Y-c.cfg.YMargin
}

// thumbExtended reports whether the thumb is extended. The thumb moves
// laterally rather than vertically, so it compares in-plane distances from
// the MCP: the tip must be farther out than the IP joint by the configured
// ratio.
func (c *Classifier) thumbExtended(points []landmark.Point3D) bool {
	tipToMCP := landmark.PlanarDistance(points[landmark.ThumbTip], points[landmark.ThumbMCP])
	ipToMCP := landmark.PlanarDistance(points[landmark.ThumbIP], points[landmark.ThumbMCP])
	return tipToMCP > ipToMCP*c.cfg.ThumbRatio
}
