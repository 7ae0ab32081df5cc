// Package landmark defines the 21-point hand landmark layout shared by the
// classifier and the gate, along with helpers for the two supported input
// shapes (point sequences and flat parallel arrays).
package landmark

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a tracked landmark position in the tracker's normalized
// image coordinate space. Y increases downward; Z is depth and unused by the
// current gesture rules.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FromArrays builds a landmark sequence from flat parallel coordinate arrays,
// the alternate input shape delivered by some trackers. Only the first
// NumLandmarks entries are used and Z is zeroed. Returns nil if either array
// holds fewer than NumLandmarks values.
func FromArrays(xs, ys []float64) []Point3D {
	if len(xs) < NumLandmarks || len(ys) < NumLandmarks {
		return nil
	}

	points := make([]Point3D, NumLandmarks)
	for i := 0; i < NumLandmarks; i++ {
		points[i] = Point3D{X: xs[i], Y: ys[i]}
	}
	return points
}

// Distance calculates the Euclidean distance between two 3D points.
func Distance(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// PlanarDistance calculates the Euclidean distance between two points in the
// image plane, ignoring depth. The thumb extension rule works in this plane.
func PlanarDistance(a, b Point3D) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
