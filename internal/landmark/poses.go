package landmark

// Preset hand poses in normalized image coordinates (y increases downward).
// They are used by tests and by the replay tooling as known-good inputs for
// the finger extension heuristics.

// GestureAPose returns landmarks for the thumb-and-pinky pose: thumb and
// pinky extended, index/middle/ring folded against the palm.
func GestureAPose() []Point3D {
	points := make([]Point3D, NumLandmarks)

	points[Wrist] = Point3D{X: 0.5, Y: 0.8}

	// Thumb extended laterally, tip well clear of the MCP
	points[ThumbCMC] = Point3D{X: 0.54, Y: 0.75}
	points[ThumbMCP] = Point3D{X: 0.58, Y: 0.70}
	points[ThumbIP] = Point3D{X: 0.64, Y: 0.66}
	points[ThumbTip] = Point3D{X: 0.72, Y: 0.60}

	// Index folded, tip curled back below the PIP
	points[IndexMCP] = Point3D{X: 0.55, Y: 0.68}
	points[IndexPIP] = Point3D{X: 0.55, Y: 0.64}
	points[IndexDIP] = Point3D{X: 0.54, Y: 0.68}
	points[IndexTip] = Point3D{X: 0.53, Y: 0.72}

	// Middle folded
	points[MiddleMCP] = Point3D{X: 0.50, Y: 0.67}
	points[MiddlePIP] = Point3D{X: 0.50, Y: 0.63}
	points[MiddleDIP] = Point3D{X: 0.49, Y: 0.67}
	points[MiddleTip] = Point3D{X: 0.48, Y: 0.71}

	// Ring folded
	points[RingMCP] = Point3D{X: 0.45, Y: 0.68}
	points[RingPIP] = Point3D{X: 0.45, Y: 0.64}
	points[RingDIP] = Point3D{X: 0.44, Y: 0.68}
	points[RingTip] = Point3D{X: 0.43, Y: 0.72}

	// Pinky extended upward
	points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70}
	points[PinkyPIP] = Point3D{X: 0.38, Y: 0.60}
	points[PinkyDIP] = Point3D{X: 0.36, Y: 0.52}
	points[PinkyTip] = Point3D{X: 0.35, Y: 0.44}

	return points
}

// GestureBPose returns landmarks for the two-finger "V" pose: index and
// middle extended, thumb/ring/pinky folded.
func GestureBPose() []Point3D {
	points := make([]Point3D, NumLandmarks)

	points[Wrist] = Point3D{X: 0.5, Y: 0.8}

	// Thumb tucked across the palm, tip no farther from the MCP than the IP
	points[ThumbCMC] = Point3D{X: 0.54, Y: 0.75}
	points[ThumbMCP] = Point3D{X: 0.58, Y: 0.70}
	points[ThumbIP] = Point3D{X: 0.56, Y: 0.64}
	points[ThumbTip] = Point3D{X: 0.53, Y: 0.66}

	// Index extended upward
	points[IndexMCP] = Point3D{X: 0.55, Y: 0.68}
	points[IndexPIP] = Point3D{X: 0.57, Y: 0.55}
	points[IndexDIP] = Point3D{X: 0.58, Y: 0.45}
	points[IndexTip] = Point3D{X: 0.58, Y: 0.35}

	// Middle extended upward
	points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66}
	points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52}
	points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40}
	points[MiddleTip] = Point3D{X: 0.50, Y: 0.28}

	// Ring folded
	points[RingMCP] = Point3D{X: 0.45, Y: 0.68}
	points[RingPIP] = Point3D{X: 0.45, Y: 0.64}
	points[RingDIP] = Point3D{X: 0.44, Y: 0.68}
	points[RingTip] = Point3D{X: 0.43, Y: 0.72}

	// Pinky folded
	points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70}
	points[PinkyPIP] = Point3D{X: 0.40, Y: 0.66}
	points[PinkyDIP] = Point3D{X: 0.39, Y: 0.70}
	points[PinkyTip] = Point3D{X: 0.38, Y: 0.73}

	return points
}

// OpenPalmPose returns landmarks for an open palm with all five fingers
// extended. It matches neither accepted gesture pattern.
func OpenPalmPose() []Point3D {
	points := make([]Point3D, NumLandmarks)

	points[Wrist] = Point3D{X: 0.5, Y: 0.8}

	points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	points[IndexMCP] = Point3D{X: 0.55, Y: 0.68}
	points[IndexPIP] = Point3D{X: 0.57, Y: 0.55}
	points[IndexDIP] = Point3D{X: 0.58, Y: 0.45}
	points[IndexTip] = Point3D{X: 0.58, Y: 0.35}

	points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66}
	points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52}
	points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40}
	points[MiddleTip] = Point3D{X: 0.50, Y: 0.28}

	points[RingMCP] = Point3D{X: 0.45, Y: 0.68}
	points[RingPIP] = Point3D{X: 0.43, Y: 0.55}
	points[RingDIP] = Point3D{X: 0.42, Y: 0.45}
	points[RingTip] = Point3D{X: 0.42, Y: 0.35}

	points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70}
	points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60}
	points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50}
	points[PinkyTip] = Point3D{X: 0.34, Y: 0.42}

	return points
}

// FistPose returns landmarks for a closed fist with every finger folded.
func FistPose() []Point3D {
	points := make([]Point3D, NumLandmarks)

	points[Wrist] = Point3D{X: 0.5, Y: 0.8}

	// Thumb wrapped over the fingers
	points[ThumbCMC] = Point3D{X: 0.54, Y: 0.75}
	points[ThumbMCP] = Point3D{X: 0.58, Y: 0.70}
	points[ThumbIP] = Point3D{X: 0.55, Y: 0.65}
	points[ThumbTip] = Point3D{X: 0.52, Y: 0.68}

	points[IndexMCP] = Point3D{X: 0.55, Y: 0.68}
	points[IndexPIP] = Point3D{X: 0.55, Y: 0.64}
	points[IndexDIP] = Point3D{X: 0.54, Y: 0.68}
	points[IndexTip] = Point3D{X: 0.53, Y: 0.72}

	points[MiddleMCP] = Point3D{X: 0.50, Y: 0.67}
	points[MiddlePIP] = Point3D{X: 0.50, Y: 0.63}
	points[MiddleDIP] = Point3D{X: 0.49, Y: 0.67}
	points[MiddleTip] = Point3D{X: 0.48, Y: 0.71}

	points[RingMCP] = Point3D{X: 0.45, Y: 0.68}
	points[RingPIP] = Point3D{X: 0.45, Y: 0.64}
	points[RingDIP] = Point3D{X: 0.44, Y: 0.68}
	points[RingTip] = Point3D{X: 0.43, Y: 0.72}

	points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70}
	points[PinkyPIP] = Point3D{X: 0.40, Y: 0.66}
	points[PinkyDIP] = Point3D{X: 0.39, Y: 0.70}
	points[PinkyTip] = Point3D{X: 0.38, Y: 0.73}

	return points
}
