package classify

import (
	"testing"

	"github.com/ayusman/gesturegate/internal/landmark"
)

func TestGesture_String(t *testing.T) {
	cases := []struct {
		gesture Gesture
		want    string
	}{
		{GestureNone, "none"},
		{GestureA, "gesture_a"},
		{GestureB, "gesture_b"},
		{Gesture(99), "none"},
	}

	for _, tc := range cases {
		if got := tc.gesture.String(); got != tc.want {
			t.Errorf("Gesture(%d).String() = %q, want %q", tc.gesture, got, tc.want)
		}
	}
}

func TestClassifier_Classify(t *testing.T) {
	c := New(DefaultConfig())

	t.Run("thumb and pinky pose yields gesture A", func(t *testing.T) {
		if got := c.Classify(landmark.GestureAPose()); got != GestureA {
			t.Errorf("expected GestureA, got %s", got)
		}
	})

	t.Run("index and middle pose yields gesture B", func(t *testing.T) {
		if got := c.Classify(landmark.GestureBPose()); got != GestureB {
			t.Errorf("expected GestureB, got %s", got)
		}
	})

	t.Run("open palm yields none", func(t *testing.T) {
		if got := c.Classify(landmark.OpenPalmPose()); got != GestureNone {
			t.Errorf("expected GestureNone for all-extended pose, got %s", got)
		}
	})

	t.Run("fist yields none", func(t *testing.T) {
		if got := c.Classify(landmark.FistPose()); got != GestureNone {
			t.Errorf("expected GestureNone for all-folded pose, got %s", got)
		}
	})

	t.Run("partial overlap with accepted pattern yields none", func(t *testing.T) {
		// Gesture B pose with ring also raised matches no pattern
		points := landmark.GestureBPose()
		points[landmark.RingPIP] = landmark.Point3D{X: 0.43, Y: 0.55}
		points[landmark.RingTip] = landmark.Point3D{X: 0.42, Y: 0.35}

		if got := c.Classify(points); got != GestureNone {
			t.Errorf("expected GestureNone, got %s", got)
		}
	})

	t.Run("fewer than 21 points yields none", func(t *testing.T) {
		points := landmark.GestureAPose()

		if got := c.Classify(points[:20]); got != GestureNone {
			t.Errorf("expected GestureNone for short frame, got %s", got)
		}
		if got := c.Classify(nil); got != GestureNone {
			t.Errorf("expected GestureNone for nil frame, got %s", got)
		}
	})

	t.Run("fingertip exactly at the margin is not extended", func(t *testing.T) {
		points := landmark.GestureBPose()
		points[landmark.IndexTip].Y = points[landmark.IndexPIP].Y - DefaultConfig().YMargin

		// Index drops out, leaving middle alone: no pattern matches
		if got := c.Classify(points); got != GestureNone {
			t.Errorf("expected GestureNone at the threshold boundary, got %s", got)
		}
	})

	t.Run("thumb within the ratio margin is not extended", func(t *testing.T) {
		points := landmark.GestureAPose()

		// Tip farther than the IP, but by less than the required 10%
		points[landmark.ThumbMCP] = landmark.Point3D{X: 0.5, Y: 0.7}
		points[landmark.ThumbIP] = landmark.Point3D{X: 0.6, Y: 0.7}
		points[landmark.ThumbTip] = landmark.Point3D{X: 0.605, Y: 0.7}

		if got := c.Classify(points); got != GestureNone {
			t.Errorf("expected GestureNone with near-straight thumb, got %s", got)
		}
	})
}

func TestClassifier_ConfigTuning(t *testing.T) {
	t.Run("larger y margin rejects shallow extensions", func(t *testing.T) {
		strict := New(Config{YMargin: 0.5, ThumbRatio: 1.1})

		if got := strict.Classify(landmark.GestureBPose()); got != GestureNone {
			t.Errorf("expected GestureNone under a 0.5 margin, got %s", got)
		}
	})

	t.Run("larger thumb ratio rejects gesture A", func(t *testing.T) {
		strict := New(Config{YMargin: 0.02, ThumbRatio: 10.0})

		if got := strict.Classify(landmark.GestureAPose()); got != GestureNone {
			t.Errorf("expected GestureNone under a 10x thumb ratio, got %s", got)
		}
	})

	t.Run("point and flat array forms classify identically", func(t *testing.T) {
		c := New(DefaultConfig())
		points := landmark.GestureBPose()

		xs := make([]float64, landmark.NumLandmarks)
		ys := make([]float64, landmark.NumLandmarks)
		for i, p := range points {
			xs[i] = p.X
			ys[i] = p.Y
		}

		fromPoints := c.Classify(points)
		fromArrays := c.Classify(landmark.FromArrays(xs, ys))

		if fromPoints != fromArrays {
			t.Errorf("point form classified %s, array form %s", fromPoints, fromArrays)
		}
	})
}
