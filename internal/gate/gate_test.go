package gate

import (
	"testing"

	"github.com/ayusman/gesturegate/internal/classify"
	"github.com/ayusman/gesturegate/internal/landmark"
)

// feed presents the same pose to the gate n times and returns the last result.
func feed(g *Gate, points []landmark.Point3D, n int) Result {
	var res Result
	for i := 0; i < n; i++ {
		res = g.ProcessFrame(points)
	}
	return res
}

func TestState_String(t *testing.T) {
	cases := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StateRunning, "running"},
		{StateSuccess, "success"},
		{StateFailed, "failed"},
	}

	for _, tc := range cases {
		if got := tc.state.String(); got != tc.want {
			t.Errorf("State(%d).String() = %q, want %q", tc.state, got, tc.want)
		}
	}
}

func TestGate_Lifecycle(t *testing.T) {
	g := New(3)

	if g.State() != StateIdle {
		t.Fatalf("expected new gate to be idle, got %s", g.State())
	}
	if g.Count() != 0 {
		t.Errorf("expected count 0, got %d", g.Count())
	}

	g.Start()
	if !g.IsRunning() {
		t.Fatalf("expected running after Start, got %s", g.State())
	}
	if g.Count() != 0 {
		t.Errorf("expected count 0 after Start, got %d", g.Count())
	}

	g.Fail()
	if !g.IsFailed() {
		t.Fatalf("expected failed after Fail, got %s", g.State())
	}

	g.Reset()
	if g.State() != StateIdle {
		t.Fatalf("expected idle after Reset, got %s", g.State())
	}
	if g.Count() != 0 {
		t.Errorf("expected count 0 after Reset, got %d", g.Count())
	}
}

func TestGate_FailOnlyWhileRunning(t *testing.T) {
	t.Run("no-op while idle", func(t *testing.T) {
		g := New(1)
		g.Fail()
		if g.State() != StateIdle {
			t.Errorf("expected idle, got %s", g.State())
		}
	})

	t.Run("no-op after success", func(t *testing.T) {
		g := NewWithConfig(Config{Target: 1, StableFrames: 1, Classifier: classify.DefaultConfig()})
		g.Start()
		g.ProcessFrame(landmark.GestureAPose())
		if !g.IsSuccess() {
			t.Fatalf("expected success, got %s", g.State())
		}

		g.Fail()
		if !g.IsSuccess() {
			t.Errorf("expected Fail to be ignored after success, got %s", g.State())
		}
	})

	t.Run("idempotent after failure", func(t *testing.T) {
		g := New(1)
		g.Start()
		g.Fail()
		g.Fail()
		if !g.IsFailed() {
			t.Errorf("expected failed, got %s", g.State())
		}
	})
}

func TestGate_Debounce(t *testing.T) {
	t.Run("one frame below the threshold never scores", func(t *testing.T) {
		g := New(2)
		g.Start()

		res := feed(g, landmark.GestureAPose(), DefaultStableFrames-1)

		if res.Scored {
			t.Error("expected no score below the stability threshold")
		}
		if g.Count() != 0 {
			t.Errorf("expected count 0, got %d", g.Count())
		}
	})

	t.Run("threshold frame scores exactly once", func(t *testing.T) {
		g := New(2)
		g.Start()

		feed(g, landmark.GestureAPose(), DefaultStableFrames-1)
		res := g.ProcessFrame(landmark.GestureAPose())

		if !res.Scored {
			t.Error("expected the threshold frame to score")
		}
		if res.Count != 1 {
			t.Errorf("expected count 1, got %d", res.Count)
		}
	})

	t.Run("held pose does not score again", func(t *testing.T) {
		g := New(5)
		g.Start()

		feed(g, landmark.GestureAPose(), DefaultStableFrames)
		res := feed(g, landmark.GestureAPose(), 50)

		if res.Scored {
			t.Error("expected held pose not to score")
		}
		if g.Count() != 1 {
			t.Errorf("expected count to stay at 1, got %d", g.Count())
		}
	})

	t.Run("custom stability threshold", func(t *testing.T) {
		g := NewWithConfig(Config{Target: 2, StableFrames: 5, Classifier: classify.DefaultConfig()})
		g.Start()

		if res := feed(g, landmark.GestureBPose(), 4); res.Scored {
			t.Error("expected no score on the 4th frame with threshold 5")
		}
		if res := g.ProcessFrame(landmark.GestureBPose()); !res.Scored {
			t.Error("expected the 5th frame to score")
		}
	})
}

func TestGate_ReArm(t *testing.T) {
	t.Run("none frame releases the lockout", func(t *testing.T) {
		g := New(3)
		g.Start()

		feed(g, landmark.GestureAPose(), DefaultStableFrames)
		if g.Count() != 1 {
			t.Fatalf("expected count 1, got %d", g.Count())
		}

		g.ProcessFrame(landmark.FistPose())
		res := feed(g, landmark.GestureAPose(), DefaultStableFrames)

		if !res.Scored {
			t.Error("expected a second score after a none frame")
		}
		if g.Count() != 2 {
			t.Errorf("expected count 2, got %d", g.Count())
		}
	})

	t.Run("switching gestures without a none frame does not score", func(t *testing.T) {
		g := New(3)
		g.Start()

		feed(g, landmark.GestureAPose(), DefaultStableFrames)
		res := feed(g, landmark.GestureBPose(), DefaultStableFrames)

		if res.Scored {
			t.Error("expected no score without an intervening none frame")
		}
		if g.Count() != 1 {
			t.Errorf("expected count to stay at 1, got %d", g.Count())
		}
	})
}

// Mirrors the reference sequence: frames classifying A,A,A,none,B,B,B with
// target 2 score on the 3rd and 7th frames and finish in success.
func TestGate_SequenceScenario(t *testing.T) {
	g := New(2)
	g.Start()

	a := landmark.GestureAPose()
	b := landmark.GestureBPose()
	none := landmark.FistPose()

	frames := [][]landmark.Point3D{a, a, a, none, b, b, b}
	var results []Result
	for _, f := range frames {
		results = append(results, g.ProcessFrame(f))
	}

	if !results[2].Scored || results[2].Count != 1 {
		t.Errorf("frame 3: expected scored with count 1, got scored=%v count=%d", results[2].Scored, results[2].Count)
	}
	if results[3].Scored || results[3].Gesture != "none" {
		t.Errorf("frame 4: expected unscored none frame, got scored=%v gesture=%s", results[3].Scored, results[3].Gesture)
	}
	if !results[6].Scored || results[6].Count != 2 {
		t.Errorf("frame 7: expected scored with count 2, got scored=%v count=%d", results[6].Scored, results[6].Count)
	}
	if results[6].State != "success" {
		t.Errorf("frame 7: expected success, got %s", results[6].State)
	}
	if !g.IsSuccess() {
		t.Errorf("expected gate in success, got %s", g.State())
	}
}

func TestGate_ShortFrames(t *testing.T) {
	g := New(2)
	g.Start()
	feed(g, landmark.GestureAPose(), DefaultStableFrames)

	short := landmark.GestureAPose()[:15]
	res := g.ProcessFrame(short)

	if res.Gesture != "none" {
		t.Errorf("expected gesture none for short frame, got %s", res.Gesture)
	}
	if res.Scored {
		t.Error("expected short frame not to score")
	}
	if res.Count != 1 {
		t.Errorf("expected count unchanged at 1, got %d", res.Count)
	}
	if res.State != "running" {
		t.Errorf("expected state unchanged, got %s", res.State)
	}
}

func TestGate_NoScoringOutsideRunning(t *testing.T) {
	t.Run("idle frames track stability but never score", func(t *testing.T) {
		g := New(1)

		res := feed(g, landmark.GestureAPose(), 10)

		if res.Scored {
			t.Error("expected no score while idle")
		}
		if g.Count() != 0 {
			t.Errorf("expected count 0, got %d", g.Count())
		}
		if res.Gesture != "gesture_a" {
			t.Errorf("expected raw gesture to still be reported, got %s", res.Gesture)
		}
	})

	t.Run("count never exceeds target after success", func(t *testing.T) {
		g := New(1)
		g.Start()

		feed(g, landmark.GestureAPose(), DefaultStableFrames)
		if !g.IsSuccess() {
			t.Fatalf("expected success, got %s", g.State())
		}

		g.ProcessFrame(landmark.FistPose())
		res := feed(g, landmark.GestureAPose(), DefaultStableFrames)

		if res.Scored {
			t.Error("expected no score after success")
		}
		if g.Count() != 1 {
			t.Errorf("expected count capped at 1, got %d", g.Count())
		}
	})

	t.Run("start clears stability carried from idle", func(t *testing.T) {
		g := New(1)

		feed(g, landmark.GestureAPose(), 10)
		g.Start()
		res := g.ProcessFrame(landmark.GestureAPose())

		if res.Scored {
			t.Error("expected the first running frame not to score off idle-time stability")
		}
	})
}

func TestGate_ProcessArrays(t *testing.T) {
	t.Run("matches point form", func(t *testing.T) {
		points := landmark.GestureBPose()
		xs := make([]float64, landmark.NumLandmarks)
		ys := make([]float64, landmark.NumLandmarks)
		for i, p := range points {
			xs[i] = p.X
			ys[i] = p.Y
		}

		g := NewWithConfig(Config{Target: 1, StableFrames: 1, Classifier: classify.DefaultConfig()})
		g.Start()
		res := g.ProcessArrays(xs, ys)

		if res.Gesture != "gesture_b" {
			t.Errorf("expected gesture_b from arrays, got %s", res.Gesture)
		}
		if !res.Scored {
			t.Error("expected the array frame to score with threshold 1")
		}
	})

	t.Run("short arrays classify as none", func(t *testing.T) {
		g := New(1)
		g.Start()

		res := g.ProcessArrays(make([]float64, 10), make([]float64, 21))

		if res.Gesture != "none" || res.Scored {
			t.Errorf("expected unscored none, got gesture=%s scored=%v", res.Gesture, res.Scored)
		}
	})
}
