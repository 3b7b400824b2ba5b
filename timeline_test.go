package drift

import (
	"testing"

	"github.com/tanema/gween/ease"
)

// float32 tweens lose precision mid-track; endpoints are exact.
const tweenTol = 1e-4

func TestTimelineSeekLinear(t *testing.T) {
	n := NewRect("card", 10, 10, ColorWhite)
	tl := NewTimeline("slide").To(n, PropX, 100, 0, 1, ease.Linear)

	tests := []struct {
		p, want float64
	}{
		{0, 0},
		{0.25, 25},
		{0.5, 50},
		{1, 100},
		{-3, 0},
		{7, 100},
	}
	for _, tt := range tests {
		tl.Seek(tt.p)
		assertNear(t, "X", n.X, tt.want, tweenTol)
	}
}

func TestTimelineSeekIdempotent(t *testing.T) {
	n := NewContainer("n")
	tl := NewTimeline("t").To(n, PropAlpha, 0, 0, 1, ease.Linear)

	if !tl.Seek(0.5) {
		t.Fatal("first Seek should write")
	}
	n.Alpha = 0.9 // external write
	if tl.Seek(0.5) {
		t.Error("repeat Seek to same playhead should not write")
	}
	if n.Alpha != 0.9 {
		t.Errorf("Alpha = %v, want untouched 0.9", n.Alpha)
	}
}

func TestTimelineRoundTripExact(t *testing.T) {
	n := NewContainer("n")
	n.SetPosition(12.5, -3)
	n.SetAlpha(0.8)
	tl := NewTimeline("intro").
		To(n, PropX, 400, 0, 0.6, ease.OutCubic).
		To(n, PropY, 250, 0.2, 0.8, ease.InOutQuad).
		To(n, PropAlpha, 0, 0.5, 0.5, ease.Linear)

	tl.Seek(0)
	for p := 0.0; p <= 1; p += 0.05 {
		tl.Seek(p)
	}
	tl.Seek(1)
	if n.X != 400 || n.Y != 250 || n.Alpha != 0 {
		t.Errorf("at 1: (%v, %v, %v), want (400, 250, 0)", n.X, n.Y, n.Alpha)
	}
	for p := 1.0; p >= 0; p -= 0.07 {
		tl.Seek(p)
	}
	tl.Seek(0)
	if n.X != 12.5 || n.Y != -3 || n.Alpha != 0.8 {
		t.Errorf("back at 0: (%v, %v, %v), want (12.5, -3, 0.8)", n.X, n.Y, n.Alpha)
	}
}

func TestTimelineChainedTracks(t *testing.T) {
	n := NewContainer("n")
	tl := NewTimeline("t").
		To(n, PropX, 100, 0, 0.5, ease.Linear).
		To(n, PropX, 40, 0.5, 0.5, ease.Linear)

	tl.Seek(0.5)
	assertNear(t, "X at 0.5", n.X, 100, tweenTol)
	tl.Seek(0.75)
	assertNear(t, "X at 0.75", n.X, 70, tweenTol)
	tl.Seek(1)
	if n.X != 40 {
		t.Errorf("X at 1 = %v, want 40", n.X)
	}
	tl.Seek(0.25)
	assertNear(t, "X at 0.25", n.X, 50, tweenTol)
}

func TestTimelineBeforeFirstTrack(t *testing.T) {
	n := NewContainer("n")
	n.SetPosition(5, 0)
	tl := NewTimeline("t").To(n, PropX, 50, 0.4, 0.2, ease.Linear)

	tl.Seek(1)
	tl.Seek(0.1)
	if n.X != 5 {
		t.Errorf("X before track start = %v, want 5", n.X)
	}
}

func TestTimelineFromTo(t *testing.T) {
	n := NewContainer("n")
	tl := NewTimeline("t").FromTo(n, PropScaleX, 0.5, 2, 0, 1, ease.Linear)
	if n.ScaleX != 0.5 {
		t.Errorf("ScaleX after FromTo = %v, want 0.5", n.ScaleX)
	}
	tl.Seek(1)
	if n.ScaleX != 2 {
		t.Errorf("ScaleX at 1 = %v, want 2", n.ScaleX)
	}
}

func TestTimelineSkipsDisposedNodes(t *testing.T) {
	live := NewContainer("live")
	dead := NewContainer("dead")
	tl := NewTimeline("t").
		To(live, PropX, 10, 0, 1, ease.Linear).
		To(dead, PropX, 10, 0, 1, ease.Linear)

	dead.Dispose()
	tl.Seek(1)
	if live.X != 10 {
		t.Errorf("live X = %v, want 10", live.X)
	}
	if dead.X != 0 {
		t.Errorf("disposed X = %v, want 0", dead.X)
	}
}

func TestTimelineKill(t *testing.T) {
	n := NewContainer("n")
	tl := NewTimeline("t").To(n, PropX, 10, 0, 1, ease.Linear)
	tl.Kill()
	if !tl.Killed() {
		t.Error("Killed should be true")
	}
	if tl.Seek(1) {
		t.Error("Seek on killed timeline should not write")
	}
	if n.X != 0 {
		t.Errorf("X = %v, want 0", n.X)
	}
}

func TestTimelineZeroSpan(t *testing.T) {
	n := NewContainer("n")
	tl := NewTimeline("t").To(n, PropAlpha, 0, 0.5, 0, nil)
	tl.Seek(0.49)
	if n.Alpha != 1 {
		t.Errorf("Alpha before step = %v, want 1", n.Alpha)
	}
	tl.Seek(0.51)
	if n.Alpha != 0 {
		t.Errorf("Alpha after step = %v, want 0", n.Alpha)
	}
}

func TestTimelineNilNodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil node")
		}
	}()
	NewTimeline("t").To(nil, PropX, 1, 0, 1, nil)
}
