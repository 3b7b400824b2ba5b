package drift

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCompletionThen(t *testing.T) {
	c := NewCompletion()
	var order []int
	c.Then(func() { order = append(order, 1) })
	c.Then(func() { order = append(order, 2) })
	if c.Finished() {
		t.Fatal("new completion is finished")
	}
	c.Finish()
	c.Finish()
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
	select {
	case <-c.Done():
	default:
		t.Error("Done channel not closed")
	}

	ran := false
	c.Then(func() { ran = true })
	if !ran {
		t.Error("Then after Finish should run immediately")
	}
}

func TestPlaybackDrivesTimeline(t *testing.T) {
	n := NewContainer("n")
	tl := NewTimeline("intro").To(n, PropAlpha, 0, 0, 1, ease.Linear)
	p := PlayTimeline(tl, 1, nil)
	if n.Alpha != 1 {
		t.Fatalf("Alpha at start = %v, want 1", n.Alpha)
	}

	p.Update(0.5)
	assertNear(t, "Alpha at half", n.Alpha, 0.5, tweenTol)
	if p.Completion().Finished() {
		t.Error("finished early")
	}

	p.Update(0.6)
	if n.Alpha != 0 {
		t.Errorf("Alpha at end = %v, want 0", n.Alpha)
	}
	if !p.Completion().Finished() {
		t.Error("playback should be finished")
	}
}

func TestPlaybackKilledTimeline(t *testing.T) {
	tl := NewTimeline("t").To(NewContainer("n"), PropX, 1, 0, 1, nil)
	p := PlayTimeline(tl, 10, ease.OutQuad)
	tl.Kill()
	p.Update(0.1)
	if !p.Completion().Finished() {
		t.Error("killed timeline should finish the playback")
	}
}

func TestPlaybackCancel(t *testing.T) {
	n := NewContainer("n")
	tl := NewTimeline("t").To(n, PropX, 100, 0, 1, nil)
	p := PlayTimeline(tl, 1, nil)
	p.Update(0.25)
	p.Cancel()
	x := n.X
	p.Update(0.5)
	if n.X != x {
		t.Errorf("X moved after Cancel: %v -> %v", x, n.X)
	}
}
