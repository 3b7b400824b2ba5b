package drift

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestSnapperNearest(t *testing.T) {
	s := NewSnapper(SnapConfig{StepSize: 1})
	b := Range{0, 4}
	tests := []struct {
		v, want float64
	}{
		{0.4, 0},
		{0.6, 1},
		{2.5, 3}, // math.Round rounds half away from zero
		{-0.7, 0},
		{9, 4},
	}
	for _, tt := range tests {
		if got := s.Nearest(tt.v, b); got != tt.want {
			t.Errorf("Nearest(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestSnapperNearestOffsetBounds(t *testing.T) {
	s := NewSnapper(SnapConfig{StepSize: 0.5})
	b := Range{0.2, 1.9}
	if got := s.Nearest(0.1, b); got != 0.5 {
		t.Errorf("Nearest(0.1) = %v, want first stop inside bounds 0.5", got)
	}
	if got := s.Nearest(2, b); got != 1.5 {
		t.Errorf("Nearest(2) = %v, want last stop inside bounds 1.5", got)
	}
}

func TestSnapperDisabled(t *testing.T) {
	s := NewSnapper(SnapConfig{})
	if s.Enabled() {
		t.Error("zero step should disable snapping")
	}
	s.Cancel()
	if got, wrote := s.Update(10, 0.4, 0.4, Range{0, 1}); wrote || got != 0.4 {
		t.Errorf("Update = (%v, %v), want (0.4, false)", got, wrote)
	}
}

func TestSnapperStartsSettled(t *testing.T) {
	s := NewSnapper(SnapConfig{StepSize: 1, IdleDelay: 0.1, Duration: 0.2})
	if _, wrote := s.Update(1, 0.4, 0.4, Range{0, 4}); wrote {
		t.Error("snapper should not act before any input")
	}
}

func TestSnapperEasesToNearestStop(t *testing.T) {
	s := NewSnapper(SnapConfig{StepSize: 1, IdleDelay: 0.15, Duration: 0.6, Ease: ease.Linear})
	b := Range{0, 4}
	s.Cancel() // input happened

	target := 0.4
	const dt = float32(1.0 / 60)
	frames := 0
	for {
		next, wrote := s.Update(dt, target, target, b)
		if wrote {
			if next > target+1e-9 {
				t.Fatalf("frame %d: target rose from %v to %v while snapping down", frames, target, next)
			}
			target = next
		}
		frames++
		if !s.Active() && frames > 10 {
			break
		}
		if frames > 120 {
			t.Fatal("snap did not finish")
		}
	}
	if target != 0 {
		t.Errorf("target = %v, want 0", target)
	}
	if s.Destination() != 0 {
		t.Errorf("Destination = %v, want 0", s.Destination())
	}
	if _, wrote := s.Update(dt, 0, 0, b); wrote {
		t.Error("settled snapper should not write")
	}
}

func TestSnapperWaitsForIdle(t *testing.T) {
	s := NewSnapper(SnapConfig{StepSize: 1, IdleDelay: 0.5, Duration: 0.2})
	s.Cancel()
	s.Update(0.3, 0.7, 0.7, Range{0, 2})
	if s.Active() {
		t.Error("snap started before idle delay")
	}
	s.Cancel()
	s.Update(0.3, 0.7, 0.7, Range{0, 2})
	if s.Active() {
		t.Error("Cancel should restart the idle timer")
	}
	s.Update(0.3, 0.7, 0.7, Range{0, 2})
	if !s.Active() {
		t.Error("snap should start once idle delay elapses")
	}
}

func TestSnapperCancelStopsEase(t *testing.T) {
	s := NewSnapper(SnapConfig{StepSize: 1, Duration: 1})
	s.Cancel()
	s.Update(0.01, 0.3, 0.3, Range{0, 2})
	if !s.Active() {
		t.Fatal("snap should be active")
	}
	s.Cancel()
	if s.Active() {
		t.Error("Cancel should stop the ease")
	}
}

func TestSnapperAlreadyOnStop(t *testing.T) {
	s := NewSnapper(SnapConfig{StepSize: 1, Duration: 0.5})
	s.Cancel()
	got, wrote := s.Update(1, 2, 2, Range{0, 4})
	if wrote || got != 2 || s.Active() {
		t.Errorf("Update = (%v, %v), Active = %v; want (2, false), false", got, wrote, s.Active())
	}
}

func TestSnapperZeroDurationJumps(t *testing.T) {
	s := NewSnapper(SnapConfig{StepSize: 1})
	s.Cancel()
	got, wrote := s.Update(0, 1.8, 1.8, Range{0, 4})
	if !wrote || got != 2 {
		t.Errorf("Update = (%v, %v), want (2, true)", got, wrote)
	}
}
