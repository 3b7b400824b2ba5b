package drift

import (
	"strings"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`
steps:
  - action: wheel
    delta: 240
  - action: swipe
    fromY: 500
    toY: 300
    frames: 6
  - action: key
    key: PageDown
  - action: wait
    frames: 3
`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "wheel" || runner.steps[0].Delta != 240 {
		t.Error("step 0 mismatch")
	}
	if st := runner.steps[1]; st.FromY != 500 || st.ToY != 300 || st.Frames != 6 {
		t.Errorf("step 1 mismatch: %+v", st)
	}
	if runner.steps[2].Key != "PageDown" {
		t.Error("step 2 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"not yaml", "steps: [", "parse test script"},
		{"empty", "steps: []", "no steps"},
		{"unknown action", "steps:\n  - action: click\n", `unknown action "click"`},
		{"unknown key", "steps:\n  - action: key\n    key: Meta\n", `unknown key "Meta"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestRunnerStep_Wheel(t *testing.T) {
	s := newTestStage()
	runner, err := LoadTestScript([]byte("steps:\n  - action: wheel\n    delta: 80\n"))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(s)
	if s.inject.Len() != 1 {
		t.Fatalf("expected 1 queued frame, got %d", s.inject.Len())
	}
	if runner.Done() {
		t.Error("runner should wait for the queued wheel to drain")
	}
}

func TestRunnerStep_Swipe(t *testing.T) {
	s := newTestStage()
	runner, err := LoadTestScript([]byte("steps:\n  - action: swipe\n    fromY: 400\n    toY: 100\n    frames: 5\n"))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(s)
	if s.inject.Len() != 5 {
		t.Fatalf("expected 5 queued frames for swipe, got %d", s.inject.Len())
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := newTestStage()
	runner, err := LoadTestScript([]byte("steps:\n  - action: wait\n    frames: 3\n  - action: wheel\n    delta: 10\n"))
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1 starts the wait, frames 2 and 3 finish it.
	for i := 0; i < 3; i++ {
		runner.step(s)
		if s.inject.Len() != 0 {
			t.Fatalf("frame %d: wheel injected during wait", i+1)
		}
	}
	runner.step(s)
	if s.inject.Len() != 1 {
		t.Errorf("expected wheel after wait, got %d queued", s.inject.Len())
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := newTestStage()
	runner, err := LoadTestScript([]byte("steps:\n  - action: swipe\n    fromY: 300\n    toY: 200\n    frames: 2\n  - action: key\n    key: ArrowDown\n"))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	runner.step(s)
	if runner.cursor != 1 {
		t.Errorf("cursor = %d, want 1 while swipe is queued", runner.cursor)
	}

	s.inject.AppendEvents(nil)
	s.inject.AppendEvents(nil)
	runner.step(s)
	if runner.cursor != 2 {
		t.Errorf("cursor = %d, want 2 after drain", runner.cursor)
	}
}

func TestRunnerDrivesController(t *testing.T) {
	s := newTestStage()
	c := mountTestController(t, s, Config{
		Name:   "deck",
		Bounds: Range{0, 3},
		Alpha:  1,
		Input:  DefaultInputConfig(),
	})
	runner, err := LoadTestScript([]byte(`
steps:
  - action: key
    key: PageDown
  - action: wheel
    delta: 500
  - action: wait
    frames: 2
`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	for i := 0; i < 20 && !runner.Done(); i++ {
		if err := s.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	assertNear(t, "Current", c.State().Current, 1.5, epsilon)
}

func TestRunnerStep_Screenshot(t *testing.T) {
	s := newTestStage()
	runner, err := LoadTestScript([]byte("steps:\n  - action: screenshot\n    label: after swipe\n"))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(s)
	if len(s.shotQueue) != 1 || s.shotQueue[0] != "after swipe" {
		t.Errorf("shotQueue = %v, want [after swipe]", s.shotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done after its only step")
	}
}
