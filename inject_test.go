package drift

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestInjectWheel(t *testing.T) {
	var q InjectQueue
	q.InjectWheel(120)
	if q.Len() != 1 {
		t.Fatalf("Len = %d, want 1", q.Len())
	}
	evs := q.AppendEvents(nil)
	if len(evs) != 1 || evs[0].Kind != InputWheel || evs[0].Delta != 120 {
		t.Errorf("events = %+v, want one wheel of 120", evs)
	}
	if q.Len() != 0 {
		t.Errorf("Len after pop = %d, want 0", q.Len())
	}
}

func TestInjectSwipe(t *testing.T) {
	var q InjectQueue
	q.InjectSwipe(400, 100, 4)
	if q.Len() != 4 {
		t.Fatalf("Len = %d, want 4", q.Len())
	}

	frames := make([][]InputEvent, 0, 4)
	for q.Len() > 0 {
		frames = append(frames, q.AppendEvents(nil))
	}

	if frames[0][0].Kind != InputTouchStart || frames[0][0].Y != 400 {
		t.Errorf("frame 0 = %+v, want touch start at 400", frames[0])
	}
	assertNear(t, "frame 1 Y", frames[1][0].Y, 300, epsilon)
	assertNear(t, "frame 2 Y", frames[2][0].Y, 200, epsilon)

	last := frames[3]
	if len(last) != 2 {
		t.Fatalf("last frame has %d events, want 2", len(last))
	}
	if last[0].Kind != InputTouchMove || last[0].Y != 100 {
		t.Errorf("last move = %+v, want move to 100", last[0])
	}
	if last[1].Kind != InputTouchEnd {
		t.Errorf("last event kind = %d, want InputTouchEnd", last[1].Kind)
	}
}

func TestInjectSwipe_MinFrames(t *testing.T) {
	var q InjectQueue
	q.InjectSwipe(0, 50, 1)
	if q.Len() != 2 {
		t.Errorf("Len = %d, want 2 (start + move/end)", q.Len())
	}
}

func TestInjectQueueOrder(t *testing.T) {
	var q InjectQueue
	q.InjectKey(ebiten.KeyPageDown)
	q.InjectIdle(2)
	q.InjectWheel(-40)

	if evs := q.AppendEvents(nil); len(evs) != 1 || evs[0].Key != ebiten.KeyPageDown {
		t.Errorf("frame 0 = %+v, want PageDown", evs)
	}
	for i := 0; i < 2; i++ {
		if evs := q.AppendEvents(nil); len(evs) != 0 {
			t.Errorf("idle frame %d = %+v, want empty", i, evs)
		}
	}
	if evs := q.AppendEvents(nil); len(evs) != 1 || evs[0].Delta != -40 {
		t.Errorf("frame 3 = %+v, want wheel -40", evs)
	}
}

func TestInjectQueueEmpty(t *testing.T) {
	var q InjectQueue
	buf := []InputEvent{{Kind: InputWheel}}
	if got := q.AppendEvents(buf); len(got) != 1 {
		t.Errorf("empty queue changed buffer length to %d", len(got))
	}
}
