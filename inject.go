package drift

import "github.com/hajimehoshi/ebiten/v2"

// InjectQueue is a synthetic InputSource. Each frame it releases exactly one
// queued batch, so a swipe spread over N frames arrives over N updates the
// same way real touch input would.
type InjectQueue struct {
	batches [][]InputEvent
}

// Len returns the number of frames still queued.
func (q *InjectQueue) Len() int {
	return len(q.batches)
}

// InjectWheel queues a single wheel event of delta pixels.
func (q *InjectQueue) InjectWheel(delta float64) {
	q.push(InputEvent{Kind: InputWheel, Delta: delta})
}

// InjectKey queues a single key press.
func (q *InjectQueue) InjectKey(k ebiten.Key) {
	q.push(InputEvent{Kind: InputKey, Key: k})
}

// InjectSwipe queues a full touch gesture: start at fromY, linearly
// interpolated moves over frames-2 intermediate frames, a final move to toY,
// and the release. Minimum frames is 2.
func (q *InjectQueue) InjectSwipe(fromY, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	q.push(InputEvent{Kind: InputTouchStart, Y: fromY})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		q.push(InputEvent{Kind: InputTouchMove, Y: fromY + (toY-fromY)*t})
	}
	q.batches = append(q.batches, []InputEvent{
		{Kind: InputTouchMove, Y: toY},
		{Kind: InputTouchEnd},
	})
}

// InjectIdle queues frames with no input.
func (q *InjectQueue) InjectIdle(frames int) {
	for i := 0; i < frames; i++ {
		q.batches = append(q.batches, nil)
	}
}

func (q *InjectQueue) push(ev InputEvent) {
	q.batches = append(q.batches, []InputEvent{ev})
}

// AppendEvents implements InputSource by popping one frame.
func (q *InjectQueue) AppendEvents(buf []InputEvent) []InputEvent {
	if len(q.batches) == 0 {
		return buf
	}
	batch := q.batches[0]
	copy(q.batches, q.batches[1:])
	q.batches[len(q.batches)-1] = nil
	q.batches = q.batches[:len(q.batches)-1]
	return append(buf, batch...)
}
