package drift

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Completion marks the end of a timed animation. Code running outside the
// frame loop can wait on Done; code inside it registers Then callbacks,
// which run synchronously on the frame the animation finishes.
type Completion struct {
	done     chan struct{}
	finished bool
	then     []func()
}

// NewCompletion returns an unfinished completion.
func NewCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// Done returns a channel closed when the animation finishes or is cancelled.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Finished reports whether Finish has been called.
func (c *Completion) Finished() bool {
	return c.finished
}

// Then registers fn to run on finish. If already finished, fn runs now.
func (c *Completion) Then(fn func()) {
	if c.finished {
		fn()
		return
	}
	c.then = append(c.then, fn)
}

// Finish completes c. Repeated calls are no-ops.
func (c *Completion) Finish() {
	if c.finished {
		return
	}
	c.finished = true
	close(c.done)
	then := c.then
	c.then = nil
	for _, fn := range then {
		fn()
	}
}

// Playback plays a timeline forward over a fixed duration in seconds,
// independent of scroll input. Used for intro animations that run while
// input is blocked.
type Playback struct {
	timeline *Timeline
	tween    *gween.Tween
	done     *Completion
}

// PlayTimeline starts driving tl from 0 to 1 over duration seconds with the
// given easing (nil means linear).
func PlayTimeline(tl *Timeline, duration float32, fn ease.TweenFunc) *Playback {
	if fn == nil {
		fn = ease.Linear
	}
	tl.Seek(0)
	return &Playback{
		timeline: tl,
		tween:    gween.New(0, 1, duration, fn),
		done:     NewCompletion(),
	}
}

// Completion returns the playback's completion handle.
func (p *Playback) Completion() *Completion {
	return p.done
}

// Update advances the playback by dt seconds. A killed timeline ends the
// playback immediately.
func (p *Playback) Update(dt float32) {
	if p.done.Finished() {
		return
	}
	if p.timeline.Killed() {
		p.done.Finish()
		return
	}
	v, finished := p.tween.Update(dt)
	if finished {
		p.timeline.Seek(1)
		p.done.Finish()
		return
	}
	p.timeline.Seek(float64(v))
}

// Cancel stops the playback where it is and completes it.
func (p *Playback) Cancel() {
	p.done.Finish()
}
