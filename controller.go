package drift

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ErrInvalidBounds is returned when Config.Bounds has Max < Min or a
// non-finite edge.
var ErrInvalidBounds = errors.New("invalid bounds")

// ScrollState is a snapshot of a controller's virtual scroll.
type ScrollState struct {
	// Target is the accumulated input, always inside Bounds.
	Target float64
	// Current is the smoothed value consumed by rendering.
	Current float64
	Bounds  Range
}

// Config parameterizes a Controller. The same type covers intro gates,
// slide decks, and path reveals; views differ only in their values.
type Config struct {
	Name string
	// Bounds is the domain of Target and Current, commonly [0, N] for N
	// virtual pages. Timelines receive the position inside Bounds as [0, 1].
	Bounds Range
	// Initial is the starting value, clamped to Bounds.
	Initial float64
	// Alpha is the per-frame lerp factor in (0, 1]. Epsilon is the gap
	// below which smoothing stops and lands on the target.
	Alpha   float64
	Epsilon float64

	Input      InputConfig
	Snap       SnapConfig
	Thresholds []Threshold

	// Lock is acquired for the controller's lifetime. Nil uses DefaultScrollLock.
	Lock *ScrollLock
}

// Controller turns device input into a smoothed scroll position and pushes
// it into timelines, path tracers, and thresholds. It runs one fixed
// pipeline per frame: input events (Handle) are applied first, then Update
// runs the snap ease, the smoother, timeline/tracer seeking, and finally the
// threshold gate.
type Controller struct {
	name   string
	bounds Range
	target float64

	input    *Normalizer
	smoother *Smoother
	snap     *Snapper
	gate     *Gate

	timelines []*Timeline
	tracers   []*PathTracer

	// OnUpdate runs after every frame in which Current changed.
	OnUpdate func(state ScrollState)

	blockers    int
	dirty       bool
	disposed    bool
	releaseLock func()
	onDispose   []func()
}

// NewController validates cfg and returns a controller positioned at
// cfg.Initial. It acquires the scroll lock until Dispose.
func NewController(cfg Config) (*Controller, error) {
	b := cfg.Bounds
	if !isFinite(b.Min) || !isFinite(b.Max) || b.Max < b.Min {
		return nil, fmt.Errorf("controller %q: %w: [%g, %g]", cfg.Name, ErrInvalidBounds, b.Min, b.Max)
	}
	gate, err := NewGate(cfg.Thresholds...)
	if err != nil {
		return nil, fmt.Errorf("controller %q: %w", cfg.Name, err)
	}
	lock := cfg.Lock
	if lock == nil {
		lock = DefaultScrollLock
	}
	start := b.Clamp(cfg.Initial)
	c := &Controller{
		name:     cfg.Name,
		bounds:   b,
		target:   start,
		input:    NewNormalizer(cfg.Input),
		smoother: NewSmoother(cfg.Alpha, cfg.Epsilon, start),
		snap:     NewSnapper(cfg.Snap),
		gate:     gate,
		dirty:    true,
	}
	c.releaseLock = lock.Acquire(cfg.Name)
	return c, nil
}

// Name returns the configured name.
func (c *Controller) Name() string {
	return c.name
}

// State returns the current scroll state.
func (c *Controller) State() ScrollState {
	return ScrollState{Target: c.target, Current: c.smoother.Current(), Bounds: c.bounds}
}

// Progress returns Current mapped to [0, 1] across Bounds.
func (c *Controller) Progress() float64 {
	return c.bounds.Normalize(c.smoother.Current())
}

// Index returns the stop nearest to Current. Without snapping configured
// it returns Current rounded to the nearest integer.
func (c *Controller) Index() int {
	if !c.snap.Enabled() {
		return int(math.Round(c.smoother.Current()))
	}
	return int(math.Round(c.snap.Nearest(c.smoother.Current(), c.bounds) / c.snap.cfg.StepSize))
}

// Gate returns the controller's threshold gate.
func (c *Controller) Gate() *Gate {
	return c.gate
}

// Settled reports whether neither the smoother nor a snap ease is running.
func (c *Controller) Settled() bool {
	return !c.smoother.Active() && !c.snap.Active()
}

// Disposed reports whether Dispose has been called.
func (c *Controller) Disposed() bool {
	return c.disposed
}

// Attach adds a timeline that receives Progress every changed frame. The
// timeline is seeked to the current progress immediately.
func (c *Controller) Attach(tl *Timeline) {
	if c.disposed {
		return
	}
	c.timelines = append(c.timelines, tl)
	tl.Seek(c.Progress())
}

// AttachTracer adds a path tracer that receives Progress every changed frame.
func (c *Controller) AttachTracer(t *PathTracer) {
	if c.disposed {
		return
	}
	c.tracers = append(c.tracers, t)
	t.SetProgress(c.Progress())
}

// Handle applies one input event and reports whether it was captured.
// Captured input cancels a running snap and wakes the smoother.
func (c *Controller) Handle(ev InputEvent) bool {
	if c.disposed {
		return false
	}
	delta, consumed := c.input.Normalize(ev)
	if !consumed || c.input.Blocked() {
		return consumed
	}
	c.snap.Cancel()
	if delta != 0 {
		c.target = c.bounds.Clamp(c.target + delta)
		c.smoother.Wake()
	}
	return true
}

// ScrollTo sets the target to v (clamped) and lets the smoother ease there.
func (c *Controller) ScrollTo(v float64) {
	if c.disposed {
		return
	}
	c.snap.Cancel()
	c.target = c.bounds.Clamp(v)
	c.smoother.Wake()
}

// JumpTo moves target and current to v (clamped) without smoothing. The
// new position is pushed out on the next Update.
func (c *Controller) JumpTo(v float64) {
	if c.disposed {
		return
	}
	c.snap.Settle()
	c.target = c.bounds.Clamp(v)
	c.smoother.Reset(c.target)
	c.dirty = true
}

// Block starts a blocked period. Blocks nest; input resumes after the
// matching number of Unblock calls.
func (c *Controller) Block() {
	c.blockers++
	c.input.SetBlocked(true)
}

// Unblock ends one blocked period.
func (c *Controller) Unblock() {
	if c.blockers == 0 {
		return
	}
	c.blockers--
	if c.blockers == 0 {
		c.input.SetBlocked(false)
	}
}

// Blocked reports whether input is currently swallowed.
func (c *Controller) Blocked() bool {
	return c.blockers > 0
}

// BlockFor blocks input until done finishes.
func (c *Controller) BlockFor(done *Completion) {
	c.Block()
	done.Then(c.Unblock)
}

// Update runs one frame of the pipeline: snap ease, smoothing, timeline and
// tracer seeking, then threshold evaluation against the same value.
func (c *Controller) Update(dt float32) {
	if c.disposed {
		return
	}
	if t, wrote := c.snap.Update(dt, c.smoother.Current(), c.target, c.bounds); wrote {
		c.target = t
		c.smoother.Wake()
	}

	changed := c.smoother.Step(c.target)
	if !changed && !c.dirty {
		return
	}
	c.dirty = false

	current := c.smoother.Current()
	progress := c.bounds.Normalize(current)
	for _, tl := range c.timelines {
		tl.Seek(progress)
	}
	for _, t := range c.tracers {
		t.SetProgress(progress)
	}
	c.gate.Evaluate(current)
	if c.OnUpdate != nil {
		c.OnUpdate(c.State())
	}
}

// OnDispose registers fn to run during Dispose.
func (c *Controller) OnDispose(fn func()) {
	c.onDispose = append(c.onDispose, fn)
}

// Dispose kills attached timelines, cancels the snap, releases the scroll
// lock, and runs OnDispose hooks. Later calls on the controller are no-ops.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	for _, tl := range c.timelines {
		tl.Kill()
	}
	c.timelines = nil
	c.tracers = nil
	c.snap.Settle()
	c.releaseLock()
	hooks := c.onDispose
	c.onDispose = nil
	for _, fn := range hooks {
		fn()
	}
	logger.Debug("controller disposed", zap.String("name", c.name))
}
