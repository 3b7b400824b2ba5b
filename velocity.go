package drift

import "math"

// VelocityTracker derives a smoothed, signed rate of change from a value
// sampled once per frame.
type VelocityTracker struct {
	// Decay is the per-sample retention of the previous velocity in [0, 1).
	Decay float64
	// MaxSpeed caps the magnitude of the reported velocity. Zero disables it.
	MaxSpeed float64

	last     float64
	velocity float64
	primed   bool
}

// Sample records value after dt seconds and returns the smoothed velocity
// in units per second. The first sample only primes the tracker.
func (v *VelocityTracker) Sample(value float64, dt float32) float64 {
	if !v.primed || dt <= 0 || !isFinite(value) {
		if isFinite(value) {
			v.last = value
			v.primed = true
		}
		return v.velocity
	}
	raw := (value - v.last) / float64(dt)
	v.last = value
	decay := Range{0, 0.999}.Clamp(v.Decay)
	v.velocity = v.velocity*decay + raw*(1-decay)
	if v.MaxSpeed > 0 {
		v.velocity = Range{-v.MaxSpeed, v.MaxSpeed}.Clamp(v.velocity)
	}
	return v.velocity
}

// Velocity returns the last smoothed velocity.
func (v *VelocityTracker) Velocity() float64 {
	return v.velocity
}

// Reset clears the tracker.
func (v *VelocityTracker) Reset() {
	*v = VelocityTracker{Decay: v.Decay, MaxSpeed: v.MaxSpeed}
}

// Marquee scrolls a node horizontally forever. Scroll velocity speeds it up
// and its sign sets the direction, which persists after scrolling stops.
type Marquee struct {
	Node *Node
	// Width is the wrap period in pixels.
	Width float64
	// BaseSpeed in pixels per second at rest.
	BaseSpeed float64
	// VelocityScale maps |velocity| to an extra speed multiplier.
	VelocityScale float64

	offset    float64
	direction float64
}

// Offset returns the current offset in [-Width, 0).
func (m *Marquee) Offset() float64 {
	return m.offset
}

// Update advances the marquee by dt seconds given the current scroll velocity.
func (m *Marquee) Update(dt float32, velocity float64) {
	if m.direction == 0 {
		m.direction = 1
	}
	if velocity < 0 {
		m.direction = -1
	} else if velocity > 0 {
		m.direction = 1
	}
	factor := math.Abs(velocity) * m.VelocityScale
	move := m.direction * m.BaseSpeed * float64(dt) * (1 + factor)
	m.offset = wrap(m.offset-move, -m.Width, 0)
	m.Node.Set(PropX, m.offset)
}

// wrap maps v into [lo, hi).
func wrap(v, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 || !isFinite(v) {
		return lo
	}
	r := math.Mod(v-lo, span)
	if r < 0 {
		r += span
	}
	return lo + r
}
