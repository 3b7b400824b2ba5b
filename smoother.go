package drift

import "math"

const (
	defaultAlpha   = 0.1
	defaultEpsilon = 0.0005
)

// Smoother eases a displayed value toward a target once per frame with a
// fixed lerp factor. It goes idle once the gap drops below Epsilon, landing
// exactly on the target, and stays idle until Wake is called.
type Smoother struct {
	alpha   float64
	epsilon float64
	current float64
	active  bool
}

// NewSmoother creates a smoother starting at value. Alpha is clamped to
// (0, 1]; 1 means no smoothing. A non-positive epsilon uses the default.
func NewSmoother(alpha, epsilon, value float64) *Smoother {
	if !(alpha > 0) {
		alpha = defaultAlpha
	}
	if alpha > 1 {
		alpha = 1
	}
	if !(epsilon > 0) {
		epsilon = defaultEpsilon
	}
	return &Smoother{alpha: alpha, epsilon: epsilon, current: value}
}

// Current returns the smoothed value.
func (s *Smoother) Current() float64 {
	return s.current
}

// Active reports whether the per-frame loop is still running.
func (s *Smoother) Active() bool {
	return s.active
}

// Wake restarts the per-frame loop after new input.
func (s *Smoother) Wake() {
	s.active = true
}

// Reset places the smoother at v and stops the loop.
func (s *Smoother) Reset(v float64) {
	s.current = v
	s.active = false
}

// Step advances one frame toward target and reports whether current changed.
// An idle smoother does nothing.
func (s *Smoother) Step(target float64) bool {
	if !s.active {
		return false
	}
	prev := s.current
	s.current += (target - s.current) * s.alpha
	if math.Abs(s.current-target) < s.epsilon {
		s.current = target
		s.active = false
	}
	return s.current != prev
}
