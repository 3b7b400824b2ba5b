package drift

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// SnapConfig controls easing to the nearest discrete stop after input idles.
type SnapConfig struct {
	// StepSize is the distance between stops. Zero or negative disables snapping.
	StepSize float64
	// IdleDelay is how long input must be quiet, in seconds, before snapping.
	IdleDelay float32
	// Duration of the ease, in seconds.
	Duration float32
	// Ease is the easing curve. Nil means ease.OutCubic.
	Ease ease.TweenFunc
}

// Snapper eases a target value onto the nearest stop once input goes quiet.
type Snapper struct {
	cfg SnapConfig

	idle    float32
	settled bool // nothing to do until the next input
	tween   *gween.Tween
	dest    float64
}

// NewSnapper creates a snapper. It starts settled: snapping only follows input.
func NewSnapper(cfg SnapConfig) *Snapper {
	if cfg.Ease == nil {
		cfg.Ease = ease.OutCubic
	}
	return &Snapper{cfg: cfg, settled: true}
}

// Enabled reports whether snapping is configured.
func (s *Snapper) Enabled() bool {
	return s.cfg.StepSize > 0
}

// Active reports whether an ease is in progress.
func (s *Snapper) Active() bool {
	return s.tween != nil
}

// Destination returns the stop of the current or last ease.
func (s *Snapper) Destination() float64 {
	return s.dest
}

// Cancel aborts any ease in progress and restarts the idle timer. Called on
// every input event.
func (s *Snapper) Cancel() {
	s.tween = nil
	s.idle = 0
	s.settled = false
}

// Settle marks the snapper as having nothing to do until the next Cancel.
func (s *Snapper) Settle() {
	s.tween = nil
	s.settled = true
}

// Nearest returns the stop closest to v: round(v/step)*step, with the index
// clamped so the stop lies inside bounds.
func (s *Snapper) Nearest(v float64, bounds Range) float64 {
	step := s.cfg.StepSize
	if step <= 0 {
		return bounds.Clamp(v)
	}
	idx := math.Round(v / step)
	lo := math.Ceil(bounds.Min / step)
	hi := math.Floor(bounds.Max / step)
	if hi < lo {
		return bounds.Clamp(v)
	}
	idx = math.Max(lo, math.Min(idx, hi))
	return bounds.Clamp(idx * step)
}

// Update advances the idle timer or the ease by dt seconds. current picks
// the stop; target is where the ease starts. It returns the new target and
// whether Update wrote one.
func (s *Snapper) Update(dt float32, current, target float64, bounds Range) (float64, bool) {
	if !s.Enabled() || s.settled {
		return target, false
	}
	if s.tween == nil {
		s.idle += dt
		if s.idle < s.cfg.IdleDelay {
			return target, false
		}
		s.dest = s.Nearest(current, bounds)
		if s.dest == target || s.cfg.Duration <= 0 {
			s.Settle()
			return s.dest, s.dest != target
		}
		s.tween = gween.New(float32(target), float32(s.dest), s.cfg.Duration, s.cfg.Ease)
		logger.Debug("snap start", zap.Float64("from", target), zap.Float64("to", s.dest))
		return target, false
	}

	v, finished := s.tween.Update(dt)
	if finished {
		s.Settle()
		logger.Debug("snap done", zap.Float64("to", s.dest))
		return s.dest, true
	}
	return bounds.Clamp(float64(v)), true
}
