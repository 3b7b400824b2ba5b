package drift

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

var (
	// ErrNegativeHysteresis is returned for a threshold with Hysteresis < 0.
	ErrNegativeHysteresis = errors.New("hysteresis must not be negative")
	// ErrHysteresisTooWide is returned when a threshold's hysteresis band
	// reaches back to the previous threshold.
	ErrHysteresisTooWide = errors.New("hysteresis must be smaller than the gap to the previous threshold")
)

// ThresholdError describes an invalid threshold configuration.
type ThresholdError struct {
	Name string
	At   float64
	Err  error
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("threshold %q at %g: %v", e.Name, e.At, e.Err)
}

func (e *ThresholdError) Unwrap() error {
	return e.Err
}

// Threshold is a one-shot trigger at position At, expressed in the same units
// as the controller's current value. Once fired it stays latched until the
// value retreats below At - Hysteresis.
type Threshold struct {
	Name       string
	At         float64
	Hysteresis float64
	// OnCross runs once each time the value rises through At while armed.
	OnCross func()
	// OnRelease runs when a latched threshold re-arms. Optional.
	OnRelease func()
}

// Gate evaluates an ordered set of thresholds against one value per frame.
// Each threshold is either armed or latched.
type Gate struct {
	thresholds []Threshold
	latched    []bool
}

// NewGate validates thresholds and returns a gate with all of them armed.
// Thresholds are evaluated in ascending At order regardless of input order.
func NewGate(thresholds ...Threshold) (*Gate, error) {
	ts := make([]Threshold, len(thresholds))
	copy(ts, thresholds)
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].At < ts[j].At })

	for i, t := range ts {
		if t.Hysteresis < 0 {
			return nil, &ThresholdError{Name: t.Name, At: t.At, Err: ErrNegativeHysteresis}
		}
		if i > 0 && t.Hysteresis >= t.At-ts[i-1].At {
			return nil, &ThresholdError{Name: t.Name, At: t.At, Err: ErrHysteresisTooWide}
		}
	}
	return &Gate{thresholds: ts, latched: make([]bool, len(ts))}, nil
}

// Len returns the number of thresholds.
func (g *Gate) Len() int {
	return len(g.thresholds)
}

// Threshold returns the i-th threshold in evaluation order.
func (g *Gate) Threshold(i int) Threshold {
	return g.thresholds[i]
}

// Latched reports whether the i-th threshold (ascending order) is latched.
func (g *Gate) Latched(i int) bool {
	return g.latched[i]
}

// Reset re-arms every threshold without firing callbacks.
func (g *Gate) Reset() {
	for i := range g.latched {
		g.latched[i] = false
	}
}

// Evaluate compares value against every threshold in ascending order and
// returns the number of OnCross callbacks fired. All thresholds see the same
// value, and each fires at most once per call, so a single large jump past
// several thresholds fires each of them exactly once, lowest first.
func (g *Gate) Evaluate(value float64) int {
	fired := 0
	for i := range g.thresholds {
		t := &g.thresholds[i]
		if !g.latched[i] {
			if value >= t.At {
				g.latched[i] = true
				fired++
				logger.Debug("threshold crossed", zap.String("name", t.Name), zap.Float64("at", t.At), zap.Float64("value", value))
				if t.OnCross != nil {
					t.OnCross()
				}
			}
			continue
		}
		if value < t.At-t.Hysteresis {
			g.latched[i] = false
			logger.Debug("threshold released", zap.String("name", t.Name), zap.Float64("at", t.At), zap.Float64("value", value))
			if t.OnRelease != nil {
				t.OnRelease()
			}
		}
	}
	return fired
}
