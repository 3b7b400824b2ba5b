package drift

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// frameStats accumulates what Stage.Update did between debug reports.
// Only populated when the stage is in debug mode.
type frameStats struct {
	frames   int
	events   int
	captured int
	elapsed  time.Duration
	slowest  time.Duration
}

func (st *frameStats) add(events, captured int, elapsed time.Duration) {
	st.frames++
	st.events += events
	st.captured += captured
	st.elapsed += elapsed
	if elapsed > st.slowest {
		st.slowest = elapsed
	}
}

// debugReportEvery is the number of frames between debug reports.
const debugReportEvery = 120

// debugLog reports accumulated stats once enough frames have passed.
func (s *Stage) debugLog() {
	st := &s.stats
	if !s.debug || st.frames < debugReportEvery {
		return
	}
	logger.Debug("stage frames",
		zap.Int("frames", st.frames),
		zap.Int("events", st.events),
		zap.Int("captured", st.captured),
		zap.Duration("avg_update", st.elapsed/time.Duration(st.frames)),
		zap.Duration("slowest_update", st.slowest),
		zap.Int("controllers", len(s.mounts)),
		zap.Int("playbacks", len(s.playbacks)),
		zap.Int("lock_holders", s.lock().Holders()),
	)
	*st = frameStats{}
}

// debugCheckDisposed panics when a disposed controller is mounted. Only
// called in debug mode; release builds mount it and it simply never ticks.
func debugCheckDisposed(c *Controller, op string) {
	if c.Disposed() {
		panic(fmt.Sprintf("drift debug: %s of disposed controller %q", op, c.Name()))
	}
}
