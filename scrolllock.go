package drift

import "go.uber.org/zap"

// ScrollLock is a reference-counted lock on native scrolling. Every view
// that captures input acquires it; native scrolling resumes only when the
// last holder releases, so overlapping views never clobber each other.
type ScrollLock struct {
	count    int
	onChange []func(locked bool)
}

// DefaultScrollLock is the process-wide lock used by controllers unless
// Config.Lock names another one.
var DefaultScrollLock = &ScrollLock{}

// Acquire takes one reference and returns its release func. Calling the
// release more than once has no further effect.
func (l *ScrollLock) Acquire(owner string) (release func()) {
	l.count++
	logger.Debug("scroll lock acquired", zap.String("owner", owner), zap.Int("holders", l.count))
	if l.count == 1 {
		l.notify(true)
	}
	released := false
	return func() {
		if released {
			return
		}
		released = true
		l.count--
		logger.Debug("scroll lock released", zap.String("owner", owner), zap.Int("holders", l.count))
		if l.count == 0 {
			l.notify(false)
		}
	}
}

// Locked reports whether any holder remains.
func (l *ScrollLock) Locked() bool {
	return l.count > 0
}

// Holders returns the number of outstanding references.
func (l *ScrollLock) Holders() int {
	return l.count
}

// OnChange registers fn to run when the lock flips between free and held.
func (l *ScrollLock) OnChange(fn func(locked bool)) {
	l.onChange = append(l.onChange, fn)
}

func (l *ScrollLock) notify(locked bool) {
	for _, fn := range l.onChange {
		fn(locked)
	}
}
