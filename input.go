package drift

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	defaultWheelSensitivity = 0.001 // domain units per wheel pixel
	defaultTouchSensitivity = 0.004 // domain units per touch pixel
	defaultWheelPixels      = 100.0 // pixels per ebiten wheel notch
)

// InputEvent is one raw device event in screen units.
type InputEvent struct {
	Kind  InputKind
	Delta float64    // InputWheel: pixels, positive = forward
	Y     float64    // touch kinds: screen Y of the finger
	Key   ebiten.Key // InputKey
}

// InputConfig tunes how raw device events become domain deltas.
type InputConfig struct {
	// WheelSensitivity converts wheel pixels to domain units.
	WheelSensitivity float64
	// TouchSensitivity converts touch pixels to domain units.
	TouchSensitivity float64
	// Direction is the per-target base direction multiplier. Zero means +1.
	Direction float64
	// KeySteps maps keys to a signed step in domain units.
	KeySteps map[ebiten.Key]float64
	// BlockedKeys are swallowed while the normalizer is blocked, in addition
	// to every key in KeySteps.
	BlockedKeys []ebiten.Key
}

// DefaultInputConfig returns sensitivities that move one domain unit per
// roughly one screen of wheel travel, with arrow and page keys stepping by one.
func DefaultInputConfig() InputConfig {
	return InputConfig{
		WheelSensitivity: defaultWheelSensitivity,
		TouchSensitivity: defaultTouchSensitivity,
		Direction:        1,
		KeySteps: map[ebiten.Key]float64{
			ebiten.KeyArrowDown: 1,
			ebiten.KeyPageDown:  1,
			ebiten.KeySpace:     1,
			ebiten.KeyArrowUp:   -1,
			ebiten.KeyPageUp:    -1,
		},
		BlockedKeys: []ebiten.Key{ebiten.KeyHome, ebiten.KeyEnd},
	}
}

// Normalizer converts wheel, touch, and key events into signed deltas that
// share one sign convention: positive moves the target forward.
type Normalizer struct {
	cfg     InputConfig
	blocked bool

	touching   bool
	lastTouchY float64
}

// NewNormalizer creates a normalizer. A zero Direction is treated as +1.
func NewNormalizer(cfg InputConfig) *Normalizer {
	if cfg.Direction == 0 {
		cfg.Direction = 1
	}
	return &Normalizer{cfg: cfg}
}

// SetBlocked starts or ends a blocked period. While blocked every captured
// event is swallowed and produces no delta.
func (n *Normalizer) SetBlocked(b bool) {
	n.blocked = b
}

// Blocked reports whether the normalizer is in a blocked period.
func (n *Normalizer) Blocked() bool {
	return n.blocked
}

// Normalize converts ev into a delta in domain units. consumed reports
// whether the event was captured and must not reach native scrolling.
// Non-finite inputs are captured but produce no delta.
func (n *Normalizer) Normalize(ev InputEvent) (delta float64, consumed bool) {
	switch ev.Kind {
	case InputWheel:
		if n.blocked || !isFinite(ev.Delta) {
			return 0, true
		}
		return ev.Delta * n.cfg.WheelSensitivity * n.cfg.Direction, true

	case InputTouchStart:
		if isFinite(ev.Y) {
			n.touching = true
			n.lastTouchY = ev.Y
		}
		return 0, true

	case InputTouchMove:
		if !isFinite(ev.Y) {
			return 0, true
		}
		if !n.touching {
			n.touching = true
			n.lastTouchY = ev.Y
			return 0, true
		}
		// Finger moving up scrolls forward, matching a positive wheel delta.
		raw := n.lastTouchY - ev.Y
		n.lastTouchY = ev.Y
		if n.blocked {
			return 0, true
		}
		return raw * n.cfg.TouchSensitivity * n.cfg.Direction, true

	case InputTouchEnd:
		n.touching = false
		return 0, true

	case InputKey:
		step, stepKey := n.cfg.KeySteps[ev.Key]
		if n.blocked {
			return 0, stepKey || n.isBlockedKey(ev.Key)
		}
		if !stepKey {
			return 0, false
		}
		return step * n.cfg.Direction, true
	}
	return 0, false
}

func (n *Normalizer) isBlockedKey(k ebiten.Key) bool {
	for _, b := range n.cfg.BlockedKeys {
		if b == k {
			return true
		}
	}
	return false
}

// --- Sources ---

// InputSource produces the raw events observed since the previous frame.
type InputSource interface {
	AppendEvents(buf []InputEvent) []InputEvent
}

// EbitenSource polls Ebitengine for wheel, primary touch, and key input.
type EbitenSource struct {
	// WheelPixels converts one ebiten wheel unit to pixels. Zero uses 100.
	WheelPixels float64

	touchBuf   []ebiten.TouchID
	keyBuf     []ebiten.Key
	primary    ebiten.TouchID
	hasPrimary bool
	lastY      int
}

// AppendEvents implements InputSource.
func (s *EbitenSource) AppendEvents(buf []InputEvent) []InputEvent {
	scale := s.WheelPixels
	if scale == 0 {
		scale = defaultWheelPixels
	}
	// Ebitengine reports positive Y for wheel-up; forward is wheel-down.
	if _, wy := ebiten.Wheel(); wy != 0 {
		buf = append(buf, InputEvent{Kind: InputWheel, Delta: -wy * scale})
	}

	if s.hasPrimary {
		if inpututil.IsTouchJustReleased(s.primary) {
			s.hasPrimary = false
			buf = append(buf, InputEvent{Kind: InputTouchEnd})
		} else {
			_, y := ebiten.TouchPosition(s.primary)
			if y != s.lastY {
				s.lastY = y
				buf = append(buf, InputEvent{Kind: InputTouchMove, Y: float64(y)})
			}
		}
	}
	if !s.hasPrimary {
		s.touchBuf = inpututil.AppendJustPressedTouchIDs(s.touchBuf[:0])
		if len(s.touchBuf) > 0 {
			s.primary = s.touchBuf[0]
			s.hasPrimary = true
			_, s.lastY = ebiten.TouchPosition(s.primary)
			buf = append(buf, InputEvent{Kind: InputTouchStart, Y: float64(s.lastY)})
		}
	}

	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		buf = append(buf, InputEvent{Kind: InputKey, Key: k})
	}
	return buf
}
