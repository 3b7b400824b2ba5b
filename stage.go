package drift

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Stage is the top-level object that owns the node tree, the input source,
// and the mounted controllers. Call Update once per tick and Draw once per
// frame, or hand the stage to Run.
type Stage struct {
	root *Node

	// ClearColor fills the screen before nodes are drawn. Zero alpha skips it.
	ClearColor Color
	// Lock gates native scrolling. Nil uses DefaultScrollLock.
	Lock *ScrollLock
	// NativeScroll is the page offset driven by wheel input no controller
	// captured while the lock is free. It translates the root node.
	NativeScroll float64
	// ScreenshotDir is where Screenshot writes PNGs. Empty means "screenshots".
	ScreenshotDir string

	source   InputSource
	inject   InjectQueue
	eventBuf []InputEvent

	mounts      []mount
	frameMounts []mount
	nextID      uint32
	playbacks   []*Playback

	updateFn func() error
	drawFn   func(screen *ebiten.Image)

	testRunner *TestRunner
	shotQueue  []string
	frame      uint64

	debug   bool
	stats   frameStats
	showFPS bool
	fps     fpsOverlay
}

type mount struct {
	id uint32
	c  *Controller
}

// MountHandle removes a mounted controller from its stage.
type MountHandle struct {
	id    uint32
	stage *Stage
}

// Remove stops routing input and frames to the controller. Safe to call
// more than once.
func (h MountHandle) Remove() {
	if h.stage == nil {
		return
	}
	ms := h.stage.mounts
	for i := range ms {
		if ms[i].id == h.id {
			copy(ms[i:], ms[i+1:])
			ms[len(ms)-1] = mount{}
			h.stage.mounts = ms[:len(ms)-1]
			return
		}
	}
}

// NewStage creates a stage with a root container and an Ebitengine input source.
func NewStage() *Stage {
	return &Stage{
		root:   NewContainer("root"),
		source: &EbitenSource{},
	}
}

// Root returns the stage's root container node.
func (s *Stage) Root() *Node {
	return s.root
}

// SetInputSource replaces the device input source. Nil disables device input;
// injected input still works.
func (s *Stage) SetInputSource(src InputSource) {
	s.source = src
}

// Inject returns the stage's synthetic input queue. While it holds events,
// device input is ignored.
func (s *Stage) Inject() *InjectQueue {
	return &s.inject
}

// SetUpdateFunc sets a callback run every Update after controllers tick.
func (s *Stage) SetUpdateFunc(fn func() error) {
	s.updateFn = fn
}

// SetDrawFunc sets a callback run every Draw after the node tree is drawn.
func (s *Stage) SetDrawFunc(fn func(screen *ebiten.Image)) {
	s.drawFn = fn
}

// SetDebugMode enables or disables debug logging. Enabling installs a zap
// development logger unless SetLogger was already given one.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
	if enabled {
		enableDebugLogger()
	}
}

func (s *Stage) lock() *ScrollLock {
	if s.Lock != nil {
		return s.Lock
	}
	return DefaultScrollLock
}

// Mount routes input and frames to c until the handle is removed or c is
// disposed. Later mounts receive input first.
func (s *Stage) Mount(c *Controller) MountHandle {
	if s.debug {
		debugCheckDisposed(c, "mount")
	}
	s.nextID++
	h := MountHandle{id: s.nextID, stage: s}
	s.mounts = append(s.mounts, mount{id: h.id, c: c})
	c.OnDispose(h.Remove)
	if s.debug {
		logger.Debug("controller mounted", zap.String("name", c.Name()))
	}
	return h
}

// Play starts a timeline playback ticked by the stage and returns its completion.
func (s *Stage) Play(p *Playback) *Completion {
	s.playbacks = append(s.playbacks, p)
	return p.Completion()
}

// Update processes input, advances playbacks, and ticks controllers.
func (s *Stage) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	s.frame++
	var start time.Time
	if s.debug {
		start = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	s.eventBuf = s.eventBuf[:0]
	if s.inject.Len() > 0 {
		s.eventBuf = s.inject.AppendEvents(s.eventBuf)
	} else if s.source != nil {
		s.eventBuf = s.source.AppendEvents(s.eventBuf)
	}
	captured := 0
	for _, ev := range s.eventBuf {
		if s.dispatch(ev) {
			captured++
		}
	}

	live := s.playbacks[:0]
	for _, p := range s.playbacks {
		p.Update(dt)
		if !p.Completion().Finished() {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(s.playbacks); i++ {
		s.playbacks[i] = nil
	}
	s.playbacks = live

	// Threshold callbacks may dispose controllers mid-loop; iterate a copy.
	s.frameMounts = append(s.frameMounts[:0], s.mounts...)
	for _, m := range s.frameMounts {
		m.c.Update(dt)
	}

	if s.updateFn != nil {
		if err := s.updateFn(); err != nil {
			return err
		}
	}

	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if s.showFPS {
		s.fps.update(dt, s.lock())
	}
	if s.debug {
		s.stats.add(len(s.eventBuf), captured, time.Since(start))
		s.debugLog()
	}
	return nil
}

// dispatch offers ev to mounted controllers, newest first, and reports
// whether one captured it. Wheel input no one captured scrolls the page
// natively unless the scroll lock is held.
func (s *Stage) dispatch(ev InputEvent) bool {
	for i := len(s.mounts) - 1; i >= 0; i-- {
		if s.mounts[i].c.Handle(ev) {
			return true
		}
	}
	if ev.Kind == InputWheel && isFinite(ev.Delta) && !s.lock().Locked() {
		s.NativeScroll += ev.Delta
		if s.NativeScroll < 0 {
			s.NativeScroll = 0
		}
		s.root.Set(PropY, -s.NativeScroll)
	}
	return false
}

// Draw renders the node tree, then the draw callback.
func (s *Stage) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	drawNode(screen, s.root)
	if s.drawFn != nil {
		s.drawFn(screen)
	}
	if s.showFPS {
		s.fps.draw(screen)
	}
	s.flushScreenshots(screen)
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS draws an FPS/TPS and scroll lock overlay.
	ShowFPS bool
}

type game struct {
	stage *Stage
	w, h  int
}

func (g *game) Update() error              { return g.stage.Update() }
func (g *game) Draw(screen *ebiten.Image)  { g.stage.Draw(screen) }
func (g *game) Layout(_, _ int) (int, int) { return g.w, g.h }

// Run opens a window and drives the stage until the window closes or an
// update callback returns an error.
func Run(stage *Stage, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	stage.showFPS = cfg.ShowFPS
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{stage: stage, w: cfg.Width, h: cfg.Height})
}
