package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/drift"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

var (
	colorBackground = drift.Color{R: 0.07, G: 0.07, B: 0.1, A: 1}
	colorAccent     = drift.Color{R: 0.95, G: 0.55, B: 0.25, A: 1}
	colorMuted      = drift.Color{R: 0.55, G: 0.57, B: 0.65, A: 1}
	colorTrace      = color.RGBA{R: 240, G: 140, B: 64, A: 255}

	cardColors = []drift.Color{
		{R: 0.29, G: 0.56, B: 0.89, A: 1},
		{R: 0.36, G: 0.78, B: 0.55, A: 1},
		{R: 0.91, G: 0.41, B: 0.47, A: 1},
		{R: 0.62, G: 0.45, B: 0.86, A: 1},
		{R: 0.95, G: 0.77, B: 0.31, A: 1},
	}
)

var viewOrder = []string{"hero", "slider", "experience", "marquee"}

func knownView(name string) bool {
	for _, v := range viewOrder {
		if v == name {
			return true
		}
	}
	return false
}

// view is one mounted portfolio section.
type view struct {
	name string
	root *drift.Node
	ctrl *drift.Controller // nil for views that ride the native scroll

	update func(dt float32)
	draw   func(screen *ebiten.Image)
}

func (v *view) dispose() {
	if v.ctrl != nil {
		v.ctrl.Dispose()
	}
	v.root.Dispose()
}

type app struct {
	stage   *drift.Stage
	presets map[string]drift.Config
	w, h    float64

	current *view
	// pending is the view to switch to after this frame's controllers ran.
	pending string
}

func newApp(stage *drift.Stage, presets map[string]drift.Config, w, h float64) *app {
	a := &app{stage: stage, presets: presets, w: w, h: h}
	stage.SetUpdateFunc(a.update)
	stage.SetDrawFunc(a.draw)
	return a
}

func (a *app) update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		a.pending = nextView(a.current.name)
	}
	if a.pending != "" {
		name := a.pending
		a.pending = ""
		if err := a.switchTo(name); err != nil {
			return err
		}
	}
	if a.current.update != nil {
		a.current.update(float32(1.0 / float64(ebiten.TPS())))
	}
	return nil
}

func (a *app) draw(screen *ebiten.Image) {
	if a.current.draw != nil {
		a.current.draw(screen)
	}
	ebitenutil.DebugPrintAt(screen, a.current.name+"  [tab] next view", 12, int(a.h)-24)
}

func nextView(name string) string {
	for i, v := range viewOrder {
		if v == name {
			return viewOrder[(i+1)%len(viewOrder)]
		}
	}
	return viewOrder[0]
}

func (a *app) switchTo(name string) error {
	if a.current != nil {
		a.current.dispose()
		a.current = nil
	}
	a.stage.NativeScroll = 0
	a.stage.Root().SetPosition(0, 0)

	var (
		v   *view
		err error
	)
	switch name {
	case "hero":
		v, err = a.buildHero()
	case "slider":
		v, err = a.buildSlider()
	case "experience":
		v, err = a.buildExperience()
	case "marquee":
		v = a.buildMarquee()
	default:
		err = fmt.Errorf("unknown view %q", name)
	}
	if err != nil {
		return fmt.Errorf("build %s: %w", name, err)
	}
	a.stage.Root().AddChild(v.root)
	if v.ctrl != nil {
		a.stage.Mount(v.ctrl)
	}
	a.current = v
	logger.Debug("view mounted", zap.String("view", name))
	return nil
}

// buildHero plays an intro while input is blocked, then scrolls the title
// away. Crossing the end of the hero hands off to the slider.
func (a *app) buildHero() (*view, error) {
	cfg := a.presets["hero"]
	if err := cfg.Bind("enter-projects", func() {
		logger.Info("entering projects")
		a.pending = "slider"
	}, nil); err != nil {
		return nil, err
	}
	ctrl, err := drift.NewController(cfg)
	if err != nil {
		return nil, err
	}

	v := &view{name: "hero", root: drift.NewContainer("hero"), ctrl: ctrl}
	content := drift.NewContainer("content")
	v.root.AddChild(content)

	title := drift.NewRect("title", 420, 64, colorAccent)
	title.SetPosition((a.w-420)/2, a.h*0.36)
	subtitle := drift.NewRect("subtitle", 280, 16, colorMuted)
	subtitle.SetPosition((a.w-280)/2, a.h*0.36+92)
	content.AddChild(title)
	content.AddChild(subtitle)

	hint := drift.NewRect("hint", 6, 36, colorMuted)
	hint.SetPosition(a.w/2-3, a.h-90)
	v.root.AddChild(hint)

	scroll := drift.NewTimeline("hero-scroll").
		To(content, drift.PropY, -a.h*0.3, 0, 1, ease.InOutQuad).
		To(content, drift.PropAlpha, 0, 0.3, 0.7, ease.Linear).
		To(hint, drift.PropAlpha, 0, 0, 0.2, ease.Linear)
	ctrl.Attach(scroll)

	intro := drift.NewTimeline("hero-intro").
		FromTo(title, drift.PropY, title.Y+40, title.Y, 0, 0.6, ease.OutCubic).
		FromTo(title, drift.PropAlpha, 0, 1, 0, 0.5, ease.Linear).
		FromTo(subtitle, drift.PropAlpha, 0, 1, 0.4, 0.6, ease.Linear)
	ctrl.BlockFor(a.stage.Play(drift.PlayTimeline(intro, 1.4, nil)))

	v.draw = func(screen *ebiten.Image) {
		if ctrl.Blocked() {
			return
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("progress %.2f", ctrl.Progress()), 12, 12)
	}
	return v, nil
}

// buildSlider lays the projects out in a strip that slides one card per
// unit of scroll and snaps to the nearest card when input idles.
func (a *app) buildSlider() (*view, error) {
	cfg := a.presets["slider"]
	ctrl, err := drift.NewController(cfg)
	if err != nil {
		return nil, err
	}
	v := &view{name: "slider", root: drift.NewContainer("slider"), ctrl: ctrl}

	const cardW, cardH, gap = 360.0, 220.0, 60.0
	count := int(cfg.Bounds.Max-cfg.Bounds.Min) + 1
	strip := drift.NewContainer("strip")
	strip.SetPosition((a.w-cardW)/2, (a.h-cardH)/2)
	v.root.AddChild(strip)
	for i := 0; i < count; i++ {
		card := drift.NewRect(fmt.Sprintf("project-%d", i), cardW, cardH, cardColors[i%len(cardColors)])
		card.SetPosition(float64(i)*(cardW+gap), 0)
		strip.AddChild(card)
	}

	const trackW = 200.0
	track := drift.NewRect("track", trackW, 4, colorMuted)
	track.SetPosition((a.w-trackW)/2, a.h-60)
	knob := drift.NewRect("knob", trackW/float64(count), 4, colorAccent)
	knob.SetPosition(track.X, track.Y)
	v.root.AddChild(track)
	v.root.AddChild(knob)

	tl := drift.NewTimeline("slider").
		To(strip, drift.PropX, strip.X-float64(count-1)*(cardW+gap), 0, 1, ease.Linear).
		To(knob, drift.PropX, track.X+trackW-knob.Width, 0, 1, ease.Linear)
	ctrl.Attach(tl)

	v.draw = func(screen *ebiten.Image) {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("project %d / %d", ctrl.Index()+1, count), 12, 12)
	}
	return v, nil
}

// buildExperience traces a curved path as the user scrolls, revealing a
// marker at each stop along the way.
func (a *app) buildExperience() (*view, error) {
	cfg := a.presets["experience"]
	if err := cfg.Bind("experience-end", func() {
		logger.Info("experience fully revealed")
	}, func() {
		logger.Debug("experience end re-armed")
	}); err != nil {
		return nil, err
	}
	ctrl, err := drift.NewController(cfg)
	if err != nil {
		return nil, err
	}
	v := &view{name: "experience", root: drift.NewContainer("experience"), ctrl: ctrl}

	const segments = 24
	w, h := a.w, a.h
	path := drift.NewPath(drift.Vec2{X: w * 0.2, Y: h * 0.1}).
		CubicTo(drift.Vec2{X: w * 0.9, Y: h * 0.1}, drift.Vec2{X: w * 0.9, Y: h * 0.35}, drift.Vec2{X: w * 0.5, Y: h * 0.4}, segments).
		CubicTo(drift.Vec2{X: w * 0.1, Y: h * 0.45}, drift.Vec2{X: w * 0.1, Y: h * 0.7}, drift.Vec2{X: w * 0.5, Y: h * 0.7}, segments).
		CubicTo(drift.Vec2{X: w * 0.9, Y: h * 0.7}, drift.Vec2{X: w * 0.85, Y: h * 0.9}, drift.Vec2{X: w * 0.7, Y: h * 0.9}, segments)

	head := drift.NewRect("head", 12, 12, colorAccent)
	head.PivotX, head.PivotY = 6, 6
	tracer := drift.NewPathTracer(path, head)
	for i := 0; i < path.NumPoints(); i += segments {
		pt := path.Point(i)
		marker := drift.NewRect(fmt.Sprintf("stop-%d", i/segments), 20, 20, cardColors[(i/segments)%len(cardColors)])
		marker.PivotX, marker.PivotY = 10, 10
		marker.SetPosition(pt.X, pt.Y)
		v.root.AddChild(marker)
		tracer.AnchorAtVertex(marker, i, 8)
	}
	tracer.OnToggle = func(an *drift.Anchor, visible bool) {
		logger.Debug("stop toggled", zap.String("node", an.Node.Name), zap.Bool("visible", visible))
	}
	v.root.AddChild(head)
	ctrl.AttachTracer(tracer)

	var pts []drift.Vec2
	v.draw = func(screen *ebiten.Image) {
		pts = path.AppendTraced(pts[:0], tracer.Traced())
		for i := 1; i < len(pts); i++ {
			vector.StrokeLine(screen,
				float32(pts[i-1].X), float32(pts[i-1].Y),
				float32(pts[i].X), float32(pts[i].Y),
				3, colorTrace, true)
		}
	}
	return v, nil
}

// buildMarquee rides the native page scroll: no controller holds the scroll
// lock, so the wheel moves the page and the page velocity drives the rows.
func (a *app) buildMarquee() *view {
	v := &view{name: "marquee", root: drift.NewContainer("marquee")}

	const tileW, tileH, tileGap, rows = 140.0, 70.0, 20.0, 8
	period := tileW + tileGap
	perRow := int(a.w/period) + 2

	var marquees []*drift.Marquee
	for r := 0; r < rows; r++ {
		row := drift.NewContainer(fmt.Sprintf("row-%d", r))
		row.SetPosition(0, 40+float64(r)*(tileH+60))
		for i := 0; i < perRow; i++ {
			tile := drift.NewRect("tile", tileW, tileH, cardColors[(r+i)%len(cardColors)])
			tile.SetPosition(float64(i)*period, 0)
			row.AddChild(tile)
		}
		v.root.AddChild(row)
		marquees = append(marquees, &drift.Marquee{
			Node:          row,
			Width:         period,
			BaseSpeed:     30 + 10*float64(r%3),
			VelocityScale: 0.004,
		})
	}

	tracker := drift.VelocityTracker{Decay: 0.85, MaxSpeed: 3000}
	v.update = func(dt float32) {
		vel := tracker.Sample(a.stage.NativeScroll, dt)
		for i, m := range marquees {
			// Alternate rows run against the scroll.
			if i%2 == 1 {
				m.Update(dt, -vel)
				continue
			}
			m.Update(dt, vel)
		}
	}
	v.draw = func(screen *ebiten.Image) {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("page %.0fpx  velocity %.0fpx/s", a.stage.NativeScroll, tracker.Velocity()), 12, 12)
	}
	return v
}
