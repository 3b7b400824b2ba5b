// Package drift maps scroll input to animation progress for [Ebitengine].
//
// A [Controller] owns a virtual scroll position decoupled from any native
// page scroll. Wheel, touch, and key events are normalized into one sign
// convention and accumulated into a clamped target; a per-frame lerp eases
// the displayed value toward it. The smoothed value then drives seekable
// [Timeline] programs (built on [gween] tweens), [PathTracer] reveals, and
// a [Gate] of one-shot thresholds with hysteresis. When input goes quiet a
// snap eases the target onto the nearest discrete stop.
//
// # Quick start
//
//	stage := drift.NewStage()
//	card := drift.NewRect("card", 200, 120, drift.ColorWhite)
//	stage.Root().AddChild(card)
//
//	ctrl, err := drift.NewController(drift.Config{
//		Name:   "deck",
//		Bounds: drift.Range{Min: 0, Max: 3},
//		Alpha:  0.12,
//		Input:  drift.DefaultInputConfig(),
//		Snap:   drift.SnapConfig{StepSize: 1, IdleDelay: 0.15, Duration: 0.6},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	tl := drift.NewTimeline("slide").
//		To(card, drift.PropX, -600, 0, 1, ease.Linear)
//	ctrl.Attach(tl)
//	stage.Mount(ctrl)
//
//	drift.Run(stage, drift.RunConfig{Title: "deck", Width: 960, Height: 600})
//
// # Frame pipeline
//
// Within one [Stage.Update], input is applied before smoothing, and
// smoothing runs before thresholds are evaluated. Everything happens on the
// Ebitengine update goroutine; nothing in drift is safe for concurrent use.
//
// # Presets
//
// Controller parameters can be loaded from YAML with [LoadPresets]. The
// package embeds presets for a hero intro, a snapping slide deck, and a
// path reveal; see [DefaultPresets].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package drift
