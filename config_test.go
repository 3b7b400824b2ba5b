package drift

import (
	"errors"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestDefaultPresets(t *testing.T) {
	presets, err := DefaultPresets()
	if err != nil {
		t.Fatal(err)
	}
	names := PresetNames(presets)
	want := []string{"experience", "hero", "slider"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("PresetNames = %v, want %v", names, want)
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			cfg := presets[name]
			cfg.Lock = &ScrollLock{}
			c, err := NewController(cfg)
			if err != nil {
				t.Fatalf("preset does not build a controller: %v", err)
			}
			c.Dispose()
		})
	}

	slider := presets["slider"]
	if slider.Snap.StepSize != 1 || slider.Snap.Ease == nil {
		t.Errorf("slider snap = %+v", slider.Snap)
	}
	if slider.Input.KeySteps[ebiten.KeyArrowLeft] != -1 {
		t.Errorf("slider ArrowLeft step = %v, want -1", slider.Input.KeySteps[ebiten.KeyArrowLeft])
	}
	hero := presets["hero"]
	if len(hero.Thresholds) != 1 || hero.Thresholds[0].Name != "enter-projects" {
		t.Errorf("hero thresholds = %+v", hero.Thresholds)
	}
}

func TestLoadPresetsErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"not yaml", "presets: [", "parse presets"},
		{"empty", "presets: {}", "no presets"},
		{"bad bounds", "presets:\n  a:\n    bounds: [1]\n", "bounds"},
		{"bad key", "presets:\n  a:\n    bounds: [0, 1]\n    input:\n      key_steps:\n        Escape: 1\n", `unknown key "Escape"`},
		{"bad blocked key", "presets:\n  a:\n    bounds: [0, 1]\n    input:\n      blocked_keys: [F13]\n", `unknown key "F13"`},
		{"bad ease", "presets:\n  a:\n    bounds: [0, 1]\n    snap:\n      step: 1\n      ease: bouncy\n", `unknown ease "bouncy"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPresets([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestConfigBind(t *testing.T) {
	presets, err := DefaultPresets()
	if err != nil {
		t.Fatal(err)
	}
	shared := presets["hero"]
	cfg := shared

	crossed := false
	if err := cfg.Bind("enter-projects", func() { crossed = true }, nil); err != nil {
		t.Fatal(err)
	}
	if shared.Thresholds[0].OnCross != nil {
		t.Error("Bind mutated the shared preset")
	}

	cfg.Lock = &ScrollLock{}
	c, err := NewController(cfg)
	if err != nil {
		t.Fatal(err)
	}
	c.JumpTo(1)
	c.Update(frameDt)
	if !crossed {
		t.Error("bound callback did not fire")
	}

	if err := cfg.Bind("missing", nil, nil); !errors.Is(err, ErrUnknownThreshold) {
		t.Errorf("err = %v, want ErrUnknownThreshold", err)
	}
}

func TestLookupByName(t *testing.T) {
	if _, ok := EaseByName("outCubic"); !ok {
		t.Error("outCubic not registered")
	}
	if _, ok := EaseByName("nope"); ok {
		t.Error("unknown ease resolved")
	}
	if k, ok := KeyByName("PageDown"); !ok || k != ebiten.KeyPageDown {
		t.Errorf("KeyByName(PageDown) = %v, %v", k, ok)
	}
}
