package drift

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var defaultPresetsYAML []byte

// ErrUnknownThreshold is returned by Config.Bind for a name not in the config.
var ErrUnknownThreshold = errors.New("unknown threshold")

type presetFile struct {
	Presets map[string]presetYAML `yaml:"presets"`
}

type presetYAML struct {
	Bounds     []float64       `yaml:"bounds"`
	Initial    float64         `yaml:"initial"`
	Alpha      float64         `yaml:"alpha"`
	Epsilon    float64         `yaml:"epsilon"`
	Input      inputYAML       `yaml:"input"`
	Snap       snapYAML        `yaml:"snap"`
	Thresholds []thresholdYAML `yaml:"thresholds"`
}

type inputYAML struct {
	WheelSensitivity float64            `yaml:"wheel_sensitivity"`
	TouchSensitivity float64            `yaml:"touch_sensitivity"`
	Direction        float64            `yaml:"direction"`
	KeySteps         map[string]float64 `yaml:"key_steps"`
	BlockedKeys      []string           `yaml:"blocked_keys"`
}

type snapYAML struct {
	Step      float64 `yaml:"step"`
	IdleDelay float32 `yaml:"idle_delay"`
	Duration  float32 `yaml:"duration"`
	Ease      string  `yaml:"ease"`
}

type thresholdYAML struct {
	Name       string  `yaml:"name"`
	At         float64 `yaml:"at"`
	Hysteresis float64 `yaml:"hysteresis"`
}

var keyNames = map[string]ebiten.Key{
	"ArrowUp":    ebiten.KeyArrowUp,
	"ArrowDown":  ebiten.KeyArrowDown,
	"ArrowLeft":  ebiten.KeyArrowLeft,
	"ArrowRight": ebiten.KeyArrowRight,
	"PageUp":     ebiten.KeyPageUp,
	"PageDown":   ebiten.KeyPageDown,
	"Space":      ebiten.KeySpace,
	"Home":       ebiten.KeyHome,
	"End":        ebiten.KeyEnd,
	"Tab":        ebiten.KeyTab,
	"Enter":      ebiten.KeyEnter,
}

var easeNames = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"outQuart":   ease.OutQuart,
	"outExpo":    ease.OutExpo,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"outBack":    ease.OutBack,
}

// EaseByName returns the easing function registered under name.
func EaseByName(name string) (ease.TweenFunc, bool) {
	fn, ok := easeNames[name]
	return fn, ok
}

// KeyByName returns the ebiten key for a preset key name such as "PageDown".
func KeyByName(name string) (ebiten.Key, bool) {
	k, ok := keyNames[name]
	return k, ok
}

// DefaultPresets returns the presets embedded in the package.
func DefaultPresets() (map[string]Config, error) {
	return LoadPresets(defaultPresetsYAML)
}

// LoadPresets parses a YAML preset document into named controller configs.
// Thresholds come back without callbacks; attach them with Config.Bind.
func LoadPresets(data []byte) (map[string]Config, error) {
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	if len(file.Presets) == 0 {
		return nil, fmt.Errorf("parse presets: no presets")
	}
	out := make(map[string]Config, len(file.Presets))
	for name, p := range file.Presets {
		cfg, err := p.config(name)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		out[name] = cfg
	}
	return out, nil
}

func (p presetYAML) config(name string) (Config, error) {
	if len(p.Bounds) != 2 {
		return Config{}, fmt.Errorf("bounds needs [min, max], got %d values", len(p.Bounds))
	}
	cfg := Config{
		Name:    name,
		Bounds:  Range{Min: p.Bounds[0], Max: p.Bounds[1]},
		Initial: p.Initial,
		Alpha:   p.Alpha,
		Epsilon: p.Epsilon,
		Input: InputConfig{
			WheelSensitivity: p.Input.WheelSensitivity,
			TouchSensitivity: p.Input.TouchSensitivity,
			Direction:        p.Input.Direction,
			KeySteps:         make(map[ebiten.Key]float64, len(p.Input.KeySteps)),
		},
		Snap: SnapConfig{
			StepSize:  p.Snap.Step,
			IdleDelay: p.Snap.IdleDelay,
			Duration:  p.Snap.Duration,
		},
	}
	for keyName, step := range p.Input.KeySteps {
		k, ok := keyNames[keyName]
		if !ok {
			return Config{}, fmt.Errorf("unknown key %q", keyName)
		}
		cfg.Input.KeySteps[k] = step
	}
	for _, keyName := range p.Input.BlockedKeys {
		k, ok := keyNames[keyName]
		if !ok {
			return Config{}, fmt.Errorf("unknown key %q", keyName)
		}
		cfg.Input.BlockedKeys = append(cfg.Input.BlockedKeys, k)
	}
	if p.Snap.Ease != "" {
		fn, ok := easeNames[p.Snap.Ease]
		if !ok {
			return Config{}, fmt.Errorf("unknown ease %q", p.Snap.Ease)
		}
		cfg.Snap.Ease = fn
	}
	for _, t := range p.Thresholds {
		cfg.Thresholds = append(cfg.Thresholds, Threshold{Name: t.Name, At: t.At, Hysteresis: t.Hysteresis})
	}
	return cfg, nil
}

// Bind attaches callbacks to the threshold called name. The thresholds
// slice is copied first so configs returned by LoadPresets stay shareable.
func (c *Config) Bind(name string, onCross, onRelease func()) error {
	ts := make([]Threshold, len(c.Thresholds))
	copy(ts, c.Thresholds)
	for i := range ts {
		if ts[i].Name == name {
			ts[i].OnCross = onCross
			ts[i].OnRelease = onRelease
			c.Thresholds = ts
			return nil
		}
	}
	return fmt.Errorf("bind %q: %w", name, ErrUnknownThreshold)
}

// PresetNames returns the preset names in sorted order.
func PresetNames(presets map[string]Config) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
