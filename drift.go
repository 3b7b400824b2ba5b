package drift

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D point or offset.
type Vec2 struct {
	X, Y float64
}

// WhitePixel is a 1x1 white image used to draw solid rect nodes.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Range is a closed [Min, Max] interval. Every value taken from the outside
// world passes through Clamp before it is stored.
type Range struct {
	Min, Max float64
}

// Clamp restricts v to [r.Min, r.Max]. NaN clamps to Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Contains reports whether v lies inside the range, edges included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Normalize maps v from the range to [0, 1]. A zero-width range maps to 0.
func (r Range) Normalize(v float64) float64 {
	span := r.Span()
	if span <= 0 {
		return 0
	}
	return clamp01((r.Clamp(v) - r.Min) / span)
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeRect                      // solid color rectangle of Width x Height
)

// InputKind identifies a kind of device input event.
type InputKind uint8

const (
	InputWheel      InputKind = iota // wheel delta (positive = scroll down / forward)
	InputTouchStart                  // finger placed; Y holds the screen position
	InputTouchMove                   // finger moved; Y holds the new screen position
	InputTouchEnd                    // finger lifted
	InputKey                         // key pressed; Key holds the ebiten key
)

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
