package drift

import (
	"math"
	"sort"
)

const defaultCubicSegments = 24

// Path is a polyline with precomputed cumulative lengths. Curves are added
// as sampled cubic Bézier segments.
type Path struct {
	points []Vec2
	cum    []float64
}

// NewPath creates a path through the given points.
func NewPath(points ...Vec2) *Path {
	p := &Path{}
	for _, pt := range points {
		p.LineTo(pt)
	}
	return p
}

// LineTo appends a straight segment to pt. The first call sets the start.
func (p *Path) LineTo(pt Vec2) *Path {
	if len(p.points) == 0 {
		p.points = append(p.points, pt)
		p.cum = append(p.cum, 0)
		return p
	}
	last := p.points[len(p.points)-1]
	p.points = append(p.points, pt)
	p.cum = append(p.cum, p.cum[len(p.cum)-1]+math.Hypot(pt.X-last.X, pt.Y-last.Y))
	return p
}

// CubicTo appends a cubic Bézier from the current end through control
// points c1, c2 to end, sampled into segments straight pieces (<= 0 uses 24).
func (p *Path) CubicTo(c1, c2, end Vec2, segments int) *Path {
	if len(p.points) == 0 {
		panic("drift: CubicTo on an empty path")
	}
	if segments <= 0 {
		segments = defaultCubicSegments
	}
	start := p.points[len(p.points)-1]
	for i := 1; i <= segments; i++ {
		t := float64(i) / float64(segments)
		u := 1 - t
		b0 := u * u * u
		b1 := 3 * u * u * t
		b2 := 3 * u * t * t
		b3 := t * t * t
		p.LineTo(Vec2{
			X: b0*start.X + b1*c1.X + b2*c2.X + b3*end.X,
			Y: b0*start.Y + b1*c1.Y + b2*c2.Y + b3*end.Y,
		})
	}
	return p
}

// Length returns the total length of the path.
func (p *Path) Length() float64 {
	if len(p.cum) == 0 {
		return 0
	}
	return p.cum[len(p.cum)-1]
}

// NumPoints returns the number of vertices.
func (p *Path) NumPoints() int {
	return len(p.points)
}

// Point returns vertex i.
func (p *Path) Point(i int) Vec2 {
	return p.points[i]
}

// LengthAt returns the path length from the start to vertex i.
func (p *Path) LengthAt(i int) float64 {
	return p.cum[i]
}

// PointAt returns the point at distance length along the path, clamped to
// the path's ends.
func (p *Path) PointAt(length float64) Vec2 {
	switch len(p.points) {
	case 0:
		return Vec2{}
	case 1:
		return p.points[0]
	}
	length = Range{0, p.Length()}.Clamp(length)
	i := sort.SearchFloat64s(p.cum, length)
	if i == 0 {
		return p.points[0]
	}
	if i >= len(p.points) {
		return p.points[len(p.points)-1]
	}
	seg := p.cum[i] - p.cum[i-1]
	if seg <= 0 {
		return p.points[i]
	}
	t := (length - p.cum[i-1]) / seg
	a, b := p.points[i-1], p.points[i]
	return Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// AppendTraced appends the vertices of the first length units of the path,
// ending exactly at PointAt(length), and returns the extended slice.
func (p *Path) AppendTraced(buf []Vec2, length float64) []Vec2 {
	if len(p.points) == 0 || length <= 0 {
		return buf
	}
	for i, c := range p.cum {
		if c >= length {
			break
		}
		buf = append(buf, p.points[i])
	}
	return append(buf, p.PointAt(length))
}

// --- Tracing ---

// Anchor is a point along a traced path whose node appears once the trace
// reaches ShowAt and disappears only after the trace falls back below
// HideAt. The gap between the two is the hysteresis band that stops the
// node flickering when the trace hovers at the boundary.
type Anchor struct {
	Node    *Node
	ShowAt  float64
	HideAt  float64
	Visible bool
}

// NewAnchor creates a hidden anchor at path length at with the given band.
func NewAnchor(node *Node, at, band float64) *Anchor {
	if band < 0 {
		band = 0
	}
	node.SetVisible(false)
	return &Anchor{Node: node, ShowAt: at, HideAt: at - band}
}

// PathTracer reveals a path as progress advances: it moves a head node
// along the path and toggles anchors.
type PathTracer struct {
	Path    *Path
	Head    *Node
	Anchors []*Anchor

	// OnToggle runs whenever an anchor changes visibility. Optional.
	OnToggle func(a *Anchor, visible bool)

	traced float64
}

// NewPathTracer creates a tracer with nothing traced yet.
func NewPathTracer(path *Path, head *Node, anchors ...*Anchor) *PathTracer {
	return &PathTracer{Path: path, Head: head, Anchors: anchors}
}

// AnchorAtVertex adds an anchor at vertex i of the path.
func (t *PathTracer) AnchorAtVertex(node *Node, i int, band float64) *Anchor {
	a := NewAnchor(node, t.Path.LengthAt(i), band)
	t.Anchors = append(t.Anchors, a)
	return a
}

// Traced returns the currently traced length.
func (t *PathTracer) Traced() float64 {
	return t.traced
}

// SetProgress traces fraction p (clamped to [0, 1]) of the path.
func (t *PathTracer) SetProgress(p float64) {
	t.traced = clamp01(p) * t.Path.Length()

	if t.Head.writable() {
		pt := t.Path.PointAt(t.traced)
		t.Head.SetPosition(pt.X, pt.Y)
	}

	for _, a := range t.Anchors {
		switch {
		case !a.Visible && t.traced >= a.ShowAt:
			a.Visible = true
		case a.Visible && t.traced < a.HideAt:
			a.Visible = false
		default:
			continue
		}
		a.Node.SetVisible(a.Visible)
		if t.OnToggle != nil {
			t.OnToggle(a, a.Visible)
		}
	}
}
