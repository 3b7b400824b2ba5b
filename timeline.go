package drift

import (
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// minTrackSpan keeps zero-length tracks from dividing by zero inside gween.
const minTrackSpan = 1e-6

type trackKey struct {
	node *Node
	prop Prop
}

// track animates one property from -> to over [start, start+span] of the
// timeline's normalized playhead.
type track struct {
	start, span float64
	from, to    float64
	tween       *gween.Tween
}

// propGroup holds every track writing the same (node, prop), sorted by start.
type propGroup struct {
	key    trackKey
	tracks []track
}

// Timeline is a seekable animation program. The playhead is a fraction in
// [0, 1]; every animated property is a pure function of it, so scrubbing
// backward replays the same curves in reverse and a 0 -> 1 -> 0 round trip
// restores the starting state exactly.
//
// Timelines do not advance on their own. A Controller (or a Playback) pushes
// the playhead in with Seek.
type Timeline struct {
	Name string

	groups   []propGroup
	playhead float64
	seeked   bool
	killed   bool
}

// NewTimeline creates an empty timeline.
func NewTimeline(name string) *Timeline {
	return &Timeline{Name: name}
}

// To appends a track animating prop on node to the value to, starting at
// playhead at and lasting span (both fractions of the timeline). The start
// value is taken from the preceding track on the same property, or from the
// node's current value when this is the first one. Returns tl for chaining.
func (tl *Timeline) To(node *Node, prop Prop, to, at, span float64, fn ease.TweenFunc) *Timeline {
	if node == nil {
		panic("drift: timeline track needs a node")
	}
	if fn == nil {
		fn = ease.Linear
	}
	at = clamp01(at)
	if span < minTrackSpan {
		span = minTrackSpan
	}
	key := trackKey{node: node, prop: prop}
	g := tl.group(key)

	from := node.Get(prop)
	for i := len(g.tracks) - 1; i >= 0; i-- {
		if g.tracks[i].start <= at {
			from = g.tracks[i].to
			break
		}
	}

	g.tracks = append(g.tracks, track{
		start: at,
		span:  span,
		from:  from,
		to:    to,
		tween: gween.New(float32(from), float32(to), float32(span), fn),
	})
	sort.SliceStable(g.tracks, func(i, j int) bool { return g.tracks[i].start < g.tracks[j].start })
	return tl
}

// FromTo is To with an explicit start value.
func (tl *Timeline) FromTo(node *Node, prop Prop, from, to, at, span float64, fn ease.TweenFunc) *Timeline {
	node.Set(prop, from)
	return tl.To(node, prop, to, at, span, fn)
}

func (tl *Timeline) group(key trackKey) *propGroup {
	for i := range tl.groups {
		if tl.groups[i].key == key {
			return &tl.groups[i]
		}
	}
	tl.groups = append(tl.groups, propGroup{key: key})
	return &tl.groups[len(tl.groups)-1]
}

// Progress returns the last playhead passed to Seek.
func (tl *Timeline) Progress() float64 {
	return tl.playhead
}

// Killed reports whether Kill has been called.
func (tl *Timeline) Killed() bool {
	return tl.killed
}

// Kill stops the timeline permanently. Later Seek calls write nothing.
func (tl *Timeline) Kill() {
	tl.killed = true
}

// Seek moves the playhead to p (clamped to [0, 1]) and writes every animated
// property. Seeking to the current playhead again writes nothing. Returns
// whether any write happened.
func (tl *Timeline) Seek(p float64) bool {
	if tl.killed {
		return false
	}
	p = clamp01(p)
	if tl.seeked && p == tl.playhead {
		return false
	}
	tl.playhead = p
	tl.seeked = true

	for i := range tl.groups {
		g := &tl.groups[i]
		if !g.key.node.writable() {
			continue
		}
		g.key.node.Set(g.key.prop, g.valueAt(p))
	}
	return true
}

// valueAt resolves the property value at playhead p: the latest track that
// has started owns the value; before the first track the first from-value
// holds. Endpoints are written from the float64 values, not the float32
// tween, so they round-trip exactly.
func (g *propGroup) valueAt(p float64) float64 {
	if len(g.tracks) == 0 {
		return 0
	}
	idx := -1
	for i := range g.tracks {
		if g.tracks[i].start <= p {
			idx = i
		}
	}
	if idx < 0 {
		return g.tracks[0].from
	}
	tr := &g.tracks[idx]
	local := p - tr.start
	switch {
	case local <= 0:
		return tr.from
	case local >= tr.span:
		return tr.to
	}
	v, _ := tr.tween.Set(float32(local))
	return float64(v)
}
