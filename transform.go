package drift

import "math"

var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// transform properties. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Rotate -> Translate(X, Y)
func computeLocalTransform(n *Node) [6]float64 {
	sx := n.ScaleX
	sy := n.ScaleY
	sin, cos := math.Sincos(n.Rotation)

	preTx := -n.PivotX * sx
	preTy := -n.PivotY * sy

	return [6]float64{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		cos*preTx - sin*preTy + n.X,
		sin*preTx + cos*preTy + n.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform recomputes a node's worldTransform and worldAlpha.
// parentRecomputed forces recomputation of clean children of a dirty parent.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// Prop names a numeric node property that animations may write.
type Prop uint8

const (
	PropX Prop = iota
	PropY
	PropScaleX
	PropScaleY
	PropRotation
	PropAlpha
)

var propNames = [...]string{"x", "y", "scaleX", "scaleY", "rotation", "alpha"}

func (p Prop) String() string {
	if int(p) < len(propNames) {
		return propNames[p]
	}
	return "unknown"
}

// Get returns the current value of p on n.
func (n *Node) Get(p Prop) float64 {
	switch p {
	case PropX:
		return n.X
	case PropY:
		return n.Y
	case PropScaleX:
		return n.ScaleX
	case PropScaleY:
		return n.ScaleY
	case PropRotation:
		return n.Rotation
	case PropAlpha:
		return n.Alpha
	}
	return 0
}

// Set writes v to property p and marks the node dirty.
// No-op on nil or disposed nodes.
func (n *Node) Set(p Prop, v float64) {
	if !n.writable() {
		return
	}
	switch p {
	case PropX:
		n.X = v
	case PropY:
		n.Y = v
	case PropScaleX:
		n.ScaleX = v
	case PropScaleY:
		n.ScaleY = v
	case PropRotation:
		n.Rotation = v
	case PropAlpha:
		n.Alpha = v
	default:
		return
	}
	n.transformDirty = true
}

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	if !n.writable() {
		return
	}
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	if !n.writable() {
		return
	}
	n.ScaleX = sx
	n.ScaleY = sy
	n.transformDirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	if !n.writable() {
		return
	}
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty forces recomputation of the world transform on the next frame.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// LocalToWorld converts a local-space point to world space using the
// transform computed on the last Stage.Update.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}
