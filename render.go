package drift

import "github.com/hajimehoshi/ebiten/v2"

// drawNode draws n and its visible descendants in tree order. Transforms
// and alpha come from the last Stage.Update.
func drawNode(screen *ebiten.Image, n *Node) {
	if !n.Visible || n.disposed {
		return
	}
	if n.Type == NodeTypeRect && n.worldAlpha > 0 && n.Width > 0 && n.Height > 0 {
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(n.Width, n.Height)
		op.GeoM.Concat(affineToGeoM(n.worldTransform))
		a := n.Color.A * n.worldAlpha
		// ColorScale is premultiplied.
		op.ColorScale.Scale(float32(n.Color.R*a), float32(n.Color.G*a), float32(n.Color.B*a), float32(a))
		screen.DrawImage(WhitePixel, &op)
	}
	for _, child := range n.children {
		drawNode(screen, child)
	}
}

// affineToGeoM converts [a, b, c, d, tx, ty] into an ebiten.GeoM.
func affineToGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// toRGBA converts to a premultiplied color suitable for image.Fill.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}
