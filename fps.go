package drift

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay draws FPS, TPS, and the scroll lock state in the top-right
// corner. The text is refreshed about twice a second.
type fpsOverlay struct {
	img   *ebiten.Image
	since float32
	text  string
}

const (
	fpsOverlayW       = 120
	fpsOverlayH       = 48
	fpsOverlayRefresh = 0.5
)

func (o *fpsOverlay) update(dt float32, lock *ScrollLock) {
	o.since += dt
	if o.text != "" && o.since < fpsOverlayRefresh {
		return
	}
	o.since = 0
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nlock: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), lock.Holders())
	if o.img == nil {
		o.img = ebiten.NewImage(fpsOverlayW, fpsOverlayH)
	}
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(screen.Bounds().Dx()-fpsOverlayW), 0)
	screen.DrawImage(o.img, &op)
}
