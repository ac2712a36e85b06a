//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var toggleKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3}

// Overlay owns the view toggles and draws the cursor marker on top of the
// cube net.
type Overlay struct {
	Toggles Toggles
	changed bool
	pixel   *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{Toggles: DefaultToggles(), changed: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update flips toggles for pressed number keys.
func (o *Overlay) Update() {
	for i, key := range toggleKeys {
		if inpututil.IsKeyJustPressed(key) && o.Toggles.Flip(i+1) {
			o.changed = true
		}
	}
}

// Changed reports whether any toggle flipped since the last call.
func (o *Overlay) Changed() bool {
	c := o.changed
	o.changed = false
	return c
}

// DrawMarker outlines a cell of size span at screen position (x, y).
func (o *Overlay) DrawMarker(screen *ebiten.Image, x, y, span float64) {
	col := color.RGBA{R: 255, G: 255, B: 255, A: 200}
	span = math.Max(span, 3)
	o.drawLine(screen, x, y, x+span, y, 1, col)
	o.drawLine(screen, x+span, y, x+span, y+span, 1, col)
	o.drawLine(screen, x+span, y+span, x, y+span, 1, col)
	o.drawLine(screen, x, y+span, x, y, 1, col)
	o.drawPoint(screen, x+span/2, y+span/2, 2, col)
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
