package render

import (
	"image/color"
	"math"

	"redsands/internal/core"
	"redsands/internal/mesh"
)

// FillFaceRGBA copies an opaque province face into buf (4 bytes per pixel).
func FillFaceRGBA(buf []byte, face *core.ColorGrid) {
	for i, c := range face.Pixels() {
		base := i * 4
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = 255
	}
}

// BlendOverlayRGBA composites a non-premultiplied overlay over the opaque
// pixels already in buf.
func BlendOverlayRGBA(buf []byte, overlay *core.OverlayGrid) {
	for i, c := range overlay.Pixels() {
		if c.A == 0 {
			continue
		}
		base := i * 4
		a := float64(c.A) / 255
		buf[base+0] = mix(buf[base+0], c.R, a)
		buf[base+1] = mix(buf[base+1], c.G, a)
		buf[base+2] = mix(buf[base+2], c.B, a)
		buf[base+3] = 255
	}
}

// HighlightRGBA lightens every pixel of face painted with target.
func HighlightRGBA(buf []byte, face *core.ColorGrid, target core.Color, amount float64) {
	for i, c := range face.Pixels() {
		if c != target {
			continue
		}
		base := i * 4
		buf[base+0] = mix(buf[base+0], 255, amount)
		buf[base+1] = mix(buf[base+1], 255, amount)
		buf[base+2] = mix(buf[base+2], 255, amount)
	}
}

// FillElevationRGBA paints a w×h preview of hm using ElevationPalette. The
// preview is laid out in mesh UV space.
func FillElevationRGBA(buf []byte, hm *mesh.HeightMap, w, h int) {
	cells := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			u := float32(x) / float32(max(w-1, 1))
			v := float32(y) / float32(max(h-1, 1))
			cells[y*w+x] = uint8(math.Round(float64(hm.Sample(u, v)) * 255))
		}
	}
	fillPaletteRGBA(buf, cells, ElevationPalette)
}

// ElevationPalette maps a height byte to a terrain tint.
var ElevationPalette = buildRamp([]rampStop{
	{0.0, color.RGBA{R: 40, G: 60, B: 120, A: 255}},
	{0.25, color.RGBA{R: 70, G: 105, B: 160, A: 255}},
	{0.5, color.RGBA{R: 150, G: 90, B: 60, A: 255}},
	{0.75, color.RGBA{R: 190, G: 160, B: 80, A: 255}},
	{1.0, color.RGBA{R: 240, G: 235, B: 215, A: 255}},
})

type rampStop struct {
	t   float64
	col color.RGBA
}

func buildRamp(stops []rampStop) []color.RGBA {
	out := make([]color.RGBA, 256)
	for i := range out {
		t := float64(i) / 255
		for s := 1; s < len(stops); s++ {
			if t <= stops[s].t {
				prev, curr := stops[s-1], stops[s]
				local := (t - prev.t) / (curr.t - prev.t)
				out[i] = color.RGBA{
					R: mix(prev.col.R, curr.col.R, local),
					G: mix(prev.col.G, curr.col.G, local),
					B: mix(prev.col.B, curr.col.B, local),
					A: mix(prev.col.A, curr.col.A, local),
				}
				break
			}
		}
	}
	return out
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

func mix(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
