package core

import (
	"image"
	"image/color"
)

// Color is an opaque RGB triple.
type Color struct {
	R, G, B uint8
}

// RGBA widens the color to an opaque color.RGBA.
func (c Color) RGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255} }

// ColorGrid stores a 2D grid of RGB pixels in row-major order.
type ColorGrid struct {
	W, H int
	data []Color
}

// NewColorGrid allocates a grid with the given dimensions.
func NewColorGrid(w, h int) *ColorGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ColorGrid{W: w, H: h, data: make([]Color, w*h)}
}

// Pixels exposes the backing slice so callers can read/write values directly.
func (g *ColorGrid) Pixels() []Color { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ColorGrid) Index(x, y int) int { return y*g.W + x }

// Clamp pins the provided coordinates to the grid bounds.
func (g *ColorGrid) Clamp(x, y int) (int, int) {
	return clampInt(x, 0, g.W-1), clampInt(y, 0, g.H-1)
}

// At returns the pixel at (x, y) after clamping.
func (g *ColorGrid) At(x, y int) Color {
	x, y = g.Clamp(x, y)
	return g.data[g.Index(x, y)]
}

// Set writes the pixel at (x, y). Out-of-range writes are ignored.
func (g *ColorGrid) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return
	}
	g.data[g.Index(x, y)] = c
}

// Clone returns a deep copy of the grid.
func (g *ColorGrid) Clone() *ColorGrid {
	return &ColorGrid{W: g.W, H: g.H, data: append([]Color(nil), g.data...)}
}

// Image converts the grid into an opaque RGBA image.
func (g *ColorGrid) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	for i, c := range g.data {
		base := i * 4
		img.Pix[base+0] = c.R
		img.Pix[base+1] = c.G
		img.Pix[base+2] = c.B
		img.Pix[base+3] = 255
	}
	return img
}

// OverlayGrid stores a 2D grid of non-premultiplied RGBA pixels.
type OverlayGrid struct {
	W, H int
	data []color.NRGBA
}

// NewOverlayGrid allocates a fully transparent overlay.
func NewOverlayGrid(w, h int) *OverlayGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &OverlayGrid{W: w, H: h, data: make([]color.NRGBA, w*h)}
}

// Pixels exposes the backing slice.
func (g *OverlayGrid) Pixels() []color.NRGBA { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *OverlayGrid) Index(x, y int) int { return y*g.W + x }

// At returns the pixel at (x, y) after clamping.
func (g *OverlayGrid) At(x, y int) color.NRGBA {
	x, y = clampInt(x, 0, g.W-1), clampInt(y, 0, g.H-1)
	return g.data[g.Index(x, y)]
}

// Image converts the overlay into an image.NRGBA sharing no memory with g.
func (g *OverlayGrid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.W, g.H))
	for i, c := range g.data {
		base := i * 4
		img.Pix[base+0] = c.R
		img.Pix[base+1] = c.G
		img.Pix[base+2] = c.B
		img.Pix[base+3] = c.A
	}
	return img
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
