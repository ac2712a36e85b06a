package borders

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"

	"redsands/internal/core"
)

// Kernel returns normalised 1D Gaussian weights of radius ceil(3σ).
func Kernel(sigma float64) []float64 {
	if sigma <= 0 {
		return []float64{1}
	}
	radius := int(math.Ceil(3 * sigma))
	weights := make([]float64, 2*radius+1)
	for i := range weights {
		d := float64(i - radius)
		weights[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
	}
	floats.Scale(1/floats.Sum(weights), weights)
	return weights
}

// premul is a premultiplied-alpha accumulator.
type premul struct{ r, g, b, a float64 }

// Blur applies a separable Gaussian blur to the overlay. Color channels are
// blurred premultiplied so transparent neighbours do not darken the line.
func Blur(src *core.OverlayGrid, sigma float64) *core.OverlayGrid {
	kernel := Kernel(sigma)
	radius := len(kernel) / 2
	w, h := src.W, src.H

	in := make([]premul, w*h)
	for i, c := range src.Pixels() {
		a := float64(c.A) / 255
		in[i] = premul{r: float64(c.R) * a, g: float64(c.G) * a, b: float64(c.B) * a, a: float64(c.A)}
	}

	tmp := make([]premul, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc premul
			for k, weight := range kernel {
				sx := clamp(x+k-radius, 0, w-1)
				acc.add(in[y*w+sx], weight)
			}
			tmp[y*w+x] = acc
		}
	}

	dst := core.NewOverlayGrid(w, h)
	out := dst.Pixels()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc premul
			for k, weight := range kernel {
				sy := clamp(y+k-radius, 0, h-1)
				acc.add(tmp[sy*w+x], weight)
			}
			out[y*w+x] = acc.unpremultiply()
		}
	}
	return dst
}

func (p *premul) add(o premul, weight float64) {
	p.r += o.r * weight
	p.g += o.g * weight
	p.b += o.b * weight
	p.a += o.a * weight
}

func (p premul) unpremultiply() color.NRGBA {
	alpha := toByte(p.a)
	if alpha == 0 {
		return color.NRGBA{}
	}
	norm := p.a / 255
	return color.NRGBA{
		R: toByte(p.r / norm),
		G: toByte(p.g / norm),
		B: toByte(p.b / norm),
		A: alpha,
	}
}

func toByte(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
