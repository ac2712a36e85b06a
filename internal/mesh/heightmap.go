package mesh

import (
	"errors"
	"image"
	"image/color"
	"math"
)

// ErrMissingElevation is returned when a face has no usable elevation image.
var ErrMissingElevation = errors.New("missing elevation image")

// HeightMap is a copy of the red channel of an elevation image.
type HeightMap struct {
	W, H int
	data []uint8
}

// NewHeightMap copies the stored red byte of img, ignoring alpha. The source
// image is not retained.
func NewHeightMap(img image.Image) (*HeightMap, error) {
	if img == nil {
		return nil, ErrMissingElevation
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrMissingElevation
	}
	hm := &HeightMap{W: b.Dx(), H: b.Dy(), data: make([]uint8, b.Dx()*b.Dy())}
	for y := 0; y < hm.H; y++ {
		for x := 0; x < hm.W; x++ {
			hm.data[y*hm.W+x] = redAt(img, b.Min.X+x, b.Min.Y+y)
		}
	}
	return hm, nil
}

func redAt(img image.Image, x, y int) uint8 {
	switch src := img.(type) {
	case *image.NRGBA:
		return src.Pix[src.PixOffset(x, y)]
	case *image.RGBA:
		return src.Pix[src.PixOffset(x, y)]
	case *image.Gray:
		return src.Pix[src.PixOffset(x, y)]
	default:
		return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA).R
	}
}

// At returns the raw red value at (x, y), clamping coordinates to the image.
func (h *HeightMap) At(x, y int) uint8 {
	x = min(max(x, 0), h.W-1)
	y = min(max(y, 0), h.H-1)
	return h.data[y*h.W+x]
}

// Sample returns the height in [0,1] at the pixel nearest to uv.
func (h *HeightMap) Sample(u, v float32) float32 {
	x := int(math.Round(float64(u) * float64(h.W-1)))
	y := int(math.Round(float64(v) * float64(h.H-1)))
	return float32(h.At(x, y)) / 255
}

func (h *HeightMap) empty() bool {
	return h == nil || h.W <= 0 || h.H <= 0 || len(h.data) == 0
}
