// Package borders turns province face images into translucent outline
// overlays.
package borders

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"golang.org/x/sync/errgroup"

	"redsands/internal/core"
)

// ErrMissingFace is returned when an input face image is nil or empty.
var ErrMissingFace = errors.New("missing face image")

const (
	// DefaultBloom brightens boundary colors.
	DefaultBloom = 1.5
	// DefaultAlpha is the opacity of boundary pixels before blurring.
	DefaultAlpha = 180
	// DefaultSigma is the Gaussian blur standard deviation in pixels.
	DefaultSigma = 0.65
)

// Options tunes the border look.
type Options struct {
	Bloom float64
	Alpha uint8
	Sigma float64
}

// DefaultOptions returns the standard border settings.
func DefaultOptions() Options {
	return Options{Bloom: DefaultBloom, Alpha: DefaultAlpha, Sigma: DefaultSigma}
}

// Extract builds one blurred border overlay per face image.
func Extract(ctx context.Context, faces []*core.ColorGrid, opts Options) ([]*core.OverlayGrid, error) {
	if opts.Bloom <= 0 {
		return nil, fmt.Errorf("bloom %f must be positive", opts.Bloom)
	}
	if opts.Sigma < 0 {
		return nil, fmt.Errorf("sigma %f cannot be negative", opts.Sigma)
	}
	for i, face := range faces {
		if face == nil || len(face.Pixels()) == 0 {
			return nil, fmt.Errorf("face %d: %w", i, ErrMissingFace)
		}
	}

	out := make([]*core.OverlayGrid, len(faces))
	g, ctx := errgroup.WithContext(ctx)
	for i, face := range faces {
		i, face := i, face
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Blur(Detect(face, opts), opts.Sigma)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Detect marks every pixel whose 8-neighbourhood (clamped at the edges)
// contains a different color. Boundary pixels carry the bloomed source color
// at opts.Alpha; everything else is transparent.
func Detect(face *core.ColorGrid, opts Options) *core.OverlayGrid {
	overlay := core.NewOverlayGrid(face.W, face.H)
	dst := overlay.Pixels()
	for y := 0; y < face.H; y++ {
		for x := 0; x < face.W; x++ {
			c := face.At(x, y)
			if !IsBoundary(face, x, y) {
				continue
			}
			dst[overlay.Index(x, y)] = color.NRGBA{
				R: bloom(c.R, opts.Bloom),
				G: bloom(c.G, opts.Bloom),
				B: bloom(c.B, opts.Bloom),
				A: opts.Alpha,
			}
		}
	}
	return overlay
}

// IsBoundary reports whether any 8-neighbour of (x, y) differs in color.
func IsBoundary(face *core.ColorGrid, x, y int) bool {
	c := face.At(x, y)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if face.At(x+dx, y+dy) != c {
				return true
			}
		}
	}
	return false
}

func bloom(v uint8, factor float64) uint8 {
	scaled := float64(v) * factor
	if scaled >= 255 {
		return 255
	}
	return uint8(scaled)
}
