// Package assets provides elevation sources for the planet faces and debug
// image dumps.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"redsands/internal/core"
	"redsands/internal/noise"
)

// ErrElevationNotFound is returned when a directory has no image for a face.
var ErrElevationNotFound = errors.New("elevation image not found")

// extensions are tried in order for each face.
var extensions = []string{".png", ".tif", ".tiff", ".bmp"}

// Dir loads elevation_<n>.png (or .tif/.bmp) from a directory, where n is the
// face index.
type Dir struct {
	Path string
}

// FileStem returns the file name without extension used for a face.
func FileStem(face core.Face) string {
	return fmt.Sprintf("elevation_%d", int(face))
}

// Load decodes the elevation image for face.
func (d Dir) Load(face core.Face) (image.Image, error) {
	stem := filepath.Join(d.Path, FileStem(face))
	for _, ext := range extensions {
		f, err := os.Open(stem + ext)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open elevation for face %v: %w", face, err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", stem+ext, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("face %v in %s: %w", face, d.Path, ErrElevationNotFound)
}

// Synthetic produces seamless fractal-noise elevation. Each pixel samples the
// noise field at the sphere point the mesh generator maps it to, so adjacent
// faces agree along shared edges.
type Synthetic struct {
	Field     noise.Field
	Size      int
	Frequency float64
	offset    [3]float64
}

// DefaultSyntheticSize is the face resolution of synthetic elevation images.
const DefaultSyntheticSize = 256

// NewSynthetic returns a synthetic source whose terrain depends on seed.
func NewSynthetic(size int, seed int64) *Synthetic {
	if size < 2 {
		size = DefaultSyntheticSize
	}
	rng := core.NewRNG(seed).Source()
	return &Synthetic{
		Field:     noise.New(6, 1.4),
		Size:      size,
		Frequency: 2.5,
		offset:    [3]float64{rng.Float64() * 1000, rng.Float64() * 1000, rng.Float64() * 1000},
	}
}

// Load renders the elevation image for face.
func (s *Synthetic) Load(face core.Face) (image.Image, error) {
	if !face.Valid() {
		return nil, fmt.Errorf("invalid face %d", face)
	}
	img := image.NewGray(image.Rect(0, 0, s.Size, s.Size))
	last := float32(s.Size - 1)
	for y := 0; y < s.Size; y++ {
		for x := 0; x < s.Size; x++ {
			dir := face.CubePoint(float32(x)/last, float32(y)/last).Normalize()
			v := s.Field.Sample3(
				float64(dir[0])*s.Frequency+s.offset[0],
				float64(dir[1])*s.Frequency+s.offset[1],
				float64(dir[2])*s.Frequency+s.offset[2],
			)
			img.Pix[y*img.Stride+x] = uint8((v + 1) / 2 * 255)
		}
	}
	return img, nil
}
