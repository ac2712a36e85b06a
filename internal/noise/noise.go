// Package noise implements deterministic fractal gradient noise over 2D and 3D
// coordinates. Gradients are derived from the lattice coordinates with an
// integer hash, so a field needs no tables and no seed state.
package noise

import (
	"math"
	"math/bits"
)

// GridScale is the lattice spacing callers divide their coordinates by before
// sampling.
const GridScale = 400.0

const (
	// DefaultOctaves is the number of fractal layers summed per sample.
	DefaultOctaves = 12
	// DefaultBoost scales the fractal sum before clamping.
	DefaultBoost = 1.2
	// MaxOctaves bounds the layer count.
	MaxOctaves = 16
)

const (
	hashA = 3284157443
	hashB = 1911520717
	hashC = 2048419325
	hashD = 1529716949
)

// Field is a fractal gradient noise function. The zero value is not useful;
// use New or Default.
type Field struct {
	Octaves int
	Boost   float64
}

// Sampler is implemented by anything that can produce 3D noise values.
type Sampler interface {
	Sample3(x, y, z float64) float32
}

// New returns a field with the given octave count and boost.
func New(octaves int, boost float64) Field {
	if octaves <= 0 {
		octaves = DefaultOctaves
	}
	if octaves > MaxOctaves {
		octaves = MaxOctaves
	}
	if boost <= 0 {
		boost = DefaultBoost
	}
	return Field{Octaves: octaves, Boost: boost}
}

// Default returns the standard 12 octave field.
func Default() Field { return New(DefaultOctaves, DefaultBoost) }

// Sample2 returns the fractal noise value at (x, y) in [-1, 1].
func (f Field) Sample2(x, y float64) float32 {
	val, freq, amp := 0.0, 1.0, 1.0
	for i := 0; i < f.Octaves; i++ {
		val += Gradient2(x*freq, y*freq) * amp
		freq *= 2
		amp /= 2
	}
	return clampUnit(val * f.Boost)
}

// Sample3 returns the fractal noise value at (x, y, z) in [-1, 1].
func (f Field) Sample3(x, y, z float64) float32 {
	val, freq, amp := 0.0, 1.0, 1.0
	for i := 0; i < f.Octaves; i++ {
		val += Gradient3(x*freq, y*freq, z*freq) * amp
		freq *= 2
		amp /= 2
	}
	return clampUnit(val * f.Boost)
}

// Gradient2 evaluates a single octave of 2D gradient noise.
func Gradient2(x, y float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	ix, iy := int32(int64(x0)), int32(int64(y0))
	sx, sy := x-x0, y-y0

	n0 := dotGradient2(ix, iy, x, y)
	n1 := dotGradient2(ix+1, iy, x, y)
	ix0 := interpolate(n0, n1, sx)

	n0 = dotGradient2(ix, iy+1, x, y)
	n1 = dotGradient2(ix+1, iy+1, x, y)
	ix1 := interpolate(n0, n1, sx)

	return interpolate(ix0, ix1, sy)
}

// Gradient3 evaluates a single octave of 3D gradient noise.
func Gradient3(x, y, z float64) float64 {
	x0, y0, z0 := math.Floor(x), math.Floor(y), math.Floor(z)
	ix, iy, iz := int32(int64(x0)), int32(int64(y0)), int32(int64(z0))
	sx, sy, sz := x-x0, y-y0, z-z0

	var plane [2]float64
	for dz := int32(0); dz <= 1; dz++ {
		n0 := dotGradient3(ix, iy, iz+dz, x, y, z)
		n1 := dotGradient3(ix+1, iy, iz+dz, x, y, z)
		ix0 := interpolate(n0, n1, sx)

		n0 = dotGradient3(ix, iy+1, iz+dz, x, y, z)
		n1 = dotGradient3(ix+1, iy+1, iz+dz, x, y, z)
		ix1 := interpolate(n0, n1, sx)

		plane[dz] = interpolate(ix0, ix1, sy)
	}
	return interpolate(plane[0], plane[1], sz)
}

// hashAngle maps a 32-bit hash onto [0, 2π).
func hashAngle(h uint32) float64 {
	return float64(h) * (math.Pi / (1 << 31))
}

func randomGradient2(ix, iy int32) (float64, float64) {
	a, b := uint32(ix), uint32(iy)
	a *= hashA
	b ^= bits.RotateLeft32(a, 16)
	b *= hashB
	a ^= bits.RotateLeft32(b, 16)
	a *= hashC
	angle := hashAngle(a)
	return math.Sin(angle), math.Cos(angle)
}

func randomGradient3(ix, iy, iz int32) (float64, float64, float64) {
	a, b, c := uint32(ix), uint32(iy), uint32(iz)
	a *= hashA
	b ^= bits.RotateLeft32(a, 16)
	b *= hashB
	c ^= bits.RotateLeft32(b, 16)
	c *= hashD
	a ^= bits.RotateLeft32(c, 16)
	a *= hashC
	c ^= bits.RotateLeft32(a, 16)
	c *= hashB

	angle := hashAngle(a)
	z := float64(c)/float64(^uint32(0))*2 - 1
	r := math.Sqrt(math.Max(0, 1-z*z))
	return r * math.Cos(angle), r * math.Sin(angle), z
}

func dotGradient2(ix, iy int32, x, y float64) float64 {
	gx, gy := randomGradient2(ix, iy)
	dx := x - float64(ix)
	dy := y - float64(iy)
	return dx*gx + dy*gy
}

func dotGradient3(ix, iy, iz int32, x, y, z float64) float64 {
	gx, gy, gz := randomGradient3(ix, iy, iz)
	dx := x - float64(ix)
	dy := y - float64(iy)
	dz := z - float64(iz)
	return dx*gx + dy*gy + dz*gz
}

// interpolate blends a0 and a1 with the 3w²-2w³ kernel.
func interpolate(a0, a1, w float64) float64 {
	return (a1-a0)*(3-w*2)*w*w + a0
}

func clampUnit(v float64) float32 {
	if v >= 1 {
		return 1
	}
	if v <= -1 {
		return -1
	}
	return float32(v)
}
