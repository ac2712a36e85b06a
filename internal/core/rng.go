package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// IntRange returns a random int in the closed range [lo, hi].
func (r *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo+1)
}

// Channel returns a random color channel in [1, 255].
func (r *RNG) Channel() uint8 {
	return uint8(r.IntRange(1, 255))
}

// Color returns a random RGB color with every channel in [1, 255].
func (r *RNG) Color() Color {
	return Color{R: r.Channel(), G: r.Channel(), B: r.Channel()}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
