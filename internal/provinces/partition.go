// Package provinces partitions the six faces of a cube lattice into irregular
// Voronoi regions around random seed sites.
package provinces

import (
	"context"
	"fmt"
	"log"
	"math"

	"golang.org/x/sync/errgroup"

	"redsands/internal/core"
	"redsands/internal/noise"
)

// DefaultDisplacement scales noise values into lattice units before the
// nearest-seed search.
const DefaultDisplacement = 86.0

// Options configures a partition run.
type Options struct {
	Seeds        int
	Dimension    int
	Displacement float64
	Seed         int64
	// Sampler distorts sample positions. Nil means noise.Default().
	Sampler noise.Sampler
	// Verbose logs per-face progress.
	Verbose bool
}

// Map is the result of a partition run.
type Map struct {
	Dimension int
	Seeds     []Seed
	Faces     [core.FaceCount]*core.ColorGrid

	byColor map[core.Color]int
}

func (o *Options) normalize() error {
	if err := validateSeedRequest(o.Seeds, o.Dimension); err != nil {
		return err
	}
	if o.Displacement < 0 || math.IsNaN(o.Displacement) || math.IsInf(o.Displacement, 0) {
		return fmt.Errorf("%w: displacement %f must be a finite non-negative number", ErrInvalidOptions, o.Displacement)
	}
	if o.Sampler == nil {
		o.Sampler = noise.Default()
	}
	return nil
}

// Generate draws seeds and rasterizes all six faces.
func Generate(ctx context.Context, opts Options) (*Map, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	seeds, err := GenerateSeeds(core.NewRNG(opts.Seed), opts.Seeds, opts.Dimension)
	if err != nil {
		return nil, err
	}
	return Rasterize(ctx, seeds, opts)
}

// Rasterize paints every face with the given seeds. The six faces are
// independent and run concurrently.
func Rasterize(ctx context.Context, seeds []Seed, opts Options) (*Map, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: at least one seed is required", ErrInvalidOptions)
	}
	if opts.Dimension < 3 {
		return nil, fmt.Errorf("%w: dimension %d must be at least 3", ErrInvalidOptions, opts.Dimension)
	}
	if opts.Sampler == nil {
		opts.Sampler = noise.Default()
	}

	m := &Map{Dimension: opts.Dimension, Seeds: append([]Seed(nil), seeds...)}
	g, ctx := errgroup.WithContext(ctx)
	for _, face := range core.Faces {
		face := face
		g.Go(func() error {
			grid, err := rasterizeFace(ctx, face, m.Seeds, opts)
			if err != nil {
				return fmt.Errorf("face %v: %w", face, err)
			}
			m.Faces[face] = face.Orientation().Apply(grid)
			if opts.Verbose {
				log.Printf("provinces: face %v rasterized (%dx%d, %d seeds)", face, grid.W, grid.H, len(m.Seeds))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	m.index()
	return m, nil
}

func rasterizeFace(ctx context.Context, face core.Face, seeds []Seed, opts Options) (*core.ColorGrid, error) {
	dim := opts.Dimension
	grid := core.NewColorGrid(dim, dim)
	pixels := grid.Pixels()
	across, down := face.PlaneAxes()
	half := float64(dim / 2)

	var prevA, prevB float64
	for y := 0; y < dim; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := 0; x < dim; x++ {
			lattice := face.Lattice(x, y, dim)
			p := [3]float64{float64(lattice[0]), float64(lattice[1]), float64(lattice[2])}

			na := float64(opts.Sampler.Sample3(p[0]/noise.GridScale, p[1]/noise.GridScale, p[2]/noise.GridScale))
			q := p
			q[across] += half
			nb := float64(opts.Sampler.Sample3(q[0]/noise.GridScale, q[1]/noise.GridScale, q[2]/noise.GridScale))

			if !finite(na) {
				na = prevA
			}
			if !finite(nb) {
				nb = prevB
			}
			prevA, prevB = na, nb

			p[across] += na * opts.Displacement
			p[down] += nb * opts.Displacement

			pixels[grid.Index(x, y)] = seeds[nearestSeed(seeds, p)].Color
		}
	}
	return grid, nil
}

// nearestSeed returns the index of the seed closest to p. Only a strictly
// smaller distance replaces the current best, so ties go to the lowest index.
func nearestSeed(seeds []Seed, p [3]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, s := range seeds {
		dx := float64(s.Position[0]) - p[0]
		dy := float64(s.Position[1]) - p[1]
		dz := float64(s.Position[2]) - p[2]
		if d := dx*dx + dy*dy + dz*dz; d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
