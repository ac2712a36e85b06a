package provinces

import (
	"errors"
	"fmt"

	"redsands/internal/core"
)

// ErrTooManySeeds is returned when the requested seed count cannot be drawn
// without risking an unbounded rejection loop.
var ErrTooManySeeds = errors.New("seed count exceeds available positions or colors")

// ErrInvalidOptions is returned for malformed partition options.
var ErrInvalidOptions = errors.New("invalid partition options")

// colorSpace is the number of distinct seed colors (every channel in [1,255]).
const colorSpace = 255 * 255 * 255

// Seed is a Voronoi generator point: a unique color at a unique lattice position.
type Seed struct {
	Color    core.Color
	Position [3]int
}

// SeedCapacity returns the largest seed count accepted for a lattice of the
// given dimension. It is half of the smaller of the color space and the number
// of lattice positions, which keeps rejection sampling fast.
func SeedCapacity(dimension int) int {
	if dimension < 2 {
		return 0
	}
	side := dimension - 1
	positions := side * side * side
	if side > 1000 || positions > colorSpace {
		positions = colorSpace
	}
	return positions / 2
}

func validateSeedRequest(count, dimension int) error {
	if dimension < 3 {
		return fmt.Errorf("%w: dimension %d must be at least 3", ErrInvalidOptions, dimension)
	}
	if count < 1 {
		return fmt.Errorf("%w: seed count %d must be positive", ErrInvalidOptions, count)
	}
	if limit := SeedCapacity(dimension); count > limit {
		return fmt.Errorf("%w: %d seeds requested, at most %d for dimension %d", ErrTooManySeeds, count, limit, dimension)
	}
	return nil
}

// GenerateSeeds draws count seeds with pairwise distinct positions in
// [1, dimension-1]³ and pairwise distinct colors.
func GenerateSeeds(rng *core.RNG, count, dimension int) ([]Seed, error) {
	if err := validateSeedRequest(count, dimension); err != nil {
		return nil, err
	}

	seeds := make([]Seed, 0, count)
	usedPositions := make(map[[3]int]struct{}, count)
	usedColors := make(map[core.Color]struct{}, count)

	for len(seeds) < count {
		pos := [3]int{
			rng.IntRange(1, dimension-1),
			rng.IntRange(1, dimension-1),
			rng.IntRange(1, dimension-1),
		}
		if _, ok := usedPositions[pos]; ok {
			continue
		}

		var c core.Color
		for {
			c = rng.Color()
			if _, ok := usedColors[c]; !ok {
				break
			}
		}

		usedPositions[pos] = struct{}{}
		usedColors[c] = struct{}{}
		seeds = append(seeds, Seed{Color: c, Position: pos})
	}
	return seeds, nil
}
