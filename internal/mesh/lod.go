package mesh

import (
	"errors"
	"fmt"

	"redsands/internal/core"
)

// ErrInvalidLODs is returned for an empty or unsorted LOD list.
var ErrInvalidLODs = errors.New("invalid lod list")

// ValidateLODs checks that lods is non-empty, strictly ascending and every
// entry is at least MinResolution.
func ValidateLODs(lods []int) error {
	if len(lods) == 0 {
		return fmt.Errorf("%w: at least one resolution is required", ErrInvalidLODs)
	}
	for i, r := range lods {
		if r < MinResolution {
			return fmt.Errorf("%w: resolution %d below %d", ErrInvalidLODs, r, MinResolution)
		}
		if i > 0 && r <= lods[i-1] {
			return fmt.Errorf("%w: %v is not strictly ascending", ErrInvalidLODs, lods)
		}
	}
	return nil
}

// SpawnLODs builds one mesh per resolution in lods, lowest detail first.
func SpawnLODs(face core.Face, lods []int, radius, uvScale float32, elevation *HeightMap) ([]*FaceMesh, error) {
	if err := ValidateLODs(lods); err != nil {
		return nil, err
	}
	out := make([]*FaceMesh, 0, len(lods))
	for _, r := range lods {
		m, err := SpawnFace(face, r, radius, uvScale, elevation)
		if err != nil {
			return nil, fmt.Errorf("lod %d: %w", r, err)
		}
		out = append(out, m)
	}
	return out, nil
}
