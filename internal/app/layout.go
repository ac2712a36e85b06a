package app

import (
	"redsands/internal/assets"
	"redsands/internal/pipeline"
)

const (
	minCell = 64
	maxCell = 256
)

// CellSize picks the on-screen size of one cube face for a face dimension
// and pixel scale.
func CellSize(dimension, scale int) int {
	if scale <= 0 {
		scale = 1
	}
	return min(max(dimension*scale, minCell), maxCell)
}

// ElevationSource returns the directory source when dir is set and a seeded
// synthetic source otherwise.
func ElevationSource(dir string, seed int64) pipeline.ElevationSource {
	if dir != "" {
		return assets.Dir{Path: dir}
	}
	return assets.NewSynthetic(assets.DefaultSyntheticSize, seed)
}
