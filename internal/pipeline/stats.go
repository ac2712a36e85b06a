package pipeline

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"redsands/internal/borders"
	"redsands/internal/core"
)

// Stats summarises a finished planet.
type Stats struct {
	Provinces int
	// Areas holds the pixel count of every province on every face.
	Areas [][core.FaceCount]int

	MinArea  int
	MaxArea  int
	MeanArea float64
	StdArea  float64

	// BorderFraction is the share of face pixels that sit on a province
	// boundary.
	BorderFraction float64

	// Vertices and Triangles total every face at each LOD.
	Vertices  []int
	Triangles []int
}

// Stats computes area, border and mesh statistics.
func (p *Planet) Stats() Stats {
	s := Stats{Provinces: p.ProvinceCount()}
	if p.Map == nil {
		return s
	}
	s.Areas = make([][core.FaceCount]int, s.Provinces)

	var boundary, total int
	for _, face := range core.Faces {
		grid := p.Map.Faces[face]
		for y := 0; y < grid.H; y++ {
			for x := 0; x < grid.W; x++ {
				total++
				if borders.IsBoundary(grid, x, y) {
					boundary++
				}
				if id, ok := p.Map.ProvinceByColor(grid.At(x, y)); ok {
					s.Areas[id][face]++
				}
			}
		}
	}
	if total > 0 {
		s.BorderFraction = float64(boundary) / float64(total)
	}

	if s.Provinces > 0 {
		areas := make([]float64, s.Provinces)
		for i, faces := range s.Areas {
			for _, n := range faces {
				areas[i] += float64(n)
			}
		}
		s.MinArea = int(floats.Min(areas))
		s.MaxArea = int(floats.Max(areas))
		s.MeanArea, s.StdArea = stat.MeanStdDev(areas, nil)
	}

	for _, lods := range p.Meshes {
		for i, m := range lods {
			if i >= len(s.Vertices) {
				s.Vertices = append(s.Vertices, 0)
				s.Triangles = append(s.Triangles, 0)
			}
			s.Vertices[i] += m.VertexCount()
			s.Triangles[i] += m.TriangleCount()
		}
	}
	return s
}
