package provinces

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"redsands/internal/core"
)

func (m *Map) index() {
	m.byColor = make(map[core.Color]int, len(m.Seeds))
	for i, s := range m.Seeds {
		m.byColor[s.Color] = i
	}
}

// ProvinceCount returns the number of provinces (one per seed).
func (m *Map) ProvinceCount() int { return len(m.Seeds) }

// ProvinceByColor returns the province id painted with c.
func (m *Map) ProvinceByColor(c core.Color) (int, bool) {
	if m.byColor == nil {
		m.index()
	}
	id, ok := m.byColor[c]
	return id, ok
}

// ProvinceAt returns the province id owning pixel (x, y) of the oriented face
// image. Coordinates are clamped.
func (m *Map) ProvinceAt(face core.Face, x, y int) (int, bool) {
	if !face.Valid() || m.Faces[face] == nil {
		return 0, false
	}
	return m.ProvinceByColor(m.Faces[face].At(x, y))
}

// Locate maps a direction from the planet centre to its face and the pixel of
// the oriented face image that covers it.
func (m *Map) Locate(point mgl32.Vec3) (core.Face, int, int, bool) {
	extent := math.Max(math.Abs(float64(point[0])), math.Max(math.Abs(float64(point[1])), math.Abs(float64(point[2]))))
	if extent == 0 || math.IsNaN(extent) || math.IsInf(extent, 0) {
		return 0, 0, 0, false
	}
	face := core.FaceForDirection(point)

	var lattice [3]int
	last := float64(m.Dimension - 1)
	for axis := 0; axis < 3; axis++ {
		c := float64(point[axis]) / extent
		lattice[axis] = int(math.Round((c + 1) / 2 * last))
	}
	across, down := face.PlaneAxes()
	x, y := face.Orientation().MapPoint(lattice[across], lattice[down], m.Dimension, m.Dimension)
	return face, x, y, true
}

// Pick returns the province under a direction from the planet centre.
func (m *Map) Pick(point mgl32.Vec3) (int, bool) {
	face, x, y, ok := m.Locate(point)
	if !ok {
		return 0, false
	}
	return m.ProvinceAt(face, x, y)
}
