package render

import "redsands/internal/core"

// netCells places the faces on a 4×3 cross-shaped cube net.
var netCells = [core.FaceCount][2]int{
	core.FacePosY: {1, 0},
	core.FaceNegX: {0, 1},
	core.FacePosZ: {1, 1},
	core.FacePosX: {2, 1},
	core.FaceNegZ: {3, 1},
	core.FaceNegY: {1, 2},
}

// NetLayout positions face images of Cell×Cell screen pixels on a cube net.
type NetLayout struct {
	Cell int
}

// Size returns the screen size of the whole net.
func (l NetLayout) Size() (int, int) { return 4 * l.Cell, 3 * l.Cell }

// Origin returns the top-left screen position of face.
func (l NetLayout) Origin(face core.Face) (int, int) {
	c := netCells[face]
	return c[0] * l.Cell, c[1] * l.Cell
}

// FaceAt resolves a screen position to a face and a UV in [0,1).
func (l NetLayout) FaceAt(sx, sy int) (core.Face, float64, float64, bool) {
	if l.Cell <= 0 || sx < 0 || sy < 0 {
		return 0, 0, 0, false
	}
	col, row := sx/l.Cell, sy/l.Cell
	for _, face := range core.Faces {
		c := netCells[face]
		if c[0] == col && c[1] == row {
			u := float64(sx-col*l.Cell) / float64(l.Cell)
			v := float64(sy-row*l.Cell) / float64(l.Cell)
			return face, u, v, true
		}
	}
	return 0, 0, 0, false
}
