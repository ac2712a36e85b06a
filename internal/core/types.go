package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Size describes the dimensions of a face image.
type Size struct {
	W int
	H int
}

// Face enumerates the six cube directions a planet is built from.
type Face uint8

const (
	FacePosY Face = iota
	FaceNegY
	FaceNegX
	FacePosX
	FacePosZ
	FaceNegZ
)

// FaceCount is the number of cube faces.
const FaceCount = 6

// Faces lists every face in generation order.
var Faces = [FaceCount]Face{FacePosY, FaceNegY, FaceNegX, FacePosX, FacePosZ, FaceNegZ}

var faceNames = [FaceCount]string{"+y", "-y", "-x", "+x", "+z", "-z"}

var faceNormals = [FaceCount]mgl32.Vec3{
	{0, 1, 0},
	{0, -1, 0},
	{-1, 0, 0},
	{1, 0, 0},
	{0, 0, 1},
	{0, 0, -1},
}

// faceAxes records which lattice axis is held fixed for each face, whether it
// sits at the far end of the lattice, and which two axes span the face image.
var faceAxes = [FaceCount]struct {
	fixed  int
	far    bool
	across int
	down   int
}{
	FacePosY: {fixed: 1, far: true, across: 0, down: 2},
	FaceNegY: {fixed: 1, far: false, across: 0, down: 2},
	FaceNegX: {fixed: 0, far: false, across: 1, down: 2},
	FacePosX: {fixed: 0, far: true, across: 1, down: 2},
	FacePosZ: {fixed: 2, far: true, across: 0, down: 1},
	FaceNegZ: {fixed: 2, far: false, across: 0, down: 1},
}

// Valid reports whether f names one of the six faces.
func (f Face) Valid() bool { return int(f) < FaceCount }

// String returns the short signed-axis label, e.g. "+y".
func (f Face) String() string {
	if !f.Valid() {
		return fmt.Sprintf("face(%d)", uint8(f))
	}
	return faceNames[f]
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() mgl32.Vec3 { return faceNormals[f] }

// Orientation returns the flips and quarter turns applied to the face image
// after rasterization.
func (f Face) Orientation() Orientation { return faceOrientations[f] }

// Lattice maps face pixel (x, y) onto the cube lattice of the given dimension.
func (f Face) Lattice(x, y, dimension int) [3]int {
	axes := faceAxes[f]
	var p [3]int
	if axes.far {
		p[axes.fixed] = dimension - 1
	}
	p[axes.across] = x
	p[axes.down] = y
	return p
}

// PlaneAxes returns the lattice axes spanning the face image (across, down).
func (f Face) PlaneAxes() (int, int) {
	axes := faceAxes[f]
	return axes.across, axes.down
}

// ParseFace resolves a label such as "+x" or "-z".
func ParseFace(s string) (Face, error) {
	for i, name := range faceNames {
		if name == s {
			return Face(i), nil
		}
	}
	return 0, fmt.Errorf("unknown face %q", s)
}

// FaceForDirection returns the face whose normal is closest to dir.
func FaceForDirection(dir mgl32.Vec3) Face {
	best := FacePosY
	bestDot := float32(-2)
	n := dir.Normalize()
	for _, f := range Faces {
		if d := n.Dot(f.Normal()); d > bestDot {
			best, bestDot = f, d
		}
	}
	return best
}

// TangentAxes returns the two unit vectors spanning the face, derived from
// the normal by swizzling (y, z, x) and taking the cross product. Walking
// axisA then axisB from the normal keeps triangle winding outward.
func (f Face) TangentAxes() (mgl32.Vec3, mgl32.Vec3) {
	up := f.Normal()
	axisA := mgl32.Vec3{up.Y(), up.Z(), up.X()}
	return axisA, up.Cross(axisA)
}

// CubePoint returns the point on the unit cube surface at face UV (u, v),
// both in [0,1].
func (f Face) CubePoint(u, v float32) mgl32.Vec3 {
	axisA, axisB := f.TangentAxes()
	return f.Normal().Add(axisA.Mul((u - 0.5) * 2)).Add(axisB.Mul((v - 0.5) * 2))
}
