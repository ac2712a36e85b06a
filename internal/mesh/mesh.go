// Package mesh tessellates cube faces into displaced sphere patches.
package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"redsands/internal/core"
)

// HeightMapScale is the radial distance a full-white elevation pixel adds.
const HeightMapScale = 0.25

// MinResolution is the smallest vertex count per side.
const MinResolution = 2

// FaceMesh is one tessellated cube face.
type FaceMesh struct {
	Face       core.Face
	Resolution int
	Positions  []mgl32.Vec3
	Normals    []mgl32.Vec3
	UVs        []mgl32.Vec2
	Indices    []uint32
}

// VertexCount returns the number of vertices in the mesh.
func (m *FaceMesh) VertexCount() int { return len(m.Positions) }

// TriangleCount returns the number of triangles in the mesh.
func (m *FaceMesh) TriangleCount() int { return len(m.Indices) / 3 }

// SpawnFace builds a resolution×resolution vertex grid over face, projects it
// onto a sphere of the given radius and pushes each vertex outwards by the
// elevation sampled at its face UV.
func SpawnFace(face core.Face, resolution int, radius, uvScale float32, elevation *HeightMap) (*FaceMesh, error) {
	if !face.Valid() {
		return nil, fmt.Errorf("invalid face %d", face)
	}
	if resolution < MinResolution {
		return nil, fmt.Errorf("resolution %d must be at least %d", resolution, MinResolution)
	}
	if !(radius > 0) {
		return nil, fmt.Errorf("radius %f must be positive", radius)
	}
	if elevation.empty() {
		return nil, fmt.Errorf("face %v: %w", face, ErrMissingElevation)
	}

	n := resolution * resolution
	m := &FaceMesh{
		Face:       face,
		Resolution: resolution,
		Positions:  make([]mgl32.Vec3, n),
		Normals:    make([]mgl32.Vec3, n),
		UVs:        make([]mgl32.Vec2, n),
		Indices:    make([]uint32, 0, (resolution-1)*(resolution-1)*6),
	}
	sphereNormals := make([]mgl32.Vec3, n)

	step := 1 / float32(resolution-1)
	for y := 0; y < resolution; y++ {
		for x := 0; x < resolution; x++ {
			i := x + y*resolution
			px, py := float32(x)*step, float32(y)*step

			dir := face.CubePoint(px, py).Normalize()
			height := elevation.Sample(px, py)

			sphereNormals[i] = dir
			m.Positions[i] = dir.Mul(radius + height*HeightMapScale)
			m.UVs[i] = mgl32.Vec2{px * uvScale, py * uvScale}

			if x != resolution-1 && y != resolution-1 {
				r := uint32(resolution)
				u := uint32(i)
				m.Indices = append(m.Indices, u, u+r+1, u+r, u, u+1, u+r+1)
			}
		}
	}

	recomputeNormals(m, sphereNormals)
	return m, nil
}

// recomputeNormals averages face normals into vertex normals. Vertices that
// touch only degenerate triangles keep their sphere normal.
func recomputeNormals(m *FaceMesh, fallback []mgl32.Vec3) {
	acc := make([]mgl32.Vec3, len(m.Positions))
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		e1 := m.Positions[b].Sub(m.Positions[a])
		e2 := m.Positions[c].Sub(m.Positions[a])
		n := e1.Cross(e2)
		if n.Len() == 0 {
			continue
		}
		n = n.Normalize()
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	for i, n := range acc {
		if n.Len() == 0 {
			m.Normals[i] = fallback[i]
			continue
		}
		m.Normals[i] = n.Normalize()
	}
}
