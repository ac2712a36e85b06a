package mesh

import (
	"errors"
	"image"
	"image/color"
	"math"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"redsands/internal/core"
)

func uniform(t *testing.T, w, h int, v uint8) *HeightMap {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	hm, err := NewHeightMap(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return hm
}

func TestNewHeightMapCopiesRedChannel(t *testing.T) {
	img := image.NewNRGBA(image.Rect(2, 3, 5, 5))
	img.Set(2, 3, color.NRGBA{R: 10, G: 200, B: 30, A: 255})
	img.Set(4, 4, color.NRGBA{R: 255, A: 255})
	hm, err := NewHeightMap(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hm.W != 3 || hm.H != 2 {
		t.Fatalf("expected 3x2, got %dx%d", hm.W, hm.H)
	}
	if got := hm.At(0, 0); got != 10 {
		t.Fatalf("expected red 10, got %d", got)
	}
	if got := hm.Sample(1, 1); got != 1 {
		t.Fatalf("expected full height at far corner, got %v", got)
	}
	img.Set(2, 3, color.NRGBA{R: 99, A: 255})
	if hm.At(0, 0) != 10 {
		t.Fatal("height map should not alias the source image")
	}
	if hm.At(-4, 100) != hm.At(0, 1) {
		t.Fatal("out of range coordinates should clamp")
	}
}

func TestNewHeightMapIgnoresAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 200, A: 0})
	img.Set(1, 0, color.NRGBA{R: 120, A: 64})
	hm, err := NewHeightMap(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hm.At(0, 0) != 200 || hm.At(1, 0) != 120 {
		t.Fatalf("expected raw red bytes 200 and 120, got %d and %d", hm.At(0, 0), hm.At(1, 0))
	}

	gray := image.NewGray16(image.Rect(0, 0, 1, 1))
	gray.SetGray16(0, 0, color.Gray16{Y: 0x8000})
	if hm, err := NewHeightMap(gray); err != nil || hm.At(0, 0) != 0x80 {
		t.Fatalf("16-bit gray: expected 128, got %v (err %v)", hm, err)
	}
}

func TestMissingElevation(t *testing.T) {
	if _, err := NewHeightMap(nil); !errors.Is(err, ErrMissingElevation) {
		t.Fatalf("nil image: expected ErrMissingElevation, got %v", err)
	}
	if _, err := NewHeightMap(image.NewGray(image.Rect(0, 0, 0, 0))); !errors.Is(err, ErrMissingElevation) {
		t.Fatalf("empty image: expected ErrMissingElevation, got %v", err)
	}
	if _, err := SpawnFace(core.FacePosX, 4, 1, 1, nil); !errors.Is(err, ErrMissingElevation) {
		t.Fatalf("nil height map: expected ErrMissingElevation, got %v", err)
	}
}

func TestSpawnFaceShape(t *testing.T) {
	m, err := SpawnFace(core.FaceNegZ, 5, 2, 3, uniform(t, 8, 8, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.VertexCount() != 25 {
		t.Fatalf("expected 25 vertices, got %d", m.VertexCount())
	}
	if m.TriangleCount() != 32 {
		t.Fatalf("expected 32 triangles, got %d", m.TriangleCount())
	}
	for _, idx := range m.Indices {
		if int(idx) >= m.VertexCount() {
			t.Fatalf("index %d out of range", idx)
		}
	}
	if m.UVs[24] != (mgl32.Vec2{3, 3}) {
		t.Fatalf("last uv should be scaled to (3,3), got %v", m.UVs[24])
	}
}

func TestFlatMeshLiesOnSphereAndIsClosed(t *testing.T) {
	const res = 10
	flat := uniform(t, 16, 16, 0)

	var meshes [core.FaceCount]*FaceMesh
	for _, face := range core.Faces {
		m, err := SpawnFace(face, res, 1, 1, flat)
		if err != nil {
			t.Fatalf("face %v: %v", face, err)
		}
		meshes[face] = m
		for i, p := range m.Positions {
			if d := p.Len(); math.Abs(float64(d-1)) > 1e-4 {
				t.Fatalf("face %v vertex %d at distance %v", face, i, d)
			}
			if l := m.Normals[i].Len(); math.Abs(float64(l-1)) > 1e-4 {
				t.Fatalf("face %v normal %d has length %v", face, i, l)
			}
		}
	}

	// Every edge vertex must coincide with a vertex of another face.
	for _, face := range core.Faces {
		m := meshes[face]
		for y := 0; y < res; y++ {
			for x := 0; x < res; x++ {
				if x != 0 && y != 0 && x != res-1 && y != res-1 {
					continue
				}
				p := m.Positions[x+y*res]
				if !sharedWithOtherFace(meshes, face, p) {
					t.Fatalf("face %v edge vertex (%d,%d) %v has no partner", face, x, y, p)
				}
			}
		}
	}
}

func sharedWithOtherFace(meshes [core.FaceCount]*FaceMesh, face core.Face, p mgl32.Vec3) bool {
	for _, other := range core.Faces {
		if other == face {
			continue
		}
		for _, q := range meshes[other].Positions {
			if p.ApproxEqualThreshold(q, 1e-5) {
				return true
			}
		}
	}
	return false
}

func TestNormalsPointOutwards(t *testing.T) {
	bumpy := image.NewGray(image.Rect(0, 0, 12, 12))
	for i := range bumpy.Pix {
		bumpy.Pix[i] = uint8(i * 37 % 256)
	}
	hm, err := NewHeightMap(bumpy)
	if err != nil {
		t.Fatal(err)
	}
	for _, face := range core.Faces {
		m, err := SpawnFace(face, 12, 4, 1, hm)
		if err != nil {
			t.Fatalf("face %v: %v", face, err)
		}
		for i, n := range m.Normals {
			if n.Dot(m.Positions[i]) <= 0 {
				t.Fatalf("face %v normal %d points inwards", face, i)
			}
		}
	}
}

func TestDisplacementIsMonotonic(t *testing.T) {
	levels := []uint8{0, 64, 128, 255}
	var prev *FaceMesh
	for _, level := range levels {
		m, err := SpawnFace(core.FacePosY, 6, 1, 1, uniform(t, 4, 4, level))
		if err != nil {
			t.Fatal(err)
		}
		want := 1 + float32(level)/255*HeightMapScale
		for i, p := range m.Positions {
			if math.Abs(float64(p.Len()-want)) > 1e-4 {
				t.Fatalf("level %d vertex %d at %v, expected %v", level, i, p.Len(), want)
			}
			if prev != nil && p.Len() <= prev.Positions[i].Len() {
				t.Fatalf("level %d vertex %d did not move outwards", level, i)
			}
		}
		prev = m
	}
}

func TestSpawnFaceIsIdempotent(t *testing.T) {
	hm := uniform(t, 9, 9, 77)
	a, err := SpawnFace(core.FaceNegX, 7, 1.5, 2, hm)
	if err != nil {
		t.Fatal(err)
	}
	b, err := SpawnFace(core.FaceNegX, 7, 1.5, 2, hm)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a.Positions, b.Positions) || !slices.Equal(a.Normals, b.Normals) ||
		!slices.Equal(a.UVs, b.UVs) || !slices.Equal(a.Indices, b.Indices) {
		t.Fatal("identical inputs produced different meshes")
	}
}

func TestSpawnLODs(t *testing.T) {
	hm := uniform(t, 4, 4, 10)
	meshes, err := SpawnLODs(core.FacePosZ, []int{2, 4, 8}, 1, 1, hm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []int{2, 4, 8} {
		if meshes[i].Resolution != want || meshes[i].VertexCount() != want*want {
			t.Fatalf("lod %d: resolution %d with %d vertices", i, meshes[i].Resolution, meshes[i].VertexCount())
		}
	}

	for _, radius := range []float32{0, -1, float32(math.NaN())} {
		if _, err := SpawnFace(core.FacePosZ, 4, radius, 1, hm); err == nil {
			t.Fatalf("radius %v: expected error", radius)
		}
	}

	bad := [][]int{nil, {}, {4, 4}, {8, 4}, {1, 4}}
	for _, lods := range bad {
		if _, err := SpawnLODs(core.FacePosZ, lods, 1, 1, hm); !errors.Is(err, ErrInvalidLODs) {
			t.Fatalf("lods %v: expected ErrInvalidLODs, got %v", lods, err)
		}
	}
}
