package assets

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"redsands/internal/core"
)

func TestDirLoadsPNGAndBMP(t *testing.T) {
	dir := t.TempDir()

	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	gray.SetGray(1, 1, color.Gray{Y: 200})
	if err := WritePNG(filepath.Join(dir, FileStem(core.FacePosY)+".png"), gray); err != nil {
		t.Fatalf("write png: %v", err)
	}

	f, err := os.Create(filepath.Join(dir, FileStem(core.FaceNegZ)+".bmp"))
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
	f.Close()

	src := Dir{Path: dir}
	img, err := src.Load(core.FacePosY)
	if err != nil {
		t.Fatalf("load png: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if r, _, _, _ := img.At(1, 1).RGBA(); r>>8 != 200 {
		t.Fatalf("expected red 200, got %d", r>>8)
	}

	img, err = src.Load(core.FaceNegZ)
	if err != nil {
		t.Fatalf("load bmp: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Fatalf("unexpected bmp bounds %v", img.Bounds())
	}

	if _, err := src.Load(core.FacePosX); !errors.Is(err, ErrElevationNotFound) {
		t.Fatalf("expected ErrElevationNotFound, got %v", err)
	}
}

func TestDirRejectsCorruptImage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileStem(core.FaceNegX)+".png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (Dir{Path: dir}).Load(core.FaceNegX); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSyntheticIsDeterministic(t *testing.T) {
	a, err := NewSynthetic(16, 7).Load(core.FacePosZ)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSynthetic(16, 7).Load(core.FacePosZ)
	if err != nil {
		t.Fatal(err)
	}
	ga, gb := a.(*image.Gray), b.(*image.Gray)
	for i := range ga.Pix {
		if ga.Pix[i] != gb.Pix[i] {
			t.Fatalf("pixel %d differs between identical sources", i)
		}
	}
}

func TestSyntheticEdgesAgree(t *testing.T) {
	const size = 12
	src := NewSynthetic(size, 3)
	last := float32(size - 1)

	type sample struct {
		face core.Face
		dir  [3]float32
		v    uint8
	}
	var edges []sample
	for _, face := range core.Faces {
		img, err := src.Load(face)
		if err != nil {
			t.Fatalf("face %v: %v", face, err)
		}
		g := img.(*image.Gray)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				if x != 0 && y != 0 && x != size-1 && y != size-1 {
					continue
				}
				d := face.CubePoint(float32(x)/last, float32(y)/last).Normalize()
				edges = append(edges, sample{face: face, dir: d, v: g.GrayAt(x, y).Y})
			}
		}
	}

	for _, a := range edges {
		for _, b := range edges {
			if a.face == b.face {
				continue
			}
			same := true
			for k := 0; k < 3; k++ {
				if diff := a.dir[k] - b.dir[k]; diff > 1e-5 || diff < -1e-5 {
					same = false
				}
			}
			if !same {
				continue
			}
			if diff := int(a.v) - int(b.v); diff > 1 || diff < -1 {
				t.Fatalf("faces %v and %v disagree at %v: %d vs %d", a.face, b.face, a.dir, a.v, b.v)
			}
		}
	}
}

func TestDumpFaces(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "saves")
	faces := []*core.ColorGrid{core.NewColorGrid(4, 4), nil, core.NewColorGrid(2, 2)}
	overlays := []*core.OverlayGrid{core.NewOverlayGrid(4, 4)}

	paths, err := DumpFaces(dir, faces, overlays)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	want := []string{
		filepath.Join(dir, "cube_face_0.png"),
		filepath.Join(dir, "cube_face_2.png"),
		filepath.Join(dir, "borders_0.png"),
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d files, got %v", len(want), paths)
	}
	for i, p := range want {
		if paths[i] != p {
			t.Fatalf("path %d: expected %s, got %s", i, p, paths[i])
		}
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("missing %s: %v", p, err)
		}
	}
}
