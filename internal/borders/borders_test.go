package borders

import (
	"context"
	"errors"
	"math"
	"testing"

	"redsands/internal/core"
	"redsands/internal/noise"
	"redsands/internal/provinces"
)

// split returns a w×h grid whose left half is red and right half blue.
func split(w, h int) *core.ColorGrid {
	g := core.NewColorGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := core.Color{R: 100, G: 20, B: 20}
			if x >= w/2 {
				c = core.Color{R: 20, G: 20, B: 200}
			}
			g.Set(x, y, c)
		}
	}
	return g
}

func TestDetectMarksOnlyColorChanges(t *testing.T) {
	face := split(10, 6)
	overlay := Detect(face, DefaultOptions())

	for y := 0; y < face.H; y++ {
		for x := 0; x < face.W; x++ {
			got := overlay.At(x, y)
			onBoundary := x == 4 || x == 5
			if onBoundary && got.A != DefaultAlpha {
				t.Fatalf("pixel (%d,%d) expected alpha %d, got %d", x, y, DefaultAlpha, got.A)
			}
			if !onBoundary && got.A != 0 {
				t.Fatalf("pixel (%d,%d) should be transparent, got %v", x, y, got)
			}
		}
	}

	left := overlay.At(4, 0)
	if left.R != 150 || left.G != 30 || left.B != 30 {
		t.Fatalf("bloomed color incorrect: %v", left)
	}
	right := overlay.At(5, 0)
	if right.B != 255 {
		t.Fatalf("bloom should clamp at 255, got %d", right.B)
	}
}

func TestDetectOnGeneratedFacesMarksOnlyBoundaries(t *testing.T) {
	m, err := provinces.Generate(context.Background(), provinces.Options{
		Seeds:        12,
		Dimension:    40,
		Displacement: 6,
		Seed:         21,
		Sampler:      noise.New(4, noise.DefaultBoost),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	marked := 0
	for _, face := range core.Faces {
		grid := m.Faces[face]
		overlay := Detect(grid, DefaultOptions())
		for y := 0; y < grid.H; y++ {
			for x := 0; x < grid.W; x++ {
				a := overlay.At(x, y).A
				boundary := IsBoundary(grid, x, y)
				if a > 0 && !boundary {
					t.Fatalf("face %v: pixel (%d,%d) has alpha %d but is not a boundary", face, x, y, a)
				}
				if boundary && a != DefaultAlpha {
					t.Fatalf("face %v: boundary pixel (%d,%d) has alpha %d", face, x, y, a)
				}
				if a > 0 {
					marked++
				}
			}
		}
	}
	if marked == 0 {
		t.Fatal("expected some border pixels across twelve provinces")
	}
}

func TestDetectUniformFaceHasNoBorders(t *testing.T) {
	face := core.NewColorGrid(8, 8)
	for i := range face.Pixels() {
		face.Pixels()[i] = core.Color{R: 9, G: 9, B: 9}
	}
	overlay := Detect(face, DefaultOptions())
	for i, c := range overlay.Pixels() {
		if c.A != 0 {
			t.Fatalf("pixel %d unexpectedly marked: %v", i, c)
		}
	}
}

func TestKernelNormalised(t *testing.T) {
	tests := []struct {
		sigma    float64
		wantSize int
	}{
		{sigma: 0, wantSize: 1},
		{sigma: 0.65, wantSize: 5},
		{sigma: 1, wantSize: 7},
		{sigma: 2.5, wantSize: 17},
	}
	for _, tt := range tests {
		k := Kernel(tt.sigma)
		if len(k) != tt.wantSize {
			t.Fatalf("sigma %v: expected %d taps, got %d", tt.sigma, tt.wantSize, len(k))
		}
		sum := 0.0
		for i, w := range k {
			sum += w
			if w != k[len(k)-1-i] {
				t.Fatalf("sigma %v: kernel not symmetric", tt.sigma)
			}
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("sigma %v: kernel sums to %v", tt.sigma, sum)
		}
	}
}

func TestBlurSpreadsWithoutDarkening(t *testing.T) {
	src := core.NewOverlayGrid(9, 9)
	src.Pixels()[src.Index(4, 4)].R = 200
	src.Pixels()[src.Index(4, 4)].G = 100
	src.Pixels()[src.Index(4, 4)].B = 50
	src.Pixels()[src.Index(4, 4)].A = 255

	out := Blur(src, 1)
	centre := out.At(4, 4)
	neighbour := out.At(5, 4)
	if neighbour.A == 0 {
		t.Fatal("blur did not spread to the neighbour")
	}
	if centre.A <= neighbour.A {
		t.Fatalf("centre alpha %d should exceed neighbour %d", centre.A, neighbour.A)
	}
	for _, c := range []struct{ got, want uint8 }{{neighbour.R, 200}, {neighbour.G, 100}, {neighbour.B, 50}} {
		if int(c.got) < int(c.want)-1 || int(c.got) > int(c.want)+1 {
			t.Fatalf("premultiplied blur changed color: %v", neighbour)
		}
	}
	if out.At(0, 0).A != 0 {
		t.Fatalf("far corner should stay transparent, got %v", out.At(0, 0))
	}
}

func TestBlurZeroSigmaIsIdentity(t *testing.T) {
	src := Detect(split(6, 6), DefaultOptions())
	out := Blur(src, 0)
	for i := range src.Pixels() {
		if src.Pixels()[i] != out.Pixels()[i] {
			t.Fatalf("pixel %d changed: %v -> %v", i, src.Pixels()[i], out.Pixels()[i])
		}
	}
}

func TestExtractPreservesDimensions(t *testing.T) {
	faces := make([]*core.ColorGrid, core.FaceCount)
	for i := range faces {
		faces[i] = split(12+i, 7)
	}
	out, err := Extract(context.Background(), faces, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(faces) {
		t.Fatalf("expected %d overlays, got %d", len(faces), len(out))
	}
	for i, o := range out {
		if o.W != faces[i].W || o.H != faces[i].H {
			t.Fatalf("overlay %d is %dx%d, expected %dx%d", i, o.W, o.H, faces[i].W, faces[i].H)
		}
	}
}

func TestExtractRejectsMissingFace(t *testing.T) {
	faces := []*core.ColorGrid{split(4, 4), nil}
	if _, err := Extract(context.Background(), faces, DefaultOptions()); !errors.Is(err, ErrMissingFace) {
		t.Fatalf("expected ErrMissingFace, got %v", err)
	}
	opts := DefaultOptions()
	opts.Bloom = 0
	if _, err := Extract(context.Background(), []*core.ColorGrid{split(4, 4)}, opts); err == nil {
		t.Fatal("expected error for zero bloom")
	}
}
