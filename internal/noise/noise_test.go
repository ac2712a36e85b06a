package noise

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestSampleDeterministic(t *testing.T) {
	fieldA := Default()
	fieldB := Default()
	rng := rand.New(rand.NewPCG(1337, 0))

	for i := 0; i < 1000; i++ {
		x := rng.Float64()*2000 - 1000
		y := rng.Float64()*2000 - 1000
		z := rng.Float64()*2000 - 1000

		a := fieldA.Sample3(x, y, z)
		b := fieldB.Sample3(x, y, z)
		if math.Float32bits(a) != math.Float32bits(b) {
			t.Fatalf("sample %d (%f,%f,%f): %v vs %v", i, x, y, z, a, b)
		}
		if again := fieldA.Sample3(x, y, z); math.Float32bits(again) != math.Float32bits(a) {
			t.Fatalf("sample %d repeated call differs: %v vs %v", i, again, a)
		}
		if a2, b2 := fieldA.Sample2(x, y), fieldB.Sample2(x, y); math.Float32bits(a2) != math.Float32bits(b2) {
			t.Fatalf("2d sample %d (%f,%f): %v vs %v", i, x, y, a2, b2)
		}
	}
}

func TestSampleBounds(t *testing.T) {
	field := Default()
	rng := rand.New(rand.NewPCG(42, 0))

	for i := 0; i < 10000; i++ {
		x := (rng.Float64()*2 - 1) * 1e4
		y := (rng.Float64()*2 - 1) * 1e4
		z := (rng.Float64()*2 - 1) * 1e4
		if v := field.Sample3(x, y, z); v < -1 || v > 1 || math.IsNaN(float64(v)) {
			t.Fatalf("Sample3(%f,%f,%f) = %v out of [-1,1]", x, y, z, v)
		}
		if v := field.Sample2(x, y); v < -1 || v > 1 || math.IsNaN(float64(v)) {
			t.Fatalf("Sample2(%f,%f) = %v out of [-1,1]", x, y, v)
		}
	}
}

func TestSampleIntegerLatticeInputs(t *testing.T) {
	field := New(8, DefaultBoost)
	for x := -3; x <= 3; x++ {
		for y := -3; y <= 3; y++ {
			v := field.Sample3(float64(x), float64(y), 5)
			if v < -1 || v > 1 {
				t.Fatalf("lattice sample (%d,%d,5) = %v", x, y, v)
			}
		}
	}
}

func TestGradientVanishesOnLatticePoints(t *testing.T) {
	for x := -2; x <= 2; x++ {
		for y := -2; y <= 2; y++ {
			if v := Gradient2(float64(x), float64(y)); v != 0 {
				t.Fatalf("Gradient2(%d,%d) = %f, expected 0", x, y, v)
			}
			if v := Gradient3(float64(x), float64(y), 1); v != 0 {
				t.Fatalf("Gradient3(%d,%d,1) = %f, expected 0", x, y, v)
			}
		}
	}
}

func TestGradientContinuous(t *testing.T) {
	const step = 1e-4
	rng := rand.New(rand.NewPCG(9, 9))
	for i := 0; i < 500; i++ {
		x := rng.Float64() * 50
		y := rng.Float64() * 50
		z := rng.Float64() * 50
		a := Gradient3(x, y, z)
		b := Gradient3(x+step, y, z)
		if math.Abs(a-b) > 0.01 {
			t.Fatalf("Gradient3 jumped %f between (%f,%f,%f) and +%g", math.Abs(a-b), x, y, z, step)
		}
	}
}

func TestRandomGradient3UnitLength(t *testing.T) {
	for x := int32(-20); x <= 20; x += 3 {
		for y := int32(-20); y <= 20; y += 5 {
			gx, gy, gz := randomGradient3(x, y, x^y)
			if l := math.Sqrt(gx*gx + gy*gy + gz*gz); math.Abs(l-1) > 1e-9 {
				t.Fatalf("gradient at (%d,%d) has length %f", x, y, l)
			}
		}
	}
}

func TestNaNInputPropagates(t *testing.T) {
	if v := Default().Sample3(math.NaN(), 0, 0); !math.IsNaN(float64(v)) {
		t.Fatalf("expected NaN for NaN input, got %v", v)
	}
}

func TestNewClampsOctaves(t *testing.T) {
	if f := New(0, 0); f.Octaves != DefaultOctaves || f.Boost != DefaultBoost {
		t.Fatalf("New(0,0) = %+v", f)
	}
	if f := New(100, 1); f.Octaves != MaxOctaves {
		t.Fatalf("New(100,1).Octaves = %d, expected %d", f.Octaves, MaxOctaves)
	}
}

func TestHashAngleScale(t *testing.T) {
	tests := []struct {
		h    uint32
		want float64
	}{
		{0, 0},
		{1 << 30, math.Pi / 2},
		{1 << 31, math.Pi},
		{3 << 30, 3 * math.Pi / 2},
	}
	for _, tt := range tests {
		if got := hashAngle(tt.h); got != tt.want {
			t.Fatalf("hashAngle(%#x) = %v, expected %v", tt.h, got, tt.want)
		}
	}
	if got := hashAngle(^uint32(0)); got >= 2*math.Pi {
		t.Fatalf("largest hash should stay below 2π, got %v", got)
	}
}
