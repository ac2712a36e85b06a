package core

// OrientOp is a single flip or quarter turn applied to a square face image.
type OrientOp uint8

const (
	// FlipHorizontal mirrors the image left to right.
	FlipHorizontal OrientOp = iota
	// Rotate90 turns the image a quarter clockwise.
	Rotate90
	// Rotate270 turns the image a quarter counter-clockwise.
	Rotate270
	// FlipVertical mirrors the image top to bottom.
	FlipVertical
)

// Orientation is an ordered list of ops.
type Orientation []OrientOp

// faceOrientations takes a face image from lattice layout (Lattice, PlaneAxes)
// to mesh UV layout: oriented pixel (x, y) of a d*d image covers
// CubePoint(x/(d-1), y/(d-1)).
var faceOrientations = [FaceCount]Orientation{
	FacePosY: {FlipVertical},
	FaceNegY: {Rotate90, Rotate90},
	FaceNegX: {FlipHorizontal, Rotate90},
	FacePosX: {Rotate270},
	FacePosZ: {Rotate270},
	FaceNegZ: {FlipHorizontal, Rotate90},
}

// MapPoint returns where pixel (x, y) of a w*h image ends up after op.
func (op OrientOp) MapPoint(x, y, w, h int) (int, int) {
	switch op {
	case FlipHorizontal:
		return w - 1 - x, y
	case FlipVertical:
		return x, h - 1 - y
	case Rotate90:
		return h - 1 - y, x
	case Rotate270:
		return y, w - 1 - x
	default:
		return x, y
	}
}

// Apply returns a new grid with op applied to src.
func (op OrientOp) Apply(src *ColorGrid) *ColorGrid {
	w, h := src.W, src.H
	dw, dh := w, h
	if op == Rotate90 || op == Rotate270 {
		dw, dh = h, w
	}
	dst := NewColorGrid(dw, dh)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nx, ny := op.MapPoint(x, y, w, h)
			dst.data[dst.Index(nx, ny)] = src.data[src.Index(x, y)]
		}
	}
	return dst
}

// Apply runs every op in order and returns the transformed grid. The input is
// never modified.
func (o Orientation) Apply(src *ColorGrid) *ColorGrid {
	out := src
	for _, op := range o {
		out = op.Apply(out)
	}
	if out == src {
		out = src.Clone()
	}
	return out
}

// MapPoint follows pixel (x, y) of a w*h image through every op.
func (o Orientation) MapPoint(x, y, w, h int) (int, int) {
	for _, op := range o {
		x, y = op.MapPoint(x, y, w, h)
		if op == Rotate90 || op == Rotate270 {
			w, h = h, w
		}
	}
	return x, y
}
