//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"redsands/internal/core"
)

// FacePainter keeps one GPU image per cube face and draws them on a net.
type FacePainter struct {
	dim    int
	images [core.FaceCount]*ebiten.Image
	bufs   [core.FaceCount][]byte
}

// NewFacePainter allocates images for dim×dim faces.
func NewFacePainter(dim int) *FacePainter {
	p := &FacePainter{dim: dim}
	for _, face := range core.Faces {
		p.images[face] = ebiten.NewImage(dim, dim)
		p.bufs[face] = make([]byte, 4*dim*dim)
	}
	return p
}

// Buffer returns the RGBA staging buffer of face.
func (p *FacePainter) Buffer(face core.Face) []byte { return p.bufs[face] }

// Upload pushes the staging buffer of face to its image.
func (p *FacePainter) Upload(face core.Face) {
	p.images[face].ReplacePixels(p.bufs[face])
}

// Draw renders every face at its net position.
func (p *FacePainter) Draw(screen *ebiten.Image, layout NetLayout) {
	scale := float64(layout.Cell) / float64(p.dim)
	for _, face := range core.Faces {
		x, y := layout.Origin(face)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(float64(x), float64(y))
		screen.DrawImage(p.images[face], op)
	}
}
