//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the status panel to the right of the cube net.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int
	status     Status
	title      string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD with the given panel width.
func NewHUD(title string, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{width: width, title: title}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if h.title == "" {
		h.title = "Planet"
	}
	return h
}

// Update stores the status shown on the next Draw.
func (h *HUD) Update(status Status) {
	if h == nil {
		return
	}
	h.status = status
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawStatus()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawStatus() {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})

	if h.status.Total > 0 && h.status.Done < h.status.Total {
		y += 10
		h.drawBar(panelPadding, y, h.width-2*panelPadding, 8, float64(h.status.Done)/float64(h.status.Total))
		y += 8
	}

	body := color.RGBA{R: 220, G: 220, B: 230, A: 255}
	if h.status.Err != nil {
		body = color.RGBA{R: 240, G: 120, B: 110, A: 255}
	}
	for _, line := range h.status.Lines() {
		y += lineHeight
		if y > h.lastHeight-panelPadding {
			return
		}
		text.Draw(h.panel, line, face, panelPadding, y, body)
	}
}

func (h *HUD) drawBar(x, y, w, ht int, frac float64) {
	if h.pixel == nil || w <= 0 {
		return
	}
	fill := func(px, width float64, c color.RGBA) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(width, float64(ht))
		op.GeoM.Translate(px, float64(y))
		op.ColorM.Scale(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, float64(c.A)/255.0)
		h.panel.DrawImage(h.pixel, op)
	}
	fill(float64(x), float64(w), color.RGBA{R: 54, G: 56, B: 64, A: 255})
	fill(float64(x), float64(w)*frac, color.RGBA{R: 200, G: 110, B: 70, A: 255})
}

const (
	panelPadding   = 12
	lineHeight     = 15
	headerBaseline = 18
)
