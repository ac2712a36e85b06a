//go:build ebiten

package app

import (
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"redsands/internal/assets"
	"redsands/internal/config"
	"redsands/internal/core"
	"redsands/internal/pipeline"
	"redsands/internal/render"
	"redsands/internal/ui"
)

const hudWidth = 260

// Game adapts a planet generation run to the ebiten.Game interface. The
// orchestrator is polled once per Update; nothing in the frame loop blocks.
type Game struct {
	cfg    *config.Config
	source pipeline.ElevationSource
	orch   *pipeline.Orchestrator
	planet *pipeline.Planet

	painter *render.FacePainter
	layout  render.NetLayout
	hud     *ui.HUD
	overlay *ui.Overlay

	hover *ui.Hover
	dirty bool
}

// New constructs a Game around a started orchestrator.
func New(cfg *config.Config, source pipeline.ElevationSource, orch *pipeline.Orchestrator) *Game {
	return &Game{
		cfg:     cfg,
		source:  source,
		orch:    orch,
		painter: render.NewFacePainter(cfg.MapDimensions),
		layout:  render.NetLayout{Cell: CellSize(cfg.MapDimensions, cfg.Window.Scale)},
		hud:     ui.NewHUD("redsands", hudWidth),
		overlay: ui.NewOverlay(),
	}
}

// Reset discards the current planet and starts a new run with seed. It is
// ignored while a run is in progress since units cannot be cancelled. Units
// still running after a failure are released, not awaited.
func (g *Game) Reset(seed int64) {
	if g.planet == nil && g.orch.Phase() != pipeline.PhaseFailed {
		return
	}
	g.cfg.Seed = seed
	orch, err := pipeline.Start(g.source, pipeline.FromConfig(g.cfg))
	if err != nil {
		log.Printf("restart: %v", err)
		return
	}
	g.orch.Release()
	g.orch = orch
	g.planet = nil
	g.hover = nil
}

// Update handles per-frame logic and advances the generation run.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.cfg.Seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	if g.planet == nil && g.orch.Poll() == pipeline.PhaseReady {
		if planet, ok := g.orch.Take(); ok {
			g.planet = planet
			g.dirty = true
			g.saveDebugImages()
		}
	}

	g.overlay.Update()
	if g.overlay.Changed() {
		g.dirty = true
	}
	g.updateHover()
	if g.dirty && g.planet != nil {
		g.composite()
		g.dirty = false
	}

	progress := g.orch.Progress()
	status := ui.Status{
		Phase:   g.orch.Phase().String(),
		Done:    progress.Done,
		Total:   progress.Total,
		Err:     g.orch.Err(),
		Params:  g.cfg.Parameters(),
		Hover:   g.hover,
		Toggles: g.overlay.Toggles,
	}
	if g.planet != nil {
		status.Provinces = g.planet.ProvinceCount()
	}
	g.hud.Update(status)
	return nil
}

func (g *Game) updateHover() {
	if g.planet == nil {
		return
	}
	var next *ui.Hover
	mx, my := ebiten.CursorPosition()
	if face, u, v, ok := g.layout.FaceAt(mx, my); ok {
		dim := g.planet.Map.Dimension
		x, y := int(u*float64(dim)), int(v*float64(dim))
		if id, ok := g.planet.Map.ProvinceAt(face, x, y); ok {
			next = &ui.Hover{Face: face, X: x, Y: y, Province: id, Color: g.planet.Map.Seeds[id].Color}
		}
	}
	if !sameProvince(g.hover, next) && g.overlay.Toggles.Highlight {
		g.dirty = true
	}
	g.hover = next
}

func sameProvince(a, b *ui.Hover) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Province == b.Province
}

// composite rebuilds every face image from the current toggles.
func (g *Game) composite() {
	m := g.planet.Map
	for _, face := range core.Faces {
		buf := g.painter.Buffer(face)
		if g.overlay.Toggles.Elevation {
			render.FillElevationRGBA(buf, g.planet.Elevation[face], m.Dimension, m.Dimension)
		} else {
			render.FillFaceRGBA(buf, m.Faces[face])
		}
		if g.overlay.Toggles.Borders && face < core.Face(len(g.planet.Borders)) {
			render.BlendOverlayRGBA(buf, g.planet.Borders[face])
		}
		if g.overlay.Toggles.Highlight && g.hover != nil {
			render.HighlightRGBA(buf, m.Faces[face], g.hover.Color, 0.35)
		}
		g.painter.Upload(face)
	}
}

func (g *Game) saveDebugImages() {
	if g.cfg.Assets.SaveDir == "" {
		return
	}
	paths, err := assets.DumpFaces(g.cfg.Assets.SaveDir, g.planet.Map.Faces[:], g.planet.Borders)
	if err != nil {
		log.Printf("save faces: %v", err)
		return
	}
	log.Printf("saved %d images to %s", len(paths), g.cfg.Assets.SaveDir)
}

// Draw renders the cube net and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 12, A: 255})
	netW, netH := g.layout.Size()
	if g.planet != nil {
		g.painter.Draw(screen, g.layout)
		if h := g.hover; h != nil {
			ox, oy := g.layout.Origin(h.Face)
			span := float64(g.layout.Cell) / float64(g.planet.Map.Dimension)
			g.overlay.DrawMarker(screen, float64(ox)+float64(h.X)*span, float64(oy)+float64(h.Y)*span, span)
		}
	}
	g.hud.Draw(screen, netW, netH)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.layout.Size()
	return w + hudWidth, h
}
