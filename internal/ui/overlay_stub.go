//go:build !ebiten

package ui

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct {
	Toggles Toggles
}

// NewOverlay constructs a stub overlay.
func NewOverlay() *Overlay { return &Overlay{Toggles: DefaultToggles()} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Changed always reports false in headless builds.
func (o *Overlay) Changed() bool { return false }

// DrawMarker is a no-op placeholder.
func (o *Overlay) DrawMarker(any, float64, float64, float64) {}
