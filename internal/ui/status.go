package ui

import (
	"fmt"
	"strings"

	"redsands/internal/core"
)

// Hover describes the province under the cursor.
type Hover struct {
	Face     core.Face
	X, Y     int
	Province int
	Color    core.Color
}

// Status is everything the HUD shows for one frame.
type Status struct {
	Phase     string
	Done      int
	Total     int
	Err       error
	Provinces int
	Params    core.ParameterSnapshot
	Hover     *Hover
	Toggles   Toggles
}

// Lines renders the status as HUD text rows.
func (s Status) Lines() []string {
	lines := []string{"Phase: " + s.Phase}
	if s.Total > 0 {
		lines = append(lines, fmt.Sprintf("%s %d/%d", ProgressBar(s.Done, s.Total, 16), s.Done, s.Total))
	}
	if s.Err != nil {
		lines = append(lines, "Error: "+s.Err.Error())
	}
	if s.Provinces > 0 {
		lines = append(lines, fmt.Sprintf("Provinces: %d", s.Provinces))
	}
	if h := s.Hover; h != nil {
		lines = append(lines,
			fmt.Sprintf("Province #%d", h.Province),
			fmt.Sprintf("  face %v (%d,%d)", h.Face, h.X, h.Y),
			fmt.Sprintf("  color #%02x%02x%02x", h.Color.R, h.Color.G, h.Color.B),
		)
	}
	for _, g := range s.Params.Groups {
		lines = append(lines, "", g.Name)
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf("  %s: %s", p.Label, p.Value))
		}
	}
	lines = append(lines, "", s.Toggles.Legend())
	return lines
}

// ProgressBar draws a fixed-width text bar such as "[####....]".
func ProgressBar(done, total, width int) string {
	if width <= 0 {
		return "[]"
	}
	filled := 0
	if total > 0 {
		filled = min(max(done*width/total, 0), width)
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// Toggles are the view switches bound to the number keys.
type Toggles struct {
	Borders   bool
	Elevation bool
	Highlight bool
}

// DefaultToggles shows borders and hover highlighting.
func DefaultToggles() Toggles {
	return Toggles{Borders: true, Highlight: true}
}

// Flip toggles switch n (1-based) and reports whether n was valid.
func (t *Toggles) Flip(n int) bool {
	switch n {
	case 1:
		t.Borders = !t.Borders
	case 2:
		t.Elevation = !t.Elevation
	case 3:
		t.Highlight = !t.Highlight
	default:
		return false
	}
	return true
}

// Legend lists the key bindings and their state.
func (t Toggles) Legend() string {
	return fmt.Sprintf("1 borders %s  2 elevation %s  3 highlight %s", onOff(t.Borders), onOff(t.Elevation), onOff(t.Highlight))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
