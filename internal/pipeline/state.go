package pipeline

import "fmt"

// Phase is the coarse state of a generation run.
type Phase int

const (
	PhaseLoadingAssets Phase = iota
	PhaseGenerating
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoadingAssets:
		return "loading assets"
	case PhaseGenerating:
		return "generating"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Unit names a group of background tasks whose completion drives phase
// transitions.
type Unit int

const (
	UnitElevation Unit = iota
	UnitProvinces
	UnitBorders
	UnitMeshes
)

func (u Unit) String() string {
	switch u {
	case UnitElevation:
		return "elevation"
	case UnitProvinces:
		return "provinces"
	case UnitBorders:
		return "borders"
	case UnitMeshes:
		return "meshes"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// machine tracks completed units. Phases change only in complete and fail.
type machine struct {
	phase Phase
	done  map[Unit]bool
	err   error
}

func newMachine() machine {
	return machine{phase: PhaseLoadingAssets, done: make(map[Unit]bool)}
}

// complete records u as finished and returns true if the phase changed.
func (m *machine) complete(u Unit) bool {
	if m.phase == PhaseFailed || m.done[u] {
		return false
	}
	m.done[u] = true
	prev := m.phase
	switch u {
	case UnitElevation:
		if m.phase == PhaseLoadingAssets {
			m.phase = PhaseGenerating
		}
	case UnitMeshes, UnitBorders:
		if m.phase == PhaseGenerating && m.done[UnitMeshes] && m.done[UnitBorders] {
			m.phase = PhaseReady
		}
	}
	return m.phase != prev
}

func (m *machine) fail(u Unit, err error) {
	if m.phase == PhaseFailed || m.phase == PhaseReady {
		return
	}
	m.phase = PhaseFailed
	m.err = fmt.Errorf("%v: %w", u, err)
}
