// Package pipeline runs planet generation as background units on a worker
// pool and exposes their progress through a non-blocking Poll.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/alitto/pond/v2"

	"redsands/internal/borders"
	"redsands/internal/config"
	"redsands/internal/core"
	"redsands/internal/mesh"
	"redsands/internal/provinces"
)

// ElevationSource provides the elevation image of one face. Implementations
// must be safe for concurrent use.
type ElevationSource interface {
	Load(face core.Face) (image.Image, error)
}

// Settings is everything a run needs besides its elevation source.
type Settings struct {
	Provinces provinces.Options
	Borders   borders.Options
	LODs      []int
	Radius    float32
	UVScale   float32
	// Workers bounds the pool. Zero means unbounded.
	Workers int
	Verbose bool
}

// FromConfig builds run settings from an engine config.
func FromConfig(cfg *config.Config) Settings {
	return Settings{
		Provinces: cfg.ProvinceOptions(),
		Borders:   cfg.BorderOptions(),
		LODs:      append([]int(nil), cfg.PlanetLODs...),
		Radius:    float32(cfg.Radius),
		UVScale:   float32(cfg.UVScale),
		Workers:   cfg.Workers,
		Verbose:   cfg.Logging.Verbose,
	}
}

// Planet is the complete result of a run.
type Planet struct {
	Map       *provinces.Map
	Borders   []*core.OverlayGrid
	Meshes    [core.FaceCount][]*mesh.FaceMesh
	Elevation [core.FaceCount]*mesh.HeightMap
}

// ProvinceCount returns the number of provinces on the planet.
func (p *Planet) ProvinceCount() int {
	if p == nil || p.Map == nil {
		return 0
	}
	return p.Map.ProvinceCount()
}

// Progress counts finished background tasks.
type Progress struct {
	Done  int
	Total int
}

// Orchestrator owns the background units of one generation run. It is not
// safe for concurrent use; call Poll from a single loop such as a frame
// update.
type Orchestrator struct {
	settings Settings
	source   ElevationSource
	pool     pond.Pool
	state    machine
	started  time.Time

	elevation [core.FaceCount]*Task[*mesh.HeightMap]
	meshes    [core.FaceCount]*Task[[]*mesh.FaceMesh]
	partition *Task[*provinces.Map]
	borders   *Task[[]*core.OverlayGrid]

	elevationLeft int
	meshesLeft    int
	finished      int

	planet *Planet
	taken  bool
}

// unitTasks is the number of tasks in a full run: six elevation loads, one
// partition, one border extraction and six mesh units.
const unitTasks = core.FaceCount*2 + 2

// Start validates settings and submits the units that have no dependencies:
// the six elevation loads and the province partition.
func Start(source ElevationSource, settings Settings) (*Orchestrator, error) {
	if source == nil {
		return nil, fmt.Errorf("elevation source is required")
	}
	if err := mesh.ValidateLODs(settings.LODs); err != nil {
		return nil, err
	}
	if !(settings.Radius > 0) {
		return nil, fmt.Errorf("radius %f must be positive", settings.Radius)
	}
	if settings.Workers < 0 {
		return nil, fmt.Errorf("workers cannot be negative")
	}

	o := &Orchestrator{
		settings:      settings,
		source:        source,
		pool:          pond.NewPool(settings.Workers),
		state:         newMachine(),
		started:       time.Now(),
		elevationLeft: core.FaceCount,
		meshesLeft:    core.FaceCount,
		planet:        &Planet{},
	}
	for _, face := range core.Faces {
		face := face
		o.elevation[face] = Submit(o.pool, func() (*mesh.HeightMap, error) {
			img, err := source.Load(face)
			if err != nil {
				return nil, fmt.Errorf("face %v: %w", face, err)
			}
			hm, err := mesh.NewHeightMap(img)
			if err != nil {
				return nil, fmt.Errorf("face %v: %w", face, err)
			}
			return hm, nil
		})
	}
	opts := settings.Provinces
	o.partition = Submit(o.pool, func() (*provinces.Map, error) {
		return provinces.Generate(context.Background(), opts)
	})
	o.logf("started: %d workers, %d lods", settings.Workers, len(settings.LODs))
	return o, nil
}

// Poll collects finished units, starts the units that depended on them and
// returns the current phase. It never blocks.
func (o *Orchestrator) Poll() Phase {
	if o.state.phase == PhaseReady || o.state.phase == PhaseFailed {
		return o.state.phase
	}

	for _, face := range core.Faces {
		t := o.elevation[face]
		if t == nil {
			continue
		}
		hm, done, err := t.Poll()
		if !done {
			continue
		}
		o.elevation[face] = nil
		o.finished++
		if err != nil {
			return o.failed(UnitElevation, err)
		}
		o.planet.Elevation[face] = hm
		o.startMeshes(face, hm)
		if o.elevationLeft--; o.elevationLeft == 0 {
			o.completed(UnitElevation)
		}
	}

	if o.partition != nil {
		if m, done, err := o.partition.Poll(); done {
			o.partition = nil
			o.finished++
			if err != nil {
				return o.failed(UnitProvinces, err)
			}
			o.planet.Map = m
			o.completed(UnitProvinces)
			o.startBorders(m)
		}
	}

	if o.borders != nil {
		if overlays, done, err := o.borders.Poll(); done {
			o.borders = nil
			o.finished++
			if err != nil {
				return o.failed(UnitBorders, err)
			}
			o.planet.Borders = overlays
			o.completed(UnitBorders)
		}
	}

	for _, face := range core.Faces {
		t := o.meshes[face]
		if t == nil {
			continue
		}
		lods, done, err := t.Poll()
		if !done {
			continue
		}
		o.meshes[face] = nil
		o.finished++
		if err != nil {
			return o.failed(UnitMeshes, err)
		}
		o.planet.Meshes[face] = lods
		if o.meshesLeft--; o.meshesLeft == 0 {
			o.completed(UnitMeshes)
		}
	}
	return o.state.phase
}

func (o *Orchestrator) startMeshes(face core.Face, hm *mesh.HeightMap) {
	lods := append([]int(nil), o.settings.LODs...)
	radius, uvScale := o.settings.Radius, o.settings.UVScale
	o.meshes[face] = Submit(o.pool, func() ([]*mesh.FaceMesh, error) {
		return mesh.SpawnLODs(face, lods, radius, uvScale, hm)
	})
}

func (o *Orchestrator) startBorders(m *provinces.Map) {
	faces := append([]*core.ColorGrid(nil), m.Faces[:]...)
	opts := o.settings.Borders
	o.borders = Submit(o.pool, func() ([]*core.OverlayGrid, error) {
		return borders.Extract(context.Background(), faces, opts)
	})
}

func (o *Orchestrator) completed(u Unit) {
	o.logf("%v done after %s", u, time.Since(o.started).Round(time.Millisecond))
	if o.state.complete(u) {
		o.logf("phase -> %v", o.state.phase)
	}
}

func (o *Orchestrator) failed(u Unit, err error) Phase {
	o.state.fail(u, err)
	log.Printf("pipeline: %v", o.state.err)
	return o.state.phase
}

func (o *Orchestrator) logf(format string, args ...any) {
	if o.settings.Verbose {
		log.Printf("pipeline: "+format, args...)
	}
}

// Phase returns the phase observed by the last Poll.
func (o *Orchestrator) Phase() Phase { return o.state.phase }

// Err returns the failure that moved the run to PhaseFailed.
func (o *Orchestrator) Err() error { return o.state.err }

// Progress reports how many background tasks have been collected.
func (o *Orchestrator) Progress() Progress {
	return Progress{Done: o.finished, Total: unitTasks}
}

// Settings returns the settings the run was started with.
func (o *Orchestrator) Settings() Settings { return o.settings }

// Result returns the planet once the run is ready and has not been taken.
func (o *Orchestrator) Result() (*Planet, bool) {
	if o.state.phase != PhaseReady || o.taken {
		return nil, false
	}
	return o.planet, true
}

// Take hands the planet over to the caller. It succeeds at most once.
func (o *Orchestrator) Take() (*Planet, bool) {
	p, ok := o.Result()
	if ok {
		o.taken = true
		o.planet = nil
	}
	return p, ok
}

// Wait polls at tps until the run is ready or failed. It is meant for
// headless callers without their own frame loop.
func (o *Orchestrator) Wait(tps int) (*Planet, error) {
	clock := core.NewFixedStep(tps)
	for {
		switch o.Poll() {
		case PhaseReady:
			p, _ := o.Take()
			return p, nil
		case PhaseFailed:
			return nil, o.Err()
		}
		clock.Wait()
	}
}

// Close waits for any running units and releases the pool.
func (o *Orchestrator) Close() {
	o.pool.StopAndWait()
}

// Release stops the pool without waiting. Units already running finish in the
// background and their results are dropped. The returned channel closes once
// they have.
func (o *Orchestrator) Release() <-chan struct{} {
	return o.pool.Stop().Done()
}
