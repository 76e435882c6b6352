package simulation

import (
	"math"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/DavideWiest/boids/pkg/geometry"
	"github.com/aquilax/go-perlin"
)

type gridKey struct {
	x, y int
}

// World owns the agent population, the attractor set and the sampled force
// field. One call to Step advances the simulation by one tick; the host
// drives the cadence. Within a tick every force computation observes the
// previous tick's snapshot, so the force sweep is distributed over a worker
// pool without any agent seeing another agent's in-progress update.
type World struct {
	cfg     *Config
	noise   *perlin.Perlin
	agents  []*Agent
	workers int

	// snap is the read-only previous-tick state rebuilt at the start of
	// every Step; grid buckets snapshot indices by cell for the neighbor
	// scan. Both are reused across ticks to avoid churn.
	snap []motion
	grid map[gridKey][]int

	// attractors is append-only and mutated only at tick boundaries.
	// External placements land in pending first, guarded by pendingMu, and
	// are drained at the start of the next Step.
	attractors []geometry.Vector2D
	pendingMu  sync.Mutex
	pending    []geometry.Vector2D

	// field holds the current brightness grid. It is recomputed only when
	// the attractor set changes and swapped in atomically, fully built.
	field atomic.Pointer[FieldGrid]
}

// NewWorld validates the config and builds the initial population, the
// seeded attractor batch and the first field grid. The seed fixes every
// random draw of the run: two worlds built from equal configs and seeds
// evolve identically.
func NewWorld(cfg *Config, seed uint64) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	w := &World{
		cfg:     cfg,
		noise:   perlin.NewPerlin(2, 2, 3, int64(seed)),
		agents:  make([]*Agent, cfg.NumBoids),
		workers: workers,
		snap:    make([]motion, cfg.NumBoids),
		grid:    make(map[gridKey][]int),
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range w.agents {
		w.agents[i] = newAgent(cfg, rng)
	}

	w.attractors = seedAttractors(cfg)
	w.field.Store(sampleField(w.attractors, cfg))
	return w, nil
}

// seedAttractors places the initial attractor batch uniformly within the
// world bounds inset by the configured margin. The batch has its own seed so
// the layout is reproducible independently of the agent RNG.
func seedAttractors(cfg *Config) []geometry.Vector2D {
	rng := rand.New(rand.NewPCG(uint64(cfg.AttractorInitSeed), uint64(cfg.AttractorInitSeed)))
	spanX := math.Max(cfg.WorldWidth-2*cfg.AttractorInitMargin, 0)
	spanY := math.Max(cfg.WorldHeight-2*cfg.AttractorInitMargin, 0)

	out := make([]geometry.Vector2D, 0, cfg.AttractorInitCount)
	for i := 0; i < cfg.AttractorInitCount; i++ {
		out = append(out, geometry.Vector2D{
			X: cfg.AttractorInitMargin + rng.Float64()*spanX,
			Y: cfg.AttractorInitMargin + rng.Float64()*spanY,
		})
	}
	return out
}

// PlaceAttractor queues a world-space point for insertion at the next tick
// boundary. Safe to call from the host's input callback while a Step runs.
func (w *World) PlaceAttractor(p geometry.Vector2D) {
	w.pendingMu.Lock()
	w.pending = append(w.pending, p)
	w.pendingMu.Unlock()
}

// drainAttractors moves queued placements into the attractor set and reports
// whether the set changed.
func (w *World) drainAttractors() bool {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if len(w.pending) == 0 {
		return false
	}
	w.attractors = append(w.attractors, w.pending...)
	w.pending = w.pending[:0]
	return true
}

// Step advances the simulation by one tick: drain queued attractors,
// snapshot the population, rebuild the spatial grid, then run the
// force-and-integrate sweep over the snapshot.
func (w *World) Step() {
	if w.drainAttractors() {
		w.field.Store(sampleField(w.attractors, w.cfg))
	}

	for i, a := range w.agents {
		w.snap[i] = motion{Pos: a.Pos, Vel: a.Vel}
	}
	w.rebuildGrid()

	n := len(w.agents)
	chunk := (n + w.workers - 1) / w.workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			var candidates []int
			for i := start; i < end; i++ {
				candidates = w.neighborCandidates(i, candidates[:0])
				w.stepAgent(i, candidates)
			}
		}(start, end)
	}
	wg.Wait()
}

// stepAgent accumulates the four force contributions for agent i from the
// snapshot and integrates the result. Only agent i's own state is written.
func (w *World) stepAgent(i int, candidates []int) {
	a := w.agents[i]
	a.acc = geometry.Vector2D{}

	weights := flockWeights{
		cohesion:   a.cohesionWeight,
		alignment:  a.alignmentWeight,
		separation: a.separationWeight,
	}
	flock, proximity := flockingForce(i, w.snap, candidates, weights, w.cfg)
	a.acc = a.acc.Add(flock)
	a.acc = a.acc.Add(boundaryForce(w.snap[i].Pos, w.cfg))
	a.acc = a.acc.Add(a.noiseForce(w.noise, w.cfg))
	a.acc = a.acc.Add(attractorForce(w.snap[i].Pos, w.attractors, w.cfg, w.cfg.MassEquivalent))

	a.integrate(w.cfg, proximity)
}

// ---------------------------------------------------------------------
// Spatial grid
// The grid narrows the O(n^2) neighbor scan without changing which agents
// count as neighbors: with a cell size of at least the perception radius, a
// 3x3 cell window always covers the full perception disc.
// ---------------------------------------------------------------------

func (w *World) cellSize() float64 {
	return math.Max(w.cfg.PerceptionRadius, 10)
}

func (w *World) rebuildGrid() {
	// Reset bucket slices to length 0 but keep their capacity, so the
	// underlying arrays are reused tick after tick.
	for k := range w.grid {
		w.grid[k] = w.grid[k][:0]
	}

	cs := w.cellSize()
	for i, m := range w.snap {
		// Floor, not truncate: positions are unconstrained and may go
		// negative outside the soft boundary.
		key := gridKey{x: int(math.Floor(m.Pos.X / cs)), y: int(math.Floor(m.Pos.Y / cs))}
		w.grid[key] = append(w.grid[key], i)
	}
}

// neighborCandidates appends the snapshot indices in the 3x3 cell window
// around agent i to buf. The grid is read-only during the sweep, so this is
// safe to call from multiple workers.
func (w *World) neighborCandidates(i int, buf []int) []int {
	cs := w.cellSize()
	gx := int(math.Floor(w.snap[i].Pos.X / cs))
	gy := int(math.Floor(w.snap[i].Pos.Y / cs))

	for x := gx - 1; x <= gx+1; x++ {
		for y := gy - 1; y <= gy+1; y++ {
			if cell, ok := w.grid[gridKey{x: x, y: y}]; ok {
				buf = append(buf, cell...)
			}
		}
	}
	return buf
}

// ---------------------------------------------------------------------
// Host-facing state
// ---------------------------------------------------------------------

// Snapshot returns the per-agent render state for the current tick.
func (w *World) Snapshot() []AgentView {
	out := make([]AgentView, len(w.agents))
	for i, a := range w.agents {
		out[i] = a.View()
	}
	return out
}

// Attractors returns a copy of the attractor set for marker rendering.
func (w *World) Attractors() []geometry.Vector2D {
	out := make([]geometry.Vector2D, len(w.attractors))
	copy(out, w.attractors)
	return out
}

// Field returns the current brightness grid. The grid is immutable; a new
// one is published only when the attractor set changes.
func (w *World) Field() *FieldGrid {
	return w.field.Load()
}

// Bounds returns the world dimensions.
func (w *World) Bounds() (width, height float64) {
	return w.cfg.WorldWidth, w.cfg.WorldHeight
}
