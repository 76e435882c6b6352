package simulation

import (
	"math"

	"github.com/DavideWiest/boids/pkg/geometry"
	"github.com/aquilax/go-perlin"
)

// motion is the read-only previous-tick state of one agent. The force sweep
// observes only motion snapshots, never live agents, so no in-progress update
// is visible to another agent's computation within the same tick.
type motion struct {
	Pos geometry.Vector2D
	Vel geometry.Vector2D
}

// flockWeights carries one agent's jittered rule weights into the flocking
// computation.
type flockWeights struct {
	cohesion   float64
	alignment  float64
	separation float64
}

// minAttractorDistance floors the distance in the attractor formula so the
// inverse-distance term stays finite; the magnitude clamp does the rest.
const minAttractorDistance = 1e-5

// flockingForce accumulates separation, alignment and cohesion for the agent
// at index self against the candidate neighbor indices, all read from the
// snapshot. It also returns the crowding proximity used by the color
// derivation: the sum of (PerceptionRadius - distance) over all neighbors.
//
// Separation is a sum of repulsion impulses so crowding produces a
// proportionally stronger push; alignment and cohesion are averages,
// producing smooth group consensus.
func flockingForce(self int, snap []motion, candidates []int, w flockWeights, cfg *Config) (geometry.Vector2D, float64) {
	var (
		separation geometry.Vector2D
		alignment  geometry.Vector2D
		cohesion   geometry.Vector2D
		total      int
		proximity  float64
	)

	me := snap[self].Pos
	for _, j := range candidates {
		if j == self {
			continue
		}
		other := snap[j]
		distance := me.DistanceTo(other.Pos)
		if distance >= cfg.PerceptionRadius {
			continue
		}

		if distance < cfg.SeparationRadius && distance >= geometry.Epsilon {
			diff := me.Sub(other.Pos)
			separation = separation.Add(diff.Normalize().Mul(1 / distance))
		}
		alignment = alignment.Add(other.Vel)
		cohesion = cohesion.Add(other.Pos)
		proximity += cfg.PerceptionRadius - distance
		total++
	}

	if total == 0 {
		return geometry.Vector2D{}, 0
	}

	n := float64(total)
	force := separation.Mul(w.separation)
	force = force.Add(alignment.Mul(1 / n).Mul(w.alignment))
	// Normalize guards the case where the average neighbor position
	// coincides with the subject's own.
	force = force.Add(cohesion.Mul(1 / n).Sub(me).Normalize().Mul(w.cohesion))
	return force, proximity
}

// boundaryForce is the soft-repulsion boundary policy: within
// BoundaryPerception of an edge the force on that axis is TurnFactor times
// the penetration depth, directed inward, zero outside the margin.
func boundaryForce(pos geometry.Vector2D, cfg *Config) geometry.Vector2D {
	var force geometry.Vector2D
	margin := cfg.BoundaryPerception

	if pos.X < margin {
		force.X = cfg.TurnFactor * (margin - pos.X)
	} else if pos.X > cfg.WorldWidth-margin {
		force.X = -cfg.TurnFactor * (pos.X - (cfg.WorldWidth - margin))
	}
	if pos.Y < margin {
		force.Y = cfg.TurnFactor * (margin - pos.Y)
	} else if pos.Y > cfg.WorldHeight-margin {
		force.Y = -cfg.TurnFactor * (pos.Y - (cfg.WorldHeight - margin))
	}
	return force
}

// noiseForce samples the 1-D coherent-noise function at the agent's two
// phases, then advances both phases by the fixed step. Successive ticks see
// a smoothly varying vector rather than white-noise jitter.
func (a *Agent) noiseForce(noise *perlin.Perlin, cfg *Config) geometry.Vector2D {
	force := geometry.Vector2D{
		X: noise.Noise1D(a.noisePhaseX),
		Y: noise.Noise1D(a.noisePhaseY),
	}.Mul(cfg.RandomnessWeight)
	a.noisePhaseX += cfg.NoisePhaseStep
	a.noisePhaseY += cfg.NoisePhaseStep
	return force
}

// attractorForce sums the inverse-distance, magnitude-clamped pull of every
// attractor on the given position. mass is the inertia divisor: agents pass
// their configured mass equivalent, the field sampler passes 1.
func attractorForce(pos geometry.Vector2D, attractors []geometry.Vector2D, cfg *Config, mass float64) geometry.Vector2D {
	var total geometry.Vector2D
	for _, at := range attractors {
		dir := at.Sub(pos)
		dist := dir.Len()
		if dist < minAttractorDistance {
			dist = minAttractorDistance
		}
		mag := cfg.AttractorForce * math.Pow(dist, cfg.AttractorForceDistanceExp) / mass
		if mag > cfg.AttractorForceMax {
			mag = cfg.AttractorForceMax
		}
		// Normalize returns zero for a degenerate direction, so a subject
		// sitting exactly on an attractor contributes nothing instead of NaN.
		total = total.Add(dir.Normalize().Mul(mag))
	}
	return total
}
