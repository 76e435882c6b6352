package simulation

import (
	"math"
	"math/rand/v2"

	"github.com/DavideWiest/boids/pkg/geometry"
)

// RGB is a display color with channels already clamped to [0,255].
// It is derived state: overwritten every tick, never read back into physics.
type RGB struct {
	R, G, B uint8
}

// baseColor is the resting tint of an agent; the red channel brightens with
// acceleration, the blue channel with crowding.
var baseColor = RGB{R: 50, G: 50, B: 50}

// Agent is one boid. Position and velocity are world-space; the acceleration
// accumulator is transient and reset at the start of every tick. Rule weights
// and noise phases are fixed at creation (weights) or owned exclusively by
// the agent (phases), so the force sweep may run one goroutine per chunk of
// agents without synchronization.
type Agent struct {
	Pos geometry.Vector2D
	Vel geometry.Vector2D
	acc geometry.Vector2D

	cohesionWeight   float64
	alignmentWeight  float64
	separationWeight float64

	noisePhaseX float64
	noisePhaseY float64

	heading float64
	color   RGB
}

// AgentView is the per-tick kinematic/visual state exposed to the rendering
// collaborator: enough to draw an oriented glyph, nothing more.
type AgentView struct {
	Position geometry.Vector2D
	Heading  float64
	Color    RGB
}

// newAgent creates an agent with randomized position, heading and noise
// phases, and rule weights jittered around the configured defaults. All
// randomness comes from the explicit rng so runs are reproducible.
func newAgent(cfg *Config, rng *rand.Rand) *Agent {
	angle := rng.Float64() * 2 * math.Pi
	jitter := func(w float64) float64 {
		return w * (1 + (rng.Float64()*2-1)*cfg.WeightJitter)
	}
	return &Agent{
		Pos: geometry.Vector2D{
			X: rng.Float64() * cfg.WorldWidth,
			Y: rng.Float64() * cfg.WorldHeight,
		},
		Vel:              geometry.NewVectorPolar(cfg.StartSpeed, angle),
		cohesionWeight:   jitter(cfg.CohesionWeight),
		alignmentWeight:  jitter(cfg.AlignmentWeight),
		separationWeight: jitter(cfg.SeparationWeight),
		noisePhaseX:      rng.Float64() * 1000,
		noisePhaseY:      rng.Float64() * 1000,
		heading:          angle,
		color:            baseColor,
	}
}

// View returns the agent's render-facing state.
func (a *Agent) View() AgentView {
	return AgentView{Position: a.Pos, Heading: a.heading, Color: a.color}
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// brighten lifts a base channel value toward 255 by the given factor.
func brighten(base uint8, factor float64) uint8 {
	return clampChannel(float64(base) + (255-float64(base))*factor)
}

// updateColor derives the display color from this tick's acceleration
// magnitude and local crowding. Pure function of already-computed values;
// no feedback into physics.
func (a *Agent) updateColor(cfg *Config, proximity float64) {
	proximityFactor := proximity / cfg.PerceptionRadius / cfg.ProximityNormalization

	accelUpperExpected := cfg.MaxSpeed / 10
	accelFactor := a.acc.Len() / accelUpperExpected / cfg.MaxSpeed * 3
	accelFactor = accelFactor * accelFactor * accelFactor

	a.color = RGB{
		R: brighten(baseColor.R, accelFactor),
		G: baseColor.G,
		B: brighten(baseColor.B, proximityFactor),
	}
}
