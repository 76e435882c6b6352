package simulation

import (
	"math/rand/v2"
	"testing"
)

func TestNewAgent_WeightJitterBounded(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewPCG(3, 3))

	check := func(name string, got, base float64) {
		lo, hi := base*(1-cfg.WeightJitter), base*(1+cfg.WeightJitter)
		if got < lo || got > hi {
			t.Errorf("%s weight %v outside [%v, %v]", name, got, lo, hi)
		}
	}

	for i := 0; i < 100; i++ {
		a := newAgent(cfg, rng)
		check("cohesion", a.cohesionWeight, cfg.CohesionWeight)
		check("alignment", a.alignmentWeight, cfg.AlignmentWeight)
		check("separation", a.separationWeight, cfg.SeparationWeight)
	}
}

func TestNewAgent_StartsAtCruisingSpeed(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewPCG(3, 3))

	a := newAgent(cfg, rng)
	if speed := a.Vel.Len(); speed < cfg.StartSpeed-1e-9 || speed > cfg.StartSpeed+1e-9 {
		t.Errorf("initial speed = %v; want %v", speed, cfg.StartSpeed)
	}
	if a.Pos.X < 0 || a.Pos.X > cfg.WorldWidth || a.Pos.Y < 0 || a.Pos.Y > cfg.WorldHeight {
		t.Errorf("initial position %v outside world bounds", a.Pos)
	}
}

func TestNewAgent_ReproducibleFromSeed(t *testing.T) {
	cfg := DefaultConfig()
	r1 := rand.New(rand.NewPCG(9, 9))
	r2 := rand.New(rand.NewPCG(9, 9))

	for i := 0; i < 10; i++ {
		a := newAgent(cfg, r1)
		b := newAgent(cfg, r2)
		if *a != *b {
			t.Fatalf("agent %d differs between identically seeded draws", i)
		}
	}
}
