package main

import "testing"

// An undrawn trail pixel passes through the per-frame fade only. With
// BlendDestinationOut at factor (1 - trailRetention) the alpha recurrence is
// a' = a * trailRetention, which must decay toward transparent — a fade that
// instead pushes alpha toward opaque would blank out the field background
// behind the trails.
func TestTrailFadeDecaysTowardTransparent(t *testing.T) {
	if trailRetention <= 0 || trailRetention >= 1 {
		t.Fatalf("trailRetention = %v; must be in (0,1) for the fade to decay", trailRetention)
	}

	alpha := 1.0
	for frame := 0; frame < 60; frame++ {
		next := alpha * trailRetention
		if next >= alpha {
			t.Fatalf("frame %d: alpha did not decrease (%v -> %v)", frame, alpha, next)
		}
		alpha = next
	}

	// 60 frames is one second at the default tick rate; a fresh trail must
	// be nearly gone by then, not converging to an opaque veil.
	if alpha > 0.01 {
		t.Errorf("alpha after 60 frames = %v; want < 0.01", alpha)
	}
}
