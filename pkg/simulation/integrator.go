package simulation

// relaxedSpeed moves a speed one exponential step toward the cruising speed.
// Applied every tick regardless of whether the speed cap fired.
func relaxedSpeed(cfg *Config, speed float64) float64 {
	return speed + (cfg.StartSpeed-speed)*cfg.SpeedAdjustmentFactor
}

// integrate folds the accumulated acceleration into velocity and advances the
// agent one tick:
//
//  1. velocity += acceleration / mass equivalent (inertia)
//  2. cap speed at MaxSpeed, direction preserved
//  3. relax speed toward StartSpeed
//  4. position += velocity
//  5. derive display color from this tick's acceleration and crowding
//  6. multiplicative velocity damping, so the relaxation target is
//     approached but never instantaneously reached
//
// The heading holds its last valid value while the velocity is exactly zero.
func (a *Agent) integrate(cfg *Config, proximity float64) {
	a.Vel = a.Vel.Add(a.acc.Mul(1 / cfg.MassEquivalent))
	a.Vel = a.Vel.ClampLength(cfg.MaxSpeed)

	if speed := a.Vel.Len(); speed > 0 {
		a.Vel = a.Vel.Normalize().Mul(relaxedSpeed(cfg, speed))
	}

	a.Pos = a.Pos.Add(a.Vel)
	a.updateColor(cfg, proximity)
	a.Vel = a.Vel.Mul(cfg.VelocityDamping)

	if a.Vel.LenSqr() > 0 {
		a.heading = a.Vel.Angle()
	}
}
