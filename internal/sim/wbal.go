package sim

import "wbal-simulator/internal/noise"

// advanceWBal integrates the critical-power energy balance over one tick.
// Above CP the balance depletes by the excess work; at or below CP it
// recharges toward WPrime with a time constant Tau and a small stochastic
// wobble on the recovery rate (factor in [0.95, 1.05]).
//
// This is an explicit-Euler step of the leaky-bucket model with dt fixed at
// one second. It is an approximation of the underlying ODE, not an exact
// solution, which is fine at 1 Hz resolution.
func advanceWBal(current, emittedPower float64, p Parameters, rng noise.Source) float64 {
	const dt = 1.0

	if emittedPower > p.CP {
		depleted := current - (emittedPower-p.CP)*dt
		if depleted < 0 {
			return 0
		}
		return depleted
	}

	baseRate := (p.WPrime - current) / p.Tau
	rate := baseRate * (1 + rng.Uniform(-0.5, 0.5)*0.1)
	recovered := current + rate*dt
	if recovered > p.WPrime {
		return p.WPrime
	}
	if recovered < 0 {
		return 0
	}
	return recovered
}
