package sim

// Smoothing factors weight the NEW sample, so a larger factor means less
// memory of the previous tick (more responsive), not a smoother trace.
const (
	smoothingRampDown   = 0.85
	smoothingTransition = 0.7 // ramp-up and stabilizing
	smoothingSteady     = 0.8
)

// emitPower turns the deterministic target into the emitted noisy power:
// noise scaled by the std-dev fraction is applied to the target, the result
// is clamped non-negative, then blended with the previous emitted power.
func emitPower(target, frac, sample, previous float64, phase CyclePhase) float64 {
	raw := target * (1 + sample*frac)
	if raw < 0 {
		raw = 0
	}

	factor := smoothingSteady
	switch phase {
	case PhaseRampDown:
		factor = smoothingRampDown
	case PhaseRampUp, PhaseStabilizing:
		factor = smoothingTransition
	}

	emitted := previous*(1-factor) + raw*factor
	if emitted < 0 {
		emitted = 0
	}
	return emitted
}
