package sim

import (
	"math"

	"wbal-simulator/internal/noise"
)

// CyclePhase classifies one tick's position within a work/recovery cycle.
type CyclePhase int

const (
	PhaseRest CyclePhase = iota // pre-protocol idle
	PhaseRampUp
	PhaseSteadyWork
	PhaseRampDown
	PhaseStabilizing
	PhaseSteadyRecovery
)

// Label returns the segment label written to the export stream.
func (p CyclePhase) Label() string {
	switch p {
	case PhaseRest:
		return "Reposo"
	case PhaseRampUp:
		return "Rampa_Subida"
	case PhaseSteadyWork:
		return "Intervalo"
	case PhaseRampDown:
		return "Rampa_Bajada"
	case PhaseStabilizing:
		return "Estabilizacion"
	case PhaseSteadyRecovery:
		return "Recuperacion"
	default:
		return "Desconocido"
	}
}

// isTransition reports whether p is one of the shaped transition phases.
func (p CyclePhase) isTransition() bool {
	return p == PhaseRampUp || p == PhaseRampDown || p == PhaseStabilizing
}

// shapeTransition classifies timeInCycle and returns the deterministic target
// power for that instant, blending the work and recovery power levels through
// the ramp windows. Window boundaries are half-open with the edge tick
// belonging to the earlier phase. RampUp consumes one uniform draw for
// sigmoid jitter and Stabilizing one for the micro-factor; the other phases
// draw nothing.
func shapeTransition(timeInCycle float64, p Parameters, rng noise.Source) (CyclePhase, float64) {
	work := float64(p.IntervalDuration)

	switch {
	case timeInCycle <= rampUpWindow:
		progress := timeInCycle / rampUpWindow
		sigmoid := 1 / (1 + math.Exp(-6*(progress-0.5)))
		factor := clamp(sigmoid+rng.Uniform(-0.075, 0.075), 0.3, 1.0)
		return PhaseRampUp, p.RecoveryPower + (p.IntervalPower-p.RecoveryPower)*factor

	case timeInCycle <= work:
		return PhaseSteadyWork, p.IntervalPower

	case timeInCycle <= work+rampDownWindow:
		progress := (timeInCycle - work) / rampDownWindow
		smoothDecay := math.Exp(-1.5 * progress)
		sigmoidDecay := 1 / (1 + math.Exp(4*(progress-0.7)))
		blend := sigmoidDecay * smoothDecay
		return PhaseRampDown, p.IntervalPower*blend + p.RecoveryPower*(1-blend)

	case timeInCycle <= work+rampDownWindow+stabilizeWindow:
		return PhaseStabilizing, p.RecoveryPower * rng.Uniform(0.98, 1.02)

	default:
		return PhaseSteadyRecovery, p.RecoveryPower
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
