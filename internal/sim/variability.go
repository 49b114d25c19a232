package sim

// Variability model constants. The base spread grows by one percentage point
// for every four full minutes of elapsed time, with no upper bound.
const (
	baseStdDevFraction  = 0.05
	fatigueStepMinutes  = 4
	fatigueStepFraction = 0.01
)

// Phase multipliers, applied to the fraction only during transition phases.
const (
	rampUpSpreadScale    = 1.3
	rampDownSpreadScale  = 0.8
	stabilizeSpreadScale = 0.6
)

// stdDevFraction returns the standard-deviation fraction applied to the
// target power at the given elapsed time and phase (0.065 means +-6.5%).
func stdDevFraction(elapsedSeconds int, phase CyclePhase) float64 {
	fatigueSteps := (elapsedSeconds / 60) / fatigueStepMinutes
	frac := baseStdDevFraction + float64(fatigueSteps)*fatigueStepFraction

	switch phase {
	case PhaseRampUp:
		frac *= rampUpSpreadScale
	case PhaseRampDown:
		frac *= rampDownSpreadScale
	case PhaseStabilizing:
		frac *= stabilizeSpreadScale
	}
	return frac
}
