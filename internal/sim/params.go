package sim

import "fmt"

// Transition window lengths in seconds. These are fixed properties of the
// power-shaping model, not tunables.
const (
	rampUpWindow    = 8.0
	rampDownWindow  = 15.0
	stabilizeWindow = 10.0
)

// Parameters holds the immutable inputs for one simulation run.
type Parameters struct {
	CP     float64 // critical power, W
	WPrime float64 // anaerobic capacity, J
	Tau    float64 // recovery time constant, s

	IntervalPower float64 // work-segment target, W
	RecoveryPower float64 // recovery-segment target, W

	IntervalDuration int // work-segment length, s
	RecoveryDuration int // recovery-segment length, s
	Repeats          int // number of work/recovery cycles

	// WarmupDuration is an optional idle period before the first interval,
	// ridden at recovery power. Zero disables it.
	WarmupDuration int
}

// CycleLength returns the length of one work/recovery cycle in seconds.
func (p Parameters) CycleLength() int {
	return p.IntervalDuration + p.RecoveryDuration
}

// TotalDuration returns the full protocol length in seconds, warmup included.
func (p Parameters) TotalDuration() int {
	return p.WarmupDuration + p.Repeats*p.CycleLength()
}

// Validate rejects parameter sets the transition shaping cannot handle.
// It must pass before the first tick runs; a failure aborts the whole run.
func (p Parameters) Validate() error {
	if p.CP <= 0 {
		return fmt.Errorf("cp must be positive, got %g", p.CP)
	}
	if p.WPrime <= 0 {
		return fmt.Errorf("wprime must be positive, got %g", p.WPrime)
	}
	if p.Tau <= 0 {
		return fmt.Errorf("tau must be positive, got %g", p.Tau)
	}
	if float64(p.IntervalDuration) <= rampUpWindow {
		return fmt.Errorf("interval duration %ds is too short for the %gs ramp-up window", p.IntervalDuration, rampUpWindow)
	}
	// Back-to-back work segments leave no room to ramp down and stabilize.
	// We reject them instead of guessing at the ramp-up interpolation.
	if float64(p.RecoveryDuration) < rampDownWindow+stabilizeWindow {
		return fmt.Errorf("recovery duration %ds is too short for the %gs ramp-down and stabilization windows",
			p.RecoveryDuration, rampDownWindow+stabilizeWindow)
	}
	if p.Repeats < 1 {
		return fmt.Errorf("repeats must be at least 1, got %d", p.Repeats)
	}
	if p.WarmupDuration < 0 {
		return fmt.Errorf("warmup duration cannot be negative, got %d", p.WarmupDuration)
	}
	if p.RecoveryPower < 0 || p.IntervalPower < 0 {
		return fmt.Errorf("power targets cannot be negative (interval %g, recovery %g)", p.IntervalPower, p.RecoveryPower)
	}
	return nil
}
