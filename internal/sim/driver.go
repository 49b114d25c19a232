package sim

import (
	"log"

	"wbal-simulator/internal/noise"
)

// State is the only data carried from one tick to the next.
type State struct {
	PreviousEmittedPower float64 // W
	WBal                 float64 // J, bounded [0, WPrime]
	ElapsedSeconds       int
}

// NewState returns the initial state at t=0: full reservoir, no prior power.
func NewState(p Parameters) State {
	return State{WBal: p.WPrime}
}

// Record is one output row, produced once per simulated second.
type Record struct {
	Time           int        // elapsed seconds from 0
	TargetPower    float64    // deterministic shaper output, W
	EmittedPower   float64    // noisy smoothed power, W
	CP             float64    // W
	WBal           float64    // J
	Phase          CyclePhase
	StdDevFraction float64 // spread applied this tick (0.065 = 6.5%)
}

// Tick advances the simulation by one second. It is a pure function of the
// incoming state, the parameters, and the draws it takes from rng. Draw
// order per tick is fixed: transition jitter (ramp-up or stabilizing only),
// then the power noise sample, then the recovery-rate jitter (at or below
// CP only). Callers must invoke ticks in strictly increasing time order.
func Tick(st State, p Parameters, rng noise.Source) (State, Record) {
	phase, target := classify(st.ElapsedSeconds, p, rng)
	frac := stdDevFraction(st.ElapsedSeconds, phase)
	emitted := emitPower(target, frac, rng.Sample(), st.PreviousEmittedPower, phase)
	wbal := advanceWBal(st.WBal, emitted, p, rng)

	rec := Record{
		Time:           st.ElapsedSeconds,
		TargetPower:    target,
		EmittedPower:   emitted,
		CP:             p.CP,
		WBal:           wbal,
		Phase:          phase,
		StdDevFraction: frac,
	}
	next := State{
		PreviousEmittedPower: emitted,
		WBal:                 wbal,
		ElapsedSeconds:       st.ElapsedSeconds + 1,
	}
	return next, rec
}

// classify maps elapsed protocol time onto a cycle phase and target power.
// Warmup ticks are Rest at recovery power; afterwards the cycle position is
// simply elapsed time modulo the cycle length.
func classify(elapsedSeconds int, p Parameters, rng noise.Source) (CyclePhase, float64) {
	if elapsedSeconds < p.WarmupDuration {
		return PhaseRest, p.RecoveryPower
	}
	timeInCycle := (elapsedSeconds - p.WarmupDuration) % p.CycleLength()
	return shapeTransition(float64(timeInCycle), p, rng)
}

// Driver steps the simulation across the whole protocol, one record per
// second. It owns the run's random source exclusively.
type Driver struct {
	params Parameters
	rng    noise.Source
	state  State
}

// NewDriver validates the parameters and prepares a run. A validation
// failure rejects the run before any tick executes.
func NewDriver(params Parameters, rng noise.Source, logger *log.Logger) (*Driver, error) {
	if rng == nil {
		panic("Driver: rng cannot be nil")
	}
	if logger == nil {
		panic("Driver: logger cannot be nil")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	logger.Printf("Driver: %d cycles of %ds work / %ds recovery (%ds warmup, %ds total)",
		params.Repeats, params.IntervalDuration, params.RecoveryDuration,
		params.WarmupDuration, params.TotalDuration())
	return &Driver{params: params, rng: rng, state: NewState(params)}, nil
}

// Step produces the next record and advances the carried state.
func (d *Driver) Step() Record {
	next, rec := Tick(d.state, d.params, d.rng)
	d.state = next
	return rec
}

// Run steps through the full protocol duration, passing each record to emit
// in time order. It stops early if emit returns an error. There is no
// terminal transition: the driver simply stops producing records.
func (d *Driver) Run(emit func(Record) error) error {
	total := d.params.TotalDuration()
	for i := 0; i < total; i++ {
		if err := emit(d.Step()); err != nil {
			return err
		}
	}
	return nil
}

// Params returns the run's parameters.
func (d *Driver) Params() Parameters {
	return d.params
}
