// Package run wires the simulation driver to the CSV export collaborator
// and publishes progress for observers.
package run

import (
	"fmt"
	"io"
	"log"

	"wbal-simulator/internal/events"
	"wbal-simulator/internal/export"
	"wbal-simulator/internal/noise"
	"wbal-simulator/internal/sim"
)

// Progress is a lossy observational snapshot of a running simulation.
type Progress struct {
	ElapsedSeconds int
	TotalSeconds   int
	WBal           float64 // J
	EmittedPower   float64 // W
}

// Percent returns completion in [0, 100].
func (p Progress) Percent() float64 {
	if p.TotalSeconds == 0 {
		return 0
	}
	return 100 * float64(p.ElapsedSeconds+1) / float64(p.TotalSeconds)
}

// Summary reports run totals, logged on completion.
type Summary struct {
	DurationSeconds  int
	MeanEmittedPower float64 // W
	MinWBal          float64 // J
	FinalWBal        float64 // J
}

// progressEvery is how often a Progress snapshot is published.
const progressEvery = 60 // seconds of simulated time

// Runner executes one simulation run end to end.
type Runner struct {
	params        sim.Parameters
	logger        *log.Logger
	progressEvent *events.ChannelEvent[Progress]
}

// NewRunner validates the parameters and prepares a runner.
func NewRunner(params sim.Parameters, logger *log.Logger) (*Runner, error) {
	if logger == nil {
		panic("Runner: logger cannot be nil")
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation parameters: %w", err)
	}
	return &Runner{
		params:        params,
		logger:        logger,
		progressEvent: events.NewChannelEvent[Progress](),
	}, nil
}

// ListenToProgress registers a channel for progress snapshots. Delivery is
// lossy; the CSV stream is the complete record of the run.
func (r *Runner) ListenToProgress(ch chan<- Progress) func() {
	return r.progressEvent.Listen(ch)
}

// Run executes the whole protocol with the given seed, streaming CSV rows to
// out in tick order. It returns the run summary once every record has been
// written and flushed.
func (r *Runner) Run(seed int64, out io.Writer) (Summary, error) {
	driver, err := sim.NewDriver(r.params, noise.NewGenerator(seed), r.logger)
	if err != nil {
		return Summary{}, err
	}
	writer := export.NewCSVWriter(out, r.logger)

	total := r.params.TotalDuration()
	r.logger.Printf("Runner: starting run (seed %d, %d ticks)", seed, total)

	summary := Summary{DurationSeconds: total, MinWBal: r.params.WPrime}
	var powerSum float64

	err = driver.Run(func(rec sim.Record) error {
		if err := writer.WriteRecord(rec); err != nil {
			return err
		}

		powerSum += rec.EmittedPower
		if rec.WBal < summary.MinWBal {
			summary.MinWBal = rec.WBal
		}
		summary.FinalWBal = rec.WBal

		if (rec.Time+1)%progressEvery == 0 || rec.Time == total-1 {
			r.progressEvent.Notify(Progress{
				ElapsedSeconds: rec.Time,
				TotalSeconds:   total,
				WBal:           rec.WBal,
				EmittedPower:   rec.EmittedPower,
			})
		}
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("simulation run failed: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return Summary{}, err
	}

	summary.MeanEmittedPower = powerSum / float64(total)
	r.logger.Printf("Runner: run complete (mean power %.1f W, min wbal %.3f kJ, final wbal %.3f kJ)",
		summary.MeanEmittedPower, summary.MinWBal/1000, summary.FinalWBal/1000)
	return summary, nil
}
