// This file declares the facade's options, result shapes and errors.
package forecaster

import (
	"errors"

	"github.com/ebalan/strata/frame"
	"github.com/ebalan/strata/inference"
)

var (
	// ErrNotFitted indicates a Predict* call before a successful Fit.
	ErrNotFitted = errors.New("forecaster: not fitted")

	// ErrNoTarget indicates Fit without a target series.
	ErrNoTarget = errors.New("forecaster: target series is required")

	// ErrEmptyHorizon indicates a Predict* call with an empty horizon.
	ErrEmptyHorizon = errors.New("forecaster: horizon must contain at least one timestamp")

	// ErrHorizonNotCovered indicates an exogenous frame whose index does
	// not cover the requested evaluation index.
	ErrHorizonNotCovered = errors.New("forecaster: exogenous frame does not cover requested index")

	// ErrBadCoverage indicates an interval coverage outside (0, 1).
	ErrBadCoverage = errors.New("forecaster: coverage must be in (0, 1)")
)

// Options configures the facade.
//   - Engine:      inference engine (default MAP with its defaults).
//   - Seed:        seed for posterior-predictive noise; each Predict*
//     call derives its randomness from it alone, which is what makes
//     repeated calls identical.
//   - SampleDraws: number of predictive draws rendered when the
//     posterior holds a single point estimate (default 100). Ignored
//     when the artifact already carries many draws.
type Options struct {
	Engine      inference.Engine
	Seed        int64
	SampleDraws int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{Engine: inference.NewMAP(nil), SampleDraws: 100}
}

// Interval is a central predictive band over a horizon.
type Interval struct {
	Index    frame.Index
	Lower    []float64
	Upper    []float64
	Coverage float64
}

// Samples holds raw posterior-predictive draws: Draws[d][t] is draw d at
// the t-th horizon timestamp, in target units.
type Samples struct {
	Index frame.Index
	Draws [][]float64
}

// ComponentSamples holds per-effect posterior draws of each component's
// contribution, keyed by effect name.
type ComponentSamples struct {
	Index frame.Index
	By    map[string][][]float64
}
