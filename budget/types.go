// This file declares the optimizer's options, interfaces, result shapes
// and errors.
package budget

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/ebalan/strata/frame"
)

var (
	// ErrNilForecaster indicates Optimize without a response function.
	ErrNilForecaster = errors.New("budget: forecaster is required")

	// ErrNilObjective indicates an Optimizer built without an objective.
	ErrNilObjective = errors.New("budget: objective is required")

	// ErrNilFrame indicates Optimize without an exogenous frame.
	ErrNilFrame = errors.New("budget: exogenous frame is required")

	// ErrEmptyHorizon indicates an empty optimization horizon.
	ErrEmptyHorizon = errors.New("budget: horizon must contain at least one timestamp")

	// ErrNoColumns indicates an empty controllable-column set.
	ErrNoColumns = errors.New("budget: at least one controllable column is required")

	// ErrHorizonNotCovered indicates an exogenous frame whose index does
	// not contain every horizon timestamp.
	ErrHorizonNotCovered = errors.New("budget: exogenous frame does not cover the horizon")

	// ErrBadBounds indicates a box bound with Lo > Hi.
	ErrBadBounds = errors.New("budget: bound lower limit exceeds upper limit")

	// ErrNoEvaluation indicates that the forecaster rejected every
	// candidate, leaving the optimizer with nothing to return.
	ErrNoEvaluation = errors.New("budget: no candidate could be evaluated")
)

// Predictor is the slice of the forecaster facade the optimizer needs: a
// pure response function of the exogenous frame. Candidate frames are
// mutated between calls, never during one, so any fitted forecaster
// satisfies the purity requirement.
type Predictor interface {
	Predict(fh frame.Index, X *frame.Frame) (*frame.Series, error)
}

// Objective is a scalar the optimizer MINIMIZES. Maximization objectives
// negate internally. pred is the predicted response over the horizon;
// spend maps each controllable column to its candidate values.
type Objective interface {
	Name() string
	Value(pred *frame.Series, spend map[string][]float64) float64
}

// Constraint is a scalar function g of a candidate. Equality constraints
// require g = 0, inequality constraints g ≤ 0, both within Options.Tol.
// baseline is the pre-optimization spend over the horizon, fixed for the
// whole run. Implementations normalize g to baseline/target magnitude so
// one tolerance works across problem scales.
type Constraint interface {
	Name() string
	Equality() bool
	Value(pred *frame.Series, spend, baseline map[string][]float64) float64
}

// Bound is a per-coordinate box limit, interpreted in the transform's
// search space (per cell under Identity, per channel total under
// InvestmentPerChannel).
type Bound struct {
	Lo float64
	Hi float64
}

// Diagnostic is a non-fatal warning attached to a Result.
type Diagnostic struct {
	Code   string
	Detail string
}

// Options configures an Optimizer.
//   - Objective:   required; the scalar to minimize.
//   - Constraints: optional equality/inequality constraints.
//   - Transform:   search-space reparametrization (default Identity).
//   - Bounds:      per-column box limits in transform space.
//   - MaxIter:     inner-solver iteration cap per outer round (default 2000).
//   - OuterIter:   multiplier-update rounds (default 12).
//   - Tol:         constraint-violation tolerance (default 1e-3).
//   - Logger:      optional progress/diagnostic logging (default discard).
type Options struct {
	Objective   Objective
	Constraints []Constraint
	Transform   Transform
	Bounds      map[string]Bound
	MaxIter     int
	OuterIter   int
	Tol         float64
	Logger      zerolog.Logger
}

// DefaultOptions returns the documented defaults (no objective: the
// caller must always choose one).
func DefaultOptions() Options {
	return Options{
		Transform: &Identity{},
		MaxIter:   2000,
		OuterIter: 12,
		Tol:       1e-3,
		Logger:    zerolog.Nop(),
	}
}

// Result carries the outcome of one Optimize call.
//   - X:           a copy of the input frame with optimized cells written
//     at (horizon, columns); all other cells untouched.
//   - Objective:   achieved objective value (the minimized scalar).
//   - Violation:   worst remaining constraint violation.
//   - Diagnostics: non-fatal warnings (non-convergence, bound slack).
type Result struct {
	X           *frame.Frame
	Objective   float64
	Violation   float64
	Diagnostics []Diagnostic
}

// Warn appends a diagnostic.
func (r *Result) Warn(code, detail string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Code: code, Detail: detail})
}
