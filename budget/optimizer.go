package budget

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/optimize"

	"github.com/ebalan/strata/frame"
)

// Optimizer solves one configured problem class against any fitted
// forecaster. Equality and inequality constraints are handled with an
// augmented-Lagrangian outer loop: each round minimizes the penalized
// objective with derivative-free Nelder–Mead, then updates the
// multipliers and tightens the penalty weight until every constraint is
// within tolerance or the round budget runs out.
type Optimizer struct {
	opts Options
	log  zerolog.Logger
}

// NewOptimizer builds an optimizer. A nil opts means defaults, which
// leave Objective unset; Optimize rejects that with ErrNilObjective.
func NewOptimizer(opts *Options) *Optimizer {
	o := DefaultOptions()
	if opts != nil {
		d := DefaultOptions()
		o = *opts
		if o.Transform == nil {
			o.Transform = d.Transform
		}
		if o.MaxIter <= 0 {
			o.MaxIter = d.MaxIter
		}
		if o.OuterIter <= 0 {
			o.OuterIter = d.OuterIter
		}
		if o.Tol <= 0 {
			o.Tol = d.Tol
		}
	}

	return &Optimizer{opts: o, log: o.Logger.With().Str("component", "budget.optimizer").Logger()}
}

// candidate is one fully evaluated point of the search.
type candidate struct {
	v         []float64
	objective float64
	violation float64
}

// better orders candidates constraint-first: a point within tolerance
// beats any infeasible one, feasible points compare by objective, and
// infeasible points compare by violation.
func (c candidate) better(than candidate, tol float64) bool {
	cFeas, tFeas := c.violation <= tol, than.violation <= tol
	switch {
	case cFeas && !tFeas:
		return true
	case !cFeas && tFeas:
		return false
	case cFeas:
		return c.objective < than.objective
	default:
		return c.violation < than.violation
	}
}

// Optimize searches (horizon × columns) of X for the configured
// objective and returns a copy of X with the best iterate written back.
// Errors: ErrNilForecaster, ErrNilObjective, ErrNilFrame, ErrEmptyHorizon,
// ErrNoColumns, ErrHorizonNotCovered, ErrBadBounds, frame.ErrUnknownColumn,
// and ErrNoEvaluation when the forecaster rejects every candidate.
// Non-convergence is not an error: the best candidate is returned with a
// diagnostic on the Result.
func (o *Optimizer) Optimize(fc Predictor, X *frame.Frame, horizon frame.Index, columns []string) (*Result, error) {
	if fc == nil {
		return nil, ErrNilForecaster
	}
	if o.opts.Objective == nil {
		return nil, ErrNilObjective
	}
	if X == nil {
		return nil, ErrNilFrame
	}
	if len(horizon) == 0 {
		return nil, ErrEmptyHorizon
	}
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	if !X.Covers(horizon) {
		return nil, ErrHorizonNotCovered
	}
	for col, b := range o.opts.Bounds {
		if b.Lo > b.Hi {
			return nil, fmt.Errorf("%w: column %q [%g, %g]", ErrBadBounds, col, b.Lo, b.Hi)
		}
	}

	sub, err := X.Slice(horizon)
	if err != nil {
		return nil, err
	}
	baseline := make(map[string][]float64, len(columns))
	for _, col := range columns {
		vals, cerr := sub.Column(col)
		if cerr != nil {
			return nil, cerr
		}
		baseline[col] = vals
	}

	tr := o.opts.Transform
	if err = tr.Bind(baseline, columns, len(horizon)); err != nil {
		return nil, err
	}
	lo, hi, boxed := tr.Box(o.opts.Bounds)

	work := X.Clone()
	cons := o.opts.Constraints
	lambda := make([]float64, len(cons))
	mu := 10.0

	var (
		evalErr   error
		evaluated bool
	)

	// evaluate renders one candidate through the forecaster and scores
	// its raw objective and constraint residuals.
	evaluate := func(v []float64) (obj float64, g []float64, ok bool) {
		spend := tr.Expand(v)
		for _, col := range columns {
			if serr := work.Set(col, horizon, spend[col]); serr != nil {
				evalErr = serr
				return 0, nil, false
			}
		}
		pred, perr := fc.Predict(horizon, work)
		if perr != nil {
			evalErr = perr
			return 0, nil, false
		}
		evaluated = true
		obj = o.opts.Objective.Value(pred, spend)
		g = make([]float64, len(cons))
		for i, c := range cons {
			g[i] = c.Value(pred, spend, baseline)
		}

		return obj, g, true
	}

	violation := func(v []float64, g []float64) float64 {
		var worst float64
		for i, c := range cons {
			r := g[i]
			if !c.Equality() {
				r = math.Max(0, r)
			}
			worst = math.Max(worst, math.Abs(r))
		}
		if boxed {
			for i, x := range v {
				worst = math.Max(worst, math.Max(lo[i]-x, x-hi[i]))
			}
		}

		return worst
	}

	x0 := tr.Collapse(baseline)
	obj0, g0, ok := evaluate(x0)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNoEvaluation, evalErr)
	}
	best := candidate{v: append([]float64(nil), x0...), objective: obj0, violation: violation(x0, g0)}

	// penalized is the augmented Lagrangian the inner solver minimizes.
	penalized := func(v []float64) float64 {
		obj, g, ok := evaluate(v)
		if !ok || math.IsNaN(obj) {
			return math.Inf(1)
		}
		cand := candidate{objective: obj, violation: violation(v, g)}
		if cand.better(best, o.opts.Tol) {
			best = candidate{v: append([]float64(nil), v...), objective: obj, violation: cand.violation}
		}

		total := obj
		for i, c := range cons {
			if c.Equality() {
				total += lambda[i]*g[i] + 0.5*mu*g[i]*g[i]
			} else {
				// Rockafellar's shifted-penalty form for g <= 0.
				s := math.Max(0, lambda[i]+mu*g[i])
				total += (s*s - lambda[i]*lambda[i]) / (2 * mu)
			}
		}
		if boxed {
			for i, x := range v {
				if d := lo[i] - x; d > 0 {
					total += 0.5 * mu * d * d
				}
				if d := x - hi[i]; d > 0 {
					total += 0.5 * mu * d * d
				}
			}
		}

		return total
	}

	settings := &optimize.Settings{MajorIterations: o.opts.MaxIter}
	x := append([]float64(nil), x0...)
	var lastInnerErr error
	var lastStatus optimize.Status
	for round := 0; round < o.opts.OuterIter; round++ {
		problem := optimize.Problem{Func: penalized}
		result, rerr := optimize.Minimize(problem, x, settings, &optimize.NelderMead{})
		lastInnerErr = rerr
		if result != nil {
			x = result.X
			lastStatus = result.Status
		}

		obj, g, ok := evaluate(x)
		if !ok {
			break
		}
		worst := violation(x, g)
		if c := (candidate{objective: obj, violation: worst}); c.better(best, o.opts.Tol) {
			best = candidate{v: append([]float64(nil), x...), objective: obj, violation: worst}
		}
		o.log.Debug().Int("round", round).Float64("violation", worst).Float64("mu", mu).Msg("outer round complete")
		if worst <= o.opts.Tol {
			break
		}
		for i, c := range cons {
			if c.Equality() {
				lambda[i] += mu * g[i]
			} else {
				lambda[i] = math.Max(0, lambda[i]+mu*g[i])
			}
		}
		mu = math.Min(mu*5, 1e8)
	}

	if !evaluated {
		return nil, fmt.Errorf("%w: %v", ErrNoEvaluation, evalErr)
	}

	res := &Result{Objective: best.objective, Violation: best.violation}
	if best.violation > o.opts.Tol {
		res.Warn("non-convergence", fmt.Sprintf("constraint violation %.3g exceeds tolerance %.3g", best.violation, o.opts.Tol))
	}
	if lastInnerErr != nil {
		res.Warn("inner-solver", fmt.Sprintf("Nelder-Mead stopped early: %v", lastInnerErr))
	} else if lastStatus == optimize.IterationLimit || lastStatus == optimize.FunctionEvaluationLimit {
		// A limit status arrives with a nil error and still means the
		// last inner round was truncated.
		res.Warn("inner-solver", fmt.Sprintf("Nelder-Mead stopped at %v after %d iterations", lastStatus, o.opts.MaxIter))
	}

	out := X.Clone()
	spend := tr.Expand(best.v)
	for _, col := range columns {
		if serr := out.Set(col, horizon, spend[col]); serr != nil {
			return nil, serr
		}
	}
	res.X = out
	o.log.Debug().Float64("objective", best.objective).Float64("violation", best.violation).Msg("optimization complete")

	return res, nil
}
