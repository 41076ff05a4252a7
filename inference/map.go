package inference

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// MAPOptions configures the MAP engine.
//   - MaxIter: cap on major optimizer iterations (default 500),
//     forwarded verbatim to the inner solver.
//   - Seed:    reproducibility seed; recorded on the artifact. The
//     starting point is the target's Init, so a fixed seed makes the
//     whole run deterministic.
//   - Logger:  optional progress logger (default zerolog.Nop()).
type MAPOptions struct {
	MaxIter int
	Seed    int64
	Logger  zerolog.Logger
}

// DefaultMAPOptions returns the documented defaults.
func DefaultMAPOptions() MAPOptions {
	return MAPOptions{MaxIter: 500, Logger: zerolog.Nop()}
}

// MAP estimates a single maximum-a-posteriori parameter vector by
// minimizing the negative log-joint with L-BFGS (finite-difference
// gradients), falling back to Nelder–Mead from the best iterate when the
// gradient method fails. Non-convergence is a diagnostic, not an error:
// the best iterate found is always returned.
type MAP struct {
	opts MAPOptions
	log  zerolog.Logger
}

// NewMAP builds the engine. A nil opts means defaults.
func NewMAP(opts *MAPOptions) *MAP {
	o := DefaultMAPOptions()
	if opts != nil {
		o = *opts
		if o.MaxIter <= 0 {
			o.MaxIter = 500
		}
	}

	return &MAP{opts: o, log: o.Logger.With().Str("component", "inference.map").Logger()}
}

// Infer runs the optimization. Errors: ErrNilTarget, ErrZeroDim.
func (e *MAP) Infer(t Target) (*Artifact, error) {
	if t == nil {
		return nil, ErrNilTarget
	}
	if t.Dim() <= 0 {
		return nil, ErrZeroDim
	}

	neg := func(x []float64) float64 { return -t.Observe(x) }
	problem := optimize.Problem{
		Func: neg,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, neg, x, nil)
		},
	}
	settings := &optimize.Settings{MajorIterations: e.opts.MaxIter}

	art := &Artifact{Seed: e.opts.Seed}
	x0 := t.Init()

	best := make([]float64, len(x0))
	copy(best, x0)
	bestF := neg(x0)

	result, err := optimize.Minimize(problem, x0, settings, &optimize.LBFGS{})
	if result != nil && result.F < bestF {
		bestF = result.F
		copy(best, result.X)
	}
	if err != nil {
		e.log.Debug().Err(err).Msg("gradient method failed, falling back to Nelder-Mead")
		art.Warn("non-convergence", fmt.Sprintf("L-BFGS stopped early: %v", err))

		fallback := optimize.Problem{Func: neg}
		result, err = optimize.Minimize(fallback, best, settings, &optimize.NelderMead{})
		if result != nil && result.F < bestF {
			bestF = result.F
			copy(best, result.X)
		}
		if err != nil {
			art.Warn("non-convergence", fmt.Sprintf("Nelder-Mead stopped early: %v", err))
		} else if stalled(result) {
			art.Warn("non-convergence", fmt.Sprintf("Nelder-Mead stopped at %v after %d iterations", result.Status, e.opts.MaxIter))
		}
	} else if stalled(result) {
		// Budget stops report err == nil with a limit status; that is
		// still a truncated run, not a converged one.
		art.Warn("non-convergence", fmt.Sprintf("L-BFGS stopped at %v after %d iterations", result.Status, e.opts.MaxIter))
	}
	if math.IsInf(bestF, 0) || math.IsNaN(bestF) {
		art.Warn("non-convergence", "log-joint is not finite at the best iterate")
	}

	art.Draws = [][]float64{best}
	art.LogJoint = -bestF
	e.log.Debug().Float64("log_joint", art.LogJoint).Int("dim", t.Dim()).Msg("MAP complete")

	return art, nil
}

// stalled reports whether a minimizer run was cut off by an iteration or
// evaluation budget rather than meeting a convergence criterion.
func stalled(result *optimize.Result) bool {
	if result == nil {
		return false
	}
	return result.Status == optimize.IterationLimit || result.Status == optimize.FunctionEvaluationLimit
}

var _ Engine = (*MAP)(nil)
