// This file declares the inference contract: targets, engines, posterior
// artifacts and diagnostics.
package inference

import "errors"

var (
	// ErrNilTarget indicates Infer was called without a target model.
	ErrNilTarget = errors.New("inference: target model is nil")

	// ErrZeroDim indicates a target with no latent parameters.
	ErrZeroDim = errors.New("inference: target has zero parameters")
)

// Target is the probabilistic model an engine operates on: a log-joint
// over a flat parameter vector plus its dimension and starting point.
// model.Model satisfies it.
type Target interface {
	// Observe returns the log-joint at x.
	Observe(x []float64) float64

	// Dim returns the parameter vector length.
	Dim() int

	// Init returns the starting parameter vector.
	Init() []float64
}

// Engine is the inference contract: fit a target, return an artifact.
type Engine interface {
	Infer(t Target) (*Artifact, error)
}

// Diagnostic is a non-fatal inference warning attached to an artifact.
type Diagnostic struct {
	// Code is a short machine-readable tag ("non-convergence",
	// "divergence", "low-acceptance", "low-ess").
	Code string

	// Detail is the human-readable explanation.
	Detail string
}

// Artifact is the posterior: one draw for MAP, many for MCMC, plus any
// diagnostics raised along the way. Artifacts are read-only once
// returned; concurrent readers are safe.
type Artifact struct {
	// Draws holds one parameter vector per retained draw.
	Draws [][]float64

	// LogJoint is the best log-joint value seen during inference.
	LogJoint float64

	// Diagnostics lists non-fatal warnings (may be empty, never fatal).
	Diagnostics []Diagnostic

	// Seed records the seed inference ran with, for reproducibility.
	Seed int64
}

// Point collapses the artifact to a single parameter vector: the draw
// itself for MAP, the across-draw mean for MCMC.
func (a *Artifact) Point() []float64 {
	if len(a.Draws) == 0 {
		return nil
	}
	dim := len(a.Draws[0])
	out := make([]float64, dim)
	for _, d := range a.Draws {
		for i, v := range d {
			out[i] += v
		}
	}
	for i := range out {
		out[i] /= float64(len(a.Draws))
	}

	return out
}

// Warn appends a diagnostic.
func (a *Artifact) Warn(code, detail string) {
	a.Diagnostics = append(a.Diagnostics, Diagnostic{Code: code, Detail: detail})
}
