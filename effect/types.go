// This file declares the Effect interface, combination modes, latent-site
// declarations, transformed data, and the previous-effects mapping.
package effect

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ebalan/strata/frame"
)

// Mode determines how an effect's contribution combines into the total.
//
//   - Additive       — total += contribution
//   - Multiplicative — total *= (1 + contribution)
//
// The multiplicative convention is (1 + c), so c is a fractional lift:
// c = 0.1 raises the running total by 10%.
type Mode int

const (
	// Additive contributions are summed into the running total.
	Additive Mode = iota

	// Multiplicative contributions scale the running total by (1 + c).
	Multiplicative
)

// String returns "additive" or "multiplicative".
func (m Mode) String() string {
	if m == Multiplicative {
		return "multiplicative"
	}

	return "additive"
}

// Site declares one named latent parameter block of an effect.
//
// Name is local to the effect; the orchestrator qualifies it as
// "effectName/siteName". Dim is the block length. Init seeds MAP
// optimization and MCMC chains; when nil, the prior's location is used.
type Site struct {
	Name  string
	Dim   int
	Prior Prior
	Init  []float64
}

// Data is the output of Transform: whatever numeric representation an
// effect's Predict needs, precomputed once per fit/predict invocation.
type Data struct {
	// Matrix holds the selected columns (or a design matrix) with one row
	// per timestamp of Index. Nil for effects that need no matrix.
	Matrix *mat.Dense

	// Columns names the matrix columns, when Matrix is column data.
	Columns []string

	// Index is the evaluation index this data was built for.
	Index frame.Index

	// Aux carries effect-specific precomputed arrays (e.g. time offsets).
	Aux map[string][]float64
}

// Rows reports the number of timestamps the data covers.
func (d *Data) Rows() int { return len(d.Index) }

// Outputs maps effect names to their already-computed contributions, in
// graph order. Passed to Predict so an effect may consume e.g. the trend.
type Outputs map[string][]float64

// Effect is the component contract. See the package documentation for the
// lifecycle and extension-point semantics. Implementations embed Base to
// inherit the documented defaults.
type Effect interface {
	// Name returns the unique effect name (key for sites and outputs).
	Name() string

	// Mode returns how this effect's contribution combines into the total.
	Mode() Mode

	// Dependencies lists effect names this effect reads from the previous-
	// effects mapping. Declared dependencies are validated eagerly by the
	// orchestrator: each must evaluate strictly before this effect.
	Dependencies() []string

	// Fit derives empirical anchors from the training data. Called exactly
	// once per model fit, before any Transform/Predict.
	Fit(y *frame.Series, X *frame.Frame, scale float64) error

	// Sites declares the latent parameter blocks. Valid after Fit.
	Sites() []Site

	// Transform projects the raw frame into Predict's representation at
	// the given evaluation index. Pure given its inputs and fit state.
	Transform(X *frame.Frame, idx frame.Index) (*Data, error)

	// Predict computes the contribution array (one value per timestamp of
	// d.Index) from transformed data, previous effects, and parameters.
	Predict(d *Data, prev Outputs, ps *Scoped) ([]float64, error)
}
