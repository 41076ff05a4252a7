package effect

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/ebalan/strata/frame"
)

// QuadraticOptions configures a Quadratic effect.
//   - Mode:        Additive (default) or Multiplicative.
//   - ScalePrior:  prior over the curvature a (default Normal(0, 5)).
//   - OffsetPrior: prior over the vertex c (default Normal(0, 10)); the
//     Init is replaced by the column's empirical mean at fit time.
type QuadraticOptions struct {
	Mode        Mode
	ScalePrior  Prior
	OffsetPrior Prior
}

// DefaultQuadraticOptions returns the documented defaults.
func DefaultQuadraticOptions() QuadraticOptions {
	return QuadraticOptions{
		Mode:        Additive,
		ScalePrior:  Normal{Mu: 0, Sigma: 5},
		OffsetPrior: Normal{Mu: 0, Sigma: 10},
	}
}

// Quadratic contributes a·(x−c)² over exactly one selected column, with
// latent curvature a and vertex c. The vertex prior is anchored at the
// column's fit-time mean, so optimization starts inside the data range.
type Quadratic struct {
	Base

	scalePrior  Prior
	offsetPrior Prior

	offsetInit float64
}

// NewQuadratic builds the effect. A nil opts means defaults.
func NewQuadratic(name string, sel Selector, opts *QuadraticOptions) *Quadratic {
	o := DefaultQuadraticOptions()
	if opts != nil {
		o = *opts
		if o.ScalePrior == nil {
			o.ScalePrior = Normal{Mu: 0, Sigma: 5}
		}
		if o.OffsetPrior == nil {
			o.OffsetPrior = Normal{Mu: 0, Sigma: 10}
		}
	}

	return &Quadratic{
		Base:        NewBase(name, o.Mode, sel, false),
		scalePrior:  o.ScalePrior,
		offsetPrior: o.OffsetPrior,
	}
}

// Fit binds the selector (exactly one column) and anchors the vertex
// init at the column's mean. Errors: ErrNoMatchingColumns, ErrColumnCount.
func (e *Quadratic) Fit(_ *frame.Series, X *frame.Frame, _ float64) error {
	if err := e.BindColumns(X); err != nil {
		return err
	}
	cols := e.Columns()
	if len(cols) != 1 {
		return fmt.Errorf("%w: effect %q wants 1 column, matched %d", ErrColumnCount, e.Name(), len(cols))
	}
	vals, err := X.Column(cols[0])
	if err != nil {
		return err
	}
	e.offsetInit = stat.Mean(vals, nil)

	return nil
}

// Sites declares the curvature and vertex scalars.
func (e *Quadratic) Sites() []Site {
	return []Site{
		{Name: "scale", Dim: 1, Prior: e.scalePrior, Init: []float64{0.1}},
		{Name: "offset", Dim: 1, Prior: e.offsetPrior, Init: []float64{e.offsetInit}},
	}
}

// Predict returns a·(x−c)² elementwise.
func (e *Quadratic) Predict(d *Data, _ Outputs, ps *Scoped) ([]float64, error) {
	if err := e.RequireFitted(); err != nil {
		return nil, err
	}
	a, err := ps.GetScalar("scale")
	if err != nil {
		return nil, err
	}
	c, err := ps.GetScalar("offset")
	if err != nil {
		return nil, err
	}
	n := d.Rows()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		dx := d.Matrix.At(i, 0) - c
		out[i] = a * dx * dx
	}

	return out, nil
}

var _ Effect = (*Quadratic)(nil)
