package effect

import (
	"fmt"
)

// LinearOptions configures a LinearRegression effect.
//   - Mode:       Additive (default) or Multiplicative.
//   - PriorScale: standard deviation of the Normal(0, ·) coefficient
//     prior (default 1).
//   - ScaleBy:    optional name of a previously computed effect whose
//     output multiplies this effect's contribution elementwise. Declares
//     a dependency, so the named effect must evaluate earlier.
type LinearOptions struct {
	Mode       Mode
	PriorScale float64
	ScaleBy    string
}

// DefaultLinearOptions returns the documented defaults.
func DefaultLinearOptions() LinearOptions {
	return LinearOptions{Mode: Additive, PriorScale: 1}
}

// LinearRegression contributes X·β over the selected columns, one latent
// coefficient per column under a Normal(0, PriorScale) prior.
//
// With ScaleBy set the contribution becomes out_t · dep_t, letting the
// same exogenous data act proportionally to another component (e.g. a
// regressor whose lift rides on the trend's magnitude).
type LinearRegression struct {
	Base

	priorScale float64
	scaleBy    string
}

// NewLinearRegression builds the effect. A nil opts means defaults.
func NewLinearRegression(name string, sel Selector, opts *LinearOptions) *LinearRegression {
	o := DefaultLinearOptions()
	if opts != nil {
		o = *opts
		if o.PriorScale <= 0 {
			o.PriorScale = 1
		}
	}
	e := &LinearRegression{
		Base:       NewBase(name, o.Mode, sel, false),
		priorScale: o.PriorScale,
		scaleBy:    o.ScaleBy,
	}
	if o.ScaleBy != "" {
		e.DependOn(o.ScaleBy)
	}

	return e
}

// Sites declares one coefficient per bound column.
func (e *LinearRegression) Sites() []Site {
	return []Site{{
		Name:  "coef",
		Dim:   len(e.Columns()),
		Prior: Normal{Mu: 0, Sigma: e.priorScale},
	}}
}

// Predict returns X·β (optionally scaled by the dependency output).
func (e *LinearRegression) Predict(d *Data, prev Outputs, ps *Scoped) ([]float64, error) {
	if err := e.RequireFitted(); err != nil {
		return nil, err
	}
	beta, err := ps.Get("coef")
	if err != nil {
		return nil, err
	}
	n := d.Rows()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v := 0.0
		for j := range beta {
			v += d.Matrix.At(i, j) * beta[j]
		}
		out[i] = v
	}
	if e.scaleBy != "" {
		dep, ok := prev[e.scaleBy]
		if !ok {
			return nil, fmt.Errorf("%w: effect %q needs %q", ErrMissingDependency, e.Name(), e.scaleBy)
		}
		for i := 0; i < n; i++ {
			out[i] *= dep[i]
		}
	}

	return out, nil
}

// compile-time contract check
var _ Effect = (*LinearRegression)(nil)
