package effect

import (
	"math"
)

// AdstockOptions configures a GeometricAdstock effect.
//   - Mode:           Additive (default) or Multiplicative.
//   - CoefPriorScale: scale of the Normal(0, ·) prior over per-column
//     response coefficients (default 1).
//   - DecayPrior:     prior over the logit-scale decay (default
//     Normal(0, 1), i.e. decay centered at 0.5).
type AdstockOptions struct {
	Mode           Mode
	CoefPriorScale float64
	DecayPrior     Prior
}

// DefaultAdstockOptions returns the documented defaults.
func DefaultAdstockOptions() AdstockOptions {
	return AdstockOptions{Mode: Additive, CoefPriorScale: 1, DecayPrior: Normal{Mu: 0, Sigma: 1}}
}

// GeometricAdstock models carryover: each column is filtered through
//
//	a_t = x_t + decay · a_{t-1}
//
// before entering linearly with a per-column coefficient. The decay lives
// on the logit scale so it stays inside (0, 1). The recursion runs over
// the evaluation window only — carryover does not leak in from rows
// outside the requested index.
type GeometricAdstock struct {
	Base

	coefScale  float64
	decayPrior Prior
}

// NewGeometricAdstock builds the effect. A nil opts means defaults.
func NewGeometricAdstock(name string, sel Selector, opts *AdstockOptions) *GeometricAdstock {
	o := DefaultAdstockOptions()
	if opts != nil {
		o = *opts
		if o.CoefPriorScale <= 0 {
			o.CoefPriorScale = 1
		}
		if o.DecayPrior == nil {
			o.DecayPrior = Normal{Mu: 0, Sigma: 1}
		}
	}

	return &GeometricAdstock{
		Base:       NewBase(name, o.Mode, sel, false),
		coefScale:  o.CoefPriorScale,
		decayPrior: o.DecayPrior,
	}
}

// Sites declares per-column logit decay and coefficient.
func (e *GeometricAdstock) Sites() []Site {
	n := len(e.Columns())

	return []Site{
		{Name: "logit_decay", Dim: n, Prior: e.decayPrior},
		{Name: "coef", Dim: n, Prior: Normal{Mu: 0, Sigma: e.coefScale}},
	}
}

// Predict filters each column and sums the weighted carryover series.
func (e *GeometricAdstock) Predict(d *Data, _ Outputs, ps *Scoped) ([]float64, error) {
	if err := e.RequireFitted(); err != nil {
		return nil, err
	}
	logit, err := ps.Get("logit_decay")
	if err != nil {
		return nil, err
	}
	coef, err := ps.Get("coef")
	if err != nil {
		return nil, err
	}
	n := d.Rows()
	out := make([]float64, n)
	for j := range coef {
		decay := 1 / (1 + math.Exp(-logit[j]))
		carry := 0.0
		for i := 0; i < n; i++ {
			carry = d.Matrix.At(i, j) + decay*carry
			out[i] += coef[j] * carry
		}
	}

	return out, nil
}

var _ Effect = (*GeometricAdstock)(nil)
