package effect

import (
	"math"
	"sort"

	"github.com/ebalan/strata/frame"
)

// HillOptions configures a Hill saturation effect.
//   - Mode:           Additive (default) or Multiplicative.
//   - CoefPriorScale: scale of the Normal(0, ·) prior over per-column
//     response coefficients (default 1).
type HillOptions struct {
	Mode           Mode
	CoefPriorScale float64
}

// DefaultHillOptions returns the documented defaults.
func DefaultHillOptions() HillOptions {
	return HillOptions{Mode: Additive, CoefPriorScale: 1}
}

// Hill applies a saturating Hill response to each selected column:
//
//	out_t = Σ_j coef_j · x_tj^s_j / (x_tj^s_j + k_j^s_j)
//
// The half-saturation k_j and slope s_j live on the log scale with
// Normal priors, so both stay positive without constrained sampling.
// The log-half-saturation init is anchored at each column's fit-time
// median, which keeps the curve's knee inside the observed spend range.
// Negative inputs are clamped to zero (spend cannot be negative).
type Hill struct {
	Base

	coefScale float64

	logHalfInit []float64
}

// NewHill builds the effect. A nil opts means defaults.
func NewHill(name string, sel Selector, opts *HillOptions) *Hill {
	o := DefaultHillOptions()
	if opts != nil {
		o = *opts
		if o.CoefPriorScale <= 0 {
			o.CoefPriorScale = 1
		}
	}

	return &Hill{
		Base:      NewBase(name, o.Mode, sel, false),
		coefScale: o.CoefPriorScale,
	}
}

// Fit binds columns and anchors each log-half-saturation at the column's
// positive median (1 when the column is all-zero).
func (e *Hill) Fit(_ *frame.Series, X *frame.Frame, _ float64) error {
	if err := e.BindColumns(X); err != nil {
		return err
	}
	cols := e.Columns()
	e.logHalfInit = make([]float64, len(cols))
	for j, name := range cols {
		vals, err := X.Column(name)
		if err != nil {
			return err
		}
		e.logHalfInit[j] = math.Log(positiveMedian(vals))
	}

	return nil
}

// Sites declares per-column log half-saturation, log slope, and coefficient.
func (e *Hill) Sites() []Site {
	n := len(e.Columns())

	return []Site{
		{Name: "log_halfmax", Dim: n, Prior: Normal{Mu: 0, Sigma: 2}, Init: e.logHalfInit},
		{Name: "log_slope", Dim: n, Prior: Normal{Mu: 0, Sigma: 0.5}},
		{Name: "coef", Dim: n, Prior: Normal{Mu: 0, Sigma: e.coefScale}},
	}
}

// Predict sums the per-column saturated responses.
func (e *Hill) Predict(d *Data, _ Outputs, ps *Scoped) ([]float64, error) {
	if err := e.RequireFitted(); err != nil {
		return nil, err
	}
	logK, err := ps.Get("log_halfmax")
	if err != nil {
		return nil, err
	}
	logS, err := ps.Get("log_slope")
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
		k := math.Exp(logK[j])
		s := math.Exp(logS[j])
		ks := math.Pow(k, s)
		for i := 0; i < n; i++ {
			x := d.Matrix.At(i, j)
			if x <= 0 {
				continue
			}
			xs := math.Pow(x, s)
			out[i] += coef[j] * xs / (xs + ks)
		}
	}

	return out, nil
}

// positiveMedian returns the median of the strictly positive values,
// falling back to 1 when there are none.
func positiveMedian(vals []float64) float64 {
	var pos []float64
	for _, v := range vals {
		if v > 0 {
			pos = append(pos, v)
		}
	}
	if len(pos) == 0 {
		return 1
	}
	sort.Float64s(pos)
	mid := len(pos) / 2
	if len(pos)%2 == 1 {
		return pos[mid]
	}

	return 0.5 * (pos[mid-1] + pos[mid])
}

var _ Effect = (*Hill)(nil)
