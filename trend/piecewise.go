package trend

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ebalan/strata/effect"
	"github.com/ebalan/strata/frame"
)

// PiecewiseLinear is the default trend: offset + base rate on a
// normalized time axis, plus one rate adjustment per changepoint through
// a ReLU basis (so the trend stays continuous across changepoints).
//
// Latent sites: "offset" (Normal, anchored at the first normalized
// observation), "rate" (Normal(0, 5), initialized from the endpoint
// slope), "delta" (Laplace(0, DeltaPriorScale), one per changepoint).
type PiecewiseLinear struct {
	effect.Base

	opts PiecewiseOptions

	origin      time.Time
	span        float64   // fit-time extent of the numeric axis, in TimeUnits
	changepoint []float64 // changepoint locations on the normalized axis
	offsetInit  float64
	rateInit    float64
}

// NewPiecewiseLinear builds the trend effect. A nil opts means defaults.
// Errors: ErrBadChangepoints.
func NewPiecewiseLinear(name string, opts *PiecewiseOptions) (*PiecewiseLinear, error) {
	o := DefaultPiecewiseOptions()
	if opts != nil {
		o = *opts
		if o.TimeUnit <= 0 {
			o.TimeUnit = 24 * time.Hour
		}
		if o.DeltaPriorScale <= 0 {
			o.DeltaPriorScale = 0.05
		}
	}
	if o.ChangepointInterval <= 0 || o.ChangepointRange <= 0 {
		return nil, fmt.Errorf("%w: interval=%d range=%g",
			ErrBadChangepoints, o.ChangepointInterval, o.ChangepointRange)
	}
	// A range beyond the observed data is clipped, not rejected.
	if o.ChangepointRange > 1 {
		o.ChangepointRange = 1
	}

	return &PiecewiseLinear{
		Base: effect.NewBase(name, effect.Additive, effect.None(), true),
		opts: o,
	}, nil
}

// Fit anchors the time origin, axis span, changepoint grid, and the
// offset/rate inits from the normalized target. Errors: ErrTooShort.
func (e *PiecewiseLinear) Fit(y *frame.Series, X *frame.Frame, scale float64) error {
	if y.Len() < 2 {
		return fmt.Errorf("%w: %d observations", ErrTooShort, y.Len())
	}
	idx := y.Index()
	e.origin = idx.At(0)
	tau := idx.Offsets(e.origin, e.opts.TimeUnit)
	e.span = tau[len(tau)-1]
	if e.span <= 0 {
		e.span = 1
	}

	// Changepoints at every interval-th observation inside the prefix
	// fraction of the training index.
	limit := int(e.opts.ChangepointRange * float64(y.Len()))
	if limit > y.Len() {
		limit = y.Len()
	}
	e.changepoint = nil
	for step := e.opts.ChangepointInterval; step < limit; step += e.opts.ChangepointInterval {
		e.changepoint = append(e.changepoint, tau[step]/e.span)
	}

	e.offsetInit = y.At(0) / scale
	e.rateInit = (y.At(y.Len()-1) - y.At(0)) / scale

	return e.BindColumns(X)
}

// Sites declares offset, rate, and the per-changepoint adjustments.
func (e *PiecewiseLinear) Sites() []effect.Site {
	sites := []effect.Site{
		{Name: "offset", Dim: 1, Prior: effect.Normal{Mu: e.offsetInit, Sigma: 1}, Init: []float64{e.offsetInit}},
		{Name: "rate", Dim: 1, Prior: effect.Normal{Mu: 0, Sigma: 5}, Init: []float64{e.rateInit}},
	}
	if n := len(e.changepoint); n > 0 {
		sites = append(sites, effect.Site{
			Name:  "delta",
			Dim:   n,
			Prior: effect.Laplace{Mu: 0, Scale: e.opts.DeltaPriorScale},
		})
	}

	return sites
}

// Transform projects idx onto the fit-time axis and builds the ReLU
// changepoint basis: basis[i][j] = max(0, s_i − s_j).
// Errors: effect.ErrNotFitted.
func (e *PiecewiseLinear) Transform(_ *frame.Frame, idx frame.Index) (*effect.Data, error) {
	if err := e.RequireFitted(); err != nil {
		return nil, err
	}
	tau := idx.Offsets(e.origin, e.opts.TimeUnit)
	s := make([]float64, len(tau))
	for i, t := range tau {
		s[i] = t / e.span
	}
	d := &effect.Data{Index: idx, Aux: map[string][]float64{"s": s}}
	if n := len(e.changepoint); n > 0 {
		basis := mat.NewDense(len(s), n, nil)
		for i := range s {
			for j, cp := range e.changepoint {
				if s[i] > cp {
					basis.Set(i, j, s[i]-cp)
				}
			}
		}
		d.Matrix = basis
	}

	return d, nil
}

// Predict evaluates offset + rate·s + basis·delta.
func (e *PiecewiseLinear) Predict(d *effect.Data, _ effect.Outputs, ps *effect.Scoped) ([]float64, error) {
	if err := e.RequireFitted(); err != nil {
		return nil, err
	}
	m, err := ps.GetScalar("offset")
	if err != nil {
		return nil, err
	}
	k, err := ps.GetScalar("rate")
	if err != nil {
		return nil, err
	}
	var delta []float64
	if len(e.changepoint) > 0 {
		if delta, err = ps.Get("delta"); err != nil {
			return nil, err
		}
	}
	s := d.Aux["s"]
	out := make([]float64, len(s))
	for i := range s {
		v := m + k*s[i]
		for j := range delta {
			v += delta[j] * d.Matrix.At(i, j)
		}
		out[i] = v
	}

	return out, nil
}

// Changepoints returns the changepoint locations on the normalized time
// axis resolved at fit time.
func (e *PiecewiseLinear) Changepoints() []float64 {
	out := make([]float64, len(e.changepoint))
	copy(out, e.changepoint)

	return out
}

var _ effect.Effect = (*PiecewiseLinear)(nil)
