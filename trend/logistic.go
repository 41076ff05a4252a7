package trend

import (
	"fmt"
	"math"
	"time"

	"github.com/ebalan/strata/effect"
	"github.com/ebalan/strata/frame"
)

// Logistic is a generalized logistic diffusion trend:
//
//	trend(s) = C / (1 + exp(−r·(s − m)))
//
// on the fit-anchored normalized time axis, with latent log-capacity
// (anchored at the normalized series maximum), growth rate r, and
// midpoint m. The realized capacity C is recorded per evaluation as the
// auxiliary deterministic output "capacity".
type Logistic struct {
	effect.Base

	opts LogisticOptions

	origin       time.Time
	span         float64
	logCapAnchor float64
	rateInit     float64
}

// NewLogistic builds the trend effect. A nil opts means defaults.
func NewLogistic(name string, opts *LogisticOptions) *Logistic {
	o := DefaultLogisticOptions()
	if opts != nil {
		o = *opts
		if o.CapacityPriorSigma <= 0 {
			o.CapacityPriorSigma = 1
		}
		if o.TimeUnit <= 0 {
			o.TimeUnit = 24 * time.Hour
		}
	}

	return &Logistic{
		Base: effect.NewBase(name, effect.Additive, effect.None(), true),
		opts: o,
	}
}

// Fit anchors the time axis and the capacity prior. Errors: ErrTooShort.
func (e *Logistic) Fit(y *frame.Series, X *frame.Frame, scale float64) error {
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

	// Capacity anchor: slightly above the observed normalized maximum, so
	// the curve has headroom to keep diffusing past the data.
	maxNorm := 0.0
	for i := 0; i < y.Len(); i++ {
		if v := y.At(i) / scale; v > maxNorm {
			maxNorm = v
		}
	}
	if maxNorm <= 0 {
		maxNorm = 1
	}
	e.logCapAnchor = math.Log(1.05 * maxNorm)
	e.rateInit = 1

	return e.BindColumns(X)
}

// Sites declares log-capacity, rate, and midpoint.
func (e *Logistic) Sites() []effect.Site {
	return []effect.Site{
		{
			Name:  "log_capacity",
			Dim:   1,
			Prior: effect.Normal{Mu: e.logCapAnchor, Sigma: e.opts.CapacityPriorSigma},
			Init:  []float64{e.logCapAnchor},
		},
		{Name: "rate", Dim: 1, Prior: effect.Normal{Mu: 0, Sigma: 5}, Init: []float64{e.rateInit}},
		{Name: "midpoint", Dim: 1, Prior: effect.Normal{Mu: 0.5, Sigma: 1}, Init: []float64{0.5}},
	}
}

// Transform projects idx onto the fit-time normalized axis.
// Errors: effect.ErrNotFitted.
func (e *Logistic) Transform(_ *frame.Frame, idx frame.Index) (*effect.Data, error) {
	if err := e.RequireFitted(); err != nil {
		return nil, err
	}
	tau := idx.Offsets(e.origin, e.opts.TimeUnit)
	s := make([]float64, len(tau))
	for i, t := range tau {
		s[i] = t / e.span
	}

	return &effect.Data{Index: idx, Aux: map[string][]float64{"s": s}}, nil
}

// Predict evaluates the logistic curve and records the capacity.
func (e *Logistic) Predict(d *effect.Data, _ effect.Outputs, ps *effect.Scoped) ([]float64, error) {
	if err := e.RequireFitted(); err != nil {
		return nil, err
	}
	logCap, err := ps.GetScalar("log_capacity")
	if err != nil {
		return nil, err
	}
	rate, err := ps.GetScalar("rate")
	if err != nil {
		return nil, err
	}
	mid, err := ps.GetScalar("midpoint")
	if err != nil {
		return nil, err
	}
	capacity := math.Exp(logCap)
	ps.SetDeterministic("capacity", []float64{capacity})

	s := d.Aux["s"]
	out := make([]float64, len(s))
	for i := range s {
		out[i] = capacity / (1 + math.Exp(-rate*(s[i]-mid)))
	}

	return out, nil
}

var _ effect.Effect = (*Logistic)(nil)
