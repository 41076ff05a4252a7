package effect

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ebalan/strata/frame"
)

// SeasonalityOptions configures a FourierSeasonality effect.
//   - Mode:       Additive (default) or Multiplicative.
//   - PriorScale: standard deviation of the Normal(0, ·) prior over the
//     Fourier coefficients (default 1).
//   - TimeUnit:   duration of one step on the numeric time axis
//     (default 24h, i.e. Period is measured in days).
type SeasonalityOptions struct {
	Mode       Mode
	PriorScale float64
	TimeUnit   time.Duration
}

// DefaultSeasonalityOptions returns the documented defaults.
func DefaultSeasonalityOptions() SeasonalityOptions {
	return SeasonalityOptions{Mode: Additive, PriorScale: 1, TimeUnit: 24 * time.Hour}
}

// FourierSeasonality is a pure time effect: a periodic component built
// from Order sine/cosine pairs of the given Period. It selects no
// exogenous columns; the design matrix comes from the evaluation index
// alone, using a time origin fixed at fit so historical and forecast
// evaluations share one phase.
type FourierSeasonality struct {
	Base

	period     float64
	order      int
	priorScale float64
	unit       time.Duration

	origin time.Time
}

// NewFourierSeasonality builds the effect. Period is measured in
// TimeUnit steps (7 with the default unit is weekly seasonality).
// Errors: ErrBadConfig for period <= 0 or order <= 0.
func NewFourierSeasonality(name string, period float64, order int, opts *SeasonalityOptions) (*FourierSeasonality, error) {
	if period <= 0 || order <= 0 {
		return nil, fmt.Errorf("%w: period=%g order=%d", ErrBadConfig, period, order)
	}
	o := DefaultSeasonalityOptions()
	if opts != nil {
		o = *opts
		if o.PriorScale <= 0 {
			o.PriorScale = 1
		}
		if o.TimeUnit <= 0 {
			o.TimeUnit = 24 * time.Hour
		}
	}

	return &FourierSeasonality{
		Base:       NewBase(name, o.Mode, None(), true),
		period:     period,
		order:      order,
		priorScale: o.PriorScale,
		unit:       o.TimeUnit,
	}, nil
}

// Fit anchors the time origin at the first training timestamp.
// Errors: ErrNoTarget.
func (e *FourierSeasonality) Fit(y *frame.Series, X *frame.Frame, _ float64) error {
	if y == nil || y.Len() == 0 {
		return fmt.Errorf("%w: effect %q", ErrNoTarget, e.Name())
	}
	e.origin = y.Index().At(0)

	return e.BindColumns(X)
}

// Sites declares the 2·Order Fourier coefficients.
func (e *FourierSeasonality) Sites() []Site {
	return []Site{{
		Name:  "beta",
		Dim:   2 * e.order,
		Prior: Normal{Mu: 0, Sigma: e.priorScale},
	}}
}

// Transform builds the sin/cos design matrix at idx.
// Errors: ErrNotFitted.
func (e *FourierSeasonality) Transform(_ *frame.Frame, idx frame.Index) (*Data, error) {
	if err := e.RequireFitted(); err != nil {
		return nil, err
	}
	tau := idx.Offsets(e.origin, e.unit)
	design := mat.NewDense(len(tau), 2*e.order, nil)
	for i, t := range tau {
		for k := 0; k < e.order; k++ {
			arg := 2 * math.Pi * float64(k+1) * t / e.period
			design.Set(i, 2*k, math.Sin(arg))
			design.Set(i, 2*k+1, math.Cos(arg))
		}
	}

	return &Data{Matrix: design, Index: idx}, nil
}

// Predict returns design·β.
func (e *FourierSeasonality) Predict(d *Data, _ Outputs, ps *Scoped) ([]float64, error) {
	if err := e.RequireFitted(); err != nil {
		return nil, err
	}
	beta, err := ps.Get("beta")
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

	return out, nil
}

var _ Effect = (*FourierSeasonality)(nil)
