package trend

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/ebalan/strata/effect"
	"github.com/ebalan/strata/frame"
)

// Flat is a constant-level trend: one latent level anchored at the
// normalized target mean. Useful as a baseline, or when all structure
// is expected from regressors and seasonality.
type Flat struct {
	effect.Base

	levelInit float64
}

// NewFlat builds the trend effect.
func NewFlat(name string) *Flat {
	return &Flat{Base: effect.NewBase(name, effect.Additive, effect.None(), true)}
}

// Fit anchors the level at the normalized target mean. Errors: ErrTooShort.
func (e *Flat) Fit(y *frame.Series, X *frame.Frame, scale float64) error {
	if y.Len() < 1 {
		return fmt.Errorf("%w: %d observations", ErrTooShort, y.Len())
	}
	vals := y.Values()
	for i := range vals {
		vals[i] /= scale
	}
	e.levelInit = stat.Mean(vals, nil)

	return e.BindColumns(X)
}

// Sites declares the single level scalar.
func (e *Flat) Sites() []effect.Site {
	return []effect.Site{{
		Name:  "level",
		Dim:   1,
		Prior: effect.Normal{Mu: e.levelInit, Sigma: 1},
		Init:  []float64{e.levelInit},
	}}
}

// Predict returns the constant level over the evaluation index.
func (e *Flat) Predict(d *effect.Data, _ effect.Outputs, ps *effect.Scoped) ([]float64, error) {
	if err := e.RequireFitted(); err != nil {
		return nil, err
	}
	level, err := ps.GetScalar("level")
	if err != nil {
		return nil, err
	}
	out := make([]float64, d.Rows())
	for i := range out {
		out[i] = level
	}

	return out, nil
}

var _ effect.Effect = (*Flat)(nil)
