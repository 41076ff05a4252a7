package forecaster

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ebalan/strata/effect"
	"github.com/ebalan/strata/frame"
	"github.com/ebalan/strata/inference"
	"github.com/ebalan/strata/model"
)

// Forecaster owns an effect graph and an inference engine, and carries
// the fitted state (posterior artifact, fit-time scale factor) between
// Fit and the Predict* calls.
//
// A Forecaster is single-writer (Fit) / multi-reader (Predict*): no
// Predict* call mutates fitted state.
type Forecaster struct {
	graph *model.Graph
	opts  Options

	m        *model.Model
	artifact *inference.Artifact
	scale    float64
}

// New builds a forecaster over a validated graph. A nil opts means
// defaults (MAP inference, 100 predictive draws).
func New(g *model.Graph, opts *Options) *Forecaster {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
		if o.Engine == nil {
			o.Engine = inference.NewMAP(nil)
		}
		if o.SampleDraws <= 0 {
			o.SampleDraws = 100
		}
	}

	return &Forecaster{graph: g, opts: o}
}

// Fit fits every effect, runs inference, and replaces any previous
// fitted state. The scale factor (largest absolute target value) is
// derived here and fixed for the life of the fit.
//
// Errors: ErrNoTarget, ErrHorizonNotCovered (X must cover y's index),
// plus eager effect/graph configuration errors.
func (f *Forecaster) Fit(y *frame.Series, X *frame.Frame) error {
	if y == nil || y.Len() == 0 {
		return ErrNoTarget
	}
	if X != nil && !X.Covers(y.Index()) {
		return ErrHorizonNotCovered
	}
	scale := y.AbsMax()
	if scale == 0 {
		scale = 1
	}

	m, err := model.Build(f.graph, y, X, scale)
	if err != nil {
		return err
	}
	art, err := f.opts.Engine.Infer(m)
	if err != nil {
		return err
	}

	f.m = m
	f.artifact = art
	f.scale = scale

	return nil
}

// Fitted reports whether a successful Fit has completed.
func (f *Forecaster) Fitted() bool { return f.artifact != nil }

// Artifact returns the posterior artifact of the current fit (nil before
// Fit). Diagnostics attached by the engine live here.
func (f *Forecaster) Artifact() *inference.Artifact { return f.artifact }

// Scale returns the fit-time normalization factor.
func (f *Forecaster) Scale() float64 { return f.scale }

// Model returns the orchestrated model of the current fit.
func (f *Forecaster) Model() *model.Model { return f.m }

// prepare validates a Predict* call and re-transforms every effect at fh.
func (f *Forecaster) prepare(fh frame.Index, X *frame.Frame) (map[string]*effect.Data, error) {
	if !f.Fitted() {
		return nil, ErrNotFitted
	}
	if len(fh) == 0 {
		return nil, ErrEmptyHorizon
	}
	if X != nil && !X.Covers(fh) {
		return nil, ErrHorizonNotCovered
	}

	return f.m.TransformAt(X, fh)
}

// renderTotals composes the mean function for every posterior draw.
// Totals are in target units; components stay per-mode (additive in
// target units after de-normalization by the caller, multiplicative as
// unitless lifts).
func (f *Forecaster) renderTotals(data map[string]*effect.Data, fh frame.Index) (totals [][]float64, comps []effect.Outputs, err error) {
	for _, x := range f.artifact.Draws {
		total, c, _, cerr := f.m.Compose(x, data)
		if cerr != nil {
			return nil, nil, cerr
		}
		for i := range total {
			total[i] *= f.scale
		}
		totals = append(totals, total)
		comps = append(comps, c)
	}

	return totals, comps, nil
}

// Predict returns the point forecast: the across-draw mean of the
// composed mean function over fh.
func (f *Forecaster) Predict(fh frame.Index, X *frame.Frame) (*frame.Series, error) {
	data, err := f.prepare(fh, X)
	if err != nil {
		return nil, err
	}
	totals, _, err := f.renderTotals(data, fh)
	if err != nil {
		return nil, err
	}
	point := meanAcross(totals)

	return frame.NewSeries(fh, point)
}

// PredictInterval returns the central predictive band at the given
// coverage (e.g. 0.9 for a 90% band), from posterior-predictive draws.
// Errors: ErrBadCoverage plus the usual Predict* validation.
func (f *Forecaster) PredictInterval(fh frame.Index, X *frame.Frame, coverage float64) (*Interval, error) {
	if coverage <= 0 || coverage >= 1 {
		return nil, ErrBadCoverage
	}
	samples, err := f.PredictSamples(fh, X)
	if err != nil {
		return nil, err
	}

	alpha := 1 - coverage
	n := len(fh)
	lower := make([]float64, n)
	upper := make([]float64, n)
	column := make([]float64, len(samples.Draws))
	for t := 0; t < n; t++ {
		for d := range samples.Draws {
			column[d] = samples.Draws[d][t]
		}
		sort.Float64s(column)
		lower[t] = stat.Quantile(alpha/2, stat.Empirical, column, nil)
		upper[t] = stat.Quantile(1-alpha/2, stat.Empirical, column, nil)
	}

	return &Interval{Index: fh, Lower: lower, Upper: upper, Coverage: coverage}, nil
}

// PredictComponents returns the per-effect contribution table over fh as
// a Frame keyed by effect name, in graph order. Additive columns are in
// target units; multiplicative columns are unitless fractional lifts, so
//
//	(Σ additive) × Π (1 + multiplicative)
//
// reconstructs Predict's point forecast. The reconstruction is exact for
// a single-draw (MAP) posterior. Columns are posterior means, and the
// mean of a product is not the product of the means, so under a
// multi-draw posterior with multiplicative effects it only approximates
// Predict.
func (f *Forecaster) PredictComponents(fh frame.Index, X *frame.Frame) (*frame.Frame, error) {
	data, err := f.prepare(fh, X)
	if err != nil {
		return nil, err
	}
	_, comps, err := f.renderTotals(data, fh)
	if err != nil {
		return nil, err
	}

	out, err := frame.New(fh)
	if err != nil {
		return nil, err
	}
	for _, e := range f.graph.Effects() {
		perDraw := make([][]float64, len(comps))
		for d, c := range comps {
			perDraw[d] = c[e.Name()]
		}
		col := meanAcross(perDraw)
		if e.Mode() == effect.Additive {
			for i := range col {
				col[i] *= f.scale
			}
		}
		if err = out.Add(e.Name(), col); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// PredictSamples returns raw posterior-predictive draws over fh: the
// composed mean per posterior draw plus Gaussian observation noise. A
// single-draw (MAP) posterior is expanded to SampleDraws noise draws.
// Randomness derives from the configured Seed only, so repeated calls
// are identical.
func (f *Forecaster) PredictSamples(fh frame.Index, X *frame.Frame) (*Samples, error) {
	data, err := f.prepare(fh, X)
	if err != nil {
		return nil, err
	}
	totals, _, err := f.renderTotals(data, fh)
	if err != nil {
		return nil, err
	}

	rng := f.newRNG()
	var draws [][]float64
	emit := func(total []float64, sigma float64) {
		s := make([]float64, len(total))
		for i, v := range total {
			s[i] = v + sigma*f.scale*rng.NormFloat64()
		}
		draws = append(draws, s)
	}

	if len(totals) == 1 {
		sigma := f.m.NoiseScale(f.artifact.Draws[0])
		for d := 0; d < f.opts.SampleDraws; d++ {
			emit(totals[0], sigma)
		}
	} else {
		for d, total := range totals {
			emit(total, f.m.NoiseScale(f.artifact.Draws[d]))
		}
	}

	return &Samples{Index: fh, Draws: draws}, nil
}

// PredictComponentSamples returns raw per-effect posterior draws of each
// component's contribution over fh (no observation noise — components
// parametrize the mean). Additive components are in target units.
func (f *Forecaster) PredictComponentSamples(fh frame.Index, X *frame.Frame) (*ComponentSamples, error) {
	data, err := f.prepare(fh, X)
	if err != nil {
		return nil, err
	}
	_, comps, err := f.renderTotals(data, fh)
	if err != nil {
		return nil, err
	}

	out := &ComponentSamples{Index: fh, By: make(map[string][][]float64)}
	for _, e := range f.graph.Effects() {
		perDraw := make([][]float64, len(comps))
		for d, c := range comps {
			col := make([]float64, len(c[e.Name()]))
			copy(col, c[e.Name()])
			if e.Mode() == effect.Additive {
				for i := range col {
					col[i] *= f.scale
				}
			}
			perDraw[d] = col
		}
		out.By[e.Name()] = perDraw
	}

	return out, nil
}

// newRNG derives a fresh deterministic stream for one Predict* call.
func (f *Forecaster) newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(uint64(f.opts.Seed), 0x51a7bcd5f0a3e2d1))
}

// meanAcross averages rows of equal length; a single row is copied.
func meanAcross(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}
	out := make([]float64, len(rows[0]))
	for _, r := range rows {
		for i, v := range r {
			out[i] += v
		}
	}
	inv := 1 / float64(len(rows))
	for i := range out {
		out[i] *= inv
	}

	return out
}
