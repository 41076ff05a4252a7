package model

import (
	"math"

	"bitbucket.org/dtolpin/infergo/dist"
	ppl "bitbucket.org/dtolpin/infergo/model"

	"github.com/ebalan/strata/effect"
	"github.com/ebalan/strata/frame"
)

// noiseLogScaleInit centers the latent observation noise at roughly 10%
// of the target scale (the target is normalized before the likelihood).
const noiseLogScaleInit = -2.3

// Model is the generative computation for one fit: every effect fitted
// and transformed against the training panel, latent sites laid out into
// one flat vector, and a Gaussian likelihood over the normalized target.
//
// Observe returns the log-joint (priors plus likelihood) at a parameter
// vector, which makes Model a valid infergo probabilistic model. All
// methods are read-only after Build, so concurrent evaluations are safe.
type Model struct {
	graph  *Graph
	layout *effect.Layout
	scale  float64

	yNorm []float64
	data  map[string]*effect.Data
}

// Build fits the graph against (y, X), transforms every effect at the
// training index, and lays out the latent sites. scale is the fit-time
// normalization factor (the forecaster derives it from y).
//
// Errors: ErrNoData, effect lifecycle/configuration errors, and
// frame.ErrIndexNotCovered when X does not cover y's index.
func Build(g *Graph, y *frame.Series, X *frame.Frame, scale float64) (*Model, error) {
	if y == nil || y.Len() == 0 {
		return nil, ErrNoData
	}
	if scale <= 0 {
		scale = 1
	}

	m := &Model{
		graph: g,
		scale: scale,
		data:  make(map[string]*effect.Data, 1+len(g.others)),
	}

	for _, e := range g.Effects() {
		if err := e.Fit(y, X, scale); err != nil {
			return nil, err
		}
	}

	fitIdx := y.Index()
	for _, e := range g.Effects() {
		d, err := e.Transform(X, fitIdx)
		if err != nil {
			return nil, err
		}
		m.data[e.Name()] = d
	}

	layout := effect.NewLayout()
	for _, e := range g.Effects() {
		for _, s := range e.Sites() {
			if err := layout.Register(e.Name(), s); err != nil {
				return nil, err
			}
		}
	}
	err := layout.Register("observation", effect.Site{
		Name:  "log_scale",
		Dim:   1,
		Prior: effect.Normal{Mu: noiseLogScaleInit, Sigma: 1},
	})
	if err != nil {
		return nil, err
	}
	m.layout = layout

	m.yNorm = y.Values()
	for i := range m.yNorm {
		m.yNorm[i] /= scale
	}

	return m, nil
}

// Graph returns the validated effect graph.
func (m *Model) Graph() *Graph { return m.graph }

// Scale returns the fit-time normalization factor.
func (m *Model) Scale() float64 { return m.scale }

// Dim returns the flat parameter vector length.
func (m *Model) Dim() int { return m.layout.Dim() }

// Init returns the initial parameter vector assembled from site anchors.
func (m *Model) Init() []float64 { return m.layout.Init() }

// Layout returns the latent-site layout.
func (m *Model) Layout() *effect.Layout { return m.layout }

// TransformAt re-runs every effect's Transform against an arbitrary
// evaluation index (typically the forecast horizon). X must cover idx.
func (m *Model) TransformAt(X *frame.Frame, idx frame.Index) (map[string]*effect.Data, error) {
	out := make(map[string]*effect.Data, 1+len(m.graph.others))
	for _, e := range m.graph.Effects() {
		d, err := e.Transform(X, idx)
		if err != nil {
			return nil, err
		}
		out[e.Name()] = d
	}

	return out, nil
}

// FitData returns the training-index transforms built by Build.
func (m *Model) FitData() map[string]*effect.Data { return m.data }

// Compose evaluates the graph at x over the given transformed data:
// trend first with an empty mapping, then every effect in graph order
// with the mapping accumulated so far. Additive contributions sum,
// multiplicative ones scale the sum by (1 + c).
//
// Returns the composed total (normalized space), the per-effect
// contribution mapping, and any auxiliary deterministics recorded
// during the pass.
func (m *Model) Compose(x []float64, data map[string]*effect.Data) (total []float64, comps effect.Outputs, det map[string][]float64, err error) {
	params := m.layout.Bind(x)
	comps = make(effect.Outputs, 1+len(m.graph.others))

	effects := m.graph.Effects()
	n := data[effects[0].Name()].Rows()
	sumAdd := make([]float64, n)
	prodMult := make([]float64, n)
	for i := range prodMult {
		prodMult[i] = 1
	}

	for _, e := range effects {
		out, perr := e.Predict(data[e.Name()], comps, params.Scope(e.Name()))
		if perr != nil {
			return nil, nil, nil, perr
		}
		comps[e.Name()] = out
		if e.Mode() == effect.Multiplicative {
			for i := 0; i < n; i++ {
				prodMult[i] *= 1 + out[i]
			}
		} else {
			for i := 0; i < n; i++ {
				sumAdd[i] += out[i]
			}
		}
	}

	total = make([]float64, n)
	for i := 0; i < n; i++ {
		total[i] = sumAdd[i] * prodMult[i]
	}

	det = make(map[string][]float64)
	for _, name := range params.Deterministics() {
		det[name] = params.Deterministic(name)
	}

	return total, comps, det, nil
}

// NoiseScale returns the observation noise standard deviation encoded in
// x (normalized space).
func (m *Model) NoiseScale(x []float64) float64 {
	params := m.layout.Bind(x)
	logScale, err := params.Site("observation/log_scale")
	if err != nil {
		return math.Exp(noiseLogScaleInit)
	}

	return math.Exp(logScale[0])
}

// Observe returns the log-joint at x: site priors plus the Gaussian
// likelihood of the normalized target under the composed mean. A compose
// failure (a programming error, since the graph is validated eagerly)
// yields -Inf so inference backs away rather than crashing mid-sample.
func (m *Model) Observe(x []float64) float64 {
	ll := m.layout.LogPrior(x)

	total, _, _, err := m.Compose(x, m.data)
	if err != nil {
		return math.Inf(-1)
	}
	sigma := m.NoiseScale(x)
	for i, y := range m.yNorm {
		ll += dist.Normal.Logp(total[i], sigma, y)
	}

	return ll
}

// Model satisfies the infergo probabilistic-model contract.
var _ ppl.Model = (*Model)(nil)
