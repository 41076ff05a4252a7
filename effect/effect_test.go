package effect_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebalan/strata/effect"
	"github.com/ebalan/strata/frame"
)

var start = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

// newSpendFrame builds a two-column daily frame used across the tests.
func newSpendFrame(t *testing.T, n int) *frame.Frame {
	t.Helper()
	ix := frame.Range(start, n, 24*time.Hour)
	X, err := frame.New(ix)
	require.NoError(t, err, "frame construction must succeed")

	tv := make([]float64, n)
	web := make([]float64, n)
	for i := range tv {
		tv[i] = float64(i + 1)
		web[i] = 2 * float64(i+1)
	}
	require.NoError(t, X.Add("spend_tv", tv), "add spend_tv")
	require.NoError(t, X.Add("spend_web", web), "add spend_web")

	return X
}

// scope fits nothing extra: it registers the effect's sites in a fresh
// layout, binds x, and returns the effect-local view.
func scope(t *testing.T, e effect.Effect, x []float64) *effect.Scoped {
	t.Helper()
	layout := effect.NewLayout()
	for _, s := range e.Sites() {
		require.NoError(t, layout.Register(e.Name(), s), "site registration must succeed")
	}
	require.Equal(t, len(x), layout.Dim(), "bound vector must match layout dim")

	return layout.Bind(x).Scope(e.Name())
}

// TestBase_Lifecycle verifies the fit-before-use contract and the
// eager non-empty-match rule.
func TestBase_Lifecycle(t *testing.T) {
	X := newSpendFrame(t, 5)
	e := effect.NewLinearRegression("media", effect.Prefix("spend_"), nil)

	_, err := e.Transform(X, X.Index())
	assert.ErrorIs(t, err, effect.ErrNotFitted, "transform before fit must error")

	miss := effect.NewLinearRegression("media", effect.Exact("nope"), nil)
	err = miss.Fit(nil, X, 1)
	assert.ErrorIs(t, err, effect.ErrNoMatchingColumns, "selector with no match must error at fit")

	require.NoError(t, e.Fit(nil, X, 1), "fit with matching columns must succeed")
	assert.Equal(t, []string{"spend_tv", "spend_web"}, e.Columns(), "bound columns must follow frame order")
}

// TestBase_TransformWithoutFrame verifies that a column-bound effect
// rejects a nil exogenous frame at transform time.
func TestBase_TransformWithoutFrame(t *testing.T) {
	X := newSpendFrame(t, 4)
	e := effect.NewLinearRegression("media", effect.All(), nil)
	require.NoError(t, e.Fit(nil, X, 1), "fit must succeed")

	_, err := e.Transform(nil, X.Index())
	assert.ErrorIs(t, err, effect.ErrNoMatchingColumns, "nil frame with bound columns must error")
}

// TestLayout_RegisterAndPriors verifies qualified-name uniqueness,
// default inits, and the summed log-prior.
func TestLayout_RegisterAndPriors(t *testing.T) {
	layout := effect.NewLayout()
	site := effect.Site{Name: "coef", Dim: 2, Prior: effect.Normal{Mu: 1, Sigma: 1}}

	require.NoError(t, layout.Register("a", site), "first registration must succeed")
	require.NoError(t, layout.Register("b", site), "same local name under another owner must succeed")
	assert.ErrorIs(t, layout.Register("a", site), effect.ErrDuplicateSite, "duplicate qualified name must error")
	assert.ErrorIs(t, layout.Register("a", effect.Site{Name: "bad", Dim: 0, Prior: effect.Normal{Sigma: 1}}),
		effect.ErrBadSite, "zero-dim site must error")

	assert.Equal(t, 4, layout.Dim(), "dim must sum block lengths")
	assert.Equal(t, []float64{1, 1, 1, 1}, layout.Init(), "default init must sit at the prior location")

	x := layout.Init()
	atLoc := layout.LogPrior(x)
	x[0] = 5
	assert.Greater(t, atLoc, layout.LogPrior(x), "moving off the prior location must lower the log-prior")

	params := layout.Bind(layout.Init())
	_, err := params.Site("a/missing")
	assert.ErrorIs(t, err, effect.ErrUnknownSite, "unknown qualified site must error")

	block, err := params.Site("b/coef")
	require.NoError(t, err, "known qualified site must resolve")
	assert.Len(t, block, 2, "resolved block must have the declared dim")
}

// TestLinearRegression_Predict verifies X·β and the ScaleBy dependency.
func TestLinearRegression_Predict(t *testing.T) {
	X := newSpendFrame(t, 3)
	e := effect.NewLinearRegression("media", effect.Prefix("spend_"), nil)
	require.NoError(t, e.Fit(nil, X, 1), "fit must succeed")

	d, err := e.Transform(X, X.Index())
	require.NoError(t, err, "transform must succeed")

	ps := scope(t, e, []float64{2, 0.5})
	out, err := e.Predict(d, nil, ps)
	require.NoError(t, err, "predict must succeed")
	// row i: 2·tv + 0.5·web = 2(i+1) + (i+1) = 3(i+1)
	assert.InDeltaSlice(t, []float64{3, 6, 9}, out, 1e-12, "contribution must be X·β")
}

// TestLinearRegression_ScaleBy verifies the declared dependency is both
// required and applied.
func TestLinearRegression_ScaleBy(t *testing.T) {
	X := newSpendFrame(t, 2)
	e := effect.NewLinearRegression("media", effect.Exact("spend_tv"), &effect.LinearOptions{ScaleBy: "trend"})
	assert.Equal(t, []string{"trend"}, e.Dependencies(), "ScaleBy must declare a dependency")
	require.NoError(t, e.Fit(nil, X, 1), "fit must succeed")

	d, err := e.Transform(X, X.Index())
	require.NoError(t, err, "transform must succeed")
	ps := scope(t, e, []float64{1})

	_, err = e.Predict(d, effect.Outputs{}, ps)
	assert.ErrorIs(t, err, effect.ErrMissingDependency, "missing dependency output must error")

	out, err := e.Predict(d, effect.Outputs{"trend": []float64{10, 100}}, ps)
	require.NoError(t, err, "predict with dependency must succeed")
	assert.InDeltaSlice(t, []float64{10, 200}, out, 1e-12, "contribution must ride on the dependency output")
}

// TestQuadratic_FitAndPredict verifies the one-column rule, the
// mean-anchored vertex init, and the curve itself.
func TestQuadratic_FitAndPredict(t *testing.T) {
	X := newSpendFrame(t, 3)

	multi := effect.NewQuadratic("q", effect.Prefix("spend_"), nil)
	assert.ErrorIs(t, multi.Fit(nil, X, 1), effect.ErrColumnCount, "multi-column match must error")

	e := effect.NewQuadratic("q", effect.Exact("spend_tv"), nil)
	require.NoError(t, e.Fit(nil, X, 1), "single-column fit must succeed")

	sites := e.Sites()
	require.Len(t, sites, 2, "quadratic declares curvature and vertex")
	assert.Equal(t, []float64{2}, sites[1].Init, "vertex init must anchor at the column mean")

	d, err := e.Transform(X, X.Index())
	require.NoError(t, err, "transform must succeed")
	ps := scope(t, e, []float64{3, 2}) // a=3, c=2
	out, err := e.Predict(d, nil, ps)
	require.NoError(t, err, "predict must succeed")
	assert.InDeltaSlice(t, []float64{3, 0, 3}, out, 1e-12, "contribution must be a·(x−c)²")
}

// TestFourierSeasonality_PhaseAndPeriod verifies the design phase is
// anchored at the fit origin and repeats with the period.
func TestFourierSeasonality_PhaseAndPeriod(t *testing.T) {
	_, err := effect.NewFourierSeasonality("weekly", 0, 3, nil)
	assert.ErrorIs(t, err, effect.ErrBadConfig, "non-positive period must error")

	e, err := effect.NewFourierSeasonality("weekly", 7, 1, nil)
	require.NoError(t, err, "valid seasonality must construct")

	assert.ErrorIs(t, e.Fit(nil, nil, 1), effect.ErrNoTarget, "fit without a target must error, not panic")

	ix := frame.Range(start, 15, 24*time.Hour)
	y, err := frame.NewSeries(ix, make([]float64, 15))
	require.NoError(t, err, "target must construct")
	require.NoError(t, e.Fit(y, nil, 1), "fit must succeed without exogenous data")

	d, err := e.Transform(nil, ix)
	require.NoError(t, err, "pure time effect must transform without a frame")
	ps := scope(t, e, []float64{1, 0}) // sin component only
	out, err := e.Predict(d, nil, ps)
	require.NoError(t, err, "predict must succeed")

	assert.InDelta(t, 0, out[0], 1e-9, "phase must be zero at the fit origin")
	assert.InDelta(t, out[0], out[7], 1e-9, "the component must repeat after one period")
	assert.InDelta(t, out[3], out[10], 1e-9, "the component must repeat mid-cycle too")
	assert.InDelta(t, math.Sin(2*math.Pi*1.0/7), out[1], 1e-9, "day one must sit on the sine curve")
}

// TestGeometricAdstock_Carryover verifies the filter recursion and that
// carryover starts fresh inside the evaluation window.
func TestGeometricAdstock_Carryover(t *testing.T) {
	X := newSpendFrame(t, 4)
	e := effect.NewGeometricAdstock("carry", effect.Exact("spend_tv"), nil)
	require.NoError(t, e.Fit(nil, X, 1), "fit must succeed")

	d, err := e.Transform(X, X.Index())
	require.NoError(t, err, "transform must succeed")

	// logit 0 → decay 0.5; coef 1. spend_tv = 1,2,3,4.
	ps := scope(t, e, []float64{0, 1})
	out, err := e.Predict(d, nil, ps)
	require.NoError(t, err, "predict must succeed")
	assert.InDeltaSlice(t, []float64{1, 2.5, 4.25, 6.125}, out, 1e-12, "carryover must follow a_t = x_t + 0.5·a_{t-1}")

	// Evaluating the tail alone must not inherit carryover from earlier rows.
	tail := frame.Index{X.Index().At(2), X.Index().At(3)}
	dTail, err := e.Transform(X, tail)
	require.NoError(t, err, "tail transform must succeed")
	outTail, err := e.Predict(dTail, nil, ps)
	require.NoError(t, err, "tail predict must succeed")
	assert.InDeltaSlice(t, []float64{3, 5.5}, outTail, 1e-12, "the recursion must restart at the window start")
}

// TestHill_Saturation verifies the saturating response and the
// median-anchored half-saturation init.
func TestHill_Saturation(t *testing.T) {
	ix := frame.Range(start, 3, 24*time.Hour)
	X, _ := frame.New(ix)
	require.NoError(t, X.Add("spend", []float64{0, 1, 100}), "add spend")

	e := effect.NewHill("sat", effect.Exact("spend"), nil)
	require.NoError(t, e.Fit(nil, X, 1), "fit must succeed")

	sites := e.Sites()
	require.Len(t, sites, 3, "hill declares halfmax, slope and coef")
	assert.InDelta(t, math.Log(50.5), sites[0].Init[0], 1e-12, "half-saturation init must anchor at the positive median")

	d, err := e.Transform(X, ix)
	require.NoError(t, err, "transform must succeed")

	// k = 1, s = 1, coef = 1 → x/(x+1), zero spend contributes nothing.
	ps := scope(t, e, []float64{0, 0, 1})
	out, err := e.Predict(d, nil, ps)
	require.NoError(t, err, "predict must succeed")
	assert.InDeltaSlice(t, []float64{0, 0.5, 100.0 / 101}, out, 1e-12, "response must follow x/(x+k)")
	assert.Less(t, out[2], 1.0, "response must saturate below the coefficient")
}
