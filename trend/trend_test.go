package trend_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebalan/strata/effect"
	"github.com/ebalan/strata/frame"
	"github.com/ebalan/strata/trend"
)

var start = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

// linearSeries builds y_t = offset + slope·t over n daily steps.
func linearSeries(t *testing.T, n int, offset, slope float64) *frame.Series {
	t.Helper()
	ix := frame.Range(start, n, 24*time.Hour)
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = offset + slope*float64(i)
	}
	y, err := frame.NewSeries(ix, vals)
	require.NoError(t, err, "series construction must succeed")

	return y
}

// scope registers the trend's sites and binds the given vector.
func scope(t *testing.T, e effect.Effect, x []float64) *effect.Scoped {
	t.Helper()
	layout := effect.NewLayout()
	for _, s := range e.Sites() {
		require.NoError(t, layout.Register(e.Name(), s), "site registration must succeed")
	}
	require.Equal(t, len(x), layout.Dim(), "bound vector must match layout dim")

	return layout.Bind(x).Scope(e.Name())
}

// TestNewPiecewiseLinear_Validation covers option validation and range
// clipping.
func TestNewPiecewiseLinear_Validation(t *testing.T) {
	_, err := trend.NewPiecewiseLinear("trend", &trend.PiecewiseOptions{ChangepointInterval: 0, ChangepointRange: 0.8})
	assert.ErrorIs(t, err, trend.ErrBadChangepoints, "zero interval must error")

	_, err = trend.NewPiecewiseLinear("trend", &trend.PiecewiseOptions{ChangepointInterval: 10, ChangepointRange: -1})
	assert.ErrorIs(t, err, trend.ErrBadChangepoints, "negative range must error")

	e, err := trend.NewPiecewiseLinear("trend", &trend.PiecewiseOptions{ChangepointInterval: 10, ChangepointRange: 5})
	require.NoError(t, err, "over-unit range must be clipped, not rejected")
	require.NoError(t, e.Fit(linearSeries(t, 40, 0, 1), nil, 1), "fit must succeed")
	for _, cp := range e.Changepoints() {
		assert.LessOrEqual(t, cp, 1.0, "clipped changepoints must stay inside the observed axis")
	}
}

// TestPiecewiseLinear_ChangepointGrid verifies spacing and the range
// prefix rule.
func TestPiecewiseLinear_ChangepointGrid(t *testing.T) {
	e, err := trend.NewPiecewiseLinear("trend", &trend.PiecewiseOptions{ChangepointInterval: 10, ChangepointRange: 0.5})
	require.NoError(t, err, "construction must succeed")

	y := linearSeries(t, 100, 0, 1)
	require.NoError(t, e.Fit(y, nil, 1), "fit must succeed")

	cps := e.Changepoints()
	// limit = 0.5·100 = 50 observations; grid at 10, 20, 30, 40; span is 99 days.
	require.Len(t, cps, 4, "changepoints must step every interval inside the range prefix")
	assert.InDelta(t, 10.0/99, cps[0], 1e-12, "first changepoint must sit at the tenth observation")
	assert.InDelta(t, 40.0/99, cps[3], 1e-12, "last changepoint must stay inside the range prefix")

	short := linearSeries(t, 1, 0, 1)
	assert.ErrorIs(t, e.Fit(short, nil, 1), trend.ErrTooShort, "single-observation fit must error")
}

// TestPiecewiseLinear_PredictExtends verifies that the fitted line
// continues beyond the training window on the same axis.
func TestPiecewiseLinear_PredictExtends(t *testing.T) {
	e, err := trend.NewPiecewiseLinear("trend", &trend.PiecewiseOptions{ChangepointInterval: 50, ChangepointRange: 0.8})
	require.NoError(t, err, "construction must succeed")

	y := linearSeries(t, 10, 1, 2) // 1, 3, 5, ... span 9 days
	require.NoError(t, e.Fit(y, nil, 1), "fit must succeed")
	require.Empty(t, e.Changepoints(), "interval beyond the range must produce no changepoints")

	future := frame.Range(start.Add(10*24*time.Hour), 3, 24*time.Hour)
	d, err := e.Transform(nil, future)
	require.NoError(t, err, "transform beyond the training window must succeed")

	// offset 1, rate 18 on the normalized axis (span 9): value at step t is 1 + 2t.
	ps := scope(t, e, []float64{1, 18})
	out, err := e.Predict(d, nil, ps)
	require.NoError(t, err, "predict must succeed")
	assert.InDeltaSlice(t, []float64{21, 23, 25}, out, 1e-9, "the line must extend past the training window")
}

// TestPiecewiseLinear_ChangepointBasis verifies the ReLU basis bends the
// line only after its changepoint.
func TestPiecewiseLinear_ChangepointBasis(t *testing.T) {
	e, err := trend.NewPiecewiseLinear("trend", &trend.PiecewiseOptions{ChangepointInterval: 5, ChangepointRange: 1})
	require.NoError(t, err, "construction must succeed")

	y := linearSeries(t, 10, 0, 1) // span 9, changepoint at s = 5/9
	require.NoError(t, e.Fit(y, nil, 1), "fit must succeed")
	require.Len(t, e.Changepoints(), 1, "one changepoint expected")

	d, err := e.Transform(nil, y.Index())
	require.NoError(t, err, "transform must succeed")

	// offset 0, rate 0, delta 9: slope of 1 per day after the changepoint.
	ps := scope(t, e, []float64{0, 0, 9})
	out, err := e.Predict(d, nil, ps)
	require.NoError(t, err, "predict must succeed")
	assert.InDelta(t, 0, out[5], 1e-9, "the bend must start exactly at the changepoint")
	assert.InDelta(t, 0, out[4], 1e-9, "rows before the changepoint must be flat")
	assert.InDelta(t, 1, out[6], 1e-9, "rows after the changepoint must pick up the delta rate")
	assert.InDelta(t, 4, out[9], 1e-9, "the delta rate must accumulate linearly")
}

// TestLogistic_CapacityCeiling verifies the logistic curve saturates at
// the latent capacity and records it as a deterministic output.
func TestLogistic_CapacityCeiling(t *testing.T) {
	e := trend.NewLogistic("trend", nil)
	y := linearSeries(t, 20, 1, 0.5)
	require.NoError(t, e.Fit(y, nil, 1), "fit must succeed")

	far := frame.Range(start.Add(1000*24*time.Hour), 2, 24*time.Hour)
	d, err := e.Transform(nil, far)
	require.NoError(t, err, "transform must succeed")

	// log_capacity = log 8, rate 3, midpoint 0.5.
	ps := scope(t, e, []float64{math.Log(8), 3, 0.5})
	out, err := e.Predict(d, nil, ps)
	require.NoError(t, err, "predict must succeed")
	assert.InDelta(t, 8, out[0], 1e-6, "far-future values must approach the capacity")
	assert.InDelta(t, 8, out[1], 1e-6, "and stay there")
}

// TestFlat_ConstantLevel verifies the flat trend ignores time entirely.
func TestFlat_ConstantLevel(t *testing.T) {
	e := trend.NewFlat("trend")
	y := linearSeries(t, 5, 10, 0)
	require.NoError(t, e.Fit(y, nil, 1), "fit must succeed")

	d, err := e.Transform(nil, y.Index())
	require.NoError(t, err, "transform must succeed")
	ps := scope(t, e, []float64{7})
	out, err := e.Predict(d, nil, ps)
	require.NoError(t, err, "predict must succeed")
	assert.InDeltaSlice(t, []float64{7, 7, 7, 7, 7}, out, 1e-12, "flat trend must repeat the level")
}
