package inference_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebalan/strata/inference"
)

// gaussianTarget is an analytically known log-joint: independent
// Gaussians centered at mode with unit curvature.
type gaussianTarget struct {
	mode []float64
	init []float64
}

func (g *gaussianTarget) Observe(x []float64) float64 {
	ll := 0.0
	for i, v := range x {
		d := v - g.mode[i]
		ll -= d * d
	}

	return ll
}

func (g *gaussianTarget) Dim() int        { return len(g.mode) }
func (g *gaussianTarget) Init() []float64 { return append([]float64(nil), g.init...) }

// TestMAP_Validation covers the engine's eager argument checks.
func TestMAP_Validation(t *testing.T) {
	e := inference.NewMAP(nil)

	_, err := e.Infer(nil)
	assert.ErrorIs(t, err, inference.ErrNilTarget, "nil target must error")

	_, err = e.Infer(&gaussianTarget{})
	assert.ErrorIs(t, err, inference.ErrZeroDim, "zero-dim target must error")
}

// TestMAP_RecoversMode verifies the optimizer lands on the known mode
// and reports a single-draw artifact.
func TestMAP_RecoversMode(t *testing.T) {
	target := &gaussianTarget{mode: []float64{3, -1}, init: []float64{0, 0}}
	art, err := inference.NewMAP(nil).Infer(target)
	require.NoError(t, err, "inference must succeed")

	require.Len(t, art.Draws, 1, "MAP must yield exactly one draw")
	assert.InDelta(t, 3, art.Draws[0][0], 1e-4, "first coordinate must reach the mode")
	assert.InDelta(t, -1, art.Draws[0][1], 1e-4, "second coordinate must reach the mode")
	assert.InDelta(t, 0, art.LogJoint, 1e-6, "the log-joint at the mode is zero by construction")
	assert.Equal(t, art.Draws[0], art.Point(), "point estimate of a single draw is the draw")
}

// TestMAP_BestIterateOnHardTarget verifies the degraded-but-usable
// policy: a cliff-edged target may stop early, but the best iterate and
// a diagnostic still come back.
func TestMAP_BestIterateOnHardTarget(t *testing.T) {
	cliff := &cliffTarget{}
	art, err := inference.NewMAP(&inference.MAPOptions{MaxIter: 5}).Infer(cliff)
	require.NoError(t, err, "non-convergence must not be a hard error")
	require.Len(t, art.Draws, 1, "the best iterate must be returned regardless")
	assert.GreaterOrEqual(t, art.LogJoint, cliff.Observe([]float64{5}),
		"the returned iterate must be at least as good as the starting point")
}

// TestMAP_IterationBudgetDiagnostic verifies a capped run reports its
// truncation even when the solver returns no error: a tightly budgeted
// descent of a curved valley cannot reach the mode, and the artifact
// must say so.
func TestMAP_IterationBudgetDiagnostic(t *testing.T) {
	art, err := inference.NewMAP(&inference.MAPOptions{MaxIter: 2}).Infer(&valleyTarget{})
	require.NoError(t, err, "a truncated run is degraded, not failed")
	require.Len(t, art.Draws, 1, "the best iterate must still be returned")
	assert.True(t, hasDiagnostic(art.Diagnostics, "non-convergence"),
		"a budget-limited stop must surface a non-convergence diagnostic, got %v", art.Diagnostics)
}

func hasDiagnostic(ds []inference.Diagnostic, code string) bool {
	for _, d := range ds {
		if d.Code == code {
			return true
		}
	}

	return false
}

// valleyTarget is Rosenbrock's negated valley: well-defined mode at
// (1, 1) but a curvature that takes many iterations to traverse.
type valleyTarget struct{}

func (valleyTarget) Observe(x []float64) float64 {
	a := x[1] - x[0]*x[0]
	b := 1 - x[0]

	return -(100*a*a + b*b)
}
func (valleyTarget) Dim() int        { return 2 }
func (valleyTarget) Init() []float64 { return []float64{-1.2, 1} }

// cliffTarget is nearly flat with a sharp ridge, chosen to stress the
// line search.
type cliffTarget struct{}

func (cliffTarget) Observe(x []float64) float64 {
	if x[0] > 100 {
		return -1e12
	}

	return -(x[0] - 3) * (x[0] - 3)
}
func (cliffTarget) Dim() int        { return 1 }
func (cliffTarget) Init() []float64 { return []float64{5} }

// TestHMC_SeedReproducibility verifies that the chain is a pure function
// of its seed.
func TestHMC_SeedReproducibility(t *testing.T) {
	target := &gaussianTarget{mode: []float64{1}, init: []float64{0}}
	opts := &inference.HMCOptions{Warmup: 50, Draws: 50, LeapfrogSteps: 10, StepSize: 0.2, Seed: 7}

	a, err := inference.NewHMC(opts).Infer(target)
	require.NoError(t, err, "first chain must run")
	b, err := inference.NewHMC(opts).Infer(target)
	require.NoError(t, err, "second chain must run")
	assert.Equal(t, a.Draws, b.Draws, "identical seeds must reproduce the chain exactly")

	opts2 := *opts
	opts2.Seed = 8
	c, err := inference.NewHMC(&opts2).Infer(target)
	require.NoError(t, err, "third chain must run")
	assert.NotEqual(t, a.Draws, c.Draws, "a different seed must move the chain")
}

// TestHMC_SamplesAroundMode verifies the retained draws concentrate
// around the known posterior mean.
func TestHMC_SamplesAroundMode(t *testing.T) {
	target := &gaussianTarget{mode: []float64{2}, init: []float64{2}}
	art, err := inference.NewHMC(&inference.HMCOptions{
		Warmup: 200, Draws: 400, LeapfrogSteps: 15, StepSize: 0.3, Seed: 42,
	}).Infer(target)
	require.NoError(t, err, "chain must run")

	require.Len(t, art.Draws, 400, "every retained draw must be kept")
	// Posterior sd is 1/√2; 400 correlated draws should still pin the
	// mean well inside half a standard deviation.
	assert.InDelta(t, 2, art.Point()[0], 0.35, "the chain mean must sit near the mode")
}

// TestArtifact_Point verifies the across-draws mean reduction.
func TestArtifact_Point(t *testing.T) {
	art := &inference.Artifact{Draws: [][]float64{{1, 10}, {3, 20}}}
	assert.Equal(t, []float64{2, 15}, art.Point(), "point must average coordinates across draws")

	empty := &inference.Artifact{}
	assert.Nil(t, empty.Point(), "an empty artifact has no point estimate")
}
