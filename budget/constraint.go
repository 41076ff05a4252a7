package budget

import (
	"math"

	"github.com/ebalan/strata/frame"
)

// SharedBudget is the pure-reallocation constraint: total optimized
// spend must equal total baseline spend. The residual is normalized by
// the baseline total so Options.Tol is a relative tolerance.
type SharedBudget struct{}

// Name identifies the constraint in logs and diagnostics.
func (SharedBudget) Name() string { return "shared_budget" }

// Equality reports that this is an equality constraint.
func (SharedBudget) Equality() bool { return true }

// Value returns the normalized spend-total residual.
func (SharedBudget) Value(_ *frame.Series, spend, baseline map[string][]float64) float64 {
	ref := totalSpend(baseline)

	return (totalSpend(spend) - ref) / normScale(ref)
}

// MinimumTargetResponse requires the predicted response summed over the
// horizon to meet Target — at least Target as an inequality (the
// default), or exactly Target when AsEquality is set. The residual is
// normalized by the target magnitude.
type MinimumTargetResponse struct {
	Target     float64
	AsEquality bool
}

// Name identifies the constraint in logs and diagnostics.
func (c MinimumTargetResponse) Name() string { return "minimum_target_response" }

// Equality reports whether the target must be hit exactly.
func (c MinimumTargetResponse) Equality() bool { return c.AsEquality }

// Value returns the normalized response shortfall (positive when the
// prediction falls short of the target).
func (c MinimumTargetResponse) Value(pred *frame.Series, _, _ map[string][]float64) float64 {
	var total float64
	for i := 0; i < pred.Len(); i++ {
		total += pred.At(i)
	}

	return (c.Target - total) / normScale(c.Target)
}

// normScale guards the normalization denominator for near-zero references.
func normScale(ref float64) float64 {
	return math.Max(1, math.Abs(ref))
}
