package budget

import "github.com/ebalan/strata/frame"

// MaximizeKPI maximizes the predicted response summed over the horizon
// (implemented as minimizing its negation).
type MaximizeKPI struct{}

// Name identifies the objective in logs and diagnostics.
func (MaximizeKPI) Name() string { return "maximize_kpi" }

// Value returns the negated predicted sum.
func (MaximizeKPI) Value(pred *frame.Series, _ map[string][]float64) float64 {
	var total float64
	for i := 0; i < pred.Len(); i++ {
		total += pred.At(i)
	}

	return -total
}

// MinimizeBudget minimizes total spend across the controllable columns.
// On its own it drives spend to the lower bounds; it is meant to be
// paired with MinimumTargetResponse.
type MinimizeBudget struct{}

// Name identifies the objective in logs and diagnostics.
func (MinimizeBudget) Name() string { return "minimize_budget" }

// Value returns the total candidate spend.
func (MinimizeBudget) Value(_ *frame.Series, spend map[string][]float64) float64 {
	return totalSpend(spend)
}

// totalSpend sums every cell of a spend mapping.
func totalSpend(spend map[string][]float64) float64 {
	var total float64
	for _, vals := range spend {
		for _, v := range vals {
			total += v
		}
	}

	return total
}
