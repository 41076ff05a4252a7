// Package budget solves constrained spend-allocation problems against a
// fitted forecaster, treating it as a black-box response function.
//
// An Optimizer owns an objective, a set of equality/inequality
// constraints, an optional search-space transform and per-column box
// bounds. Optimize restricts an exogenous frame to horizon × columns,
// searches that region with a derivative-free inner solver wrapped in an
// augmented-Lagrangian outer loop, and writes the best iterate back into
// a copy of the frame; every other cell stays untouched.
//
// 🚀 Usage:
//
//	opt := budget.NewOptimizer(&budget.Options{
//		Objective:   budget.MaximizeKPI{},
//		Constraints: []budget.Constraint{budget.SharedBudget{}},
//	})
//	res, err := opt.Optimize(fc, X, horizon, []string{"spend_tv", "spend_web"})
//
// Building blocks:
//
//   - Objectives:   MaximizeKPI (maximize predicted sum), MinimizeBudget.
//   - Constraints:  SharedBudget (pure reallocation: optimized total equals
//     baseline total), MinimumTargetResponse (predicted sum meets a target).
//   - Transforms:   Identity (per-cell search), InvestmentPerChannel
//     (one total per channel, spread over the horizon along the baseline
//     daily profile).
//
// Failure policy mirrors the inference engines: an inner solver that
// stalls or a constraint left violated beyond tolerance produces
// diagnostics on the Result, and the best iterate found is still
// returned. Hard errors are reserved for invalid configuration (unknown
// columns, empty horizon, inverted bounds) and for a forecaster that
// cannot evaluate a single candidate.
package budget
