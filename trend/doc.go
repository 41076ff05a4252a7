// Package trend provides the distinguished trend effects — the one
// component the orchestrator always evaluates first, so every other
// effect may consume its output.
//
// Variants:
//
//   - PiecewiseLinear — a base rate plus per-changepoint rate
//     adjustments under a sparsity-inducing Laplace prior. Changepoints
//     are laid out at a fixed interval across a prefix fraction of the
//     training index; with a small prior scale most adjustments shrink
//     to zero, which is what makes long-range extrapolation stay smooth
//     despite many candidate changepoints.
//   - Logistic — a generalized logistic diffusion curve (capacity, rate,
//     midpoint). The asymptotic capacity is recorded as an auxiliary
//     deterministic output for diagnostic retrieval.
//   - Flat — a constant latent level; the degenerate baseline.
//
// All variants are pure time effects (they select no exogenous columns)
// and anchor a time origin and span at fit time: historical and forecast
// indices are projected onto the same normalized time axis, so the curve
// extrapolates instead of re-phasing.
//
// Trend contributions operate on the scale-normalized target; anchors
// (first observation, endpoint slope, maximum level) are derived from
// the normalized series during Fit.
package trend
