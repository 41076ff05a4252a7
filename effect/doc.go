// Package effect defines the pluggable component contract the forecaster
// is assembled from, plus the built-in effect library.
//
// 🚀 What is an effect?
//
//	One named, self-contained transform from (exogenous columns,
//	previously computed effects) to a contribution array, with declared
//	priors over its latent parameters. A forecast is a composition of
//	effects: trend, seasonality, regressors, saturation, carryover.
//
// The contract has three extension points, each with a default:
//
//   - Fit(y, X, scale)        — once per model fit; derives empirical
//     anchors (data min/max, column medians) into private fit state.
//     Default: resolve the column selector, nothing else.
//   - Transform(X, idx)       — once per fit/predict call; projects the
//     raw frame into the numeric representation Predict needs.
//     Default: select the bound columns at idx as a dense matrix.
//   - Predict(data, prev, ps) — reads latent parameters from the scoped
//     store and returns this effect's contribution. Must be pure given
//     its inputs: no hidden state, no caching.
//
// Modes:
//
//	Additive        — contribution c enters total as  total += c
//	Multiplicative  — contribution c enters total as  total *= (1 + c)
//
// Lifecycle: unfit → fit → transform/predict (any number of times).
// Transform or Predict before Fit fails with ErrNotFitted. A selector
// matching zero columns fails at fit with ErrNoMatchingColumns unless the
// effect explicitly accepts zero-column input (pure time effects do).
//
// Latent sites are declared via Sites() after fit; the orchestrator lays
// them out into one flat parameter vector under "effectName/siteName"
// qualified names, globally unique per model.
package effect
