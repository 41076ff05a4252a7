// Package strata is a composable Bayesian structural time-series
// forecasting toolkit with a downstream budget-optimization layer.
//
// 🚀 What is strata?
//
//	A generalized-additive forecaster in the Prophet tradition, built
//	from small, pluggable pieces:
//		• Effects: named components (trend, seasonality, regressors,
//		  saturation, carryover) each contributing one additive or
//		  multiplicative term to the forecast
//		• A model orchestrator that composes effects into one
//		  probabilistic model (trend first, everything else after)
//		• Inference engines: MAP optimization and HMC sampling over
//		  the same log-joint, both seeded and reproducible
//		• A forecaster facade: point forecasts, intervals, per-effect
//		  component tables, and raw posterior predictive draws
//		• A budget optimizer that treats a fitted forecaster as a
//		  black-box response surface and reallocates spend under
//		  constraints
//
// ✨ Why choose strata?
//
//   - Explicit over implicit – effect graphs are validated eagerly;
//     nothing fails mid-sample
//   - Degraded-but-usable – inference and optimization surface
//     diagnostics as warnings and always return their best iterate
//   - Pure Go numerics – gonum for linear algebra and optimization,
//     infergo primitives for the probabilistic model contract
//
// Package map:
//
//	frame/      — time index, target series, aligned exogenous frames
//	effect/     — the Effect contract, selectors, priors, built-in effects
//	trend/      — piecewise-linear, logistic and flat trend effects
//	model/      — the effect-graph orchestrator and log-joint
//	inference/  — MAP and HMC engines, posterior artifacts, diagnostics
//	forecaster/ — fit/predict facade tying the pieces together
//	budget/     — constrained spend optimization over a fitted model
//
// A forecast is assembled as
//
//	total = (Σ additive effects) × Π (1 + multiplicative effects)
//
// with the trend always evaluated first so later effects may consume it.
//
//	go get github.com/ebalan/strata
package strata
