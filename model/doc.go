// Package model is the effect-graph orchestrator: it validates an
// ordered effect graph, fits and transforms every effect against the
// training panel, lays latent sites out into one flat parameter vector,
// and exposes the resulting generative computation as a probabilistic
// model (log-joint over parameters).
//
// Evaluation semantics:
//
//   - the designated trend effect is always evaluated first, with an
//     empty previous-effects mapping
//   - every subsequent effect is evaluated in declaration order and
//     receives the mapping of all effects computed so far (trend
//     included), keyed by effect name
//   - contributions combine as
//
//     total = (Σ additive contributions) × Π (1 + multiplicative contributions)
//
//   - the total parametrizes a Gaussian observation likelihood on the
//     scale-normalized target; the noise scale is itself latent (log
//     scale, Normal prior) under the reserved "observation" namespace
//
// Configuration errors — duplicate effect names, a dependency on an
// effect that evaluates later (or not at all), unmatched required
// columns — are raised when the graph is built or fitted, never at
// inference time mid-sample.
//
// Model satisfies the infergo model contract (Observe over a flat
// parameter vector returning the log-joint), so any inference routine
// speaking that contract can drive it.
package model
