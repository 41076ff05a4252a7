// Package inference turns a probabilistic model (anything exposing a
// log-joint over a flat parameter vector) into posterior artifacts.
//
// Two interchangeable engines sit behind one contract:
//
//   - MAP  — maximum-a-posteriori point estimation: L-BFGS over the
//     negative log-joint with finite-difference gradients, falling back
//     to Nelder–Mead when the line search gives up. The artifact holds a
//     single draw.
//   - HMC  — Hamiltonian Monte Carlo: leapfrog trajectories over the
//     same log-joint, warmup step-size adaptation, then a configurable
//     number of retained draws.
//
// Failure policy: non-convergence, divergences, low acceptance and low
// effective sample size are diagnostics attached to the artifact, never
// errors — an approximate posterior still forecasts. Hard errors are
// reserved for unusable inputs (nil target, zero dimension).
//
// Both engines are deterministic given a seed. Progress can be observed
// through an optional zerolog.Logger carried in the engine options.
package inference
