package inference

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/diff/fd"
)

// HMCOptions configures the HMC engine.
//   - Warmup:        discarded adaptation iterations (default 200).
//   - Draws:         retained posterior draws (default 200).
//   - LeapfrogSteps: leapfrog steps per trajectory (default 20).
//   - StepSize:      initial leapfrog step size, adapted during warmup
//     toward the target acceptance rate (default 0.05).
//   - Seed:          reproducibility seed for the chain's randomness.
//   - Logger:        optional progress logger (default zerolog.Nop()).
type HMCOptions struct {
	Warmup        int
	Draws         int
	LeapfrogSteps int
	StepSize      float64
	Seed          int64
	Logger        zerolog.Logger
}

// DefaultHMCOptions returns the documented defaults.
func DefaultHMCOptions() HMCOptions {
	return HMCOptions{Warmup: 200, Draws: 200, LeapfrogSteps: 20, StepSize: 0.05, Logger: zerolog.Nop()}
}

// hmcTargetAcceptance is the acceptance rate warmup adaptation aims for.
const hmcTargetAcceptance = 0.7

// HMC draws posterior samples with Hamiltonian Monte Carlo: identity
// mass matrix, leapfrog integration over the negative log-joint, with
// gradients from central finite differences. Step size adapts during
// warmup and is frozen for the retained draws.
//
// Divergent trajectories, low acceptance and low effective sample size
// surface as diagnostics on the artifact; partial results stay usable.
type HMC struct {
	opts HMCOptions
	log  zerolog.Logger
}

// NewHMC builds the engine. A nil opts means defaults.
func NewHMC(opts *HMCOptions) *HMC {
	o := DefaultHMCOptions()
	if opts != nil {
		o = *opts
		if o.Warmup < 0 {
			o.Warmup = 0
		}
		if o.Draws <= 0 {
			o.Draws = 200
		}
		if o.LeapfrogSteps <= 0 {
			o.LeapfrogSteps = 20
		}
		if o.StepSize <= 0 {
			o.StepSize = 0.05
		}
	}

	return &HMC{opts: o, log: o.Logger.With().Str("component", "inference.hmc").Logger()}
}

// Infer runs the chain. Errors: ErrNilTarget, ErrZeroDim.
func (e *HMC) Infer(t Target) (*Artifact, error) {
	if t == nil {
		return nil, ErrNilTarget
	}
	dim := t.Dim()
	if dim <= 0 {
		return nil, ErrZeroDim
	}

	potential := func(x []float64) float64 { return -t.Observe(x) }
	gradient := func(dst, x []float64) {
		fd.Gradient(dst, potential, x, nil)
	}

	rng := rand.New(rand.NewPCG(uint64(e.opts.Seed), 0x9e3779b97f4a7c15))
	art := &Artifact{Seed: e.opts.Seed}

	x := t.Init()
	eps := e.opts.StepSize
	u := potential(x)
	bestLogJoint := -u

	divergences := 0
	accepted := 0
	total := e.opts.Warmup + e.opts.Draws

	grad := make([]float64, dim)
	p := make([]float64, dim)
	xProp := make([]float64, dim)

	for iter := 0; iter < total; iter++ {
		for i := range p {
			p[i] = rng.NormFloat64()
		}
		kinetic := 0.0
		for _, v := range p {
			kinetic += v * v / 2
		}
		h0 := u + kinetic

		// Leapfrog trajectory from the current state.
		copy(xProp, x)
		gradient(grad, xProp)
		pProp := make([]float64, dim)
		copy(pProp, p)
		for i := range pProp {
			pProp[i] -= eps * grad[i] / 2
		}
		for step := 0; step < e.opts.LeapfrogSteps; step++ {
			for i := range xProp {
				xProp[i] += eps * pProp[i]
			}
			gradient(grad, xProp)
			half := eps
			if step == e.opts.LeapfrogSteps-1 {
				half = eps / 2
			}
			for i := range pProp {
				pProp[i] -= half * grad[i]
			}
		}

		uProp := potential(xProp)
		kProp := 0.0
		for _, v := range pProp {
			kProp += v * v / 2
		}
		h1 := uProp + kProp

		dH := h1 - h0
		divergent := math.IsNaN(dH) || math.IsInf(dH, 0) || dH > 50
		accProb := 0.0
		if !divergent {
			accProb = math.Min(1, math.Exp(-dH))
		} else if iter >= e.opts.Warmup {
			divergences++
		}

		if !divergent && rng.Float64() < accProb {
			copy(x, xProp)
			u = uProp
			if -u > bestLogJoint {
				bestLogJoint = -u
			}
			if iter >= e.opts.Warmup {
				accepted++
			}
		}

		if iter < e.opts.Warmup {
			// Nudge the step size toward the target acceptance rate.
			eps *= math.Exp(0.05 * (accProb - hmcTargetAcceptance))
		} else {
			draw := make([]float64, dim)
			copy(draw, x)
			art.Draws = append(art.Draws, draw)
		}
	}

	accRate := float64(accepted) / float64(e.opts.Draws)
	if divergences > 0 {
		art.Warn("divergence", fmt.Sprintf("%d divergent trajectories", divergences))
	}
	if accRate < 0.2 {
		art.Warn("low-acceptance", fmt.Sprintf("acceptance rate %.2f", accRate))
	}
	if ess := effectiveSampleSize(art.Draws); ess < 0.1*float64(len(art.Draws)) {
		art.Warn("low-ess", fmt.Sprintf("effective sample size ≈ %.0f of %d draws", ess, len(art.Draws)))
	}
	art.LogJoint = bestLogJoint
	e.log.Debug().
		Float64("acceptance", accRate).
		Int("divergences", divergences).
		Float64("step_size", eps).
		Msg("HMC complete")

	return art, nil
}

// effectiveSampleSize is a crude lag-1 estimate over the first
// coordinate: n·(1−ρ)/(1+ρ). Enough to flag a badly mixing chain.
func effectiveSampleSize(draws [][]float64) float64 {
	n := len(draws)
	if n < 3 {
		return float64(n)
	}
	series := make([]float64, n)
	mean := 0.0
	for i, d := range draws {
		series[i] = d[0]
		mean += d[0]
	}
	mean /= float64(n)

	var c0, c1 float64
	for i := 0; i < n; i++ {
		c0 += (series[i] - mean) * (series[i] - mean)
	}
	for i := 0; i < n-1; i++ {
		c1 += (series[i] - mean) * (series[i+1] - mean)
	}
	if c0 == 0 {
		return float64(n)
	}
	rho := c1 / c0
	if rho >= 1 {
		return 1
	}
	if rho < 0 {
		rho = 0
	}

	return float64(n) * (1 - rho) / (1 + rho)
}

var _ Engine = (*HMC)(nil)
