package effect

import (
	"bitbucket.org/dtolpin/infergo/dist"
	"gonum.org/v1/gonum/stat/distuv"
)

// Prior is a univariate prior density over one latent scalar. Sites of
// dimension d apply their prior independently to each element.
//
// Positivity or (0,1) range constraints are expressed by placing the
// latent on an unconstrained scale (log, logit) with a Normal prior and
// transforming inside Predict — the convention used throughout the
// built-in effects.
type Prior interface {
	// LogProb returns the log-density at x.
	LogProb(x float64) float64

	// Location returns the prior's center, used as the default Init.
	Location() float64
}

// Normal is a Gaussian prior with mean Mu and standard deviation Sigma.
type Normal struct {
	Mu    float64
	Sigma float64
}

// LogProb returns the Gaussian log-density at x.
func (p Normal) LogProb(x float64) float64 { return dist.Normal.Logp(p.Mu, p.Sigma, x) }

// Location returns Mu.
func (p Normal) Location() float64 { return p.Mu }

// Laplace is a double-exponential prior with location Mu and scale b.
// With small b it is sparsity-inducing: the changepoint rate adjustments
// use it so most candidate changepoints contribute negligibly.
type Laplace struct {
	Mu    float64
	Scale float64
}

// LogProb returns the Laplace log-density at x.
func (p Laplace) LogProb(x float64) float64 {
	return distuv.Laplace{Mu: p.Mu, Scale: p.Scale}.LogProb(x)
}

// Location returns Mu.
func (p Laplace) Location() float64 { return p.Mu }
