package effect

import (
	"fmt"
)

// span locates one site's block inside the flat parameter vector.
type span struct {
	off int
	dim int
}

// qualifiedSite pairs a span with the prior needed for log-density sums.
type qualifiedSite struct {
	name  string
	span  span
	prior Prior
	init  []float64
}

// Layout maps qualified site names ("effectName/siteName") onto disjoint
// spans of one flat parameter vector. Built once per model fit by the
// orchestrator; read-only afterward.
type Layout struct {
	sites []qualifiedSite
	byKey map[string]int
	dim   int
}

// NewLayout returns an empty layout.
func NewLayout() *Layout {
	return &Layout{byKey: make(map[string]int)}
}

// Register appends one site under owner's namespace.
// Errors: ErrBadSite, ErrDuplicateSite.
func (l *Layout) Register(owner string, s Site) error {
	if s.Dim <= 0 || s.Prior == nil {
		return fmt.Errorf("%w: %s/%s", ErrBadSite, owner, s.Name)
	}
	key := owner + "/" + s.Name
	if _, ok := l.byKey[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSite, key)
	}
	init := s.Init
	if init == nil {
		init = make([]float64, s.Dim)
		for i := range init {
			init[i] = s.Prior.Location()
		}
	}
	if len(init) != s.Dim {
		return fmt.Errorf("%w: %s init length %d, dim %d", ErrBadSite, key, len(init), s.Dim)
	}
	l.byKey[key] = len(l.sites)
	l.sites = append(l.sites, qualifiedSite{
		name:  key,
		span:  span{off: l.dim, dim: s.Dim},
		prior: s.Prior,
		init:  init,
	})
	l.dim += s.Dim

	return nil
}

// Dim returns the total flat-vector length.
func (l *Layout) Dim() int { return l.dim }

// Names returns all qualified site names in registration order.
func (l *Layout) Names() []string {
	out := make([]string, len(l.sites))
	for i, s := range l.sites {
		out[i] = s.name
	}

	return out
}

// Init assembles the initial parameter vector from site Init values.
func (l *Layout) Init() []float64 {
	x := make([]float64, l.dim)
	for _, s := range l.sites {
		copy(x[s.span.off:s.span.off+s.span.dim], s.init)
	}

	return x
}

// LogPrior sums every site's prior log-density over x.
func (l *Layout) LogPrior(x []float64) float64 {
	ll := 0.0
	for _, s := range l.sites {
		for i := 0; i < s.span.dim; i++ {
			ll += s.prior.LogProb(x[s.span.off+i])
		}
	}

	return ll
}

// Bind attaches a parameter vector to the layout for one evaluation pass.
// The vector is read through slices, never copied: x must stay untouched
// for the lifetime of the returned Params.
func (l *Layout) Bind(x []float64) *Params {
	return &Params{layout: l, x: x, det: make(map[string][]float64)}
}

// Params is the parameter store threaded through every Predict call: a
// flat vector addressed by qualified site name, plus a side table for
// auxiliary deterministic outputs (diagnostic quantities such as a
// logistic trend's asymptotic capacity).
type Params struct {
	layout *Layout
	x      []float64
	det    map[string][]float64
}

// Site returns the block for the qualified name. Errors: ErrUnknownSite.
func (p *Params) Site(qualified string) ([]float64, error) {
	i, ok := p.layout.byKey[qualified]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSite, qualified)
	}
	sp := p.layout.sites[i].span

	return p.x[sp.off : sp.off+sp.dim], nil
}

// Deterministic returns a recorded auxiliary output, or nil when absent.
func (p *Params) Deterministic(qualified string) []float64 {
	return p.det[qualified]
}

// Deterministics returns the qualified names recorded during this pass.
func (p *Params) Deterministics() []string {
	out := make([]string, 0, len(p.det))
	for k := range p.det {
		out = append(out, k)
	}

	return out
}

// Scope narrows the store to one effect's namespace.
func (p *Params) Scope(owner string) *Scoped {
	return &Scoped{params: p, owner: owner}
}

// Scoped is the view an effect's Predict receives: reads resolve inside
// the effect's own namespace, so effects cannot collide with (or peek at)
// each other's parameters.
type Scoped struct {
	params *Params
	owner  string
}

// Get returns the named site's block. Errors: ErrUnknownSite.
func (s *Scoped) Get(site string) ([]float64, error) {
	return s.params.Site(s.owner + "/" + site)
}

// GetScalar returns the first element of the named site's block.
func (s *Scoped) GetScalar(site string) (float64, error) {
	block, err := s.Get(site)
	if err != nil {
		return 0, err
	}

	return block[0], nil
}

// SetDeterministic records an auxiliary deterministic output under the
// effect's namespace for diagnostic retrieval.
func (s *Scoped) SetDeterministic(name string, values []float64) {
	vCopy := make([]float64, len(values))
	copy(vCopy, values)
	s.params.det[s.owner+"/"+name] = vCopy
}
