package model

import (
	"fmt"

	"github.com/ebalan/strata/effect"
)

// Graph is an ordered effect sequence with exactly one designated trend.
// Construction validates the whole configuration eagerly; a Graph that
// exists is a Graph that can be evaluated.
type Graph struct {
	trend  effect.Effect
	others []effect.Effect
}

// NewGraph validates and builds an effect graph. The trend is always
// first; the remaining effects evaluate in the given declaration order.
// Errors: ErrNoTrend, ErrEmptyName, ErrReservedName, ErrDuplicateEffect,
// ErrDependencyOrder.
func NewGraph(trend effect.Effect, effects ...effect.Effect) (*Graph, error) {
	if trend == nil {
		return nil, ErrNoTrend
	}
	if len(trend.Dependencies()) > 0 {
		return nil, fmt.Errorf("%w: trend %q cannot depend on other effects",
			ErrDependencyOrder, trend.Name())
	}

	seen := make(map[string]struct{})
	all := append([]effect.Effect{trend}, effects...)
	for _, e := range all {
		name := e.Name()
		if name == "" {
			return nil, ErrEmptyName
		}
		if name == "observation" {
			return nil, ErrReservedName
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEffect, name)
		}
		seen[name] = struct{}{}
	}

	// Each effect may only consume outputs of effects ordered before it.
	computed := map[string]struct{}{trend.Name(): {}}
	for _, e := range effects {
		for _, dep := range e.Dependencies() {
			if _, ok := computed[dep]; !ok {
				return nil, fmt.Errorf("%w: %q depends on %q", ErrDependencyOrder, e.Name(), dep)
			}
		}
		computed[e.Name()] = struct{}{}
	}

	return &Graph{trend: trend, others: effects}, nil
}

// Trend returns the designated trend effect.
func (g *Graph) Trend() effect.Effect { return g.trend }

// Effects returns the full evaluation sequence, trend first.
func (g *Graph) Effects() []effect.Effect {
	out := make([]effect.Effect, 0, 1+len(g.others))
	out = append(out, g.trend)
	out = append(out, g.others...)

	return out
}

// Names returns the evaluation order as effect names.
func (g *Graph) Names() []string {
	effects := g.Effects()
	out := make([]string, len(effects))
	for i, e := range effects {
		out[i] = e.Name()
	}

	return out
}
