package budget

import (
	"fmt"
	"math"
)

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// Transform reparametrizes the search space. Bind anchors the transform
// to the baseline sub-frame once per optimization run; Collapse and
// Expand then map between spend space (per column, per timestamp) and
// the optimizer's flat vector. Expand must invert Collapse over the
// feasible region, so every optimizer iterate maps back to valid spend.
//
// A bound transform carries per-run state; do not share one Transform
// value across concurrent Optimize calls.
type Transform interface {
	Name() string
	Bind(baseline map[string][]float64, columns []string, horizon int) error
	Dim() int
	Collapse(spend map[string][]float64) []float64
	Expand(v []float64) map[string][]float64
	// Box maps per-column bounds onto the flat vector; ok is false when
	// no bound applies to any coordinate.
	Box(bounds map[string]Bound) (lo, hi []float64, ok bool)
}

// Identity searches raw spend space: one coordinate per (column,
// timestamp) cell, columns concatenated in caller order.
type Identity struct {
	columns []string
	horizon int
}

// Name identifies the transform in logs and diagnostics.
func (t *Identity) Name() string { return "identity" }

// Bind records the column order and horizon length.
func (t *Identity) Bind(_ map[string][]float64, columns []string, horizon int) error {
	t.columns = append([]string(nil), columns...)
	t.horizon = horizon

	return nil
}

// Dim returns columns × horizon.
func (t *Identity) Dim() int { return len(t.columns) * t.horizon }

// Collapse concatenates the per-column spend slices.
func (t *Identity) Collapse(spend map[string][]float64) []float64 {
	v := make([]float64, 0, t.Dim())
	for _, col := range t.columns {
		v = append(v, spend[col]...)
	}

	return v
}

// Expand splits the flat vector back into per-column slices.
func (t *Identity) Expand(v []float64) map[string][]float64 {
	spend := make(map[string][]float64, len(t.columns))
	for j, col := range t.columns {
		vals := make([]float64, t.horizon)
		copy(vals, v[j*t.horizon:(j+1)*t.horizon])
		spend[col] = vals
	}

	return spend
}

// Box repeats each column's bound across its horizon cells.
func (t *Identity) Box(bounds map[string]Bound) (lo, hi []float64, ok bool) {
	if len(bounds) == 0 {
		return nil, nil, false
	}
	lo = make([]float64, t.Dim())
	hi = make([]float64, t.Dim())
	unbounded(lo, hi)
	for j, col := range t.columns {
		b, found := bounds[col]
		if !found {
			continue
		}
		ok = true
		for k := 0; k < t.horizon; k++ {
			lo[j*t.horizon+k] = b.Lo
			hi[j*t.horizon+k] = b.Hi
		}
	}

	return lo, hi, ok
}

// InvestmentPerChannel searches one total per channel and spreads each
// total across the horizon along the channel's baseline daily profile
// (uniformly when the baseline is all zero). The search space shrinks
// from columns × horizon to columns, which is the usual reason to prefer
// it on long horizons.
type InvestmentPerChannel struct {
	columns []string
	horizon int
	profile map[string][]float64
}

// Name identifies the transform in logs and diagnostics.
func (t *InvestmentPerChannel) Name() string { return "investment_per_channel" }

// Bind derives each channel's share-of-total daily profile from the
// baseline sub-frame.
func (t *InvestmentPerChannel) Bind(baseline map[string][]float64, columns []string, horizon int) error {
	t.columns = append([]string(nil), columns...)
	t.horizon = horizon
	t.profile = make(map[string][]float64, len(columns))
	for _, col := range columns {
		base := baseline[col]
		if len(base) != horizon {
			return fmt.Errorf("budget: baseline for column %q has %d values, horizon is %d", col, len(base), horizon)
		}
		var total float64
		for _, v := range base {
			total += v
		}
		shares := make([]float64, horizon)
		if total > 0 {
			for k, v := range base {
				shares[k] = v / total
			}
		} else {
			for k := range shares {
				shares[k] = 1 / float64(horizon)
			}
		}
		t.profile[col] = shares
	}

	return nil
}

// Dim returns the channel count.
func (t *InvestmentPerChannel) Dim() int { return len(t.columns) }

// Collapse sums each channel over the horizon.
func (t *InvestmentPerChannel) Collapse(spend map[string][]float64) []float64 {
	v := make([]float64, len(t.columns))
	for j, col := range t.columns {
		for _, x := range spend[col] {
			v[j] += x
		}
	}

	return v
}

// Expand spreads each channel total along its baseline profile.
func (t *InvestmentPerChannel) Expand(v []float64) map[string][]float64 {
	spend := make(map[string][]float64, len(t.columns))
	for j, col := range t.columns {
		vals := make([]float64, t.horizon)
		for k, share := range t.profile[col] {
			vals[k] = v[j] * share
		}
		spend[col] = vals
	}

	return spend
}

// Box scales each column's per-cell bound to a per-channel total bound.
func (t *InvestmentPerChannel) Box(bounds map[string]Bound) (lo, hi []float64, ok bool) {
	if len(bounds) == 0 {
		return nil, nil, false
	}
	lo = make([]float64, len(t.columns))
	hi = make([]float64, len(t.columns))
	unbounded(lo, hi)
	for j, col := range t.columns {
		b, found := bounds[col]
		if !found {
			continue
		}
		ok = true
		lo[j] = b.Lo * float64(t.horizon)
		hi[j] = b.Hi * float64(t.horizon)
	}

	return lo, hi, ok
}

// unbounded fills box slices with (-Inf, +Inf).
func unbounded(lo, hi []float64) {
	for i := range lo {
		lo[i] = negInf
		hi[i] = posInf
	}
}
