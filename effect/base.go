package effect

import (
	"fmt"

	"github.com/ebalan/strata/frame"
)

// Base carries the configuration every effect shares (name, mode,
// selector, dependencies) and provides the documented defaults for the
// three extension points. Concrete effects embed Base and override what
// they need.
//
// Configuration is immutable after construction; the resolved column
// list is the only fit-time state Base holds.
type Base struct {
	name       string
	mode       Mode
	selector   Selector
	deps       []string
	allowEmpty bool

	fitted  bool
	columns []string
}

// NewBase constructs the shared effect core. allowEmpty declares that the
// effect accepts a zero-column match (pure time effects).
func NewBase(name string, mode Mode, sel Selector, allowEmpty bool) Base {
	if sel == nil {
		sel = None()
	}

	return Base{name: name, mode: mode, selector: sel, allowEmpty: allowEmpty}
}

// Name returns the effect's unique name.
func (b *Base) Name() string { return b.name }

// Mode returns the combination mode.
func (b *Base) Mode() Mode { return b.mode }

// Dependencies returns the declared previous-effect dependencies.
func (b *Base) Dependencies() []string {
	out := make([]string, len(b.deps))
	copy(out, b.deps)

	return out
}

// DependOn declares that this effect consumes the named effects' outputs.
// Call during construction only.
func (b *Base) DependOn(names ...string) { b.deps = append(b.deps, names...) }

// Columns returns the column names resolved at fit time.
func (b *Base) Columns() []string {
	out := make([]string, len(b.columns))
	copy(out, b.columns)

	return out
}

// Fitted reports whether Fit has completed.
func (b *Base) Fitted() bool { return b.fitted }

// RequireFitted returns ErrNotFitted (wrapped with the effect name) when
// Fit has not run yet.
func (b *Base) RequireFitted() error {
	if !b.fitted {
		return fmt.Errorf("%w: effect %q", ErrNotFitted, b.name)
	}

	return nil
}

// BindColumns evaluates the selector against X's columns and records the
// match. The non-empty-match invariant is enforced here, eagerly.
// Errors: ErrNoMatchingColumns.
func (b *Base) BindColumns(X *frame.Frame) error {
	var available []string
	if X != nil {
		available = X.Columns()
	}
	cols := MatchColumns(b.selector, available)
	if len(cols) == 0 && !b.allowEmpty {
		return fmt.Errorf("%w: effect %q, selector %s", ErrNoMatchingColumns, b.name, b.selector)
	}
	b.columns = cols
	b.fitted = true

	return nil
}

// Fit is the default fit: resolve the selector, keep no other state.
func (b *Base) Fit(_ *frame.Series, X *frame.Frame, _ float64) error {
	return b.BindColumns(X)
}

// Sites is the default site declaration: no latent parameters.
func (b *Base) Sites() []Site { return nil }

// Transform is the default projection: slice X at idx and export the
// bound columns as a dense matrix keyed by Data.Matrix. Zero-column
// effects get a Data with a nil matrix and the evaluation index only.
// Errors: ErrNotFitted, frame.ErrIndexNotCovered.
func (b *Base) Transform(X *frame.Frame, idx frame.Index) (*Data, error) {
	if err := b.RequireFitted(); err != nil {
		return nil, err
	}
	d := &Data{Index: idx, Columns: b.Columns()}
	if len(b.columns) == 0 {
		return d, nil
	}
	if X == nil {
		return nil, fmt.Errorf("%w: effect %q needs columns %v", ErrNoMatchingColumns, b.name, b.columns)
	}
	sub, err := X.Slice(idx)
	if err != nil {
		return nil, err
	}
	m, err := sub.Matrix(b.columns)
	if err != nil {
		return nil, err
	}
	d.Matrix = m

	return d, nil
}
