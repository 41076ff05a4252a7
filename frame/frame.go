package frame

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Range builds an Index of n timestamps starting at start, spaced by step.
// Returns nil when n <= 0.
func Range(start time.Time, n int, step time.Duration) Index {
	if n <= 0 {
		return nil
	}
	ix := make(Index, n)
	for i := 0; i < n; i++ {
		ix[i] = start.Add(time.Duration(i) * step)
	}

	return ix
}

// Len reports the number of timestamps in the index.
func (ix Index) Len() int { return len(ix) }

// At returns the i-th timestamp.
func (ix Index) At(i int) time.Time { return ix[i] }

// Equal reports whether two indices hold identical timestamps in order.
func (ix Index) Equal(other Index) bool {
	if len(ix) != len(other) {
		return false
	}
	for i := range ix {
		if !ix[i].Equal(other[i]) {
			return false
		}
	}

	return true
}

// Offsets converts each timestamp into its distance from origin measured
// in unit (e.g. 24h for a daily axis). This is the index-to-offset mapping
// trend effects anchor at fit time: fit and forecast must share one origin.
func (ix Index) Offsets(origin time.Time, unit time.Duration) []float64 {
	out := make([]float64, len(ix))
	for i, t := range ix {
		out[i] = float64(t.Sub(origin)) / float64(unit)
	}

	return out
}

// NewSeries aligns values to index. Errors: ErrEmptyIndex, ErrLengthMismatch.
func NewSeries(index Index, values []float64) (*Series, error) {
	if len(index) == 0 {
		return nil, ErrEmptyIndex
	}
	if len(values) != len(index) {
		return nil, fmt.Errorf("%w: index=%d values=%d", ErrLengthMismatch, len(index), len(values))
	}
	ixCopy := make(Index, len(index))
	copy(ixCopy, index)
	vCopy := make([]float64, len(values))
	copy(vCopy, values)

	return &Series{index: ixCopy, values: vCopy}, nil
}

// Index returns a copy of the series' time index.
func (s *Series) Index() Index {
	out := make(Index, len(s.index))
	copy(out, s.index)

	return out
}

// Values returns a copy of the series' observations.
func (s *Series) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)

	return out
}

// Len reports the number of observations.
func (s *Series) Len() int { return len(s.values) }

// At returns the i-th observation.
func (s *Series) At(i int) float64 { return s.values[i] }

// AbsMax returns the largest absolute observation, or 0 for an all-zero
// series. Used by the forecaster to derive its fit-time scale factor.
func (s *Series) AbsMax() float64 {
	m := 0.0
	for _, v := range s.values {
		if a := math.Abs(v); a > m {
			m = a
		}
	}

	return m
}

// New creates an empty Frame over index. Errors: ErrEmptyIndex.
func New(index Index) (*Frame, error) {
	if len(index) == 0 {
		return nil, ErrEmptyIndex
	}
	ixCopy := make(Index, len(index))
	copy(ixCopy, index)
	pos := make(map[int64]int, len(ixCopy))
	for i, t := range ixCopy {
		pos[t.UnixNano()] = i
	}

	return &Frame{index: ixCopy, cols: make(map[string][]float64), pos: pos}, nil
}

// Add appends a named column. Errors: ErrDuplicateColumn, ErrLengthMismatch.
func (f *Frame) Add(name string, values []float64) error {
	if _, ok := f.cols[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	if len(values) != len(f.index) {
		return fmt.Errorf("%w: column %q has %d rows, index has %d",
			ErrLengthMismatch, name, len(values), len(f.index))
	}
	vCopy := make([]float64, len(values))
	copy(vCopy, values)
	f.cols[name] = vCopy
	f.order = append(f.order, name)

	return nil
}

// Index returns a copy of the frame's time index.
func (f *Frame) Index() Index {
	out := make(Index, len(f.index))
	copy(out, f.index)

	return out
}

// Len reports the number of rows.
func (f *Frame) Len() int { return len(f.index) }

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)

	return out
}

// Column returns a copy of one column's values. Errors: ErrUnknownColumn.
func (f *Frame) Column(name string) ([]float64, error) {
	vals, ok := f.cols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]float64, len(vals))
	copy(out, vals)

	return out, nil
}

// At returns the cell value at row i of the named column.
// Errors: ErrUnknownColumn.
func (f *Frame) At(i int, name string) (float64, error) {
	vals, ok := f.cols[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}

	return vals[i], nil
}

// Covers reports whether every timestamp of idx exists in the frame's index.
func (f *Frame) Covers(idx Index) bool {
	for _, t := range idx {
		if _, ok := f.pos[t.UnixNano()]; !ok {
			return false
		}
	}

	return true
}

// rows resolves idx into row positions. Errors: ErrIndexNotCovered.
func (f *Frame) rows(idx Index) ([]int, error) {
	out := make([]int, len(idx))
	for i, t := range idx {
		p, ok := f.pos[t.UnixNano()]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotCovered, t.Format(time.RFC3339))
		}
		out[i] = p
	}

	return out, nil
}

// Slice returns a new Frame holding the rows of idx (in idx order) for all
// columns. Errors: ErrEmptyIndex, ErrIndexNotCovered.
func (f *Frame) Slice(idx Index) (*Frame, error) {
	rows, err := f.rows(idx)
	if err != nil {
		return nil, err
	}
	out, err := New(idx)
	if err != nil {
		return nil, err
	}
	for _, name := range f.order {
		src := f.cols[name]
		vals := make([]float64, len(rows))
		for i, r := range rows {
			vals[i] = src[r]
		}
		if err = out.Add(name, vals); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Select returns a new Frame over the same index holding only the named
// columns, in the given order. Errors: ErrUnknownColumn.
func (f *Frame) Select(names []string) (*Frame, error) {
	out, err := New(f.index)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		vals, ok := f.cols[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		if err = out.Add(name, vals); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Set writes values into the named column at the rows addressed by idx.
// All other cells are untouched. Errors: ErrUnknownColumn, ErrLengthMismatch,
// ErrIndexNotCovered.
func (f *Frame) Set(name string, idx Index, values []float64) error {
	vals, ok := f.cols[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	if len(values) != len(idx) {
		return fmt.Errorf("%w: idx=%d values=%d", ErrLengthMismatch, len(idx), len(values))
	}
	rows, err := f.rows(idx)
	if err != nil {
		return err
	}
	for i, r := range rows {
		vals[r] = values[i]
	}

	return nil
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out, _ := New(f.index)
	for _, name := range f.order {
		_ = out.Add(name, f.cols[name])
	}

	return out
}

// Matrix exports the named columns as a rows×len(names) dense matrix.
// Errors: ErrUnknownColumn.
func (f *Frame) Matrix(names []string) (*mat.Dense, error) {
	m := mat.NewDense(len(f.index), len(names), nil)
	for j, name := range names {
		vals, ok := f.cols[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		for i, v := range vals {
			m.Set(i, j, v)
		}
	}

	return m, nil
}
