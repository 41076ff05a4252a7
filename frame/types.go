// This file declares Index, Series and Frame — the three panel-data
// shapes every other package consumes.
package frame

import "time"

// Index is an ordered sequence of timestamps. Indices are treated as
// immutable: helpers return fresh slices and never alias their receiver.
type Index []time.Time

// Series is a single variable (typically the forecast target) aligned
// to an Index. Construct with NewSeries so the alignment invariant holds.
type Series struct {
	index  Index
	values []float64
}

// Frame holds named float columns over one shared Index.
//
// Column order is insertion order, which keeps every derived artifact
// (matrices, selections, optimized copies) deterministic.
type Frame struct {
	index Index
	order []string
	cols  map[string][]float64

	// pos maps UnixNano → row, built once at construction for O(1) lookups.
	pos map[int64]int
}
