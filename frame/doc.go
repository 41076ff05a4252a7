// Package frame provides the minimal panel-data layer the forecaster
// operates on: a time Index, a target Series, and a Frame of aligned
// exogenous columns.
//
// 🚀 What does frame give you?
//
//   - Index: an ordered sequence of timestamps with offset arithmetic
//     (distance from a fixed origin in configurable units) — the bridge
//     between wall-clock time and the numeric time axis effects use
//   - Series: a target variable aligned to an Index
//   - Frame: named float columns over one shared Index, with selection,
//     row slicing by sub-index, covering checks, cloning, cell writes,
//     and export to gonum matrices
//
// Invariants:
//
//   - every column of a Frame has exactly len(Index) rows
//   - column names are unique; column order is insertion order
//   - Slice/Set against timestamps the Index does not contain fail with
//     ErrIndexNotCovered — never silent NaNs
//
// Frames are plain data: none of the methods here mutate receivers other
// than Add and Set, and Clone produces a fully independent deep copy.
package frame
