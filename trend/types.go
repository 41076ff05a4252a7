// This file declares the options shared by the trend variants.
package trend

import (
	"errors"
	"time"
)

var (
	// ErrBadChangepoints indicates a non-positive changepoint interval or
	// a changepoint range outside (0, 1].
	ErrBadChangepoints = errors.New("trend: invalid changepoint configuration")

	// ErrTooShort indicates a training series too short to anchor a trend
	// (fewer than two observations).
	ErrTooShort = errors.New("trend: training series too short")
)

// PiecewiseOptions configures a PiecewiseLinear trend.
//
//   - ChangepointInterval: spacing between candidate changepoints, in
//     observations (default 25).
//   - ChangepointRange: fraction of the training index that may contain
//     changepoints (default 0.8). Values above 1 are clipped to the
//     observed range.
//   - DeltaPriorScale: Laplace scale of the per-changepoint rate
//     adjustments (default 0.05). Smaller ⇒ sparser, smoother trends.
//   - TimeUnit: duration of one step on the numeric time axis
//     (default 24h).
type PiecewiseOptions struct {
	ChangepointInterval int
	ChangepointRange    float64
	DeltaPriorScale     float64
	TimeUnit            time.Duration
}

// DefaultPiecewiseOptions returns the documented defaults.
func DefaultPiecewiseOptions() PiecewiseOptions {
	return PiecewiseOptions{
		ChangepointInterval: 25,
		ChangepointRange:    0.8,
		DeltaPriorScale:     0.05,
		TimeUnit:            24 * time.Hour,
	}
}

// LogisticOptions configures a Logistic trend.
//
//   - CapacityPriorSigma: spread of the Normal prior over the log
//     asymptotic capacity (default 1); its center is anchored at the
//     normalized series maximum during Fit.
//   - TimeUnit: duration of one step on the numeric time axis
//     (default 24h).
type LogisticOptions struct {
	CapacityPriorSigma float64
	TimeUnit           time.Duration
}

// DefaultLogisticOptions returns the documented defaults.
func DefaultLogisticOptions() LogisticOptions {
	return LogisticOptions{CapacityPriorSigma: 1, TimeUnit: 24 * time.Hour}
}
