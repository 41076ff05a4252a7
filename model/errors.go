package model

import "errors"

var (
	// ErrNoTrend indicates a graph constructed without a trend effect.
	ErrNoTrend = errors.New("model: graph requires a trend effect")

	// ErrEmptyName indicates an effect with an empty name.
	ErrEmptyName = errors.New("model: effect name must be non-empty")

	// ErrReservedName indicates an effect named "observation", which is
	// reserved for the likelihood's noise site.
	ErrReservedName = errors.New("model: effect name \"observation\" is reserved")

	// ErrDuplicateEffect indicates two effects sharing one name.
	ErrDuplicateEffect = errors.New("model: duplicate effect name")

	// ErrDependencyOrder indicates an effect depending on another effect
	// that does not evaluate strictly before it (missing, later, or self).
	ErrDependencyOrder = errors.New("model: dependency must evaluate earlier in the graph")

	// ErrNoData indicates Build was called without a target series.
	ErrNoData = errors.New("model: target series is required")
)
