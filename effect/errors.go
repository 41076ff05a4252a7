package effect

import "errors"

var (
	// ErrNotFitted indicates Transform or Predict was called before Fit.
	ErrNotFitted = errors.New("effect: not fitted")

	// ErrNoMatchingColumns indicates a selector matched zero columns for an
	// effect that requires exogenous input.
	ErrNoMatchingColumns = errors.New("effect: selector matched no columns")

	// ErrColumnCount indicates a selector matched a number of columns the
	// effect cannot accept (e.g. a single-column effect given several).
	ErrColumnCount = errors.New("effect: unexpected number of matched columns")

	// ErrDuplicateSite indicates two latent sites resolved to the same
	// qualified name within one model.
	ErrDuplicateSite = errors.New("effect: duplicate latent site name")

	// ErrUnknownSite indicates a Predict asked the store for a site that
	// was never declared.
	ErrUnknownSite = errors.New("effect: unknown latent site")

	// ErrBadSite indicates a site declaration with a non-positive dimension
	// or a missing prior.
	ErrBadSite = errors.New("effect: invalid latent site declaration")

	// ErrBadConfig indicates invalid construction-time configuration
	// (non-positive period, zero order, and the like).
	ErrBadConfig = errors.New("effect: invalid configuration")

	// ErrMissingDependency indicates a Predict did not receive the output
	// of a declared dependency in the previous-effects mapping.
	ErrMissingDependency = errors.New("effect: missing dependency output")

	// ErrNoTarget indicates Fit received a nil or empty target series.
	ErrNoTarget = errors.New("effect: target series is required")
)
