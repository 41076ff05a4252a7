// Package forecaster is the user-facing facade: it ties an effect graph,
// an inference engine and the panel-data conventions into a
// fit/predict surface.
//
// 🚀 Usage:
//
//	tr, _ := trend.NewPiecewiseLinear("trend", nil)
//	g, _ := model.NewGraph(tr,
//		effect.NewLinearRegression("media", effect.Prefix("spend_"), nil),
//	)
//	fc := forecaster.New(g, nil)
//	if err := fc.Fit(y, X); err != nil { ... }
//	point, _ := fc.Predict(fh, X)
//	band, _ := fc.PredictInterval(fh, X, 0.9)
//	comps, _ := fc.PredictComponents(fh, X)
//
// Contract:
//
//   - Fit discards any previous fit and produces fresh posterior
//     artifacts; there is no incremental fitting.
//   - Every Predict* call renders from scratch — no caching across
//     calls, so repeated calls with the same inputs and seed are
//     identical, and concurrent reads of one fitted forecaster are safe.
//   - The exogenous frame must cover the requested horizon (and the fit
//     index at fit time); a gap is ErrHorizonNotCovered, never NaNs.
//   - Outputs are de-normalized back to target units; multiplicative
//     component columns stay unitless fractional lifts.
package forecaster
