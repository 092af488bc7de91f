// Package model defines the interfaces shared by fitted estimators and the JSON
// envelope used to persist their parameters.
package model

// Predictor predicts a scalar target from a single feature row.
type Predictor interface {
	Predict(x []float64) (float64, error)
}

// BatchPredictor predicts one value per row.
type BatchPredictor interface {
	PredictBatch(rows [][]float64) ([]float64, error)
}

// LinearModel is a fitted affine model: intercept + Σ coefficient_i * x_i.
type LinearModel interface {
	Predictor
	BatchPredictor
	// Intercept returns the constant term.
	Intercept() float64
	// Coefficients returns a copy of the per-feature coefficients.
	Coefficients() []float64
	// FeatureNames returns a copy of the feature names, in coefficient order.
	FeatureNames() []string
	// NFeatures returns the width every feature row must have.
	NFeatures() int
}
