// Package metrics scores a model's predictions against observed charges.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/insurecost/pkg/errors"
)

// Regression bundles the error measures reported for a fitted model.
type Regression struct {
	MSE  float64
	RMSE float64
	MAE  float64
	R2   float64
}

func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewInsufficientDataError(op)
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// MSE computes the mean squared error.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE computes the root mean squared error.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score computes the coefficient of determination, 1 - SS_res/SS_tot.
// When yTrue is constant the score is 1 for a perfect prediction and 0 otherwise.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	truth := make([]float64, n)
	for i := range truth {
		truth[i] = yTrue.AtVec(i)
	}
	mean := stat.Mean(truth, nil)

	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		res := truth[i] - yPred.AtVec(i)
		ssRes += res * res
		dev := truth[i] - mean
		ssTot += dev * dev
	}

	if ssTot == 0 {
		if ssRes == 0 {
			return 1.0, nil
		}
		return 0.0, nil
	}
	return 1.0 - ssRes/ssTot, nil
}

// Evaluate computes every regression measure for plain slices.
func Evaluate(actual, predicted []float64) (Regression, error) {
	if len(actual) == 0 {
		return Regression{}, errors.NewInsufficientDataError("metrics.Evaluate")
	}
	if len(predicted) != len(actual) {
		return Regression{}, errors.NewDimensionError("metrics.Evaluate", len(actual), len(predicted), 0)
	}
	if err := errors.CheckFinite("metrics.Evaluate", "predicted", predicted); err != nil {
		return Regression{}, err
	}

	yTrue := mat.NewVecDense(len(actual), append([]float64(nil), actual...))
	yPred := mat.NewVecDense(len(predicted), append([]float64(nil), predicted...))

	var (
		r   Regression
		err error
	)
	if r.MSE, err = MSE(yTrue, yPred); err != nil {
		return Regression{}, err
	}
	r.RMSE = math.Sqrt(r.MSE)
	if r.MAE, err = MAE(yTrue, yPred); err != nil {
		return Regression{}, err
	}
	if r.R2, err = R2Score(yTrue, yPred); err != nil {
		return Regression{}, err
	}
	return r, nil
}
