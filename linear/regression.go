// Package linear fits ordinary-least-squares models of the form
//
//	prediction = intercept + Σ coefficient_i * feature_i
//
// and applies them to new feature rows.
package linear

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/insurecost/core/model"
	"github.com/YuminosukeSato/insurecost/core/parallel"
	"github.com/YuminosukeSato/insurecost/metrics"
	"github.com/YuminosukeSato/insurecost/pkg/errors"
	"github.com/YuminosukeSato/insurecost/pkg/log"
)

const modelName = "LinearRegression"

var machineEpsilon = math.Nextafter(1, 2) - 1

// FittedModel is a fitted least-squares model. It is immutable once returned by Fit,
// so a single instance may serve any number of concurrent Predict calls. Retraining
// means calling Fit again and obtaining a new FittedModel.
type FittedModel struct {
	intercept float64
	coef      []float64
	names     []string
	rank      int
	nSamples  int
	rcond     float64
	logger    log.Logger
}

var _ model.LinearModel = (*FittedModel)(nil)

// Fit computes the least-squares model for rows and targets.
//
// rows must be non-empty and rectangular, and len(targets) must equal len(rows). A
// column of ones is prepended to absorb the intercept and the system is solved through
// a thin SVD. When the design matrix is rank deficient the minimum-norm solution is
// returned and a RankDeficiencyWarning is raised.
//
// Errors match errors.ErrInsufficientData, errors.ErrDimensionMismatch or
// errors.ErrInvalidInput. No model is returned alongside an error.
func Fit(rows [][]float64, targets []float64, opts ...Option) (*FittedModel, error) {
	const op = "linear.Fit"

	if len(rows) == 0 {
		return nil, errors.NewInsufficientDataError(op)
	}
	width := len(rows[0])
	for _, row := range rows {
		if len(row) != width {
			return nil, errors.NewDimensionError(op, width, len(row), 1)
		}
	}
	if len(targets) != len(rows) {
		return nil, errors.NewDimensionError(op, len(rows), len(targets), 0)
	}
	if width == 0 {
		return nil, errors.NewDimensionError(op, 1, 0, 1)
	}

	X := mat.NewDense(len(rows), width, nil)
	for i, row := range rows {
		X.SetRow(i, row)
	}
	y := mat.NewVecDense(len(targets), append([]float64(nil), targets...))
	return FitDense(X, y, opts...)
}

// FitDense is Fit for data already held in gonum types.
func FitDense(X mat.Matrix, y mat.Vector, opts ...Option) (*FittedModel, error) {
	const op = "linear.Fit"

	cfg := newConfig(opts)
	r, c := X.Dims()
	if r == 0 {
		return nil, errors.NewInsufficientDataError(op)
	}
	if c == 0 {
		return nil, errors.NewDimensionError(op, 1, 0, 1)
	}
	if y.Len() != r {
		return nil, errors.NewDimensionError(op, r, y.Len(), 0)
	}
	if cfg.featureNames != nil && len(cfg.featureNames) != c {
		return nil, errors.NewDimensionError(op, c, len(cfg.featureNames), 1)
	}
	if cfg.rcondSet && (cfg.rcond < 0 || math.IsNaN(cfg.rcond)) {
		return nil, errors.NewInvalidInputError(op, "rcond", cfg.rcond, "must be non-negative")
	}
	if err := errors.CheckMatrix(op, "X", X, r, c); err != nil {
		return nil, err
	}
	if err := errors.CheckMatrix(op, "y", y, r, 1); err != nil {
		return nil, err
	}

	logger := cfg.logger.With(log.ModelNameKey, modelName, log.OperationKey, log.OperationFit)
	logger.Debug("fitting linear model", log.SamplesKey, r, log.FeaturesKey, c)
	start := time.Now()

	design := designMatrix(X, cfg.parallelThreshold)
	cols := c + 1
	tol := cfg.tolerance(r, cols)

	var (
		svd  mat.SVD
		beta mat.VecDense
		rank int
	)
	err := errors.SafeExecute(op, func() error {
		if !svd.Factorize(design, mat.SVDThin) {
			return errors.NewModelError(op, "SVD factorization failed", nil)
		}
		rank = svd.Rank(tol)
		if rank == 0 {
			return errors.NewModelError(op, "design matrix has rank zero", nil)
		}
		svd.SolveVecTo(&beta, y, rank)
		return nil
	})
	if err != nil {
		logger.Error("fit failed", err)
		return nil, err
	}
	if rank < cols {
		errors.Warn(errors.NewRankDeficiencyWarning(op, rank, cols))
	}

	params := make([]float64, cols)
	for i := range params {
		params[i] = beta.AtVec(i)
	}
	if err := errors.CheckFinite(op, "solution", params); err != nil {
		return nil, errors.NewModelError(op, "numerically unstable solution", err)
	}

	fitted := &FittedModel{
		intercept: params[0],
		coef:      params[1:],
		names:     cfg.featureNames,
		rank:      rank,
		nSamples:  r,
		rcond:     tol,
		logger:    cfg.logger.With(log.ModelNameKey, modelName),
	}

	logger.Debug("linear model fitted",
		log.RankKey, rank,
		log.InterceptKey, fitted.intercept,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return fitted, nil
}

// designMatrix returns [1 | X].
func designMatrix(X mat.Matrix, threshold int) *mat.Dense {
	r, c := X.Dims()
	design := mat.NewDense(r, c+1, nil)
	parallel.ParallelizeWithThreshold(r, threshold, func(start, end int) {
		for i := start; i < end; i++ {
			design.Set(i, 0, 1.0)
			for j := 0; j < c; j++ {
				design.Set(i, j+1, X.At(i, j))
			}
		}
	})
	return design
}

// Predict returns intercept + Σ coefficient_i * x_i. x must have NFeatures elements.
func (m *FittedModel) Predict(x []float64) (float64, error) {
	const op = "linear.Predict"

	if m == nil {
		return 0, errors.NewNotFittedError(modelName, "Predict")
	}
	if len(x) != len(m.coef) {
		return 0, errors.NewDimensionError(op, len(m.coef), len(x), 1)
	}
	if err := errors.CheckFinite(op, "x", x); err != nil {
		return 0, err
	}
	return m.intercept + floats.Dot(m.coef, x), nil
}

// Predict applies m to x. It is the free-function form of FittedModel.Predict.
func Predict(m *FittedModel, x []float64) (float64, error) {
	return m.Predict(x)
}

// PredictBatch predicts every row. Large batches are split across goroutines.
func (m *FittedModel) PredictBatch(rows [][]float64) ([]float64, error) {
	if m == nil {
		return nil, errors.NewNotFittedError(modelName, "PredictBatch")
	}

	out := make([]float64, len(rows))
	err := parallel.Chunks(len(rows), defaultParallelThreshold, func(start, end int) error {
		for i := start; i < end; i++ {
			v, err := m.Predict(rows[i])
			if err != nil {
				return errors.Wrapf(err, "row %d", i)
			}
			out[i] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.logger.Debug("batch predicted", log.OperationKey, log.OperationPredict, log.PredsKey, len(out))
	return out, nil
}

// Score returns the coefficient of determination R² of the predictions for rows.
func (m *FittedModel) Score(rows [][]float64, targets []float64) (float64, error) {
	const op = "linear.Score"

	if m == nil {
		return 0, errors.NewNotFittedError(modelName, "Score")
	}
	if len(rows) == 0 {
		return 0, errors.NewInsufficientDataError(op)
	}
	if len(rows) != len(targets) {
		return 0, errors.NewDimensionError(op, len(rows), len(targets), 0)
	}

	preds, err := m.PredictBatch(rows)
	if err != nil {
		return 0, err
	}
	yTrue := mat.NewVecDense(len(targets), append([]float64(nil), targets...))
	r2, err := metrics.R2Score(yTrue, mat.NewVecDense(len(preds), preds))
	if err != nil {
		return 0, err
	}
	m.logger.Debug("model scored", log.OperationKey, log.OperationScore, log.SamplesKey, len(rows), log.R2ScoreKey, r2)
	return r2, nil
}

// Intercept returns the constant term.
func (m *FittedModel) Intercept() float64 {
	if m == nil {
		return 0
	}
	return m.intercept
}

// Coefficients returns a copy of the per-feature coefficients.
func (m *FittedModel) Coefficients() []float64 {
	if m == nil {
		return nil
	}
	return append([]float64(nil), m.coef...)
}

// FeatureNames returns a copy of the names given through WithFeatureNames, or nil.
func (m *FittedModel) FeatureNames() []string {
	if m == nil || m.names == nil {
		return nil
	}
	return append([]string(nil), m.names...)
}

// NFeatures returns the width every feature row must have.
func (m *FittedModel) NFeatures() int {
	if m == nil {
		return 0
	}
	return len(m.coef)
}

// Rank returns the numerical rank of the design matrix, intercept column included.
func (m *FittedModel) Rank() int {
	if m == nil {
		return 0
	}
	return m.rank
}

// NSamples returns the number of rows the model was fitted on.
func (m *FittedModel) NSamples() int {
	if m == nil {
		return 0
	}
	return m.nSamples
}
