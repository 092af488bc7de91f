// Package report renders descriptive statistics, fitted models and predictions
// for people reading the driver's output.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/YuminosukeSato/insurecost/core/model"
	"github.com/YuminosukeSato/insurecost/dataset"
	"github.com/YuminosukeSato/insurecost/features"
	"github.com/YuminosukeSato/insurecost/metrics"
	"github.com/YuminosukeSato/insurecost/pkg/errors"
	"github.com/YuminosukeSato/insurecost/pkg/log"
)

// Round2 rounds half away from zero to two decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// errWriter remembers the first write error so callers can check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// WriteSummary prints the descriptive statistics of a dataset.
func WriteSummary(w io.Writer, s dataset.Summary) error {
	ew := &errWriter{w: w}
	ew.printf("Records: %d\n", s.Count)
	ew.printf("Average charges: %.2f\n", Round2(s.AverageCharges))
	ew.printf("Average charges (smokers): %.2f\n", Round2(s.AverageChargesSmoker))
	ew.printf("Average charges (non-smokers): %.2f\n", Round2(s.AverageChargesNonSmoker))
	ew.printf("Median charges: %.2f\n", Round2(s.MedianCharges))
	ew.printf("Average age with children: %.2f\n", Round2(s.AverageAgeWithChildren))
	ew.printf("BMI: mean %.2f, std dev %.2f\n", Round2(s.BMIMean), Round2(s.BMIStdDev))
	ew.printf("Region distribution: %s\n", formatCounts(s.RegionCounts))
	ew.printf("Sex distribution: %s\n", formatCounts(s.SexCounts))
	return ew.err
}

// formatCounts renders counts as "key=n" pairs sorted by key.
func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		label := k
		if label == "" {
			label = "(unknown)"
		}
		parts[i] = fmt.Sprintf("%s=%d", label, counts[k])
	}
	return strings.Join(parts, ", ")
}

// WriteModel prints the fitted equation, one coefficient per line. A nil model,
// including a typed nil, is reported as not fitted.
func WriteModel(w io.Writer, m model.LinearModel) error {
	if m == nil || m.NFeatures() == 0 {
		return errors.NewNotFittedError("report", "WriteModel")
	}

	coef := m.Coefficients()
	names := m.FeatureNames()
	ew := &errWriter{w: w}
	ew.printf("Intercept: %.2f\n", Round2(m.Intercept()))
	for i, c := range coef {
		name := fmt.Sprintf("x%d", i)
		if i < len(names) {
			name = names[i]
		}
		ew.printf("Coefficient %s: %.2f\n", name, Round2(c))
	}
	return ew.err
}

// WriteEvaluation prints in-sample error measures.
func WriteEvaluation(w io.Writer, r metrics.Regression) error {
	ew := &errWriter{w: w}
	ew.printf("R²: %.4f\n", r.R2)
	ew.printf("RMSE: %.2f\n", Round2(r.RMSE))
	ew.printf("MAE: %.2f\n", Round2(r.MAE))
	return ew.err
}

// PredictionResult is the outcome of one prediction request. Err is set when no
// value could be produced.
type PredictionResult struct {
	Input features.Vector
	Value float64
	Err   error
}

// OK reports whether the result carries a value.
func (p PredictionResult) OK() bool {
	return p.Err == nil
}

// Predict runs m on input and packages the outcome.
func Predict(m model.Predictor, input features.Vector) PredictionResult {
	if m == nil {
		return PredictionResult{Input: input, Err: errors.NewNotFittedError("report", "Predict")}
	}
	v, err := m.Predict(input)
	return PredictionResult{Input: input, Value: v, Err: err}
}

// WritePrediction prints a prediction, or an explicit "no result" line.
func WritePrediction(w io.Writer, p PredictionResult) error {
	ew := &errWriter{w: w}
	if !p.OK() {
		ew.printf("Predicted charges: no result (%v)\n", p.Err)
		return ew.err
	}
	ew.printf("Predicted charges for %s: %.2f\n", describeInput(p.Input), Round2(p.Value))
	return ew.err
}

func describeInput(v features.Vector) string {
	if len(v) != features.Width {
		return fmt.Sprint([]float64(v))
	}
	smoker := features.SmokerNo
	if v[features.SmokerIndex] == 1 {
		smoker = features.SmokerYes
	}
	return fmt.Sprintf("age=%g bmi=%g smoker=%s", v[features.AgeIndex], v[features.BMIIndex], smoker)
}

// Evaluate predicts every record of ds with m and scores the result against the
// observed charges.
func Evaluate(m model.BatchPredictor, ds *dataset.Dataset) (metrics.Regression, []float64, error) {
	matrix, targets, err := ds.TrainingSet()
	if err != nil {
		return metrics.Regression{}, nil, err
	}
	preds, err := m.PredictBatch(matrix)
	if err != nil {
		return metrics.Regression{}, nil, errors.Wrap(err, "predicting training set")
	}
	r, err := metrics.Evaluate(targets, preds)
	if err != nil {
		return metrics.Regression{}, nil, err
	}

	log.GetLoggerWithName("report").Info("model evaluated",
		log.OperationKey, log.OperationReport,
		log.PredsKey, len(preds),
		log.R2ScoreKey, r.R2,
	)
	return r, preds, nil
}
