// Package insurecost estimates medical insurance charges from a person's age,
// body-mass index and smoker status.
//
// The library is organised around two core packages:
//
//   - features turns raw attributes into a fixed-width numeric row
//     (age, bmi, smoker indicator) and rejects out-of-domain values.
//   - linear fits an ordinary-least-squares model with an intercept and
//     predicts one row at a time. The returned FittedModel is immutable and
//     safe for concurrent use.
//
// Around the core, dataset ingests CSV files and computes descriptive
// statistics, metrics scores predictions, report renders results, and
// cmd/insurecost ties them together on the command line.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/insurecost/features"
//	    "github.com/YuminosukeSato/insurecost/linear"
//	)
//
//	func main() {
//	    rows := [][]float64{{25, 22.0, 0}, {40, 30.0, 1}, {60, 35.0, 1}, {33, 27.5, 0}, {51, 24.1, 0}}
//	    charges := []float64{3000, 15000, 25000, 5200, 9800}
//
//	    model, err := linear.Fit(rows, charges)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    v, err := features.Build(45, 29.3, "yes")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    estimate, err := model.Predict(v)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("estimated charges: %.2f\n", estimate)
//	}
//
// # Errors
//
// Every failure matches one of three sentinels in pkg/errors:
// ErrInvalidInput, ErrInsufficientData or ErrDimensionMismatch. Rank-deficient
// training data is not an error; it raises a RankDeficiencyWarning through the
// installed warning handler and the minimum-norm solution is used.
//
// # Logging
//
// pkg/log provides a structured Logger backed by zerolog. Call
// log.SetupLogger once at startup to choose the output, level and format.
package insurecost
