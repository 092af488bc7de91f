// Package features turns the raw attributes of an insured person into the numeric
// row consumed by the linear estimator: (age, bmi, smoker indicator).
package features

import (
	"math"
	"strings"

	"github.com/YuminosukeSato/insurecost/pkg/errors"
)

// Width is the number of features in every Vector.
const Width = 3

// Column positions within a Vector.
const (
	AgeIndex = iota
	BMIIndex
	SmokerIndex
)

// Names labels each position of a Vector.
var Names = [Width]string{"age", "bmi", "smoker"}

// Smoker status values as they appear in the source data.
const (
	SmokerYes = "yes"
	SmokerNo  = "no"
)

// Vector is one feature row. A Vector is assignable to []float64.
type Vector []float64

// Matrix is an ordered set of rows. A Matrix is assignable to [][]float64.
type Matrix [][]float64

// NamesSlice returns a fresh copy of Names.
func NamesSlice() []string {
	return append([]string(nil), Names[:]...)
}

// ParseSmoker normalises a smoker status. Surrounding whitespace and case are ignored;
// anything other than "yes" or "no" is invalid input.
func ParseSmoker(status string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case SmokerYes:
		return true, nil
	case SmokerNo:
		return false, nil
	default:
		return false, errors.NewInvalidInputError("features.ParseSmoker", "smoker", status,
			`must be "yes" or "no"`)
	}
}

// Build maps age, bmi and a textual smoker status to a Vector.
func Build(age int, bmi float64, smoker string) (Vector, error) {
	isSmoker, err := ParseSmoker(smoker)
	if err != nil {
		return nil, err
	}
	return BuildFlag(age, bmi, isSmoker)
}

// BuildFlag is Build for callers that already hold the smoker status as a bool.
func BuildFlag(age int, bmi float64, smoker bool) (Vector, error) {
	const op = "features.Build"

	if age < 0 {
		return nil, errors.NewInvalidInputError(op, "age", age, "must be non-negative")
	}
	if math.IsNaN(bmi) || math.IsInf(bmi, 0) || bmi <= 0 {
		return nil, errors.NewInvalidInputError(op, "bmi", bmi, "must be a positive finite number")
	}

	indicator := 0.0
	if smoker {
		indicator = 1.0
	}
	return Vector{float64(age), bmi, indicator}, nil
}
