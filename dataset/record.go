// Package dataset holds the ingested insurance records and the descriptive
// statistics computed over them.
package dataset

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/insurecost/features"
	"github.com/YuminosukeSato/insurecost/pkg/errors"
)

// Record is one observed individual.
type Record struct {
	Age      int
	Sex      string
	BMI      float64
	Children int
	Smoker   bool
	Region   string
	Charges  float64
}

// Validate checks every field against its domain.
func (r Record) Validate() error {
	const op = "dataset.Record.Validate"
	switch {
	case r.Age < 0:
		return errors.NewInvalidInputError(op, "age", r.Age, "must be non-negative")
	case math.IsNaN(r.BMI) || math.IsInf(r.BMI, 0) || r.BMI <= 0:
		return errors.NewInvalidInputError(op, "bmi", r.BMI, "must be a positive finite number")
	case r.Children < 0:
		return errors.NewInvalidInputError(op, "children", r.Children, "must be non-negative")
	case math.IsNaN(r.Charges) || math.IsInf(r.Charges, 0) || r.Charges < 0:
		return errors.NewInvalidInputError(op, "charges", r.Charges, "must be a non-negative finite number")
	}
	return nil
}

// Features returns the record's feature vector.
func (r Record) Features() (features.Vector, error) {
	return features.BuildFlag(r.Age, r.BMI, r.Smoker)
}

// SmokerStatus renders the smoker flag the way it appears in the source data.
func (r Record) SmokerStatus() string {
	if r.Smoker {
		return features.SmokerYes
	}
	return features.SmokerNo
}

func (r Record) String() string {
	return fmt.Sprintf("Record{age=%d sex=%s bmi=%.2f children=%d smoker=%s region=%s charges=%.2f}",
		r.Age, r.Sex, r.BMI, r.Children, r.SmokerStatus(), r.Region, r.Charges)
}
