package dataset

import (
	"github.com/YuminosukeSato/insurecost/features"
	"github.com/YuminosukeSato/insurecost/pkg/errors"
)

// Dataset is an immutable collection of validated records. It is safe for
// concurrent readers.
type Dataset struct {
	records []Record
}

// New validates records and copies them into a Dataset. Errors name the
// 1-based position of the offending record.
func New(records []Record) (*Dataset, error) {
	owned := make([]Record, len(records))
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, errors.Wrapf(err, "record %d", i+1)
		}
		owned[i] = r
	}
	return &Dataset{records: owned}, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// At returns the i-th record.
func (d *Dataset) At(i int) Record {
	return d.records[i]
}

// Records returns a copy of every record.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// TrainingSet builds the feature matrix and the charges target vector.
// Row i of the matrix always corresponds to target i.
func (d *Dataset) TrainingSet() (features.Matrix, []float64, error) {
	if len(d.records) == 0 {
		return nil, nil, errors.NewInsufficientDataError("dataset.TrainingSet")
	}

	matrix := make(features.Matrix, len(d.records))
	targets := make([]float64, len(d.records))
	for i, r := range d.records {
		v, err := r.Features()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "record %d", i+1)
		}
		matrix[i] = v
		targets[i] = r.Charges
	}
	return matrix, targets, nil
}

// Charges returns a copy of the target column.
func (d *Dataset) Charges() []float64 {
	out := make([]float64, len(d.records))
	for i, r := range d.records {
		out[i] = r.Charges
	}
	return out
}
