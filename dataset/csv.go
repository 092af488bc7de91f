package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jszwec/csvutil"

	"github.com/YuminosukeSato/insurecost/features"
	"github.com/YuminosukeSato/insurecost/pkg/errors"
	"github.com/YuminosukeSato/insurecost/pkg/log"
)

// RequiredColumns must appear in the header. sex, children and region are
// descriptive only and default to their zero values when absent.
var RequiredColumns = []string{"age", "bmi", "smoker", "charges"}

// row mirrors one line of the source file.
type row struct {
	Age      int     `csv:"age"`
	Sex      string  `csv:"sex"`
	BMI      float64 `csv:"bmi"`
	Children int     `csv:"children"`
	Smoker   string  `csv:"smoker"`
	Region   string  `csv:"region"`
	Charges  float64 `csv:"charges"`
}

func (r row) record() (Record, error) {
	smoker, err := features.ParseSmoker(r.Smoker)
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		Age:      r.Age,
		Sex:      strings.TrimSpace(r.Sex),
		BMI:      r.BMI,
		Children: r.Children,
		Smoker:   smoker,
		Region:   strings.TrimSpace(r.Region),
		Charges:  r.Charges,
	}
	return rec, rec.Validate()
}

// Load reads a header-first CSV stream into a Dataset. Columns may appear in any
// order. A stream without a header or without data rows is insufficient data.
func Load(r io.Reader) (*Dataset, error) {
	const op = "dataset.Load"

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	dec, err := csvutil.NewDecoder(reader)
	if err == io.EOF {
		return nil, errors.NewInsufficientDataError(op)
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading csv header")
	}
	if err := checkHeader(op, dec.Header()); err != nil {
		return nil, err
	}

	var records []Record
	for line := 1; ; line++ {
		var raw row
		if err := dec.Decode(&raw); err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrapf(errors.Mark(err, errors.ErrInvalidInput), "data line %d", line)
		}

		rec, err := raw.record()
		if err != nil {
			return nil, errors.Wrapf(err, "data line %d", line)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, errors.NewInsufficientDataError(op)
	}
	return &Dataset{records: records}, nil
}

func checkHeader(op string, header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return errors.NewInvalidInputError(op, "header", strings.Join(header, ","),
			"missing required columns: "+strings.Join(missing, ", "))
	}
	return nil
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string) (*Dataset, error) {
	logger := log.GetLoggerWithName("dataset").With(log.SourceKey, path, log.OperationKey, log.OperationLoad)
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	ds, err := Load(f)
	if err != nil {
		logger.Error("failed to load dataset", err)
		return nil, errors.Wrapf(err, "loading %s", path)
	}

	logger.Info("dataset loaded",
		log.SamplesKey, ds.Len(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return ds, nil
}
