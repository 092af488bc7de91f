package dataset

import (
	"math"
	"strings"
	"testing"

	"github.com/jszwec/csvutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/insurecost/pkg/errors"
)

const sampleCSV = `age,sex,bmi,children,smoker,region,charges
19,female,27.9,0,yes,southwest,16884.924
18,male,33.77,1,no,southeast,1725.5523
28,male,33,3,no,southeast,4449.462
33,male,22.705,0,no,northwest,21984.47061
32,male,28.88,0,no,northwest,3866.8552
31,female,25.74,0,no,southeast,3756.6216
`

func TestLoad(t *testing.T) {
	ds, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 6, ds.Len())

	first := ds.At(0)
	assert.Equal(t, 19, first.Age)
	assert.Equal(t, "female", first.Sex)
	assert.InDelta(t, 27.9, first.BMI, 1e-12)
	assert.True(t, first.Smoker)
	assert.Equal(t, "southwest", first.Region)
	assert.InDelta(t, 16884.924, first.Charges, 1e-9)

	assert.Equal(t, 3, ds.At(2).Children)
	assert.False(t, ds.At(2).Smoker)
}

func TestLoad_ColumnOrderAndOptionalColumns(t *testing.T) {
	input := "charges,smoker,bmi,age\n3000,No,22.0,25\n15000, YES ,30.0,40\n"

	ds, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	assert.Equal(t, 25, ds.At(0).Age)
	assert.False(t, ds.At(0).Smoker)
	assert.True(t, ds.At(1).Smoker)
	assert.Equal(t, "", ds.At(1).Region)
	assert.Equal(t, 0, ds.At(1).Children)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{"empty file", "", errors.ErrInsufficientData, ""},
		{"header only", "age,sex,bmi,children,smoker,region,charges\n", errors.ErrInsufficientData, ""},
		{"missing column", "age,bmi,charges\n25,22.0,3000\n", errors.ErrInvalidInput, "smoker"},
		{"bad smoker", "age,bmi,smoker,charges\n25,22.0,no,3000\n40,30.0,maybe,15000\n", errors.ErrInvalidInput, "data line 2"},
		{"negative age", "age,bmi,smoker,charges\n-1,22.0,no,3000\n", errors.ErrInvalidInput, "age"},
		{"zero bmi", "age,bmi,smoker,charges\n30,0,no,3000\n", errors.ErrInvalidInput, "bmi"},
		{"negative charges", "age,bmi,smoker,charges\n30,22,no,-5\n", errors.ErrInvalidInput, "charges"},
		{"unparsable age", "age,bmi,smoker,charges\n30,22,no,3000\nabc,22,no,3000\n", errors.ErrInvalidInput, "data line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Load(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, ds)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoad_DecodeErrorKeepsChain(t *testing.T) {
	input := "age,bmi,smoker,charges\n30,22,no,3000\n41,abc,yes,12000\n"

	_, err := Load(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "data line 2")

	var typeErr *csvutil.UnmarshalTypeError
	require.True(t, errors.As(err, &typeErr), "csvutil error lost from chain: %v", err)
	assert.Equal(t, "abc", typeErr.Value)
}

func TestNew_CopiesAndValidates(t *testing.T) {
	records := []Record{
		{Age: 25, BMI: 22.0, Charges: 3000},
		{Age: 40, BMI: 30.0, Smoker: true, Charges: 15000},
	}
	ds, err := New(records)
	require.NoError(t, err)

	records[0].Age = 99
	assert.Equal(t, 25, ds.At(0).Age)

	out := ds.Records()
	out[1].Charges = 0
	assert.InDelta(t, 15000, ds.At(1).Charges, 1e-12)

	_, err = New([]Record{{Age: 30, BMI: math.NaN(), Charges: 1}})
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "record 1")
}

func TestTrainingSet(t *testing.T) {
	ds, err := New([]Record{
		{Age: 25, BMI: 22.0, Smoker: false, Charges: 3000},
		{Age: 40, BMI: 30.0, Smoker: true, Charges: 15000},
		{Age: 60, BMI: 35.0, Smoker: true, Charges: 25000},
	})
	require.NoError(t, err)

	matrix, targets, err := ds.TrainingSet()
	require.NoError(t, err)
	require.Len(t, matrix, 3)
	require.Len(t, targets, 3)

	assert.Equal(t, []float64{25, 22.0, 0}, []float64(matrix[0]))
	assert.Equal(t, []float64{60, 35.0, 1}, []float64(matrix[2]))
	assert.Equal(t, []float64{3000, 15000, 25000}, targets)

	empty, err := New(nil)
	require.NoError(t, err)
	_, _, err = empty.TrainingSet()
	assert.True(t, errors.Is(err, errors.ErrInsufficientData))
}

func TestDescribe(t *testing.T) {
	ds, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	s, err := ds.Describe()
	require.NoError(t, err)

	total := 16884.924 + 1725.5523 + 4449.462 + 21984.47061 + 3866.8552 + 3756.6216
	assert.Equal(t, 6, s.Count)
	assert.InDelta(t, total/6, s.AverageCharges, 1e-9)
	assert.InDelta(t, 16884.924, s.AverageChargesSmoker, 1e-9)
	assert.InDelta(t, (total-16884.924)/5, s.AverageChargesNonSmoker, 1e-9)
	assert.InDelta(t, (18.0+28.0)/2, s.AverageAgeWithChildren, 1e-12)
	assert.InDelta(t, (3866.8552+4449.462)/2, s.MedianCharges, 1e-9)

	assert.Equal(t, map[string]int{"southwest": 1, "southeast": 3, "northwest": 2}, s.RegionCounts)
	assert.Equal(t, map[string]int{"female": 2, "male": 4}, s.SexCounts)

	bmiMean := (27.9 + 33.77 + 33 + 22.705 + 28.88 + 25.74) / 6
	assert.InDelta(t, bmiMean, s.BMIMean, 1e-9)
	assert.Greater(t, s.BMIStdDev, 0.0)
}

func TestDescribe_EmptyGroups(t *testing.T) {
	ds, err := New([]Record{{Age: 30, BMI: 25, Charges: 1000}})
	require.NoError(t, err)

	s, err := ds.Describe()
	require.NoError(t, err)
	assert.Zero(t, s.AverageChargesSmoker)
	assert.Zero(t, s.AverageAgeWithChildren)
	assert.Zero(t, s.BMIStdDev)
	assert.InDelta(t, 1000, s.MedianCharges, 1e-12)
	assert.InDelta(t, 1000, ds.AverageChargesBy(false), 1e-12)
	assert.Zero(t, ds.AverageChargesBy(true))

	empty, err := New(nil)
	require.NoError(t, err)
	_, err = empty.Describe()
	assert.True(t, errors.Is(err, errors.ErrInsufficientData))
}
