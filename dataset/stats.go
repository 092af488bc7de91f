package dataset

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/insurecost/pkg/errors"
)

// Summary holds the descriptive statistics of a Dataset. Group averages are 0
// when the group is empty.
type Summary struct {
	Count int

	AverageCharges          float64
	AverageChargesSmoker    float64
	AverageChargesNonSmoker float64
	MedianCharges           float64

	// AverageAgeWithChildren averages the age of people with at least one child.
	AverageAgeWithChildren float64

	BMIMean   float64
	BMIStdDev float64

	RegionCounts map[string]int
	SexCounts    map[string]int
}

// Describe computes the Summary of d.
func (d *Dataset) Describe() (Summary, error) {
	n := len(d.records)
	if n == 0 {
		return Summary{}, errors.NewInsufficientDataError("dataset.Describe")
	}

	var (
		charges      = make([]float64, n)
		bmis         = make([]float64, n)
		smokerCost   []float64
		nonSmokeCost []float64
		parentAges   []float64
	)
	s := Summary{
		Count:        n,
		RegionCounts: make(map[string]int),
		SexCounts:    make(map[string]int),
	}

	for i, r := range d.records {
		charges[i] = r.Charges
		bmis[i] = r.BMI
		if r.Smoker {
			smokerCost = append(smokerCost, r.Charges)
		} else {
			nonSmokeCost = append(nonSmokeCost, r.Charges)
		}
		if r.Children > 0 {
			parentAges = append(parentAges, float64(r.Age))
		}
		s.RegionCounts[r.Region]++
		s.SexCounts[r.Sex]++
	}

	s.AverageCharges = stat.Mean(charges, nil)
	s.AverageChargesSmoker = meanOrZero(smokerCost)
	s.AverageChargesNonSmoker = meanOrZero(nonSmokeCost)
	s.AverageAgeWithChildren = meanOrZero(parentAges)

	if n > 1 {
		s.BMIMean, s.BMIStdDev = stat.MeanStdDev(bmis, nil)
	} else {
		s.BMIMean = bmis[0]
	}

	sort.Float64s(charges)
	s.MedianCharges = median(charges)

	return s, nil
}

func meanOrZero(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// median expects sorted input and averages the middle pair for even lengths.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// AverageChargesBy returns the average charges of records whose smoker flag
// equals smoker, or 0 when there are none.
func (d *Dataset) AverageChargesBy(smoker bool) float64 {
	var costs []float64
	for _, r := range d.records {
		if r.Smoker == smoker {
			costs = append(costs, r.Charges)
		}
	}
	return meanOrZero(costs)
}
