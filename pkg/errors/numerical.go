package errors

import (
	"fmt"
	"math"
)

// CheckFinite returns an invalid-input error naming the first NaN or Inf in values.
func CheckFinite(op, param string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewInvalidInputError(op, fmt.Sprintf("%s[%d]", param, i), v, "value must be finite")
		}
	}
	return nil
}

// CheckMatrix scans a rows×cols matrix for NaN or Inf and reports the first cell found.
func CheckMatrix(op, param string, matrix interface{ At(int, int) float64 }, rows, cols int) error {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return NewInvalidInputError(op, fmt.Sprintf("%s[%d][%d]", param, i, j), v, "value must be finite")
			}
		}
	}
	return nil
}
