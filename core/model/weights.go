package model

import (
	"encoding/json"
	"io"
	"math"

	"github.com/YuminosukeSato/insurecost/pkg/errors"
)

// WeightsVersion is the envelope format written by WriteWeights.
const WeightsVersion = "1.0"

// ModelWeights is the serialised form of a fitted linear model.
type ModelWeights struct {
	// ModelType names the estimator, e.g. "LinearRegression".
	ModelType string `json:"model_type"`

	// Version is the envelope format version.
	Version string `json:"version"`

	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`

	// Features names each coefficient, in order.
	Features []string `json:"features,omitempty"`

	// Hyperparameters records the options the model was fitted with.
	Hyperparameters map[string]interface{} `json:"hyperparameters,omitempty"`

	// Metadata carries fit statistics such as rank and sample count.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Validate checks that the envelope describes a usable model.
func (mw *ModelWeights) Validate() error {
	const op = "ModelWeights.Validate"

	if mw.ModelType == "" {
		return errors.NewInvalidInputError(op, "model_type", mw.ModelType, "is required")
	}
	if mw.Version != WeightsVersion {
		return errors.NewInvalidInputError(op, "version", mw.Version, "unsupported version")
	}
	if len(mw.Coefficients) == 0 {
		return errors.NewInvalidInputError(op, "coefficients", len(mw.Coefficients), "fitted model must have coefficients")
	}
	if len(mw.Features) > 0 && len(mw.Features) != len(mw.Coefficients) {
		return errors.NewDimensionError(op, len(mw.Coefficients), len(mw.Features), 1)
	}
	if err := errors.CheckFinite(op, "coefficients", mw.Coefficients); err != nil {
		return err
	}
	if math.IsNaN(mw.Intercept) || math.IsInf(mw.Intercept, 0) {
		return errors.NewInvalidInputError(op, "intercept", mw.Intercept, "value must be finite")
	}
	return nil
}

// MetadataInt reads an integer metadata entry. JSON decoding turns numbers into float64,
// so both representations are accepted.
func (mw *ModelWeights) MetadataInt(key string) (int, bool) {
	switch v := mw.Metadata[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// WriteWeights encodes mw as indented JSON.
func WriteWeights(w io.Writer, mw *ModelWeights) error {
	if err := mw.Validate(); err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(mw); err != nil {
		return errors.Wrap(err, "failed to encode model weights")
	}
	return nil
}

// ReadWeights decodes and validates an envelope.
func ReadWeights(r io.Reader) (*ModelWeights, error) {
	var mw ModelWeights
	if err := json.NewDecoder(r).Decode(&mw); err != nil {
		return nil, errors.Wrap(err, "failed to decode model weights")
	}
	if err := mw.Validate(); err != nil {
		return nil, err
	}
	return &mw, nil
}
