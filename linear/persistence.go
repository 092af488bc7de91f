package linear

import (
	"io"

	"github.com/YuminosukeSato/insurecost/core/model"
	"github.com/YuminosukeSato/insurecost/pkg/errors"
	"github.com/YuminosukeSato/insurecost/pkg/log"
)

// ExportJSON writes the model parameters as a model.ModelWeights JSON document.
func (m *FittedModel) ExportJSON(w io.Writer) error {
	if m == nil {
		return errors.NewNotFittedError(modelName, "ExportJSON")
	}
	return model.WriteWeights(w, &model.ModelWeights{
		ModelType:       modelName,
		Version:         model.WeightsVersion,
		Coefficients:    m.Coefficients(),
		Intercept:       m.intercept,
		Features:        m.FeatureNames(),
		Hyperparameters: map[string]interface{}{"rcond": m.rcond},
		Metadata: map[string]interface{}{
			"rank":      m.rank,
			"n_samples": m.nSamples,
		},
	})
}

// LoadJSON reads a model written by ExportJSON. The result is a new, independent
// FittedModel.
func LoadJSON(r io.Reader) (*FittedModel, error) {
	mw, err := model.ReadWeights(r)
	if err != nil {
		return nil, err
	}
	if mw.ModelType != modelName {
		return nil, errors.NewInvalidInputError("linear.LoadJSON", "model_type", mw.ModelType,
			"expected "+modelName)
	}

	fitted := &FittedModel{
		intercept: mw.Intercept,
		coef:      append([]float64(nil), mw.Coefficients...),
		logger:    log.GetLoggerWithName("linear").With(log.ModelNameKey, modelName),
	}
	if len(mw.Features) > 0 {
		fitted.names = append([]string(nil), mw.Features...)
	}
	if rank, ok := mw.MetadataInt("rank"); ok {
		fitted.rank = rank
	}
	if n, ok := mw.MetadataInt("n_samples"); ok {
		fitted.nSamples = n
	}
	if rcond, ok := mw.Hyperparameters["rcond"].(float64); ok {
		fitted.rcond = rcond
	}
	fitted.logger.Debug("model loaded", log.OperationKey, log.OperationLoad, log.FeaturesKey, len(fitted.coef))
	return fitted, nil
}
