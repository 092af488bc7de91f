package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of model, e.g. "LinearRegression".
	ModelNameKey = "model.name"

	// OperationKey is the operation being performed: "fit", "predict", "score".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package emitting the record.
	ComponentKey = "ml.component"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
	SourceKey   = "data.source"
)

// Fit results and performance.
const (
	DurationMsKey = "perf.duration_ms"
	RankKey       = "model.rank"
	InterceptKey  = "model.intercept"
	R2ScoreKey    = "metrics.r2_score"
	PredsKey      = "preds.count"
)

// Error context.
const (
	ErrorCodeKey = "error.code"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationLoad    = "load"
	OperationReport  = "report"

	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorInsufficientData  = "INSUFFICIENT_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
)
