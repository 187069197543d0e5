// Package log defines standard attribute keys for pipeline operations.
//
// These keys follow a hierarchical naming convention (e.g., "ml.operation",
// "data.samples") so log lines from the transformers, the model store and the
// CLI can be filtered the same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the transformer or model type.
	// Examples: "WeekdayImputer", "OutlierCapper", "LinearRegression"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "fit_transform", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component is logging.
	// Examples: "pipeline", "modelstore", "cli"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the model lifecycle.
	PhaseKey = "ml.phase"

	// StepKey names the pipeline step, e.g. "map_season".
	StepKey = "pipeline.step"

	// StepIndexKey is the zero-based position of the step in the pipeline.
	StepIndexKey = "pipeline.step_index"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of rows in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of columns in the dataset.
	FeaturesKey = "data.features"

	// ColumnKey names a single dataset column.
	ColumnKey = "data.column"

	// MissingKey counts missing cells handled by an operation.
	MissingKey = "data.missing"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// R2ScoreKey records R² coefficient of determination for regression.
	R2ScoreKey = "metrics.r2_score"

	// RMSEKey records the root mean squared error for regression.
	RMSEKey = "metrics.rmse"

	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// SuggestionKey provides helpful suggestions for resolving issues.
	SuggestionKey = "error.suggestion"
)

// Configuration and Persistence
const (
	// ConfigVersionKey tracks the pipeline version being saved or loaded.
	ConfigVersionKey = "config.version"

	// ConfigFileKey is the path of the loaded configuration file.
	ConfigFileKey = "config.file"

	// StoreKey names the model store backend ("file" or "bolt").
	StoreKey = "store.backend"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute value constants for common operations.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationScore        = "score"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorLookup            = "LOOKUP_FAILURE"
	ErrorMissingColumn     = "MISSING_COLUMN"
)
