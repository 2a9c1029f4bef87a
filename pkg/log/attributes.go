// Package log defines standard attribute keys for estimator operations.
//
// Using these keys consistently enables structured log analysis and filtering
// across training and prediction workflows. The keys follow a hierarchical
// naming convention (e.g., "model.name", "data.samples").

package log

// Model and Operation Context
// These attributes identify the model type, instance, and operation being performed.
const (
	// ModelNameKey identifies the type of machine learning model.
	// Examples: "RandomForestRegressor", "OneHotEncoder", "Estimator"
	ModelNameKey = "model.name"

	// OperationKey specifies the machine learning operation being performed.
	// Standard values: "fit", "predict", "transform", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is performing the operation.
	// Examples: "ensemble", "preprocessing", "parking.estimator"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	// Examples: "training", "inference", "preprocessing"
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// CategoriesKey indicates the size of a fitted categorical vocabulary.
	CategoriesKey = "data.categories"

	// SourceKey names an input file or data source.
	SourceKey = "data.source"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// TreesKey records the number of trees built in an ensemble.
	TreesKey = "model.trees"
)
