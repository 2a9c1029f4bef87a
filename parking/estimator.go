// Package parking implements an occupancy estimator for parking facilities
// and a heuristic converting occupancy probability into an expected
// search-time.
//
// The estimator is trained once at construction from historical occupancy
// records and is immutable afterwards: prediction calls are stateless reads
// against the fitted model and are safe to run concurrently.
package parking

import (
	"time"

	"github.com/YuminosukeSato/parkcast/ensemble"
	"github.com/YuminosukeSato/parkcast/pkg/errors"
	"github.com/YuminosukeSato/parkcast/pkg/log"
	"github.com/YuminosukeSato/parkcast/preprocessing"
)

// Fixed model configuration. Training is deterministic for identical input
// data; no hyperparameter search is performed.
const (
	numTrees     = 300
	maxTreeDepth = 12
	randomSeed   = 42
)

// Estimator predicts the occupancy rate of a parking facility at a point in
// time. It bundles the categorical encoder fitted on the training vocabulary
// and the trained forest; neither is mutated after construction.
type Estimator struct {
	encoder *preprocessing.OneHotEncoder
	forest  *ensemble.RandomForestRegressor
}

// NewEstimatorFromCSV reads historical records from a CSV data source and
// trains an estimator on them. Construction fails fast: a FileAccessError or
// DataShapeError from loading, or any training failure, surfaces immediately
// and no partially trained estimator is returned.
func NewEstimatorFromCSV(path string) (*Estimator, error) {
	records, err := LoadRecords(path)
	if err != nil {
		return nil, err
	}
	return NewEstimator(records)
}

// NewEstimator trains an estimator on the given records.
//
// The day-type vocabulary is fixed here from the observed values in discovery
// order; day types never seen during training are zero-encoded at prediction
// time rather than rejected.
func NewEstimator(records []Record) (*Estimator, error) {
	if len(records) == 0 {
		return nil, errors.NewDataShapeError("NewEstimator", "empty dataset", 0)
	}

	logger := log.GetLoggerWithName("parking.estimator")
	start := time.Now()

	dayTypes := make([]string, len(records))
	for i, rec := range records {
		dayTypes[i] = rec.DayType
	}

	encoder := preprocessing.NewOneHotEncoder().
		WithHandleUnknown(preprocessing.HandleUnknownIgnore)
	if err := encoder.Fit(dayTypes); err != nil {
		return nil, err
	}

	X, y, err := designMatrix(encoder, records)
	if err != nil {
		return nil, err
	}

	forest := ensemble.NewRandomForestRegressor().
		WithNEstimators(numTrees).
		WithMaxDepth(maxTreeDepth).
		WithRandomState(randomSeed)
	if err := forest.Fit(X, y); err != nil {
		return nil, err
	}

	logger.Info("Estimator trained",
		log.OperationKey, "fit",
		log.SamplesKey, len(records),
		log.CategoriesKey, encoder.NumCategories(),
		log.TreesKey, forest.NumTrees(),
		log.DurationMsKey, time.Since(start).Milliseconds())

	return &Estimator{
		encoder: encoder,
		forest:  forest,
	}, nil
}

// Predict estimates the occupancy rate for the given query.
//
// The raw model output is returned without clamping: tree ensembles average
// observed training targets, so callers must treat the value as a real-valued
// estimate rather than a guaranteed probability in [0, 1]. An unknown
// DayType zero-encodes through the fitted vocabulary and never fails.
func (e *Estimator) Predict(q Query) (float64, error) {
	row, err := queryRow(e.encoder, q)
	if err != nil {
		return 0, err
	}

	pred, err := e.forest.Predict(row)
	if err != nil {
		return 0, err
	}

	occupancy := pred.At(0, 0)
	if err := errors.CheckScalar("Estimator.Predict", occupancy); err != nil {
		return 0, err
	}
	return occupancy, nil
}
