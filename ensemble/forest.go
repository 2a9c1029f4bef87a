// Package ensemble implements tree-ensemble regressors with a
// scikit-learn compatible API.
package ensemble

import (
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/parkcast/core/model"
	"github.com/YuminosukeSato/parkcast/core/parallel"
	"github.com/YuminosukeSato/parkcast/metrics"
	pkgErrors "github.com/YuminosukeSato/parkcast/pkg/errors"
	"github.com/YuminosukeSato/parkcast/pkg/log"
)

// predictParallelThreshold is the row count above which batch prediction
// fans out across CPU cores.
const predictParallelThreshold = 64

// RandomForestRegressor is a random forest of CART regression trees with a
// scikit-learn compatible API. Trees are grown independently on bootstrap
// samples of the training data and predictions are averaged.
//
// Training is bit-for-bit reproducible for a fixed RandomState: every tree
// derives its own RNG from seeds drawn up front, so the parallel build order
// cannot affect the result.
type RandomForestRegressor struct {
	model.BaseEstimator

	// Hyperparameters (matching Python scikit-learn)
	NEstimators    int  // Number of trees in the forest
	MaxDepth       int  // Maximum tree depth; <= 0 means unlimited
	MinSamplesLeaf int  // Minimum number of samples at a leaf node
	MaxFeatures    int  // Features considered per split; <= 0 means all
	Bootstrap      bool // Sample rows with replacement per tree
	RandomState    int  // Random seed

	// Internal state
	trees      []regressionTree
	nFeatures_ int
	nSamples_  int
}

// NewRandomForestRegressor creates a random forest regressor with default parameters.
func NewRandomForestRegressor() *RandomForestRegressor {
	return &RandomForestRegressor{
		NEstimators:    100,
		MaxDepth:       -1, // No limit
		MinSamplesLeaf: 1,
		MaxFeatures:    -1, // All features
		Bootstrap:      true,
		RandomState:    42,
	}
}

// WithNEstimators sets the number of trees.
func (rf *RandomForestRegressor) WithNEstimators(n int) *RandomForestRegressor {
	rf.NEstimators = n
	return rf
}

// WithMaxDepth sets the maximum depth.
func (rf *RandomForestRegressor) WithMaxDepth(d int) *RandomForestRegressor {
	rf.MaxDepth = d
	return rf
}

// WithMinSamplesLeaf sets the minimum number of samples at a leaf node.
func (rf *RandomForestRegressor) WithMinSamplesLeaf(n int) *RandomForestRegressor {
	rf.MinSamplesLeaf = n
	return rf
}

// WithMaxFeatures sets the number of features considered per split.
func (rf *RandomForestRegressor) WithMaxFeatures(n int) *RandomForestRegressor {
	rf.MaxFeatures = n
	return rf
}

// WithRandomState sets the random seed.
func (rf *RandomForestRegressor) WithRandomState(seed int) *RandomForestRegressor {
	rf.RandomState = seed
	return rf
}

// Fit trains the forest on the design matrix X against the target column y.
func (rf *RandomForestRegressor) Fit(X, y mat.Matrix) (err error) {
	defer pkgErrors.Recover(&err, "RandomForestRegressor.Fit")

	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	// Validate input dimensions
	if rows == 0 || cols == 0 {
		return pkgErrors.NewModelError("RandomForestRegressor.Fit", "empty data", pkgErrors.ErrEmptyData)
	}
	if rows != yRows {
		return pkgErrors.NewDimensionError("Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return pkgErrors.NewDimensionError("Fit", 1, yCols, 1)
	}
	if rf.NEstimators <= 0 {
		return pkgErrors.NewValidationError("NEstimators", "must be positive", rf.NEstimators)
	}
	if rf.MinSamplesLeaf <= 0 {
		return pkgErrors.NewValidationError("MinSamplesLeaf", "must be positive", rf.MinSamplesLeaf)
	}

	xDense := toDense(X)
	targets := make([]float64, rows)
	for i := 0; i < rows; i++ {
		targets[i] = y.At(i, 0)
	}
	if err := pkgErrors.CheckNumericalStability("RandomForestRegressor.Fit", targets); err != nil {
		return err
	}

	rf.nFeatures_ = cols
	rf.nSamples_ = rows

	logger := log.GetLoggerWithName("ensemble.forest")
	logger.Debug("Training RandomForestRegressor",
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.TreesKey, rf.NEstimators)
	start := time.Now()

	params := treeParams{
		maxDepth:       rf.MaxDepth,
		minSamplesLeaf: rf.MinSamplesLeaf,
	}

	// Per-tree seeds are drawn sequentially up front so the parallel build
	// below is deterministic regardless of goroutine scheduling.
	seedSource := rand.New(rand.NewSource(int64(rf.RandomState)))
	seeds := make([]int64, rf.NEstimators)
	for i := range seeds {
		seeds[i] = seedSource.Int63()
	}

	rf.trees = make([]regressionTree, rf.NEstimators)
	parallel.Parallelize(rf.NEstimators, func(startIdx, endIdx int) {
		for i := startIdx; i < endIdx; i++ {
			rng := rand.New(rand.NewSource(seeds[i]))
			indices := rf.sampleRows(rows, rng)
			sampler := &randomSampler{rng: rng, maxFeatures: rf.MaxFeatures}
			rf.trees[i] = growTree(xDense, targets, indices, params, sampler)
		}
	})

	rf.SetFitted()

	logger.Info("Training completed",
		log.TreesKey, len(rf.trees),
		log.DurationMsKey, time.Since(start).Milliseconds())
	return nil
}

// Predict returns the forest average for each row of X as an n×1 matrix.
func (rf *RandomForestRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !rf.IsFitted() {
		return nil, pkgErrors.NewNotFittedError("RandomForestRegressor", "Predict")
	}

	rows, cols := X.Dims()
	if cols != rf.nFeatures_ {
		return nil, pkgErrors.NewDimensionError("Predict", rf.nFeatures_, cols, 1)
	}

	result := mat.NewDense(rows, 1, nil)
	parallel.ParallelizeWithThreshold(rows, predictParallelThreshold, func(start, end int) {
		row := make([]float64, cols)
		for i := start; i < end; i++ {
			for j := 0; j < cols; j++ {
				row[j] = X.At(i, j)
			}
			result.Set(i, 0, rf.predictRow(row))
		}
	})

	return result, nil
}

// predictRow averages the trees for a single feature row.
func (rf *RandomForestRegressor) predictRow(row []float64) float64 {
	var sum float64
	for i := range rf.trees {
		sum += rf.trees[i].predict(row)
	}
	return sum / float64(len(rf.trees))
}

// Score returns the coefficient of determination R^2 of the prediction.
func (rf *RandomForestRegressor) Score(X, y mat.Matrix) (float64, error) {
	if !rf.IsFitted() {
		return 0, pkgErrors.NewNotFittedError("RandomForestRegressor", "Score")
	}

	predictions, err := rf.Predict(X)
	if err != nil {
		return 0, err
	}

	rows, _ := y.Dims()
	yVec := mat.NewVecDense(rows, nil)
	predVec := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		yVec.SetVec(i, y.At(i, 0))
		predVec.SetVec(i, predictions.At(i, 0))
	}
	return metrics.R2Score(yVec, predVec)
}

// NumTrees returns the number of fitted trees.
func (rf *RandomForestRegressor) NumTrees() int {
	return len(rf.trees)
}

// GetParams returns the forest's hyperparameters.
func (rf *RandomForestRegressor) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_estimators":     rf.NEstimators,
		"max_depth":        rf.MaxDepth,
		"min_samples_leaf": rf.MinSamplesLeaf,
		"max_features":     rf.MaxFeatures,
		"bootstrap":        rf.Bootstrap,
		"random_state":     rf.RandomState,
	}
}

// sampleRows draws the row set one tree trains on.
func (rf *RandomForestRegressor) sampleRows(n int, rng *rand.Rand) []int {
	indices := make([]int, n)
	if rf.Bootstrap {
		for i := range indices {
			indices[i] = rng.Intn(n)
		}
	} else {
		for i := range indices {
			indices[i] = i
		}
	}
	return indices
}

// randomSampler selects a feature subset per split via its tree's RNG.
type randomSampler struct {
	rng         *rand.Rand
	maxFeatures int
}

func (s *randomSampler) sampleFeatures(nFeatures int) []int {
	if s.maxFeatures <= 0 || s.maxFeatures >= nFeatures {
		features := make([]int, nFeatures)
		for i := range features {
			features[i] = i
		}
		return features
	}

	perm := s.rng.Perm(nFeatures)
	return perm[:s.maxFeatures]
}

// toDense converts an arbitrary mat.Matrix into a *mat.Dense without copying
// when it already is one.
func toDense(X mat.Matrix) *mat.Dense {
	if d, ok := X.(*mat.Dense); ok {
		return d
	}
	rows, cols := X.Dims()
	d := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			d.Set(i, j, X.At(i, j))
		}
	}
	return d
}

// Interface conformance checks
var (
	_ model.Regressor       = (*RandomForestRegressor)(nil)
	_ model.ParameterGetter = (*RandomForestRegressor)(nil)
)
