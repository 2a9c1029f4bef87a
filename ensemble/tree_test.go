package ensemble

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// allFeatures is a deterministic sampler that always evaluates every feature.
type allFeatures struct{}

func (allFeatures) sampleFeatures(nFeatures int) []int {
	features := make([]int, nFeatures)
	for i := range features {
		features[i] = i
	}
	return features
}

func sequentialIndices(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}

func TestGrowTreeStepFunction(t *testing.T) {
	// y = 0 for x < 5, y = 1 for x >= 5: a single split recovers it exactly
	X := mat.NewDense(10, 1, nil)
	y := make([]float64, 10)
	for i := 0; i < 10; i++ {
		X.Set(i, 0, float64(i))
		if i >= 5 {
			y[i] = 1
		}
	}

	tree := growTree(X, y, sequentialIndices(10), treeParams{maxDepth: -1, minSamplesLeaf: 1}, allFeatures{})

	for i := 0; i < 10; i++ {
		got := tree.predict([]float64{float64(i)})
		want := y[i]
		if got != want {
			t.Errorf("predict(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestGrowTreeMaxDepthOne(t *testing.T) {
	X := mat.NewDense(8, 1, nil)
	y := make([]float64, 8)
	for i := 0; i < 8; i++ {
		X.Set(i, 0, float64(i))
		y[i] = float64(i)
	}

	tree := growTree(X, y, sequentialIndices(8), treeParams{maxDepth: 1, minSamplesLeaf: 1}, allFeatures{})

	if got := tree.numLeaves(); got > 2 {
		t.Errorf("numLeaves() = %d, want at most 2 with maxDepth=1", got)
	}
}

func TestGrowTreeConstantTarget(t *testing.T) {
	X := mat.NewDense(5, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
		7, 8,
		9, 10,
	})
	y := []float64{0.7, 0.7, 0.7, 0.7, 0.7}

	tree := growTree(X, y, sequentialIndices(5), treeParams{maxDepth: -1, minSamplesLeaf: 1}, allFeatures{})

	if got := tree.numLeaves(); got != 1 {
		t.Errorf("numLeaves() = %d, want 1 for a constant target", got)
	}
	if got := tree.predict([]float64{100, 100}); got != 0.7 {
		t.Errorf("predict() = %v, want 0.7", got)
	}
}

func TestGrowTreeMinSamplesLeaf(t *testing.T) {
	X := mat.NewDense(6, 1, nil)
	y := make([]float64, 6)
	for i := 0; i < 6; i++ {
		X.Set(i, 0, float64(i))
		y[i] = float64(i % 2)
	}

	tree := growTree(X, y, sequentialIndices(6), treeParams{maxDepth: -1, minSamplesLeaf: 3}, allFeatures{})

	// Every leaf must hold at least 3 of the 6 samples, so at most 2 leaves
	if got := tree.numLeaves(); got > 2 {
		t.Errorf("numLeaves() = %d, want at most 2 with minSamplesLeaf=3", got)
	}
}

func TestFindBestSplitPicksInformativeFeature(t *testing.T) {
	// Feature 1 determines the target, feature 0 is noise
	X := mat.NewDense(6, 2, []float64{
		5, 0,
		2, 0,
		9, 0,
		1, 10,
		7, 10,
		3, 10,
	})
	y := []float64{0, 0, 0, 1, 1, 1}

	best := findBestSplit(X, y, sequentialIndices(6), []int{0, 1}, 1)
	if best == nil {
		t.Fatal("expected a split, got nil")
	}
	if best.feature != 1 {
		t.Errorf("best.feature = %d, want 1", best.feature)
	}
	if best.threshold <= 0 || best.threshold >= 10 {
		t.Errorf("best.threshold = %v, want within (0, 10)", best.threshold)
	}
}

func TestMeanTarget(t *testing.T) {
	y := []float64{1, 2, 3, 4}
	if got := meanTarget(y, []int{0, 3}); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("meanTarget = %v, want 2.5", got)
	}
	if got := meanTarget(y, nil); got != 0 {
		t.Errorf("meanTarget(empty) = %v, want 0", got)
	}
}
