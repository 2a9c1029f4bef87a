package ensemble

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// nodeType represents the type of a tree node
type nodeType int

const (
	// leafNode is a terminal node carrying the mean target of its samples
	leafNode nodeType = iota
	// splitNode is an internal node with a numerical threshold split
	splitNode
)

// treeNode is one node of a regression tree stored in a flat array.
// Child links are indices into the owning tree's node slice.
type treeNode struct {
	NodeType     nodeType
	SplitFeature int
	Threshold    float64
	LeftChild    int
	RightChild   int
	LeafValue    float64
}

// regressionTree is a CART-style regression tree built on variance reduction.
type regressionTree struct {
	nodes []treeNode
}

// treeParams bundles the per-tree growth limits. Feature subsampling is the
// sampler's concern, not the tree's.
type treeParams struct {
	// maxDepth limits tree depth; <= 0 means unlimited
	maxDepth int
	// minSamplesLeaf is the minimum number of samples in each child
	minSamplesLeaf int
}

// splitCandidate describes the best split found for a node.
type splitCandidate struct {
	feature   int
	threshold float64
	gain      float64
	left      []int
	right     []int
}

// featureSampler draws the feature subset evaluated at each split.
// It abstracts the RNG so tree growth stays deterministic under a fixed seed.
type featureSampler interface {
	sampleFeatures(nFeatures int) []int
}

// growTree builds a regression tree over the rows of X named by indices.
func growTree(X *mat.Dense, y []float64, indices []int, params treeParams, sampler featureSampler) regressionTree {
	tree := regressionTree{}
	tree.buildNode(X, y, indices, 0, params, sampler)
	return tree
}

// buildNode recursively grows the tree and returns the created node's index.
func (t *regressionTree) buildNode(X *mat.Dense, y []float64, indices []int, depth int, params treeParams, sampler featureSampler) int {
	nodeIdx := len(t.nodes)

	// Stopping conditions
	if (params.maxDepth > 0 && depth >= params.maxDepth) ||
		len(indices) < 2*params.minSamplesLeaf ||
		constantTarget(y, indices) {
		t.nodes = append(t.nodes, treeNode{
			NodeType:   leafNode,
			LeafValue:  meanTarget(y, indices),
			LeftChild:  -1,
			RightChild: -1,
		})
		return nodeIdx
	}

	_, nFeatures := X.Dims()
	best := findBestSplit(X, y, indices, sampler.sampleFeatures(nFeatures), params.minSamplesLeaf)
	if best == nil {
		t.nodes = append(t.nodes, treeNode{
			NodeType:   leafNode,
			LeafValue:  meanTarget(y, indices),
			LeftChild:  -1,
			RightChild: -1,
		})
		return nodeIdx
	}

	t.nodes = append(t.nodes, treeNode{
		NodeType:     splitNode,
		SplitFeature: best.feature,
		Threshold:    best.threshold,
	})

	leftChild := t.buildNode(X, y, best.left, depth+1, params, sampler)
	rightChild := t.buildNode(X, y, best.right, depth+1, params, sampler)

	t.nodes[nodeIdx].LeftChild = leftChild
	t.nodes[nodeIdx].RightChild = rightChild

	return nodeIdx
}

// findBestSplit scans the given features for the threshold with the largest
// reduction in the sum of squared errors. Returns nil when no split keeps
// minSamplesLeaf samples on both sides or no feature varies.
func findBestSplit(X *mat.Dense, y []float64, indices []int, features []int, minSamplesLeaf int) *splitCandidate {
	n := len(indices)
	parentSSE := sumSquaredError(y, indices)

	var best *splitCandidate

	sorted := make([]int, n)
	for _, feature := range features {
		copy(sorted, indices)
		f := feature
		sort.Slice(sorted, func(a, b int) bool {
			return X.At(sorted[a], f) < X.At(sorted[b], f)
		})

		// Prefix scan: move one sample at a time from right to left and
		// track sums so each candidate threshold is evaluated in O(1).
		var leftSum, leftSqSum float64
		rightSum, rightSqSum := targetSums(y, sorted)

		for i := 0; i < n-1; i++ {
			v := y[sorted[i]]
			leftSum += v
			leftSqSum += v * v
			rightSum -= v
			rightSqSum -= v * v

			// Split only between distinct feature values
			cur, next := X.At(sorted[i], f), X.At(sorted[i+1], f)
			if cur == next {
				continue
			}

			nLeft, nRight := i+1, n-i-1
			if nLeft < minSamplesLeaf || nRight < minSamplesLeaf {
				continue
			}

			leftSSE := leftSqSum - leftSum*leftSum/float64(nLeft)
			rightSSE := rightSqSum - rightSum*rightSum/float64(nRight)
			gain := parentSSE - leftSSE - rightSSE

			if best == nil || gain > best.gain {
				threshold := (cur + next) / 2
				if best == nil {
					best = &splitCandidate{}
				}
				best.feature = f
				best.threshold = threshold
				best.gain = gain
				best.left = append(best.left[:0], sorted[:i+1]...)
				best.right = append(best.right[:0], sorted[i+1:]...)
			}
		}
	}

	if best == nil || best.gain <= 0 {
		return nil
	}
	return best
}

// predict walks the tree for a single feature row.
func (t *regressionTree) predict(row []float64) float64 {
	if len(t.nodes) == 0 {
		return 0
	}

	nodeIdx := 0
	for {
		node := t.nodes[nodeIdx]
		if node.NodeType == leafNode {
			return node.LeafValue
		}
		if row[node.SplitFeature] <= node.Threshold {
			nodeIdx = node.LeftChild
		} else {
			nodeIdx = node.RightChild
		}
		if nodeIdx < 0 || nodeIdx >= len(t.nodes) {
			return node.LeafValue
		}
	}
}

// numLeaves counts the leaf nodes of the tree.
func (t *regressionTree) numLeaves() int {
	count := 0
	for _, node := range t.nodes {
		if node.NodeType == leafNode {
			count++
		}
	}
	return count
}

func meanTarget(y []float64, indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}
	var sum float64
	for _, i := range indices {
		sum += y[i]
	}
	return sum / float64(len(indices))
}

func constantTarget(y []float64, indices []int) bool {
	for i := 1; i < len(indices); i++ {
		if y[indices[i]] != y[indices[0]] {
			return false
		}
	}
	return true
}

func targetSums(y []float64, indices []int) (sum, sqSum float64) {
	for _, i := range indices {
		v := y[i]
		sum += v
		sqSum += v * v
	}
	return sum, sqSum
}

func sumSquaredError(y []float64, indices []int) float64 {
	mean := meanTarget(y, indices)
	var sse float64
	for _, i := range indices {
		d := y[i] - mean
		sse += d * d
	}
	if sse < 0 || math.IsNaN(sse) {
		return 0
	}
	return sse
}
