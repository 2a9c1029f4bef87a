package parking

// Calibrated heuristic policy constants. These are policy choices, not values
// derived from training data; change them only with recalibration.
const (
	// FixedSearchTime is the constant overhead of any search (approach,
	// entering the facility).
	FixedSearchTime = 2.5

	// TimePerSpot is the time spent passing one spot while searching.
	TimePerSpot = 1.2

	// TimePenalty is a flat surcharge in the high-congestion regime,
	// modeling circling and queuing near capacity.
	TimePenalty = 10.0

	// minFreeProbability is the floor below which 1/pFree is considered
	// degenerate and the capacity-based fallback applies.
	minFreeProbability = 1e-3

	// congestionThreshold is the free-probability bound under which
	// TimePenalty is added.
	congestionThreshold = 0.05

	// fullLotCapacityFactor scales TotalCapacity into the substitute
	// spot count for an essentially full facility.
	fullLotCapacityFactor = 2
)

// PredictSearchTime estimates the expected time to find a free spot for the
// given query.
//
// The occupancy prediction of Predict is converted deterministically:
// treating each spot as independently free with probability
// pFree = 1 - pOccupied, the expected number of spots examined before
// finding a free one is 1/pFree (geometric distribution). When pFree falls
// below minFreeProbability the facility is essentially full and
// TotalCapacity*fullLotCapacityFactor substitutes for the diverging 1/pFree.
// Both threshold checks are on pFree, and the congestion penalty is additive
// with no smoothing at the boundary.
func (e *Estimator) PredictSearchTime(q Query) (float64, error) {
	pOccupied, err := e.Predict(q)
	if err != nil {
		return 0, err
	}

	return searchTimeFromOccupancy(pOccupied, q.TotalCapacity), nil
}

// searchTimeFromOccupancy applies the heuristic to a known occupancy value.
func searchTimeFromOccupancy(pOccupied, totalCapacity float64) float64 {
	pFree := 1 - pOccupied

	var expectedSpots float64
	if pFree < minFreeProbability {
		expectedSpots = totalCapacity * fullLotCapacityFactor
	} else {
		expectedSpots = 1 / pFree
	}

	totalTime := expectedSpots*TimePerSpot + FixedSearchTime
	if pFree < congestionThreshold {
		totalTime += TimePenalty
	}

	return totalTime
}
