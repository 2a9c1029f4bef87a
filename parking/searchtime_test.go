package parking

import (
	"math"
	"testing"
)

func TestSearchTimeHalfFree(t *testing.T) {
	// pFree = 0.5, capacity 100: expected spots 2, no penalty
	got := searchTimeFromOccupancy(0.5, 100)
	want := 2*TimePerSpot + FixedSearchTime // 4.9
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("searchTimeFromOccupancy(0.5, 100) = %v, want %v", got, want)
	}
}

func TestSearchTimeNearFullLot(t *testing.T) {
	// pFree = 0.0005 < 1e-3: capacity fallback applies, plus congestion penalty
	got := searchTimeFromOccupancy(0.9995, 100)
	want := 200*TimePerSpot + FixedSearchTime + TimePenalty // 252.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("searchTimeFromOccupancy(0.9995, 100) = %v, want %v", got, want)
	}
}

func TestSearchTimeCongestionRegime(t *testing.T) {
	// pFree = 0.03 sits between the fallback and congestion thresholds:
	// geometric expectation applies and the flat penalty is added
	got := searchTimeFromOccupancy(0.97, 100)
	want := (1/0.03)*TimePerSpot + FixedSearchTime + TimePenalty // ~52.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("searchTimeFromOccupancy(0.97, 100) = %v, want %v", got, want)
	}
}

func TestSearchTimePenaltyBoundary(t *testing.T) {
	// The penalty check is strict: pFree exactly at the threshold gets none
	atThreshold := searchTimeFromOccupancy(1-congestionThreshold, 100)
	justBelow := searchTimeFromOccupancy(1-congestionThreshold+1e-9, 100)

	if justBelow-atThreshold < TimePenalty/2 {
		t.Errorf("expected the flat penalty just below the threshold: at=%v below=%v", atThreshold, justBelow)
	}
}

func TestSearchTimeMonotonicity(t *testing.T) {
	// For capacities large enough that the full-lot fallback dominates
	// 1/minFreeProbability, search time never decreases as occupancy rises.
	const capacity = 1000.0

	prev := math.Inf(-1)
	for p := 0.0; p <= 1.0; p += 0.0001 {
		got := searchTimeFromOccupancy(p, capacity)
		if got < prev {
			t.Fatalf("search time decreased at occupancy %v: %v < %v", p, got, prev)
		}
		prev = got
	}
}

func TestSearchTimeThresholdsUseFreeProbability(t *testing.T) {
	// Occupancy above 1 drives pFree negative; both branches still engage on
	// pFree, yielding the capacity fallback plus the penalty.
	got := searchTimeFromOccupancy(1.2, 50)
	want := 50*fullLotCapacityFactor*TimePerSpot + FixedSearchTime + TimePenalty
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("searchTimeFromOccupancy(1.2, 50) = %v, want %v", got, want)
	}
}
