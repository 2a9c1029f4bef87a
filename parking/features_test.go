package parking

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/parkcast/preprocessing"
)

func TestHourToCycleUnitCircle(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		hourSin, hourCos := HourToCycle(float64(hour))
		norm := hourSin*hourSin + hourCos*hourCos
		if math.Abs(norm-1) > 1e-12 {
			t.Errorf("hour %d: sin^2+cos^2 = %v, want 1", hour, norm)
		}
	}
}

func TestHourToCyclePeriodicity(t *testing.T) {
	sin0, cos0 := HourToCycle(0)
	sin24, cos24 := HourToCycle(24)

	if math.Abs(sin0-sin24) > 1e-12 || math.Abs(cos0-cos24) > 1e-12 {
		t.Errorf("hour 0 -> (%v, %v), hour 24 -> (%v, %v); want identical", sin0, cos0, sin24, cos24)
	}
}

func TestHourToCycleMidnightAdjacency(t *testing.T) {
	// Hour 23 must be closer to hour 0 than hour 12 is: the cyclical
	// encoding removes the discontinuity of the raw hour value.
	sin0, cos0 := HourToCycle(0)
	sin23, cos23 := HourToCycle(23)
	sin12, cos12 := HourToCycle(12)

	dist := func(s1, c1, s2, c2 float64) float64 {
		return math.Hypot(s1-s2, c1-c2)
	}

	if dist(sin23, cos23, sin0, cos0) >= dist(sin12, cos12, sin0, cos0) {
		t.Error("hour 23 should be numerically closer to hour 0 than hour 12 is")
	}
}

func TestDesignMatrixLayout(t *testing.T) {
	records := []Record{
		{DayType: "WD", Hour: 6, TotalCapacity: 80, Latitude: 48.1, Longitude: 11.5, OccupancyRate: 0.4},
		{DayType: "SA", Hour: 18, TotalCapacity: 120, Latitude: 48.2, Longitude: 11.6, OccupancyRate: 0.9},
	}

	encoder := preprocessing.NewOneHotEncoder().WithHandleUnknown(preprocessing.HandleUnknownIgnore)
	if err := encoder.Fit([]string{"WD", "SA"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	X, y, err := designMatrix(encoder, records)
	if err != nil {
		t.Fatalf("designMatrix failed: %v", err)
	}

	rows, cols := X.Dims()
	if rows != 2 || cols != 2+numNumericFeatures {
		t.Fatalf("X dims = (%d,%d), want (2,%d)", rows, cols, 2+numNumericFeatures)
	}

	// Categorical block first, in vocabulary order
	if X.At(0, 0) != 1 || X.At(0, 1) != 0 {
		t.Error("row 0 should one-hot encode WD in the first block")
	}
	if X.At(1, 0) != 0 || X.At(1, 1) != 1 {
		t.Error("row 1 should one-hot encode SA in the first block")
	}

	// Numeric block: capacity, latitude, longitude, hour_sin, hour_cos
	if X.At(0, 2) != 80 || X.At(0, 3) != 48.1 || X.At(0, 4) != 11.5 {
		t.Error("numeric passthrough columns should be unscaled")
	}
	wantSin, wantCos := HourToCycle(6)
	if X.At(0, 5) != wantSin || X.At(0, 6) != wantCos {
		t.Error("hour columns should carry the cyclical encoding")
	}

	if y.At(0, 0) != 0.4 || y.At(1, 0) != 0.9 {
		t.Error("target column should carry occupancy_rate")
	}
}

func TestQueryRowMatchesDesignMatrix(t *testing.T) {
	encoder := preprocessing.NewOneHotEncoder().WithHandleUnknown(preprocessing.HandleUnknownIgnore)
	if err := encoder.Fit([]string{"WD", "SA", "SU"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	rec := Record{DayType: "SU", Hour: 9, TotalCapacity: 50, Latitude: 1.5, Longitude: 2.5, OccupancyRate: 0.1}
	X, _, err := designMatrix(encoder, []Record{rec})
	if err != nil {
		t.Fatalf("designMatrix failed: %v", err)
	}

	row, err := queryRow(encoder, Query{
		DayType:       rec.DayType,
		Hour:          rec.Hour,
		TotalCapacity: rec.TotalCapacity,
		Latitude:      rec.Latitude,
		Longitude:     rec.Longitude,
	})
	if err != nil {
		t.Fatalf("queryRow failed: %v", err)
	}

	_, cols := X.Dims()
	for j := 0; j < cols; j++ {
		if X.At(0, j) != row.At(0, j) {
			t.Errorf("column %d: training transform %v != query transform %v", j, X.At(0, j), row.At(0, j))
		}
	}
}
