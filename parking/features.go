package parking

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/parkcast/preprocessing"
)

// Record is one historical occupancy observation of a parking facility.
type Record struct {
	DayType       string  // day category code, e.g. "WD", "SA", "SU"
	Hour          float64 // hour of day in [0, 24)
	TotalCapacity float64 // number of spots in the facility
	Latitude      float64
	Longitude     float64
	OccupancyRate float64 // training target in [0, 1]
}

// Query describes a facility and a point in time to predict for.
type Query struct {
	DayType       string
	Hour          float64
	TotalCapacity float64
	Latitude      float64
	Longitude     float64
}

// numNumericFeatures is the width of the numeric feature block:
// total_capacity, latitude, longitude, hour_sin, hour_cos.
const numNumericFeatures = 5

// HourToCycle encodes an hour of day onto the unit circle with period 24,
// so that hour 23 and hour 0 are numerically adjacent. Values outside
// [0, 24) are not validated; they wrap through the trigonometric transform.
func HourToCycle(hour float64) (hourSin, hourCos float64) {
	angle := 2 * math.Pi * hour / 24
	return math.Sin(angle), math.Cos(angle)
}

// numericFeatures returns the numeric feature block for one observation.
// Capacity and coordinates pass through unscaled; the downstream tree
// ensemble is insensitive to feature scale.
func numericFeatures(capacity, latitude, longitude, hour float64) []float64 {
	hourSin, hourCos := HourToCycle(hour)
	return []float64{capacity, latitude, longitude, hourSin, hourCos}
}

// designMatrix assembles the training design matrix: the one-hot encoded
// day-type block first, then the numeric block, in a fixed column order
// shared by training and prediction.
func designMatrix(encoder *preprocessing.OneHotEncoder, records []Record) (*mat.Dense, *mat.Dense, error) {
	dayTypes := make([]string, len(records))
	for i, rec := range records {
		dayTypes[i] = rec.DayType
	}

	catBlock, err := encoder.Transform(dayTypes)
	if err != nil {
		return nil, nil, err
	}

	nCat := encoder.NumCategories()
	X := mat.NewDense(len(records), nCat+numNumericFeatures, nil)
	y := mat.NewDense(len(records), 1, nil)

	for i, rec := range records {
		for j := 0; j < nCat; j++ {
			X.Set(i, j, catBlock.At(i, j))
		}
		for j, v := range numericFeatures(rec.TotalCapacity, rec.Latitude, rec.Longitude, rec.Hour) {
			X.Set(i, nCat+j, v)
		}
		y.Set(i, 0, rec.OccupancyRate)
	}

	return X, y, nil
}

// queryRow reproduces the training feature transform for a single query.
func queryRow(encoder *preprocessing.OneHotEncoder, q Query) (*mat.Dense, error) {
	catBlock, err := encoder.Transform([]string{q.DayType})
	if err != nil {
		return nil, err
	}

	nCat := encoder.NumCategories()
	row := mat.NewDense(1, nCat+numNumericFeatures, nil)
	for j := 0; j < nCat; j++ {
		row.Set(0, j, catBlock.At(0, j))
	}
	for j, v := range numericFeatures(q.TotalCapacity, q.Latitude, q.Longitude, q.Hour) {
		row.Set(0, nCat+j, v)
	}

	return row, nil
}
