// Package parkcast provides occupancy estimation for parking facilities,
// built as a small scikit-learn-style machine learning library for Go.
//
// The model is trained once from historical occupancy records and then
// answers point queries: the probability that a facility is occupied at a
// given time, and an expected time to find a free spot derived from it.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/parkcast/parking"
//	)
//
//	func main() {
//	    estimator, err := parking.NewEstimatorFromCSV("data/occupancy.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    searchTime, err := estimator.PredictSearchTime(parking.Query{
//	        DayType:       "SA",
//	        Hour:          18,
//	        TotalCapacity: 100,
//	        Latitude:      48.1397,
//	        Longitude:     11.5406,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Predicted search time:", searchTime)
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - parking: the occupancy estimator and search-time heuristic
//   - ensemble: random forest regression with a scikit-learn-like API
//   - preprocessing: categorical one-hot encoding
//   - metrics: regression evaluation metrics
//   - core/model, core/parallel: estimator base types and CPU parallelism
//   - pkg/errors, pkg/log: structured errors and logging
package parkcast
