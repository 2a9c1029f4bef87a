package parking

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/YuminosukeSato/parkcast/pkg/errors"
	"github.com/YuminosukeSato/parkcast/pkg/log"
)

// Column names of the tabular data source. The schema is fixed; column order
// in the file does not matter, but every column must be present.
const (
	colDayType       = "day_type"
	colHour          = "hour"
	colTotalCapacity = "total_capacity"
	colLatitude      = "latitude"
	colLongitude     = "longitude"
	colOccupancyRate = "occupancy_rate"
)

var requiredColumns = []string{
	colDayType,
	colHour,
	colTotalCapacity,
	colLatitude,
	colLongitude,
	colOccupancyRate,
}

// LoadRecords reads historical occupancy records from a CSV file.
//
// The file must carry a header row naming all required columns. Loading is
// strict: an unreadable file yields a FileAccessError, and a missing column,
// an empty dataset, or a non-numeric value in a numeric column yields a
// DataShapeError. Rows are never silently skipped.
func LoadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFileAccessError(path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewDataShapeError("LoadRecords", "empty dataset", 0)
	}
	if err != nil {
		return nil, errors.NewDataShapeError("LoadRecords", fmt.Sprintf("malformed header: %v", err), 0)
	}

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := colIdx[name]; !ok {
			return nil, errors.NewDataShapeError("LoadRecords", fmt.Sprintf("missing column '%s'", name), 0)
		}
	}

	var records []Record
	row := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, errors.NewDataShapeError("LoadRecords", fmt.Sprintf("malformed row: %v", err), row)
		}

		rec := Record{DayType: fields[colIdx[colDayType]]}
		numeric := []struct {
			column string
			dst    *float64
		}{
			{colHour, &rec.Hour},
			{colTotalCapacity, &rec.TotalCapacity},
			{colLatitude, &rec.Latitude},
			{colLongitude, &rec.Longitude},
			{colOccupancyRate, &rec.OccupancyRate},
		}
		for _, field := range numeric {
			raw := fields[colIdx[field.column]]
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, errors.NewDataShapeError("LoadRecords",
					fmt.Sprintf("non-numeric value '%s' in column '%s'", raw, field.column), row)
			}
			*field.dst = v
		}

		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, errors.NewDataShapeError("LoadRecords", "empty dataset", 0)
	}

	log.GetLoggerWithName("parking.dataset").Debug("Loaded occupancy records",
		log.SourceKey, path,
		log.SamplesKey, len(records))

	return records, nil
}
