package parking

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/parkcast/pkg/errors"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "occupancy.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadRecords(t *testing.T) {
	path := writeCSV(t, `day_type,hour,total_capacity,latitude,longitude,occupancy_rate
WD,8,100,48.14,11.54,0.35
SA,18,100,48.14,11.54,0.92
`)

	records, err := LoadRecords(path)
	if err != nil {
		t.Fatalf("LoadRecords failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	first := records[0]
	if first.DayType != "WD" || first.Hour != 8 || first.TotalCapacity != 100 {
		t.Errorf("unexpected first record: %+v", first)
	}
	if records[1].OccupancyRate != 0.92 {
		t.Errorf("OccupancyRate = %v, want 0.92", records[1].OccupancyRate)
	}
}

func TestLoadRecordsColumnOrderIndependent(t *testing.T) {
	path := writeCSV(t, `occupancy_rate,day_type,longitude,latitude,total_capacity,hour
0.5,SU,11.5,48.1,60,12
`)

	records, err := LoadRecords(path)
	if err != nil {
		t.Fatalf("LoadRecords failed: %v", err)
	}
	if records[0].DayType != "SU" || records[0].Hour != 12 || records[0].OccupancyRate != 0.5 {
		t.Errorf("unexpected record: %+v", records[0])
	}
}

func TestLoadRecordsMissingFile(t *testing.T) {
	_, err := LoadRecords(filepath.Join(t.TempDir(), "nope.csv"))

	var fileErr *errors.FileAccessError
	if err == nil || !errors.As(err, &fileErr) {
		t.Errorf("expected FileAccessError, got %v", err)
	}
}

func TestLoadRecordsMissingColumn(t *testing.T) {
	path := writeCSV(t, `day_type,hour,total_capacity,latitude,longitude
WD,8,100,48.14,11.54
`)

	_, err := LoadRecords(path)
	var shapeErr *errors.DataShapeError
	if err == nil || !errors.As(err, &shapeErr) {
		t.Fatalf("expected DataShapeError, got %v", err)
	}
	if shapeErr.Row != 0 {
		t.Errorf("Row = %d, want 0 for a schema-level error", shapeErr.Row)
	}
}

func TestLoadRecordsNonNumericValue(t *testing.T) {
	path := writeCSV(t, `day_type,hour,total_capacity,latitude,longitude,occupancy_rate
WD,8,100,48.14,11.54,0.35
SA,noon,100,48.14,11.54,0.92
`)

	_, err := LoadRecords(path)
	var shapeErr *errors.DataShapeError
	if err == nil || !errors.As(err, &shapeErr) {
		t.Fatalf("expected DataShapeError, got %v", err)
	}
	if shapeErr.Row != 2 {
		t.Errorf("Row = %d, want 2", shapeErr.Row)
	}
}

func TestLoadRecordsEmptyDataset(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		path := writeCSV(t, "day_type,hour,total_capacity,latitude,longitude,occupancy_rate\n")
		_, err := LoadRecords(path)
		var shapeErr *errors.DataShapeError
		if err == nil || !errors.As(err, &shapeErr) {
			t.Errorf("expected DataShapeError, got %v", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeCSV(t, "")
		_, err := LoadRecords(path)
		var shapeErr *errors.DataShapeError
		if err == nil || !errors.As(err, &shapeErr) {
			t.Errorf("expected DataShapeError, got %v", err)
		}
	})
}
