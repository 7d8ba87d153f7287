package specialization

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"
)

// acquisitionDateFormats are tried in order when parsing event dates
var acquisitionDateFormats = []string{"2006-01-02", "2006-01", "2006"}

// LoadAcquisitions reads the acquisition event list CSV. Expected columns:
// publisher_id, developer_id, acquisition_date. A missing column fails the
// load; a malformed date fails the affected row hard, since silently
// skipping events would bias the sample.
func LoadAcquisitions(path string) ([]Acquisition, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open acquisitions file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read acquisitions file: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("acquisitions file has no event rows")
	}

	pubCol, devCol, dateCol := -1, -1, -1
	for i, col := range records[0] {
		switch strings.TrimSpace(col) {
		case "publisher_id":
			pubCol = i
		case "developer_id":
			devCol = i
		case "acquisition_date":
			dateCol = i
		}
	}
	if pubCol < 0 || devCol < 0 || dateCol < 0 {
		return nil, fmt.Errorf("acquisitions file missing required columns (publisher_id, developer_id, acquisition_date)")
	}

	acquisitions := make([]Acquisition, 0, len(records)-1)
	for i, record := range records[1:] {
		date, err := parseAcquisitionDate(strings.TrimSpace(record[dateCol]))
		if err != nil {
			return nil, fmt.Errorf("acquisitions row %d: %w", i+2, err)
		}
		acquisitions = append(acquisitions, Acquisition{
			PublisherID: strings.TrimSpace(record[pubCol]),
			DeveloperID: strings.TrimSpace(record[devCol]),
			Date:        date,
		})
	}
	return acquisitions, nil
}

func parseAcquisitionDate(value string) (time.Time, error) {
	for _, format := range acquisitionDateFormats {
		if date, err := time.Parse(format, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable acquisition date %q", value)
}
