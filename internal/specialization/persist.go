package specialization

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// SaveRecordsCSV saves classified acquisition records, sorted by
// acquisition date then by the firm pair, for reproducible output.
func SaveRecordsCSV(records []Record, outputPath string) error {
	if len(records) == 0 {
		return fmt.Errorf("no specialization records to save")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"publisher_id",
		"developer_id",
		"acquisition_date",
		"cosine_similarity",
		"specialized_fixed",
		"specialized_median",
		"developer_top_genre",
		"genre_crowdedness",
		"developer_games",
		"publisher_games",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].AcquisitionDate.Equal(sorted[j].AcquisitionDate) {
			return sorted[i].AcquisitionDate.Before(sorted[j].AcquisitionDate)
		}
		if sorted[i].PublisherID != sorted[j].PublisherID {
			return sorted[i].PublisherID < sorted[j].PublisherID
		}
		return sorted[i].DeveloperID < sorted[j].DeveloperID
	})

	for _, r := range sorted {
		record := []string{
			r.PublisherID,
			r.DeveloperID,
			r.AcquisitionDate.Format("2006-01-02"),
			strconv.FormatFloat(r.CosineSimilarity, 'f', 6, 64),
			strconv.FormatBool(r.SpecializedFixed),
			strconv.FormatBool(r.SpecializedMedian),
			r.DeveloperTopGenre,
			strconv.Itoa(r.Crowdedness),
			strconv.Itoa(r.DeveloperGames),
			strconv.Itoa(r.PublisherGames),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush CSV writer: %w", err)
	}
	return nil
}
