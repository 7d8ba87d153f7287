package diversity

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// SaveSeriesCSV saves aggregated series points to a CSV file. Points are
// expected to share one time axis; the caller writes one file per
// (entity type, axis) combination.
func SaveSeriesCSV(points []SeriesPoint, outputPath string) error {
	if len(points) == 0 {
		return fmt.Errorf("no series points to save")
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
		"entity",
		"threshold",
		"threshold_label",
		"time_axis",
		"time_axis_value",
		"variant",
		"metric",
		"value",
		"n_firms",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, p := range points {
		record := []string{
			p.EntityType.String(),
			strconv.Itoa(int(p.Threshold)),
			p.Threshold.Label(),
			string(p.TimeAxis),
			strconv.Itoa(p.TimeValue),
			string(p.Variant),
			string(p.Metric),
			strconv.FormatFloat(p.Value, 'f', 6, 64),
			strconv.Itoa(p.NFirms),
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

// SaveMetricsCSV saves the per-row diversity metrics, one row per
// (entity, year), for auditability of the aggregated series.
func SaveMetricsCSV(metrics []RowMetrics, outputPath string) error {
	if len(metrics) == 0 {
		return fmt.Errorf("no metric rows to save")
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
		"entity_id",
		"entity_type",
		"year",
		"shares_sum",
		"num_genres",
		"hhi_raw",
		"entropy_raw",
		"hhi_norm",
		"entropy_norm",
		"has_normalized",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, m := range metrics {
		normHHI, normEntropy := "", ""
		if m.HasNormalized {
			normHHI = strconv.FormatFloat(m.NormHHI, 'f', 6, 64)
			normEntropy = strconv.FormatFloat(m.NormEntropy, 'f', 6, 64)
		}
		record := []string{
			m.EntityID,
			m.EntityType.String(),
			strconv.Itoa(m.Year),
			strconv.FormatFloat(m.SharesSum, 'f', 6, 64),
			strconv.Itoa(m.ActiveGenres),
			strconv.FormatFloat(m.RawHHI, 'f', 6, 64),
			strconv.FormatFloat(m.RawEntropy, 'f', 6, 64),
			normHHI,
			normEntropy,
			strconv.FormatBool(m.HasNormalized),
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
