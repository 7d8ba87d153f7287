package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"vgpanel/internal/catalog"
)

// GameCountSummary holds the distribution tables for one entity type,
// written to its own sheet of the summary workbook.
type GameCountSummary struct {
	EntityType  string
	Overall     catalog.Stats
	ByThreshold []catalog.ThresholdStats
}

// WriteGameCountWorkbook writes an xlsx workbook with one sheet per
// entity type summarizing the game-count distribution overall and by
// size threshold.
func WriteGameCountWorkbook(summaries []GameCountSummary, outputPath string) error {
	if len(summaries) == 0 {
		return fmt.Errorf("no summaries to write")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for _, summary := range summaries {
		if err := writeSummarySheet(f, summary); err != nil {
			return fmt.Errorf("sheet %s: %w", summary.EntityType, err)
		}
	}

	// Drop the default sheet created by NewFile
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Info("wrote game count workbook",
		slog.String("path", outputPath),
		slog.Int("sheets", len(summaries)))
	return nil
}

func writeSummarySheet(f *excelize.File, summary GameCountSummary) error {
	sheet := summary.EntityType
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	overall := [][]interface{}{
		{"statistic", "value"},
		{"count", summary.Overall.Count},
		{"mean", summary.Overall.Mean},
		{"std", summary.Overall.Std},
		{"min", summary.Overall.Min},
		{"q1", summary.Overall.Q1},
		{"median", summary.Overall.Median},
		{"q3", summary.Overall.Q3},
		{"max", summary.Overall.Max},
	}
	for i, row := range overall {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	startRow := len(overall) + 2
	header := []interface{}{"threshold", "label", "mean", "std", "n_firms"}
	cell, err := excelize.CoordinatesToCellName(1, startRow)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return err
	}
	for i, ts := range summary.ByThreshold {
		row := []interface{}{ts.Threshold, ts.Label, ts.Mean, ts.Std, ts.N}
		cell, err := excelize.CoordinatesToCellName(1, startRow+1+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
