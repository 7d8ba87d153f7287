package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"vgpanel/internal/audit"
	"vgpanel/internal/catalog"
	"vgpanel/internal/config"
	"vgpanel/internal/exporter"
	"vgpanel/internal/infrastructure"
	"vgpanel/internal/panel"
	"vgpanel/internal/validation"
)

func main() {
	dbPath := flag.String("db", "", "path to the game catalog database (defaults to configured input)")
	yearly := flag.Bool("yearly", true, "also write per-year game counts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	paths, err := config.GetPaths(cfg)
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	cfg.Logging.FilePath = paths.LogPath("gamecounts")
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if *dbPath == "" {
		*dbPath = cfg.Inputs.CatalogDB
	}

	validator := validation.NewInputValidator(logger)
	if err := validator.ValidateInputFile(*dbPath, "game catalog database"); err != nil {
		logger.Error("Input validation failed", "error", err,
			"hint", "Set VGP_INPUTS_CATALOG_DB or pass -db")
		os.Exit(1)
	}

	tracker := audit.NewTracker("gamecounts", logger)
	ctx := context.Background()

	store, err := catalog.Open(*dbPath, logger)
	if err != nil {
		logger.Error("Failed to open game catalog", "error", err, "path", *dbPath)
		os.Exit(1)
	}
	defer store.Close()

	extraction, err := store.ExtractGames(ctx)
	if err != nil {
		logger.Error("Failed to extract games from catalog", "error", err)
		os.Exit(1)
	}
	tracker.AddCheck("catalog extraction", len(extraction.Games) > 0,
		fmt.Sprintf("%d games read, %d parse errors, %d without release year",
			extraction.Stats.GamesRead, extraction.Stats.ParseErrors, extraction.Stats.NoYear))
	if extraction.Stats.ParseErrors > 0 {
		tracker.AddWarning(fmt.Sprintf("%d catalog rows skipped due to parse errors", extraction.Stats.ParseErrors))
	}

	countsDir := filepath.Dir(cfg.Inputs.GameCountsCSV)
	summaries := make([]exporter.GameCountSummary, 0, 2)

	for _, et := range []panel.EntityType{panel.Developer, panel.Publisher} {
		counts := catalog.CountGames(extraction, et, *yearly)
		tracker.AddCheck(fmt.Sprintf("%s counts built", et), len(counts.Totals) > 0,
			fmt.Sprintf("%d firms", len(counts.Totals)))

		countsPath := filepath.Join(countsDir, fmt.Sprintf("%s_game_counts.csv", et))
		if err := counts.SaveCountsCSV(countsPath); err != nil {
			logger.Error("Failed to save game counts", "error", err, "entity_type", et.String())
			os.Exit(1)
		}
		logger.Info("Saved game counts", "entity_type", et.String(),
			"path", countsPath, "firms", len(counts.Totals))

		if *yearly {
			yearlyPath := filepath.Join(countsDir, fmt.Sprintf("%s_game_counts_yearly.csv", et))
			if err := counts.SaveYearlyCountsCSV(yearlyPath); err != nil {
				logger.Error("Failed to save yearly game counts", "error", err, "entity_type", et.String())
				os.Exit(1)
			}
		}

		summaries = append(summaries, exporter.GameCountSummary{
			EntityType:  et.String(),
			Overall:     catalog.SummarizeCounts(counts.Totals),
			ByThreshold: catalog.SummarizeByThreshold(counts.Totals, cfg.Analysis.Thresholds),
		})
	}

	workbookPath := paths.ReportPath("game_count_summary.xlsx")
	if err := exporter.WriteGameCountWorkbook(summaries, workbookPath); err != nil {
		logger.Error("Failed to write summary workbook", "error", err)
		os.Exit(1)
	}

	csvWriter := exporter.NewCSVWriter(paths)
	if err := csvWriter.WriteSimpleCSV("game_count_thresholds.csv", thresholdHeaders, thresholdRecords(summaries)); err != nil {
		logger.Error("Failed to write threshold summary CSV", "error", err)
		os.Exit(1)
	}

	tracker.LogSummary()
	reportPath := paths.ReportPath("gamecounts_audit.txt")
	if err := tracker.WriteReport(reportPath); err != nil {
		logger.Error("Failed to write audit report", "error", err)
		os.Exit(1)
	}

	logger.Info("Game count extraction complete",
		"workbook", workbookPath,
		"audit_report", reportPath)

	if tracker.Failed() {
		os.Exit(1)
	}
}

var thresholdHeaders = []string{"entity", "threshold", "label", "mean_games", "std_games", "n_firms"}

func thresholdRecords(summaries []exporter.GameCountSummary) [][]string {
	var records [][]string
	for _, s := range summaries {
		for _, ts := range s.ByThreshold {
			records = append(records, []string{
				s.EntityType,
				strconv.Itoa(ts.Threshold),
				ts.Label,
				strconv.FormatFloat(ts.Mean, 'f', 6, 64),
				strconv.FormatFloat(ts.Std, 'f', 6, 64),
				strconv.Itoa(ts.N),
			})
		}
	}
	return records
}
