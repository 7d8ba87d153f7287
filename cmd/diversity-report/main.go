package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"vgpanel/internal/audit"
	"vgpanel/internal/catalog"
	"vgpanel/internal/config"
	"vgpanel/internal/diversity"
	"vgpanel/internal/infrastructure"
	"vgpanel/internal/panel"
	"vgpanel/internal/validation"
)

func main() {
	entityFlag := flag.String("entity", "both", "entity type to process: developer, publisher, or both")
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

	cfg.Logging.FilePath = paths.LogPath("diversity-report")
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	entityTypes, err := resolveEntityTypes(*entityFlag)
	if err != nil {
		logger.Error("Invalid entity flag", "error", err)
		os.Exit(1)
	}

	tracker := audit.NewTracker("diversity-report", logger)
	ctx := context.Background()

	for _, et := range entityTypes {
		if err := runEntity(ctx, cfg, paths, tracker, et, logger); err != nil {
			logger.Error("Diversity pipeline failed", "entity_type", et.String(), "error", err)
			os.Exit(1)
		}
	}

	tracker.LogSummary()
	reportPath := paths.ReportPath("diversity_audit.txt")
	if err := tracker.WriteReport(reportPath); err != nil {
		logger.Error("Failed to write audit report", "error", err)
		os.Exit(1)
	}

	logger.Info("Diversity report complete", "audit_report", reportPath)

	if tracker.Failed() {
		os.Exit(1)
	}
}

func resolveEntityTypes(value string) ([]panel.EntityType, error) {
	if value == "both" {
		return []panel.EntityType{panel.Developer, panel.Publisher}, nil
	}
	et, err := panel.ParseEntityType(value)
	if err != nil {
		return nil, err
	}
	return []panel.EntityType{et}, nil
}

func runEntity(ctx context.Context, cfg *config.Config, paths *config.Paths, tracker *audit.Tracker, et panel.EntityType, logger *slog.Logger) error {
	panelPath := cfg.Inputs.DeveloperPanel
	if et == panel.Publisher {
		panelPath = cfg.Inputs.PublisherPanel
	}

	validator := validation.NewInputValidator(logger)
	if err := validator.ValidateInputFile(panelPath, fmt.Sprintf("%s genre-share panel", et)); err != nil {
		return err
	}

	countsPath := filepath.Join(filepath.Dir(cfg.Inputs.GameCountsCSV),
		fmt.Sprintf("%s_game_counts.csv", et))
	if !config.FileExists(countsPath) {
		return fmt.Errorf("game counts not found at %s, run gamecounts first", countsPath)
	}
	counts, err := catalog.LoadCountsCSV(countsPath)
	if err != nil {
		return fmt.Errorf("load game counts: %w", err)
	}

	loader := panel.NewLoader(et, logger)
	p, stats, err := loader.Load(ctx, panelPath, panel.LoadOptions{
		YearMin: cfg.Analysis.YearMin,
		YearMax: cfg.Analysis.YearMax,
	})
	if err != nil {
		return fmt.Errorf("load panel: %w", err)
	}
	tracker.CountDrop(audit.DropOutOfWindow, stats.OutOfWindow)
	tracker.AddCheck(fmt.Sprintf("%s panel loaded", et), stats.RowsKept > 0,
		fmt.Sprintf("%d rows read, %d kept, %d outside %d-%d",
			stats.RowsRead, stats.RowsKept, stats.OutOfWindow,
			cfg.Analysis.YearMin, cfg.Analysis.YearMax))

	engine := diversity.NewEngine(cfg.Analysis.Thresholds, cfg.Analysis.AgeMax, logger)
	engine.SetTracker(tracker)
	result, err := engine.Run(ctx, p, counts)
	if err != nil {
		return fmt.Errorf("diversity engine: %w", err)
	}

	metricsPath := paths.DataPath(fmt.Sprintf("%s_diversity_metrics.csv", et))
	if err := diversity.SaveMetricsCSV(result.Metrics, metricsPath); err != nil {
		return fmt.Errorf("save metrics: %w", err)
	}

	yearPath := paths.DataPath(fmt.Sprintf("%s_diversity_by_year.csv", et))
	if err := diversity.SaveSeriesCSV(result.YearSeries, yearPath); err != nil {
		return fmt.Errorf("save year series: %w", err)
	}

	agePath := paths.DataPath(fmt.Sprintf("%s_diversity_by_age.csv", et))
	if err := diversity.SaveSeriesCSV(result.AgeSeries, agePath); err != nil {
		return fmt.Errorf("save age series: %w", err)
	}

	logger.Info("Saved diversity outputs",
		"entity_type", et.String(),
		"metrics", metricsPath,
		"year_series", yearPath,
		"age_series", agePath)
	return nil
}
