package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"vgpanel/internal/audit"
	"vgpanel/internal/catalog"
	"vgpanel/internal/config"
	"vgpanel/internal/infrastructure"
	"vgpanel/internal/panel"
	"vgpanel/internal/specialization"
	"vgpanel/internal/validation"
)

func main() {
	acqPath := flag.String("acquisitions", "", "path to the acquisitions CSV (defaults to configured input)")
	dbPath := flag.String("db", "", "path to the game catalog database (defaults to configured input)")
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

	cfg.Logging.FilePath = paths.LogPath("specialization")
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if *acqPath == "" {
		*acqPath = cfg.Inputs.Acquisitions
	}
	if *dbPath == "" {
		*dbPath = cfg.Inputs.CatalogDB
	}

	validator := validation.NewInputValidator(logger)
	if err := validator.ValidateInputFiles([]validation.InputFile{
		{Path: *acqPath, Name: "acquisitions"},
		{Path: *dbPath, Name: "game catalog database"},
	}); err != nil {
		logger.Error("Input validation failed", "error", err)
		os.Exit(1)
	}

	tracker := audit.NewTracker("specialization", logger)
	ctx := context.Background()

	acquisitions, err := specialization.LoadAcquisitions(*acqPath)
	if err != nil {
		logger.Error("Failed to load acquisitions", "error", err, "path", *acqPath)
		os.Exit(1)
	}
	tracker.AddCheck("acquisitions loaded", len(acquisitions) > 0,
		fmt.Sprintf("%d deals", len(acquisitions)))

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
		fmt.Sprintf("%d games read, %d parse errors",
			extraction.Stats.GamesRead, extraction.Stats.ParseErrors))

	crowd := catalog.BuildCrowdedness(extraction.Games, panel.Publisher)

	scorer := specialization.NewScorer(logger)
	scorer.SetTracker(tracker)
	records, err := scorer.Score(ctx, acquisitions, extraction.Games, crowd)
	if err != nil {
		logger.Error("Failed to score acquisitions", "error", err)
		os.Exit(1)
	}

	outputPath := paths.DataPath("acquisition_specialization.csv")
	if err := specialization.SaveRecordsCSV(records, outputPath); err != nil {
		logger.Error("Failed to save specialization records", "error", err)
		os.Exit(1)
	}

	tracker.LogSummary()
	reportPath := paths.ReportPath("specialization_audit.txt")
	if err := tracker.WriteReport(reportPath); err != nil {
		logger.Error("Failed to write audit report", "error", err)
		os.Exit(1)
	}

	logger.Info("Specialization scoring complete",
		"records", len(records),
		"output", outputPath,
		"audit_report", reportPath)

	if tracker.Failed() {
		os.Exit(1)
	}
}
