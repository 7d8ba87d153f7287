package diversity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"vgpanel/internal/audit"
	"vgpanel/internal/panel"
)

// Engine orchestrates the diversity pipeline for one entity type: per-row
// metric computation, size stratification and temporal aggregation along
// both axes.
type Engine struct {
	thresholds []int
	ageMax     int
	logger     *slog.Logger
	tracker    *audit.Tracker
}

// NewEngine creates a diversity engine with the given stratification
// thresholds and firm-age cap
func NewEngine(thresholds []int, ageMax int, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		thresholds: thresholds,
		ageMax:     ageMax,
		logger:     logger,
	}
}

// SetTracker attaches an audit tracker; drop counts and verification checks
// are reported through it when present
func (e *Engine) SetTracker(t *audit.Tracker) {
	e.tracker = t
}

// Result holds everything the diversity pipeline produces for one panel
type Result struct {
	Metrics    []RowMetrics
	YearSeries []SeriesPoint
	AgeSeries  []SeriesPoint
}

// Run computes diversity metrics for every panel row, stratifies firms by
// the game-count lookup and aggregates both the calendar-year and firm-age
// series. A metric outside its valid range aborts the run.
func (e *Engine) Run(ctx context.Context, p *panel.Panel, counts map[string]int) (*Result, error) {
	start := time.Now()

	e.logger.InfoContext(ctx, "starting diversity calculation",
		"entity_type", p.Type.String(),
		"rows", len(p.Rows),
		"num_genres", p.Schema.NumGenres(),
		"thresholds", e.thresholds,
	)

	if len(p.Rows) == 0 {
		return nil, fmt.Errorf("no panel rows to process for %s", p.Type)
	}

	metrics := make([]RowMetrics, 0, len(p.Rows))
	degenerate := 0
	for i, row := range p.Rows {
		if i%10000 == 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("diversity calculation cancelled: %w", ctx.Err())
			default:
			}
		}

		m, err := Compute(row)
		if err != nil {
			return nil, fmt.Errorf("compute metrics for %s/%d: %w", row.EntityID, row.Year, err)
		}
		if !m.HasNormalized {
			degenerate++
		}
		metrics = append(metrics, m)
	}

	if degenerate > 0 {
		e.logger.WarnContext(ctx, "rows excluded from normalized metrics",
			"entity_type", p.Type.String(),
			"count", degenerate,
		)
	}

	missingCounts := 0
	seen := make(map[string]struct{})
	for _, m := range metrics {
		if _, dup := seen[m.EntityID]; dup {
			continue
		}
		seen[m.EntityID] = struct{}{}
		if _, ok := counts[m.EntityID]; !ok {
			missingCounts++
		}
	}
	if missingCounts > 0 {
		e.logger.WarnContext(ctx, "panel firms missing from game-count lookup",
			"entity_type", p.Type.String(),
			"count", missingCounts,
		)
	}

	if e.tracker != nil {
		e.tracker.CountDrop(audit.DropDegenerateVector, degenerate)
		e.tracker.CountDrop(audit.DropMissingJoinKey, missingCounts)
		e.tracker.AddCheck(
			fmt.Sprintf("%s diversity metrics computed", p.Type),
			len(metrics) > 0,
			fmt.Sprintf("%d rows, %d without normalized variant", len(metrics), degenerate),
		)
	}

	strata := NewStrata(counts, e.thresholds)
	if e.tracker != nil {
		sizes := make([]string, 0, len(strata.Thresholds()))
		for _, th := range strata.Thresholds() {
			if th <= 1 {
				continue
			}
			sizes = append(sizes, fmt.Sprintf("%s=%d firms", th.Name(), strata.Size(th)))
		}
		e.tracker.AddCheck(
			fmt.Sprintf("%s strata built", p.Type),
			true,
			strings.Join(sizes, ", "),
		)
	}
	firstYear := FirstYears(metrics)

	yearSeries := Aggregate(metrics, AxisCalendarYear, strata, firstYear, AggregateOptions{})
	ageSeries := Aggregate(metrics, AxisFirmAge, strata, firstYear, AggregateOptions{AgeMax: e.ageMax})

	e.logger.InfoContext(ctx, "diversity calculation complete",
		"entity_type", p.Type.String(),
		"metric_rows", len(metrics),
		"year_points", len(yearSeries),
		"age_points", len(ageSeries),
		"firms", len(seen),
		"elapsed", time.Since(start).String(),
	)

	return &Result{
		Metrics:    metrics,
		YearSeries: yearSeries,
		AgeSeries:  ageSeries,
	}, nil
}
