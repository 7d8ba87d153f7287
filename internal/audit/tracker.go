package audit

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Check records the outcome of a single verification check
type Check struct {
	Name      string
	Passed    bool
	Details   string
	Timestamp time.Time
}

// Warning records a non-fatal anomaly observed during a run
type Warning struct {
	Message   string
	Timestamp time.Time
}

// DropClass labels why a row was excluded from a computation
type DropClass string

const (
	// DropMissingJoinKey marks rows dropped because a cross-reference was absent
	DropMissingJoinKey DropClass = "missing_join_key"
	// DropDegenerateVector marks rows excluded because a genre vector had zero norm
	DropDegenerateVector DropClass = "degenerate_vector"
	// DropOutOfWindow marks rows excluded by the configured year or age window
	DropOutOfWindow DropClass = "out_of_window"
)

// Tracker accumulates verification checks, warnings and drop counts for one
// pipeline run and renders them as an audit report.
type Tracker struct {
	RunID    string
	RunName  string
	started  time.Time
	logger   *slog.Logger
	checks   []Check
	warnings []Warning
	drops    map[DropClass]int
}

// NewTracker creates a tracker for a named run with a fresh run ID
func NewTracker(runName string, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.New().String()
	logger = logger.With("run_id", runID, "run", runName)
	logger.Info("audit tracking started")
	return &Tracker{
		RunID:   runID,
		RunName: runName,
		started: time.Now(),
		logger:  logger,
		drops:   make(map[DropClass]int),
	}
}

// Logger returns the run-scoped logger carrying the run ID
func (t *Tracker) Logger() *slog.Logger {
	return t.logger
}

// AddCheck records a verification check result
func (t *Tracker) AddCheck(name string, passed bool, details string) {
	t.checks = append(t.checks, Check{
		Name:      name,
		Passed:    passed,
		Details:   details,
		Timestamp: time.Now(),
	})
	if passed {
		t.logger.Info("check passed", "check", name, "details", details)
	} else {
		t.logger.Error("check failed", "check", name, "details", details)
	}
}

// AddWarning records a warning
func (t *Tracker) AddWarning(message string) {
	t.warnings = append(t.warnings, Warning{Message: message, Timestamp: time.Now()})
	t.logger.Warn(message)
}

// CountDrop increments the drop counter for a class by n
func (t *Tracker) CountDrop(class DropClass, n int) {
	if n <= 0 {
		return
	}
	t.drops[class] += n
}

// Drops returns the drop count for a class
func (t *Tracker) Drops(class DropClass) int {
	return t.drops[class]
}

// Failed reports whether any verification check failed
func (t *Tracker) Failed() bool {
	for _, c := range t.checks {
		if !c.Passed {
			return true
		}
	}
	return false
}

// LogSummary writes the run summary to the logger
func (t *Tracker) LogSummary() {
	passed := 0
	for _, c := range t.checks {
		if c.Passed {
			passed++
		}
	}
	t.logger.Info("verification summary",
		"checks_total", len(t.checks),
		"checks_passed", passed,
		"checks_failed", len(t.checks)-passed,
		"warnings", len(t.warnings),
		"elapsed", time.Since(t.started).String(),
	)
	for class, count := range t.drops {
		t.logger.Info("rows dropped", "class", string(class), "count", count)
	}
}

// Report renders the full audit report as text
func (t *Tracker) Report() string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 80)

	passed := 0
	for _, c := range t.checks {
		if c.Passed {
			passed++
		}
	}

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "AUDIT REPORT - %s\n", t.RunName)
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Run ID: %s\n", t.RunID)
	fmt.Fprintf(&b, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "VERIFICATION SUMMARY")
	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "Total verification checks: %d\n", len(t.checks))
	fmt.Fprintf(&b, "Checks passed: %d\n", passed)
	fmt.Fprintf(&b, "Checks failed: %d\n", len(t.checks)-passed)
	fmt.Fprintf(&b, "Warnings issued: %d\n", len(t.warnings))
	fmt.Fprintln(&b)

	if len(t.drops) > 0 {
		fmt.Fprintln(&b, "ROWS DROPPED")
		fmt.Fprintln(&b, thin)
		classes := make([]string, 0, len(t.drops))
		for class := range t.drops {
			classes = append(classes, string(class))
		}
		sort.Strings(classes)
		for _, class := range classes {
			fmt.Fprintf(&b, "  %s: %d\n", class, t.drops[DropClass(class)])
		}
		fmt.Fprintln(&b)
	}

	if len(t.checks) > 0 {
		fmt.Fprintln(&b, "DETAILED CHECKS")
		fmt.Fprintln(&b, thin)
		for _, c := range t.checks {
			status := "PASS"
			if !c.Passed {
				status = "FAIL"
			}
			fmt.Fprintf(&b, "[%s] %s\n", status, c.Name)
			fmt.Fprintf(&b, "    %s\n", c.Details)
			fmt.Fprintf(&b, "    Timestamp: %s\n", c.Timestamp.Format("2006-01-02 15:04:05"))
			fmt.Fprintln(&b)
		}
	}

	if len(t.warnings) > 0 {
		fmt.Fprintln(&b, "WARNINGS")
		fmt.Fprintln(&b, thin)
		for _, w := range t.warnings {
			fmt.Fprintf(&b, "  - %s\n", w.Message)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "END OF REPORT")
	fmt.Fprintln(&b, rule)

	return b.String()
}

// WriteReport writes the audit report to the given path
func (t *Tracker) WriteReport(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(t.Report()), 0644); err != nil {
		return fmt.Errorf("write audit report: %w", err)
	}
	t.logger.Info("audit report written", "path", path)
	return nil
}
