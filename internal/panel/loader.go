package panel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var genreColumnPattern = regexp.MustCompile(`^genre_(\d+)_share$`)

// LoadOptions configures panel loading
type LoadOptions struct {
	// YearMin and YearMax bound the observation window. Rows outside the
	// window are dropped and counted, not errors. Zero values disable the
	// corresponding bound.
	YearMin int
	YearMax int
}

// LoadStats reports what the loader read and dropped
type LoadStats struct {
	RowsRead     int
	RowsKept     int
	OutOfWindow  int
	MissingYear  int
}

// Loader reads long-format genre-share CSV panels into memory
type Loader struct {
	entityType EntityType
	logger     *slog.Logger
}

// NewLoader creates a panel loader for one entity type
func NewLoader(entityType EntityType, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{entityType: entityType, logger: logger}
}

// Load reads and validates a genre-share panel CSV. A malformed header or
// row fails the whole run; rows outside the year window are dropped and
// counted in the returned stats.
func (l *Loader) Load(ctx context.Context, path string, opts LoadOptions) (*Panel, *LoadStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open panel file: %w", err)
	}
	defer file.Close()

	l.logger.InfoContext(ctx, "loading genre-share panel",
		"entity_type", l.entityType.String(),
		"path", path,
	)

	reader := csv.NewReader(file)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read panel header: %w", err)
	}

	layout, schema, err := l.parseHeader(header)
	if err != nil {
		return nil, nil, err
	}

	panel := &Panel{Type: l.entityType, Schema: *schema}
	stats := &LoadStats{}

	line := 1
	for {
		select {
		case <-ctx.Done():
			return nil, nil, fmt.Errorf("panel load cancelled: %w", ctx.Err())
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read panel row %d: %w", line, err)
		}
		line++
		stats.RowsRead++

		row, err := l.parseRow(record, layout, schema)
		if err != nil {
			return nil, nil, fmt.Errorf("panel row %d: %w", line, err)
		}

		if row.Year == 0 {
			stats.MissingYear++
			continue
		}
		if (opts.YearMin != 0 && row.Year < opts.YearMin) ||
			(opts.YearMax != 0 && row.Year > opts.YearMax) {
			stats.OutOfWindow++
			continue
		}

		panel.Rows = append(panel.Rows, row)
		stats.RowsKept++
	}

	l.logger.InfoContext(ctx, "panel loaded",
		"entity_type", l.entityType.String(),
		"rows_read", stats.RowsRead,
		"rows_kept", stats.RowsKept,
		"out_of_window", stats.OutOfWindow,
		"missing_year", stats.MissingYear,
		"num_genres", schema.NumGenres(),
	)

	return panel, stats, nil
}

// headerLayout maps required columns to their positions
type headerLayout struct {
	idCol    int
	nameCol  int
	yearCol  int
	genreCol map[string]int // genre label -> column index
}

func (l *Loader) parseHeader(header []string) (*headerLayout, *Schema, error) {
	layout := &headerLayout{idCol: -1, nameCol: -1, yearCol: -1, genreCol: make(map[string]int)}
	schema := &Schema{}

	for i, col := range header {
		name := strings.TrimSpace(col)
		switch name {
		case l.entityType.IDColumn():
			layout.idCol = i
		case l.entityType.NameColumn():
			layout.nameCol = i
		case "Year":
			layout.yearCol = i
		default:
			if m := genreColumnPattern.FindStringSubmatch(name); m != nil {
				label := "genre_" + m[1]
				if _, dup := layout.genreCol[label]; dup {
					return nil, nil, fmt.Errorf("%w: duplicate genre column %s", ErrSchemaMismatch, name)
				}
				layout.genreCol[label] = i
				schema.Genres = append(schema.Genres, label)
			}
		}
	}

	if layout.idCol < 0 {
		return nil, nil, fmt.Errorf("%w: missing column %s", ErrSchemaMismatch, l.entityType.IDColumn())
	}
	if layout.yearCol < 0 {
		return nil, nil, fmt.Errorf("%w: missing column Year", ErrSchemaMismatch)
	}
	if len(schema.Genres) == 0 {
		return nil, nil, fmt.Errorf("%w: no genre share columns found", ErrSchemaMismatch)
	}

	return layout, schema, nil
}

func (l *Loader) parseRow(record []string, layout *headerLayout, schema *Schema) (Row, error) {
	row := Row{
		EntityType: l.entityType,
		Shares:     make(map[string]float64, len(schema.Genres)),
	}

	if layout.idCol >= len(record) {
		return Row{}, fmt.Errorf("%w: row shorter than header", ErrSchemaMismatch)
	}
	row.EntityID = strings.TrimSpace(record[layout.idCol])
	if row.EntityID == "" {
		return Row{}, fmt.Errorf("%w: empty entity id", ErrSchemaMismatch)
	}
	if layout.nameCol >= 0 && layout.nameCol < len(record) {
		row.EntityName = strings.TrimSpace(record[layout.nameCol])
	}

	if layout.yearCol < len(record) {
		yearText := strings.TrimSpace(record[layout.yearCol])
		if yearText != "" {
			year, err := strconv.Atoi(yearText)
			if err != nil {
				return Row{}, fmt.Errorf("%w: invalid Year value %q", ErrSchemaMismatch, yearText)
			}
			row.Year = year
		}
	}

	for label, col := range layout.genreCol {
		if col >= len(record) {
			return Row{}, fmt.Errorf("%w: row shorter than header", ErrSchemaMismatch)
		}
		text := strings.TrimSpace(record[col])
		if text == "" {
			row.Shares[label] = 0
			continue
		}
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Row{}, fmt.Errorf("%w: invalid share value %q in %s", ErrSchemaMismatch, text, label)
		}
		if value < 0 {
			return Row{}, fmt.Errorf("%w: negative share %f in %s", ErrSchemaMismatch, value, label)
		}
		row.Shares[label] = value
	}

	return row, nil
}
