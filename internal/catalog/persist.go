package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// SaveCountsCSV writes per-firm total game counts, sorted by entity id for
// reproducible output.
func (g *GameCounts) SaveCountsCSV(outputPath string) error {
	if len(g.Totals) == 0 {
		return fmt.Errorf("no game counts to save")
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

	header := []string{"entity_id", "entity_type", "name", "total_games"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	ids := make([]string, 0, len(g.Totals))
	for id := range g.Totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		record := []string{
			id,
			g.EntityType.String(),
			g.Names[id],
			strconv.Itoa(g.Totals[id]),
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

// SaveYearlyCountsCSV writes per-firm yearly game counts. Returns an error
// if yearly counts were not collected.
func (g *GameCounts) SaveYearlyCountsCSV(outputPath string) error {
	if g.Yearly == nil {
		return fmt.Errorf("yearly counts were not collected")
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

	header := []string{"entity_id", "entity_type", "name", "year", "games_in_year"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	ids := make([]string, 0, len(g.Yearly))
	for id := range g.Yearly {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		years := make([]int, 0, len(g.Yearly[id]))
		for year := range g.Yearly[id] {
			years = append(years, year)
		}
		sort.Ints(years)

		for _, year := range years {
			record := []string{
				id,
				g.EntityType.String(),
				g.Names[id],
				strconv.Itoa(year),
				strconv.Itoa(g.Yearly[id][year]),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush CSV writer: %w", err)
	}
	return nil
}

// LoadCountsCSV reads a previously written game-counts CSV back into a
// totals lookup, so the diversity CLI can run without the catalog database.
func LoadCountsCSV(path string) (map[string]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open game counts file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read game counts file: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("game counts file is empty")
	}

	idCol, countCol := -1, -1
	for i, col := range records[0] {
		switch col {
		case "entity_id":
			idCol = i
		case "total_games":
			countCol = i
		}
	}
	if idCol < 0 || countCol < 0 {
		return nil, fmt.Errorf("game counts file missing entity_id or total_games column")
	}

	totals := make(map[string]int, len(records)-1)
	for i, record := range records[1:] {
		count, err := strconv.Atoi(record[countCol])
		if err != nil {
			return nil, fmt.Errorf("game counts row %d: invalid count %q: %w", i+2, record[countCol], err)
		}
		totals[record[idCol]] = count
	}
	return totals, nil
}
