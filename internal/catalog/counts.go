package catalog

import (
	"vgpanel/internal/panel"
)

// GameCounts holds per-firm game counts for one entity type. Totals count
// each distinct game once per firm; Yearly buckets the same counts by the
// game's earliest release year (games without a usable year appear in
// Totals only).
type GameCounts struct {
	EntityType panel.EntityType
	Totals     map[string]int
	Yearly     map[string]map[int]int
	Names      map[string]string
}

// CountGames builds the per-firm game-count lookup for one entity type
// from the extracted catalog. Yearly counts are populated only when
// includeYearly is set.
func CountGames(extraction *Extraction, entityType panel.EntityType, includeYearly bool) *GameCounts {
	counts := &GameCounts{
		EntityType: entityType,
		Totals:     make(map[string]int),
		Names:      extraction.Names(entityType),
	}
	if includeYearly {
		counts.Yearly = make(map[string]map[int]int)
	}

	for _, game := range extraction.Games {
		for _, firmID := range game.FirmIDs(entityType) {
			counts.Totals[firmID]++
			if includeYearly && game.ReleaseYear != 0 {
				if counts.Yearly[firmID] == nil {
					counts.Yearly[firmID] = make(map[int]int)
				}
				counts.Yearly[firmID][game.ReleaseYear]++
			}
		}
	}

	return counts
}
