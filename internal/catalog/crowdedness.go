package catalog

import (
	"vgpanel/internal/panel"
)

// Crowdedness indexes how many catalog games had been released in each
// genre by each year, a proxy for market saturation at acquisition time.
type Crowdedness struct {
	// cumulative[genre][year] = games released in genre up to and
	// including year
	cumulative map[string]map[int]int
	firstYear  map[string]int
	lastYear   int
}

// BuildCrowdedness builds the cumulative genre-year index from the
// extracted catalog, restricted to games linked to at least one firm on
// the given side. Specialization scoring uses the publisher side, so
// developer-only releases never inflate the count attached to a record.
// Games without a usable release year are excluded. Rows exist for every
// year from a genre's first qualifying release through the last release
// year observed on that side; lookups outside that span miss, and the
// caller drops the affected record (inner-join semantics).
func BuildCrowdedness(games []Game, side panel.EntityType) *Crowdedness {
	perYear := make(map[string]map[int]int)
	lastYear := 0
	for _, game := range games {
		if game.ReleaseYear == 0 || len(game.FirmIDs(side)) == 0 {
			continue
		}
		if game.ReleaseYear > lastYear {
			lastYear = game.ReleaseYear
		}
		for _, genre := range game.Genres {
			if perYear[genre] == nil {
				perYear[genre] = make(map[int]int)
			}
			perYear[genre][game.ReleaseYear]++
		}
	}

	c := &Crowdedness{
		cumulative: make(map[string]map[int]int, len(perYear)),
		firstYear:  make(map[string]int, len(perYear)),
		lastYear:   lastYear,
	}
	for genre, years := range perYear {
		first := 0
		for year := range years {
			if first == 0 || year < first {
				first = year
			}
		}
		c.firstYear[genre] = first

		cum := make(map[int]int, lastYear-first+1)
		running := 0
		for year := first; year <= lastYear; year++ {
			running += years[year]
			cum[year] = running
		}
		c.cumulative[genre] = cum
	}
	return c
}

// Count returns the number of catalog games released in the genre up to
// and including the given year. ok is false when no index row exists for
// the (genre, year) pair.
func (c *Crowdedness) Count(genre string, year int) (int, bool) {
	cum, exists := c.cumulative[genre]
	if !exists {
		return 0, false
	}
	if year < c.firstYear[genre] || year > c.lastYear {
		return 0, false
	}
	return cum[year], true
}
