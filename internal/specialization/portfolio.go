package specialization

import (
	"math"

	"vgpanel/internal/catalog"
	"vgpanel/internal/panel"
)

// BuildDeveloperPortfolio builds the acquired firm's full pre-acquisition
// genre distribution: all games released strictly before the acquisition
// year. Developers are one-time-acquired in this domain, so if the firm
// has no games dated at or after the acquisition its entire history is
// used, including games without a usable release year.
func BuildDeveloperPortfolio(games []catalog.Game, firmID string, acquisitionYear int) Portfolio {
	var before []catalog.Game
	hasLater := false
	for _, g := range games {
		switch {
		case g.ReleaseYear != 0 && g.ReleaseYear < acquisitionYear:
			before = append(before, g)
		case g.ReleaseYear >= acquisitionYear:
			hasLater = true
		}
	}
	if len(before) == 0 && !hasLater {
		before = games
	}
	return portfolioFrom(before, firmID, acquisitionYear)
}

// BuildPublisherPortfolio builds the acquirer's portfolio for one specific
// deal: games released in years at or before the acquisition year. A
// serial acquirer gets a different portfolio per deal since each deal has
// its own window.
func BuildPublisherPortfolio(games []catalog.Game, firmID string, acquisitionYear int) Portfolio {
	var window []catalog.Game
	for _, g := range games {
		if g.ReleaseYear != 0 && g.ReleaseYear <= acquisitionYear {
			window = append(window, g)
		}
	}
	return portfolioFrom(window, firmID, acquisitionYear)
}

// portfolioFrom turns a set of games into genre-share percentages of the
// firm's own total
func portfolioFrom(games []catalog.Game, firmID string, asOfYear int) Portfolio {
	p := Portfolio{
		FirmID:     firmID,
		AsOfYear:   asOfYear,
		Shares:     make(map[string]float64),
		TotalGames: len(games),
	}
	if len(games) == 0 {
		return p
	}
	for _, g := range games {
		for _, genre := range g.Genres {
			p.Shares[genre] += 100.0 / float64(len(games))
		}
	}
	return p
}

// Cosine computes the cosine similarity between two portfolios over the
// union of genres either party touches; a genre missing from one side
// counts as 0, never dropped, so sparse portfolios are not overstated.
// ok is false when either vector has zero norm: similarity is undefined
// there, not zero, and the caller must drop the record.
func Cosine(a, b Portfolio) (float64, bool) {
	var dot, normA, normB float64
	for genre, va := range a.Shares {
		normA += va * va
		if vb, ok := b.Shares[genre]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b.Shares {
		normB += vb * vb
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}

// GamesByFirm indexes catalog games by firm id for one entity type
func GamesByFirm(games []catalog.Game, entityType panel.EntityType) map[string][]catalog.Game {
	index := make(map[string][]catalog.Game)
	for _, g := range games {
		for _, firmID := range g.FirmIDs(entityType) {
			index[firmID] = append(index[firmID], g)
		}
	}
	return index
}
