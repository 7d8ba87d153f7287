package specialization

import (
	"time"
)

// Acquisition is one (publisher, developer, date) acquisition event
type Acquisition struct {
	PublisherID string
	DeveloperID string
	Date        time.Time
}

// Year returns the acquisition's calendar year, the boundary for both
// pre-acquisition portfolio windows
func (a Acquisition) Year() int {
	return a.Date.Year()
}

// Portfolio is a firm's genre distribution over games released before a
// reference year. Shares are percentages of the firm's own total games on
// a 0-100 scale; a multi-genre game contributes to each of its genres.
type Portfolio struct {
	FirmID     string
	AsOfYear   int
	Shares     map[string]float64
	TotalGames int
}

// TopGenre returns the portfolio's single most-represented genre. Ties
// break lexicographically so reruns classify identically.
func (p Portfolio) TopGenre() string {
	top := ""
	best := -1.0
	for genre, share := range p.Shares {
		if share > best || (share == best && genre < top) {
			top = genre
			best = share
		}
	}
	return top
}

// Record is one classified acquisition: the specialization score between
// the acquirer's and the acquired firm's pre-acquisition portfolios.
type Record struct {
	PublisherID       string
	DeveloperID       string
	AcquisitionDate   time.Time
	CosineSimilarity  float64
	SpecializedFixed  bool
	SpecializedMedian bool
	DeveloperTopGenre string
	Crowdedness       int
	DeveloperGames    int
	PublisherGames    int
}
