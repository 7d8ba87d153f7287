package specialization

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vgpanel/internal/audit"
	"vgpanel/internal/catalog"
	"vgpanel/internal/panel"
)

func date(year int) time.Time {
	return time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)
}

func scorerCatalog() []catalog.Game {
	return []catalog.Game{
		// Developer d1: pure Action studio before 2015.
		{ID: 1, ReleaseYear: 2010, DeveloperIDs: []string{"d1"}, Genres: []string{"Action"}},
		{ID: 2, ReleaseYear: 2012, DeveloperIDs: []string{"d1"}, Genres: []string{"Action"}},
		// Developer d2: RPG studio.
		{ID: 3, ReleaseYear: 2011, DeveloperIDs: []string{"d2"}, Genres: []string{"RPG"}},
		// Developer d3: no genre tags, zero-norm portfolio.
		{ID: 4, ReleaseYear: 2011, DeveloperIDs: []string{"d3"}, Genres: nil},
		// Publisher p1: half Action, half RPG before 2015.
		{ID: 5, ReleaseYear: 2009, PublisherIDs: []string{"p1"}, Genres: []string{"Action"}},
		{ID: 6, ReleaseYear: 2013, PublisherIDs: []string{"p1"}, Genres: []string{"RPG"}},
		// Unrelated release keeping catalog coverage through 2015.
		{ID: 7, ReleaseYear: 2015, PublisherIDs: []string{"p2"}, Genres: []string{"Sports"}},
	}
}

func TestScorerScore(t *testing.T) {
	games := scorerCatalog()
	crowd := catalog.BuildCrowdedness(games, panel.Publisher)
	acquisitions := []Acquisition{
		{PublisherID: "p1", DeveloperID: "d1", Date: date(2015)},
		{PublisherID: "p1", DeveloperID: "d2", Date: date(2015)},
	}

	scorer := NewScorer(nil)
	tracker := audit.NewTracker("test", nil)
	scorer.SetTracker(tracker)

	records, err := scorer.Score(context.Background(), acquisitions, games, crowd)
	require.NoError(t, err)
	require.Len(t, records, 2)

	var d1 Record
	for _, r := range records {
		if r.DeveloperID == "d1" {
			d1 = r
		}
	}

	// Worked example: cosine = 0.5/sqrt(0.5) ~= 0.707 > 0.5.
	assert.InDelta(t, 0.7071067, d1.CosineSimilarity, 1e-6)
	assert.True(t, d1.SpecializedFixed)
	assert.Equal(t, "Action", d1.DeveloperTopGenre)
	assert.Equal(t, 2, d1.DeveloperGames)
	assert.Equal(t, 2, d1.PublisherGames)
	// Crowdedness is publisher-side: only p1's 2009 Action release counts,
	// never d1's own studio output.
	assert.Equal(t, 1, d1.Crowdedness)

	// Both records sit on opposite sides of the two-record median, which
	// is their average; the higher one classifies specialized, and the
	// comparator is inclusive so an exact-median record would too.
	for _, r := range records {
		assert.GreaterOrEqual(t, r.CosineSimilarity, 0.0)
		assert.LessOrEqual(t, r.CosineSimilarity, 1.0)
	}
}

func TestScorerDropsZeroNormPortfolio(t *testing.T) {
	games := scorerCatalog()
	crowd := catalog.BuildCrowdedness(games, panel.Publisher)
	acquisitions := []Acquisition{
		{PublisherID: "p1", DeveloperID: "d1", Date: date(2015)},
		{PublisherID: "p1", DeveloperID: "d3", Date: date(2015)}, // undefined similarity
	}

	scorer := NewScorer(nil)
	tracker := audit.NewTracker("test", nil)
	scorer.SetTracker(tracker)

	records, err := scorer.Score(context.Background(), acquisitions, games, crowd)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "d1", records[0].DeveloperID)
	assert.Equal(t, 1, tracker.Drops(audit.DropDegenerateVector))
}

func TestScorerDropsMissingFirm(t *testing.T) {
	games := scorerCatalog()
	crowd := catalog.BuildCrowdedness(games, panel.Publisher)
	acquisitions := []Acquisition{
		{PublisherID: "p1", DeveloperID: "d1", Date: date(2015)},
		{PublisherID: "ghost", DeveloperID: "d1", Date: date(2015)},
		{PublisherID: "p1", DeveloperID: "ghost", Date: date(2015)},
	}

	scorer := NewScorer(nil)
	tracker := audit.NewTracker("test", nil)
	scorer.SetTracker(tracker)

	records, err := scorer.Score(context.Background(), acquisitions, games, crowd)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, tracker.Drops(audit.DropMissingJoinKey))
}

func TestScorerDropsMissingCrowdedness(t *testing.T) {
	// The acquisition predates any release in the developer's top genre,
	// so the crowdedness inner join misses and the record is dropped, not
	// defaulted to 0.
	games := []catalog.Game{
		{ID: 1, ReleaseYear: 0, DeveloperIDs: []string{"d1"}, Genres: []string{"Action"}},
		{ID: 2, ReleaseYear: 2000, PublisherIDs: []string{"p1"}, Genres: []string{"Action"}},
		{ID: 3, ReleaseYear: 2005, DeveloperIDs: []string{"d2"}, Genres: []string{"Action"}},
		{ID: 4, ReleaseYear: 2012, PublisherIDs: []string{"p1"}, Genres: []string{"Strategy"}},
	}
	crowd := catalog.BuildCrowdedness(games, panel.Publisher)
	acquisitions := []Acquisition{
		{PublisherID: "p1", DeveloperID: "d1", Date: date(1995)},
		{PublisherID: "p1", DeveloperID: "d2", Date: date(2012)},
	}

	scorer := NewScorer(nil)
	records, err := scorer.Score(context.Background(), acquisitions, games, crowd)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "d2", records[0].DeveloperID)
}

func TestScorerMedianComparatorInclusive(t *testing.T) {
	records := []Record{
		{CosineSimilarity: 0.2},
		{CosineSimilarity: 0.5},
		{CosineSimilarity: 0.8},
	}
	median := medianSimilarity(records)
	assert.InDelta(t, 0.5, median, 1e-12)

	for i := range records {
		records[i].SpecializedMedian = records[i].CosineSimilarity >= median
	}
	assert.False(t, records[0].SpecializedMedian)
	assert.True(t, records[1].SpecializedMedian, "median cutoff is inclusive, unlike the fixed cutoff")
	assert.True(t, records[2].SpecializedMedian)

	// The fixed cutoff at exactly 0.5 is strict.
	assert.False(t, records[1].CosineSimilarity > FixedCutoff)
}

func TestScorerNoSurvivors(t *testing.T) {
	games := scorerCatalog()
	crowd := catalog.BuildCrowdedness(games, panel.Publisher)
	acquisitions := []Acquisition{
		{PublisherID: "ghost", DeveloperID: "ghost", Date: date(2015)},
	}

	scorer := NewScorer(nil)
	_, err := scorer.Score(context.Background(), acquisitions, games, crowd)
	require.Error(t, err)
}

func TestMedianSimilarityEvenCount(t *testing.T) {
	records := []Record{
		{CosineSimilarity: 0.1},
		{CosineSimilarity: 0.3},
		{CosineSimilarity: 0.7},
		{CosineSimilarity: 0.9},
	}
	assert.InDelta(t, 0.5, medianSimilarity(records), 1e-12)
}

func TestScorerRecordsSingleScoredCheck(t *testing.T) {
	games := scorerCatalog()
	crowd := catalog.BuildCrowdedness(games, panel.Publisher)
	acquisitions := []Acquisition{
		{PublisherID: "p1", DeveloperID: "d1", Date: date(2015)},
	}

	scorer := NewScorer(nil)
	tracker := audit.NewTracker("test", nil)
	scorer.SetTracker(tracker)

	_, err := scorer.Score(context.Background(), acquisitions, games, crowd)
	require.NoError(t, err)

	// One check per run, carrying the median; callers do not add their own.
	report := tracker.Report()
	assert.Equal(t, 1, strings.Count(report, "acquisitions scored"))
	assert.Contains(t, report, "median similarity")
}

func TestValidateSimilarity(t *testing.T) {
	assert.NoError(t, validateSimilarity(0))
	assert.NoError(t, validateSimilarity(0.5))
	assert.NoError(t, validateSimilarity(1))
	// Float rounding at the upper bound is tolerated.
	assert.NoError(t, validateSimilarity(1+5e-10))

	err := validateSimilarity(-0.01)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfRange)

	err = validateSimilarity(1.01)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
