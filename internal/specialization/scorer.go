package specialization

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"vgpanel/internal/audit"
	"vgpanel/internal/catalog"
	"vgpanel/internal/panel"
)

// FixedCutoff is the fixed specialization classification threshold.
// Classification is strictly greater-than; the median policy below is
// inclusive. The asymmetry is inherited from the study design and is
// preserved as-is rather than harmonized.
const FixedCutoff = 0.5

// ErrOutOfRange is returned when a computed similarity falls outside its
// mathematical range. That is a logic defect, not bad input, so it fails
// the run instead of flowing into the median.
var ErrOutOfRange = errors.New("similarity out of valid range")

// similarityTolerance absorbs float rounding at the upper bound
const similarityTolerance = 1e-9

func validateSimilarity(sim float64) error {
	if sim < 0 || sim > 1+similarityTolerance {
		return fmt.Errorf("cosine similarity %g outside [0, 1]: %w", sim, ErrOutOfRange)
	}
	return nil
}

// Scorer classifies acquisitions as specialized or diversified by the
// cosine similarity of the two parties' pre-acquisition genre portfolios.
type Scorer struct {
	logger  *slog.Logger
	tracker *audit.Tracker
}

// NewScorer creates an acquisition specialization scorer
func NewScorer(logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{logger: logger}
}

// SetTracker attaches an audit tracker for drop counts and checks
func (s *Scorer) SetTracker(t *audit.Tracker) {
	s.tracker = t
}

// Score processes every acquisition event against the game catalog and
// crowdedness index. Records whose similarity is undefined (a zero-norm
// portfolio), whose firms are missing from the catalog, or whose
// (top genre, year) pair misses the crowdedness index are dropped and
// counted, never defaulted.
func (s *Scorer) Score(ctx context.Context, acquisitions []Acquisition, games []catalog.Game, crowd *catalog.Crowdedness) ([]Record, error) {
	start := time.Now()

	if len(acquisitions) == 0 {
		return nil, fmt.Errorf("no acquisition events to score")
	}

	s.logger.InfoContext(ctx, "starting specialization scoring",
		"acquisitions", len(acquisitions),
		"catalog_games", len(games),
	)

	devGames := GamesByFirm(games, panel.Developer)
	pubGames := GamesByFirm(games, panel.Publisher)

	var records []Record
	missingFirm := 0
	degenerate := 0
	missingCrowdedness := 0

	for _, acq := range acquisitions {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("specialization scoring cancelled: %w", ctx.Err())
		default:
		}

		dGames, ok := devGames[acq.DeveloperID]
		if !ok {
			missingFirm++
			continue
		}
		pGames, ok := pubGames[acq.PublisherID]
		if !ok {
			missingFirm++
			continue
		}

		devPortfolio := BuildDeveloperPortfolio(dGames, acq.DeveloperID, acq.Year())
		pubPortfolio := BuildPublisherPortfolio(pGames, acq.PublisherID, acq.Year())

		similarity, defined := Cosine(pubPortfolio, devPortfolio)
		if !defined {
			degenerate++
			continue
		}
		if err := validateSimilarity(similarity); err != nil {
			return nil, fmt.Errorf("score %s/%s: %w", acq.PublisherID, acq.DeveloperID, err)
		}

		topGenre := devPortfolio.TopGenre()
		crowdedness, found := crowd.Count(topGenre, acq.Year())
		if !found {
			missingCrowdedness++
			continue
		}

		records = append(records, Record{
			PublisherID:       acq.PublisherID,
			DeveloperID:       acq.DeveloperID,
			AcquisitionDate:   acq.Date,
			CosineSimilarity:  similarity,
			SpecializedFixed:  similarity > FixedCutoff,
			DeveloperTopGenre: topGenre,
			Crowdedness:       crowdedness,
			DeveloperGames:    devPortfolio.TotalGames,
			PublisherGames:    pubPortfolio.TotalGames,
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no acquisitions survived scoring out of %d", len(acquisitions))
	}

	// The median policy needs the whole surviving sample before any record
	// can be classified. Median cutoff is inclusive (>=), unlike the fixed
	// cutoff.
	median := medianSimilarity(records)
	for i := range records {
		records[i].SpecializedMedian = records[i].CosineSimilarity >= median
	}

	if s.tracker != nil {
		s.tracker.CountDrop(audit.DropMissingJoinKey, missingFirm+missingCrowdedness)
		s.tracker.CountDrop(audit.DropDegenerateVector, degenerate)
		s.tracker.AddCheck("acquisitions scored", true,
			fmt.Sprintf("%d of %d events survived (median similarity %.4f)",
				len(records), len(acquisitions), median))
	}

	s.logger.InfoContext(ctx, "specialization scoring complete",
		"records", len(records),
		"dropped_missing_firm", missingFirm,
		"dropped_zero_norm", degenerate,
		"dropped_missing_crowdedness", missingCrowdedness,
		"median_similarity", median,
		"elapsed", time.Since(start).String(),
	)

	return records, nil
}

// medianSimilarity returns the sample median of the surviving records'
// similarities, averaging the middle pair for even counts
func medianSimilarity(records []Record) float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.CosineSimilarity
	}
	sort.Float64s(values)

	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return (values[mid-1] + values[mid]) / 2
}
