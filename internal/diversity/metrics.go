package diversity

import (
	"errors"
	"fmt"
	"math"

	"vgpanel/internal/panel"
)

// ErrOutOfRange indicates a computed metric fell outside its theoretically
// valid range. This is a logic defect, not a data condition, so it fails
// the whole run.
var ErrOutOfRange = errors.New("metric out of valid range")

// rangeTolerance absorbs floating-point noise at the range boundaries
const rangeTolerance = 1e-9

// HHI computes the Herfindahl-Hirschman Index, the sum of squared shares.
// For normalized shares the result lies in [1/n_active, 1]; for raw
// multi-label shares it can exceed 1 and is reported unclamped.
func HHI(shares map[string]float64) float64 {
	var sum float64
	for _, s := range shares {
		sum += s * s
	}
	return sum
}

// Entropy computes the Shannon entropy -sum(s*ln(s)) over positive shares.
// Zero shares contribute 0 under the 0*ln(0) := 0 convention. For raw
// multi-label shares the sum of shares need not be 1, so the value loses
// its usual bounded information-theoretic reading; it is reported as a
// robustness cross-check, not corrected.
func Entropy(shares map[string]float64) float64 {
	var sum float64
	for _, s := range shares {
		if s > 0 {
			sum -= s * math.Log(s)
		}
	}
	return sum
}

// Compute derives the per-row diversity metrics from one panel row. The
// input row is not mutated. Raw-variant metrics are always produced (the
// all-zero vector has HHI 0 and entropy 0); normalized-variant metrics are
// produced only when the shares sum above zero.
func Compute(row panel.Row) (RowMetrics, error) {
	m := RowMetrics{
		EntityID:     row.EntityID,
		EntityType:   row.EntityType,
		Year:         row.Year,
		SharesSum:    row.SharesSum(),
		ActiveGenres: row.ActiveGenres(),
	}

	m.RawHHI = HHI(row.Shares)
	m.RawEntropy = Entropy(row.Shares)

	if normalized, ok := panel.Normalize(row); ok {
		m.NormHHI = HHI(normalized.Shares)
		m.NormEntropy = Entropy(normalized.Shares)
		m.HasNormalized = true
	}

	if err := m.validate(); err != nil {
		return RowMetrics{}, err
	}
	return m, nil
}

// validate enforces the theoretical metric ranges. A violation means the
// data-model invariants were broken upstream and the run must stop.
func (m RowMetrics) validate() error {
	if m.RawHHI < -rangeTolerance {
		return fmt.Errorf("%w: raw HHI %f < 0 for %s/%d", ErrOutOfRange, m.RawHHI, m.EntityID, m.Year)
	}
	if m.RawEntropy < -rangeTolerance {
		return fmt.Errorf("%w: raw entropy %f < 0 for %s/%d", ErrOutOfRange, m.RawEntropy, m.EntityID, m.Year)
	}
	if m.HasNormalized {
		if m.NormEntropy < -rangeTolerance {
			return fmt.Errorf("%w: normalized entropy %f < 0 for %s/%d", ErrOutOfRange, m.NormEntropy, m.EntityID, m.Year)
		}
		lower := 0.0
		if m.ActiveGenres > 0 {
			lower = 1.0 / float64(m.ActiveGenres)
		}
		if m.NormHHI < lower-rangeTolerance || m.NormHHI > 1+rangeTolerance {
			return fmt.Errorf("%w: normalized HHI %f outside [%f, 1] for %s/%d",
				ErrOutOfRange, m.NormHHI, lower, m.EntityID, m.Year)
		}
	}
	return nil
}
