// Package diversity implements the genre-diversification metrics for the
// vertical-integration study.
//
// For each (firm, year) panel row the engine computes two concentration
// measures, each in two variants:
//
//  1. HHI: the Herfindahl-Hirschman Index, sum of squared genre shares
//     (higher = more specialized).
//  2. Entropy: Shannon entropy of the share distribution (higher = more
//     diversified).
//
// The raw variant works on the multi-label share vector as recorded, whose
// sum may exceed 1 because a game tagged with several genres counts toward
// each; raw HHI can therefore exceed 1 and raw entropy has no bounded
// information-theoretic reading. The normalized variant rescales shares to
// sum to 1 first. Zero-signal rows keep their raw metrics (both 0) but are
// excluded from the normalized variant entirely.
//
// Firms are stratified into nested size cohorts (all, >=2, >=5, >=10 total
// games) and the per-row metrics are averaged unweighted within
// (time value, threshold, variant, metric) cells along two axes: calendar
// year, and firm age measured from the firm's first panel appearance. The
// age axis re-indexes firm lifecycles so firms founded in different decades
// can be compared at the same lifecycle stage.
//
// File layout follows the package's role:
//
//   - types.go: variants, metrics, thresholds, series points
//   - metrics.go: HHI and entropy with range validation
//   - strata.go: size-cohort membership
//   - aggregate.go: compensated-sum cell aggregation on both axes
//   - engine.go: orchestration, logging and audit wiring
//   - persist.go: CSV output of series and per-row metrics
package diversity
