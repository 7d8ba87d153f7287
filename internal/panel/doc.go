// Package panel loads and validates long-format genre-share panels.
//
// A panel CSV has one row per (entity, year) with a fixed set of
// genre_<i>_share columns. The genre label set is parsed once from the
// header and shared by every row; a missing key column, a malformed value
// or a negative share fails the load with ErrSchemaMismatch before any
// partial processing.
//
// Raw shares are multi-label: a game tagged with several genres contributes
// to each, so a row's shares may legitimately sum above 1. Normalize
// produces the sum-to-1 variant used by the normalized diversity metrics;
// zero-sum rows are excluded from that variant rather than zero-filled.
package panel
