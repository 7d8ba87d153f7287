// Package catalog reads the MobyGames-style game catalog from SQLite and
// derives the firm-level lookups the analytics stages join against:
// per-firm game counts (total and yearly, deduplicated across platform
// re-releases), genre-year crowdedness counts, and game-count distribution
// summaries.
//
// The catalog stores one JSON payload per game. Extraction parses firm
// links, genre tags and the earliest release year across platform releases,
// skipping and counting unparseable payloads rather than failing the scan.
package catalog
