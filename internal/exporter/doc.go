// Package exporter writes analysis outputs to disk: CSV tables under
// the configured data directory and the xlsx game-count summary
// workbook.
//
// Files:
//   - csv.go: CSV writer with path resolution and Excel BOM support
//   - workbook.go: game-count distribution workbook via excelize
package exporter
