package panel

// Normalize rescales a row's genre shares to sum to 1, preserving
// proportions. The input row is not mutated.
//
// A zero-sum row cannot be normalized; Normalize returns ok=false and the
// row must be excluded from all normalized-variant computation downstream.
// The same row may still carry raw-variant metrics (the all-zero vector has
// HHI 0 and entropy 0 by convention). Normalizing an already-normalized row
// is a no-op within floating-point tolerance.
func Normalize(row Row) (Row, bool) {
	sum := row.SharesSum()
	if sum <= 0 {
		return Row{}, false
	}

	normalized := Row{
		EntityID:   row.EntityID,
		EntityName: row.EntityName,
		EntityType: row.EntityType,
		Year:       row.Year,
		Shares:     make(map[string]float64, len(row.Shares)),
	}
	for label, value := range row.Shares {
		normalized.Shares[label] = value / sum
	}
	return normalized, true
}
