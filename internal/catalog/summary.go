package catalog

import (
	"fmt"
	"math"
	"sort"
)

// Stats summarizes a game-count distribution: count, mean, standard
// deviation and the quartile spread.
type Stats struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// ThresholdStats is one row of the game-counts-by-threshold table: the
// distribution of total games among firms at or above a size threshold.
type ThresholdStats struct {
	Threshold int
	Label     string
	Mean      float64
	Std       float64
	N         int
}

// SummarizeCounts computes distribution statistics over per-firm totals.
// Quartiles use linear interpolation between order statistics.
func SummarizeCounts(totals map[string]int) Stats {
	if len(totals) == 0 {
		return Stats{}
	}

	values := make([]float64, 0, len(totals))
	for _, c := range totals {
		values = append(values, float64(c))
	}
	sort.Float64s(values)

	stats := Stats{
		Count:  len(values),
		Min:    values[0],
		Max:    values[len(values)-1],
		Q1:     quantile(values, 0.25),
		Median: quantile(values, 0.5),
		Q3:     quantile(values, 0.75),
	}
	stats.Mean = mean(values)
	stats.Std = sampleStd(values, stats.Mean)
	return stats
}

// SummarizeByThreshold computes mean, sample standard deviation and firm
// count of the total-games distribution for each size threshold.
func SummarizeByThreshold(totals map[string]int, thresholds []int) []ThresholdStats {
	out := make([]ThresholdStats, 0, len(thresholds))
	for _, t := range thresholds {
		var values []float64
		for _, c := range totals {
			if c >= t {
				values = append(values, float64(c))
			}
		}
		row := ThresholdStats{Threshold: t, N: len(values)}
		if t <= 1 {
			row.Label = "All"
		} else {
			row.Label = thresholdLabel(t)
		}
		if len(values) > 0 {
			row.Mean = mean(values)
			row.Std = sampleStd(values, row.Mean)
		}
		out = append(out, row)
	}
	return out
}

func thresholdLabel(t int) string {
	return fmt.Sprintf(">= %d games", t)
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStd is the n-1 denominator standard deviation
func sampleStd(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

// quantile returns the q-th quantile of sorted values using linear
// interpolation between closest ranks
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
