package diversity

import (
	"sort"

	"vgpanel/internal/panel"
)

// kahanSum is a compensated floating-point accumulator. Cell populations
// can reach tens of thousands of firms, so the mean uses compensated
// summation to keep reruns reproducible within tolerance.
type kahanSum struct {
	sum float64
	c   float64
}

func (k *kahanSum) add(x float64) {
	y := x - k.c
	t := k.sum + y
	k.c = (t - k.sum) - y
	k.sum = t
}

type cell struct {
	acc kahanSum
	n   int
}

type cellKey struct {
	timeValue int
	threshold Threshold
	variant   Variant
	metric    Metric
}

// FirstYears derives each entity's first appearance year from its metric
// rows. Age(entity, year) = year - first year, non-negative for every
// observed row by construction.
func FirstYears(metrics []RowMetrics) map[string]int {
	first := make(map[string]int)
	for _, m := range metrics {
		if year, ok := first[m.EntityID]; !ok || m.Year < year {
			first[m.EntityID] = m.Year
		}
	}
	return first
}

// AggregateOptions configures series aggregation
type AggregateOptions struct {
	// AgeMax caps the firm-age axis; observations at ages above it are
	// excluded. Ignored for the calendar-year axis. Zero disables the cap.
	AgeMax int
}

// Aggregate groups metric rows into (time value, threshold, variant,
// metric) cells along the chosen axis and emits the unweighted mean per
// non-empty cell. Rows whose entity falls outside a filtered stratum simply
// do not contribute to that stratum's cells. Output order is deterministic:
// threshold, then variant, metric, time value.
func Aggregate(metrics []RowMetrics, axis TimeAxis, strata *Strata, firstYear map[string]int, opts AggregateOptions) []SeriesPoint {
	variants := []Variant{VariantRaw, VariantNormalized}
	metricKinds := []Metric{MetricHHI, MetricEntropy}

	cells := make(map[cellKey]*cell)
	var entityType panel.EntityType

	for _, m := range metrics {
		entityType = m.EntityType

		timeValue := m.Year
		if axis == AxisFirmAge {
			first, ok := firstYear[m.EntityID]
			if !ok {
				continue
			}
			timeValue = m.Year - first
			if timeValue < 0 {
				continue
			}
			if opts.AgeMax > 0 && timeValue > opts.AgeMax {
				continue
			}
		}

		for _, threshold := range strata.Thresholds() {
			if !strata.Contains(threshold, m.EntityID) {
				continue
			}
			for _, variant := range variants {
				for _, metric := range metricKinds {
					value, ok := m.Value(variant, metric)
					if !ok {
						continue
					}
					key := cellKey{timeValue: timeValue, threshold: threshold, variant: variant, metric: metric}
					c, exists := cells[key]
					if !exists {
						c = &cell{}
						cells[key] = c
					}
					c.acc.add(value)
					c.n++
				}
			}
		}
	}

	points := make([]SeriesPoint, 0, len(cells))
	for key, c := range cells {
		points = append(points, SeriesPoint{
			EntityType: entityType,
			TimeAxis:   axis,
			TimeValue:  key.timeValue,
			Threshold:  key.threshold,
			Variant:    key.variant,
			Metric:     key.metric,
			Value:      c.acc.sum / float64(c.n),
			NFirms:     c.n,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Threshold != points[j].Threshold {
			return points[i].Threshold < points[j].Threshold
		}
		if points[i].Variant != points[j].Variant {
			return points[i].Variant < points[j].Variant
		}
		if points[i].Metric != points[j].Metric {
			return points[i].Metric < points[j].Metric
		}
		return points[i].TimeValue < points[j].TimeValue
	})

	return points
}
