package diversity

import (
	"fmt"

	"vgpanel/internal/panel"
)

// Variant distinguishes metrics computed on raw multi-label shares from
// metrics computed on sum-to-1 normalized shares
type Variant string

const (
	// VariantRaw marks metrics over the raw multi-label share vector
	VariantRaw Variant = "raw"
	// VariantNormalized marks metrics over the normalized share vector
	VariantNormalized Variant = "normalized"
)

// Metric identifies a diversity metric
type Metric string

const (
	// MetricHHI is the Herfindahl-Hirschman Index, sum of squared shares
	MetricHHI Metric = "hhi"
	// MetricEntropy is the Shannon entropy of the share distribution
	MetricEntropy Metric = "entropy"
)

// TimeAxis selects how observations are indexed in the aggregated series
type TimeAxis string

const (
	// AxisCalendarYear indexes observations by calendar year
	AxisCalendarYear TimeAxis = "calendar_year"
	// AxisFirmAge indexes observations by years since the firm's first
	// appearance in the panel
	AxisFirmAge TimeAxis = "firm_age"
)

// Threshold is a firm-size cohort cutoff: firms with at least this many
// total games belong to the stratum. Threshold 1 means no filter.
type Threshold int

// Label returns the human-readable stratum label used in output datasets
func (t Threshold) Label() string {
	if t <= 1 {
		return "All"
	}
	return fmt.Sprintf(">= %d games", int(t))
}

// Name returns the compact stratum identifier
func (t Threshold) Name() string {
	if t <= 1 {
		return "all"
	}
	return fmt.Sprintf("min_%d", int(t))
}

// RowMetrics holds the diversity metrics computed from one panel row.
// Raw-variant metrics always exist; normalized-variant metrics exist only
// when the row's shares sum above zero.
type RowMetrics struct {
	EntityID     string
	EntityType   panel.EntityType
	Year         int
	SharesSum    float64
	ActiveGenres int

	RawHHI     float64
	RawEntropy float64

	NormHHI       float64
	NormEntropy   float64
	HasNormalized bool
}

// Value returns the metric value for a variant, with ok=false when the
// variant is not defined for this row
func (m RowMetrics) Value(variant Variant, metric Metric) (float64, bool) {
	switch variant {
	case VariantRaw:
		if metric == MetricHHI {
			return m.RawHHI, true
		}
		return m.RawEntropy, true
	case VariantNormalized:
		if !m.HasNormalized {
			return 0, false
		}
		if metric == MetricHHI {
			return m.NormHHI, true
		}
		return m.NormEntropy, true
	default:
		return 0, false
	}
}

// SeriesPoint is one aggregated observation: the unweighted mean of a
// metric across the firms in one (time value, threshold, variant, metric)
// cell. Cells with zero contributing firms are never emitted.
type SeriesPoint struct {
	EntityType panel.EntityType
	TimeAxis   TimeAxis
	TimeValue  int
	Threshold  Threshold
	Variant    Variant
	Metric     Metric
	Value      float64
	NFirms     int
}
