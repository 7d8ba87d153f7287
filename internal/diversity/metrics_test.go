package diversity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vgpanel/internal/panel"
)

func TestHHIWorkedExample(t *testing.T) {
	// Developer with 4 games: raw shares Action=0.75, RPG=0.5 (multi-label,
	// sum 1.25); normalized Action=0.6, RPG=0.4.
	raw := map[string]float64{"action": 0.75, "rpg": 0.5}
	assert.InDelta(t, 0.8125, HHI(raw), 1e-12)

	normalized := map[string]float64{"action": 0.6, "rpg": 0.4}
	assert.InDelta(t, 0.52, HHI(normalized), 1e-12)
}

func TestHHIRawCanExceedOne(t *testing.T) {
	shares := map[string]float64{"a": 1.0, "b": 0.9}
	assert.Greater(t, HHI(shares), 1.0)
}

func TestEntropyZeroSharesContributeNothing(t *testing.T) {
	withZeros := map[string]float64{"a": 0.5, "b": 0.5, "c": 0, "d": 0}
	withoutZeros := map[string]float64{"a": 0.5, "b": 0.5}
	assert.InDelta(t, Entropy(withoutZeros), Entropy(withZeros), 1e-12)
	assert.False(t, Entropy(withZeros) != Entropy(withZeros), "entropy must never be NaN")
}

func TestEntropyNonNegative(t *testing.T) {
	tests := []struct {
		name   string
		shares map[string]float64
	}{
		{"uniform", map[string]float64{"a": 0.25, "b": 0.25, "c": 0.25, "d": 0.25}},
		{"concentrated", map[string]float64{"a": 1.0}},
		{"raw multi-label", map[string]float64{"a": 0.9, "b": 0.8, "c": 0.7}},
		{"all zero", map[string]float64{"a": 0, "b": 0}},
		{"empty", map[string]float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.GreaterOrEqual(t, Entropy(tt.shares), 0.0)
		})
	}
}

func TestComputeWorkedExample(t *testing.T) {
	row := panel.Row{
		EntityID:   "D",
		EntityType: panel.Developer,
		Year:       2001,
		Shares:     map[string]float64{"action": 0.75, "rpg": 0.5, "sports": 0},
	}

	m, err := Compute(row)
	require.NoError(t, err)

	assert.InDelta(t, 1.25, m.SharesSum, 1e-12)
	assert.Equal(t, 2, m.ActiveGenres)
	assert.InDelta(t, 0.8125, m.RawHHI, 1e-12)
	require.True(t, m.HasNormalized)
	assert.InDelta(t, 0.52, m.NormHHI, 1e-9)

	// Normalized HHI bounds: [1/n_active, 1].
	assert.GreaterOrEqual(t, m.NormHHI, 1.0/float64(m.ActiveGenres)-1e-9)
	assert.LessOrEqual(t, m.NormHHI, 1.0+1e-9)

	// Input row untouched.
	assert.InDelta(t, 0.75, row.Shares["action"], 1e-12)
}

func TestComputeZeroSumRowKeepsRawVariantOnly(t *testing.T) {
	row := panel.Row{
		EntityID:   "Z",
		EntityType: panel.Developer,
		Year:       2001,
		Shares:     map[string]float64{"action": 0, "rpg": 0},
	}

	m, err := Compute(row)
	require.NoError(t, err)

	assert.False(t, m.HasNormalized)
	assert.InDelta(t, 0.0, m.RawHHI, 1e-12)
	assert.InDelta(t, 0.0, m.RawEntropy, 1e-12)

	_, ok := m.Value(VariantNormalized, MetricHHI)
	assert.False(t, ok)
	value, ok := m.Value(VariantRaw, MetricHHI)
	assert.True(t, ok)
	assert.InDelta(t, 0.0, value, 1e-12)
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		m    RowMetrics
	}{
		{
			name: "normalized HHI above 1",
			m:    RowMetrics{ActiveGenres: 2, HasNormalized: true, NormHHI: 1.5},
		},
		{
			name: "normalized HHI below lower bound",
			m:    RowMetrics{ActiveGenres: 2, HasNormalized: true, NormHHI: 0.1},
		},
		{
			name: "negative normalized entropy",
			m:    RowMetrics{ActiveGenres: 1, HasNormalized: true, NormHHI: 1.0, NormEntropy: -0.5},
		},
		{
			name: "negative raw HHI",
			m:    RowMetrics{RawHHI: -0.1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrOutOfRange)
		})
	}
}

func TestThresholdLabels(t *testing.T) {
	assert.Equal(t, "All", Threshold(1).Label())
	assert.Equal(t, "all", Threshold(1).Name())
	assert.Equal(t, ">= 5 games", Threshold(5).Label())
	assert.Equal(t, "min_10", Threshold(10).Name())
}
