package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"vgpanel/internal/catalog"
)

func TestWriteGameCountWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game_counts.xlsx")

	summaries := []GameCountSummary{
		{
			EntityType: "developer",
			Overall: catalog.Stats{
				Count: 3, Mean: 5, Std: 2,
				Min: 3, Q1: 3.5, Median: 4, Q3: 6, Max: 8,
			},
			ByThreshold: []catalog.ThresholdStats{
				{Threshold: 1, Label: "All", Mean: 5, Std: 2, N: 3},
				{Threshold: 5, Label: ">= 5 games", Mean: 6.5, Std: 2.1, N: 2},
			},
		},
		{
			EntityType: "publisher",
			Overall:    catalog.Stats{Count: 1, Mean: 2, Min: 2, Q1: 2, Median: 2, Q3: 2, Max: 2},
			ByThreshold: []catalog.ThresholdStats{
				{Threshold: 1, Label: "All", Mean: 2, N: 1},
			},
		},
	}

	err := WriteGameCountWorkbook(summaries, path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"developer", "publisher"}, f.GetSheetList())

	// Overall block on the developer sheet
	v, err := f.GetCellValue("developer", "A2")
	require.NoError(t, err)
	assert.Equal(t, "count", v)
	v, err = f.GetCellValue("developer", "B2")
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	// Threshold table starts two rows below the overall block
	v, err = f.GetCellValue("developer", "A11")
	require.NoError(t, err)
	assert.Equal(t, "threshold", v)
	v, err = f.GetCellValue("developer", "B13")
	require.NoError(t, err)
	assert.Equal(t, ">= 5 games", v)
}

func TestWriteGameCountWorkbookEmpty(t *testing.T) {
	err := WriteGameCountWorkbook(nil, filepath.Join(t.TempDir(), "out.xlsx"))
	assert.Error(t, err)
}
