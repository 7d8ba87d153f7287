package panel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePanelCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panel.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoaderLoad(t *testing.T) {
	csvData := `developer_id,Developer,Year,genre_0_share,genre_1_share,genre_2_share
101,Firm A,2001,0.75,0.5,0
101,Firm A,2002,1,0,0
102,Firm B,2001,0,0,0
`
	path := writePanelCSV(t, csvData)

	loader := NewLoader(Developer, nil)
	p, stats, err := loader.Load(context.Background(), path, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, Developer, p.Type)
	assert.Equal(t, []string{"genre_0", "genre_1", "genre_2"}, p.Schema.Genres)
	require.Len(t, p.Rows, 3)
	assert.Equal(t, 3, stats.RowsRead)
	assert.Equal(t, 3, stats.RowsKept)

	first := p.Rows[0]
	assert.Equal(t, "101", first.EntityID)
	assert.Equal(t, "Firm A", first.EntityName)
	assert.Equal(t, 2001, first.Year)
	assert.InDelta(t, 1.25, first.SharesSum(), 1e-12)
	assert.Equal(t, 2, first.ActiveGenres())

	// The zero-signal row survives loading; exclusion is a normalized-variant
	// concern, not a load concern.
	assert.InDelta(t, 0.0, p.Rows[2].SharesSum(), 1e-12)
}

func TestLoaderYearWindow(t *testing.T) {
	csvData := `developer_id,Developer,Year,genre_0_share
101,Firm A,1985,0.5
101,Firm A,1995,0.5
101,Firm A,2024,0.5
102,Firm B,,0.5
`
	path := writePanelCSV(t, csvData)

	loader := NewLoader(Developer, nil)
	p, stats, err := loader.Load(context.Background(), path, LoadOptions{YearMin: 1990, YearMax: 2023})
	require.NoError(t, err)

	require.Len(t, p.Rows, 1)
	assert.Equal(t, 1995, p.Rows[0].Year)
	assert.Equal(t, 2, stats.OutOfWindow)
	assert.Equal(t, 1, stats.MissingYear)
	assert.Equal(t, 4, stats.RowsRead)
	assert.Equal(t, 1, stats.RowsKept)
}

func TestLoaderSchemaMismatch(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{
			name: "missing entity id column",
			csv:  "Developer,Year,genre_0_share\nFirm A,2001,0.5\n",
		},
		{
			name: "missing year column",
			csv:  "developer_id,Developer,genre_0_share\n101,Firm A,0.5\n",
		},
		{
			name: "no genre columns",
			csv:  "developer_id,Developer,Year\n101,Firm A,2001\n",
		},
		{
			name: "negative share",
			csv:  "developer_id,Developer,Year,genre_0_share\n101,Firm A,2001,-0.2\n",
		},
		{
			name: "non-numeric share",
			csv:  "developer_id,Developer,Year,genre_0_share\n101,Firm A,2001,abc\n",
		},
		{
			name: "non-numeric year",
			csv:  "developer_id,Developer,Year,genre_0_share\n101,Firm A,20x1,0.5\n",
		},
		{
			name: "duplicate genre column",
			csv:  "developer_id,Developer,Year,genre_0_share,genre_0_share\n101,Firm A,2001,0.5,0.5\n",
		},
		{
			name: "empty entity id",
			csv:  "developer_id,Developer,Year,genre_0_share\n,Firm A,2001,0.5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePanelCSV(t, tt.csv)
			loader := NewLoader(Developer, nil)
			_, _, err := loader.Load(context.Background(), path, LoadOptions{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchemaMismatch)
		})
	}
}

func TestLoaderPublisherColumns(t *testing.T) {
	csvData := `publisher_id,Publisher,Year,genre_0_share
201,Pub X,2010,0.9
`
	path := writePanelCSV(t, csvData)

	loader := NewLoader(Publisher, nil)
	p, _, err := loader.Load(context.Background(), path, LoadOptions{})
	require.NoError(t, err)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, "201", p.Rows[0].EntityID)
	assert.Equal(t, Publisher, p.Rows[0].EntityType)
}
