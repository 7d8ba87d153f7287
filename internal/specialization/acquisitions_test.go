package specialization

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAcquisitionsCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "acquisitions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAcquisitions(t *testing.T) {
	csvData := `publisher_id,developer_id,acquisition_date
p1,d1,2015-06-01
p2,d2,2018
p1,d3,2020-03
`
	path := writeAcquisitionsCSV(t, csvData)

	acquisitions, err := LoadAcquisitions(path)
	require.NoError(t, err)
	require.Len(t, acquisitions, 3)

	assert.Equal(t, "p1", acquisitions[0].PublisherID)
	assert.Equal(t, "d1", acquisitions[0].DeveloperID)
	assert.Equal(t, time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC), acquisitions[0].Date)
	assert.Equal(t, 2015, acquisitions[0].Year())

	// Year-only and year-month dates are accepted.
	assert.Equal(t, 2018, acquisitions[1].Year())
	assert.Equal(t, 2020, acquisitions[2].Year())
}

func TestLoadAcquisitionsMissingColumn(t *testing.T) {
	path := writeAcquisitionsCSV(t, "publisher_id,developer_id\np1,d1\n")
	_, err := LoadAcquisitions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestLoadAcquisitionsBadDate(t *testing.T) {
	path := writeAcquisitionsCSV(t, "publisher_id,developer_id,acquisition_date\np1,d1,someday\n")
	_, err := LoadAcquisitions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unparseable acquisition date")
}

func TestLoadAcquisitionsEmpty(t *testing.T) {
	path := writeAcquisitionsCSV(t, "publisher_id,developer_id,acquisition_date\n")
	_, err := LoadAcquisitions(path)
	require.Error(t, err)
}
