package catalog

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vgpanel/internal/panel"
)

func newTestCatalog(t *testing.T, payloads map[int64]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE games (id INTEGER PRIMARY KEY, title TEXT, raw_data TEXT)`)
	require.NoError(t, err)

	for id, payload := range payloads {
		_, err = db.Exec(`INSERT INTO games (id, title, raw_data) VALUES (?, ?, ?)`,
			id, "Game", payload)
		require.NoError(t, err)
	}
	return path
}

func TestExtractGames(t *testing.T) {
	payloads := map[int64]string{
		1: `{
			"developers": [{"id": 10, "name": "Dev Ten"}, {"id": 10, "name": "Dev Ten"}],
			"publishers": [{"id": 20, "name": "Pub Twenty"}],
			"genres": [{"genre_name": "Action"}, {"genre_name": "RPG"}, {"genre_name": "Action"}],
			"platforms": [
				{"releases": [{"release_date": "2001-11-20"}]},
				{"releases": [{"release_date": "1999-03-01"}, {"release_date": "bad date"}]}
			]
		}`,
		2: `not valid json`,
		3: `{
			"developers": [{"id": 11, "name": "Dev Eleven"}, {"name": "no id"}],
			"publishers": [],
			"genres": [],
			"platforms": []
		}`,
	}
	dbPath := newTestCatalog(t, payloads)

	store, err := Open(dbPath, nil)
	require.NoError(t, err)
	defer store.Close()

	extraction, err := store.ExtractGames(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, extraction.Stats.GamesRead)
	assert.Equal(t, 1, extraction.Stats.ParseErrors)
	assert.Equal(t, 1, extraction.Stats.NoYear)

	var game1 Game
	for _, g := range extraction.Games {
		if g.ID == 1 {
			game1 = g
		}
	}
	require.NotZero(t, game1.ID)

	// Duplicate firm links and genre tags collapse; the earliest sane
	// release year wins.
	assert.Equal(t, []string{"10"}, game1.DeveloperIDs)
	assert.Equal(t, []string{"20"}, game1.PublisherIDs)
	assert.Equal(t, []string{"Action", "RPG"}, game1.Genres)
	assert.Equal(t, 1999, game1.ReleaseYear)

	assert.Equal(t, "Dev Ten", extraction.Names(panel.Developer)["10"])
	assert.Equal(t, "Pub Twenty", extraction.Names(panel.Publisher)["20"])
}

func TestExtractGamesMissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE other (id INTEGER)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	store, err := Open(path, nil)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.ExtractGames(context.Background())
	require.Error(t, err)
}
