package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"vgpanel/internal/panel"
)

// Game is one catalog title with its firm links and genre tags. A game is
// counted once per firm regardless of how many platform re-releases it had;
// ReleaseYear is the earliest release year across platforms, 0 if unknown.
type Game struct {
	ID           int64
	Title        string
	ReleaseYear  int
	DeveloperIDs []string
	PublisherIDs []string
	Genres       []string
}

// FirmIDs returns the game's firm links for the given entity type
func (g Game) FirmIDs(entityType panel.EntityType) []string {
	if entityType == panel.Publisher {
		return g.PublisherIDs
	}
	return g.DeveloperIDs
}

// Store reads the game catalog from its SQLite database
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens the catalog database read-only
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// rawGame mirrors the catalog's per-game JSON payload
type rawGame struct {
	Developers []rawCompany  `json:"developers"`
	Publishers []rawCompany  `json:"publishers"`
	Platforms  []rawPlatform `json:"platforms"`
	Genres     []rawGenre    `json:"genres"`
}

type rawCompany struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

type rawPlatform struct {
	Releases []rawRelease `json:"releases"`
}

type rawRelease struct {
	ReleaseDate string `json:"release_date"`
}

type rawGenre struct {
	GenreName string `json:"genre_name"`
}

// ExtractStats reports what ExtractGames read and skipped
type ExtractStats struct {
	GamesRead   int
	ParseErrors int
	NoYear      int
}

// Extraction is the full result of one catalog scan: the games plus the
// firm id -> display name mappings collected along the way.
type Extraction struct {
	Games          []Game
	DeveloperNames map[string]string
	PublisherNames map[string]string
	Stats          ExtractStats
}

// Names returns the firm name mapping for an entity type
func (e *Extraction) Names(entityType panel.EntityType) map[string]string {
	if entityType == panel.Publisher {
		return e.PublisherNames
	}
	return e.DeveloperNames
}

// ExtractGames reads every game from the catalog, parsing firm links,
// genre tags and the earliest release year from the stored JSON payload.
// Games with unparseable JSON are skipped and counted, not fatal; the
// caller decides whether the error rate is acceptable.
func (s *Store) ExtractGames(ctx context.Context) (*Extraction, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, "SELECT id, title, raw_data FROM games")
	if err != nil {
		return nil, fmt.Errorf("query games table: %w", err)
	}
	defer rows.Close()

	out := &Extraction{
		DeveloperNames: make(map[string]string),
		PublisherNames: make(map[string]string),
	}

	for rows.Next() {
		var (
			id      int64
			title   sql.NullString
			rawText sql.NullString
		)
		if err := rows.Scan(&id, &title, &rawText); err != nil {
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		if !rawText.Valid || rawText.String == "" {
			out.Stats.ParseErrors++
			continue
		}

		var raw rawGame
		if err := json.Unmarshal([]byte(rawText.String), &raw); err != nil {
			out.Stats.ParseErrors++
			if out.Stats.ParseErrors <= 5 {
				s.logger.WarnContext(ctx, "failed to parse game payload",
					"game_id", id, "error", err)
			}
			continue
		}

		game := Game{
			ID:           id,
			Title:        title.String,
			DeveloperIDs: companyIDs(raw.Developers, out.DeveloperNames),
			PublisherIDs: companyIDs(raw.Publishers, out.PublisherNames),
			Genres:       genreNames(raw.Genres),
			ReleaseYear:  earliestReleaseYear(raw.Platforms),
		}
		if game.ReleaseYear == 0 {
			out.Stats.NoYear++
		}

		out.Games = append(out.Games, game)
		out.Stats.GamesRead++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games table: %w", err)
	}

	s.logger.InfoContext(ctx, "catalog games extracted",
		"games", out.Stats.GamesRead,
		"parse_errors", out.Stats.ParseErrors,
		"missing_year", out.Stats.NoYear,
		"elapsed", time.Since(start).String(),
	)

	return out, nil
}

// companyIDs deduplicates the firm links of one game and records each
// firm's display name
func companyIDs(companies []rawCompany, names map[string]string) []string {
	var ids []string
	seen := make(map[int64]struct{}, len(companies))
	for _, c := range companies {
		if c.ID == nil {
			continue
		}
		if _, dup := seen[*c.ID]; dup {
			continue
		}
		seen[*c.ID] = struct{}{}
		id := strconv.FormatInt(*c.ID, 10)
		ids = append(ids, id)
		if c.Name != "" {
			names[id] = c.Name
		}
	}
	return ids
}

func genreNames(genres []rawGenre) []string {
	var names []string
	seen := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		if g.GenreName == "" {
			continue
		}
		if _, dup := seen[g.GenreName]; dup {
			continue
		}
		seen[g.GenreName] = struct{}{}
		names = append(names, g.GenreName)
	}
	return names
}

// earliestReleaseYear picks the earliest sane release year across all
// platform releases. Catalog sanity window is [1970, 2026].
func earliestReleaseYear(platforms []rawPlatform) int {
	earliest := 0
	for _, p := range platforms {
		for _, r := range p.Releases {
			year, ok := ParseYear(r.ReleaseDate)
			if !ok || year < 1970 || year > 2026 {
				continue
			}
			if earliest == 0 || year < earliest {
				earliest = year
			}
		}
	}
	return earliest
}
