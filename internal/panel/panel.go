package panel

import (
	"errors"
	"fmt"
)

// ErrSchemaMismatch indicates the input table does not match the expected
// panel layout. The run must stop before any partial processing.
var ErrSchemaMismatch = errors.New("panel schema mismatch")

// EntityType distinguishes the two firm-side panels
type EntityType string

const (
	// Developer marks rows from the developer genre-share panel
	Developer EntityType = "developer"
	// Publisher marks rows from the publisher genre-share panel
	Publisher EntityType = "publisher"
)

// String returns the string representation of the entity type
func (e EntityType) String() string {
	return string(e)
}

// IDColumn returns the entity key column name in the panel CSV
func (e EntityType) IDColumn() string {
	return string(e) + "_id"
}

// NameColumn returns the display-name column in the panel CSV
func (e EntityType) NameColumn() string {
	switch e {
	case Developer:
		return "Developer"
	case Publisher:
		return "Publisher"
	default:
		return ""
	}
}

// ParseEntityType parses an entity type from its string form
func ParseEntityType(s string) (EntityType, error) {
	switch s {
	case "developer":
		return Developer, nil
	case "publisher":
		return Publisher, nil
	default:
		return "", fmt.Errorf("unknown entity type %q", s)
	}
}

// Schema describes the fixed genre label set shared by every row of a panel.
// Labels are ordered as they appear in the CSV header and never inferred
// per row.
type Schema struct {
	Genres []string
}

// NumGenres returns the number of genre slots in the panel
func (s *Schema) NumGenres() int {
	return len(s.Genres)
}

// Row is one (entity, year) observation with its raw genre-share vector.
// Raw shares are multi-label and may sum above 1.
type Row struct {
	EntityID   string
	EntityName string
	EntityType EntityType
	Year       int
	Shares     map[string]float64
}

// SharesSum returns the sum of the row's genre shares
func (r Row) SharesSum() float64 {
	var sum float64
	for _, v := range r.Shares {
		sum += v
	}
	return sum
}

// ActiveGenres returns the count of genres with strictly positive share
func (r Row) ActiveGenres() int {
	n := 0
	for _, v := range r.Shares {
		if v > 0 {
			n++
		}
	}
	return n
}

// Panel is a validated in-memory genre-share panel for one entity type
type Panel struct {
	Type   EntityType
	Schema Schema
	Rows   []Row
}
