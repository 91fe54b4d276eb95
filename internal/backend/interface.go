package backend

import (
	"context"

	"gigbook/internal/core"
)

// Ports for the persistence collaborators. Each store loads and saves
// independently; saves are full overwrites (last write wins).
type (
	VenueRepository interface {
		LoadVenues(ctx context.Context) ([]core.Venue, error)
		SaveVenues(ctx context.Context, venues []core.Venue) error
	}

	BandRepository interface {
		LoadBands(ctx context.Context) ([]core.Band, error)
		SaveBands(ctx context.Context, bands []core.Band) error
	}

	EventRepository interface {
		LoadEvents(ctx context.Context) ([]core.Event, error)
		SaveEvents(ctx context.Context, events []core.Event) error
	}
)

// Repository is the unified persistence interface a backend provides.
type Repository interface {
	VenueRepository
	BandRepository
	EventRepository
	Close() error
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// JSON specific
	DataDir string

	// SQLite specific
	SQLiteDBPath string
}

// BackendType represents the type of backend
type BackendType string

const (
	JSONBackend   BackendType = "json"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case JSONBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
