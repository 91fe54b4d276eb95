package backend

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"gigbook/internal/storage"
	"gigbook/internal/store"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// Factory creates repositories based on configuration
type Factory interface {
	CreateRepository(ctx context.Context, config Config) (Repository, error)
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateRepository implements Factory.CreateRepository
func (f *DefaultFactory) CreateRepository(_ context.Context, config Config) (Repository, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return repo, nil
	case JSONBackend:
		repo, err := storage.NewJSONRepository(config.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JSON repository: %w", err)
		}
		f.logger.Info("Initialized JSON backend", "data_directory", config.DataDir)
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

// LoadStores fills the three in-memory stores from a repository. The files
// are independent, so they load concurrently.
func LoadStores(ctx context.Context, repo Repository, venues *store.VenueStore, bands *store.BandStore, events *store.EventStore) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := repo.LoadVenues(ctx)
		if err != nil {
			return fmt.Errorf("load venues: %w", err)
		}
		return venues.Reset(recs)
	})
	g.Go(func() error {
		recs, err := repo.LoadBands(ctx)
		if err != nil {
			return fmt.Errorf("load bands: %w", err)
		}
		return bands.Reset(recs)
	})
	g.Go(func() error {
		recs, err := repo.LoadEvents(ctx)
		if err != nil {
			return fmt.Errorf("load events: %w", err)
		}
		return events.Reset(recs)
	})
	return g.Wait()
}
