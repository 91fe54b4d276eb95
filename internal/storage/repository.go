package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gigbook/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository keeps the three stores in one database file. Row ids
// preserve insertion order; a save replaces a store's table wholesale,
// matching the flat-file overwrite semantics.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) LoadVenues(ctx context.Context) ([]core.Venue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT code, name, capacity, location, rental_cost_cents, email, services, active
		 FROM venues ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query venues: %w", err)
	}
	defer rows.Close()

	var venues []core.Venue
	for rows.Next() {
		var v core.Venue
		var services string
		var active int64
		if err := rows.Scan(&v.Code, &v.Name, &v.Capacity, &v.Location,
			&v.RentalCost.Cents, &v.Email, &services, &active); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		if err := json.Unmarshal([]byte(services), &v.Services); err != nil {
			return nil, fmt.Errorf("decode venue services: %w", err)
		}
		v.Active = active != 0
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *SQLiteRepository) SaveVenues(ctx context.Context, venues []core.Venue) error {
	return r.replaceAll(ctx, "venues", func(tx *sql.Tx) error {
		for _, v := range venues {
			services, err := json.Marshal(emptyAsList(v.Services))
			if err != nil {
				return fmt.Errorf("encode venue services: %w", err)
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO venues (code, name, capacity, location, rental_cost_cents, email, services, active)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				v.Code, v.Name, v.Capacity, v.Location, v.RentalCost.Cents,
				v.Email, string(services), boolToInt(v.Active))
			if err != nil {
				return fmt.Errorf("insert venue %s: %w", v.Code, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) LoadBands(ctx context.Context) ([]core.Band, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT code, name, genre, half_hour_rate_cents, email, members, active
		 FROM bands ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query bands: %w", err)
	}
	defer rows.Close()

	var bands []core.Band
	for rows.Next() {
		var b core.Band
		var members string
		var active int64
		if err := rows.Scan(&b.Code, &b.Name, &b.Genre,
			&b.HalfHourRate.Cents, &b.Email, &members, &active); err != nil {
			return nil, fmt.Errorf("scan band: %w", err)
		}
		if err := json.Unmarshal([]byte(members), &b.Members); err != nil {
			return nil, fmt.Errorf("decode band members: %w", err)
		}
		b.Active = active != 0
		bands = append(bands, b)
	}
	return bands, rows.Err()
}

func (r *SQLiteRepository) SaveBands(ctx context.Context, bands []core.Band) error {
	return r.replaceAll(ctx, "bands", func(tx *sql.Tx) error {
		for _, b := range bands {
			members, err := json.Marshal(emptyAsList(b.Members))
			if err != nil {
				return fmt.Errorf("encode band members: %w", err)
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO bands (code, name, genre, half_hour_rate_cents, email, members, active)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				b.Code, b.Name, b.Genre, b.HalfHourRate.Cents,
				b.Email, string(members), boolToInt(b.Active))
			if err != nil {
				return fmt.Errorf("insert band %s: %w", b.Code, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) LoadEvents(ctx context.Context) ([]core.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT code, timestamp, venue_code, band_code, duration_centihours, total_cost_cents
		 FROM events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []core.Event
	for rows.Next() {
		var e core.Event
		if err := rows.Scan(&e.Code, &e.Timestamp, &e.VenueCode, &e.BandCode,
			&e.DurationCentiHours, &e.TotalCost.Cents); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *SQLiteRepository) SaveEvents(ctx context.Context, events []core.Event) error {
	return r.replaceAll(ctx, "events", func(tx *sql.Tx) error {
		for _, e := range events {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO events (code, timestamp, venue_code, band_code, duration_centihours, total_cost_cents)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				e.Code, e.Timestamp, e.VenueCode, e.BandCode,
				e.DurationCentiHours, e.TotalCost.Cents)
			if err != nil {
				return fmt.Errorf("insert event %s: %w", e.Code, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) replaceAll(ctx context.Context, table string, insert func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", table, err)
	}
	return nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// emptyAsList keeps nil slices encoding as [] instead of null.
func emptyAsList(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
