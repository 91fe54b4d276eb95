// Package storage provides the persistence backends: flat JSON files
// (the default) and SQLite. Both load into and save from plain record
// slices; the in-memory stores own everything in between.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gigbook/internal/core"
	"gigbook/internal/log"
)

const (
	venuesFile = "venues.json"
	bandsFile  = "bands.json"
	eventsFile = "events.json"
)

// JSONRepository persists each store to its own file under a data
// directory. Missing files mean an empty store; a malformed file is
// reported with a warning and treated as empty rather than failing
// startup. Saves rewrite the whole file.
type JSONRepository struct {
	dir string
}

func NewJSONRepository(dir string) (*JSONRepository, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &JSONRepository{dir: dir}, nil
}

func (r *JSONRepository) Close() error { return nil }

type venueDoc struct {
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	Capacity        int64    `json:"capacity"`
	Location        string   `json:"location"`
	RentalCostCents int64    `json:"rental_cost_cents"`
	Email           string   `json:"email"`
	Services        []string `json:"services"`
	Active          bool     `json:"active"`
}

type bandDoc struct {
	Code              string   `json:"code"`
	Name              string   `json:"name"`
	Genre             string   `json:"genre"`
	HalfHourRateCents int64    `json:"half_hour_rate_cents"`
	Email             string   `json:"email"`
	Members           []string `json:"members"`
	Active            bool     `json:"active"`
}

type eventDoc struct {
	Code               string `json:"code"`
	Timestamp          string `json:"timestamp"`
	VenueCode          string `json:"venue_code"`
	BandCode           string `json:"band_code"`
	DurationCentiHours int64  `json:"duration_centihours"`
	TotalCostCents     int64  `json:"total_cost_cents"`
}

func (r *JSONRepository) LoadVenues(ctx context.Context) ([]core.Venue, error) {
	var docs []venueDoc
	if err := r.loadFile(ctx, venuesFile, &docs); err != nil {
		return nil, err
	}
	venues := make([]core.Venue, len(docs))
	for i, d := range docs {
		venues[i] = core.Venue{
			Code:       d.Code,
			Name:       d.Name,
			Capacity:   d.Capacity,
			Location:   d.Location,
			RentalCost: core.Money{Cents: d.RentalCostCents},
			Email:      d.Email,
			Services:   d.Services,
			Active:     d.Active,
		}
	}
	return venues, nil
}

func (r *JSONRepository) SaveVenues(ctx context.Context, venues []core.Venue) error {
	docs := make([]venueDoc, len(venues))
	for i, v := range venues {
		docs[i] = venueDoc{
			Code:            v.Code,
			Name:            v.Name,
			Capacity:        v.Capacity,
			Location:        v.Location,
			RentalCostCents: v.RentalCost.Cents,
			Email:           v.Email,
			Services:        v.Services,
			Active:          v.Active,
		}
	}
	return r.saveFile(ctx, venuesFile, docs)
}

func (r *JSONRepository) LoadBands(ctx context.Context) ([]core.Band, error) {
	var docs []bandDoc
	if err := r.loadFile(ctx, bandsFile, &docs); err != nil {
		return nil, err
	}
	bands := make([]core.Band, len(docs))
	for i, d := range docs {
		bands[i] = core.Band{
			Code:         d.Code,
			Name:         d.Name,
			Genre:        d.Genre,
			HalfHourRate: core.Money{Cents: d.HalfHourRateCents},
			Email:        d.Email,
			Members:      d.Members,
			Active:       d.Active,
		}
	}
	return bands, nil
}

func (r *JSONRepository) SaveBands(ctx context.Context, bands []core.Band) error {
	docs := make([]bandDoc, len(bands))
	for i, b := range bands {
		docs[i] = bandDoc{
			Code:              b.Code,
			Name:              b.Name,
			Genre:             b.Genre,
			HalfHourRateCents: b.HalfHourRate.Cents,
			Email:             b.Email,
			Members:           b.Members,
			Active:            b.Active,
		}
	}
	return r.saveFile(ctx, bandsFile, docs)
}

func (r *JSONRepository) LoadEvents(ctx context.Context) ([]core.Event, error) {
	var docs []eventDoc
	if err := r.loadFile(ctx, eventsFile, &docs); err != nil {
		return nil, err
	}
	events := make([]core.Event, len(docs))
	for i, d := range docs {
		events[i] = core.Event{
			Code:               d.Code,
			Timestamp:          d.Timestamp,
			VenueCode:          d.VenueCode,
			BandCode:           d.BandCode,
			DurationCentiHours: d.DurationCentiHours,
			TotalCost:          core.Money{Cents: d.TotalCostCents},
		}
	}
	return events, nil
}

func (r *JSONRepository) SaveEvents(ctx context.Context, events []core.Event) error {
	docs := make([]eventDoc, len(events))
	for i, e := range events {
		docs[i] = eventDoc{
			Code:               e.Code,
			Timestamp:          e.Timestamp,
			VenueCode:          e.VenueCode,
			BandCode:           e.BandCode,
			DurationCentiHours: e.DurationCentiHours,
			TotalCostCents:     e.TotalCost.Cents,
		}
	}
	return r.saveFile(ctx, eventsFile, docs)
}

func (r *JSONRepository) loadFile(ctx context.Context, name string, out any) error {
	path := filepath.Join(r.dir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		// A damaged file must not take the whole system down; start empty
		// and let the next save overwrite it.
		slog.WarnContext(ctx, "Data file is malformed, starting with an empty store",
			log.FieldPath, path, log.FieldError, err)
		return nil
	}
	return nil
}

func (r *JSONRepository) saveFile(ctx context.Context, name string, docs any) error {
	path := filepath.Join(r.dir, name)
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	slog.DebugContext(ctx, "Store saved", log.FieldPath, path)
	return nil
}
