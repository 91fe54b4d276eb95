// Package services orchestrates store mutations with persistence and the
// optional booking ledger. Each mutating operation saves the affected
// store in full afterwards, so the files always mirror memory.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"gigbook/internal/backend"
	"gigbook/internal/core"
	"gigbook/internal/log"
	"gigbook/internal/store"
)

// RegistryService owns registration, update, deactivation, and listing of
// venues and bands.
type RegistryService struct {
	venues *store.VenueStore
	bands  *store.BandStore
	repo   backend.Repository
}

func NewRegistryService(venues *store.VenueStore, bands *store.BandStore, repo backend.Repository) *RegistryService {
	return &RegistryService{
		venues: venues,
		bands:  bands,
		repo:   repo,
	}
}

// RegisterVenue validates and stores a new venue, then persists the store.
func (s *RegistryService) RegisterVenue(ctx context.Context, v core.Venue) error {
	v.Code = core.NormalizeCode(v.Code)
	v.Active = true
	if err := v.Validate(); err != nil {
		return err
	}
	if err := s.venues.Add(v); err != nil {
		return err
	}
	if err := s.saveVenues(ctx); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Venue registered", log.FieldVenueCode, v.Code, "name", v.Name)
	return nil
}

// UpdateVenue replaces an active venue's record wholesale: either every
// field lands or none do.
func (s *RegistryService) UpdateVenue(ctx context.Context, v core.Venue) error {
	v.Code = core.NormalizeCode(v.Code)
	if _, err := s.venues.Lookup(v.Code); err != nil {
		return err
	}
	v.Active = true
	if err := v.Validate(); err != nil {
		return err
	}
	if err := s.venues.Replace(v); err != nil {
		return err
	}
	if err := s.saveVenues(ctx); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Venue updated", log.FieldVenueCode, v.Code)
	return nil
}

// DeactivateVenue soft-deletes a venue. The returned flag is false when it
// was already inactive (reported, not an error).
func (s *RegistryService) DeactivateVenue(ctx context.Context, code string) (bool, error) {
	changed, err := s.venues.Deactivate(code)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}
	if err := s.saveVenues(ctx); err != nil {
		return true, err
	}
	slog.InfoContext(ctx, "Venue deactivated", log.FieldVenueCode, core.NormalizeCode(code))
	return true, nil
}

// LookupVenue resolves an active venue for update/booking flows.
func (s *RegistryService) LookupVenue(code string) (core.Venue, error) {
	return s.venues.Lookup(code)
}

// ActiveVenues lists bookable venues in registration order.
func (s *RegistryService) ActiveVenues() []core.Venue {
	return s.venues.Active()
}

// AllVenues returns every venue, inactive included, for report joins.
func (s *RegistryService) AllVenues() []core.Venue {
	return s.venues.All()
}

// RegisterBand validates and stores a new band, then persists the store.
func (s *RegistryService) RegisterBand(ctx context.Context, b core.Band) error {
	b.Code = core.NormalizeCode(b.Code)
	b.Active = true
	if err := b.Validate(); err != nil {
		return err
	}
	if err := s.bands.Add(b); err != nil {
		return err
	}
	if err := s.saveBands(ctx); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Band registered", log.FieldBandCode, b.Code, "name", b.Name)
	return nil
}

// UpdateBand replaces an active band's record wholesale.
func (s *RegistryService) UpdateBand(ctx context.Context, b core.Band) error {
	b.Code = core.NormalizeCode(b.Code)
	if _, err := s.bands.Lookup(b.Code); err != nil {
		return err
	}
	b.Active = true
	if err := b.Validate(); err != nil {
		return err
	}
	if err := s.bands.Replace(b); err != nil {
		return err
	}
	if err := s.saveBands(ctx); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Band updated", log.FieldBandCode, b.Code)
	return nil
}

// DeactivateBand soft-deletes a band with the same no-op reporting as
// DeactivateVenue.
func (s *RegistryService) DeactivateBand(ctx context.Context, code string) (bool, error) {
	changed, err := s.bands.Deactivate(code)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}
	if err := s.saveBands(ctx); err != nil {
		return true, err
	}
	slog.InfoContext(ctx, "Band deactivated", log.FieldBandCode, core.NormalizeCode(code))
	return true, nil
}

// LookupBand resolves an active band for update/booking flows.
func (s *RegistryService) LookupBand(code string) (core.Band, error) {
	return s.bands.Lookup(code)
}

// ActiveBands lists bookable bands in registration order.
func (s *RegistryService) ActiveBands() []core.Band {
	return s.bands.Active()
}

// AllBands returns every band, inactive included, for report joins.
func (s *RegistryService) AllBands() []core.Band {
	return s.bands.All()
}

func (s *RegistryService) saveVenues(ctx context.Context) error {
	if err := s.repo.SaveVenues(ctx, s.venues.All()); err != nil {
		return fmt.Errorf("save venues: %w", err)
	}
	return nil
}

func (s *RegistryService) saveBands(ctx context.Context) error {
	if err := s.repo.SaveBands(ctx, s.bands.All()); err != nil {
		return fmt.Errorf("save bands: %w", err)
	}
	return nil
}
