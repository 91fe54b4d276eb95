package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gigbook/internal/amqp"
	"gigbook/internal/backend"
	"gigbook/internal/core"
	"gigbook/internal/log"
	"gigbook/internal/store"
)

// Ledger publishes booked events to the external ledger pipeline.
// *amqp.Client satisfies it; nil means the pipeline is disabled.
type Ledger interface {
	PublishEventBooked(ctx context.Context, msg *amqp.EventBookedMessage) error
}

// BookingService validates cross-references, prices the booking, appends
// it to the event log, and persists. The event's cost is computed once
// here and never recomputed.
type BookingService struct {
	venues *store.VenueStore
	bands  *store.BandStore
	events *store.EventStore
	repo   backend.Repository
	ledger Ledger
}

func NewBookingService(venues *store.VenueStore, bands *store.BandStore, events *store.EventStore, repo backend.Repository, ledger Ledger) *BookingService {
	return &BookingService{
		venues: venues,
		bands:  bands,
		events: events,
		repo:   repo,
		ledger: ledger,
	}
}

// BookEvent registers a new event. Both referenced records must exist and
// be active at booking time; nothing is re-checked later. A failed
// validation leaves the event store untouched.
func (s *BookingService) BookEvent(ctx context.Context, venueCode, bandCode string, durationCentiHours int64, now time.Time) (core.Event, error) {
	if _, err := s.venues.Lookup(venueCode); err != nil {
		return core.Event{}, fmt.Errorf("venue: %w", err)
	}
	band, err := s.bands.Lookup(bandCode)
	if err != nil {
		return core.Event{}, fmt.Errorf("band: %w", err)
	}
	if durationCentiHours <= 0 {
		return core.Event{}, core.ErrNotPositive
	}

	e := core.Event{
		Code:               s.events.NextCode(),
		Timestamp:          core.FormatTimestamp(now),
		VenueCode:          core.NormalizeCode(venueCode),
		BandCode:           core.NormalizeCode(bandCode),
		DurationCentiHours: durationCentiHours,
		TotalCost:          core.EventCost(band.HalfHourRate, durationCentiHours),
	}
	if err := e.Validate(); err != nil {
		return core.Event{}, err
	}
	if err := s.events.Append(e); err != nil {
		return core.Event{}, err
	}
	if err := s.repo.SaveEvents(ctx, s.events.All()); err != nil {
		return core.Event{}, fmt.Errorf("save events: %w", err)
	}

	slog.InfoContext(ctx, "Event booked",
		log.FieldEventCode, e.Code,
		log.FieldVenueCode, e.VenueCode,
		log.FieldBandCode, e.BandCode,
		log.FieldDuration, e.DurationCentiHours,
		log.FieldCostCents, e.TotalCost.Cents)

	// The booking stands on its own; a ledger outage only costs the
	// spreadsheet row, so publish failures are logged and swallowed.
	s.publishBooked(ctx, e)

	return e, nil
}

// Events returns the booking log snapshot for reporting.
func (s *BookingService) Events() []core.Event {
	return s.events.All()
}

func (s *BookingService) publishBooked(ctx context.Context, e core.Event) {
	if s.ledger == nil {
		return
	}
	msg := amqp.NewEventBookedMessage(e.Code, e.Timestamp, e.VenueCode, e.BandCode,
		e.DurationCentiHours, e.TotalCost.Cents)
	if err := s.ledger.PublishEventBooked(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish booked event message",
			log.FieldEventCode, e.Code, log.FieldError, err)
	}
}
