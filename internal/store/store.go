// Package store keeps the in-memory record collections the rest of the
// system operates on. Registries map canonical code to record and preserve
// insertion order; venues and bands are soft-deleted via the active flag,
// events are append-only.
package store

import (
	"fmt"

	"gigbook/internal/core"
)

// Record is the shape a registry entry must have: a canonical code, an
// active flag, and a way to produce a deactivated copy of itself.
type Record[T any] interface {
	RecordCode() string
	IsActive() bool
	Deactivated() T
}

// Registry is an insertion-ordered code-to-record collection with
// soft delete. The venue and band stores are the same structure over
// different record types.
type Registry[T Record[T]] struct {
	byCode map[string]T
	order  []string
}

type (
	VenueStore = Registry[core.Venue]
	BandStore  = Registry[core.Band]
)

func NewVenueStore() *VenueStore { return newRegistry[core.Venue]() }
func NewBandStore() *BandStore   { return newRegistry[core.Band]() }

func newRegistry[T Record[T]]() *Registry[T] {
	return &Registry[T]{byCode: make(map[string]T)}
}

// CheckNewCode fails with ErrDuplicateCode if the code is already taken,
// active or not.
func (r *Registry[T]) CheckNewCode(code string) error {
	key := core.NormalizeCode(code)
	if _, ok := r.byCode[key]; ok {
		return fmt.Errorf("%s: %w", key, core.ErrDuplicateCode)
	}
	return nil
}

// Add inserts a new record. The record's code must not be in use.
func (r *Registry[T]) Add(rec T) error {
	key := core.NormalizeCode(rec.RecordCode())
	if err := r.CheckNewCode(key); err != nil {
		return err
	}
	r.byCode[key] = rec
	r.order = append(r.order, key)
	return nil
}

// Lookup resolves a code to an active record, distinguishing absent
// (ErrNotFound) from present-but-deactivated (ErrInactive) so callers can
// report each case.
func (r *Registry[T]) Lookup(code string) (T, error) {
	var zero T
	key := core.NormalizeCode(code)
	rec, ok := r.byCode[key]
	if !ok {
		return zero, fmt.Errorf("%s: %w", key, core.ErrNotFound)
	}
	if !rec.IsActive() {
		return zero, fmt.Errorf("%s: %w", key, core.ErrInactive)
	}
	return rec, nil
}

// Get returns the record for a code regardless of its active flag.
func (r *Registry[T]) Get(code string) (T, bool) {
	rec, ok := r.byCode[core.NormalizeCode(code)]
	return rec, ok
}

// Replace swaps the stored record for an existing code. The whole record is
// replaced at once so an aborted update never leaves partial fields behind.
func (r *Registry[T]) Replace(rec T) error {
	key := core.NormalizeCode(rec.RecordCode())
	if _, ok := r.byCode[key]; !ok {
		return fmt.Errorf("%s: %w", key, core.ErrNotFound)
	}
	r.byCode[key] = rec
	return nil
}

// Deactivate clears the active flag. It returns false with no error when
// the record was already inactive, so the second deactivation is a no-op
// the caller can report as "already inactive".
func (r *Registry[T]) Deactivate(code string) (bool, error) {
	key := core.NormalizeCode(code)
	rec, ok := r.byCode[key]
	if !ok {
		return false, fmt.Errorf("%s: %w", key, core.ErrNotFound)
	}
	if !rec.IsActive() {
		return false, nil
	}
	r.byCode[key] = rec.Deactivated()
	return true, nil
}

// Active returns the active records in insertion order.
func (r *Registry[T]) Active() []T {
	out := make([]T, 0, len(r.order))
	for _, key := range r.order {
		if rec := r.byCode[key]; rec.IsActive() {
			out = append(out, rec)
		}
	}
	return out
}

// All returns every record in insertion order, inactive ones included.
func (r *Registry[T]) All() []T {
	out := make([]T, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.byCode[key])
	}
	return out
}

// Len returns the number of records, active or not.
func (r *Registry[T]) Len() int {
	return len(r.order)
}

// Reset replaces the registry contents, keeping the given order. Used when
// loading from persistence.
func (r *Registry[T]) Reset(recs []T) error {
	fresh := newRegistry[T]()
	for _, rec := range recs {
		if err := fresh.Add(rec); err != nil {
			return err
		}
	}
	*r = *fresh
	return nil
}

// EventStore is the append-only booking log.
type EventStore struct {
	events []core.Event
	byCode map[string]int
}

func NewEventStore() *EventStore {
	return &EventStore{byCode: make(map[string]int)}
}

// NextCode derives the next event code from the current count: "E" plus a
// zero-padded sequence number. An internal sequence, not a globally unique
// identifier.
func (s *EventStore) NextCode() string {
	return fmt.Sprintf("E%03d", len(s.events)+1)
}

// Append adds a booking to the log. Events are never modified or removed.
func (s *EventStore) Append(e core.Event) error {
	key := core.NormalizeCode(e.Code)
	if _, ok := s.byCode[key]; ok {
		return fmt.Errorf("%s: %w", key, core.ErrDuplicateCode)
	}
	s.byCode[key] = len(s.events)
	s.events = append(s.events, e)
	return nil
}

// Get returns an event by code.
func (s *EventStore) Get(code string) (core.Event, bool) {
	i, ok := s.byCode[core.NormalizeCode(code)]
	if !ok {
		return core.Event{}, false
	}
	return s.events[i], true
}

// All returns the bookings in insertion order.
func (s *EventStore) All() []core.Event {
	return append([]core.Event(nil), s.events...)
}

// Len returns the number of bookings.
func (s *EventStore) Len() int {
	return len(s.events)
}

// Reset replaces the log contents. Used when loading from persistence.
func (s *EventStore) Reset(events []core.Event) error {
	fresh := NewEventStore()
	for _, e := range events {
		if err := fresh.Append(e); err != nil {
			return err
		}
	}
	*s = *fresh
	return nil
}
