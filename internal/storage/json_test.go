package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gigbook/internal/core"
)

func sampleVenues() []core.Venue {
	return []core.Venue{
		{
			Code: "S001", Name: "Gran Salon", Capacity: 150, Location: "Centro",
			RentalCost: core.Money{Cents: 5000000}, Email: "salon@example.com",
			Services: []string{"catering", "sonido"}, Active: true,
		},
		{
			Code: "S002", Name: "Patio Norte", Capacity: 80, Location: "Norte",
			RentalCost: core.Money{Cents: 2500000}, Email: "patio@example.com",
			Services: []string{}, Active: false,
		},
	}
}

func sampleBands() []core.Band {
	return []core.Band{
		{
			Code: "B001", Name: "Los Fuegos", Genre: "rock",
			HalfHourRate: core.Money{Cents: 8000000}, Email: "fuegos@example.com",
			Members: []string{"voz", "guitarra", "bateria"}, Active: true,
		},
	}
}

func sampleEvents() []core.Event {
	return []core.Event{
		{
			Code: "E001", Timestamp: "2025.11.15 21:30:00", VenueCode: "S001",
			BandCode: "B001", DurationCentiHours: 300,
			TotalCost: core.Money{Cents: 48000000},
		},
		{
			Code: "E002", Timestamp: "2025.12.01 20:00:00", VenueCode: "S002",
			BandCode: "B001", DurationCentiHours: 250,
			TotalCost: core.Money{Cents: 40000000},
		},
	}
}

func TestJSONRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := NewJSONRepository(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer repo.Close()

	venues, bands, events := sampleVenues(), sampleBands(), sampleEvents()
	if err := repo.SaveVenues(ctx, venues); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveBands(ctx, bands); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveEvents(ctx, events); err != nil {
		t.Fatal(err)
	}

	gotVenues, err := repo.LoadVenues(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(gotVenues, venues) {
		t.Fatalf("venues round-trip mismatch:\nwant %+v\ngot  %+v", venues, gotVenues)
	}
	gotBands, err := repo.LoadBands(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(gotBands, bands) {
		t.Fatalf("bands round-trip mismatch:\nwant %+v\ngot  %+v", bands, gotBands)
	}
	gotEvents, err := repo.LoadEvents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(gotEvents, events) {
		t.Fatalf("events round-trip mismatch:\nwant %+v\ngot  %+v", events, gotEvents)
	}
}

func TestJSONRepositoryMissingFilesMeanEmptyStores(t *testing.T) {
	ctx := context.Background()
	repo, err := NewJSONRepository(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	venues, err := repo.LoadVenues(ctx)
	if err != nil || len(venues) != 0 {
		t.Fatalf("expected empty venues, got %v (err=%v)", venues, err)
	}
	events, err := repo.LoadEvents(ctx)
	if err != nil || len(events) != 0 {
		t.Fatalf("expected empty events, got %v (err=%v)", events, err)
	}
}

func TestJSONRepositoryMalformedFileIsNotFatal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bands.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	repo, err := NewJSONRepository(dir)
	if err != nil {
		t.Fatal(err)
	}

	bands, err := repo.LoadBands(ctx)
	if err != nil {
		t.Fatalf("malformed file must not be fatal: %v", err)
	}
	if len(bands) != 0 {
		t.Fatalf("expected empty store for malformed file, got %v", bands)
	}
}

func TestJSONRepositorySaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo, err := NewJSONRepository(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.SaveVenues(ctx, sampleVenues()); err != nil {
		t.Fatal(err)
	}
	one := sampleVenues()[:1]
	if err := repo.SaveVenues(ctx, one); err != nil {
		t.Fatal(err)
	}
	got, err := repo.LoadVenues(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Code != "S001" {
		t.Fatalf("save must overwrite the whole file, got %v", got)
	}
}
