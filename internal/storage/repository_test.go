package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestSQLite(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "gigbook.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLite(t)

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

func TestSQLiteRepositorySaveReplacesTable(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLite(t)

	if err := repo.SaveEvents(ctx, sampleEvents()); err != nil {
		t.Fatal(err)
	}
	one := sampleEvents()[:1]
	if err := repo.SaveEvents(ctx, one); err != nil {
		t.Fatal(err)
	}
	got, err := repo.LoadEvents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Code != "E001" {
		t.Fatalf("save must replace the table, got %v", got)
	}
}

func TestSQLiteRepositoryEmptyDatabase(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLite(t)

	venues, err := repo.LoadVenues(ctx)
	if err != nil || len(venues) != 0 {
		t.Fatalf("expected empty venues, got %v (err=%v)", venues, err)
	}
}
