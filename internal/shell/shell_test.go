package shell

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"gigbook/internal/core"
	"gigbook/internal/log"
	"gigbook/internal/services"
	"gigbook/internal/store"
)

type nopRepo struct{}

func (nopRepo) LoadVenues(context.Context) ([]core.Venue, error) { return nil, nil }
func (nopRepo) SaveVenues(context.Context, []core.Venue) error   { return nil }
func (nopRepo) LoadBands(context.Context) ([]core.Band, error)   { return nil, nil }
func (nopRepo) SaveBands(context.Context, []core.Band) error     { return nil }
func (nopRepo) LoadEvents(context.Context) ([]core.Event, error) { return nil, nil }
func (nopRepo) SaveEvents(context.Context, []core.Event) error   { return nil }
func (nopRepo) Close() error                                     { return nil }

func testLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

// newTestShell wires a shell over fresh stores with a scripted stdin.
func newTestShell(script string) (*Shell, *strings.Builder) {
	venues := store.NewVenueStore()
	bands := store.NewBandStore()
	events := store.NewEventStore()
	registry := services.NewRegistryService(venues, bands, nopRepo{})
	booking := services.NewBookingService(venues, bands, events, nopRepo{}, nil)

	var out strings.Builder
	sh := New(strings.NewReader(script), &out, registry, booking, testLogger())
	sh.now = func() time.Time {
		return time.Date(2025, 11, 15, 21, 30, 0, 0, time.UTC)
	}
	return sh, &out
}

func TestRunExitsOnZero(t *testing.T) {
	sh, out := newTestShell("0\n")
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Goodbye.") {
		t.Fatalf("missing exit message in output:\n%s", out.String())
	}
}

func TestRegisterVenueAndList(t *testing.T) {
	script := strings.Join([]string{
		"1",           // venues
		"1",           // register
		"s001",        // code, canonicalized
		"The Cellar",  // name
		"250",         // capacity
		"Springfield", // location
		"1200.50",     // rental cost
		"cellar@mail.com",
		"sound",  // service 1
		"lights", // service 2
		"",       // end of services
		"",       // stay in submenu
		"4",      // list
		"t",      // back to main menu
		"0",      // exit
	}, "\n") + "\n"

	sh, out := newTestShell(script)
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Venue S001 registered.") {
		t.Fatalf("missing registration confirmation:\n%s", got)
	}
	if !strings.Contains(got, "S001 - The Cellar (Springfield) Cap: 250 | $1,200.50") {
		t.Fatalf("missing listing row:\n%s", got)
	}
	if !strings.Contains(got, "Services: sound, lights") {
		t.Fatalf("missing services line:\n%s", got)
	}
	// "t" after the listing must land on the main menu, not a third
	// round of the venues submenu.
	if strings.Count(got, "\nVENUES") != 2 {
		t.Fatalf("expected exactly two venue submenu renders:\n%s", got)
	}
}

func TestRegisterVenueReAsksOnBadInput(t *testing.T) {
	script := strings.Join([]string{
		"1", "1",
		"s001",
		"The Cellar",
		"lots", // rejected capacity
		"250",  // accepted
		"Springfield",
		"0", // rejected amount
		"1200.50",
		"not-an-email", // rejected
		"cellar@mail.com",
		"", // end of services
		"", // stay in submenu
		"0", "0",
	}, "\n") + "\n"

	sh, out := newTestShell(script)
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Error: enter a whole number greater than zero.") {
		t.Fatalf("capacity was not re-asked:\n%s", got)
	}
	if !strings.Contains(got, "Error: the amount must be greater than zero.") {
		t.Fatalf("amount was not re-asked:\n%s", got)
	}
	if !strings.Contains(got, "Error: enter a valid email (name@domain.tld).") {
		t.Fatalf("email was not re-asked:\n%s", got)
	}
	if !strings.Contains(got, "Venue S001 registered.") {
		t.Fatalf("registration did not complete:\n%s", got)
	}
}

func TestBookEventPrintsCost(t *testing.T) {
	sh, out := newTestShell("")
	ctx := context.Background()

	seedVenue(t, sh, ctx)
	seedBand(t, sh, ctx)

	script := strings.Join([]string{
		"3",    // events
		"1",    // book
		"s001", // venue
		"b001", // band
		"3",    // hours
		"",     // stay in submenu
		"0", "0",
	}, "\n") + "\n"
	sh.p = newPrompter(strings.NewReader(script), out)

	if err := sh.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Event E001 booked for 2025.11.15 21:30:00. Total cost: $480,000.00") {
		t.Fatalf("missing booking confirmation:\n%s", got)
	}
}

func TestBookEventRejectsUnknownVenue(t *testing.T) {
	sh, out := newTestShell("")
	ctx := context.Background()
	seedBand(t, sh, ctx)

	script := strings.Join([]string{
		"3", "1",
		"nope", // unknown venue aborts before the band prompt
		"",     // stay in submenu
		"0", "0",
	}, "\n") + "\n"
	sh.p = newPrompter(strings.NewReader(script), out)

	if err := sh.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Error: no record with that code.") {
		t.Fatalf("missing not-found message:\n%s", out.String())
	}
}

func TestDeactivateTwiceReportsAlreadyInactive(t *testing.T) {
	sh, out := newTestShell("")
	ctx := context.Background()
	seedVenue(t, sh, ctx)

	script := strings.Join([]string{
		"1", "3", "s001", "",
		"3", "s001", "",
		"0", "0",
	}, "\n") + "\n"
	sh.p = newPrompter(strings.NewReader(script), out)

	if err := sh.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Venue S001 deactivated.") {
		t.Fatalf("missing first deactivation:\n%s", got)
	}
	if !strings.Contains(got, "Venue S001 was already inactive.") {
		t.Fatalf("missing already-inactive message:\n%s", got)
	}
}

func TestUpdateVenueKeepsEmptyFields(t *testing.T) {
	sh, out := newTestShell("")
	ctx := context.Background()
	seedVenue(t, sh, ctx)

	script := strings.Join([]string{
		"1", "2", "s001",
		"",    // keep name
		"400", // new capacity
		"",    // keep location
		"",    // keep rental cost
		"",    // keep email
		"",    // keep services
		"",    // stay in submenu
		"4",   // list shows merged record
		"",    // stay in submenu
		"0", "0",
	}, "\n") + "\n"
	sh.p = newPrompter(strings.NewReader(script), out)

	if err := sh.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Venue S001 updated.") {
		t.Fatalf("missing update confirmation:\n%s", got)
	}
	if !strings.Contains(got, "S001 - The Cellar (Springfield) Cap: 400 | $1,200.50") {
		t.Fatalf("kept fields were lost or capacity not updated:\n%s", got)
	}
}

func TestUpdateVenueReplacesServiceList(t *testing.T) {
	sh, out := newTestShell("")
	ctx := context.Background()
	seedVenue(t, sh, ctx)

	script := strings.Join([]string{
		"1", "2", "s001",
		"",         // keep name
		"",         // keep capacity
		"",         // keep location
		"",         // keep rental cost
		"",         // keep email
		"catering", // replacement list
		"security",
		"",  // end of list
		"",  // stay in submenu
		"4", // list shows the new services
		"",  // stay in submenu
		"0", "0",
	}, "\n") + "\n"
	sh.p = newPrompter(strings.NewReader(script), out)

	if err := sh.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Services: catering, security") {
		t.Fatalf("service list was not replaced:\n%s", got)
	}
	if strings.Contains(got, "Services: sound") {
		t.Fatalf("old service list still rendered:\n%s", got)
	}
}

func TestMonthlyReportUsesCurrentPeriod(t *testing.T) {
	sh, out := newTestShell("")
	ctx := context.Background()
	seedVenue(t, sh, ctx)
	seedBand(t, sh, ctx)
	if _, err := sh.booking.BookEvent(ctx, "S001", "B001", 300, sh.now()); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	script := "4\n1\n\n0\n0\n"
	sh.p = newPrompter(strings.NewReader(script), out)

	if err := sh.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "--- EVENTS OF 2025.11 ---") {
		t.Fatalf("missing period header:\n%s", got)
	}
	if !strings.Contains(got, "The Cellar") || !strings.Contains(got, "The Hollow Crowns") {
		t.Fatalf("missing joined names:\n%s", got)
	}
}

func seedVenue(t *testing.T, sh *Shell, ctx context.Context) {
	t.Helper()
	err := sh.registry.RegisterVenue(ctx, core.Venue{
		Code:       "S001",
		Name:       "The Cellar",
		Capacity:   250,
		Location:   "Springfield",
		RentalCost: core.Money{Cents: 120050},
		Email:      "cellar@mail.com",
		Services:   []string{"sound"},
	})
	if err != nil {
		t.Fatalf("seed venue: %v", err)
	}
}

func seedBand(t *testing.T, sh *Shell, ctx context.Context) {
	t.Helper()
	err := sh.registry.RegisterBand(ctx, core.Band{
		Code:         "B001",
		Name:         "The Hollow Crowns",
		Genre:        "rock",
		HalfHourRate: core.Money{Cents: 8000000},
		Email:        "crowns@mail.com",
		Members:      []string{"Ada", "Lin"},
	})
	if err != nil {
		t.Fatalf("seed band: %v", err)
	}
}
