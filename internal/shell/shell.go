// Package shell is the interactive menu frontend. It owns all terminal
// I/O; every decision that matters goes through the services so the
// shell can be driven by tests with a scripted reader.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gigbook/internal/core"
	"gigbook/internal/log"
	"gigbook/internal/report"
	"gigbook/internal/services"
)

// Shell runs the menu loop against the two services. The clock is
// injected so booking timestamps and report periods are testable.
type Shell struct {
	p        *prompter
	out      io.Writer
	registry *services.RegistryService
	booking  *services.BookingService
	logger   *log.Logger
	now      func() time.Time
}

func New(in io.Reader, out io.Writer, registry *services.RegistryService, booking *services.BookingService, logger *log.Logger) *Shell {
	return &Shell{
		p:        newPrompter(in, out),
		out:      out,
		registry: registry,
		booking:  booking,
		logger:   logger.WithComponent(log.ComponentShell),
		now:      time.Now,
	}
}

// Run drives the main menu until the user exits or input runs out.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "=== GIGBOOK ===")
	for {
		fmt.Fprintln(s.out, "\nMAIN MENU")
		fmt.Fprintln(s.out, "[1] Venues")
		fmt.Fprintln(s.out, "[2] Bands")
		fmt.Fprintln(s.out, "[3] Events")
		fmt.Fprintln(s.out, "[4] Reports")
		fmt.Fprintln(s.out, "[0] Exit")
		switch s.p.required("Option") {
		case "1":
			s.venueMenu(ctx)
		case "2":
			s.bandMenu(ctx)
		case "3":
			s.eventMenu(ctx)
		case "4":
			s.reportMenu(ctx)
		case "0":
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		default:
			if s.p.eof {
				return nil
			}
			fmt.Fprintln(s.out, "Error: unknown option.")
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (s *Shell) venueMenu(ctx context.Context) {
	for {
		fmt.Fprintln(s.out, "\nVENUES")
		fmt.Fprintln(s.out, "[1] Register venue")
		fmt.Fprintln(s.out, "[2] Update venue")
		fmt.Fprintln(s.out, "[3] Deactivate venue")
		fmt.Fprintln(s.out, "[4] List active venues")
		fmt.Fprintln(s.out, "[0] Back")
		acted := true
		switch s.p.required("Option") {
		case "1":
			s.registerVenue(ctx)
		case "2":
			s.updateVenue(ctx)
		case "3":
			s.deactivateVenue(ctx)
		case "4":
			renderVenues(s.out, s.registry.ActiveVenues())
		case "0":
			return
		default:
			acted = false
			if s.p.eof {
				return
			}
			fmt.Fprintln(s.out, "Error: unknown option.")
		}
		if acted && s.pause() {
			return
		}
	}
}

func (s *Shell) registerVenue(ctx context.Context) {
	v := core.Venue{
		Code:       s.p.code("Venue code"),
		Name:       s.p.required("Name"),
		Capacity:   s.p.positiveInt("Capacity"),
		Location:   s.p.required("Location"),
		RentalCost: s.p.money("Rental cost"),
		Email:      s.p.email("Contact email"),
		Services:   s.p.list("Service %d (empty to finish)"),
	}
	if err := s.registry.RegisterVenue(ctx, v); err != nil {
		s.reportFailure("register venue", err)
		return
	}
	fmt.Fprintf(s.out, "Venue %s registered.\n", v.Code)
}

func (s *Shell) updateVenue(ctx context.Context) {
	code := s.p.code("Venue code")
	current, err := s.registry.LookupVenue(code)
	if err != nil {
		s.reportFailure("update venue", err)
		return
	}
	fmt.Fprintln(s.out, "Leave a field empty to keep the current value.")
	updated := core.Venue{
		Code:       current.Code,
		Name:       s.p.keep("Name", current.Name),
		Capacity:   s.p.keepPositiveInt("Capacity", current.Capacity),
		Location:   s.p.keep("Location", current.Location),
		RentalCost: s.p.keepMoney("Rental cost", current.RentalCost),
		Email:      s.p.keepEmail("Contact email", current.Email),
		Services:   current.Services,
	}
	if entries := s.p.list("Service %d (empty to keep current list)"); len(entries) > 0 {
		updated.Services = entries
	}
	if err := s.registry.UpdateVenue(ctx, updated); err != nil {
		s.reportFailure("update venue", err)
		return
	}
	fmt.Fprintf(s.out, "Venue %s updated.\n", updated.Code)
}

func (s *Shell) deactivateVenue(ctx context.Context) {
	code := s.p.code("Venue code")
	changed, err := s.registry.DeactivateVenue(ctx, code)
	if err != nil {
		s.reportFailure("deactivate venue", err)
		return
	}
	if !changed {
		fmt.Fprintf(s.out, "Venue %s was already inactive.\n", code)
		return
	}
	fmt.Fprintf(s.out, "Venue %s deactivated.\n", code)
}

func (s *Shell) bandMenu(ctx context.Context) {
	for {
		fmt.Fprintln(s.out, "\nBANDS")
		fmt.Fprintln(s.out, "[1] Register band")
		fmt.Fprintln(s.out, "[2] Update band")
		fmt.Fprintln(s.out, "[3] Deactivate band")
		fmt.Fprintln(s.out, "[4] List active bands")
		fmt.Fprintln(s.out, "[0] Back")
		acted := true
		switch s.p.required("Option") {
		case "1":
			s.registerBand(ctx)
		case "2":
			s.updateBand(ctx)
		case "3":
			s.deactivateBand(ctx)
		case "4":
			renderBands(s.out, s.registry.ActiveBands())
		case "0":
			return
		default:
			acted = false
			if s.p.eof {
				return
			}
			fmt.Fprintln(s.out, "Error: unknown option.")
		}
		if acted && s.pause() {
			return
		}
	}
}

func (s *Shell) registerBand(ctx context.Context) {
	b := core.Band{
		Code:         s.p.code("Band code"),
		Name:         s.p.required("Name"),
		Genre:        s.p.required("Genre"),
		HalfHourRate: s.p.money("Rate per half hour"),
		Email:        s.p.email("Contact email"),
		Members:      s.p.list("Member %d (empty to finish)"),
	}
	if err := s.registry.RegisterBand(ctx, b); err != nil {
		s.reportFailure("register band", err)
		return
	}
	fmt.Fprintf(s.out, "Band %s registered.\n", b.Code)
}

func (s *Shell) updateBand(ctx context.Context) {
	code := s.p.code("Band code")
	current, err := s.registry.LookupBand(code)
	if err != nil {
		s.reportFailure("update band", err)
		return
	}
	fmt.Fprintln(s.out, "Leave a field empty to keep the current value.")
	updated := core.Band{
		Code:         current.Code,
		Name:         s.p.keep("Name", current.Name),
		Genre:        s.p.keep("Genre", current.Genre),
		HalfHourRate: s.p.keepMoney("Rate per half hour", current.HalfHourRate),
		Email:        s.p.keepEmail("Contact email", current.Email),
		Members:      current.Members,
	}
	if entries := s.p.list("Member %d (empty to keep current list)"); len(entries) > 0 {
		updated.Members = entries
	}
	if err := s.registry.UpdateBand(ctx, updated); err != nil {
		s.reportFailure("update band", err)
		return
	}
	fmt.Fprintf(s.out, "Band %s updated.\n", updated.Code)
}

func (s *Shell) deactivateBand(ctx context.Context) {
	code := s.p.code("Band code")
	changed, err := s.registry.DeactivateBand(ctx, code)
	if err != nil {
		s.reportFailure("deactivate band", err)
		return
	}
	if !changed {
		fmt.Fprintf(s.out, "Band %s was already inactive.\n", code)
		return
	}
	fmt.Fprintf(s.out, "Band %s deactivated.\n", code)
}

func (s *Shell) eventMenu(ctx context.Context) {
	for {
		fmt.Fprintln(s.out, "\nEVENTS")
		fmt.Fprintln(s.out, "[1] Book event")
		fmt.Fprintln(s.out, "[0] Back")
		acted := true
		switch s.p.required("Option") {
		case "1":
			s.bookEvent(ctx)
		case "0":
			return
		default:
			acted = false
			if s.p.eof {
				return
			}
			fmt.Fprintln(s.out, "Error: unknown option.")
		}
		if acted && s.pause() {
			return
		}
	}
}

func (s *Shell) bookEvent(ctx context.Context) {
	venueCode := s.p.code("Venue code")
	if _, err := s.registry.LookupVenue(venueCode); err != nil {
		s.reportFailure("book event", fmt.Errorf("venue: %w", err))
		return
	}
	bandCode := s.p.code("Band code")
	if _, err := s.registry.LookupBand(bandCode); err != nil {
		s.reportFailure("book event", fmt.Errorf("band: %w", err))
		return
	}
	duration := s.p.duration("Duration in hours")

	e, err := s.booking.BookEvent(ctx, venueCode, bandCode, duration, s.now())
	if err != nil {
		s.reportFailure("book event", err)
		return
	}
	fmt.Fprintf(s.out, "Event %s booked for %s. Total cost: %s\n",
		e.Code, e.Timestamp, e.TotalCost.Format())
}

func (s *Shell) reportMenu(ctx context.Context) {
	for {
		fmt.Fprintln(s.out, "\nREPORTS")
		fmt.Fprintln(s.out, "[1] Events of the current month")
		fmt.Fprintln(s.out, "[2] Events per month and band")
		fmt.Fprintln(s.out, "[3] Amount per month and band")
		fmt.Fprintln(s.out, "[4] Most requested bands")
		fmt.Fprintln(s.out, "[0] Back")
		acted := true
		switch s.p.required("Option") {
		case "1":
			s.monthlyDetail(ctx)
		case "2":
			s.countMatrix(ctx)
		case "3":
			s.costMatrix(ctx)
		case "4":
			s.ranking(ctx)
		case "0":
			return
		default:
			acted = false
			if s.p.eof {
				return
			}
			fmt.Fprintln(s.out, "Error: unknown option.")
		}
		if acted && s.pause() {
			return
		}
	}
}

func (s *Shell) monthlyDetail(ctx context.Context) {
	period := core.FormatPeriod(s.now())
	rows := report.MonthlyDetail(s.booking.Events(), s.registry.AllVenues(), s.registry.AllBands(), period)
	if len(rows) == 0 {
		fmt.Fprintf(s.out, "No events in %s.\n", period)
		return
	}
	renderMonthlyDetail(s.out, rows, period)
	s.logger.InfoContext(ctx, "Monthly detail report", log.FieldPeriod, period, "rows", len(rows))
}

func (s *Shell) countMatrix(ctx context.Context) {
	m := report.AnnualCountMatrix(s.booking.Events(), s.registry.ActiveBands())
	renderCountMatrix(s.out, m)
	renderSkipped(s.out, m.Skipped)
	s.logger.InfoContext(ctx, "Annual count report", log.FieldSkipped, m.Skipped)
}

func (s *Shell) costMatrix(ctx context.Context) {
	m := report.AnnualCostMatrix(s.booking.Events(), s.registry.ActiveBands())
	renderCostMatrix(s.out, m)
	renderSkipped(s.out, m.Skipped)
	s.logger.InfoContext(ctx, "Annual cost report", log.FieldSkipped, m.Skipped)
}

func (s *Shell) ranking(ctx context.Context) {
	ranks := report.MostRequestedBands(s.booking.Events(), s.registry.AllBands())
	if len(ranks) == 0 {
		fmt.Fprintln(s.out, "No events booked yet.")
		return
	}
	renderRanking(s.out, ranks)
	s.logger.InfoContext(ctx, "Ranking report", "bands", len(ranks))
}

// pause holds the submenu after an action. ENTER stays in the submenu,
// T unwinds to the main menu.
func (s *Shell) pause() bool {
	v := strings.TrimSpace(s.p.line("ENTER to continue, T for the main menu"))
	return strings.EqualFold(v, "t")
}

// reportFailure translates domain errors into one-line user messages.
func (s *Shell) reportFailure(op string, err error) {
	switch {
	case errors.Is(err, core.ErrDuplicateCode):
		fmt.Fprintln(s.out, "Error: that code is already in use.")
	case errors.Is(err, core.ErrNotFound):
		fmt.Fprintln(s.out, "Error: no record with that code.")
	case errors.Is(err, core.ErrInactive):
		fmt.Fprintln(s.out, "Error: that record is inactive.")
	case errors.Is(err, core.ErrNotPositive):
		fmt.Fprintln(s.out, "Error: the value must be greater than zero.")
	case errors.Is(err, core.ErrInvalidEmail):
		fmt.Fprintln(s.out, "Error: invalid email address.")
	default:
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	s.logger.Warn("Operation failed", log.FieldOperation, op, log.FieldError, err)
}
