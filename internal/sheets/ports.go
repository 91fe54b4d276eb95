package sheets

import (
	"context"
	"fmt"

	"gigbook/internal/core"
)

// BookingRow is one booked event destined for the spreadsheet ledger.
type BookingRow struct {
	EventCode          string
	Timestamp          string
	VenueCode          string
	BandCode           string
	DurationCentiHours int64
	TotalCostCents     int64
}

// String renders the row the way it lands on the sheet, for logs and
// dry runs.
func (r BookingRow) String() string {
	return fmt.Sprintf("%s | %s | %s | %s | %s | %s",
		r.EventCode, r.Timestamp, r.VenueCode, r.BandCode,
		core.FormatCentiHours(r.DurationCentiHours),
		core.Money{Cents: r.TotalCostCents}.Format())
}

// Ports for outbound adapters.
type (
	// LedgerWriter appends booked events to an external ledger.
	LedgerWriter interface {
		AppendBooking(ctx context.Context, row BookingRow) (rowRef string, err error)
	}
)
