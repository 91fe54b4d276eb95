// Package worker forwards booked-event messages from AMQP to the
// spreadsheet ledger.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"gigbook/internal/amqp"
	"gigbook/internal/log"
	"gigbook/internal/sheets"
)

// LedgerWorker handles one booked-event message at a time. With no writer
// configured it runs dry, logging the rows it would have appended.
type LedgerWorker struct {
	writer sheets.LedgerWriter
}

func NewLedgerWorker(writer sheets.LedgerWriter) *LedgerWorker {
	return &LedgerWorker{writer: writer}
}

// HandleBookedMessage appends one booked event to the ledger. Errors are
// returned to the consumer so the delivery is retried.
func (w *LedgerWorker) HandleBookedMessage(ctx context.Context, msg *amqp.EventBookedMessage) error {
	row := sheets.BookingRow{
		EventCode:          msg.Code,
		Timestamp:          msg.Timestamp,
		VenueCode:          msg.VenueCode,
		BandCode:           msg.BandCode,
		DurationCentiHours: msg.DurationCentiHours,
		TotalCostCents:     msg.TotalCostCents,
	}

	if w.writer == nil {
		slog.WarnContext(ctx, "No ledger writer configured, skipping append",
			log.FieldEventCode, row.EventCode, "row", row.String())
		return nil
	}

	ref, err := w.writer.AppendBooking(ctx, row)
	if err != nil {
		return fmt.Errorf("append booking %s: %w", row.EventCode, err)
	}

	slog.InfoContext(ctx, "Booking synced to ledger",
		log.FieldEventCode, row.EventCode,
		log.FieldSheetRange, ref)
	return nil
}
