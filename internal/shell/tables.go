package shell

import (
	"fmt"
	"io"
	"strings"

	"gigbook/internal/core"
	"gigbook/internal/report"
)

var monthHeaders = []string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

func renderVenues(w io.Writer, venues []core.Venue) {
	fmt.Fprintln(w, "\n--- ACTIVE VENUES ---")
	for _, v := range venues {
		fmt.Fprintf(w, "%s - %s (%s) Cap: %d | %s\n",
			v.Code, v.Name, v.Location, v.Capacity, v.RentalCost.Format())
		fmt.Fprintf(w, "  Services: %s\n", strings.Join(v.Services, ", "))
	}
	fmt.Fprintln(w, "---------------------")
}

func renderBands(w io.Writer, bands []core.Band) {
	fmt.Fprintln(w, "\n--- ACTIVE BANDS ---")
	for _, b := range bands {
		fmt.Fprintf(w, "%s - %s (%s) | %s per half hour\n",
			b.Code, b.Name, b.Genre, b.HalfHourRate.Format())
		fmt.Fprintf(w, "  Members: %s\n", strings.Join(b.Members, ", "))
	}
	fmt.Fprintln(w, "--------------------")
}

func renderMonthlyDetail(w io.Writer, rows []report.MonthlyRow, period string) {
	fmt.Fprintf(w, "\n--- EVENTS OF %s ---\n", period)
	fmt.Fprintf(w, "%-20s %-20s %-20s %-10s %-14s\n", "Date/Time", "Venue", "Band", "Duration", "Cost")
	fmt.Fprintln(w, strings.Repeat("-", 88))
	for _, r := range rows {
		fmt.Fprintf(w, "%-20s %-20s %-20s %-10s %-14s\n",
			r.Timestamp, r.VenueName, r.BandName,
			core.FormatCentiHours(r.DurationCentiHours), r.Cost.Format())
	}
	fmt.Fprintln(w, strings.Repeat("-", 88))
}

func renderCountMatrix(w io.Writer, m report.Matrix) {
	fmt.Fprintln(w, "\nEVENT COUNT PER MONTH AND BAND")
	fmt.Fprintf(w, "%-20s", "Band")
	for _, h := range monthHeaders {
		fmt.Fprintf(w, " %6s", h)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 104))
	for _, code := range m.Order {
		fmt.Fprintf(w, "%-20s", m.Names[code])
		for _, v := range m.Cells[code] {
			fmt.Fprintf(w, " %6d", v)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, strings.Repeat("-", 104))
}

func renderCostMatrix(w io.Writer, m report.Matrix) {
	fmt.Fprintln(w, "\nTOTAL AMOUNT PER MONTH AND BAND")
	fmt.Fprintf(w, "%-20s", "Band")
	for _, h := range monthHeaders {
		fmt.Fprintf(w, " %10s", h)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 152))
	for _, code := range m.Order {
		fmt.Fprintf(w, "%-20s", m.Names[code])
		for _, cents := range m.Cells[code] {
			fmt.Fprintf(w, " %10s", core.Money{Cents: cents}.FormatWhole())
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, strings.Repeat("-", 152))
}

func renderRanking(w io.Writer, ranks []report.BandRank) {
	fmt.Fprintln(w, "\nMOST REQUESTED BANDS")
	fmt.Fprintf(w, "%-25s %-20s %-20s\n", "Band", "Events", "Total amount")
	fmt.Fprintln(w, strings.Repeat("-", 67))
	for _, r := range ranks {
		fmt.Fprintf(w, "%-25s %-20d %-20s\n", r.BandName, r.EventCount, r.TotalCost.Format())
	}
	fmt.Fprintln(w, strings.Repeat("-", 67))
}

func renderSkipped(w io.Writer, skipped int) {
	if skipped > 0 {
		fmt.Fprintf(w, "(%d event(s) skipped: missing band or malformed timestamp)\n", skipped)
	}
}
