// Package report derives the monthly and annual summaries from a read-only
// snapshot of the stores. Nothing here touches the clock or any I/O: the
// caller supplies the current period and the record slices.
package report

import (
	"sort"

	"gigbook/internal/core"
)

// MonthlyRow is one line of the events-of-the-month detail.
type MonthlyRow struct {
	Timestamp          string
	VenueName          string
	BandName           string
	DurationCentiHours int64
	Cost               core.Money
}

// Matrix holds one 12-slot row per band, January at index 0. Cells are
// counts or cost cents depending on which builder produced it.
type Matrix struct {
	// Order lists the band codes in store order; Cells is keyed by code.
	Order []string
	Names map[string]string
	Cells map[string]*[12]int64
	// Skipped counts events left out because their band has no row or
	// their timestamp would not parse.
	Skipped int
}

// BandRank is one line of the most-requested ranking.
type BandRank struct {
	BandCode   string
	BandName   string
	EventCount int
	TotalCost  core.Money
}

// MonthlyDetail returns the events of the given YYYY.MM period in store
// (insertion) order, joined against venue and band names. A dangling
// reference renders as the raw code so a stale record never sinks the
// whole report.
func MonthlyDetail(events []core.Event, venues []core.Venue, bands []core.Band, period string) []MonthlyRow {
	venueNames := nameIndex(venues, func(v core.Venue) (string, string) { return v.Code, v.Name })
	bandNames := nameIndex(bands, func(b core.Band) (string, string) { return b.Code, b.Name })

	var rows []MonthlyRow
	for _, e := range events {
		if !e.InPeriod(period) {
			continue
		}
		rows = append(rows, MonthlyRow{
			Timestamp:          e.Timestamp,
			VenueName:          nameOrCode(venueNames, e.VenueCode),
			BandName:           nameOrCode(bandNames, e.BandCode),
			DurationCentiHours: e.DurationCentiHours,
			Cost:               e.TotalCost,
		})
	}
	return rows
}

// AnnualCountMatrix buckets event counts per active band and month.
// Events whose band has no row (deactivated since booking) or whose
// timestamp is malformed are skipped and tallied in Skipped.
func AnnualCountMatrix(events []core.Event, activeBands []core.Band) Matrix {
	return buildMatrix(events, activeBands, func(core.Event) int64 { return 1 })
}

// AnnualCostMatrix buckets frozen event costs (cents) per active band and
// month, with the same skip policy as AnnualCountMatrix.
func AnnualCostMatrix(events []core.Event, activeBands []core.Band) Matrix {
	return buildMatrix(events, activeBands, func(e core.Event) int64 { return e.TotalCost.Cents })
}

func buildMatrix(events []core.Event, activeBands []core.Band, weight func(core.Event) int64) Matrix {
	m := Matrix{
		Names: make(map[string]string, len(activeBands)),
		Cells: make(map[string]*[12]int64, len(activeBands)),
	}
	for _, b := range activeBands {
		code := core.NormalizeCode(b.Code)
		m.Order = append(m.Order, code)
		m.Names[code] = b.Name
		m.Cells[code] = new([12]int64)
	}
	for _, e := range events {
		row, ok := m.Cells[core.NormalizeCode(e.BandCode)]
		if !ok {
			m.Skipped++
			continue
		}
		month, err := e.Month()
		if err != nil {
			m.Skipped++
			continue
		}
		row[month-1] += weight(e)
	}
	return m
}

// MostRequestedBands ranks bands by event count, descending, with ties
// broken by band code ascending so the order never depends on map
// iteration. Events referencing a band absent from the snapshot are
// excluded from both count and cost.
func MostRequestedBands(events []core.Event, allBands []core.Band) []BandRank {
	names := nameIndex(allBands, func(b core.Band) (string, string) { return b.Code, b.Name })

	counts := make(map[string]int)
	costs := make(map[string]int64)
	var order []string
	for _, e := range events {
		code := core.NormalizeCode(e.BandCode)
		if _, known := names[code]; !known {
			continue
		}
		if _, seen := counts[code]; !seen {
			order = append(order, code)
		}
		counts[code]++
		costs[code] += e.TotalCost.Cents
	}

	ranks := make([]BandRank, 0, len(order))
	for _, code := range order {
		ranks = append(ranks, BandRank{
			BandCode:   code,
			BandName:   names[code],
			EventCount: counts[code],
			TotalCost:  core.Money{Cents: costs[code]},
		})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].EventCount != ranks[j].EventCount {
			return ranks[i].EventCount > ranks[j].EventCount
		}
		return ranks[i].BandCode < ranks[j].BandCode
	})
	return ranks
}

func nameIndex[T any](recs []T, key func(T) (code, name string)) map[string]string {
	idx := make(map[string]string, len(recs))
	for _, r := range recs {
		code, name := key(r)
		idx[core.NormalizeCode(code)] = name
	}
	return idx
}

func nameOrCode(names map[string]string, code string) string {
	if name, ok := names[core.NormalizeCode(code)]; ok {
		return name
	}
	return core.NormalizeCode(code)
}
