package core

// EventCost computes the total billed for a booking: the band's half-hour
// rate times the number of half-hour units in the duration. The result is
// frozen onto the event at creation time.
//
// With rate in cents and the duration in centi-hours the product is exact
// for two-decimal durations; anything finer is rounded half up.
func EventCost(halfHourRate Money, durationCentiHours int64) Money {
	raw := halfHourRate.Cents * durationCentiHours * 2
	cents := raw / 100
	if raw%100 >= 50 {
		cents++
	}
	return Money{Cents: cents}
}
