// Package core holds the domain records and the validation, money, and
// pricing rules they obey. Everything in here is pure: no I/O, no clock,
// no store access beyond what the caller hands in.
package core

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

const (
	// TimestampLayout is the fixed format event timestamps are stored in.
	TimestampLayout = "2006.01.02 15:04:05"
	// PeriodLayout is the year-month prefix used to bucket reports.
	PeriodLayout = "2006.01"
)

var (
	ErrDuplicateCode      = errors.New("code already in use")
	ErrNotFound           = errors.New("record not found")
	ErrInactive           = errors.New("record is inactive")
	ErrInvalidFormat      = errors.New("invalid format")
	ErrNotPositive        = errors.New("value must be greater than zero")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmptyField         = errors.New("field cannot be empty")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)

type (
	// Venue is a rentable room. Deactivated venues stay on file for
	// historical reports but are hidden from listings and booking.
	Venue struct {
		Code       string
		Name       string
		Capacity   int64
		Location   string
		RentalCost Money
		Email      string
		Services   []string
		Active     bool
	}

	// Band is a performing act billed by the half hour.
	Band struct {
		Code         string
		Name         string
		Genre        string
		HalfHourRate Money
		Email        string
		Members      []string
		Active       bool
	}

	// Event is an append-only booking. TotalCost is frozen at creation:
	// later rate changes never touch past events.
	Event struct {
		Code      string
		Timestamp string
		VenueCode string
		BandCode  string
		// Duration in hundredths of an hour, so 2.5h is 250.
		DurationCentiHours int64
		TotalCost          Money
	}
)

// RecordCode returns the venue's canonical identifier.
func (v Venue) RecordCode() string { return v.Code }

// IsActive reports whether the venue can be listed and booked.
func (v Venue) IsActive() bool { return v.Active }

// Deactivated returns a copy with the active flag cleared.
func (v Venue) Deactivated() Venue {
	v.Active = false
	return v
}

// RecordCode returns the band's canonical identifier.
func (b Band) RecordCode() string { return b.Code }

// IsActive reports whether the band can be listed and booked.
func (b Band) IsActive() bool { return b.Active }

// Deactivated returns a copy with the active flag cleared.
func (b Band) Deactivated() Band {
	b.Active = false
	return b
}

// emailRe matches local@domain.tld: letters, digits and _.+- in the local
// part, dot-separated labels of letters, digits and hyphens in the domain.
// Shape only, no deliverability check.
var emailRe = regexp.MustCompile(`^[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)+$`)

// NormalizeCode returns the canonical form of an entity code. Codes are
// case-insensitive on input but stored and compared uppercase.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateEmail checks the shape of an email address.
func ValidateEmail(raw string) error {
	if !emailRe.MatchString(strings.TrimSpace(raw)) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateRequired rejects empty or whitespace-only input.
func ValidateRequired(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrEmptyField
	}
	return nil
}

func (v Venue) Validate() error {
	if err := ValidateRequired(v.Code); err != nil {
		return errors.New("venue code: " + err.Error())
	}
	if err := ValidateRequired(v.Name); err != nil {
		return errors.New("venue name: " + err.Error())
	}
	if v.Capacity <= 0 {
		return ErrNotPositive
	}
	if err := ValidateRequired(v.Location); err != nil {
		return errors.New("venue location: " + err.Error())
	}
	if err := v.RentalCost.Validate(); err != nil {
		return err
	}
	return ValidateEmail(v.Email)
}

func (b Band) Validate() error {
	if err := ValidateRequired(b.Code); err != nil {
		return errors.New("band code: " + err.Error())
	}
	if err := ValidateRequired(b.Name); err != nil {
		return errors.New("band name: " + err.Error())
	}
	if err := ValidateRequired(b.Genre); err != nil {
		return errors.New("band genre: " + err.Error())
	}
	if err := b.HalfHourRate.Validate(); err != nil {
		return err
	}
	return ValidateEmail(b.Email)
}

func (e Event) Validate() error {
	if err := ValidateRequired(e.Code); err != nil {
		return errors.New("event code: " + err.Error())
	}
	if _, err := e.Month(); err != nil {
		return err
	}
	if err := ValidateRequired(e.VenueCode); err != nil {
		return errors.New("event venue code: " + err.Error())
	}
	if err := ValidateRequired(e.BandCode); err != nil {
		return errors.New("event band code: " + err.Error())
	}
	if e.DurationCentiHours <= 0 {
		return ErrNotPositive
	}
	return e.TotalCost.Validate()
}

// Month parses the 1-12 month out of the event timestamp.
func (e Event) Month() (int, error) {
	t, err := time.Parse(TimestampLayout, e.Timestamp)
	if err != nil {
		return 0, ErrMalformedTimestamp
	}
	return int(t.Month()), nil
}

// InPeriod reports whether the event falls in the given YYYY.MM period.
func (e Event) InPeriod(period string) bool {
	return strings.HasPrefix(e.Timestamp, period+".")
}

// FormatTimestamp renders a wall-clock time in the event timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// FormatPeriod renders the YYYY.MM report period for a wall-clock time.
func FormatPeriod(t time.Time) string {
	return t.Format(PeriodLayout)
}
