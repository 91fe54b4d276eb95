// Money parsing and handling.
//
// Amounts are kept as int64 cents so pricing arithmetic never goes through
// floating point. Durations use the same hundredths representation
// (centi-hours) and share the parser.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in cents.
type Money struct {
	Cents int64
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrNotPositive
	}
	return nil
}

// Format renders the amount for tables, e.g. 48000000 -> "$480,000.00".
func (m Money) Format() string {
	whole := m.Cents / 100
	frac := m.Cents % 100
	return fmt.Sprintf("$%s.%02d", groupThousands(whole), frac)
}

// FormatWhole renders the amount rounded to whole units for compact
// matrix cells, e.g. 48000000 -> "$480,000".
func (m Money) FormatWhole() string {
	whole := m.Cents / 100
	if m.Cents%100 >= 50 {
		whole++
	}
	return "$" + groupThousands(whole)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// ParseDecimalToCents converts a decimal string to positive cents.
//
// It accepts both dot (12.34) and comma (12,34) separators and applies
// half-up rounding on the third decimal place. Shape problems return
// ErrInvalidFormat; a well-formed zero returns ErrNotPositive.
func ParseDecimalToCents(s string) (int64, error) {
	return parseHundredths(s)
}

// ParseCentiHours converts a decimal hour string ("2.5") to centi-hours
// (250). Same grammar and error behavior as ParseDecimalToCents.
func ParseCentiHours(s string) (int64, error) {
	return parseHundredths(s)
}

// ParsePositiveInt parses a strictly positive integer (e.g. a capacity).
func ParsePositiveInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidFormat
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidFormat
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidFormat
	}
	if n <= 0 {
		return 0, ErrNotPositive
	}
	return n, nil
}

func parseHundredths(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidFormat
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Signs are rejected outright; only plain positive decimals.
		return 0, ErrInvalidFormat
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidFormat
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidFormat
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidFormat
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidFormat
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, ErrInvalidFormat
	}
	// First two fractional digits, half-up rounding on the third.
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}
	v := iv*100 + frac
	if v <= 0 {
		return 0, ErrNotPositive
	}
	return v, nil
}

// FormatCentiHours renders a duration for tables, e.g. 250 -> "2.5".
func FormatCentiHours(centi int64) string {
	whole := centi / 100
	frac := centi % 100
	switch {
	case frac == 0:
		return strconv.FormatInt(whole, 10)
	case frac%10 == 0:
		return fmt.Sprintf("%d.%d", whole, frac/10)
	default:
		return fmt.Sprintf("%d.%02d", whole, frac)
	}
}
