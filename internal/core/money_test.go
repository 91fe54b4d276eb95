package core

import (
	"errors"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		err error
	}{
		{"1", 100, nil},
		{"1.0", 100, nil},
		{"1.23", 123, nil},
		{"1,23", 123, nil},
		{"0.01", 1, nil},
		{"1.005", 101, nil}, // half-up rounding
		{" 2.50 ", 250, nil},
		{"80000", 8000000, nil},
		{"0", 0, ErrNotPositive},
		{"0.00", 0, ErrNotPositive},
		{"-1", 0, ErrInvalidFormat},
		{"+1", 0, ErrInvalidFormat},
		{"abc", 0, ErrInvalidFormat},
		{"1.2.3", 0, ErrInvalidFormat},
		{"", 0, ErrInvalidFormat},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.err == nil {
			if err != nil || got != tc.out {
				t.Fatalf("%q: expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
			continue
		}
		if !errors.Is(err, tc.err) {
			t.Fatalf("%q: expected %v, got %v", tc.in, tc.err, err)
		}
	}
}

func TestParseCentiHours(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"2.5", 250, true},
		{"3", 300, true},
		{"0.5", 50, true},
		{"1,25", 125, true},
		{"0", 0, false},
		{"-2", 0, false},
		{"two", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseCentiHours(tc.in)
		if tc.ok && (err != nil || got != tc.out) {
			t.Fatalf("%q: expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestParsePositiveInt(t *testing.T) {
	if n, err := ParsePositiveInt("150"); err != nil || n != 150 {
		t.Fatalf("expected 150, got %d (err=%v)", n, err)
	}
	if _, err := ParsePositiveInt("0"); !errors.Is(err, ErrNotPositive) {
		t.Fatalf("zero: expected ErrNotPositive, got %v", err)
	}
	for _, in := range []string{"", "12.5", "-3", "x"} {
		if _, err := ParsePositiveInt(in); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("%q: expected ErrInvalidFormat, got %v", in, err)
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{48000000, "$480,000.00"},
		{100, "$1.00"},
		{123456, "$1,234.56"},
		{99, "$0.99"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Format(); got != tc.want {
			t.Fatalf("%d: expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestMoneyFormatWhole(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{48000000, "$480,000"},
		{123456, "$1,235"}, // rounds half up
		{123449, "$1,234"},
		{99, "$1"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).FormatWhole(); got != tc.want {
			t.Fatalf("%d: expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestFormatCentiHours(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{300, "3"},
		{250, "2.5"},
		{125, "1.25"},
		{105, "1.05"},
	}
	for _, tc := range cases {
		if got := FormatCentiHours(tc.in); got != tc.want {
			t.Fatalf("%d: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
