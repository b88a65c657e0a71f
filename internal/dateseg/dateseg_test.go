// internal/dateseg/dateseg_test.go
//
// Unit tests for the YYMMDD ↔ ISO codec.
//
// Coverage
// --------
//   • Legal segments map to the expected ISO date.
//   • Overflow dates (Feb 30, day 32, month 13) are rejected.
//   • Non-digit and wrong-length input is rejected, never panics.
//   • FormatISO validates its input just as strictly.
//   • Round-trip law over a full century sweep.
package dateseg

import (
	"fmt"
	"testing"
	"time"
)

func TestParse_Valid(t *testing.T) {
	cases := map[string]string{
		"261221": "2026-12-21",
		"000101": "2000-01-01",
		"991231": "2099-12-31",
		"240229": "2024-02-29", // leap day
		"250630": "2025-06-30",
	}
	for seg, want := range cases {
		got, ok := Parse(seg)
		if !ok {
			t.Errorf("Parse(%q) not ok, want %q", seg, want)
			continue
		}
		if got != want {
			t.Errorf("Parse(%q) = %q, want %q", seg, got, want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []string{
		"",       // empty
		"2612",   // too short
		"2612210", // too long
		"26122a", // non-digit
		"991332", // month 13
		"260230", // Feb 30
		"230229", // Feb 29 in a non-leap year
		"250631", // day 31 in June
		"320230", // Feb 30 again, different decade
		"260001", // month 0
		"260100", // day 0
		"-61221", // sign sneaking in
	}
	for _, seg := range cases {
		if got, ok := Parse(seg); ok {
			t.Errorf("Parse(%q) = %q, want invalid", seg, got)
		}
	}
}

func TestFormatISO_Valid(t *testing.T) {
	cases := map[string]string{
		"2026-12-21": "261221",
		"2000-01-01": "000101",
		"2099-12-31": "991231",
	}
	for iso, want := range cases {
		got, ok := FormatISO(iso)
		if !ok || got != want {
			t.Errorf("FormatISO(%q) = %q, %v, want %q, true", iso, got, ok, want)
		}
	}
}

func TestFormatISO_Invalid(t *testing.T) {
	cases := []string{
		"",
		"2026-13-01",     // month out of range
		"2026-00-10",     // month zero
		"2026-12-32",     // day out of range
		"2026-12-21 ",    // trailing space
		"2026-12-21T00",  // time suffix
		"26-12-21",       // short year
		"2026/12/21",     // wrong separator
	}
	for _, iso := range cases {
		if got, ok := FormatISO(iso); ok {
			t.Errorf("FormatISO(%q) = %q, want invalid", iso, got)
		}
	}
}

// TestRoundTrip sweeps every calendar day of the supported century and
// asserts Parse(FormatISO(d)) == d.
func TestRoundTrip(t *testing.T) {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		iso := fmt.Sprintf("%04d-%02d-%02d", d.Year(), d.Month(), d.Day())
		seg, ok := FormatISO(iso)
		if !ok {
			t.Fatalf("FormatISO(%q) not ok", iso)
		}
		back, ok := Parse(seg)
		if !ok {
			t.Fatalf("Parse(%q) not ok (from %q)", seg, iso)
		}
		if back != iso {
			t.Fatalf("round trip %q → %q → %q", iso, seg, back)
		}
	}
}
