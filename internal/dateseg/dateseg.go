// internal/dateseg/dateseg.go
//
// Date-segment codec.
//
// Context
// -------
// Card URLs carry the wedding date as a six-digit YYMMDD path segment
// (e.g., /261221/minjunseoyun).  This package converts between that
// segment and the ISO YYYY-MM-DD form stored on the card record.  The
// century is fixed: YY always maps to 2000+YY, which holds for every
// wedding this service will ever host.
//
// Both directions validate strictly.  A segment is valid only when the
// reconstructed calendar date round-trips exactly, so overflow dates such
// as Feb 30 or day 32 are rejected rather than normalized forward the way
// time.Date would.
//
// Notes
// -----
// • Pure functions, no I/O, no clock.  Safe to call from any goroutine.
// • Oxford commas, two spaces after periods.
package dateseg

import (
	"fmt"
	"regexp"
	"time"
)

// isoPattern matches exactly YYYY-MM-DD.  Anything looser (extra spaces,
// time suffixes) is rejected before the numeric range checks run.
var isoPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// Parse converts a six-digit YYMMDD segment to an ISO date.  ok is false
// for anything that is not a real calendar day in [2000, 2099].
func Parse(segment string) (iso string, ok bool) {
	if len(segment) != 6 {
		return "", false
	}
	for i := 0; i < 6; i++ {
		if segment[i] < '0' || segment[i] > '9' {
			return "", false
		}
	}

	yy := int(segment[0]-'0')*10 + int(segment[1]-'0')
	mm := int(segment[2]-'0')*10 + int(segment[3]-'0')
	dd := int(segment[4]-'0')*10 + int(segment[5]-'0')

	if mm < 1 || mm > 12 || dd < 1 || dd > 31 {
		return "", false
	}

	year := 2000 + yy

	// time.Date normalizes overflow (Feb 30 → Mar 2), so a round-trip
	// comparison is the overflow check.
	t := time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(mm) || t.Day() != dd {
		return "", false
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, mm, dd), true
}

// FormatISO converts an ISO YYYY-MM-DD date to the YYMMDD segment used in
// card URLs.  The year is truncated to its last two digits.  ok is false
// when the input is not an exact YYYY-MM-DD string with a month in 1–12
// and a day in 1–31.
func FormatISO(iso string) (segment string, ok bool) {
	m := isoPattern.FindStringSubmatch(iso)
	if m == nil {
		return "", false
	}

	var year, month, day int
	fmt.Sscanf(m[1], "%d", &year)
	fmt.Sscanf(m[2], "%d", &month)
	fmt.Sscanf(m[3], "%d", &day)

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}

	return fmt.Sprintf("%02d%02d%02d", year%100, month, day), true
}
