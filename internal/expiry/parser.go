package expiry

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	eightDigitPattern = regexp.MustCompile(`^\d{8}$`)
	sixDigitPattern   = regexp.MustCompile(`^\d{6}$`)
	dottedYMDPattern  = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`)
)

// genericLayouts are tried in order after the explicit numeric forms:
// day-first, then month-first, then year-first, full dates before
// month/year-only. Earlier layouts win ambiguous inputs, so "12/05/2024"
// reads as 12 May, not December 5.
var genericLayouts = []string{
	"2/1/2006", "2-1-2006", "2.1.2006",
	"1/2/2006", "1-2-2006", "1.2.2006",
	"2006/1/2", "2006-1-2", "2006.1.2",
	"1/2006", "1-2006", "1.2006",
	"2006/1", "2006-1",
}

// ParseDate interprets text as a calendar date. Pure and deterministic.
//
// Resolution order: exactly 8 digits as YYYYMMDD; exactly 6 digits as YYYYMM
// with the day defaulting to the 1st; dotted YYYY.MM.DD; then the generic
// separator layouts above. Malformed input is not an error, just (zero, false).
func ParseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)

	switch {
	case eightDigitPattern.MatchString(text):
		return dateFromParts(atoi(text[:4]), atoi(text[4:6]), atoi(text[6:8]))
	case sixDigitPattern.MatchString(text):
		return dateFromParts(atoi(text[:4]), atoi(text[4:6]), 1)
	case dottedYMDPattern.MatchString(text):
		return dateFromParts(atoi(text[:4]), atoi(text[5:7]), atoi(text[8:10]))
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// dateFromParts builds a date from numeric components. The day is only bounded
// to 1-31, never against the month's actual length; a day past the month end
// normalizes forward per time.Date semantics.
func dateFromParts(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// atoi converts a digit-only substring already vetted by a pattern match.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
