package expiry

import (
	"regexp"
	"strings"
)

// fillerPhrases are label words that commonly surround an expiration date but
// are not part of it. Order matters: longer phrases are removed before their
// prefixes ("expiry" and "expiration" before "exp").
var fillerPhrases = []string{
	"best before", "best by", "use by",
	"expiry", "expiration", "exp",
	"date", "sell by", "valid until",
}

var fillerPatterns = compileFillerPatterns()

func compileFillerPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(fillerPhrases))
	for i, phrase := range fillerPhrases {
		patterns[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(phrase))
	}
	return patterns
}

// compactSlashPattern matches the irregular YYYYMM/D and YYYYMM/DD layouts
// some printers emit (e.g. "202401/15").
var compactSlashPattern = regexp.MustCompile(`^\d{6}/\d{1,2}$`)

// Normalize strips known filler phrases case-insensitively, trims whitespace,
// and reshapes the compact YYYYMM/DD layout into YYYY/MM/DD. It never fails:
// text that isn't a date comes back cleaned but otherwise untouched.
func Normalize(text string) string {
	for _, pattern := range fillerPatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	text = strings.TrimSpace(text)

	if compactSlashPattern.MatchString(text) {
		// First four digits are the year, next two the month, the day
		// follows the slash.
		return text[:4] + "/" + text[4:6] + "/" + text[7:]
	}

	return text
}
