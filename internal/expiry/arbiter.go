package expiry

import (
	"sort"
	"time"

	"expirycheck/pkg/models"
)

// Decide selects the single best tuple from the accumulated results and
// computes the expiry status relative to today. An empty input yields the
// no-date-found decision.
//
// Ranking is by confidence first, calendar date second, both descending:
// among equal-confidence candidates the later date wins.
func Decide(parsed []models.ParsedDate, today time.Time) *models.Decision {
	if len(parsed) == 0 {
		return &models.Decision{Found: false}
	}

	ranked := make([]models.ParsedDate, len(parsed))
	copy(ranked, parsed)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		return ranked[i].Date.After(ranked[j].Date)
	})
	best := ranked[0]

	delta := daysSince(best.Date, today)

	status := models.StatusNotExpired // zero delta: expiring today is not yet expired
	if delta > 0 {
		status = models.StatusExpired
	}

	return &models.Decision{
		Found:          true,
		ExpiryDate:     best.Date,
		OriginalFormat: best.OriginalText,
		Confidence:     best.Confidence,
		Source:         best.Source,
		Status:         status,
		DaysDelta:      delta,
	}
}

// daysSince returns today minus the expiry date in whole days, comparing
// calendar dates only.
func daysSince(expiry, today time.Time) int {
	e := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(e).Hours() / 24)
}
