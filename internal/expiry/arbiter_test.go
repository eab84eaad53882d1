package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expirycheck/pkg/models"
)

func TestDecideEmptyInput(t *testing.T) {
	got := Decide(nil, date(2024, time.January, 10))
	require.NotNil(t, got)
	assert.False(t, got.Found)
	assert.Equal(t, models.NoDateFoundMessage, got.Summary())
}

func TestDecideConfidenceWins(t *testing.T) {
	parsed := []models.ParsedDate{
		{Date: date(2030, time.January, 1), OriginalText: "01/01/2030", Confidence: 0.8},
		{Date: date(2024, time.June, 1), OriginalText: "01/06/2024", Confidence: 90},
	}

	got := Decide(parsed, date(2024, time.January, 10))
	require.True(t, got.Found)
	assert.Equal(t, "01/06/2024", got.OriginalFormat, "higher confidence wins over later date")
}

func TestDecideTieBreakPrefersLaterDate(t *testing.T) {
	parsed := []models.ParsedDate{
		{Date: date(2024, time.January, 1), OriginalText: "early", Confidence: 0.8},
		{Date: date(2025, time.January, 1), OriginalText: "late", Confidence: 0.8},
	}

	got := Decide(parsed, date(2024, time.January, 10))
	require.True(t, got.Found)
	assert.Equal(t, "late", got.OriginalFormat)
	assert.True(t, got.ExpiryDate.Equal(date(2025, time.January, 1)))
}

func TestDecideExpiry(t *testing.T) {
	today := date(2024, time.January, 10)

	tests := []struct {
		name       string
		expiry     time.Time
		wantStatus models.Status
		wantDelta  int
		wantTime   string
	}{
		{
			name:       "past date is expired",
			expiry:     date(2023, time.December, 25),
			wantStatus: models.StatusExpired,
			wantDelta:  16,
			wantTime:   "16 days ago",
		},
		{
			name:       "future date is not expired",
			expiry:     date(2024, time.January, 15),
			wantStatus: models.StatusNotExpired,
			wantDelta:  -5,
			wantTime:   "5 days remaining",
		},
		{
			name:       "expiring today is not yet expired",
			expiry:     date(2024, time.January, 10),
			wantStatus: models.StatusNotExpired,
			wantDelta:  0,
			wantTime:   "0 days remaining",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide([]models.ParsedDate{
				{Date: tt.expiry, OriginalText: "x", Confidence: 0.8},
			}, today)

			require.True(t, got.Found)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantDelta, got.DaysDelta)
			assert.Contains(t, got.Summary(), "Time: "+tt.wantTime)
		})
	}
}

func TestDecideSummaryShape(t *testing.T) {
	got := Decide([]models.ParsedDate{
		{Date: date(2023, time.December, 25), OriginalText: "12/25/2023", Confidence: 90},
	}, date(2024, time.January, 10))

	want := "Expiration Date: 25-12-2023\n" +
		"Original Format: 12/25/2023\n" +
		"Status: EXPIRED\n" +
		"Time: 16 days ago"
	assert.Equal(t, want, got.Summary())
}
