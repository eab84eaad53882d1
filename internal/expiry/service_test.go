package expiry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expirycheck/pkg/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAnalyzeEndToEndExpired(t *testing.T) {
	service := NewServiceWithClock(nil, Config{}, fixedClock(date(2024, time.January, 10)))

	candidates := []models.Candidate{
		{Text: "EXP 12/25/2023", OCRConfidence: 90, LooksLikeDate: true},
	}

	got, err := service.Analyze(context.Background(), candidates, "")
	require.NoError(t, err)
	require.True(t, got.Found)
	assert.Equal(t, models.StatusExpired, got.Status)
	assert.Equal(t, 16, got.DaysDelta)
	assert.Equal(t, "12/25/2023", got.OriginalFormat)
	assert.Equal(t, models.TierCandidates, got.Source)
	assert.Equal(t, 90.0, got.Confidence)
}

func TestAnalyzeEndToEndNothingToWorkWith(t *testing.T) {
	service := NewServiceWithClock(nil, Config{}, fixedClock(date(2024, time.January, 10)))

	got, err := service.Analyze(context.Background(), nil, "")
	require.NoError(t, err)
	assert.False(t, got.Found)
	assert.Equal(t, models.NoDateFoundMessage, got.Summary())
}

func TestAnalyzeEndToEndLotNumberOnly(t *testing.T) {
	service := NewServiceWithClock(nil, Config{}, fixedClock(date(2024, time.January, 10)))

	got, err := service.Analyze(context.Background(), nil, "Lot #48291")
	require.NoError(t, err)
	assert.False(t, got.Found, "a lot number must not be misparsed as a date")
}

func TestAnalyzeOracleNotConsultedWhenCandidatesWin(t *testing.T) {
	ora := &fakeOracle{reply: "01/01/2030"}
	service := NewServiceWithClock(ora, Config{}, fixedClock(date(2024, time.January, 10)))

	candidates := []models.Candidate{
		{Text: "12/25/2023", OCRConfidence: 90, LooksLikeDate: true},
	}

	got, err := service.Analyze(context.Background(), candidates, "also 19/07/2022 here")
	require.NoError(t, err)
	require.True(t, got.Found)
	assert.Equal(t, models.TierCandidates, got.Source)
	assert.Equal(t, 0, ora.calls)
}

func TestAnalyzeFallsThroughToOracle(t *testing.T) {
	ora := &fakeOracle{reply: "2025/03/01"}
	service := NewServiceWithClock(ora, Config{}, fixedClock(date(2024, time.January, 10)))

	got, err := service.Analyze(context.Background(), nil, "totally illegible label")
	require.NoError(t, err)
	require.True(t, got.Found)
	assert.Equal(t, models.TierOracle, got.Source)
	assert.Equal(t, models.StatusNotExpired, got.Status)
	assert.True(t, got.ExpiryDate.Equal(date(2025, time.March, 1)))
	assert.Equal(t, 1, ora.calls)
}

func TestAnalyzePrioritizationCapsOracleInput(t *testing.T) {
	// Six non-date candidates: the cap keeps three, none parse, the free
	// text has nothing, and the oracle is the only remaining voice.
	ora := &fakeOracle{reply: "No date found"}
	service := NewServiceWithClock(ora, Config{CandidateLimit: 3}, fixedClock(date(2024, time.January, 10)))

	var candidates []models.Candidate
	for _, text := range []string{"milk", "whole", "pasteurized", "homogenized", "vitamin", "d"} {
		candidates = append(candidates, models.Candidate{Text: text, OCRConfidence: 50})
	}

	got, err := service.Analyze(context.Background(), candidates, "no digits here")
	require.NoError(t, err)
	assert.False(t, got.Found)
	assert.Equal(t, 1, ora.calls)
}

func TestAnalyzeCanceledContext(t *testing.T) {
	service := NewServiceWithClock(nil, Config{}, fixedClock(date(2024, time.January, 10)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Analyze(ctx, nil, "")
	assert.ErrorIs(t, err, context.Canceled)
}
