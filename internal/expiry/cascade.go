package expiry

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"expirycheck/internal/oracle"
	"expirycheck/pkg/models"
)

// The cascade tries four strategies in order and stops at the first one that
// produces any result; tiers never merge. Confidence is assigned per tier:
//
//	candidates  OCR confidence as reported (0-100 scale)
//	free-text   fixed 0.8
//	oracle      fixed 0.7
//	compact     OCR confidence x 0.9
//
// The scales are deliberately mixed: the constants were chosen so raw
// comparison ranks tiers by trustworthiness, and changing them would change
// which candidate wins arbitration.
const (
	freeTextConfidence = 0.8
	oracleConfidence   = 0.7
	compactDiscount    = 0.9
)

// Compact numeric layouts only make sense for years in this window; anything
// outside is treated as a lot number or other non-date digit run.
const (
	compactYearMin = 2000
	compactYearMax = 2100
)

// dateHintPattern is the cheap pre-check a structured candidate must pass
// before the parser is invoked: a digit-separator-digit pair anywhere, or a
// bare 6-8 digit run.
var dateHintPattern = regexp.MustCompile(`\d+[-/.,]\d+|^\d{6,8}$`)

// freeTextPatterns scan the full translated text, widest to narrowest.
var freeTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}`),
	regexp.MustCompile(`\d{2,4}[-/.]\d{1,2}[-/.]\d{1,2}`),
	regexp.MustCompile(`\d{1,2}[-/.]\d{2,4}`),
	regexp.MustCompile(`\d{2,4}[-/.]\d{1,2}`),
}

var (
	compactSlashDayPattern = regexp.MustCompile(`^\d{6}/\d{1,2}$`)
	compactDigitsPattern   = regexp.MustCompile(`^\d{8}$`)
)

// tierInput is the request-scoped data every tier sees.
type tierInput struct {
	candidates []models.Candidate // prioritized set, shared by the candidates and compact tiers
	fullText   string
}

// tierStage names one fallback strategy and its runner.
type tierStage struct {
	tier models.Tier
	run  func(ctx context.Context, in tierInput) []models.ParsedDate
}

// extractor drives the four-tier cascade.
type extractor struct {
	oracle  oracle.Oracle // nil when the fallback is not configured
	timeout time.Duration // bound on a single oracle call
	log     zerolog.Logger
}

// Extract accumulates (date, text, confidence) tuples from the first
// productive tier. An empty slice means no tier found anything.
func (e *extractor) Extract(ctx context.Context, candidates []models.Candidate, fullText string) []models.ParsedDate {
	in := tierInput{candidates: candidates, fullText: fullText}

	stages := []tierStage{
		{models.TierCandidates, e.scanCandidates},
		{models.TierFreeText, e.scanFreeText},
		{models.TierOracle, e.consultOracle},
		{models.TierCompact, e.scanCompact},
	}

	for _, stage := range stages {
		results := e.runStage(ctx, stage, in)
		if len(results) > 0 {
			e.log.Debug().
				Stringer("tier", stage.tier).
				Int("results", len(results)).
				Msg("Extraction tier produced results")
			return results
		}
	}

	return nil
}

// runStage executes one tier with a recovery boundary: a fault inside a tier
// degrades that tier to empty instead of aborting the whole cascade.
func (e *extractor) runStage(ctx context.Context, stage tierStage, in tierInput) (results []models.ParsedDate) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().
				Stringer("tier", stage.tier).
				Interface("panic", r).
				Msg("Extraction tier aborted, treating as empty")
			results = nil
		}
	}()
	return stage.run(ctx, in)
}

// scanCandidates parses the prioritized structured candidates. The recorded
// original text is the normalized form: filler words are already stripped.
func (e *extractor) scanCandidates(_ context.Context, in tierInput) []models.ParsedDate {
	var found []models.ParsedDate
	for _, c := range in.candidates {
		if c.Text == "" {
			continue
		}

		cleaned := Normalize(c.Text)
		if !dateHintPattern.MatchString(cleaned) {
			continue
		}

		date, ok := ParseDate(cleaned)
		if !ok {
			continue
		}

		found = append(found, models.ParsedDate{
			Date:         date,
			OriginalText: cleaned,
			Confidence:   c.OCRConfidence,
			Source:       models.TierCandidates,
		})
	}
	return found
}

// scanFreeText runs the fixed regex scan over the full translated text. Every
// non-overlapping match of every pattern is parsed independently, so the same
// substring can contribute once per pattern that matches it.
func (e *extractor) scanFreeText(_ context.Context, in tierInput) []models.ParsedDate {
	var found []models.ParsedDate
	for _, pattern := range freeTextPatterns {
		for _, match := range pattern.FindAllString(in.fullText, -1) {
			date, ok := ParseDate(match)
			if !ok {
				continue
			}
			found = append(found, models.ParsedDate{
				Date:         date,
				OriginalText: match,
				Confidence:   freeTextConfidence,
				Source:       models.TierFreeText,
			})
		}
	}
	return found
}

// consultOracle makes a single bounded call to the configured oracle. Any
// failure degrades to an empty tier; it is never fatal to the request.
func (e *extractor) consultOracle(ctx context.Context, in tierInput) []models.ParsedDate {
	if e.oracle == nil {
		return nil
	}

	oracleCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	reply, err := e.oracle.ExtractDate(oracleCtx, in.fullText)
	if err != nil {
		e.log.Warn().
			Err(err).
			Msg("Oracle lookup failed, continuing without it")
		return nil
	}

	reply = strings.TrimSpace(reply)
	if reply == oracle.NoDateReply {
		return nil
	}

	date, ok := ParseDate(reply)
	if !ok {
		e.log.Warn().
			Str("reply", reply).
			Msg("Oracle reply is not a parseable date")
		return nil
	}

	return []models.ParsedDate{{
		Date:         date,
		OriginalText: reply,
		Confidence:   oracleConfidence,
		Source:       models.TierOracle,
	}}
}

// scanCompact re-examines the raw (un-normalized) candidate text for the two
// compact irregular layouts: YYYYMM/D[D] and contiguous YYYYMMDD.
func (e *extractor) scanCompact(_ context.Context, in tierInput) []models.ParsedDate {
	var found []models.ParsedDate
	for _, c := range in.candidates {
		if c.Text == "" {
			continue
		}

		var year, month, day int
		switch {
		case compactSlashDayPattern.MatchString(c.Text):
			year, month, day = atoi(c.Text[:4]), atoi(c.Text[4:6]), atoi(c.Text[7:])
		case compactDigitsPattern.MatchString(c.Text):
			year, month, day = atoi(c.Text[:4]), atoi(c.Text[4:6]), atoi(c.Text[6:8])
		default:
			continue
		}

		if month < 1 || month > 12 || day < 1 || day > 31 ||
			year < compactYearMin || year > compactYearMax {
			continue
		}

		found = append(found, models.ParsedDate{
			Date:         time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
			OriginalText: c.Text,
			Confidence:   c.OCRConfidence * compactDiscount,
			Source:       models.TierCompact,
		})
	}
	return found
}
