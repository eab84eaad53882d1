// Package expiry extracts a single best expiration date from noisy OCR-derived
// product text and decides whether it has passed.
//
// The pipeline is: prioritize the detected candidates, run the four-tier
// extraction cascade (structured candidates, free-text regex scan, oracle
// fallback, compact irregular formats), then arbitrate the accumulated results
// into one Decision. Each tier runs only if every earlier tier produced
// nothing, and the cascade stops at the first productive tier.
//
// Everything is request-scoped and stateless across requests: there is no
// shared mutable state, no cache, and no persistence. The only operation that
// can block on an external system is the oracle call, which is bounded by a
// timeout and degrades to an empty tier on any failure.
package expiry

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"expirycheck/internal/logger"
	"expirycheck/internal/oracle"
	"expirycheck/pkg/models"
)

// Service runs the full candidate-to-verdict pipeline for one request.
type Service interface {
	// Analyze prioritizes the candidates, runs the extraction cascade over
	// them and the full translated text, and arbitrates a final decision.
	// "No date found" is a valid decision, not an error.
	Analyze(ctx context.Context, candidates []models.Candidate, fullText string) (*models.Decision, error)
}

// Config tunes the pipeline.
type Config struct {
	CandidateLimit int           // candidates kept after prioritization; 0 means DefaultCandidateLimit
	OracleTimeout  time.Duration // bound on the single oracle call; 0 means DefaultOracleTimeout
}

// DefaultOracleTimeout bounds the oracle call when no timeout is configured.
const DefaultOracleTimeout = 15 * time.Second

// DefaultService implements Service.
type DefaultService struct {
	oracle oracle.Oracle
	config Config
	now    func() time.Time
	log    zerolog.Logger
}

// NewService creates the pipeline service. A nil oracle disables the oracle
// tier only; every other tier behaves identically.
func NewService(o oracle.Oracle, cfg Config) Service {
	if cfg.CandidateLimit <= 0 {
		cfg.CandidateLimit = DefaultCandidateLimit
	}
	if cfg.OracleTimeout <= 0 {
		cfg.OracleTimeout = DefaultOracleTimeout
	}
	return &DefaultService{
		oracle: o,
		config: cfg,
		now:    time.Now,
		log:    logger.WithComponent("expiry"),
	}
}

// NewServiceWithClock creates the service with an explicit clock (for testing).
func NewServiceWithClock(o oracle.Oracle, cfg Config, now func() time.Time) Service {
	s := NewService(o, cfg).(*DefaultService)
	s.now = now
	return s
}

// Analyze implements Service.
func (s *DefaultService) Analyze(ctx context.Context, candidates []models.Candidate, fullText string) (*models.Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.log.Info().
		Int("candidates", len(candidates)).
		Int("text_length", len(fullText)).
		Bool("oracle_configured", s.oracle != nil).
		Msg("Starting expiry analysis")

	prioritized := Prioritize(candidates, s.config.CandidateLimit)
	s.log.Debug().
		Int("prioritized", len(prioritized)).
		Msg("Candidate prioritization completed")

	ext := &extractor{
		oracle:  s.oracle,
		timeout: s.config.OracleTimeout,
		log:     s.log,
	}
	results := ext.Extract(ctx, prioritized, fullText)

	decision := Decide(results, s.now())

	if decision.Found {
		s.log.Info().
			Time("expiry_date", decision.ExpiryDate).
			Str("original_format", decision.OriginalFormat).
			Str("status", string(decision.Status)).
			Int("days_delta", decision.DaysDelta).
			Float64("confidence", decision.Confidence).
			Stringer("tier", decision.Source).
			Msg("Expiry analysis completed")
	} else {
		s.log.Info().Msg("Expiry analysis found no date")
	}

	return decision, nil
}
