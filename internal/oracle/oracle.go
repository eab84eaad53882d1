// Package oracle provides the last-resort date-finding capability consumed by
// the extraction cascade.
//
// An Oracle is a black-box text-in/text-out service: given the full free-form
// product text, it replies with a single date string in one of three canonical
// formats, or with the NoDateReply sentinel. The cascade treats any oracle
// failure (transport error, timeout, unparseable reply) as "tier produced
// nothing", so implementations only need to return honest errors.
//
// Two backends are provided: OpenAI chat completions and the Gemini API.
// The backend is selected via the ORACLE_PROVIDER environment variable; see
// FromEnv. Absence of any configured backend must not change the behavior of
// the other extraction tiers.
package oracle

import (
	"context"
	"fmt"

	"expirycheck/internal/config"
)

// NoDateReply is the literal sentinel an oracle returns when the text contains
// no recognizable expiration date.
const NoDateReply = "No date found"

// Oracle is an external best-effort date-finding service. ExtractDate returns
// the raw reply text; callers are responsible for parsing and for treating
// NoDateReply as a miss.
type Oracle interface {
	ExtractDate(ctx context.Context, text string) (string, error)
}

// instruction is the shared task description sent to every backend. Only the
// reply format and the sentinel are contractual.
const instruction = `You extract expiration dates from noisy product label text.
Reply with the expiration date and nothing else, formatted as DD/MM/YYYY, MM/DD/YYYY, or YYYY/MM/DD.
If the text contains no expiration date, reply with exactly: No date found`

// buildPrompt wraps the source text with the extraction instruction.
func buildPrompt(text string) string {
	return fmt.Sprintf("Find the expiration date in this product text:\n\n%q", text)
}

// FromEnv builds the oracle selected by the configuration. An empty provider
// returns (nil, nil): the oracle tier is simply disabled.
func FromEnv(ctx context.Context, cfg *config.Config) (Oracle, error) {
	const op = "FromEnv"

	switch cfg.OracleProvider {
	case "":
		return nil, nil
	case config.ProviderOpenAI:
		return NewOpenAIOracle()
	case config.ProviderGemini:
		return NewGeminiOracle(ctx)
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownProvider, cfg.OracleProvider)
	}
}
