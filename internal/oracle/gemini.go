package oracle

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"expirycheck/internal/logger"
)

// GeminiOracle answers date-extraction queries through the Gemini API.
type GeminiOracle struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// NewGeminiOracle creates the oracle with the API key and model from the
// environment (GEMINI_API_KEY, GEMINI_MODEL).
func NewGeminiOracle(ctx context.Context) (Oracle, error) {
	const op = "NewGeminiOracle"

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w: GEMINI_API_KEY is not set", op, ErrMissingAPIKey)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create gemini client: %w", op, err)
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return NewGeminiOracleWithClient(client, model), nil
}

// NewGeminiOracleWithClient creates the oracle with an explicit client (for testing).
func NewGeminiOracleWithClient(client *genai.Client, model string) Oracle {
	return &GeminiOracle{
		client: client,
		model:  model,
		log:    logger.WithComponent("oracle-gemini"),
	}
}

// ExtractDate sends the product text to Gemini and returns the model's reply
// verbatim (trimmed). A single attempt, no retries.
func (g *GeminiOracle) ExtractDate(ctx context.Context, text string) (string, error) {
	const op = "ExtractDate"

	g.log.Debug().
		Str("model", g.model).
		Int("text_length", len(text)).
		Msg("Consulting Gemini oracle")

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: instruction + "\n\n" + buildPrompt(text)},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%s: gemini API call failed: %w", op, err)
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyReply)
	}

	g.log.Debug().
		Str("reply", reply).
		Msg("Gemini oracle replied")

	return reply, nil
}
