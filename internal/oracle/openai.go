package oracle

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"expirycheck/internal/logger"
)

// OpenAIOracle answers date-extraction queries through the OpenAI chat
// completion API.
type OpenAIOracle struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewOpenAIOracle creates the oracle with the API key and model from the
// environment (OPENAI_API_KEY, OPENAI_MODEL).
func NewOpenAIOracle() (Oracle, error) {
	const op = "NewOpenAIOracle"

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w: OPENAI_API_KEY is not set", op, ErrMissingAPIKey)
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	return NewOpenAIOracleWithClient(openai.NewClient(apiKey), model), nil
}

// NewOpenAIOracleWithClient creates the oracle with an explicit client (for testing).
func NewOpenAIOracleWithClient(client *openai.Client, model string) Oracle {
	return &OpenAIOracle{
		client: client,
		model:  model,
		log:    logger.WithComponent("oracle-openai"),
	}
}

// ExtractDate sends the product text to the chat completion API and returns
// the model's reply verbatim (trimmed). A single attempt, no retries.
func (o *OpenAIOracle) ExtractDate(ctx context.Context, text string) (string, error) {
	const op = "ExtractDate"

	o.log.Debug().
		Str("model", o.model).
		Int("text_length", len(text)).
		Msg("Consulting OpenAI oracle")

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0,
		MaxTokens:   32,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: instruction,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(text),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s: chat completion failed: %w", op, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyReply)
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyReply)
	}

	o.log.Debug().
		Str("reply", reply).
		Msg("OpenAI oracle replied")

	return reply, nil
}
