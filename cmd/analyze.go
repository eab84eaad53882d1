package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"expirycheck/internal/config"
	"expirycheck/internal/expiry"
	"expirycheck/internal/logger"
	"expirycheck/internal/oracle"
	"expirycheck/pkg/models"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [detections.json]",
	Short: "Extract the best expiration date from OCR detections and decide expiry",
	Long: `Run the full date extraction cascade over a set of OCR detections and,
optionally, the full translated label text.

The detections file is a JSON array of candidates, each shaped as:
  {"text": "...", "ocr_confidence": 0-100, "detector_confidence": 0-1,
   "looks_like_date": true|false, "bbox": [x1,y1,x2,y2]}

The file may be omitted for a free-text-only analysis. The oracle fallback
tier is enabled by setting ORACLE_PROVIDER to "openai" or "gemini" together
with the provider's API key.`,
	Example: `  # Analyze detections with the translated label text
  expirycheck analyze detections.json --text "Best Before 12/2024 Lot 48291"

  # Read the label text from a file, output JSON
  expirycheck analyze detections.json --text-file label.txt --json

  # Free-text only, no detections
  expirycheck analyze --text "EXP 2024.07.19"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

// AnalyzeOutput is the JSON output structure when --json is used
type AnalyzeOutput struct {
	Found          bool    `json:"found"`
	ExpiryDate     string  `json:"expiry_date,omitempty"`
	OriginalFormat string  `json:"original_format,omitempty"`
	Status         string  `json:"status,omitempty"`
	DaysDelta      int     `json:"days_delta"`
	Confidence     float64 `json:"confidence,omitempty"`
	Tier           string  `json:"tier,omitempty"`
	Summary        string  `json:"summary"`
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("text", "t", "", "Full translated label text")
	analyzeCmd.Flags().String("text-file", "", "Read the full label text from a file")
	analyzeCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().Bool("json", false, "Output as JSON")
	analyzeCmd.Flags().Int("limit", 0, "Candidates kept after prioritization (default: from config)")
	analyzeCmd.Flags().Int("timeout", 60, "Processing timeout in seconds")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("analyze")

	text, _ := cmd.Flags().GetString("text")
	textFile, _ := cmd.Flags().GetString("text-file")
	outputPath, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	limit, _ := cmd.Flags().GetInt("limit")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	candidates, err := loadCandidates(args, log)
	if err != nil {
		return err
	}

	fullText, err := resolveFullText(text, textFile)
	if err != nil {
		return err
	}

	if len(candidates) == 0 && fullText == "" {
		log.Warn().Msg("Neither detections nor label text provided")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if limit <= 0 {
		limit = cfg.CandidateLimit
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	ora, err := oracle.FromEnv(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create oracle: %w", err)
	}

	service := expiry.NewService(ora, expiry.Config{
		CandidateLimit: limit,
		OracleTimeout:  cfg.OracleTimeout(),
	})

	log.Info().
		Int("candidates", len(candidates)).
		Int("text_length", len(fullText)).
		Int("limit", limit).
		Str("oracle_provider", cfg.OracleProvider).
		Msg("Starting analysis")

	decision, err := service.Analyze(ctx, candidates, fullText)
	if err != nil {
		log.Error().Err(err).Msg("Analysis failed")
		return fmt.Errorf("analysis failed: %w", err)
	}

	return outputDecision(decision, outputPath, jsonOutput, log)
}

// loadCandidates reads the optional detections JSON file.
func loadCandidates(args []string, log zerolog.Logger) ([]models.Candidate, error) {
	if len(args) == 0 {
		return nil, nil
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().Str("file", path).Msg("Detections file not found")
			return nil, fmt.Errorf("detections file not found: %s", path)
		}
		return nil, fmt.Errorf("error reading detections file: %w", err)
	}

	var candidates []models.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		log.Error().
			Err(err).
			Str("file", path).
			Msg("Detections file is not a valid candidate array")
		return nil, fmt.Errorf("invalid detections file %s: %w", path, err)
	}

	return candidates, nil
}

// resolveFullText picks the label text from --text or --text-file.
func resolveFullText(text, textFile string) (string, error) {
	if textFile == "" {
		return text, nil
	}
	if text != "" {
		return "", fmt.Errorf("--text and --text-file are mutually exclusive")
	}
	data, err := os.ReadFile(textFile)
	if err != nil {
		return "", fmt.Errorf("failed to read text file %s: %w", textFile, err)
	}
	return string(data), nil
}

// createContextWithTimeout creates a context with timeout and signal handling
func createContextWithTimeout(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling analysis")
			cancel()
		case <-ctx.Done():
			// Context completed normally
		}
	}()

	return ctx, cancel
}

// outputDecision renders the decision as text or JSON, to stdout or a file.
func outputDecision(decision *models.Decision, outputPath string, jsonOutput bool, log zerolog.Logger) error {
	var outputData []byte

	if jsonOutput {
		out := AnalyzeOutput{
			Found:     decision.Found,
			DaysDelta: decision.DaysDelta,
			Summary:   decision.Summary(),
		}
		if decision.Found {
			out.ExpiryDate = decision.ExpiryDate.Format("02-01-2006")
			out.OriginalFormat = decision.OriginalFormat
			out.Status = string(decision.Status)
			out.Confidence = decision.Confidence
			out.Tier = decision.Source.String()
		}

		var err error
		outputData, err = json.MarshalIndent(out, "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("Failed to marshal JSON output")
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
	} else {
		outputData = []byte(decision.Summary())
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, outputData, 0644); err != nil {
			log.Error().
				Err(err).
				Str("output_file", outputPath).
				Msg("Failed to write output file")
			return fmt.Errorf("failed to write output file: %w", err)
		}
		log.Info().
			Str("output_file", outputPath).
			Int("bytes", len(outputData)).
			Msg("Analysis result written to file")
		return nil
	}

	if _, err := os.Stdout.Write(outputData); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Println()
	return nil
}
