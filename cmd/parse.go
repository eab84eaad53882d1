package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"expirycheck/internal/expiry"
	"expirycheck/internal/logger"
)

var parseCmd = &cobra.Command{
	Use:   "parse [text]",
	Short: "Normalize and parse a single date string",
	Long: `Run the normalizer and the date parser over one text fragment, without
the cascade or the oracle. Useful for checking how a specific OCR output
would be interpreted.`,
	Example: `  expirycheck parse "Best Before 12/2024"
  expirycheck parse "202401/15"
  expirycheck parse "20240402" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

// ParseOutput is the JSON output structure when --json is used
type ParseOutput struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
	Parsed     bool   `json:"parsed"`
	Date       string `json:"date,omitempty"`
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().Bool("json", false, "Output as JSON")
}

func runParse(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("parse")

	jsonOutput, _ := cmd.Flags().GetBool("json")
	input := args[0]

	normalized := expiry.Normalize(input)
	date, ok := expiry.ParseDate(normalized)

	log.Debug().
		Str("input", input).
		Str("normalized", normalized).
		Bool("parsed", ok).
		Msg("Parsed date string")

	if jsonOutput {
		out := ParseOutput{
			Input:      input,
			Normalized: normalized,
			Parsed:     ok,
		}
		if ok {
			out.Date = date.Format("2006-01-02")
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if !ok {
		fmt.Printf("%q is not a date (normalized: %q)\n", input, normalized)
		return nil
	}

	fmt.Printf("Input:      %s\n", input)
	fmt.Printf("Normalized: %s\n", normalized)
	fmt.Printf("Date:       %s\n", date.Format("02-01-2006"))
	return nil
}
