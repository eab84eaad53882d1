package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"expirycheck/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "expirycheck",
	Short: "expirycheck - decide whether a product's expiration date has passed",
	Long: `expirycheck reconciles noisy OCR-derived date candidates from a product
image into one expiration date and reports whether it has passed.

Candidates come from an upstream object-detection and OCR step as a JSON
array; optionally the full translated label text is scanned as a fallback,
and a hosted language model can be consulted as a last resort.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("expirycheck executed")

		fmt.Println("Welcome to expirycheck!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
