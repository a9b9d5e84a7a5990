// Package main provides the entry point for the Binaa construction
// planner CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "binaa_agent",
	Short: "AI construction project planner",
	Long:  "Binaa generates comprehensive construction plans for projects in Saudi Arabia: classification, blueprint analysis, market-priced cost estimation, quotes, and supplier outreach.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// requireAPIKey resolves the Gemini API key from flag or environment.
func requireAPIKey(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("GEMINI_API_KEY not set (set the environment variable or use --api-key)")
}
