package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haitham/binaa-planner/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a project description",
	Long:  "Maps a free-text project description to a project type, quality tier, and suggested design prompt.",
	RunE:  runClassify,
}

var (
	classifyDescription string
	classifyOutput      string
	classifyAPIKey      string
)

func init() {
	classifyCmd.Flags().StringVarP(&classifyDescription, "description", "d", "", "Project description (required)")
	classifyCmd.Flags().StringVarP(&classifyOutput, "output", "o", "", "Write the classification JSON to this file instead of stdout")
	classifyCmd.Flags().StringVar(&classifyAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY)")

	if err := classifyCmd.MarkFlagRequired("description"); err != nil {
		panic(fmt.Sprintf("failed to mark description flag as required: %v", err))
	}

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(_ *cobra.Command, _ []string) error {
	apiKey, err := requireAPIKey(classifyAPIKey)
	if err != nil {
		return err
	}

	classification, err := classify.Description(context.Background(), classifyDescription, apiKey)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	return writeJSON(classifyOutput, classification)
}
