package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haitham/binaa-planner/internal/blueprint"
	"github.com/haitham/binaa-planner/internal/observability"
	"github.com/haitham/binaa-planner/internal/pipeline"
	"github.com/haitham/binaa-planner/internal/types"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a comprehensive construction plan",
	Long:  "Runs the full planning pipeline: classify the project description, analyze the blueprint if one is given, estimate cost against local market prices, and assemble the comprehensive plan as JSON.",
	RunE:  runPlan,
}

var (
	planName        string
	planDescription string
	planLocation    string
	planBlueprint   string
	planOutput      string
	planAPIKey      string
	planVerbose     bool
)

func init() {
	planCmd.Flags().StringVarP(&planName, "name", "n", "", "Project name (required)")
	planCmd.Flags().StringVarP(&planDescription, "description", "d", "", "Project description (required)")
	planCmd.Flags().StringVarP(&planLocation, "location", "l", "", "Project location, e.g. \"Riyadh, KSA\" (required)")
	planCmd.Flags().StringVarP(&planBlueprint, "blueprint", "b", "", "Path to a blueprint image or PDF")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "", "Write the plan JSON to this file instead of stdout")
	planCmd.Flags().StringVar(&planAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY)")
	planCmd.Flags().BoolVarP(&planVerbose, "verbose", "v", false, "Print step progress to stderr")

	if err := planCmd.MarkFlagRequired("name"); err != nil {
		panic(fmt.Sprintf("failed to mark name flag as required: %v", err))
	}
	if err := planCmd.MarkFlagRequired("description"); err != nil {
		panic(fmt.Sprintf("failed to mark description flag as required: %v", err))
	}
	if err := planCmd.MarkFlagRequired("location"); err != nil {
		panic(fmt.Sprintf("failed to mark location flag as required: %v", err))
	}

	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	apiKey, err := requireAPIKey(planAPIKey)
	if err != nil {
		return err
	}

	req := types.PlanRequest{
		ProjectName:        planName,
		ProjectDescription: planDescription,
		Location:           planLocation,
	}

	if planBlueprint != "" {
		dataURI, err := blueprintDataURI(planBlueprint)
		if err != nil {
			return err
		}
		req.BlueprintDocument = dataURI
	}

	opts := pipeline.Options{APIKey: apiKey}
	if planVerbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			log.Printf("[%s] %s", event.Step, event.Message)
		}
	}

	plan, err := pipeline.New(opts).GeneratePlan(context.Background(), req)
	if err != nil {
		return fmt.Errorf("plan generation failed: %w", err)
	}

	if planVerbose {
		observability.NewPrinter(os.Stderr).PrintPlan(plan)
	}

	return writeJSON(planOutput, plan)
}

// blueprintDataURI reads a blueprint file and encodes it as a data URI.
func blueprintDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read blueprint %s: %w", path, err)
	}

	var mimeType string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		mimeType = "image/png"
	case ".jpg", ".jpeg":
		mimeType = "image/jpeg"
	case ".webp":
		mimeType = "image/webp"
	case ".pdf":
		mimeType = "application/pdf"
	default:
		return "", fmt.Errorf("unsupported blueprint type %q (use png, jpg, webp, or pdf)", filepath.Ext(path))
	}

	return blueprint.EncodeDataURI(mimeType, data), nil
}

// writeJSON marshals v with indentation to the given file, or stdout when
// path is empty.
func writeJSON(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	if path == "" {
		_, err = os.Stdout.Write(jsonBytes)
		return err
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
