package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/haitham/binaa-planner/internal/estimate"
	"github.com/haitham/binaa-planner/internal/pipeline"
	"github.com/haitham/binaa-planner/internal/types"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate construction cost against local market prices",
	Long:  "Produces a bill of quantities, crew recommendation, schedule skeleton, and financial risks for a project, priced from the built-in market price table.",
	RunE:  runEstimate,
}

var (
	estimateLocation string
	estimateSize     string
	estimateType     string
	estimateTier     string
	estimateScope    string
	estimateOutput   string
	estimateAPIKey   string
)

func init() {
	estimateCmd.Flags().StringVarP(&estimateLocation, "location", "l", "", "Project location, e.g. \"Riyadh, KSA\" (required)")
	estimateCmd.Flags().StringVarP(&estimateSize, "size", "s", pipeline.DefaultProjectSize, "Project size in m²")
	estimateCmd.Flags().StringVarP(&estimateType, "type", "t", "", "Project type (required)")
	estimateCmd.Flags().StringVarP(&estimateTier, "tier", "q", string(types.TierStandard), "Quality tier (standard, premium, luxury)")
	estimateCmd.Flags().StringVar(&estimateScope, "scope", "", "Scope of work description (required)")
	estimateCmd.Flags().StringVarP(&estimateOutput, "output", "o", "", "Write the estimate JSON to this file instead of stdout")
	estimateCmd.Flags().StringVar(&estimateAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY)")

	if err := estimateCmd.MarkFlagRequired("location"); err != nil {
		panic(fmt.Sprintf("failed to mark location flag as required: %v", err))
	}
	if err := estimateCmd.MarkFlagRequired("type"); err != nil {
		panic(fmt.Sprintf("failed to mark type flag as required: %v", err))
	}
	if err := estimateCmd.MarkFlagRequired("scope"); err != nil {
		panic(fmt.Sprintf("failed to mark scope flag as required: %v", err))
	}

	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(_ *cobra.Command, _ []string) error {
	apiKey, err := requireAPIKey(estimateAPIKey)
	if err != nil {
		return err
	}

	projectType := types.ProjectType(estimateType)
	if !projectType.Valid() {
		return fmt.Errorf("unknown project type %q (one of: %v)", estimateType, types.ProjectTypes)
	}
	qualityTier := types.QualityTier(estimateTier)
	if !qualityTier.Valid() {
		return fmt.Errorf("unknown quality tier %q (one of: %v)", estimateTier, types.QualityTiers)
	}

	req := estimate.Request{
		Location:    estimateLocation,
		Size:        estimateSize,
		ProjectType: projectType,
		QualityTier: qualityTier,
		ScopeOfWork: estimateScope,
		AsOfDate:    time.Now().Format("2006-01-02"),
	}

	est, err := estimate.Cost(context.Background(), req, apiKey)
	if err != nil {
		return fmt.Errorf("cost estimation failed: %w", err)
	}

	return writeJSON(estimateOutput, est)
}
