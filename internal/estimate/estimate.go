// Package estimate produces construction cost estimates. Market prices are
// resolved locally and injected into the generation prompt, so the model
// never decides whether prices get fetched.
package estimate

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/haitham/binaa-planner/internal/llm"
	"github.com/haitham/binaa-planner/internal/pricing"
	"github.com/haitham/binaa-planner/internal/prompts"
	"github.com/haitham/binaa-planner/internal/schemas"
	"github.com/haitham/binaa-planner/internal/types"
)

// Request holds the inputs for one cost estimation.
type Request struct {
	Location    string
	Size        string // project size in m², advisory free text
	ProjectType types.ProjectType
	QualityTier types.QualityTier
	ScopeOfWork string
	AsOfDate    string // ISO date the estimate is anchored to
}

// Cost produces a cost estimate for the request.
func Cost(ctx context.Context, req Request, apiKey string) (*types.CostEstimate, error) {
	if apiKey == "" {
		return nil, &APICallError{Message: "API key is required"}
	}

	config := llm.DefaultConfig()
	client, err := llm.NewClient(ctx, config, apiKey)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to create LLM client",
			Cause:   err,
		}
	}
	defer func() { _ = client.Close() }()

	return WithClient(ctx, client, req)
}

// WithClient estimates using an existing LLM client.
func WithClient(ctx context.Context, client llm.Client, req Request) (*types.CostEstimate, error) {
	sheet := pricing.Resolve(req.Location, req.QualityTier)

	prompt := buildEstimatePrompt(req, sheet)

	// Estimation needs multi-part reasoning over the scope and prices.
	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate cost estimate",
			Cause:   err,
		}
	}

	est, err := parseEstimate(responseText)
	if err != nil {
		return nil, err
	}

	// Record the sheet the estimate was derived from so callers can audit
	// or persist it alongside the estimate.
	est.PriceSheet = sheet
	return est, nil
}

// buildEstimatePrompt assembles the estimation prompt with the resolved
// price sheet rendered as stable, sorted lines.
func buildEstimatePrompt(req Request, sheet types.MarketPriceSheet) string {
	template := prompts.MustGet("estimate.json", "estimate-cost")
	return prompts.Format(template, map[string]string{
		"Location":    req.Location,
		"Size":        req.Size,
		"ProjectType": string(req.ProjectType),
		"QualityTier": string(req.QualityTier),
		"ScopeOfWork": req.ScopeOfWork,
		"AsOfDate":    req.AsOfDate,
		"Currency":    sheet.CurrencyCode,
		"LaborRate":   fmt.Sprintf("%.2f", sheet.LaborRatePerHour),
		"PriceSheet":  formatPriceSheet(sheet),
	})
}

// formatPriceSheet renders material prices one per line in sorted order,
// so identical inputs produce identical prompts.
func formatPriceSheet(sheet types.MarketPriceSheet) string {
	names := make([]string, 0, len(sheet.MaterialUnitPrices))
	for name := range sheet.MaterialUnitPrices {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("- %s: %.2f\n", name, sheet.MaterialUnitPrices[name]))
	}
	return sb.String()
}

// parseEstimate validates and decodes the model's JSON output
func parseEstimate(jsonText string) (*types.CostEstimate, error) {
	jsonText = llm.CleanJSONBlock(jsonText)

	if err := schemas.ValidateArtifact(schemas.SchemaCostEstimate, jsonText); err != nil {
		return nil, &ParseError{
			Message: "cost estimate violates output schema",
			Cause:   err,
		}
	}

	var est types.CostEstimate
	if err := json.Unmarshal([]byte(jsonText), &est); err != nil {
		return nil, &ParseError{
			Message: "failed to parse cost estimate JSON",
			Cause:   err,
		}
	}

	return &est, nil
}
