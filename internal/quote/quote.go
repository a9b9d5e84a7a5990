// Package quote drafts client-facing quotation documents from a stored
// project and its cost estimate.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/haitham/binaa-planner/internal/llm"
	"github.com/haitham/binaa-planner/internal/prompts"
	"github.com/haitham/binaa-planner/internal/types"
)

// Generate drafts a quote for a project, creating a client for one call.
func Generate(ctx context.Context, project types.Project, estimate types.CostEstimate, apiKey string) (*types.Quote, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	return WithClient(ctx, client, project, estimate, time.Now())
}

// WithClient drafts a quote using an existing LLM client. The as-of time
// anchors the quote's validity window.
func WithClient(ctx context.Context, client llm.Client, project types.Project, estimate types.CostEstimate, asOf time.Time) (*types.Quote, error) {
	if estimate.TotalCostLabel == "" {
		return nil, fmt.Errorf("estimate has no total cost")
	}

	prompt := buildQuotePrompt(project, estimate, asOf)

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote: %w", err)
	}

	quote, err := parseQuote(responseText)
	if err != nil {
		return nil, err
	}
	quote.ProjectID = project.ID

	return quote, nil
}

func buildQuotePrompt(project types.Project, estimate types.CostEstimate, asOf time.Time) string {
	template := prompts.MustGet("quote.json", "generate-quote")
	return prompts.Format(template, map[string]string{
		"ProjectName":    project.Name,
		"Location":       project.Location,
		"ProjectType":    string(project.ProjectType),
		"QualityTier":    string(project.QualityTier),
		"TotalCostLabel": estimate.TotalCostLabel,
		"BOQSummary":     summarizeBOQ(estimate.BillOfQuantities),
		"AsOfDate":       asOf.Format("2006-01-02"),
	})
}

// summarizeBOQ collapses the bill of quantities into category subtotals so
// the prompt stays small regardless of how many lines the estimate has.
func summarizeBOQ(lines []types.BOQLine) string {
	if len(lines) == 0 {
		return "(no bill of quantities)"
	}

	totals := map[string]float64{}
	var order []string
	for _, line := range lines {
		if _, seen := totals[line.Category]; !seen {
			order = append(order, line.Category)
		}
		totals[line.Category] += line.LineTotal
	}

	var b strings.Builder
	for _, category := range order {
		fmt.Fprintf(&b, "- %s: %.2f\n", category, totals[category])
	}
	return strings.TrimRight(b.String(), "\n")
}

func parseQuote(jsonText string) (*types.Quote, error) {
	jsonText = llm.CleanJSONBlock(jsonText)

	var quote types.Quote
	if err := json.Unmarshal([]byte(jsonText), &quote); err != nil {
		return nil, fmt.Errorf("failed to parse quote JSON: %w", err)
	}

	if quote.Title == "" || quote.Body == "" || quote.TotalLabel == "" {
		return nil, fmt.Errorf("quote missing title, body, or total")
	}
	if _, err := time.Parse("2006-01-02", quote.ValidUntil); err != nil {
		return nil, fmt.Errorf("quote valid_until %q is not a date: %w", quote.ValidUntil, err)
	}

	return &quote, nil
}
