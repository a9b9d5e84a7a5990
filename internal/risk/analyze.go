// Package risk produces standalone execution-risk reports for a project.
package risk

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/haitham/binaa-planner/internal/llm"
	"github.com/haitham/binaa-planner/internal/prompts"
	"github.com/haitham/binaa-planner/internal/types"
)

// Analyze generates a risk report for a stored project.
func Analyze(ctx context.Context, project types.Project, apiKey string) (*types.RiskReport, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	return WithClient(ctx, client, project)
}

// WithClient analyzes risks using an existing LLM client.
func WithClient(ctx context.Context, client llm.Client, project types.Project) (*types.RiskReport, error) {
	prompt := buildRiskPrompt(project)

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("failed to generate risk report: %w", err)
	}

	return parseReport(responseText)
}

func buildRiskPrompt(project types.Project) string {
	template := prompts.MustGet("risk.json", "analyze-risks")
	return prompts.Format(template, map[string]string{
		"Name":        project.Name,
		"Location":    project.Location,
		"ProjectType": string(project.ProjectType),
		"QualityTier": string(project.QualityTier),
		"Description": project.Description,
	})
}

func parseReport(jsonText string) (*types.RiskReport, error) {
	jsonText = llm.CleanJSONBlock(jsonText)

	var report types.RiskReport
	if err := json.Unmarshal([]byte(jsonText), &report); err != nil {
		return nil, fmt.Errorf("failed to parse risk report JSON: %w", err)
	}

	for i, r := range report.Risks {
		if !r.Severity.Valid() {
			return nil, fmt.Errorf("risks[%d].severity %q outside closed set", i, r.Severity)
		}
	}

	return &report, nil
}
