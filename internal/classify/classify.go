// Package classify maps a free-text project description to a structured
// classification (project type, quality tier, optional design prompt) using
// LLM extraction.
package classify

import (
	"context"
	"encoding/json"

	"github.com/haitham/binaa-planner/internal/llm"
	"github.com/haitham/binaa-planner/internal/prompts"
	"github.com/haitham/binaa-planner/internal/schemas"
	"github.com/haitham/binaa-planner/internal/types"
)

// Description classifies a free-text project description.
// The model output is schema-validated before decoding; a schema violation
// is an error that propagates to the caller.
func Description(ctx context.Context, freeText string, apiKey string) (*types.ProjectClassification, error) {
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

	return WithClient(ctx, client, freeText)
}

// WithClient classifies using an existing LLM client. Used by callers that
// share one client across pipeline steps.
func WithClient(ctx context.Context, client llm.Client, freeText string) (*types.ProjectClassification, error) {
	prompt := buildClassifyPrompt(freeText)

	// Classification is a simple extraction task; TierLite is enough.
	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate classification",
			Cause:   err,
		}
	}

	return parseClassification(responseText)
}

// buildClassifyPrompt constructs the prompt for structured classification
func buildClassifyPrompt(description string) string {
	template := prompts.MustGet("classify.json", "classify-description")
	return prompts.Format(template, map[string]string{
		"Description": description,
	})
}

// parseClassification validates and decodes the model's JSON output
func parseClassification(jsonText string) (*types.ProjectClassification, error) {
	jsonText = llm.CleanJSONBlock(jsonText)

	if err := schemas.ValidateArtifact(schemas.SchemaClassification, jsonText); err != nil {
		return nil, &ParseError{
			Message: "classification violates output schema",
			Cause:   err,
		}
	}

	var classification types.ProjectClassification
	if err := json.Unmarshal([]byte(jsonText), &classification); err != nil {
		return nil, &ParseError{
			Message: "failed to parse classification JSON",
			Cause:   err,
		}
	}

	// The schema already pins both enums; these checks guard against
	// schema drift rather than model misbehavior.
	if !classification.ProjectType.Valid() {
		return nil, &ValidationError{
			Field:   "project_type",
			Message: "not a member of the project type enum",
		}
	}
	if !classification.QualityTier.Valid() {
		return nil, &ValidationError{
			Field:   "quality_tier",
			Message: "not a member of the quality tier enum",
		}
	}

	return &classification, nil
}
