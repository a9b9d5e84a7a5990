// Package blueprint extracts scope, warnings, quantities and required
// materials from an uploaded architectural document via multimodal LLM
// analysis.
package blueprint

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/haitham/binaa-planner/internal/llm"
	"github.com/haitham/binaa-planner/internal/prompts"
	"github.com/haitham/binaa-planner/internal/schemas"
	"github.com/haitham/binaa-planner/internal/types"
)

// Analyze extracts findings from a blueprint document encoded as a data URI.
func Analyze(ctx context.Context, documentDataURI string, apiKey string) (*types.BlueprintFindings, error) {
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

	return WithClient(ctx, client, documentDataURI)
}

// WithClient analyzes a blueprint using an existing LLM client.
func WithClient(ctx context.Context, client llm.Client, documentDataURI string) (*types.BlueprintFindings, error) {
	mimeType, data, err := DecodeDataURI(documentDataURI)
	if err != nil {
		return nil, err
	}

	prompt := prompts.MustGet("blueprint.json", "analyze-blueprint")

	responseText, err := client.GenerateJSONWithDocument(ctx, prompt, mimeType, data, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to analyze blueprint",
			Cause:   err,
		}
	}

	return parseFindings(responseText)
}

// parseFindings validates and decodes the model's JSON output
func parseFindings(jsonText string) (*types.BlueprintFindings, error) {
	jsonText = llm.CleanJSONBlock(jsonText)

	if err := schemas.ValidateArtifact(schemas.SchemaBlueprintFindings, jsonText); err != nil {
		return nil, &ParseError{
			Message: "blueprint findings violate output schema",
			Cause:   err,
		}
	}

	var findings types.BlueprintFindings
	if err := json.Unmarshal([]byte(jsonText), &findings); err != nil {
		return nil, &ParseError{
			Message: "failed to parse blueprint findings JSON",
			Cause:   err,
		}
	}

	for i, w := range findings.Warnings {
		if !w.Category.Valid() {
			return nil, &ParseError{
				Message: fmt.Sprintf("warnings[%d].category %q outside closed set", i, w.Category),
			}
		}
		if !w.Severity.Valid() {
			return nil, &ParseError{
				Message: fmt.Sprintf("warnings[%d].severity %q outside closed set", i, w.Severity),
			}
		}
	}

	// nil maps/slices decode from empty JSON; normalize so callers can
	// range without nil checks.
	if findings.Quantities.ObjectCounts == nil {
		findings.Quantities.ObjectCounts = map[string]int{}
	}
	if findings.Warnings == nil {
		findings.Warnings = []types.BlueprintWarning{}
	}
	if findings.RequiredItems == nil {
		findings.RequiredItems = []types.RequiredItem{}
	}

	return &findings, nil
}
