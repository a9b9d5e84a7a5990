package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/haitham/binaa-planner/internal/estimate"
	"github.com/haitham/binaa-planner/internal/types"
)

// leadingNumber matches a permissive numeric prefix of an AI-reported
// quantity string, e.g. "450 m²" or "  1,200.5 sqm".
var leadingNumber = regexp.MustCompile(`^\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

// GeneratePlan runs the full comprehensive-plan pipeline. Steps execute
// strictly sequentially: the estimator's inputs depend on the classifier's
// and analyzer's outputs. Any step failure aborts the run and propagates;
// there are no retries and no partial results.
func (p *Planner) GeneratePlan(ctx context.Context, req types.PlanRequest) (*types.ComprehensivePlan, error) {
	// Step 1: classify the description. Always executes.
	classification, err := p.runClassify(ctx, req.ProjectDescription)
	if err != nil {
		return nil, fmt.Errorf("classifying description: %w", err)
	}
	p.emitProgress(StepClassification,
		fmt.Sprintf("Classified as %s (%s)", classification.ProjectType, classification.QualityTier),
		classification)

	// Step 2: analyze the blueprint when one was supplied, and merge its
	// findings into the effective scope and project size.
	effectiveScope := req.ProjectDescription
	projectSize := DefaultProjectSize
	var findings *types.BlueprintFindings

	if req.BlueprintDocument != "" {
		findings, err = p.runAnalyze(ctx, req.BlueprintDocument)
		if err != nil {
			return nil, fmt.Errorf("analyzing blueprint: %w", err)
		}
		effectiveScope = mergeScope(req.ProjectDescription, findings)
		projectSize = extractProjectSize(findings.Quantities.Area)
		p.emitProgress(StepBlueprintAnalysis,
			fmt.Sprintf("Analyzed blueprint: %d warnings, area %s", len(findings.Warnings), findings.Quantities.Area),
			findings)
	}

	// Step 3: estimate cost from the merged inputs.
	est, err := p.runEstimate(ctx, estimate.Request{
		Location:    req.Location,
		Size:        projectSize,
		ProjectType: classification.ProjectType,
		QualityTier: classification.QualityTier,
		ScopeOfWork: effectiveScope,
		AsOfDate:    p.now().Format("2006-01-02"),
	})
	if err != nil {
		return nil, fmt.Errorf("estimating cost: %w", err)
	}
	p.emitProgress(StepCostEstimate,
		fmt.Sprintf("Estimated total %s", est.TotalCostLabel), est)

	// Step 4: assemble the aggregate.
	plan := &types.ComprehensivePlan{
		ProjectName:       req.ProjectName,
		Location:          req.Location,
		Classification:    *classification,
		BlueprintAnalysis: findings,
		Estimate:          *est,
	}
	p.emitProgress(StepPlanAssembled, "Comprehensive plan assembled", nil)

	return plan, nil
}

func (p *Planner) runClassify(ctx context.Context, description string) (*types.ProjectClassification, error) {
	stepCtx, cancel := context.WithTimeout(ctx, p.stepTimeout)
	defer cancel()
	return p.classifier.Classify(stepCtx, description)
}

func (p *Planner) runAnalyze(ctx context.Context, documentDataURI string) (*types.BlueprintFindings, error) {
	stepCtx, cancel := context.WithTimeout(ctx, p.stepTimeout)
	defer cancel()
	return p.analyzer.Analyze(stepCtx, documentDataURI)
}

func (p *Planner) runEstimate(ctx context.Context, req estimate.Request) (*types.CostEstimate, error) {
	stepCtx, cancel := context.WithTimeout(ctx, p.stepTimeout)
	defer cancel()
	return p.estimator.Estimate(stepCtx, req)
}

// mergeScope concatenates the original description, the blueprint's scope
// summary, and a bullet list of required items. Nothing from the original
// description is dropped, only appended to.
func mergeScope(description string, findings *types.BlueprintFindings) string {
	var sb strings.Builder
	sb.WriteString(description)

	if summary := strings.TrimSpace(findings.ScopeSummary); summary != "" {
		sb.WriteString("\n\nBlueprint scope summary:\n")
		sb.WriteString(summary)
	}

	if len(findings.RequiredItems) > 0 {
		sb.WriteString("\n\nRequired items from blueprint:\n")
		for _, item := range findings.RequiredItems {
			sb.WriteString("- ")
			sb.WriteString(item.Item)
			if item.Reason != "" {
				sb.WriteString(" (")
				sb.WriteString(item.Reason)
				sb.WriteString(")")
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// extractProjectSize pulls the leading numeric token out of an AI-reported
// area string ("450 m²" -> "450"). A string with no parseable leading
// number falls back to the default size rather than failing the run.
func extractProjectSize(area string) string {
	match := leadingNumber.FindStringSubmatch(area)
	if match == nil {
		return DefaultProjectSize
	}
	return strings.ReplaceAll(match[1], ",", "")
}
