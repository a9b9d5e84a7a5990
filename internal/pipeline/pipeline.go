// Package pipeline provides the high-level orchestration for comprehensive
// plan generation: classify the description, optionally analyze the
// blueprint, estimate cost from the merged inputs, and assemble the result.
package pipeline

import (
	"context"
	"time"

	"github.com/haitham/binaa-planner/internal/blueprint"
	"github.com/haitham/binaa-planner/internal/classify"
	"github.com/haitham/binaa-planner/internal/estimate"
	"github.com/haitham/binaa-planner/internal/types"
)

// DefaultProjectSize is the size (m²) assumed when no blueprint was supplied
// or its area string carries no parseable leading number.
const DefaultProjectSize = "500"

// DefaultStepTimeout bounds each hosted-model call. A hung upstream call
// fails the step instead of hanging the whole run.
const DefaultStepTimeout = 2 * time.Minute

// Classifier maps a free-text description to a structured classification.
type Classifier interface {
	Classify(ctx context.Context, description string) (*types.ProjectClassification, error)
}

// Analyzer extracts findings from a blueprint document data URI.
type Analyzer interface {
	Analyze(ctx context.Context, documentDataURI string) (*types.BlueprintFindings, error)
}

// Estimator produces a cost estimate from merged pipeline inputs.
type Estimator interface {
	Estimate(ctx context.Context, req estimate.Request) (*types.CostEstimate, error)
}

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Step names emitted in progress events and used as artifact keys.
const (
	StepClassification    = "classification"
	StepBlueprintAnalysis = "blueprint_analysis"
	StepCostEstimate      = "cost_estimate"
	StepPlanAssembled     = "plan_assembled"
)

// Options holds configuration for a Planner.
type Options struct {
	APIKey      string
	StepTimeout time.Duration    // zero means DefaultStepTimeout
	Now         func() time.Time // zero means time.Now; injected in tests
	OnProgress  ProgressCallback

	// Step overrides. Nil fields use the live Gemini-backed
	// implementations; tests substitute deterministic stubs here.
	Classifier Classifier
	Analyzer   Analyzer
	Estimator  Estimator
}

// Planner orchestrates comprehensive plan generation.
type Planner struct {
	classifier  Classifier
	analyzer    Analyzer
	estimator   Estimator
	stepTimeout time.Duration
	now         func() time.Time
	onProgress  ProgressCallback
}

// New creates a Planner from options, filling unset fields with live
// implementations and defaults.
func New(opts Options) *Planner {
	p := &Planner{
		classifier:  opts.Classifier,
		analyzer:    opts.Analyzer,
		estimator:   opts.Estimator,
		stepTimeout: opts.StepTimeout,
		now:         opts.Now,
		onProgress:  opts.OnProgress,
	}
	if p.classifier == nil {
		p.classifier = &liveClassifier{apiKey: opts.APIKey}
	}
	if p.analyzer == nil {
		p.analyzer = &liveAnalyzer{apiKey: opts.APIKey}
	}
	if p.estimator == nil {
		p.estimator = &liveEstimator{apiKey: opts.APIKey}
	}
	if p.stepTimeout == 0 {
		p.stepTimeout = DefaultStepTimeout
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// emitProgress calls the progress callback if configured
func (p *Planner) emitProgress(step, message string, content any) {
	if p.onProgress != nil {
		p.onProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// live adapters delegate to the Gemini-backed packages. Each call creates
// its own client, matching how the step packages are used standalone.

type liveClassifier struct{ apiKey string }

func (c *liveClassifier) Classify(ctx context.Context, description string) (*types.ProjectClassification, error) {
	return classify.Description(ctx, description, c.apiKey)
}

type liveAnalyzer struct{ apiKey string }

func (a *liveAnalyzer) Analyze(ctx context.Context, documentDataURI string) (*types.BlueprintFindings, error) {
	return blueprint.Analyze(ctx, documentDataURI, a.apiKey)
}

type liveEstimator struct{ apiKey string }

func (e *liveEstimator) Estimate(ctx context.Context, req estimate.Request) (*types.CostEstimate, error) {
	return estimate.Cost(ctx, req, e.apiKey)
}
