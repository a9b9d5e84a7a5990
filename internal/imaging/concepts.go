// Package imaging generates design concept renders. The exterior and
// interior concepts are mutually independent, so the two generations run
// concurrently.
package imaging

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/haitham/binaa-planner/internal/llm"
	"github.com/haitham/binaa-planner/internal/prompts"
	"github.com/haitham/binaa-planner/internal/types"
)

// ImageGenerator is the hosted image-generation boundary.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, string, error)
}

// GenerateConcepts produces the exterior and interior concept renders for
// a design prompt. Either both artifacts come back or the call fails with
// a descriptive error; a partial result is never returned.
func GenerateConcepts(ctx context.Context, gen ImageGenerator, designPrompt string) (*types.ConceptImages, error) {
	if designPrompt == "" {
		return nil, fmt.Errorf("design prompt is empty")
	}

	exteriorPrompt := prompts.Format(
		prompts.MustGet("imaging.json", "exterior-concept"),
		map[string]string{"DesignPrompt": designPrompt},
	)
	interiorPrompt := prompts.Format(
		prompts.MustGet("imaging.json", "interior-concept"),
		map[string]string{"DesignPrompt": designPrompt},
	)

	images := &types.ConceptImages{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, mime, err := gen.GenerateImage(gCtx, exteriorPrompt)
		if err != nil {
			return fmt.Errorf("exterior concept generation failed: %w", err)
		}
		images.Exterior = data
		images.ExteriorMIME = mime
		return nil
	})

	g.Go(func() error {
		data, mime, err := gen.GenerateImage(gCtx, interiorPrompt)
		if err != nil {
			return fmt.Errorf("interior concept generation failed: %w", err)
		}
		images.Interior = data
		images.InteriorMIME = mime
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The hosted model can succeed yet return no image part.
	if len(images.Exterior) == 0 || len(images.Interior) == 0 {
		return nil, fmt.Errorf("expected 2 concept images, got %d", countPresent(images))
	}

	return images, nil
}

func countPresent(images *types.ConceptImages) int {
	n := 0
	if len(images.Exterior) > 0 {
		n++
	}
	if len(images.Interior) > 0 {
		n++
	}
	return n
}

// GenerateConceptsWithKey is a convenience wrapper that builds a Gemini
// client for one generation run.
func GenerateConceptsWithKey(ctx context.Context, apiKey, designPrompt string) (*types.ConceptImages, error) {
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	return GenerateConcepts(ctx, client, designPrompt)
}
