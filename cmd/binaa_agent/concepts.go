package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/haitham/binaa-planner/internal/imaging"
)

var conceptsCmd = &cobra.Command{
	Use:   "concepts",
	Short: "Generate exterior and interior design concept renders",
	Long:  "Generates the two design concept images for a design prompt and writes them to the output directory as exterior.* and interior.*.",
	RunE:  runConcepts,
}

var (
	conceptsPrompt string
	conceptsOutDir string
	conceptsAPIKey string
)

func init() {
	conceptsCmd.Flags().StringVarP(&conceptsPrompt, "prompt", "p", "", "Design prompt, e.g. from a classification (required)")
	conceptsCmd.Flags().StringVarP(&conceptsOutDir, "out-dir", "o", ".", "Directory to write the concept images into")
	conceptsCmd.Flags().StringVar(&conceptsAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY)")

	if err := conceptsCmd.MarkFlagRequired("prompt"); err != nil {
		panic(fmt.Sprintf("failed to mark prompt flag as required: %v", err))
	}

	rootCmd.AddCommand(conceptsCmd)
}

func runConcepts(_ *cobra.Command, _ []string) error {
	apiKey, err := requireAPIKey(conceptsAPIKey)
	if err != nil {
		return err
	}

	images, err := imaging.GenerateConceptsWithKey(context.Background(), apiKey, conceptsPrompt)
	if err != nil {
		return fmt.Errorf("concept generation failed: %w", err)
	}

	exteriorPath := filepath.Join(conceptsOutDir, "exterior"+imageExt(images.ExteriorMIME))
	if err := os.WriteFile(exteriorPath, images.Exterior, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exteriorPath, err)
	}

	interiorPath := filepath.Join(conceptsOutDir, "interior"+imageExt(images.InteriorMIME))
	if err := os.WriteFile(interiorPath, images.Interior, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", interiorPath, err)
	}

	fmt.Printf("Wrote %s and %s\n", exteriorPath, interiorPath)
	return nil
}

// imageExt maps a generated image MIME type to a file extension.
func imageExt(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
