package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/haitham/binaa-planner/internal/config"
	"github.com/haitham/binaa-planner/internal/server"
)

var (
	serveAddr       string
	serveConfigPath string
	serveUseBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for projects, plan generation, quotes, suppliers, and purchase orders.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address, e.g. :8080 (defaults to the config file, then :8080)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Render thin supplier pages in a headless browser")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	var fileCfg config.Config
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		fileCfg = *loaded
	}

	// Flags and environment win; the config file fills the gaps.
	overlay := config.Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		ListenAddr:  serveAddr,
	}
	merged := overlay.MergeWithDefaults(fileCfg)

	if merged.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if merged.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	cfg := server.Config{
		Addr:        merged.ListenAddr,
		DatabaseURL: merged.DatabaseURL,
		APIKey:      merged.APIKey,
		StepTimeout: merged.StepTimeout(),
		UseBrowser:  serveUseBrowser || fileCfg.UseBrowser,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
