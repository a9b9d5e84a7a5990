// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Plan inputs
	Description string `json:"description,omitempty"` // Project description text
	Blueprint   string `json:"blueprint,omitempty"`   // Path to a blueprint image or PDF
	Location    string `json:"location,omitempty"`    // Project location, e.g. "Riyadh, KSA"
	ProjectName string `json:"project_name,omitempty"`

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Use headless browser for SPA supplier sites
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Server
	ListenAddr     string `json:"listen_addr,omitempty"`      // HTTP listen address, e.g. ":8080"
	StepTimeoutSec int    `json:"step_timeout_sec,omitempty"` // Per-pipeline-step timeout in seconds
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.StepTimeoutSec < 0 {
		return fmt.Errorf("config error: 'step_timeout_sec' must be non-negative")
	}

	if c.Blueprint != "" {
		if _, err := os.Stat(c.Blueprint); os.IsNotExist(err) {
			return fmt.Errorf("config error: blueprint file not found: %s", c.Blueprint)
		}
	}

	return nil
}

// StepTimeout returns the configured per-step timeout, or zero when unset
// so the pipeline falls back to its own default.
func (c *Config) StepTimeout() time.Duration {
	return time.Duration(c.StepTimeoutSec) * time.Second
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Description == "" {
		result.Description = defaults.Description
	}
	if result.Blueprint == "" {
		result.Blueprint = defaults.Blueprint
	}
	if result.Location == "" {
		result.Location = defaults.Location
	}
	if result.ProjectName == "" {
		result.ProjectName = defaults.ProjectName
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}

	// Int fields: use default if zero
	if result.StepTimeoutSec == 0 {
		result.StepTimeoutSec = defaults.StepTimeoutSec
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
