package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"description": "Luxury villa in Riyadh",
		"location": "Riyadh, KSA",
		"listen_addr": ":9090",
		"step_timeout_sec": 90,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "Luxury villa in Riyadh", cfg.Description)
	assert.Equal(t, "Riyadh, KSA", cfg.Location)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 90, cfg.StepTimeoutSec)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := &Config{StepTimeoutSec: -1}
	assert.Error(t, cfg.Validate())
}

func TestValidate_MissingBlueprintFile(t *testing.T) {
	cfg := &Config{Blueprint: "/nonexistent/plan.pdf"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blueprint file not found")
}

func TestValidate_OK(t *testing.T) {
	blueprint := filepath.Join(t.TempDir(), "plan.png")
	require.NoError(t, os.WriteFile(blueprint, []byte("png"), 0644))

	cfg := &Config{Blueprint: blueprint, StepTimeoutSec: 60}
	assert.NoError(t, cfg.Validate())
}

func TestStepTimeout(t *testing.T) {
	cfg := &Config{StepTimeoutSec: 90}
	assert.Equal(t, 90*time.Second, cfg.StepTimeout())

	assert.Zero(t, (&Config{}).StepTimeout())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Location: "Jeddah, KSA"}
	defaults := Config{
		Location:       "Riyadh, KSA",
		APIKey:         "from-file",
		ListenAddr:     ":8080",
		StepTimeoutSec: 120,
	}

	merged := cfg.MergeWithDefaults(defaults)

	// Explicit values win, gaps fill from defaults.
	assert.Equal(t, "Jeddah, KSA", merged.Location)
	assert.Equal(t, "from-file", merged.APIKey)
	assert.Equal(t, ":8080", merged.ListenAddr)
	assert.Equal(t, 120, merged.StepTimeoutSec)
}
