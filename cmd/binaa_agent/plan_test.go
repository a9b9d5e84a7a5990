package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlueprintDataURI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floor1.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 0x50, 0x4E, 0x47}, 0644))

	uri, err := blueprintDataURI(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestBlueprintDataURI_PDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.PDF")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	uri, err := blueprintDataURI(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:application/pdf;base64,"))
}

func TestBlueprintDataURI_UnsupportedType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("n/a"), 0644))

	_, err := blueprintDataURI(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported blueprint type")
}

func TestBlueprintDataURI_MissingFile(t *testing.T) {
	_, err := blueprintDataURI("/nonexistent/plan.png")
	assert.Error(t, err)
}

func TestWriteJSON_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, writeJSON(path, map[string]string{"status": "ok"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status": "ok"`)
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestRequireAPIKey_FlagWins(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")

	key, err := requireAPIKey("from-flag")
	require.NoError(t, err)
	assert.Equal(t, "from-flag", key)
}

func TestRequireAPIKey_EnvFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")

	key, err := requireAPIKey("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)
}

func TestRequireAPIKey_Missing(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := requireAPIKey("")
	assert.Error(t, err)
}
