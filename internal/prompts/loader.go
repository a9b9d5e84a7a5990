// Package prompts embeds the LLM prompt templates and resolves them by
// file and key. Each JSON file maps prompt keys to template text with
// {{.Placeholder}} slots.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var templateFiles embed.FS

// catalog holds every embedded template, keyed "file/key". Built once on
// first use; the embedded files cannot change at runtime.
var (
	loadOnce sync.Once
	catalog  map[string]string
	loadErr  error
)

func buildCatalog() {
	catalog = make(map[string]string)

	entries, err := templateFiles.ReadDir(".")
	if err != nil {
		loadErr = fmt.Errorf("failed to list prompt files: %w", err)
		return
	}

	for _, entry := range entries {
		data, err := templateFiles.ReadFile(entry.Name())
		if err != nil {
			loadErr = fmt.Errorf("failed to read prompt file %s: %w", entry.Name(), err)
			return
		}

		var templates map[string]string
		if err := json.Unmarshal(data, &templates); err != nil {
			loadErr = fmt.Errorf("failed to parse prompt file %s: %w", entry.Name(), err)
			return
		}
		for key, text := range templates {
			catalog[entry.Name()+"/"+key] = text
		}
	}
}

// Get returns the template stored under key in the given file.
func Get(filename, key string) (string, error) {
	loadOnce.Do(buildCatalog)
	if loadErr != nil {
		return "", loadErr
	}

	template, ok := catalog[filename+"/"+key]
	if !ok {
		return "", fmt.Errorf("prompt %q not found in %s", key, filename)
	}
	return template, nil
}

// MustGet is Get for templates the program cannot run without.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// Format fills every {{.Key}} slot in the template from data. Templates
// are compiled in and call sites pass fixed key sets, so a slot left
// unfilled is a programming error and panics rather than reaching the
// model as literal placeholder text.
func Format(template string, data map[string]string) string {
	// Check the template's slots before substituting, so placeholder-like
	// text inside a value cannot trip the check.
	rest := template
	for {
		start := strings.Index(rest, "{{.")
		if start < 0 {
			break
		}
		tail := rest[start+3:]
		end := strings.Index(tail, "}}")
		if end < 0 {
			break
		}
		if _, ok := data[tail[:end]]; !ok {
			panic(fmt.Sprintf("prompt placeholder {{.%s}} has no value", tail[:end]))
		}
		rest = tail[end+2:]
	}

	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result
}
