package llm

import "strings"

// CleanJSONBlock strips a markdown code fence from a model response.
// Every JSON call here requests application/json output, but models
// still occasionally wrap the payload in ```json fences.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	// Drop the opening fence along with its language tag. The payload
	// may share the fence line, so only discard that line when it holds
	// no JSON.
	if nl := strings.IndexByte(text, '\n'); nl >= 0 && !strings.Contains(text[:nl], "{") {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimPrefix(text, "json")
	}

	if end := strings.LastIndex(text, "```"); end >= 0 {
		text = text[:end]
	}

	return strings.TrimSpace(text)
}
