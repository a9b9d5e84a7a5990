package blueprint

import (
	"encoding/base64"
	"strings"
)

// supported MIME types for blueprint documents
var supportedMIMETypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
	"application/pdf": true,
}

// DecodeDataURI splits a data URI of the form
// "data:<mime>;base64,<payload>" into its MIME type and decoded bytes.
func DecodeDataURI(dataURI string) (string, []byte, error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return "", nil, &DocumentError{Message: "not a data URI"}
	}

	rest := strings.TrimPrefix(dataURI, "data:")
	comma := strings.Index(rest, ",")
	if comma < 0 {
		return "", nil, &DocumentError{Message: "data URI has no payload separator"}
	}

	meta := rest[:comma]
	payload := rest[comma+1:]

	mimeType := meta
	if idx := strings.Index(meta, ";"); idx >= 0 {
		mimeType = meta[:idx]
		if !strings.Contains(meta[idx:], "base64") {
			return "", nil, &DocumentError{Message: "only base64-encoded data URIs are supported"}
		}
	} else {
		return "", nil, &DocumentError{Message: "only base64-encoded data URIs are supported"}
	}

	if !supportedMIMETypes[mimeType] {
		return "", nil, &DocumentError{Message: "unsupported document type: " + mimeType}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, &DocumentError{Message: "invalid base64 payload", Cause: err}
	}
	if len(data) == 0 {
		return "", nil, &DocumentError{Message: "document payload is empty"}
	}

	return mimeType, data, nil
}

// EncodeDataURI builds a base64 data URI from raw bytes and a MIME type.
func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
