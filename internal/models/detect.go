package models

import (
	"path/filepath"
	"strings"
)

// mimeTypes maps declared media types to input types. Parameters such as
// "; charset=utf-8" are stripped before lookup.
var mimeTypes = map[string]InputType{
	"application/pdf":  InputTypeFile,
	"application/json": InputTypeJSON,
	"text/plain":       InputTypeEmail,
	"message/rfc822":   InputTypeEmail,
}

// extensions is the fallback used when the media type is empty or
// unrecognized. Browsers commonly report no type for .eml files.
var extensions = map[string]InputType{
	".pdf":  InputTypeFile,
	".json": InputTypeJSON,
	".txt":  InputTypeEmail,
	".eml":  InputTypeEmail,
}

// DetectInputType runs the two-tier allowed-type check: first the declared
// media type, then the filename extension (case-insensitive). It returns the
// input type to declare to the backend and whether the file is acceptable.
// This is client-side convenience validation only; the backend re-validates.
func DetectInputType(mimeType, filename string) (InputType, bool) {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if t, ok := mimeTypes[mt]; ok {
		return t, true
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if t, ok := extensions[ext]; ok {
		return t, true
	}

	return "", false
}
