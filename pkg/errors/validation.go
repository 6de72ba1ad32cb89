package errors

import (
	"strings"
	"unicode"
)

// maxLabelLength bounds vertex labels accepted from files and requests.
const maxLabelLength = 256

// ValidateLabel validates a vertex label read from an input file or an
// HTTP request.
//
// The rules keep labels representable in the line-oriented text format:
//   - No empty labels
//   - No whitespace or control characters
//   - No ':' (separates destination from weight)
//   - Maximum length of 256 characters
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidVertex, "vertex label cannot be empty")
	}

	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidVertex, "vertex label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidVertex, "vertex label %q contains whitespace or control characters", label)
		}
	}

	if strings.Contains(label, ":") {
		return New(ErrCodeInvalidVertex, "vertex label %q cannot contain ':'", label)
	}

	return nil
}

// ValidateFilePath validates a graph or log file path given on the
// command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateFilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
