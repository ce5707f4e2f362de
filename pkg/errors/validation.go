package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates an output or scene file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
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

// renderFormats are the output formats the render command accepts.
var renderFormats = map[string]bool{
	"dot": true,
	"svg": true,
	"png": true,
}

// ValidateRenderFormat validates a render output format name.
func ValidateRenderFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !renderFormats[strings.ToLower(format)] {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want dot, svg, or png)", format)
	}
	return nil
}
