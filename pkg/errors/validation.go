package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ModelExtension is the file extension accepted for LDraw models.
const ModelExtension = ".ldr"

// maxFilenameLength bounds user-supplied model names.
const maxFilenameLength = 256

// ValidateModelFilename validates an uploaded model filename.
// It must be a plain basename (no path separators, no control characters)
// ending in .ldr, compared case-insensitively.
func ValidateModelFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "model filename cannot be empty")
	}
	if len(name) > maxFilenameLength {
		return New(ErrCodeInvalidInput, "model filename too long (max %d characters)", maxFilenameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "model filename contains invalid control characters")
		}
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "model filename cannot contain path separators")
	}
	if !strings.EqualFold(filepath.Ext(name), ModelExtension) {
		return New(ErrCodeInvalidInput, "model filename must end in %s: %q", ModelExtension, name)
	}
	return nil
}
