package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateProteinToken validates a user-supplied protein token before it is
// used in a remote query or as a file stem.
//
// The rules are intentionally conservative:
//   - No empty tokens
//   - Maximum length of 64 characters
//   - No control characters or whitespace
//   - No path separators or traversal sequences
func ValidateProteinToken(token string) error {
	if token == "" {
		return New(ErrCodeInvalidInput, "protein token cannot be empty")
	}

	if len(token) > 64 {
		return New(ErrCodeInvalidInput, "protein token too long (max 64 characters)")
	}

	for _, r := range token {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "protein token contains whitespace or control characters")
		}
	}

	if strings.ContainsAny(token, "/\\") || strings.Contains(token, "..") {
		return New(ErrCodeInvalidInput, "protein token contains invalid characters: %q", token)
	}

	return nil
}

// GraphFileExt is the extension of graph files produced by the generator.
const GraphFileExt = ".graphml"

// ValidateGraphFileName validates the name of a graph file inside the data
// directory. It must be a bare file name ending in .graphml.
func ValidateGraphFileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "file name cannot be empty")
	}

	if !strings.HasSuffix(name, GraphFileExt) {
		return New(ErrCodeInvalidInput, "file must be a %s file: %q", GraphFileExt, name)
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(name, "/\\") || name != filepath.Base(name) {
		return New(ErrCodeInvalidPath, "file name cannot contain path separators")
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "file name cannot be a hidden file")
	}

	return nil
}

// ValidatePath validates a filesystem path supplied on the command line or
// in configuration.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
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
