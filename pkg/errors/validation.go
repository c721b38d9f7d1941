package errors

import (
	"strings"
	"unicode"
)

// ValidatePackageName rejects names that are empty, oversized, contain
// control characters, or carry path-traversal sequences. Registry
// naming rules beyond that are the registry's problem.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains control characters")
		}
	}
	for _, pattern := range []string{"..", "//", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid sequence %q", pattern)
		}
	}
	return nil
}

// ValidateMaxDepth rejects explicit depth limits below one. An unset
// limit (unbounded traversal) is handled by the caller and never
// reaches this check.
func ValidateMaxDepth(depth int) error {
	if depth < 1 {
		return New(ErrCodeInvalidDepth, "max depth must be at least 1, got %d", depth)
	}
	return nil
}

// ValidateOutputPath rejects empty or null-byte-carrying output paths.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "output path contains invalid characters")
	}
	return nil
}
