// Package utils holds small filesystem helpers shared across lazycommit packages.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDirPerms is the mode used for directories lazycommit creates.
	DefaultDirPerms = 0o750
	// DefaultFilePerms is the mode used for files lazycommit creates.
	DefaultFilePerms = 0o600
)

// ExpandPath resolves a leading "~" to the user's home directory and
// returns the path cleaned. Paths without a tilde pass through unchanged.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return filepath.Clean(path), nil
}

// IsPathWithin reports whether path sits inside root (or equals it) after
// both are made absolute. Used to validate config-supplied paths before
// writing anywhere near them.
func IsPathWithin(root, path string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
