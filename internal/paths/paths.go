// Package paths provides the path canonicalization strategy used when
// loading a project.
package paths

import (
	"path/filepath"
	"strings"
)

// Normalizer canonicalizes a filesystem path to an absolute, resolved
// form. Implementations never fail: a path that cannot be resolved
// (typically because it does not exist) is returned lexically cleaned
// instead. Loading accepts an injected Normalizer so tests can observe
// exactly which paths were normalized without touching the filesystem.
type Normalizer interface {
	Normalize(path string) string
}

// Real is the production Normalizer. It makes the path absolute,
// resolves symlinks, and cleans the result.
type Real struct{}

// Normalize implements Normalizer.
func (Real) Normalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	// Nonexistent paths are tolerated; the cleaned form is used as-is.
	return filepath.Clean(abs)
}

// EnsureTrailingSeparator guarantees the path ends in a separator so
// include-directory lookups can concatenate header names directly.
func EnsureTrailingSeparator(path string) string {
	if path == "" || strings.HasSuffix(path, "/") {
		return path
	}
	return path + "/"
}
