package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Expand replaces a leading "~/" with the user's home directory.
func Expand(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Normalize returns the comparison key for a program path: cleaned,
// with both separator styles unified and case folded.
func Normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	path = strings.ReplaceAll(path, `\`, "/")
	return strings.ToLower(filepath.ToSlash(filepath.Clean(filepath.FromSlash(path))))
}

// Same reports whether two program paths refer to the same file
// under case-insensitive comparison.
func Same(a, b string) bool {
	na := Normalize(a)
	return na != "" && na == Normalize(b)
}
