package services

import (
	"path"
	"path/filepath"
	"strings"
)

// sanitizeKey normalizes a client-supplied object path: separators become
// "/", "." segments collapse, and a trailing "/" (folder path) survives
// cleaning. Anything that is empty after cleaning or escapes its own root
// is rejected.
func sanitizeKey(p string) (string, error) {
	s := filepath.ToSlash(p)
	s = strings.TrimPrefix(s, "/")
	isFolder := strings.HasSuffix(s, "/")

	cleaned := path.Clean(s)
	if cleaned == "" || cleaned == "." {
		return "", invalidArgf("invalid path: %q", p)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", invalidArgf("path escapes root: %q", p)
	}

	if isFolder {
		cleaned += "/"
	}
	return cleaned, nil
}
