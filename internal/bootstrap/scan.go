package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sproutenv/sprout/internal/configs"

	"github.com/bmatcuk/doublestar/v4"
)

// FindUnmanagedEnvFiles returns .env-style files under root that the layout
// does not manage, such as .env.staging or env files nested in service
// directories. Paths are relative to root and sorted. Templates, the
// .sprout marker, and the secrets directory are never reported.
func FindUnmanagedEnvFiles(root string, layout configs.Layout) ([]string, error) {
	managed := make(map[string]bool)
	for _, f := range layout.ManagedFiles() {
		managed[f] = true
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(root, "**", ".env*"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for env files: %w", err)
	}

	var unmanaged []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		rel, err := filepath.Rel(root, match)
		if err != nil {
			continue
		}

		if managed[rel] || inIgnoredDir(rel) {
			continue
		}
		unmanaged = append(unmanaged, rel)
	}

	sort.Strings(unmanaged)
	return unmanaged, nil
}

// inIgnoredDir reports whether a relative path sits inside a directory
// Sprout itself owns.
func inIgnoredDir(rel string) bool {
	segments := strings.Split(filepath.ToSlash(rel), "/")
	for _, segment := range segments[:len(segments)-1] {
		switch segment {
		case configs.SproutDir, ".secrets", "templates":
			return true
		}
	}
	return false
}
