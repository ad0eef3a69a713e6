package utils

import (
	"fmt"
	"path/filepath"
)

// GetProjectName returns the name of the current project directory.
// For an uninitialized project this is the working directory's base name.
func GetProjectName() (string, error) {
	root, err := ResolveProjectRoot()
	if err != nil {
		return "", fmt.Errorf("failed to get project directory: %w", err)
	}
	return filepath.Base(root), nil
}
