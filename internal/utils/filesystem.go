package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// FindProjectSproutRoot traverses up directories to find the project's Sprout root,
// marked by a .sprout directory. Returns the path to the project root if found,
// empty string otherwise. Stops searching one level above the home directory.
func FindProjectSproutRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	for {
		if currentDir == path.Join(homeDir, "..") {
			return "", nil
		}

		sproutDir := filepath.Join(currentDir, ".sprout")
		fileInfo, err := os.Stat(sproutDir)
		if err == nil {
			if fileInfo.IsDir() {
				return currentDir, nil
			}
		} else if !os.IsNotExist(err) {
			// Return any error that's not "file not found" (like permission issues)
			return "", fmt.Errorf("error checking for .sprout directory at %s: %w", currentDir, err)
		}

		parentDir := filepath.Dir(currentDir)

		// Reached the filesystem root without finding .sprout
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// ResolveProjectRoot returns the enclosing Sprout project root, or the working
// directory when the project has not been initialized yet.
func ResolveProjectRoot() (string, error) {
	root, err := FindProjectSproutRoot()
	if err != nil {
		return "", err
	}
	if root != "" {
		return root, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}
