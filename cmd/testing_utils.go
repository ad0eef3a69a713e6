// Package cmd testing utilities shared between the command tests.
// This file provides common functions for setting up test project
// directories, capturing output, and verifying expected filesystem state.
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	logger "github.com/sproutenv/sprout/internal/logging"

	"github.com/spf13/cobra"
)

// setupTestProject creates a temp project directory with the standard
// templates in place and chdirs into it. State is restored via t.Cleanup.
func setupTestProject(t *testing.T) string {
	t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	tempDir, err := os.MkdirTemp("", "sprout-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}

	// Resolve symlinks so path comparisons are stable on macOS.
	tempDir, err = filepath.EvalSymlinks(tempDir)
	if err != nil {
		t.Fatalf("Failed to resolve temp directory: %v", err)
	}

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		os.RemoveAll(tempDir)
		ResetGlobalState()
	})

	writeTestTemplate(t, tempDir, filepath.Join("templates", "env.example"), "APP_KEY=changeme\n")
	writeTestTemplate(t, tempDir, filepath.Join("templates", "env.default"), "APP_KEY=default\n")
	writeTestTemplate(t, tempDir, filepath.Join("templates", "environment.example"), "DB_URL=changeme\n")

	return tempDir
}

func writeTestTemplate(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create template directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write template: %v", err)
	}
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// createTestCLI creates a complete CLI instance for testing with the
// specified env subcommand, extra args, and flags.
func createTestCLI(subcommand string, extraArgs []string, verboseFlag, debugFlag bool) *cobra.Command {
	// Set global flags for the actual command implementations
	verbose = verboseFlag
	debug = debugFlag

	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}

	// Create a fresh root command for this test
	rootCmd := &cobra.Command{
		Use:   "sprout",
		Short: "Sprout - A CLI for bootstrapping project environment files.",
	}

	rootCmd.AddCommand(EnvCmd)

	args := append([]string{"env", subcommand}, extraArgs...)
	rootCmd.SetArgs(args)

	if err := EnvCmd.PersistentFlags().Set("verbose", fmt.Sprintf("%t", verboseFlag)); err != nil {
		log.Fatalf("Failed to set verbose flag for testing: %s", err)
	}
	if err := EnvCmd.PersistentFlags().Set("debug", fmt.Sprintf("%t", debugFlag)); err != nil {
		log.Fatalf("Failed to set debug flag for testing: %s", err)
	}

	return rootCmd
}

// runInitCommand runs `sprout env init` with the given extra args and
// returns the combined output.
func runInitCommand(t *testing.T, extraArgs ...string) (string, error) {
	t.Helper()
	return captureOutput(func() error {
		cmd := createTestCLI("init", extraArgs, false, false)
		return cmd.Execute()
	})
}

// runStatusCommand runs `sprout env status` with the given extra args and
// returns the combined output.
func runStatusCommand(t *testing.T, extraArgs ...string) (string, error) {
	t.Helper()
	return captureOutput(func() error {
		cmd := createTestCLI("status", extraArgs, false, false)
		return cmd.Execute()
	})
}

// snapshotTree records the content of every regular file under root,
// keyed by relative path.
func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()

	snapshot := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		snapshot[rel] = string(content)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to snapshot tree: %v", err)
	}
	return snapshot
}

// verifySeededLayout verifies that the full environment layout exists.
func verifySeededLayout(t *testing.T, root string) {
	t.Helper()

	for _, f := range []string{".env", ".env.dev", ".env.test", ".env.prod"} {
		if _, err := os.Stat(filepath.Join(root, f)); os.IsNotExist(err) {
			t.Errorf("%s was not created", f)
		}
	}

	info, err := os.Stat(filepath.Join(root, ".secrets", "keys"))
	if err != nil {
		t.Errorf(".secrets/keys directory was not created: %v", err)
	} else if !info.IsDir() {
		t.Errorf(".secrets/keys is not a directory")
	}
}
