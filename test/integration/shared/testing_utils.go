// Package shared provides utilities for Sprout integration tests.
package shared

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sproutenv/sprout/cmd"

	"github.com/spf13/cobra"
)

// SetupTestProject creates a temp project with the standard templates and
// chdirs into it. The original state is restored via t.Cleanup.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	tempDir, err := os.MkdirTemp("", "sprout-integration-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}

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
		cmd.ResetGlobalState()
	})

	WriteTemplate(t, tempDir, filepath.Join("templates", "env.example"), "APP_KEY=changeme\n")
	WriteTemplate(t, tempDir, filepath.Join("templates", "env.default"), "APP_KEY=default\n")
	WriteTemplate(t, tempDir, filepath.Join("templates", "environment.example"), "DB_URL=changeme\n")

	return tempDir
}

// WriteTemplate writes a template file under root, creating parents.
func WriteTemplate(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create template directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write template: %v", err)
	}
}

// RunCommand executes `sprout env <subcommand> [args...]` through a fresh
// root command and returns the combined stdout and stderr.
func RunCommand(t *testing.T, subcommand string, args ...string) (string, error) {
	t.Helper()

	rootCmd := &cobra.Command{
		Use:   "sprout",
		Short: "Sprout - A CLI for bootstrapping project environment files.",
	}
	rootCmd.AddCommand(cmd.GetEnvCmd())
	rootCmd.SetArgs(append([]string{"env", subcommand}, args...))

	return captureOutput(func() error {
		return rootCmd.Execute()
	})
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stdoutReader)
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stderrReader)
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}
