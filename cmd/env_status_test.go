package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnvStatus contains tests for the `sprout env status` command.
func TestEnvStatus(t *testing.T) {
	t.Run("StatusOnUninitializedProject", func(t *testing.T) {
		tempDir := setupTestProject(t)

		before := snapshotTree(t, tempDir)

		output, err := runStatusCommand(t)
		if err != nil {
			t.Fatalf("Command failed: %v", err)
		}

		if !strings.Contains(output, "Not initialized") {
			t.Errorf("Expected not-initialized notice in output: %s", output)
		}
		if !strings.Contains(output, "missing") {
			t.Errorf("Expected missing entries in output: %s", output)
		}

		// Status never writes.
		after := snapshotTree(t, tempDir)
		if len(before) != len(after) {
			t.Errorf("Status changed the file count: %d -> %d", len(before), len(after))
		}
	})

	t.Run("StatusAfterInit", func(t *testing.T) {
		setupTestProject(t)

		if _, err := runInitCommand(t); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		ResetGlobalState()

		output, err := runStatusCommand(t)
		if err != nil {
			t.Fatalf("Command failed: %v", err)
		}

		if strings.Contains(output, "Not initialized") {
			t.Errorf("Initialized project reported as not initialized: %s", output)
		}
		if !strings.Contains(output, "8 present, 0 missing") {
			t.Errorf("Expected all 8 entries present in output: %s", output)
		}
	})

	t.Run("StatusJSONOutput", func(t *testing.T) {
		setupTestProject(t)

		if _, err := runInitCommand(t); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		ResetGlobalState()

		output, err := runStatusCommand(t, "--json")
		if err != nil {
			t.Fatalf("Command failed: %v", err)
		}

		var result StatusResult
		if jsonErr := json.Unmarshal([]byte(output), &result); jsonErr != nil {
			t.Fatalf("Output is not valid JSON: %v\n%s", jsonErr, output)
		}

		if !result.Initialized {
			t.Error("Initialized = false, want true after init")
		}
		if result.Summary.Missing != 0 {
			t.Errorf("Summary.Missing = %d, want 0", result.Summary.Missing)
		}
		// 4 managed files + 3 templates + 1 directory.
		if len(result.Entries) != 8 {
			t.Errorf("Entries = %d, want 8", len(result.Entries))
		}
	})

	t.Run("StatusReportsUnmanagedEnvFiles", func(t *testing.T) {
		tempDir := setupTestProject(t)

		if _, err := runInitCommand(t); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		ResetGlobalState()

		if err := os.WriteFile(filepath.Join(tempDir, ".env.staging"), []byte("x\n"), 0600); err != nil {
			t.Fatalf("Failed to write .env.staging: %v", err)
		}

		output, err := runStatusCommand(t)
		if err != nil {
			t.Fatalf("Command failed: %v", err)
		}

		if !strings.Contains(output, "Unmanaged env files") {
			t.Errorf("Expected unmanaged section in output: %s", output)
		}
		if !strings.Contains(output, ".env.staging") {
			t.Errorf("Expected .env.staging listed in output: %s", output)
		}
	})
}
