package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProjectConfigRoundTrip(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "sprout-configs-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	config := NewProjectConfig("myproject", []string{"dev", "test", "prod"})
	if config.Project.UUID == "" {
		t.Fatal("NewProjectConfig should assign a project UUID")
	}

	if err := SaveProjectConfig(tempDir, config); err != nil {
		t.Fatalf("SaveProjectConfig failed: %v", err)
	}

	exists, err := ProjectConfigExists(tempDir)
	if err != nil {
		t.Fatalf("ProjectConfigExists failed: %v", err)
	}
	if !exists {
		t.Error("ProjectConfigExists should be true after save")
	}

	loaded, err := LoadProjectConfig(tempDir)
	if err != nil {
		t.Fatalf("LoadProjectConfig failed: %v", err)
	}

	if loaded.Project.UUID != config.Project.UUID {
		t.Errorf("UUID = %q, want %q", loaded.Project.UUID, config.Project.UUID)
	}
	if loaded.Project.Name != "myproject" {
		t.Errorf("Name = %q, want %q", loaded.Project.Name, "myproject")
	}
	if len(loaded.Environments) != 3 {
		t.Errorf("Environments = %v, want 3 labels", loaded.Environments)
	}
}

func TestLoadProjectConfigMissing(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "sprout-configs-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	config, err := LoadProjectConfig(tempDir)
	if err != nil {
		t.Fatalf("LoadProjectConfig on missing marker should not error: %v", err)
	}
	if config.Project.UUID != "" {
		t.Errorf("missing marker should load as empty config, got UUID %q", config.Project.UUID)
	}

	exists, err := ProjectConfigExists(tempDir)
	if err != nil {
		t.Fatalf("ProjectConfigExists failed: %v", err)
	}
	if exists {
		t.Error("ProjectConfigExists should be false before save")
	}
}

func TestSaveProjectConfigCreatesParents(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "sprout-configs-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	root := filepath.Join(tempDir, "nested", "project")
	if err := SaveProjectConfig(root, NewProjectConfig("nested", []string{"dev"})); err != nil {
		t.Fatalf("SaveProjectConfig failed: %v", err)
	}

	if _, err := os.Stat(ProjectConfigPath(root)); err != nil {
		t.Errorf("config.toml was not created: %v", err)
	}
}
