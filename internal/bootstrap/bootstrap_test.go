package bootstrap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sproutenv/sprout/internal/configs"
	sprouterrors "github.com/sproutenv/sprout/internal/errors"
)

// newTestProject creates a project root with the standard templates in place.
func newTestProject(t *testing.T) string {
	t.Helper()

	root, err := os.MkdirTemp("", "sprout-bootstrap-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(root) })

	writeTemplate(t, root, filepath.Join("templates", "env.example"), "APP_KEY=changeme\n")
	writeTemplate(t, root, filepath.Join("templates", "env.default"), "APP_KEY=default\n")
	writeTemplate(t, root, filepath.Join("templates", "environment.example"), "DB_URL=changeme\n")

	return root
}

func writeTemplate(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create template dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write template: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(content)
}

func TestRunSeedsCompleteLayout(t *testing.T) {
	root := newTestProject(t)
	layout := configs.DefaultLayout()

	report, err := Run(root, layout, Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Base file seeded from the primary template.
	if got := readFile(t, filepath.Join(root, ".env")); got != "APP_KEY=changeme\n" {
		t.Errorf(".env content = %q, want primary template content", got)
	}

	// Exactly one per-environment file per label, all equal to the shared template.
	for _, label := range []string{"dev", "test", "prod"} {
		path := filepath.Join(root, ".env."+label)
		if got := readFile(t, path); got != "DB_URL=changeme\n" {
			t.Errorf(".env.%s content = %q, want shared template content", label, got)
		}
	}

	// Secrets directory exists and is a directory.
	info, err := os.Stat(filepath.Join(root, ".secrets", "keys"))
	if err != nil {
		t.Fatalf("secrets directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("secrets path is not a directory")
	}

	// 4 files + 1 directory.
	if len(report.Created) != 5 {
		t.Errorf("Created = %v, want 5 actions", report.Created)
	}
	if len(report.Skipped) != 0 {
		t.Errorf("Skipped = %v, want none on a clean project", report.Skipped)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	root := newTestProject(t)
	layout := configs.DefaultLayout()

	if _, err := Run(root, layout, Options{}); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}

	// Capture modification times after the first run.
	mtimes := make(map[string]time.Time)
	for _, f := range layout.ManagedFiles() {
		info, err := os.Stat(filepath.Join(root, f))
		if err != nil {
			t.Fatalf("Failed to stat %s: %v", f, err)
		}
		mtimes[f] = info.ModTime()
	}

	report, err := Run(root, layout, Options{})
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	// Second run performs zero writes.
	if len(report.Created) != 0 {
		t.Errorf("second run Created = %v, want none", report.Created)
	}
	if len(report.Skipped) != 5 {
		t.Errorf("second run Skipped = %v, want all 5 entries", report.Skipped)
	}
	for f, want := range mtimes {
		info, err := os.Stat(filepath.Join(root, f))
		if err != nil {
			t.Fatalf("Failed to stat %s: %v", f, err)
		}
		if !info.ModTime().Equal(want) {
			t.Errorf("%s was modified by the second run", f)
		}
	}
}

func TestRunNeverOverwritesExistingContent(t *testing.T) {
	root := newTestProject(t)
	layout := configs.DefaultLayout()

	custom := "APP_KEY=my-real-production-key\n"
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte(custom), 0600); err != nil {
		t.Fatalf("Failed to pre-seed .env: %v", err)
	}

	report, err := Run(root, layout, Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := readFile(t, filepath.Join(root, ".env")); got != custom {
		t.Errorf(".env content = %q, want pre-existing content byte-for-byte", got)
	}
	if len(report.Skipped) != 1 || report.Skipped[0] != ".env" {
		t.Errorf("Skipped = %v, want [.env]", report.Skipped)
	}
}

func TestRunFallbackTemplateOrdering(t *testing.T) {
	root := newTestProject(t)
	layout := configs.DefaultLayout()

	// Remove the primary base template so the fallback must be used.
	if err := os.Remove(filepath.Join(root, layout.BaseTemplate)); err != nil {
		t.Fatalf("Failed to remove primary template: %v", err)
	}

	if _, err := Run(root, layout, Options{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := readFile(t, filepath.Join(root, ".env")); got != "APP_KEY=default\n" {
		t.Errorf(".env content = %q, want fallback template content", got)
	}
}

func TestRunMissingBaseTemplates(t *testing.T) {
	root := newTestProject(t)
	layout := configs.DefaultLayout()

	if err := os.Remove(filepath.Join(root, layout.BaseTemplate)); err != nil {
		t.Fatalf("Failed to remove primary template: %v", err)
	}
	if err := os.Remove(filepath.Join(root, layout.BaseTemplateFallback)); err != nil {
		t.Fatalf("Failed to remove fallback template: %v", err)
	}

	_, err := Run(root, layout, Options{})
	if !errors.Is(err, sprouterrors.ErrTemplateMissing) {
		t.Fatalf("Run error = %v, want ErrTemplateMissing", err)
	}

	// No base file was created.
	if _, statErr := os.Stat(filepath.Join(root, ".env")); !os.IsNotExist(statErr) {
		t.Error(".env should not exist after a missing-template failure")
	}
}

func TestRunMissingSharedTemplate(t *testing.T) {
	root := newTestProject(t)
	layout := configs.DefaultLayout()

	if err := os.Remove(filepath.Join(root, layout.EnvTemplate)); err != nil {
		t.Fatalf("Failed to remove shared template: %v", err)
	}

	_, err := Run(root, layout, Options{})
	if !errors.Is(err, sprouterrors.ErrTemplateMissing) {
		t.Fatalf("Run error = %v, want ErrTemplateMissing", err)
	}
}

func TestRunCreatesMissingParentDirectories(t *testing.T) {
	root := newTestProject(t)
	layout := configs.DefaultLayout()

	if _, err := Run(root, layout, Options{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// .secrets/keys requires creating the .secrets parent too.
	info, err := os.Stat(filepath.Join(root, ".secrets", "keys"))
	if err != nil {
		t.Fatalf("nested secrets directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("nested secrets path is not a directory")
	}
}

func TestRunCompletesPartiallySeededProject(t *testing.T) {
	root := newTestProject(t)
	layout := configs.DefaultLayout()

	// Pre-seed only the dev file.
	if err := os.WriteFile(filepath.Join(root, ".env.dev"), []byte("custom\n"), 0600); err != nil {
		t.Fatalf("Failed to pre-seed .env.dev: %v", err)
	}

	report, err := Run(root, layout, Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(report.Created) != 4 {
		t.Errorf("Created = %v, want 4 actions", report.Created)
	}
	if got := readFile(t, filepath.Join(root, ".env.dev")); got != "custom\n" {
		t.Errorf(".env.dev content = %q, want pre-existing content", got)
	}
	if got := readFile(t, filepath.Join(root, ".env.test")); got != "DB_URL=changeme\n" {
		t.Errorf(".env.test content = %q, want shared template content", got)
	}
}

func TestRunDryRunWritesNothing(t *testing.T) {
	root := newTestProject(t)
	layout := configs.DefaultLayout()

	report, err := Run(root, layout, Options{DryRun: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(report.Created) != 5 {
		t.Errorf("dry-run Created = %v, want 5 planned actions", report.Created)
	}

	for _, f := range layout.ManagedFiles() {
		if _, statErr := os.Stat(filepath.Join(root, f)); !os.IsNotExist(statErr) {
			t.Errorf("%s should not exist after a dry run", f)
		}
	}
	if _, statErr := os.Stat(filepath.Join(root, layout.SecretsDir)); !os.IsNotExist(statErr) {
		t.Error("secrets directory should not exist after a dry run")
	}
}

func TestRunRejectsDirectorySquattingOnTarget(t *testing.T) {
	root := newTestProject(t)
	layout := configs.DefaultLayout()

	if err := os.MkdirAll(filepath.Join(root, ".env"), 0755); err != nil {
		t.Fatalf("Failed to create directory at .env: %v", err)
	}

	_, err := Run(root, layout, Options{})
	if !errors.Is(err, sprouterrors.ErrTargetNotRegular) {
		t.Fatalf("Run error = %v, want ErrTargetNotRegular", err)
	}
}
