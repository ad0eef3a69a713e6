package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sproutenv/sprout/internal/configs"
	sprouterrors "github.com/sproutenv/sprout/internal/errors"
	logger "github.com/sproutenv/sprout/internal/logging"
)

// ActionKind distinguishes the filesystem writes the initializer performs.
type ActionKind string

const (
	// ActionCreateFile means a secrets file was seeded from a template.
	ActionCreateFile ActionKind = "create_file"
	// ActionCreateDir means the secrets directory was created.
	ActionCreateDir ActionKind = "create_dir"
)

// Action describes one filesystem write the initializer performed, or would
// perform in dry-run mode. Paths are relative to the project root.
type Action struct {
	Kind   ActionKind `json:"kind"`
	Path   string     `json:"path"`
	Source string     `json:"source,omitempty"`
}

// Report lists what a Run created and what it left untouched.
type Report struct {
	Created []Action `json:"created"`
	Skipped []string `json:"skipped"`
}

// Options controls a Run.
type Options struct {
	// DryRun records actions without writing anything.
	DryRun bool
	Logger logger.Logger
}

// Run idempotently seeds the environment layout at root: the base secrets
// file, one secrets file per environment label, and the secrets directory.
// Existing entries are never modified. Each step is an independent guard,
// so a partially seeded project is completed rather than rejected.
func Run(root string, layout configs.Layout, opts Options) (*Report, error) {
	report := &Report{}

	if err := ensureBaseFile(root, layout, opts, report); err != nil {
		return report, err
	}

	for _, label := range layout.Environments {
		if err := ensureEnvFile(root, layout, label, opts, report); err != nil {
			return report, err
		}
	}

	if err := ensureSecretsDir(root, layout, opts, report); err != nil {
		return report, err
	}

	return report, nil
}

// ensureBaseFile seeds the base secrets file from the primary template,
// falling back to the fallback template when the primary is absent.
func ensureBaseFile(root string, layout configs.Layout, opts Options, report *Report) error {
	exists, err := targetExists(root, layout.BaseFile)
	if err != nil {
		return err
	}
	if exists {
		opts.Logger.Infof("%s already exists, leaving it untouched", layout.BaseFile)
		report.Skipped = append(report.Skipped, layout.BaseFile)
		return nil
	}

	template, err := pickTemplate(root, layout.BaseTemplate, layout.BaseTemplateFallback)
	if err != nil {
		return err
	}

	return seedFile(root, layout.BaseFile, template, opts, report)
}

// ensureEnvFile seeds one per-environment secrets file from the shared template.
func ensureEnvFile(root string, layout configs.Layout, label string, opts Options, report *Report) error {
	target := layout.EnvFile(label)

	exists, err := targetExists(root, target)
	if err != nil {
		return err
	}
	if exists {
		opts.Logger.Infof("%s already exists, leaving it untouched", target)
		report.Skipped = append(report.Skipped, target)
		return nil
	}

	template, err := pickTemplate(root, layout.EnvTemplate)
	if err != nil {
		return err
	}

	return seedFile(root, target, template, opts, report)
}

// ensureSecretsDir creates the secrets directory and any missing ancestors.
func ensureSecretsDir(root string, layout configs.Layout, opts Options, report *Report) error {
	dirPath := filepath.Join(root, layout.SecretsDir)

	info, err := os.Stat(dirPath)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", sprouterrors.ErrSecretsPathNotDir, layout.SecretsDir)
		}
		opts.Logger.Infof("%s already exists, leaving it untouched", layout.SecretsDir)
		report.Skipped = append(report.Skipped, layout.SecretsDir)
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check %s: %w", layout.SecretsDir, err)
	}

	opts.Logger.Infof("creating secrets directory %s", layout.SecretsDir)
	if !opts.DryRun {
		if err := os.MkdirAll(dirPath, 0700); err != nil {
			return fmt.Errorf("failed to create %s: %w", layout.SecretsDir, err)
		}
	}
	opts.Logger.Infof("created %s", layout.SecretsDir)

	report.Created = append(report.Created, Action{Kind: ActionCreateDir, Path: layout.SecretsDir})
	return nil
}

// targetExists reports whether a managed file already exists at root.
// A directory squatting on the target path is an error, not a skip.
func targetExists(root, target string) (bool, error) {
	info, err := os.Stat(filepath.Join(root, target))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", target, err)
	}
	if !info.Mode().IsRegular() {
		return false, fmt.Errorf("%w: %s", sprouterrors.ErrTargetNotRegular, target)
	}
	return true, nil
}

// pickTemplate returns the first candidate template that exists.
// When none do, the returned error names every path that was tried.
func pickTemplate(root string, candidates ...string) (string, error) {
	for _, candidate := range candidates {
		info, err := os.Stat(filepath.Join(root, candidate))
		if err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to check template %s: %w", candidate, err)
		}
	}

	if len(candidates) == 1 {
		return "", fmt.Errorf("%w: %s", sprouterrors.ErrTemplateMissing, candidates[0])
	}
	return "", fmt.Errorf("%w: tried %s", sprouterrors.ErrTemplateMissing, strings.Join(candidates, " and "))
}

// seedFile copies a template to a target, byte for byte. The target is
// created exclusively so a file that appears between the existence check
// and the copy is never clobbered.
func seedFile(root, target, template string, opts Options, report *Report) error {
	opts.Logger.Infof("seeding %s from %s", target, template)

	if !opts.DryRun {
		content, err := os.ReadFile(filepath.Join(root, template))
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", template, err)
		}

		out, err := os.OpenFile(filepath.Join(root, target), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", target, err)
		}
		if _, err := out.Write(content); err != nil {
			out.Close()
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
	}

	opts.Logger.Infof("created %s, remember to fill in real values", target)

	report.Created = append(report.Created, Action{Kind: ActionCreateFile, Path: target, Source: template})
	return nil
}

