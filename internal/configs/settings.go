package configs

import "path/filepath"

// Layout describes the fixed relative paths Sprout manages inside a project.
// All paths are relative to the project root.
type Layout struct {
	// BaseFile is the base secrets file consumed by the application at startup.
	BaseFile string

	// BaseTemplate is the checked-in template the base file is seeded from.
	BaseTemplate string

	// BaseTemplateFallback is used when BaseTemplate does not exist.
	BaseTemplateFallback string

	// EnvTemplate is the shared template every per-environment file is seeded from.
	EnvTemplate string

	// SecretsDir is the directory reserved for key material.
	SecretsDir string

	// Environments is the ordered list of environment labels.
	Environments []string
}

// DefaultLayout returns the layout every Sprout project uses.
func DefaultLayout() Layout {
	return Layout{
		BaseFile:             ".env",
		BaseTemplate:         filepath.Join("templates", "env.example"),
		BaseTemplateFallback: filepath.Join("templates", "env.default"),
		EnvTemplate:          filepath.Join("templates", "environment.example"),
		SecretsDir:           filepath.Join(".secrets", "keys"),
		Environments:         []string{"dev", "test", "prod"},
	}
}

// EnvFile returns the per-environment secrets file name for a label.
func (l Layout) EnvFile(label string) string {
	return ".env." + label
}

// EnvFiles returns the per-environment secrets file names in label order.
func (l Layout) EnvFiles() []string {
	files := make([]string, 0, len(l.Environments))
	for _, label := range l.Environments {
		files = append(files, l.EnvFile(label))
	}
	return files
}

// ManagedFiles returns every file name the layout manages, base file first.
func (l Layout) ManagedFiles() []string {
	return append([]string{l.BaseFile}, l.EnvFiles()...)
}

// SproutDir is the project marker directory written on first initialization.
const SproutDir = ".sprout"
