package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ProjectConfig is the marker written to .sprout/config.toml on first
// initialization. It records when and for which environments the project
// was bootstrapped; it is never an input to seeding decisions.
type ProjectConfig struct {
	Project      Project  `toml:"project"`
	Environments []string `toml:"environments"`
}

type Project struct {
	UUID      string    `toml:"project_uuid"`
	Name      string    `toml:"name"`
	CreatedAt time.Time `toml:"created_at"`
}

// ProjectConfigPath returns the marker path for a project root.
func ProjectConfigPath(root string) string {
	return filepath.Join(root, SproutDir, "config.toml")
}

// ProjectConfigExists reports whether the project marker has been written.
func ProjectConfigExists(root string) (bool, error) {
	_, err := os.Stat(ProjectConfigPath(root))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check project config: %w", err)
	}
	return true, nil
}

// LoadProjectConfig loads the project marker. A missing marker returns an
// empty config, not an error.
func LoadProjectConfig(root string) (*ProjectConfig, error) {
	config := &ProjectConfig{}

	configPath := ProjectConfigPath(root)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	return config, nil
}

// SaveProjectConfig writes the project marker.
func SaveProjectConfig(root string, config *ProjectConfig) error {
	if err := SaveTOML(ProjectConfigPath(root), config); err != nil {
		return fmt.Errorf("failed to save project config: %w", err)
	}
	return nil
}

// NewProjectConfig builds the marker for a freshly initialized project.
func NewProjectConfig(name string, environments []string) *ProjectConfig {
	return &ProjectConfig{
		Project: Project{
			UUID:      uuid.New().String(),
			Name:      name,
			CreatedAt: time.Now().UTC(),
		},
		Environments: append([]string(nil), environments...),
	}
}
