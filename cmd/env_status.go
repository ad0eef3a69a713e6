package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sproutenv/sprout/internal/bootstrap"
	"github.com/sproutenv/sprout/internal/configs"
	"github.com/sproutenv/sprout/internal/ui"
	"github.com/sproutenv/sprout/internal/utils"

	"github.com/spf13/cobra"
)

var statusJSONOutput bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSONOutput, "json", false, "output in JSON format")
}

func resetStatusCommandState() {
	statusJSONOutput = false
}

// EntryKind distinguishes the kinds of paths the status report covers.
type EntryKind string

const (
	// KindFile is a managed secrets file.
	KindFile EntryKind = "file"
	// KindTemplate is a checked-in seed template.
	KindTemplate EntryKind = "template"
	// KindDirectory is the secrets directory.
	KindDirectory EntryKind = "directory"
)

// EntryStatus holds the existence state of one managed path.
type EntryStatus struct {
	Path   string    `json:"path"`
	Kind   EntryKind `json:"kind"`
	Exists bool      `json:"exists"`
}

// StatusResult holds the result of the status command.
type StatusResult struct {
	ProjectName string        `json:"project"`
	Initialized bool          `json:"initialized"`
	Entries     []EntryStatus `json:"entries"`
	Unmanaged   []string      `json:"unmanaged,omitempty"`
	Summary     StatusSummary `json:"summary"`
}

// StatusSummary counts entries by existence.
type StatusSummary struct {
	Present int `json:"present"`
	Missing int `json:"missing"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which environment files and templates exist",
	Long: `Shows the existence state of every path sprout manages: the base
secrets file, the per-environment secrets files, the seed templates, and
the secrets directory. Also lists .env-style files in the project that
sprout does not manage.

The report is read-only; status never creates or modifies anything.

Use --json for machine-readable output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")

		root, err := utils.ResolveProjectRoot()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve project root: %v", err)
		}
		Logger.Debugf("Project root: %s", root)

		layout := configs.DefaultLayout()

		result, err := collectStatus(root, layout)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to collect status: %v", err)
		}

		if statusJSONOutput {
			return outputStatusJSON(result)
		}

		printStatusReport(result)
		return nil
	},
}

// collectStatus builds the existence report for every managed path.
func collectStatus(root string, layout configs.Layout) (StatusResult, error) {
	initialized, err := configs.ProjectConfigExists(root)
	if err != nil {
		return StatusResult{}, err
	}

	projectName := ""
	if initialized {
		config, err := configs.LoadProjectConfig(root)
		if err != nil {
			return StatusResult{}, err
		}
		projectName = config.Project.Name
	}
	if projectName == "" {
		if projectName, err = utils.GetProjectName(); err != nil {
			return StatusResult{}, err
		}
	}

	var entries []EntryStatus
	for _, f := range layout.ManagedFiles() {
		entries = append(entries, entryStatus(root, f, KindFile))
	}
	for _, tpl := range []string{layout.BaseTemplate, layout.BaseTemplateFallback, layout.EnvTemplate} {
		entries = append(entries, entryStatus(root, tpl, KindTemplate))
	}
	entries = append(entries, entryStatus(root, layout.SecretsDir, KindDirectory))

	unmanaged, err := bootstrap.FindUnmanagedEnvFiles(root, layout)
	if err != nil {
		return StatusResult{}, err
	}

	summary := StatusSummary{}
	for _, entry := range entries {
		if entry.Exists {
			summary.Present++
		} else {
			summary.Missing++
		}
	}

	return StatusResult{
		ProjectName: projectName,
		Initialized: initialized,
		Entries:     entries,
		Unmanaged:   unmanaged,
		Summary:     summary,
	}, nil
}

func entryStatus(root, rel string, kind EntryKind) EntryStatus {
	_, err := os.Stat(filepath.Join(root, rel))
	return EntryStatus{Path: rel, Kind: kind, Exists: err == nil}
}

func outputStatusJSON(result StatusResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func printStatusReport(result StatusResult) {
	fmt.Printf("Project: %s\n", result.ProjectName)
	if !result.Initialized {
		fmt.Println(ui.Info.Sprint("→") + " Not initialized, run " + ui.Code.Sprint("sprout env init") + " to bootstrap")
	}
	fmt.Println()

	for _, entry := range result.Entries {
		marker := ui.Success.Sprint("✓")
		note := ""
		if !entry.Exists {
			marker = ui.Error.Sprint("✗")
			note = " " + ui.Muted.Sprint("missing")
		}
		fmt.Printf("  %s %-34s %s%s\n", marker, entry.Path, ui.Muted.Sprint(string(entry.Kind)), note)
	}

	if len(result.Unmanaged) > 0 {
		fmt.Println()
		fmt.Println(ui.Warning.Sprint("⚠") + " Unmanaged env files:")
		for _, path := range result.Unmanaged {
			fmt.Printf("    - %s\n", ui.Path.Sprint(path))
		}
	}

	fmt.Println()
	fmt.Printf("Summary: %d present, %d missing\n", result.Summary.Present, result.Summary.Missing)
}
