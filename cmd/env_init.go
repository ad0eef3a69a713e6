package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sproutenv/sprout/internal/bootstrap"
	"github.com/sproutenv/sprout/internal/configs"
	sprouterrors "github.com/sproutenv/sprout/internal/errors"
	"github.com/sproutenv/sprout/internal/ui"
	"github.com/sproutenv/sprout/internal/utils"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var initDryRun bool

func init() {
	initCmd.Flags().BoolVar(&initDryRun, "dry-run", false, "show what would be created without writing anything")
}

// resetInitCommandState resets the init command's global state for testing.
func resetInitCommandState() {
	initDryRun = false
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Seeds the environment files and secrets directory from templates",
	Long: `Idempotently bootstraps the project's environment layout:

  - the base secrets file (.env), seeded from templates/env.example or,
    when that is absent, templates/env.default
  - one secrets file per environment (.env.dev, .env.test, .env.prod),
    each seeded from templates/environment.example
  - the .secrets/keys directory for key material

Files that already exist are never modified, so rerunning init on a set up
project is always safe. A missing template aborts with an error naming
every path that was tried.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Sprouting environment files...", verbose)
		defer cleanup()

		root, err := utils.ResolveProjectRoot()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve project root: %v", err)
		}
		Logger.Debugf("Project root: %s", root)

		layout := configs.DefaultLayout()

		markerExists, err := configs.ProjectConfigExists(root)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to check project marker: %v", err)
		}

		report, err := bootstrap.Run(root, layout, bootstrap.Options{
			DryRun: initDryRun,
			Logger: Logger,
		})
		if err != nil {
			if errors.Is(err, sprouterrors.ErrTemplateMissing) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
					ui.Info.Sprint("→") + " Add the template, then run " + ui.Code.Sprint("sprout env init") + " again"
				return err
			}
			return Logger.ErrorfAndReturn("failed to seed environment files: %v", err)
		}

		// Record the project marker on the first real run.
		firstInit := !markerExists && !initDryRun
		if firstInit {
			Logger.Debugf("Writing project marker")
			projectName, err := utils.GetProjectName()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to get project name: %v", err)
			}
			config := configs.NewProjectConfig(projectName, layout.Environments)
			if err := configs.SaveProjectConfig(root, config); err != nil {
				return Logger.ErrorfAndReturn("failed to save project marker: %v", err)
			}
			Logger.Infof("Project marker written for %s", projectName)
		}

		if firstInit && !verbose && !debug {
			// Show the banner once, on the run that set the project up.
			spinner.Stop()
			fmt.Println()
			figure.NewColorFigure("Sprout", "alligator2", "green", true).Print()
			fmt.Println()
		}

		if len(report.Created) > 0 && !initDryRun {
			Logger.WarnfUser("Remember: never commit seeded secrets files to version control")
		}

		spinner.FinalMSG = initFinalMessage(report, initDryRun)
		return nil
	},
}

// initFinalMessage renders the per-action notices and the completion notice.
func initFinalMessage(report *bootstrap.Report, dryRun bool) string {
	var b strings.Builder

	if len(report.Created) == 0 {
		b.WriteString(ui.Success.Sprint("✓") + " Environment already set up, nothing to create\n")
		b.WriteString(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("sprout env status") + " to inspect the layout")
		return b.String()
	}

	for _, action := range report.Created {
		switch {
		case dryRun && action.Kind == bootstrap.ActionCreateDir:
			b.WriteString(ui.Warning.Sprint("[dry-run]") + " Would create directory " + ui.Path.Sprint(action.Path) + "\n")
		case dryRun:
			b.WriteString(ui.Warning.Sprint("[dry-run]") + " Would create " + ui.Path.Sprint(action.Path) +
				" from " + ui.Path.Sprint(action.Source) + "\n")
		case action.Kind == bootstrap.ActionCreateDir:
			b.WriteString(ui.Success.Sprint("✓") + " Created directory " + ui.Path.Sprint(action.Path) + "\n")
		default:
			b.WriteString(ui.Success.Sprint("✓") + " Created " + ui.Path.Sprint(action.Path) +
				" from " + ui.Path.Sprint(action.Source) + "\n")
		}
	}

	if dryRun {
		b.WriteString(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("sprout env init") + " without " +
			ui.Code.Sprint("--dry-run") + " to apply")
		return b.String()
	}

	b.WriteString(ui.Success.Sprint("✓") + " Environment bootstrap complete\n")
	b.WriteString(ui.Info.Sprint("→") + " The seeded files contain placeholder values\n")
	b.WriteString(ui.Info.Sprint("→") + " Verify that all created files contain correct values before starting the app")
	return b.String()
}
