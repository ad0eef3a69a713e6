package cmd

import (
	logger "github.com/sproutenv/sprout/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	EnvCmd = &cobra.Command{
		Use:   "env",
		Short: "Bootstrap and inspect the project's environment files",
		Long:  `Provides idempotent seeding of the base and per-environment secrets files and the secrets directory, plus a read-only status report.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing env command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	EnvCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	EnvCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	EnvCmd.AddCommand(initCmd)
	EnvCmd.AddCommand(statusCmd)
}

// Helper functions for testing

// GetEnvCmd returns the EnvCmd for testing.
func GetEnvCmd() *cobra.Command {
	return EnvCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetInitCommandState()
	resetStatusCommandState()
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
