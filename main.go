package main

import (
	"fmt"
	"os"

	"github.com/sproutenv/sprout/cmd"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sprout",
	Short: "Sprout - A CLI for bootstrapping project environment files.",
	Long: `Sprout seeds a project's environment-secrets layout from checked-in
templates: a base .env file, one .env file per declared environment, and a
directory reserved for key material.

Seeding is idempotent. Files that already exist are never touched, so
running sprout on an already set up project is always safe.

Usage:
  sprout <command> [flags]

Available Commands:
  env        Bootstrap and inspect the project's environment files

Run 'sprout help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Sprout! Run 'sprout --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.EnvCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
