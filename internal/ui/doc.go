// Package ui provides semantic text formatting for CLI output.
//
// This package defines formatters for different types of content (commands,
// paths, status indicators) that render appropriately based on terminal
// capabilities. When colors are available, content is colorized. When
// NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations (backticks, parentheses) are used instead.
//
// # Semantic Formatters
//
// Use the appropriate formatter for the content type:
//
//	ui.Code.Sprint("sprout env init")   // Runnable commands
//	ui.Path.Sprint(".env.dev")          // File paths
//	ui.Success.Sprint("✓")              // Success indicators
//	ui.Error.Sprint("✗")                // Error indicators
//	ui.Warning.Sprint("[dry-run]")      // Warnings
//	ui.Info.Sprint("→")                 // Informational hints
//	ui.Muted.Sprint("already exists")   // De-emphasized text
//
// # Color Behavior
//
// Colors are disabled when:
//   - NO_COLOR environment variable is set (any value)
//   - Terminal doesn't support colors (TERM=dumb, not a TTY)
package ui
