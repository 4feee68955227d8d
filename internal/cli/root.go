// Package cli implements the erdcraft command-line interface.
//
// This package provides non-interactive commands around the layout core:
// arranging a schema into diagram positions, computing focus-mode layouts,
// and exporting laid-out diagrams for external viewers. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
//   - arrange: compute positions for a schema, incrementally or from scratch
//   - focus: lay out one table and its direct references
//   - export: emit a schema (optionally laid out) as DOT, SVG, or PNG
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so the layout engine can report mode
// selection, fallbacks, and crossing statistics.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/erdcraft/erdcraft/pkg/buildinfo"
)

// Execute runs the erdcraft CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "erdcraft",
		Short:        "erdcraft arranges database schemas into readable ER diagrams",
		Long:         `erdcraft computes automatic layouts for entity-relationship diagrams: tables are ranked hierarchically by their foreign-key references, grouped clusters are packed onto shelves, and focus mode isolates one table with its direct neighbors.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newArrangeCmd())
	root.AddCommand(newFocusCmd())
	root.AddCommand(newExportCmd())

	return root.ExecuteContext(ctx)
}
