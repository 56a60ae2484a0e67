// Package cli implements the dockai command line.  The parse command runs the
// docking pipeline offline on local files; serve starts the API server.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand creates the root cobra command with all subcommands.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dockai",
		Short:   "DockAI — normalize molecular docking results for 3D viewing",
		Long:    "DockAI turns an AutoDock-Vina score report and a PDBQT/PDB structure file\ninto a render-ready dataset: per-pose atoms, bonds, and binding affinities.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newServeCmd())
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}
