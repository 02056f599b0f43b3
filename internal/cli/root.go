// Package cli provides the Cobra command structure for mdview.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdview/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdview command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdview",
		Short: "Inspect the Markdown content pipeline from the command line",
		Long: `mdview runs the Markdown content pipeline used by document viewers:
parsing, block rendering, outline extraction, syntax highlighting, and
text search. Each subcommand exposes one pipeline stage, printing its
typed output for inspection or scripting.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newRenderCommand(&color))
	rootCmd.AddCommand(newOutlineCommand())
	rootCmd.AddCommand(newSearchCommand())
	rootCmd.AddCommand(newHighlightCommand())
	rootCmd.AddCommand(newToggleCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
