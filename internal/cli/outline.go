package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdview/pkg/parser"
)

func newOutlineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline <file>",
		Short: "Print the heading outline of a Markdown file",
		Long: `Outline extracts the top-level headings of a Markdown file and prints
one line per heading: its stable identifier, its level as indentation,
and its plain text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			headings := parser.ExtractHeadings(parser.Parse(source))
			out := cmd.OutOrStdout()
			for _, h := range headings {
				indent := strings.Repeat("  ", h.Level-1)
				fmt.Fprintf(out, "%s%s %s\n", indent, h.ID, h.Text)
			}
			return nil
		},
	}

	return cmd
}
