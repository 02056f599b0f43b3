package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdview/internal/logging"
	"github.com/yaklabco/mdview/pkg/search"
)

func newSearchCommand() *cobra.Command {
	var regex bool
	var caseSensitive bool

	cmd := &cobra.Command{
		Use:   "search <file> <query>",
		Short: "Find matches of a query in a Markdown file",
		Long: `Search scans the raw source of a Markdown file and prints one line per
match: the 1-based line number and the byte range of the hit. Matching
is case-insensitive unless --case-sensitive is given; --regex compiles
the query as a regular expression, and an invalid pattern simply yields
no matches.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			opts := search.Options{
				CaseSensitive: caseSensitive,
				Regex:         regex,
			}
			matches := search.FindMatches(args[1], string(source), opts)
			logging.Default().Debug("search complete",
				logging.FieldQuery, args[1],
				logging.FieldMatches, len(matches),
			)

			out := cmd.OutOrStdout()
			for _, m := range matches {
				fmt.Fprintf(out, "%d:%d-%d %s\n",
					m.Line, m.Span.Start, m.Span.End,
					source[m.Span.Start:m.Span.End])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&regex, "regex", false, "treat the query as a regular expression")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "match case exactly")

	return cmd
}
