package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdview/internal/logging"
	"github.com/yaklabco/mdview/pkg/fsutil"
	"github.com/yaklabco/mdview/pkg/textedit"
)

// ErrFileModified is returned when the target file changed between read
// and write during an in-place edit.
var ErrFileModified = errors.New("file modified externally")

func newToggleCommand() *cobra.Command {
	var state string
	var write bool

	cmd := &cobra.Command{
		Use:   "toggle <file> <index>",
		Short: "Toggle a task checkbox in a Markdown file",
		Long: `Toggle flips the task checkbox at the given 0-based index, counting
task items in source order across the whole file. The result is printed
to stdout; with --write the file is updated in place. An index past the
last task leaves the file unchanged.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var index int
			if _, err := fmt.Sscanf(args[1], "%d", &index); err != nil {
				return fmt.Errorf("%w: invalid task index %q", ErrUsage, args[1])
			}

			var checked bool
			switch state {
			case "checked":
				checked = true
			case "unchecked":
				checked = false
			default:
				return fmt.Errorf("%w: unknown state %q (want checked or unchecked)", ErrUsage, state)
			}

			ctx := cmd.Context()
			source, snap, err := fsutil.ReadFile(ctx, args[0])
			if err != nil {
				return err
			}

			updated := textedit.ToggleTask(string(source), index, checked)
			logging.Default().Debug("toggled task",
				logging.FieldPath, args[0],
				logging.FieldIndex, index,
			)

			if write {
				modified, err := fsutil.Modified(ctx, snap)
				if err != nil {
					return err
				}
				if modified {
					return fmt.Errorf("%w: %s", ErrFileModified, args[0])
				}
				_, err = fsutil.WriteAtomicIfChanged(ctx, args[0], []byte(updated), snap.Mode)
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", "checked", "target state: checked or unchecked")
	cmd.Flags().BoolVar(&write, "write", false, "rewrite the file in place")

	return cmd
}
