package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/mdview/pkg/fsutil"
)

// Exit codes for mdview, following sysexits conventions.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a generic command failure.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrUsage marks argument and flag validation failures so the process
// can exit with ExitInvalidUsage.
var ErrUsage = errors.New("invalid usage")

// ExitCodeForError maps a command error to the process exit code.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, ErrFileModified):
		return ExitIOError
	default:
		return ExitFailure
	}
}
