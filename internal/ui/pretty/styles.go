// Package pretty renders the content block sequence as styled terminal
// output with Lipgloss. It is the CLI stand-in for the rich text view a
// GUI presentation layer would provide.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains the styled renderers for block preview output.
type Styles struct {
	// ColorEnabled reports whether the palette carries color, so the
	// block renderer knows when run-level style colors may be applied.
	ColorEnabled bool

	// Heading styles indexed by level-1; deeper levels reuse the last.
	Headings [6]lipgloss.Style

	// Inline run styles.
	Bold   lipgloss.Style
	Italic lipgloss.Style
	Strike lipgloss.Style
	Code   lipgloss.Style
	Link   lipgloss.Style
	Quote  lipgloss.Style
	Math   lipgloss.Style

	// Block chrome.
	CodeBlock   lipgloss.Style
	CodeLang    lipgloss.Style
	TableHeader lipgloss.Style
	TableBorder lipgloss.Style
	TaskDone    lipgloss.Style
	TaskOpen    lipgloss.Style
	ImageLabel  lipgloss.Style
	Diagram     lipgloss.Style

	Dim lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	return &Styles{
		ColorEnabled: true,

		Headings: [6]lipgloss.Style{
			heading,
			heading,
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
			lipgloss.NewStyle().Bold(true),
			lipgloss.NewStyle().Bold(true),
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8")),
		},

		Bold:   lipgloss.NewStyle().Bold(true),
		Italic: lipgloss.NewStyle().Italic(true),
		Strike: lipgloss.NewStyle().Strikethrough(true),
		Code:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Link:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true),
		Quote:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Math:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),

		CodeBlock:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		CodeLang:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		TableHeader: lipgloss.NewStyle().Bold(true),
		TableBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TaskDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		TaskOpen:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		ImageLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Italic(true),
		Diagram:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),

		Dim: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Headings:    [6]lipgloss.Style{plain, plain, plain, plain, plain, plain},
		Bold:        plain,
		Italic:      plain,
		Strike:      plain,
		Code:        plain,
		Link:        plain,
		Quote:       plain,
		Math:        plain,
		CodeBlock:   plain,
		CodeLang:    plain,
		TableHeader: plain,
		TableBorder: plain,
		TaskDone:    plain,
		TaskOpen:    plain,
		ImageLabel:  plain,
		Diagram:     plain,
		Dim:         plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
