package render

// RunStyle is the set of inline attributes applied to one styled run.
// The zero value is plain body text.
type RunStyle struct {
	Bold          bool
	Italic        bool
	Strikethrough bool

	// Code marks inline code spans.
	Code bool

	// Quote marks runs inside a blockquote.
	Quote bool

	// HeadingLevel is 1-6 inside a heading, 0 otherwise.
	HeadingLevel int

	// Link is the destination for link runs; empty otherwise.
	Link string

	// Math marks inline math runs; the run text is the LaTeX source,
	// handed unmodified to the math rendering backend.
	Math bool

	// Color is the resolved foreground color for the run, in the style
	// file's color syntax. Empty means the presentation default. Baked
	// in at render time: a theme change re-renders rather than patching
	// existing blocks.
	Color string

	// Font is the resolved font family; code and math runs resolve to
	// the mono family. Empty means the presentation default.
	Font string

	// Scale is the font scale factor for heading runs, 0 elsewhere.
	Scale float64
}

// StyledRun is a contiguous span of text sharing one style.
type StyledRun struct {
	Text  string
	Style RunStyle
}

// TextContent is an ordered run sequence, the payload of a Text block
// and of table cells and task items.
type TextContent struct {
	Runs []StyledRun
}

// PlainText returns the concatenated run text with styling discarded.
// This is the projection the search engine operates on for on-screen
// highlight positioning.
func (t TextContent) PlainText() string {
	total := 0
	for _, run := range t.Runs {
		total += len(run.Text)
	}

	buf := make([]byte, 0, total)
	for _, run := range t.Runs {
		buf = append(buf, run.Text...)
	}
	return string(buf)
}

// IsEmpty returns true when the sequence holds no text at all.
func (t TextContent) IsEmpty() bool {
	for _, run := range t.Runs {
		if run.Text != "" {
			return false
		}
	}
	return true
}
