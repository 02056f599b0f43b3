package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdview/pkg/mdast"
	"github.com/yaklabco/mdview/pkg/render"
)

// BlockRenderer writes a block sequence as styled terminal text.
type BlockRenderer struct {
	styles *Styles
	width  int
}

// NewBlockRenderer creates a renderer for the given styles and terminal
// width. Width below 20 is clamped.
func NewBlockRenderer(styles *Styles, width int) *BlockRenderer {
	if width < 20 {
		width = 80
	}
	return &BlockRenderer{styles: styles, width: width}
}

// Render returns the styled text for an entire block sequence.
func (r *BlockRenderer) Render(blocks []render.Block) string {
	var parts []string
	for _, block := range blocks {
		parts = append(parts, r.renderBlock(block))
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func (r *BlockRenderer) renderBlock(block render.Block) string {
	switch block.Kind {
	case render.BlockText:
		return r.renderText(block.Text)
	case render.BlockCode:
		return r.renderCode(block.Code)
	case render.BlockTable:
		return r.renderTable(block.Table)
	case render.BlockTaskList:
		return r.renderTasks(block.Tasks)
	case render.BlockImage:
		return r.renderImage(block.Image)
	case render.BlockDiagram:
		return r.renderDiagram(block.Diagram)
	case render.BlockMath:
		return r.renderMath(block.Math)
	default:
		return ""
	}
}

func (r *BlockRenderer) renderText(text *render.TextContent) string {
	if text == nil {
		return ""
	}

	var b strings.Builder
	for _, run := range text.Runs {
		b.WriteString(r.renderRun(run))
	}

	// Wrap flowing text to the terminal width; structural blocks manage
	// their own layout.
	return lipgloss.NewStyle().Width(r.width).Render(b.String())
}

func (r *BlockRenderer) renderRun(run render.StyledRun) string {
	style := r.runStyle(run.Style)

	// A run carrying a resolved style-file color overrides the palette
	// entry, so `render --style` changes the preview too.
	if r.styles.ColorEnabled && run.Style.Color != "" {
		style = style.Foreground(lipgloss.Color(run.Style.Color))
	}

	return style.Render(run.Text)
}

func (r *BlockRenderer) runStyle(s render.RunStyle) lipgloss.Style {
	switch {
	case s.HeadingLevel > 0:
		level := s.HeadingLevel
		if level > 6 {
			level = 6
		}
		return r.styles.Headings[level-1]
	case s.Math:
		return r.styles.Math
	case s.Code:
		return r.styles.Code
	case s.Link != "":
		return r.styles.Link
	case s.Quote:
		return r.styles.Quote
	case s.Bold:
		return r.styles.Bold
	case s.Strikethrough:
		return r.styles.Strike
	case s.Italic:
		return r.styles.Italic
	default:
		return lipgloss.NewStyle()
	}
}

func (r *BlockRenderer) renderCode(code *render.CodeContent) string {
	if code == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(r.styles.CodeLang.Render("[" + code.Language + "]"))
	b.WriteString("\n")
	b.WriteString(r.styles.CodeBlock.Render(strings.TrimRight(code.Code, "\n")))
	return b.String()
}

func (r *BlockRenderer) renderTable(table *render.TableData) string {
	if table == nil || len(table.Headers) == 0 {
		return ""
	}

	widths := r.columnWidths(table)

	var b strings.Builder
	b.WriteString(r.renderRow(table.Headers, widths, table.Alignments, true))
	b.WriteString("\n")
	b.WriteString(r.styles.TableBorder.Render(borderLine(widths)))
	for _, row := range table.Rows {
		b.WriteString("\n")
		b.WriteString(r.renderRow(row, widths, table.Alignments, false))
	}
	return b.String()
}

func (r *BlockRenderer) columnWidths(table *render.TableData) []int {
	widths := make([]int, len(table.Headers))
	for i, h := range table.Headers {
		widths[i] = len([]rune(h.PlainText()))
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := len([]rune(cell.PlainText())); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	return widths
}

func (r *BlockRenderer) renderRow(cells []render.TextContent, widths []int, aligns []mdast.CellAlignment, header bool) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		text := cell.PlainText()
		align := mdast.AlignLeft
		if i < len(aligns) {
			align = aligns[i]
		}

		padded := pad(text, widths[i], align)
		if header {
			padded = r.styles.TableHeader.Render(padded)
		}
		parts[i] = padded
	}

	sep := r.styles.TableBorder.Render(" | ")
	return strings.Join(parts, sep)
}

func pad(text string, width int, align mdast.CellAlignment) string {
	gap := width - len([]rune(text))
	if gap <= 0 {
		return text
	}

	switch align {
	case mdast.AlignRight:
		return strings.Repeat(" ", gap) + text
	case mdast.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
	default:
		return text + strings.Repeat(" ", gap)
	}
}

func borderLine(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	return strings.Join(parts, "-+-")
}

func (r *BlockRenderer) renderTasks(tasks []render.TaskItem) string {
	lines := make([]string, len(tasks))
	for i, task := range tasks {
		label := r.renderText(&task.Content)
		if task.Checked {
			lines[i] = r.styles.TaskDone.Render("[x] ") + label
		} else {
			lines[i] = r.styles.TaskOpen.Render("[ ] ") + label
		}
	}
	return strings.Join(lines, "\n")
}

func (r *BlockRenderer) renderImage(image *render.ImageContent) string {
	if image == nil {
		return ""
	}
	return r.styles.ImageLabel.Render(fmt.Sprintf("⟦image: %s⟧ %s", image.Alt, image.Source))
}

func (r *BlockRenderer) renderDiagram(diagram *render.DiagramContent) string {
	if diagram == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(r.styles.CodeLang.Render("[diagram]"))
	b.WriteString("\n")
	b.WriteString(r.styles.Diagram.Render(strings.TrimRight(diagram.Source, "\n")))
	return b.String()
}

func (r *BlockRenderer) renderMath(math *render.MathContent) string {
	if math == nil {
		return ""
	}
	return r.styles.Math.Render("⟦math⟧ " + math.Latex)
}
