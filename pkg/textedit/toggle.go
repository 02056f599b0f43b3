package textedit

import "strings"

// ToggleTask rewrites the checkbox marker of the index-th task line
// (0-based, counted over every checkbox-bearing list line in source
// order) to the given state, preserving indentation and all surrounding
// content. An out-of-range index is a no-op returning the input
// unchanged.
//
// Task lines are located by scanning raw lines for "- [ ]", "- [x]" and
// "- [X]" markers (also * and + bullets); the x is matched
// case-insensitively.
func ToggleTask(text string, index int, checked bool) string {
	if index < 0 {
		return text
	}

	seen := 0
	offset := 0

	for _, line := range splitKeepLines(text) {
		boxStart, ok := taskMarkerOffset(line)
		if ok {
			if seen == index {
				state := " "
				if checked {
					state = "x"
				}
				return Apply(text, []TextEdit{{
					Start:   offset + boxStart,
					End:     offset + boxStart + 3,
					NewText: "[" + state + "]",
				}})
			}
			seen++
		}
		offset += len(line)
	}

	return text
}

// taskMarkerOffset returns the byte offset of the "[ ]"/"[x]" bracket
// within a task list line, or ok=false for non-task lines.
func taskMarkerOffset(line string) (int, bool) {
	pos := 0
	for pos < len(line) && (line[pos] == ' ' || line[pos] == '\t') {
		pos++
	}

	if pos >= len(line) {
		return 0, false
	}
	switch line[pos] {
	case '-', '*', '+':
	default:
		return 0, false
	}
	pos++

	if pos >= len(line) || line[pos] != ' ' {
		return 0, false
	}
	pos++

	if pos+3 > len(line) || line[pos] != '[' || line[pos+2] != ']' {
		return 0, false
	}

	switch line[pos+1] {
	case ' ', 'x', 'X':
		return pos, true
	default:
		return 0, false
	}
}

// splitKeepLines splits text into lines that retain their trailing
// newline, so summed lengths reconstruct source offsets exactly.
func splitKeepLines(text string) []string {
	var lines []string
	for len(text) > 0 {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:idx+1])
		text = text[idx+1:]
	}
	return lines
}
