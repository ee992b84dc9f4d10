package htmlast

import "strings"

// Lines gives zero-based access to the lines of a source document.
type Lines []string

// SplitLines splits content on LF, dropping a trailing CR from each line.
func SplitLines(content string) Lines {
	raw := strings.Split(content, "\n")
	for i, line := range raw {
		raw[i] = strings.TrimSuffix(line, "\r")
	}
	return Lines(raw)
}

// At returns the zero-based line, or "" when out of range.
func (l Lines) At(line int) string {
	if line < 0 || line >= len(l) {
		return ""
	}
	return l[line]
}
