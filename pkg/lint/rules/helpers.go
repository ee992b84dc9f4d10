package rules

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/htmlsnob/pkg/casing"
	"github.com/yaklabco/htmlsnob/pkg/htmlast"
	"github.com/yaklabco/htmlsnob/pkg/parser"
)

// tagAreas returns the areas of a tag pair, skipping the missing half.
func tagAreas(open *htmlast.OpenTag, closeTag *htmlast.CloseTag) []htmlast.Area {
	var areas []htmlast.Area
	if open != nil {
		areas = append(areas, open.Area)
	}
	if closeTag != nil {
		areas = append(areas, closeTag.Area)
	}
	return areas
}

// tagName returns the name of whichever half of a tag pair is present.
func tagName(open *htmlast.OpenTag, closeTag *htmlast.CloseTag) (string, bool) {
	switch {
	case open != nil:
		return open.Name, true
	case closeTag != nil:
		return closeTag.Name, true
	default:
		return "", false
	}
}

// literalName returns the attribute name when it is plain text.
func literalName(attr *htmlast.Attribute) (*htmlast.StringArea, bool) {
	s, ok := attr.Name.(*htmlast.StringArea)
	return s, ok
}

// isAttribute reports whether attr is a literal attribute called name.
func isAttribute(attr *htmlast.Attribute, name string) bool {
	s, ok := literalName(attr)
	return ok && s.Content == name
}

// ancestors returns the open tags enclosing open, outermost first.
//
// While a close tag is validated the stack holds only ancestors. At the end
// of input it also holds open itself and anything opened after it.
func ancestors(open *htmlast.OpenTag, state *parser.ParseState) []*htmlast.OpenTag {
	stack := state.OpenTagIndexes
	if i := slices.Index(stack, open.Index); i >= 0 {
		stack = stack[:i]
	}

	out := make([]*htmlast.OpenTag, len(stack))
	for i, idx := range stack {
		out[i] = state.OpenTag(idx)
	}
	return out
}

// parent returns the innermost ancestor of open.
func parent(open *htmlast.OpenTag, state *parser.ParseState) (*htmlast.OpenTag, bool) {
	all := ancestors(open, state)
	if len(all) == 0 {
		return nil, false
	}
	return all[len(all)-1], true
}

// nonWhitespaceAreas splits text into one area per line, trimmed of
// surrounding whitespace. Blank lines are skipped.
func nonWhitespaceAreas(text *htmlast.Text) []htmlast.Area {
	var areas []htmlast.Area

	column := text.Area.Start.Column
	for i, line := range strings.Split(text.Content, "\n") {
		lineNo := text.Area.Start.Line + i
		leading := utf8.RuneCountInString(line) - utf8.RuneCountInString(strings.TrimLeftFunc(line, unicode.IsSpace))
		trimmed := strings.TrimSpace(line)

		if trimmed != "" {
			start := column + leading
			areas = append(areas, htmlast.Area{
				Start: htmlast.Position{Line: lineNo, Column: start},
				End:   htmlast.Position{Line: lineNo, Column: start + utf8.RuneCountInString(trimmed)},
			})
		}
		column = 0
	}
	return areas
}

func validateStyle(style casing.Style, field string) error {
	if style == "" {
		return fmt.Errorf("missing field `%s`", field)
	}
	return style.Validate()
}

func oneOf[T ~string](value T, field string, allowed ...T) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return fmt.Errorf("%s must be one of %s, got %q", field, strings.Join(names, ", "), string(value))
}

func requireRegexp(re *regexp.Regexp) error {
	if re == nil {
		return errors.New("missing field `regexp`")
	}
	return nil
}
