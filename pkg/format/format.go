// Package format renders a node slice back to canonical text.
//
// The formatter walks the nodes once, left to right. Indentation comes from
// tag pairs and from the Construct kind of template expressions. Short
// elements are collapsed onto one line and long attribute lists are wrapped.
package format

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/htmlsnob/pkg/config"
	"github.com/yaklabco/htmlsnob/pkg/htmlast"
)

// Formatter renders nodes with fixed options.
type Formatter struct {
	indentSize    int
	maxLineLength int
}

// New creates a formatter. Non-positive sizes fall back to the defaults.
func New(opts config.Options) *Formatter {
	f := &Formatter{
		indentSize:    opts.IndentSize,
		maxLineLength: opts.MaxLineLength,
	}
	if f.indentSize <= 0 {
		f.indentSize = config.DefaultIndentSize
	}
	if f.maxLineLength <= 0 {
		f.maxLineLength = config.DefaultMaxLineLength
	}
	return f
}

// Format renders ast using opts.
func Format(ast []htmlast.Node, opts config.Options) string {
	return New(opts).Format(ast)
}

// Format renders ast. The same tree always renders to the same text.
func (f *Formatter) Format(ast []htmlast.Node) string {
	r := &run{Formatter: f, ast: ast}
	for r.index < len(r.ast) {
		r.node()
		r.index++
	}
	return r.out.String()
}

type run struct {
	*Formatter

	ast    []htmlast.Node
	index  int
	indent int
	out    strings.Builder
}

func (r *run) spaces(level int) string {
	if level < 0 {
		level = 0
	}
	return strings.Repeat(" ", level*r.indentSize)
}

func (r *run) line(s string) {
	r.out.WriteString(r.spaces(r.indent))
	r.out.WriteString(s)
	r.out.WriteByte('\n')
}

// fits reports whether every line of s stays within the maximum line length.
func (r *run) fits(s string) bool {
	for line := range strings.Lines(s) {
		if runewidth.StringWidth(strings.TrimSuffix(line, "\n")) > r.maxLineLength {
			return false
		}
	}
	return true
}

func (r *run) node() {
	switch n := r.ast[r.index].(type) {
	case *htmlast.OpenTag:
		r.openTag(n)
	case *htmlast.CloseTag:
		if n.HasOpenTag() {
			r.indent = max(r.indent-1, 0)
		}
		r.line("</" + n.Name + ">")
	case *htmlast.Text:
		r.line(n.Content)
	case *htmlast.Comment:
		if n.MissingEndBracket {
			r.line("<!--" + n.Content)
		} else {
			r.line("<!--" + n.Content + "-->")
		}
	case *htmlast.Doctype:
		if n.MissingEndBracket {
			r.line("<!" + n.Content)
		} else {
			r.line("<!" + n.Content + ">")
		}
	case *htmlast.TemplateExpression:
		r.indent = max(r.indent-n.Kind.IndentBefore(), 0)
		r.line(n.Content)
		r.indent += n.Kind.IndentAfter()
	}
}

func (r *run) openTag(tag *htmlast.OpenTag) {
	prefix := r.spaces(r.indent) + "<" + tag.Name
	suffix := ""
	switch {
	case tag.SelfClosed:
		suffix = " />"
	case !tag.MissingEndBracket:
		suffix = ">"
	}

	head := prefix + r.attributes(tag.Attributes, false) + suffix
	wrapped := false
	if !r.fits(head) && len(tag.Attributes) > 1 {
		head = prefix + r.attributes(tag.Attributes, true) + suffix
		wrapped = true
	}

	if !tag.HasCloseTag() {
		r.out.WriteString(head)
		r.out.WriteByte('\n')
		return
	}

	closeIndex := tag.CloseTagIndex
	closeTag, ok := r.ast[closeIndex].(*htmlast.CloseTag)
	if !ok {
		panic(fmt.Sprintf("Expected CloseTag at index %d", closeIndex))
	}
	end := "</" + closeTag.Name + ">"

	if !wrapped && !strings.Contains(head, "\n") {
		switch closeIndex - r.index - 1 {
		case 0:
			if r.fits(head + end) {
				r.out.WriteString(head + end + "\n")
				r.index = closeIndex
				return
			}
		case 1:
			if child, ok := inlineChild(r.ast[r.index+1]); ok && r.fits(head+child+end) {
				r.out.WriteString(head + child + end + "\n")
				r.index = closeIndex
				return
			}
		}
	}

	r.out.WriteString(head)
	r.out.WriteByte('\n')
	r.indent++
}

// inlineChild returns the text of a node that may share a line with its parent tags.
// A collapsed template expression never changes the indent level, whatever its kind.
func inlineChild(node htmlast.Node) (string, bool) {
	switch n := node.(type) {
	case *htmlast.Text:
		return n.Content, !strings.Contains(n.Content, "\n")
	case *htmlast.TemplateExpression:
		return n.Content, !strings.Contains(n.Content, "\n")
	default:
		return "", false
	}
}

func (r *run) attributes(attrs []*htmlast.Attribute, wrap bool) string {
	var sb strings.Builder
	for i, attr := range attrs {
		if wrap && i > 0 {
			sb.WriteByte('\n')
			sb.WriteString(r.spaces(r.indent + 1))
		} else {
			sb.WriteByte(' ')
		}
		sb.WriteString(r.attribute(attr))
	}
	return sb.String()
}

func (r *run) attribute(attr *htmlast.Attribute) string {
	var sb strings.Builder
	sb.WriteString(fragmentText(attr.Name))

	value := attr.Value
	if value == nil {
		return sb.String()
	}

	sb.WriteByte('=')
	if value.StartQuote != 0 {
		sb.WriteRune(value.StartQuote)
	}
	parts := r.value(value, false)
	if !r.fits(r.spaces(r.indent+1)+parts) && value.IsQuoted() {
		parts = r.value(value, true)
	}
	sb.WriteString(parts)
	if value.EndQuote != 0 {
		sb.WriteRune(value.EndQuote)
	}
	return sb.String()
}

// value renders the parts of an attribute value. When wrap is set, a line
// break is placed around every template expression and block constructs
// indent the lines they enclose.
func (r *run) value(value *htmlast.AttributeValue, wrap bool) string {
	var sb strings.Builder
	level := r.indent

	for i, part := range value.Parts {
		sb.WriteString(fragmentText(part))
		if i == len(value.Parts)-1 {
			break
		}
		next := value.Parts[i+1]

		if part.Location().Touches(next.Location()) {
			continue
		}

		_, literal := part.(*htmlast.StringArea)
		_, nextLiteral := next.(*htmlast.StringArea)
		if !wrap || (literal && nextLiteral) {
			sb.WriteByte(' ')
			continue
		}

		if expr, ok := part.(*htmlast.TemplateExpression); ok {
			level += expr.Kind.IndentAfter()
		}
		if expr, ok := next.(*htmlast.TemplateExpression); ok {
			level -= expr.Kind.IndentBefore()
		}
		sb.WriteByte('\n')
		sb.WriteString(r.spaces(level + 1))
	}

	return sb.String()
}

func fragmentText(f htmlast.Fragment) string {
	switch v := f.(type) {
	case *htmlast.StringArea:
		return v.Content
	case *htmlast.TemplateExpression:
		return v.Content
	default:
		return ""
	}
}
