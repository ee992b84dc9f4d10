// Package parser turns HTML with embedded template constructs into a flat
// node slice, one node at a time.
//
// The parser is tolerant: malformed input never fails. Missing brackets are
// recorded as flags on the affected node and unbalanced close tags are
// matched against the nearest enclosing open tag of the same name.
package parser

import (
	"strings"

	"github.com/yaklabco/htmlsnob/pkg/dialect"
	"github.com/yaklabco/htmlsnob/pkg/htmlast"
)

// Parser produces nodes with NextNode. Every node returned by NextNode must be
// handed back to AddNode before NextNode is called again.
type Parser struct {
	// State is shared read-only with rules during validation.
	State *ParseState

	dialect  dialect.Dialect
	table    []dialect.Entry
	cur      cursor
	ignoring bool
}

// New creates a parser for input written in the given dialect.
func New(input string, d dialect.Dialect) *Parser {
	return &Parser{
		State:   &ParseState{},
		dialect: d,
		table:   d.Table(),
		cur:     cursor{src: input},
	}
}

// Ignoring reports whether the most recent directive comment was "ignore below".
func (p *Parser) Ignoring() bool { return p.ignoring }

// NextNode scans the next node. It returns false once only whitespace remains.
func (p *Parser) NextNode() (htmlast.Node, bool) {
	p.cur.skipSpace()
	if p.cur.eof() {
		return nil, false
	}

	if p.State.RawTextEndTag != "" {
		text := p.parseRawText()
		p.State.RawTextEndTag = ""
		if text.Content != "" {
			return text, true
		}
		if p.cur.eof() {
			return nil, false
		}
	}

	switch {
	case p.cur.peek("</"):
		return p.parseCloseTag(), true
	case p.cur.peek("<!--"):
		return p.parseComment(), true
	case p.cur.peek("<!DOCTYPE"), p.cur.peek("<!doctype"):
		return p.parseDoctype(), true
	}

	if entry, ok := p.templateAt(); ok {
		return p.parseTemplateExpression(entry), true
	}

	if p.startsTag() {
		tag := p.parseOpenTag()
		if rawTextElements[strings.ToLower(tag.Name)] && !tag.SelfClosed {
			p.State.RawTextEndTag = tag.Name
		}
		return tag, true
	}

	return p.parseText(), true
}

// AddNode appends node to the AST and pushes unclosed open tags on the stack.
func (p *Parser) AddNode(node htmlast.Node) {
	if tag, ok := node.(*htmlast.OpenTag); ok && !tag.SelfClosed {
		p.State.OpenTagIndexes = append(p.State.OpenTagIndexes, tag.Index)
	}
	p.State.AST = append(p.State.AST, node)
}

// startsTag reports whether a '<' at the cursor begins markup.
// "a < b" and "a << b" stay text.
func (p *Parser) startsTag() bool {
	if !p.cur.peekRune('<') {
		return false
	}
	rest := p.cur.src[p.cur.pos+1:]
	if rest == "" {
		return true
	}
	switch rest[0] {
	case ' ', '\t', '\n', '\r', '<', '=':
		return false
	}
	return true
}

// templateAt returns the first table entry whose start pattern matches at the cursor.
// A construct directly preceded by a backslash or a brace is not recognized.
func (p *Parser) templateAt() (dialect.Entry, bool) {
	if len(p.table) == 0 || p.cur.eof() {
		return dialect.Entry{}, false
	}
	if prev := p.cur.previous(); prev == '\\' || prev == '{' {
		return dialect.Entry{}, false
	}
	for _, entry := range p.table {
		if p.cur.matchLen(entry.Start) >= 0 {
			return entry, true
		}
	}
	return dialect.Entry{}, false
}

func (p *Parser) parseTemplateExpression(entry dialect.Entry) *htmlast.TemplateExpression {
	start := p.cur.pos
	startPos := p.cur.position()
	quoting := p.dialect.SupportsQuoting() && entry.Kind != htmlast.ConstructComment

	var quote rune
	missing := false
	for {
		if p.cur.eof() {
			missing = true
			break
		}

		if quoting && p.cur.previous() != '\\' {
			switch r := p.cur.current(); {
			case quote == 0 && (r == '"' || r == '\''):
				quote = r
			case quote != 0 && r == quote:
				quote = 0
			}
		}

		if quote == 0 {
			if n := p.cur.matchLen(entry.Close); n >= 0 {
				p.cur.advanceN(n)
				break
			}
		}
		p.cur.advance()
	}

	return &htmlast.TemplateExpression{
		Content:           p.cur.slice(start),
		Area:              htmlast.Area{Start: startPos, End: p.cur.position()},
		Kind:              entry.Kind,
		MissingEndBracket: missing,
	}
}

func (p *Parser) parseOpenTag() *htmlast.OpenTag {
	startPos := p.cur.position()
	p.cur.advance() // <
	p.cur.skipSpace()

	name, missing := p.parseTagName()
	tag := &htmlast.OpenTag{
		Name:          name,
		CloseTagIndex: htmlast.NoIndex,
		Index:         len(p.State.AST),
	}
	if !missing {
		tag.Attributes, missing = p.parseAttributes()
	}

	switch {
	case missing:
	case p.cur.consume("/>"):
		tag.SelfClosed = true
	case p.cur.consume(">"):
	default:
		missing = true
	}

	tag.MissingEndBracket = missing
	tag.Area = htmlast.Area{Start: startPos, End: p.cur.position()}
	return tag
}

// parseTagName reads up to whitespace, ">" or "/>". A template construct
// opening with "<" also ends the name and is read as the first attribute.
// Any other "<", or the end of input, is a missing end bracket.
func (p *Parser) parseTagName() (string, bool) {
	start := p.cur.pos
	for !p.cur.eof() {
		r := p.cur.current()
		if isSpace(r) || r == '>' || p.cur.peek("/>") {
			break
		}
		if r == '<' {
			_, isTemplate := p.templateAt()
			return p.cur.slice(start), !isTemplate
		}
		p.cur.advance()
	}
	return p.cur.slice(start), p.cur.eof()
}

// parseAttributes reads attributes until ">" or "/>". It reports a missing
// end bracket when it stops at "<" or the end of input instead.
func (p *Parser) parseAttributes() ([]*htmlast.Attribute, bool) {
	var attrs []*htmlast.Attribute

	p.cur.skipSpace()
	for !p.cur.eof() && !p.cur.peek(">") && !p.cur.peek("/>") {
		entry, isTemplate := p.templateAt()
		if !isTemplate && p.cur.peekRune('<') {
			return attrs, true
		}

		startPos := p.cur.position()
		var name htmlast.Fragment
		if isTemplate {
			name = p.parseTemplateExpression(entry)
		} else {
			name = p.parseAttributeName()
		}

		p.cur.skipSpace()
		var value *htmlast.AttributeValue
		if p.cur.consume("=") {
			p.cur.skipSpace()
			value = p.parseAttributeValue()
		}

		attrs = append(attrs, &htmlast.Attribute{
			Name:  name,
			Value: value,
			Area:  htmlast.Area{Start: startPos, End: p.cur.position()},
		})
		p.cur.skipSpace()
	}

	return attrs, p.cur.eof()
}

func (p *Parser) parseAttributeName() *htmlast.StringArea {
	start := p.cur.pos
	startPos := p.cur.position()
	for !p.cur.eof() {
		r := p.cur.current()
		if isSpace(r) || r == '=' || r == '>' || r == '<' || p.cur.peek("/>") {
			break
		}
		if _, ok := p.templateAt(); ok {
			break
		}
		p.cur.advance()
	}
	return &htmlast.StringArea{
		Content: p.cur.slice(start),
		Area:    htmlast.Area{Start: startPos, End: p.cur.position()},
	}
}

// parseAttributeValue reads a quoted or unquoted value. Whitespace inside a
// quoted value separates literal parts, and template constructs become parts
// of their own.
func (p *Parser) parseAttributeValue() *htmlast.AttributeValue {
	value := &htmlast.AttributeValue{}
	startPos := p.cur.position()

	if r := p.cur.current(); r == '"' || r == '\'' {
		value.StartQuote = r
		p.cur.advance()
	}

	partStart := p.cur.pos
	partPos := p.cur.position()
	flush := func() {
		if p.cur.pos > partStart {
			value.Parts = append(value.Parts, &htmlast.StringArea{
				Content: p.cur.slice(partStart),
				Area:    htmlast.Area{Start: partPos, End: p.cur.position()},
			})
		}
	}
	restart := func() {
		partStart = p.cur.pos
		partPos = p.cur.position()
	}

	depth := 0
	for !p.cur.eof() {
		r := p.cur.current()

		if value.IsQuoted() {
			if r == value.StartQuote && (depth == 0 || p.quoteEndsValue()) {
				flush()
				value.EndQuote = r
				p.cur.advance()
				break
			}
		} else if isSpace(r) || r == '>' || p.cur.peek("/>") {
			break
		}

		if entry, ok := p.templateAt(); ok {
			flush()
			value.Parts = append(value.Parts, p.parseTemplateExpression(entry))
			restart()
			continue
		}

		if value.IsQuoted() {
			switch {
			case isSpace(r):
				flush()
				p.cur.advance()
				restart()
				continue
			case r == '(':
				depth++
			case r == ')' && depth > 0:
				depth--
			}
		}
		p.cur.advance()
	}
	if !value.IsQuoted() || value.EndQuote == 0 {
		flush()
	}

	value.Area = htmlast.Area{Start: startPos, End: p.cur.position()}
	return value
}

// quoteEndsValue reports whether the quote at the cursor is followed by
// something that can only come after an attribute value.
func (p *Parser) quoteEndsValue() bool {
	rest := p.cur.src[p.cur.pos+1:]
	if rest == "" {
		return true
	}
	switch rest[0] {
	case ' ', '\t', '\n', '\r', '>', '/':
		return true
	}
	return false
}

func (p *Parser) parseCloseTag() *htmlast.CloseTag {
	startPos := p.cur.position()
	p.cur.advanceN(len("</"))
	p.cur.skipSpace()

	name, missing := p.parseTagName()
	if !missing {
		for !p.cur.eof() && !p.cur.peekRune('>') && !p.cur.peekRune('<') {
			p.cur.advance()
		}
		missing = !p.cur.consume(">")
	}

	tag := &htmlast.CloseTag{
		Name:              name,
		Area:              htmlast.Area{Start: startPos, End: p.cur.position()},
		MissingEndBracket: missing,
		OpenTagIndex:      htmlast.NoIndex,
	}
	p.matchCloseTag(tag)
	return tag
}

// matchCloseTag pairs tag with the nearest open tag of the same name.
// Open tags above the match are popped and stay unclosed. Without a match the
// stack is left untouched and tag is an orphan.
func (p *Parser) matchCloseTag(tag *htmlast.CloseTag) {
	found := false
	for _, idx := range p.State.OpenTagIndexes {
		if strings.EqualFold(p.State.OpenTag(idx).Name, tag.Name) {
			found = true
			break
		}
	}
	if !found {
		return
	}

	index := len(p.State.AST)
	for n := len(p.State.OpenTagIndexes); n > 0; n = len(p.State.OpenTagIndexes) {
		idx := p.State.OpenTagIndexes[n-1]
		p.State.OpenTagIndexes = p.State.OpenTagIndexes[:n-1]

		open := p.State.OpenTag(idx)
		if strings.EqualFold(open.Name, tag.Name) {
			open.CloseTagIndex = index
			tag.OpenTagIndex = idx
			return
		}
	}
}

func (p *Parser) parseComment() *htmlast.Comment {
	startPos := p.cur.position()
	p.cur.advanceN(len("<!--"))

	start := p.cur.pos
	end := strings.Index(p.cur.src[start:], "-->")
	missing := end < 0
	if missing {
		p.cur.advanceN(len(p.cur.src) - start)
	} else {
		p.cur.advanceN(end)
	}
	content := p.cur.slice(start)
	if !missing {
		p.cur.advanceN(len("-->"))
	}

	below := strings.LastIndex(content, "ignore below")
	above := strings.LastIndex(content, "ignore above")
	switch {
	case below > above:
		p.ignoring = true
	case above > below:
		p.ignoring = false
	}

	return &htmlast.Comment{
		Content:           content,
		Area:              htmlast.Area{Start: startPos, End: p.cur.position()},
		MissingEndBracket: missing,
	}
}

func (p *Parser) parseDoctype() *htmlast.Doctype {
	startPos := p.cur.position()
	p.cur.advanceN(len("<!"))
	p.cur.skipSpace()

	start := p.cur.pos
	for !p.cur.eof() && !p.cur.peekRune('>') {
		p.cur.advance()
	}
	content := p.cur.slice(start)
	missing := !p.cur.consume(">")

	return &htmlast.Doctype{
		Content:           content,
		Area:              htmlast.Area{Start: startPos, End: p.cur.position()},
		MissingEndBracket: missing,
	}
}

// parseText reads character data up to markup or a template construct.
// The area ends after the last non-space rune.
func (p *Parser) parseText() *htmlast.Text {
	start := p.cur.pos
	startPos := p.cur.position()
	end, endPos := start, startPos

	for !p.cur.eof() {
		if p.startsTag() {
			break
		}
		if _, ok := p.templateAt(); ok {
			break
		}
		r := p.cur.current()
		p.cur.advance()
		if !isSpace(r) {
			end, endPos = p.cur.pos, p.cur.position()
		}
	}

	return &htmlast.Text{
		Content: p.cur.src[start:end],
		Area:    htmlast.Area{Start: startPos, End: endPos},
	}
}

// parseRawText reads everything up to the close tag that ends raw-text mode.
func (p *Parser) parseRawText() *htmlast.Text {
	start := p.cur.pos
	startPos := p.cur.position()
	end, endPos := start, startPos
	closer := "</" + p.State.RawTextEndTag

	for !p.cur.eof() && !p.cur.peekFold(closer) {
		r := p.cur.current()
		p.cur.advance()
		if !isSpace(r) {
			end, endPos = p.cur.pos, p.cur.position()
		}
	}

	return &htmlast.Text{
		Content: p.cur.src[start:end],
		Area:    htmlast.Area{Start: startPos, End: endPos},
	}
}
