package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/htmlsnob/pkg/htmlast"
)

// cursor walks the input one rune at a time and never moves backward.
type cursor struct {
	src  string
	pos  int
	line int
	col  int
}

func (c *cursor) eof() bool { return c.pos >= len(c.src) }

func (c *cursor) position() htmlast.Position {
	return htmlast.Position{Line: c.line, Column: c.col}
}

// current returns the rune at the cursor, or 0 at end of input.
func (c *cursor) current() rune {
	if c.eof() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.pos:])
	return r
}

// previous returns the rune before the cursor, or 0 at the start.
func (c *cursor) previous() rune {
	if c.pos == 0 {
		return 0
	}
	r, _ := utf8.DecodeLastRuneInString(c.src[:c.pos])
	return r
}

func (c *cursor) advance() {
	if c.eof() {
		return
	}
	r, size := utf8.DecodeRuneInString(c.src[c.pos:])
	c.pos += size
	if r == '\n' {
		c.line++
		c.col = 0
	} else {
		c.col++
	}
}

func (c *cursor) advanceN(bytes int) {
	end := c.pos + bytes
	for c.pos < end && !c.eof() {
		c.advance()
	}
}

func (c *cursor) peek(s string) bool {
	return strings.HasPrefix(c.src[c.pos:], s)
}

func (c *cursor) peekRune(r rune) bool {
	return !c.eof() && c.current() == r
}

// consume advances past s when it is next and reports whether it was.
func (c *cursor) consume(s string) bool {
	if !c.peek(s) {
		return false
	}
	c.advanceN(len(s))
	return true
}

// matchLen returns the length of an anchored match at the cursor, or -1.
func (c *cursor) matchLen(re *regexp.Regexp) int {
	loc := re.FindStringIndex(c.src[c.pos:])
	if loc == nil || loc[0] != 0 {
		return -1
	}
	return loc[1]
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func (c *cursor) skipSpace() {
	for !c.eof() && isSpace(c.current()) {
		c.advance()
	}
}

func (c *cursor) slice(start int) string {
	return c.src[start:c.pos]
}

// peekFold is peek with ASCII case folding.
func (c *cursor) peekFold(s string) bool {
	if len(c.src)-c.pos < len(s) {
		return false
	}
	return strings.EqualFold(c.src[c.pos:c.pos+len(s)], s)
}
