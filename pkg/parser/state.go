package parser

import (
	"fmt"

	"github.com/yaklabco/htmlsnob/pkg/htmlast"
)

// rawTextElements hold literal text up to their own close tag.
//
//nolint:gochecknoglobals // Static lookup table.
var rawTextElements = map[string]bool{
	"script":    true,
	"style":     true,
	"textrange": true,
}

// ParseState is the parser bookkeeping that rules may read.
type ParseState struct {
	// AST is the node slice built so far.
	AST []htmlast.Node

	// OpenTagIndexes is the stack of unclosed open tags, innermost last.
	OpenTagIndexes []int

	// RawTextEndTag is the element name whose close tag ends raw-text mode,
	// or "" outside raw-text mode.
	RawTextEndTag string
}

// OpenTag returns the OpenTag stored at index i.
// It panics if the index does not hold an OpenTag, which means the index
// bookkeeping is corrupt.
func (s *ParseState) OpenTag(i int) *htmlast.OpenTag {
	if i >= 0 && i < len(s.AST) {
		if tag, ok := s.AST[i].(*htmlast.OpenTag); ok {
			return tag
		}
	}
	panic(fmt.Sprintf("Expected OpenTag at index %d", i))
}

// OpenTagNames returns the names of the currently open tags, outermost first.
func (s *ParseState) OpenTagNames() []string {
	names := make([]string, len(s.OpenTagIndexes))
	for i, idx := range s.OpenTagIndexes {
		names[i] = s.OpenTag(idx).Name
	}
	return names
}

// Parent returns the innermost open tag, if any.
func (s *ParseState) Parent() (*htmlast.OpenTag, bool) {
	if len(s.OpenTagIndexes) == 0 {
		return nil, false
	}
	return s.OpenTag(s.OpenTagIndexes[len(s.OpenTagIndexes)-1]), true
}

// Depth returns the number of currently open tags.
func (s *ParseState) Depth() int {
	return len(s.OpenTagIndexes)
}
