// Package htmlast defines the flat, index-addressed syntax tree produced by the parser.
//
// Nodes live in a single slice. Open and close tags refer to each other through
// indices into that slice rather than pointers, and an open tag's own index is a
// stable identity for the duration of one lint run.
package htmlast

// NoIndex marks an absent cross-reference between tags.
const NoIndex = -1

// Node is one of *Doctype, *OpenTag, *CloseTag, *Text, *Comment or *TemplateExpression.
type Node interface {
	// Location returns the source range the node occupies.
	Location() Area
	isNode()
}

// Fragment is one of *StringArea or *TemplateExpression.
// Attribute names and attribute value parts are fragments.
type Fragment interface {
	Location() Area
	isFragment()
}

// StringArea is a literal run of source text.
type StringArea struct {
	Content string
	Area    Area
}

// Location implements Fragment.
func (s *StringArea) Location() Area { return s.Area }

func (*StringArea) isFragment() {}

// Doctype is a <!DOCTYPE ...> declaration.
type Doctype struct {
	// Content is everything between "<!" and ">", e.g. "DOCTYPE html".
	Content string
	Area    Area

	// MissingEndBracket is set when input ended before ">".
	MissingEndBracket bool
}

// OpenTag is a start tag such as <div class="a">.
type OpenTag struct {
	Name       string
	Attributes []*Attribute
	Area       Area

	// SelfClosed is set for tags written as <name />.
	SelfClosed bool

	// MissingEndBracket is set when the tag was not terminated by ">" or "/>".
	MissingEndBracket bool

	// CloseTagIndex is the index of the matching CloseTag, or NoIndex.
	CloseTagIndex int

	// Index is the position of this node in the node slice.
	Index int
}

// HasCloseTag returns true if a matching close tag was found.
func (t *OpenTag) HasCloseTag() bool { return t.CloseTagIndex != NoIndex }

// Attribute returns the first attribute with the given literal name.
func (t *OpenTag) Attribute(name string) (*Attribute, bool) {
	for _, attr := range t.Attributes {
		if n, ok := attr.LiteralName(); ok && n == name {
			return attr, true
		}
	}
	return nil, false
}

// CloseTag is an end tag such as </div>.
type CloseTag struct {
	Name string
	Area Area

	// MissingEndBracket is set when the tag was not terminated by ">".
	MissingEndBracket bool

	// OpenTagIndex is the index of the matching OpenTag, or NoIndex for an orphan.
	OpenTagIndex int
}

// HasOpenTag returns true unless this is an orphan close tag.
func (t *CloseTag) HasOpenTag() bool { return t.OpenTagIndex != NoIndex }

// Text is trimmed character data between markup.
type Text struct {
	Content string
	Area    Area
}

// Comment is an HTML comment. Content excludes the <!-- and --> delimiters.
type Comment struct {
	Content           string
	Area              Area
	MissingEndBracket bool
}

// TemplateExpression is an opaque template construct, delimiters included.
type TemplateExpression struct {
	Content           string
	Area              Area
	Kind              Construct
	MissingEndBracket bool
}

// Attribute is a name with an optional value.
type Attribute struct {
	Name  Fragment
	Value *AttributeValue
	Area  Area
}

// LiteralName returns the attribute name when it is plain text.
func (a *Attribute) LiteralName() (string, bool) {
	if s, ok := a.Name.(*StringArea); ok {
		return s.Content, true
	}
	return "", false
}

// AttributeValue holds the parts of an attribute value.
// Whitespace inside a quoted value splits it into separate literal parts.
type AttributeValue struct {
	// StartQuote and EndQuote are 0 for unquoted values.
	StartQuote rune
	EndQuote   rune
	Parts      []Fragment
	Area       Area
}

// IsQuoted returns true if the value opened with a quote character.
func (v *AttributeValue) IsQuoted() bool { return v.StartQuote != 0 }

// StringAreas returns the literal parts, skipping template expressions.
func (v *AttributeValue) StringAreas() []*StringArea {
	var out []*StringArea
	for _, part := range v.Parts {
		if s, ok := part.(*StringArea); ok {
			out = append(out, s)
		}
	}
	return out
}

// Location implements Node.
func (d *Doctype) Location() Area { return d.Area }

// Location implements Node.
func (t *OpenTag) Location() Area { return t.Area }

// Location implements Node.
func (t *CloseTag) Location() Area { return t.Area }

// Location implements Node.
func (t *Text) Location() Area { return t.Area }

// Location implements Node.
func (c *Comment) Location() Area { return c.Area }

// Location implements Node and Fragment.
func (e *TemplateExpression) Location() Area { return e.Area }

func (*Doctype) isNode()            {}
func (*OpenTag) isNode()            {}
func (*CloseTag) isNode()           {}
func (*Text) isNode()               {}
func (*Comment) isNode()            {}
func (*TemplateExpression) isNode() {}

func (*TemplateExpression) isFragment() {}
