package htmlast

import "fmt"

// Position is a zero-based location in the source.
// Column counts runes from the start of the line, not bytes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// String renders the position as 1-based "line:column" for humans.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Area is a half-open source range [Start, End).
type Area struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// IsSingleLine returns true if the area starts and ends on the same line.
func (a Area) IsSingleLine() bool {
	return a.Start.Line == a.End.Line
}

// Touches returns true if next begins exactly where a ends.
func (a Area) Touches(next Area) bool {
	return a.End == next.Start
}

// Contains returns true if pos lies inside the area.
func (a Area) Contains(pos Position) bool {
	return !pos.Before(a.Start) && pos.Before(a.End)
}

// String renders the area as "start-end" using 1-based positions.
func (a Area) String() string {
	return a.Start.String() + "-" + a.End.String()
}
