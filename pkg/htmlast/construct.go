package htmlast

// Construct classifies a template expression by its effect on nesting.
type Construct uint8

// Construct kinds assigned from a dialect grammar table.
const (
	ConstructStatement Construct = iota
	ConstructExpression
	ConstructIf
	ConstructElse
	ConstructEndIf
	ConstructLoop
	ConstructEndLoop
	ConstructSwitch
	ConstructCase
	ConstructEndSwitch
	ConstructBlock
	ConstructEndBlock
	ConstructComment
)

var constructNames = [...]string{
	ConstructStatement:  "statement",
	ConstructExpression: "expression",
	ConstructIf:         "if",
	ConstructElse:       "else",
	ConstructEndIf:      "end_if",
	ConstructLoop:       "loop",
	ConstructEndLoop:    "end_loop",
	ConstructSwitch:     "switch",
	ConstructCase:       "case",
	ConstructEndSwitch:  "end_switch",
	ConstructBlock:      "block",
	ConstructEndBlock:   "end_block",
	ConstructComment:    "comment",
}

// String returns the snake_case name of the construct.
func (c Construct) String() string {
	if int(c) < len(constructNames) {
		return constructNames[c]
	}
	return "unknown"
}

// IndentBefore returns how many levels the construct closes before its own line.
func (c Construct) IndentBefore() int {
	switch c {
	case ConstructEndBlock, ConstructEndIf, ConstructEndLoop, ConstructCase, ConstructElse:
		return 1
	case ConstructEndSwitch:
		return 2
	default:
		return 0
	}
}

// IndentAfter returns how many levels the construct opens after its own line.
func (c Construct) IndentAfter() int {
	switch c {
	case ConstructBlock, ConstructIf, ConstructLoop, ConstructCase, ConstructElse:
		return 1
	case ConstructSwitch:
		return 2
	default:
		return 0
	}
}
