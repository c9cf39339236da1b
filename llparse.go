package llparse

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// --- Symbols ---------------------------------------------------------------

// Symbol names a terminal or a non-terminal of a grammar. Terminals double as
// token categories ("flavors") of the lexer.
//
// Whether a symbol is a terminal or a non-terminal is decided by the grammar:
// every symbol appearing as the left-hand side of a rule is a non-terminal,
// every other symbol is a terminal.
type Symbol string

func (s Symbol) String() string {
	return string(s)
}

// --- Tokens ----------------------------------------------------------------

// Token is an input token, produced by a scanner and consumed by a parser.
//
// An example would be a token for a number:
//
//    Flavor   = "number"        // terminal symbol of the grammar
//    Value    = "3.1416"        // lexeme as it appeared in the input
//    Offset   = 67              // byte offset within the input
//    Line     = 3               // 1-based line number
//    Column   = 12              // byte offset from the start of the line
//    LineText = "x = 3.1416 * r"
//    Source   = "circle.calc"
//
// Tokens are immutable values.
type Token struct {
	Flavor   Symbol
	Value    string
	Offset   int
	Line     int
	Column   int
	LineText string
	Source   string
}

// Span returns the byte range of the input covered by this token.
func (t Token) Span() Span {
	return Span{uint64(t.Offset), uint64(t.Offset + len(t.Value))}
}

// Display renders the source line of t followed by a caret line pointing to
// the token's column:
//
//    x = 3.1416 * r
//    ------------^
//
// Tabs are expanded to multiples of 8 columns.
func (t Token) Display() string {
	line := expandTabs(t.LineText)
	col := displayColumn(t.LineText, t.Column)
	return line + "\n" + strings.Repeat("-", col) + "^\n"
}

func (t Token) String() string {
	return fmt.Sprintf("(%q,%s)", t.Value, t.Flavor)
}

const tabWidth = 8

func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// displayColumn converts a byte column into the number of display cells
// before it, honouring tab stops and multi-byte runes.
func displayColumn(line string, bytecol int) int {
	if bytecol > len(line) {
		bytecol = len(line)
	}
	col := 0
	for i := 0; i < bytecol; {
		r, sz := utf8.DecodeRuneInString(line[i:])
		if r == '\t' {
			col += tabWidth - col%tabWidth
		} else {
			col++
		}
		i += sz
	}
	return col
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input run. A span denotes
// a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

// String renders a span as (x…y).
func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
