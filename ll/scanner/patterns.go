package scanner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/llparse"
)

// Pattern matches a token at the start of an input: either an exact literal or
// a regular expression (Go regexp syntax), anchored at the current position.
type Pattern struct {
	source  string
	literal bool
	re      *regexp.Regexp
}

// Literal creates a pattern matching text exactly.
func Literal(text string) Pattern {
	return Pattern{source: text, literal: true}
}

// Regexp creates a pattern from a regular expression. The expression is
// anchored at the current input position, i.e. it is a prefix test.
func Regexp(expr string) (Pattern, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)`)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid token pattern %q: %w", expr, err)
	}
	return Pattern{source: expr, re: re}, nil
}

// MustRegexp is like Regexp, but panics if expr cannot be compiled.
func MustRegexp(expr string) Pattern {
	p, err := Regexp(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Source returns the literal text or the regular expression of p.
func (p Pattern) Source() string {
	return p.source
}

// IsLiteral is true for patterns created by Literal.
func (p Pattern) IsLiteral() bool {
	return p.literal
}

// IsKeywordLike is true if the source of p consists solely of identifier
// characters [A-Za-z0-9_], as for keywords like "if" or "while".
func (p Pattern) IsKeywordLike() bool {
	if p.source == "" {
		return false
	}
	for _, c := range p.source {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return false
		}
	}
	return true
}

// match returns the length of the match at the start of input, or 0.
// Empty matches do not count as matches.
func (p Pattern) match(input string) int {
	if p.literal {
		if p.source != "" && strings.HasPrefix(input, p.source) {
			return len(p.source)
		}
		return 0
	}
	if p.re == nil {
		return 0
	}
	loc := p.re.FindStringIndex(input)
	if loc == nil {
		return 0
	}
	return loc[1]
}

func (p Pattern) String() string {
	if p.literal {
		return fmt.Sprintf("%q", p.source)
	}
	return "/" + p.source + "/"
}

// --- Pattern tables --------------------------------------------------------

// PatternTable maps token flavors to patterns. A table is filled once and
// may then be used for any number of lexers. Errors while filling the table
// are collected and reported by Err() and by NewLexer.
type PatternTable struct {
	order    []llparse.Symbol // in order of registration
	patterns map[llparse.Symbol]Pattern
	ignore   *hashset.Set // ignorable flavors
	keywords *hashset.Set // keyword-like flavors
	errs     []error
}

// NewPatternTable creates an empty pattern table.
func NewPatternTable() *PatternTable {
	return &PatternTable{
		patterns: make(map[llparse.Symbol]Pattern),
		ignore:   hashset.New(),
		keywords: hashset.New(),
	}
}

// Add registers a pattern for a token flavor.
func (pt *PatternTable) Add(flavor llparse.Symbol, p Pattern) *PatternTable {
	if flavor == "" {
		pt.errs = append(pt.errs, fmt.Errorf("pattern %v has an empty flavor", p))
		return pt
	}
	if _, dup := pt.patterns[flavor]; dup {
		pt.errs = append(pt.errs, fmt.Errorf("duplicate pattern for flavor %s", flavor))
		return pt
	}
	if p.source == "" {
		pt.errs = append(pt.errs, fmt.Errorf("empty pattern for flavor %s", flavor))
		return pt
	}
	pt.order = append(pt.order, flavor)
	pt.patterns[flavor] = p
	if p.IsKeywordLike() {
		pt.keywords.Add(string(flavor))
	}
	return pt
}

// AddLiterals registers literal patterns, using each literal as its own flavor.
func (pt *PatternTable) AddLiterals(literals ...string) *PatternTable {
	for _, lit := range literals {
		pt.Add(llparse.Symbol(lit), Literal(lit))
	}
	return pt
}

// Ignore registers a pattern for an ignorable flavor. Tokens of ignorable
// flavors are consumed by the lexer, but never delivered.
func (pt *PatternTable) Ignore(flavor llparse.Symbol, p Pattern) *PatternTable {
	n := len(pt.order)
	pt.Add(flavor, p)
	if len(pt.order) > n {
		pt.ignore.Add(string(flavor))
	}
	return pt
}

// IgnoreStock registers pre-defined ignorable patterns, see WhiteSpace etc.
func (pt *PatternTable) IgnoreStock(ignorables ...Ignorable) *PatternTable {
	for _, ign := range ignorables {
		pt.Ignore(ign.Flavor, ign.Pattern)
	}
	return pt
}

// Err returns the first error which occurred while filling the table.
func (pt *PatternTable) Err() error {
	if len(pt.errs) == 0 {
		return nil
	}
	return pt.errs[0]
}

// Flavors returns all flavors in order of registration, including ignorable ones.
func (pt *PatternTable) Flavors() []llparse.Symbol {
	return append([]llparse.Symbol(nil), pt.order...)
}

// Terminals returns all flavors which will be delivered to a parser, i.e.
// all flavors which are not ignorable.
func (pt *PatternTable) Terminals() []llparse.Symbol {
	var r []llparse.Symbol
	for _, f := range pt.order {
		if !pt.IsIgnorable(f) {
			r = append(r, f)
		}
	}
	return r
}

// Pattern returns the pattern for a flavor.
func (pt *PatternTable) Pattern(flavor llparse.Symbol) (Pattern, bool) {
	p, ok := pt.patterns[flavor]
	return p, ok
}

// IsIgnorable is a predicate: will tokens of this flavor be skipped?
func (pt *PatternTable) IsIgnorable(flavor llparse.Symbol) bool {
	return pt.ignore.Contains(string(flavor))
}

// IsKeyword is a predicate: is the pattern for this flavor keyword-like?
func (pt *PatternTable) IsKeyword(flavor llparse.Symbol) bool {
	return pt.keywords.Contains(string(flavor))
}

// --- Stock ignorables ------------------------------------------------------

// Ignorable is a pre-defined pattern for input to be skipped.
type Ignorable struct {
	Flavor  llparse.Symbol
	Pattern Pattern
}

// Pre-defined ignorables. The expressions are valid for Go regexp as well as
// for lexmachine.
var (
	WhiteSpace   = Ignorable{"ignore_whitespace", MustRegexp(`[ \t\r\n]+`)}
	PoundComment = Ignorable{"ignore_poundcomment", MustRegexp(`#[^\n]*`)}
	CComment     = Ignorable{"ignore_ccomment", MustRegexp(`/\*([^*]|\*+[^*/])*\*+/`)}
	CxxComment   = Ignorable{"ignore_cxxcomment", MustRegexp(`//[^\n]*`)}
)
