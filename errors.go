package llparse

import (
	"fmt"
	"sort"
	"strings"
)

// Reason classifies an AmbiguityError.
type Reason int

// Static defects of grammars and pattern tables.
const (
	RuleConflict          Reason = iota + 1 // two rules claim the same predict-table cell
	MultipleStartRules                      // more than one rule defines the start symbol
	EmptyStartRule                          // start rule has an empty right-hand side
	UnterminatedStartRule                   // start rule does not end with end-of-input
	TokenConflict                           // lexer patterns tie on length and keyword-ness
	VocabularyConflict                      // a symbol is used both as terminal and non-terminal
	UndefinedSymbol                         // a referenced symbol has no rule or no pattern
)

var reasonNames = map[Reason]string{
	RuleConflict:          "rule conflict",
	MultipleStartRules:    "multiple start rules",
	EmptyStartRule:        "empty start rule",
	UnterminatedStartRule: "unterminated start rule",
	TokenConflict:         "token conflict",
	VocabularyConflict:    "vocabulary conflict",
	UndefinedSymbol:       "undefined symbol",
}

func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// AmbiguityError is a static fault: a grammar or a pattern table cannot be
// used for deterministic parsing. All reasons except TokenConflict are
// detected before any input is parsed.
type AmbiguityError struct {
	Reason   Reason
	Symbol   Symbol   // non-terminal involved, if any
	Terminal Symbol   // conflicting lookahead terminal, if any
	Rules    []string // labels of the competing rules
	Flavors  []Symbol // competing token flavors (TokenConflict)
	Token    *Token   // input position (TokenConflict)
	Detail   string
}

func (e *AmbiguityError) Error() string {
	var b strings.Builder
	b.WriteString(e.Reason.String())
	b.WriteString(": ")
	switch e.Reason {
	case RuleConflict:
		fmt.Fprintf(&b, "for %s on %s, rule %q competes with rule %q", e.Symbol, e.Terminal,
			e.Rules[1], e.Rules[0])
	case TokenConflict:
		flavors := make([]string, len(e.Flavors))
		for i, f := range e.Flavors {
			flavors[i] = string(f)
		}
		if e.Token != nil {
			fmt.Fprintf(&b, "%s:%d: token %q is one of %s\n%s", e.Token.Source, e.Token.Line,
				e.Token.Value, strings.Join(flavors, "|"), e.Token.Display())
		} else {
			fmt.Fprintf(&b, "token is one of %s", strings.Join(flavors, "|"))
		}
	default:
		b.WriteString(e.Detail)
		if len(e.Rules) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(e.Rules, ", "))
		}
	}
	return b.String()
}

// SyntaxError is a dynamic fault: the input does not conform to the grammar.
// The first syntax error aborts a parse.
type SyntaxError struct {
	Token       Token    // offending lookahead token
	NonTerminal Symbol   // non-terminal being predicted; empty for a terminal mismatch
	Expected    []Symbol // terminals acceptable at this point
	Found       Symbol   // flavor of the offending token
}

// NewSyntaxError creates a syntax error for an offending token. Expected
// terminals are reported in sorted order.
func NewSyntaxError(tok Token, nonterm Symbol, expected []Symbol) *SyntaxError {
	exp := make([]Symbol, len(expected))
	copy(exp, expected)
	sort.Slice(exp, func(i, j int) bool { return exp[i] < exp[j] })
	return &SyntaxError{
		Token:       tok,
		NonTerminal: nonterm,
		Expected:    exp,
		Found:       tok.Flavor,
	}
}

func (e *SyntaxError) Error() string {
	exp := make([]string, len(e.Expected))
	for i, s := range e.Expected {
		exp[i] = string(s)
	}
	if e.NonTerminal == "" {
		return fmt.Sprintf("%s:%d: expected %s, got %s\n", e.Token.Source, e.Token.Line,
			strings.Join(exp, " or "), e.Found) + e.Token.Display()
	}
	return fmt.Sprintf("%s:%d: for %s, expected %s, got %s\n", e.Token.Source, e.Token.Line,
		e.NonTerminal, strings.Join(exp, " or "), e.Found) + e.Token.Display()
}
