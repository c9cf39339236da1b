package ll

import (
	"fmt"

	"github.com/npillmayer/llparse"
)

// DefaultEOF is the end-of-input terminal of grammar builders, unless
// changed with EndOfInput(…).
const DefaultEOF llparse.Symbol = "eof"

// GrammarBuilder is a builder type for grammars. Clients create a builder,
// add rules and finally call Grammar() to receive an analysed grammar.
//
//    b := NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a").EOF()  // S  ->  A a eof
//    b.LHS("A").T("b").End()         // A  ->  b
//    b.LHS("A").Epsilon()            // A  ->
//    g, err := b.Grammar()
//
// The first rule added is the start rule.
type GrammarBuilder struct {
	name      string
	eof       llparse.Symbol
	rules     []*Rule
	declaredN map[llparse.Symbol]string // non-terminal → label of first rule using it
	declaredT map[llparse.Symbol]string // terminal → label of first rule using it
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{
		name:      gname,
		eof:       DefaultEOF,
		declaredN: make(map[llparse.Symbol]string),
		declaredT: make(map[llparse.Symbol]string),
	}
}

// EndOfInput sets the end-of-input terminal, which will be appended to the
// start rule by RuleBuilder.EOF().
func (gb *GrammarBuilder) EndOfInput(eof llparse.Symbol) *GrammarBuilder {
	gb.eof = eof
	return gb
}

// LHS starts a rule given the left hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(s llparse.Symbol) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: s}
}

// Grammar returns the analysed grammar. The start symbol is the left hand side
// of the first rule. Returns an *llparse.AmbiguityError if the grammar is
// malformed or not LL(1).
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if len(gb.rules) == 0 {
		return nil, &llparse.AmbiguityError{
			Reason: llparse.UndefinedSymbol,
			Detail: fmt.Sprintf("grammar %q has no rules", gb.name),
		}
	}
	lhs := make(map[llparse.Symbol]bool)
	for _, r := range gb.rules {
		lhs[r.LHS] = true
	}
	for _, r := range gb.rules { // report in rule order
		for _, sym := range r.rhs {
			if label, ok := gb.declaredN[sym]; ok && !lhs[sym] {
				return nil, &llparse.AmbiguityError{
					Reason: llparse.UndefinedSymbol,
					Symbol: sym,
					Rules:  []string{label},
					Detail: fmt.Sprintf("non-terminal %s has no rules", sym),
				}
			}
			if label, ok := gb.declaredT[sym]; ok && lhs[sym] {
				return nil, &llparse.AmbiguityError{
					Reason: llparse.VocabularyConflict,
					Symbol: sym,
					Rules:  []string{label},
					Detail: fmt.Sprintf("terminal %s is defined by a rule", sym),
				}
			}
		}
	}
	return Build(gb.name, gb.rules, gb.rules[0].LHS, gb.eof)
}

func (gb *GrammarBuilder) appendRule(r *Rule) *Rule {
	gb.rules = append(gb.rules, r)
	return r
}

// Sequence adds rules for a non-empty list of elements, optionally separated
// by a separator terminal. For
//
//    b.Sequence("args", "expr", ",", action)
//
// the following rules are created:
//
//    args      ->  args_body
//    args_body ->  expr args_tail
//    args_tail ->  , args_body
//    args_tail ->
//
// With an empty separator, args_tail → args_body is used instead. The action
// is called once per list, with the results of all the elements as arguments.
// A nil action yields the results of all the elements as a slice.
func (gb *GrammarBuilder) Sequence(lhs, element, separator llparse.Symbol, action Action) {
	body := lhs + "_body"
	tail := lhs + "_tail"
	gb.LHS(lhs).N(body).Label(string(lhs)).Action(func(args []interface{}) (interface{}, error) {
		rev := args[0].([]interface{})
		elems := make([]interface{}, len(rev))
		for i, e := range rev {
			elems[len(rev)-1-i] = e
		}
		if action == nil {
			return elems, nil
		}
		return action(elems)
	}).End()
	// lists are collected in reverse order while recursion unwinds
	gb.LHS(body).Sym(element).N(tail).Label(string(body)).Action(func(args []interface{}) (interface{}, error) {
		return append(args[1].([]interface{}), args[0]), nil
	}).End()
	if separator == "" {
		gb.LHS(tail).N(body).Label(string(tail)).Action(func(args []interface{}) (interface{}, error) {
			return args[0], nil
		}).End()
	} else {
		gb.LHS(tail).T(separator).N(body).Label(string(tail)).Action(func(args []interface{}) (interface{}, error) {
			return args[1], nil
		}).End()
	}
	gb.LHS(tail).Label(string(tail) + "_").Action(func(args []interface{}) (interface{}, error) {
		return make([]interface{}, 0, 8), nil
	}).Epsilon()
}

// --- Rule builder ----------------------------------------------------------

// RuleBuilder is a builder type for rules. It is created by
// GrammarBuilder.LHS(…) and completed by End(), EOF() or Epsilon().
type RuleBuilder struct {
	gb     *GrammarBuilder
	lhs    llparse.Symbol
	rhs    []llparse.Symbol
	action Action
	label  string
}

func (rb *RuleBuilder) currentLabel() string {
	if rb.label != "" {
		return rb.label
	}
	return string(rb.lhs)
}

// N appends a non-terminal to the builder.
func (rb *RuleBuilder) N(s llparse.Symbol) *RuleBuilder {
	if _, ok := rb.gb.declaredN[s]; !ok {
		rb.gb.declaredN[s] = rb.currentLabel()
	}
	rb.rhs = append(rb.rhs, s)
	return rb
}

// T appends a terminal to the builder.
func (rb *RuleBuilder) T(s llparse.Symbol) *RuleBuilder {
	if _, ok := rb.gb.declaredT[s]; !ok {
		rb.gb.declaredT[s] = rb.currentLabel()
	}
	rb.rhs = append(rb.rhs, s)
	return rb
}

// Sym appends symbols without declaring them as terminal or non-terminal.
// Their role will be inferred from the left hand sides of the grammar's rules.
func (rb *RuleBuilder) Sym(syms ...llparse.Symbol) *RuleBuilder {
	rb.rhs = append(rb.rhs, syms...)
	return rb
}

// Action sets the semantic action of the rule.
func (rb *RuleBuilder) Action(a Action) *RuleBuilder {
	rb.action = a
	return rb
}

// Label sets the display name of the rule.
func (rb *RuleBuilder) Label(l string) *RuleBuilder {
	rb.label = l
	return rb
}

// End a rule.
func (rb *RuleBuilder) End() *Rule {
	return rb.gb.appendRule(NewRule(rb.lhs, rb.rhs, rb.action, rb.label))
}

// EOF appends the end-of-input terminal and ends the rule.
func (rb *RuleBuilder) EOF() *Rule {
	return rb.T(rb.gb.eof).End()
}

// Epsilon sets epsilon as the RHS of a production and ends the rule.
// Symbols appended before are discarded.
func (rb *RuleBuilder) Epsilon() *Rule {
	rb.rhs = nil
	return rb.End()
}
