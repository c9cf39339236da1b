package ll

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/llparse"
	"github.com/npillmayer/llparse/ll/sparse"
)

// Action is a semantic action attached to a rule. It receives the results of
// predicting each right-hand-side symbol, left to right, and returns the result
// for the rule's left-hand side. The result of a terminal is its llparse.Token.
//
// A non-nil error aborts the parse and is handed to the caller unmodified.
type Action func(args []interface{}) (interface{}, error)

// Rule is a grammar production LHS → RHS, together with a semantic action and
// a label for diagnostics. Rules are immutable once part of a grammar.
type Rule struct {
	Serial int            // position within the grammar, 0 = start rule
	LHS    llparse.Symbol // left-hand side
	rhs    []llparse.Symbol
	Action Action // may be nil
	Label  string // display name
}

// NewRule creates a rule lhs → rhs. If label is empty, the rule's string form
// is used as its label.
func NewRule(lhs llparse.Symbol, rhs []llparse.Symbol, action Action, label string) *Rule {
	r := &Rule{
		LHS:    lhs,
		rhs:    append([]llparse.Symbol(nil), rhs...),
		Action: action,
		Label:  label,
	}
	if r.Label == "" {
		r.Label = r.String()
	}
	return r
}

// RHS returns a copy of the right-hand side of a rule.
func (r *Rule) RHS() []llparse.Symbol {
	return append([]llparse.Symbol(nil), r.rhs...)
}

// Len returns the number of right-hand-side symbols.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// At returns the i-th right-hand-side symbol.
func (r *Rule) At(i int) llparse.Symbol {
	return r.rhs[i]
}

// IsEpsilon is true for rules with an empty right-hand side.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 0
}

// Apply calls the rule's semantic action. Rules without an action return
// their arguments as a slice.
func (r *Rule) Apply(args []interface{}) (interface{}, error) {
	if r.Action == nil {
		return args, nil
	}
	return r.Action(args)
}

func (r *Rule) String() string {
	rhs := make([]string, len(r.rhs))
	for i, s := range r.rhs {
		rhs[i] = string(s)
	}
	return fmt.Sprintf("%s -> %s", r.LHS, strings.Join(rhs, " "))
}

// --- Grammar ---------------------------------------------------------------

// Grammar is an analysed LL(1) grammar. It is created by Build or by a
// GrammarBuilder and is immutable afterwards; it may be shared between
// any number of concurrent parsers.
type Grammar struct {
	Name         string
	rules        []*Rule
	start        llparse.Symbol
	eof          llparse.Symbol
	nonterminals []llparse.Symbol // in order of first appearance as LHS
	terminals    []llparse.Symbol // in order of first appearance on a RHS
	ntIndex      map[llparse.Symbol]int
	tIndex       map[llparse.Symbol]int
	derivesEmpty map[llparse.Symbol]bool
	first        map[llparse.Symbol]*TerminalSet
	follow       map[llparse.Symbol]*TerminalSet
	predict      *sparse.IntMatrix // (non-terminal, terminal) → rule serial
}

// Build creates and analyses a grammar from an ordered list of rules, a start
// symbol and an end-of-input terminal.
//
// Symbols appearing as the left-hand side of a rule are non-terminals, all
// other symbols are terminals. Exactly one rule must define the start symbol,
// and its right-hand side must end with the end-of-input terminal. The start
// symbol must not appear on any right-hand side.
//
// Build returns an *llparse.AmbiguityError if the grammar is malformed or not
// LL(1).
func Build(name string, rules []*Rule, start, eof llparse.Symbol) (*Grammar, error) {
	if len(rules) == 0 {
		return nil, &llparse.AmbiguityError{
			Reason: llparse.UndefinedSymbol,
			Symbol: start,
			Detail: fmt.Sprintf("grammar %q has no rules", name),
		}
	}
	g := &Grammar{
		Name:    name,
		start:   start,
		eof:     eof,
		ntIndex: make(map[llparse.Symbol]int),
		tIndex:  make(map[llparse.Symbol]int),
	}
	for i, r := range rules {
		rule := NewRule(r.LHS, r.rhs, r.Action, r.Label)
		rule.Serial = i
		g.rules = append(g.rules, rule)
		if _, ok := g.ntIndex[rule.LHS]; !ok {
			g.ntIndex[rule.LHS] = len(g.nonterminals)
			g.nonterminals = append(g.nonterminals, rule.LHS)
		}
	}
	for _, r := range g.rules {
		for _, sym := range r.rhs {
			if g.IsNonTerminal(sym) {
				continue
			}
			if _, ok := g.tIndex[sym]; !ok {
				g.tIndex[sym] = len(g.terminals)
				g.terminals = append(g.terminals, sym)
			}
		}
	}
	if err := g.checkStartRule(); err != nil {
		return nil, err
	}
	tracer().Debugf("grammar %q: %d rules, %d non-terminals, %d terminals", name,
		len(g.rules), len(g.nonterminals), len(g.terminals))
	g.derivesEmpty = computeDerivesEmpty(g.rules)
	g.first = computeFirst(g)
	g.follow = computeFollow(g)
	if err := g.buildPredictTable(); err != nil {
		tracer().Errorf("grammar %q is not LL(1): %v", name, err)
		return nil, err
	}
	return g, nil
}

func (g *Grammar) checkStartRule() error {
	if !g.IsNonTerminal(g.start) {
		return &llparse.AmbiguityError{
			Reason: llparse.UndefinedSymbol,
			Symbol: g.start,
			Detail: fmt.Sprintf("start symbol %s is not defined by any rule", g.start),
		}
	}
	if g.IsNonTerminal(g.eof) {
		return &llparse.AmbiguityError{
			Reason: llparse.VocabularyConflict,
			Symbol: g.eof,
			Detail: fmt.Sprintf("end-of-input symbol %s must be a terminal", g.eof),
		}
	}
	var starts []*Rule
	for _, r := range g.rules {
		if r.LHS == g.start {
			starts = append(starts, r)
		}
	}
	if len(starts) > 1 {
		labels := make([]string, len(starts))
		for i, r := range starts {
			labels[i] = r.Label
		}
		return &llparse.AmbiguityError{
			Reason: llparse.MultipleStartRules,
			Symbol: g.start,
			Rules:  labels,
			Detail: fmt.Sprintf("start symbol %s is defined %d times", g.start, len(starts)),
		}
	}
	startRule := starts[0]
	if startRule.IsEpsilon() {
		return &llparse.AmbiguityError{
			Reason: llparse.EmptyStartRule,
			Symbol: g.start,
			Rules:  []string{startRule.Label},
			Detail: "start rule has an empty right-hand side",
		}
	}
	if startRule.rhs[len(startRule.rhs)-1] != g.eof {
		return &llparse.AmbiguityError{
			Reason:   llparse.UnterminatedStartRule,
			Symbol:   g.start,
			Terminal: g.eof,
			Rules:    []string{startRule.Label},
			Detail:   fmt.Sprintf("start rule must end with end-of-input terminal %s", g.eof),
		}
	}
	for _, r := range g.rules {
		for _, sym := range r.rhs {
			if sym == g.start {
				return &llparse.AmbiguityError{
					Reason: llparse.VocabularyConflict,
					Symbol: g.start,
					Rules:  []string{r.Label},
					Detail: fmt.Sprintf("start symbol %s must not appear on a right-hand side", g.start),
				}
			}
		}
	}
	return nil
}

// Start returns the start symbol.
func (g *Grammar) Start() llparse.Symbol {
	return g.start
}

// EOF returns the end-of-input terminal.
func (g *Grammar) EOF() llparse.Symbol {
	return g.eof
}

// StartRule returns the single rule for the start symbol.
func (g *Grammar) StartRule() *Rule {
	for _, r := range g.rules {
		if r.LHS == g.start {
			return r
		}
	}
	return nil // not reached for built grammars
}

// Rules returns the rules of g in the order they have been given.
func (g *Grammar) Rules() []*Rule {
	return append([]*Rule(nil), g.rules...)
}

// Rule returns rule #i.
func (g *Grammar) Rule(i int) *Rule {
	if i < 0 || i >= len(g.rules) {
		return nil
	}
	return g.rules[i]
}

// NonTerminals returns all non-terminals, in order of first definition.
func (g *Grammar) NonTerminals() []llparse.Symbol {
	return append([]llparse.Symbol(nil), g.nonterminals...)
}

// Terminals returns all terminals, including end-of-input, in order of first use.
func (g *Grammar) Terminals() []llparse.Symbol {
	return append([]llparse.Symbol(nil), g.terminals...)
}

// IsNonTerminal is a predicate: is A defined by a rule of g?
func (g *Grammar) IsNonTerminal(A llparse.Symbol) bool {
	_, ok := g.ntIndex[A]
	return ok
}

// IsTerminal is a predicate: is t referenced by g without being defined?
func (g *Grammar) IsTerminal(t llparse.Symbol) bool {
	_, ok := g.tIndex[t]
	return ok
}

// EachNonTerminal iterates over all non-terminals of g.
func (g *Grammar) EachNonTerminal(mapper func(A llparse.Symbol)) {
	for _, A := range g.nonterminals {
		mapper(A)
	}
}

// Fingerprint returns a hash of the grammar's shape (name, rules, labels,
// start and end-of-input symbol). Semantic actions do not contribute.
// Grammars built from identical rule lists have identical fingerprints.
func (g *Grammar) Fingerprint() string {
	type ruleShape struct {
		LHS   string
		RHS   []string
		Label string
	}
	shape := struct {
		Name  string
		Start string
		EOF   string
		Rules []ruleShape
	}{
		Name:  g.Name,
		Start: string(g.start),
		EOF:   string(g.eof),
	}
	for _, r := range g.rules {
		rs := ruleShape{LHS: string(r.LHS), Label: r.Label}
		for _, s := range r.rhs {
			rs.RHS = append(rs.RHS, string(s))
		}
		shape.Rules = append(shape.Rules, rs)
	}
	h, err := structhash.Hash(shape, 1)
	if err != nil {
		tracer().Errorf("cannot hash grammar %q: %v", g.Name, err)
		return ""
	}
	return h
}

// Dump is a debugging helper, tracing rules and sets of g.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ---------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %-12s [%s] ::= %v", r.Serial, r.Label, r.LHS, r.rhs)
	}
	for _, A := range g.nonterminals {
		tracer().Debugf("FIRST(%s)  = %v", A, g.first[A])
		tracer().Debugf("FOLLOW(%s) = %v", A, g.follow[A])
	}
	tracer().Debugf("-------------------------------------------")
}
