/*
Package ll1 implements a table-driven predictive parser for LL(1) grammars.

The parser predicts the start symbol of a grammar and descends recursively,
selecting rules from the grammar's predict table by a single token of
lookahead. When all right-hand-side symbols of a rule have been predicted,
the rule's semantic action is applied to their results. Terminals predict the
llparse.Token they match.

	g, err := b.Grammar()                  // see package ll
	lexer, err := scanner.NewLexer(pt, "eof")
	parser, err := ll1.NewParser(g, lexer)
	result, err := parser.Parse("a + b", "input")

The first error, be it a syntax error, an error of the lexer or an error
returned from a semantic action, ends the parse and is handed to the caller
unmodified. There is no error recovery.

A parser is immutable and may be used by any number of goroutines
concurrently; each parse has its own token stream.

Configuration

With the boolean configuration key `ll-strict-vocabulary` set (see package
schuko/gconf), NewParser will reject lexers producing token flavors
unknown to the grammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll1

import (
	"errors"
	"fmt"

	"github.com/npillmayer/llparse"
	"github.com/npillmayer/llparse/ll"
	"github.com/npillmayer/llparse/ll/scanner"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llparse.ll'.
func tracer() tracing.Trace {
	return tracing.Select("llparse.ll")
}

// ErrDepthExceeded is returned (wrapped) if a parse nests deeper than
// allowed by option MaxDepth.
var ErrDepthExceeded = errors.New("maximum parse depth exceeded")

// Option configures a parser.
type Option func(p *Parser)

// MaxDepth limits the nesting of non-terminal predictions. n ≤ 0 means
// unlimited, which is the default.
func MaxDepth(n int) Option {
	return func(p *Parser) {
		p.maxDepth = n
	}
}

// Parser is an LL(1) parser for a grammar, reading tokens from a lexer.
type Parser struct {
	g        *ll.Grammar
	lexer    scanner.Lexer
	maxDepth int
}

// NewParser creates a parser for grammar g. The lexer has to provide a
// pattern for every terminal of g except end-of-input, and it must agree
// with g on the end-of-input terminal. Mismatches are reported as
// *llparse.AmbiguityError.
func NewParser(g *ll.Grammar, lexer scanner.Lexer, opts ...Option) (*Parser, error) {
	if g == nil || lexer == nil {
		return nil, errors.New("parser needs a grammar and a lexer")
	}
	if err := checkVocabulary(g, lexer, gconf.GetBool("ll-strict-vocabulary")); err != nil {
		tracer().Errorf("grammar %q does not fit lexer: %v", g.Name, err)
		return nil, err
	}
	p := &Parser{g: g, lexer: lexer}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func checkVocabulary(g *ll.Grammar, lexer scanner.Lexer, strict bool) error {
	if lexer.EOF() != g.EOF() {
		return &llparse.AmbiguityError{
			Reason:   llparse.VocabularyConflict,
			Terminal: g.EOF(),
			Detail: fmt.Sprintf("lexer uses end-of-input %s, grammar uses %s",
				lexer.EOF(), g.EOF()),
		}
	}
	flavors := make(map[llparse.Symbol]bool)
	for _, f := range lexer.Terminals() {
		flavors[f] = true
		if g.IsNonTerminal(f) {
			return &llparse.AmbiguityError{
				Reason: llparse.VocabularyConflict,
				Symbol: f,
				Detail: fmt.Sprintf("token flavor %s is a non-terminal of the grammar", f),
			}
		}
		if strict && !g.IsTerminal(f) {
			return &llparse.AmbiguityError{
				Reason:   llparse.VocabularyConflict,
				Terminal: f,
				Detail:   fmt.Sprintf("token flavor %s is unknown to the grammar", f),
			}
		}
	}
	for _, t := range g.Terminals() {
		if t != g.EOF() && !flavors[t] {
			return &llparse.AmbiguityError{
				Reason:   llparse.UndefinedSymbol,
				Terminal: t,
				Detail:   fmt.Sprintf("terminal %s has no token pattern", t),
			}
		}
	}
	return nil
}

// Grammar returns the grammar of p.
func (p *Parser) Grammar() *ll.Grammar {
	return p.g
}

// Parse tokenizes an input and parses it. sourceName is used for error
// messages only. Returns the result of the start rule's semantic action.
func (p *Parser) Parse(input string, sourceName string) (interface{}, error) {
	return p.ParseTokens(p.lexer.Tokenize(input, sourceName))
}

// ParseTokens parses a token stream. Returns the result of the start rule's
// semantic action.
func (p *Parser) ParseTokens(tokens scanner.Tokenizer) (interface{}, error) {
	run := &parseRun{parser: p, tokens: tokens}
	if err := run.advance(); err != nil {
		return nil, err
	}
	tracer().Debugf("parsing %s with grammar %q", run.lookahead.Source, p.g.Name)
	return run.predict(p.g.Start(), 0)
}

// parseRun holds the state of a single parse: the token stream and the
// current lookahead token.
type parseRun struct {
	parser    *Parser
	tokens    scanner.Tokenizer
	lookahead llparse.Token
}

func (run *parseRun) advance() error {
	tok, err := run.tokens.NextToken()
	if err != nil {
		return err
	}
	run.lookahead = tok
	return nil
}

func (run *parseRun) predict(sym llparse.Symbol, depth int) (interface{}, error) {
	g := run.parser.g
	if !g.IsNonTerminal(sym) {
		return run.match(sym)
	}
	if run.parser.maxDepth > 0 && depth >= run.parser.maxDepth {
		return nil, fmt.Errorf("%s:%d: predicting %s: %w", run.lookahead.Source,
			run.lookahead.Line, sym, ErrDepthExceeded)
	}
	rule, ok := g.Predict(sym, run.lookahead.Flavor)
	if !ok {
		err := llparse.NewSyntaxError(run.lookahead, sym, g.Expected(sym))
		tracer().Debugf("syntax error: %v", err)
		return nil, err
	}
	tracer().P("depth", depth).Debugf("%s: expand %v", run.lookahead, rule)
	args := make([]interface{}, rule.Len())
	for i := 0; i < rule.Len(); i++ {
		v, err := run.predict(rule.At(i), depth+1)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return rule.Apply(args)
}

func (run *parseRun) match(t llparse.Symbol) (interface{}, error) {
	tok := run.lookahead
	if tok.Flavor != t {
		err := llparse.NewSyntaxError(tok, "", []llparse.Symbol{t})
		tracer().Debugf("syntax error: %v", err)
		return nil, err
	}
	if t == run.parser.g.EOF() { // nothing to read beyond end-of-input
		return tok, nil
	}
	if err := run.advance(); err != nil {
		return nil, err
	}
	return tok, nil
}
