package scanner

import (
	"fmt"
	"unicode/utf8"

	"github.com/npillmayer/llparse"
)

// PatternLexer is a longest-match lexer driven by a pattern table.
// It is immutable and may be shared between goroutines.
type PatternLexer struct {
	table   *PatternTable
	eof     llparse.Symbol
	flavors []llparse.Symbol
}

var _ Lexer = (*PatternLexer)(nil)

// NewLexer creates a lexer from a pattern table and the flavor of the
// end-of-input token. The table must not be modified afterwards.
func NewLexer(table *PatternTable, eof llparse.Symbol) (*PatternLexer, error) {
	if err := table.Err(); err != nil {
		return nil, err
	}
	if eof == "" {
		return nil, fmt.Errorf("lexer needs an end-of-input flavor")
	}
	if _, ok := table.Pattern(eof); ok {
		return nil, &llparse.AmbiguityError{
			Reason: llparse.VocabularyConflict,
			Symbol: eof,
			Detail: fmt.Sprintf("end-of-input flavor %s must not have a pattern", eof),
		}
	}
	return &PatternLexer{
		table:   table,
		eof:     eof,
		flavors: table.Flavors(),
	}, nil
}

// Tokenize creates a token stream for an input. sourceName is used for error
// messages only.
func (l *PatternLexer) Tokenize(input string, sourceName string) Tokenizer {
	return &TokenStream{
		lexer:  l,
		input:  input,
		source: sourceName,
		lines:  NewLineIndex(input),
	}
}

// Terminals returns the flavors of all non-ignorable patterns.
func (l *PatternLexer) Terminals() []llparse.Symbol {
	return l.table.Terminals()
}

// EOF returns the flavor of the end-of-input token.
func (l *PatternLexer) EOF() llparse.Symbol {
	return l.eof
}

// Table returns the pattern table of l.
func (l *PatternLexer) Table() *PatternTable {
	return l.table
}

// --- Token streams ---------------------------------------------------------

// TokenStream is a tokenizer for a single input, created by
// PatternLexer.Tokenize. Not safe for concurrent use.
type TokenStream struct {
	lexer  *PatternLexer
	input  string
	source string
	lines  *LineIndex
	offset int
	eof    *llparse.Token
	err    error
}

type match struct {
	flavor llparse.Symbol
	length int
}

// NextToken returns the next non-ignorable token. After the input is
// exhausted the end-of-input token is returned on every call. Errors
// are sticky.
func (ts *TokenStream) NextToken() (llparse.Token, error) {
	for {
		if ts.err != nil {
			return llparse.Token{}, ts.err
		}
		if ts.eof != nil {
			return *ts.eof, nil
		}
		rest := ts.input[ts.offset:]
		if rest == "" {
			tok := ts.lines.MakeToken(ts.lexer.eof, "", ts.offset, ts.source)
			ts.eof = &tok
			tracer().Debugf("token %v at %d:%d", tok, tok.Line, tok.Column)
			return tok, nil
		}
		flavor, length, err := ts.bestMatch(rest)
		if err != nil {
			ts.err = err
			return llparse.Token{}, err
		}
		tok := ts.lines.MakeToken(flavor, rest[:length], ts.offset, ts.source)
		ts.offset += length
		if ts.lexer.table.IsIgnorable(flavor) {
			continue
		}
		tracer().Debugf("token %v at %d:%d", tok, tok.Line, tok.Column)
		return tok, nil
	}
}

// bestMatch selects the flavor for the text at the start of rest. The longest
// match wins; among equally long matches exactly one keyword-like pattern wins.
func (ts *TokenStream) bestMatch(rest string) (llparse.Symbol, int, error) {
	var longest []match
	best := 0
	for _, f := range ts.lexer.flavors {
		p, _ := ts.lexer.table.Pattern(f)
		n := p.match(rest)
		if n == 0 || n < best {
			continue
		}
		if n > best {
			best = n
			longest = longest[:0]
		}
		longest = append(longest, match{f, n})
	}
	if len(longest) == 0 {
		_, size := utf8.DecodeRuneInString(rest)
		tracer().Infof("%s: unrecognized input %q at offset %d", ts.source, rest[:size], ts.offset)
		return Unrecognized, size, nil
	}
	if len(longest) == 1 {
		return longest[0].flavor, best, nil
	}
	var keywords []match
	for _, m := range longest {
		if ts.lexer.table.IsKeyword(m.flavor) {
			keywords = append(keywords, m)
		}
	}
	if len(keywords) == 1 {
		return keywords[0].flavor, best, nil
	}
	flavors := make([]llparse.Symbol, len(longest))
	for i, m := range longest {
		flavors[i] = m.flavor
	}
	tok := ts.lines.MakeToken("", rest[:best], ts.offset, ts.source)
	tracer().Errorf("%s:%d: ambiguous token %q", ts.source, tok.Line, tok.Value)
	return "", 0, &llparse.AmbiguityError{
		Reason:  llparse.TokenConflict,
		Flavors: flavors,
		Token:   &tok,
	}
}
