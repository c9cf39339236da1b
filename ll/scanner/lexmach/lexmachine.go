package lexmach

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/llparse"
	"github.com/npillmayer/llparse/ll/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'llparse.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("llparse.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.Lexer.
// After creation it is read-only and may be shared between goroutines.
type LMAdapter struct {
	Lexer   *lexmachine.Lexer
	table   *scanner.PatternTable
	eof     llparse.Symbol
	flavors []llparse.Symbol // token type id → flavor
}

var _ scanner.Lexer = (*LMAdapter)(nil)

// NewLMAdapter creates a new lexmachine adapter from a pattern table and the
// flavor of the end-of-input token.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(table *scanner.PatternTable, eof llparse.Symbol) (*LMAdapter, error) {
	if err := table.Err(); err != nil {
		return nil, err
	}
	if _, ok := table.Pattern(eof); ok {
		return nil, &llparse.AmbiguityError{
			Reason: llparse.VocabularyConflict,
			Symbol: eof,
			Detail: fmt.Sprintf("end-of-input flavor %s must not have a pattern", eof),
		}
	}
	adapter := &LMAdapter{
		Lexer: lexmachine.NewLexer(),
		table: table,
		eof:   eof,
	}
	// lexmachine resolves equally long matches by order of patterns
	var ordered []llparse.Symbol
	for _, f := range table.Flavors() {
		if table.IsKeyword(f) {
			ordered = append(ordered, f)
		}
	}
	for _, f := range table.Flavors() {
		if !table.IsKeyword(f) {
			ordered = append(ordered, f)
		}
	}
	for _, f := range ordered {
		p, _ := table.Pattern(f)
		expr := p.Source()
		if p.IsLiteral() {
			expr = escapeLiteral(expr)
		}
		if table.IsIgnorable(f) {
			adapter.Lexer.Add([]byte(expr), Skip)
			continue
		}
		adapter.Lexer.Add([]byte(expr), MakeToken(f, len(adapter.flavors)))
		adapter.flavors = append(adapter.flavors, f)
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// escapeLiteral escapes every character of a literal which is not a letter
// or a digit.
func escapeLiteral(lit string) string {
	var b strings.Builder
	for _, c := range lit {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// Tokenize creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Tokenize(input string, sourceName string) scanner.Tokenizer {
	s, err := lm.Lexer.Scanner([]byte(input))
	return &LMScanner{
		scanner: s,
		adapter: lm,
		input:   input,
		source:  sourceName,
		lines:   scanner.NewLineIndex(input),
		err:     err,
		Error:   logError,
	}
}

// Terminals returns the flavors of all non-ignorable patterns.
func (lm *LMAdapter) Terminals() []llparse.Symbol {
	return lm.table.Terminals()
}

// EOF returns the flavor of the end-of-input token.
func (lm *LMAdapter) EOF() llparse.Symbol {
	return lm.eof
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	adapter *LMAdapter
	input   string
	source  string
	lines   *scanner.LineIndex
	eof     *llparse.Token
	err     error
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner. It is called for
// every unrecognized input character.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Infof("scanner error: %v", e)
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() (llparse.Token, error) {
	if lms.err != nil {
		return llparse.Token{}, lms.err
	}
	if lms.eof != nil {
		return *lms.eof, nil
	}
	tok, err, eof := lms.scanner.Next()
	if err != nil {
		ui, is := err.(*machines.UnconsumedInput)
		if !is {
			lms.err = err
			return llparse.Token{}, err
		}
		lms.Error(err)
		_, size := utf8.DecodeRuneInString(lms.input[ui.StartTC:])
		lms.scanner.TC = ui.StartTC + size
		return lms.lines.MakeToken(scanner.Unrecognized, lms.input[ui.StartTC:ui.StartTC+size],
			ui.StartTC, lms.source), nil
	}
	if eof {
		t := lms.lines.MakeToken(lms.adapter.eof, "", len(lms.input), lms.source)
		lms.eof = &t
		return t, nil
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	return lms.lines.MakeToken(lms.adapter.flavors[token.Type], string(token.Lexeme),
		token.TC, lms.source), nil
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(flavor llparse.Symbol, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(flavor), m), nil
	}
}
