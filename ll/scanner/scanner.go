/*
Package scanner defines the lexer of the toolbox and interfaces for lexers to
be used with parsers of package ll1.

A lexer is configured with a pattern table, mapping terminal symbols (token
flavors) to patterns. Patterns are either exact literals or regular
expressions. Some flavors may be marked as ignorable (whitespace, comments):
they are matched but never handed to the parser.

	pt := scanner.NewPatternTable()
	pt.Add("number", scanner.MustRegexp(`[0-9]+`))
	pt.Add("id", scanner.MustRegexp(`[A-Za-z_][A-Za-z0-9_]*`))
	pt.Add("if", scanner.Literal("if"))
	pt.AddLiterals("+", "(", ")")
	pt.IgnoreStock(scanner.WhiteSpace, scanner.PoundComment)
	lexer, err := scanner.NewLexer(pt, "eof")

At every input position, the longest match wins. If several patterns match
the same longest text, a keyword-like pattern (consisting solely of
identifier characters, as "if" above) is preferred over the others. Any other
tie is an ambiguity of the pattern table and is reported as an
*llparse.AmbiguityError when it occurs. Characters no pattern matches are
delivered as single tokens of flavor Unrecognized.

After the input is exhausted, a tokenizer delivers the end-of-input token
over and over again.

Two lexer implementations are provided: (1) PatternLexer of this package,
and (2) an adapter for lexmachine, living in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"sort"
	"strings"

	"github.com/npillmayer/llparse"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llparse.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("llparse.scanner")
}

// Unrecognized is the flavor of tokens for input characters no pattern
// matches. Each such token holds a single character.
const Unrecognized llparse.Symbol = "#unrecognized"

// Tokenizer is a scanner interface: a stream of tokens for one input.
// After the end-of-input token has been delivered, every further call
// delivers it again. Once NextToken has returned an error, it will keep
// returning that error.
type Tokenizer interface {
	NextToken() (llparse.Token, error)
}

// Lexer creates tokenizers for inputs. Lexers are immutable and may be used
// concurrently; tokenizers may not.
type Lexer interface {
	Tokenize(input string, sourceName string) Tokenizer
	Terminals() []llparse.Symbol // flavors which may be delivered, excluding EOF
	EOF() llparse.Symbol         // flavor of the end-of-input token
}

// Tokens tokenizes input and collects all tokens, including the end-of-input
// token.
func Tokens(lexer Lexer, input string, sourceName string) ([]llparse.Token, error) {
	t := lexer.Tokenize(input, sourceName)
	var tokens []llparse.Token
	for {
		tok, err := t.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Flavor == lexer.EOF() {
			return tokens, nil
		}
	}
}

// --- Positions -------------------------------------------------------------

// LineIndex translates byte offsets of an input into line numbers, columns
// and line texts.
type LineIndex struct {
	input  string
	starts []int // byte offset of the start of each line
}

// NewLineIndex creates a line index for an input string.
func NewLineIndex(input string) *LineIndex {
	li := &LineIndex{input: input, starts: []int{0}}
	for i := 0; i < len(input); i++ {
		if input[i] == '\n' {
			li.starts = append(li.starts, i+1)
		}
	}
	return li
}

// Position returns the 1-based line number of a byte offset, the column
// (byte offset from the start of the line), and the text of the line
// (without line terminator).
func (li *LineIndex) Position(offset int) (line int, column int, text string) {
	if offset > len(li.input) {
		offset = len(li.input)
	}
	n := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	}) - 1
	start := li.starts[n]
	end := len(li.input)
	if n+1 < len(li.starts) {
		end = li.starts[n+1] - 1
	}
	text = strings.TrimSuffix(li.input[start:end], "\r")
	return n + 1, offset - start, text
}

// MakeToken creates a token for a lexeme found at offset.
func (li *LineIndex) MakeToken(flavor llparse.Symbol, lexeme string, offset int, source string) llparse.Token {
	line, col, text := li.Position(offset)
	return llparse.Token{
		Flavor:   flavor,
		Value:    lexeme,
		Offset:   offset,
		Line:     line,
		Column:   col,
		LineText: text,
		Source:   source,
	}
}
