package calc

import (
	"github.com/npillmayer/llparse"
	"github.com/npillmayer/llparse/ll/ll1"
	"github.com/npillmayer/llparse/ll/scanner"
	"github.com/npillmayer/llparse/runtime"
)

// Interpreter parses and evaluates calc statements. Variables persist
// between statements. An interpreter is not safe for concurrent use;
// create one per goroutine.
type Interpreter struct {
	rt     *runtime.Runtime
	lexer  scanner.Lexer
	parser *ll1.Parser
	source string
	maxDep int
}

// Option configures an interpreter.
type Option func(*Interpreter)

// WithDFALexer selects the lexmachine based lexer instead of the pattern lexer.
func WithDFALexer() Option {
	return func(ip *Interpreter) {
		ip.lexer = dfaLexer
	}
}

// SourceName sets the name used in error messages. Default is "<calc>".
func SourceName(name string) Option {
	return func(ip *Interpreter) {
		ip.source = name
	}
}

// MaxDepth limits the nesting depth of expressions, see ll1.MaxDepth.
func MaxDepth(n int) Option {
	return func(ip *Interpreter) {
		ip.maxDep = n
	}
}

// NewInterpreter creates an interpreter with an empty set of variables.
func NewInterpreter(opts ...Option) (*Interpreter, error) {
	if err := setup(); err != nil {
		return nil, err
	}
	ip := &Interpreter{
		rt:     runtime.NewRuntimeEnvironment(predefineBuiltins),
		lexer:  patternLexer,
		source: "<calc>",
	}
	for _, opt := range opts {
		opt(ip)
	}
	var err error
	if ip.parser, err = ll1.NewParser(grammar, ip.lexer, ll1.MaxDepth(ip.maxDep)); err != nil {
		return nil, err
	}
	return ip, nil
}

// Parse parses a statement and returns its syntax tree. For empty statements
// (blank or comment only) the tree is nil.
func (ip *Interpreter) Parse(line string) (Node, error) {
	result, err := ip.parser.Parse(line, ip.source)
	if err != nil {
		return nil, err
	}
	node, _ := result.(Node)
	return node, nil
}

// Eval parses and evaluates a statement. ok is false for empty statements,
// which have no value.
func (ip *Interpreter) Eval(line string) (value float64, ok bool, err error) {
	node, err := ip.Parse(line)
	if err != nil || node == nil {
		return 0, false, err
	}
	tracer().Debugf("eval %v", node)
	value, err = node.Eval(ip.rt.ScopeTree.Current())
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

// Tokens returns the tokens of a statement, including end-of-input.
func (ip *Interpreter) Tokens(line string) ([]llparse.Token, error) {
	return scanner.Tokens(ip.lexer, line, ip.source)
}

// Variable is a named value.
type Variable struct {
	Name  string
	Value float64
}

// Vars returns all global variables in lexical order.
func (ip *Interpreter) Vars() []Variable {
	var vars []Variable
	ip.rt.Globals().Tags().Each(func(name string, tag *runtime.Tag) {
		if tag.Typ == runtime.NumberType {
			vars = append(vars, Variable{Name: name, Value: tag.Value.(float64)})
		}
	})
	return vars
}

// Builtins returns the names of the builtin functions.
func (ip *Interpreter) Builtins() []string {
	return ip.rt.Builtins().Tags().Names()
}
