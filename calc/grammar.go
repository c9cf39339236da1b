package calc

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/npillmayer/llparse"
	"github.com/npillmayer/llparse/ll"
	"github.com/npillmayer/llparse/ll/scanner"
	"github.com/npillmayer/llparse/ll/scanner/lexmach"
)

// --- Lexer -----------------------------------------------------------------

// Patterns returns the token patterns of the calc language.
func Patterns() *scanner.PatternTable {
	pt := scanner.NewPatternTable()
	pt.Add("number", scanner.MustRegexp(`[0-9]+(\.[0-9]+)?`))
	pt.Add("id", scanner.MustRegexp(`[A-Za-z_][A-Za-z0-9_]*`))
	pt.Add("let", scanner.Literal("let"))
	pt.AddLiterals("+", "-", "*", "/", "(", ")", "=", ",")
	pt.IgnoreStock(scanner.WhiteSpace, scanner.PoundComment)
	return pt
}

// --- Grammar ---------------------------------------------------------------

// opTerm is an operator together with its right operand, collected by the
// *Tail rules and folded into left-associative BinOps.
type opTerm struct {
	op  llparse.Token
	rhs Node
}

func fold(first Node, tail []opTerm) Node {
	n := first
	for _, ot := range tail {
		n = &BinOp{Op: ot.op.Value, L: n, R: ot.rhs, Tok: ot.op}
	}
	return n
}

func tok(arg interface{}) llparse.Token {
	return arg.(llparse.Token)
}

func tailRule(args []interface{}) (interface{}, error) {
	return append([]opTerm{{op: tok(args[0]), rhs: args[1].(Node)}}, args[2].([]opTerm)...), nil
}

func emptyTail([]interface{}) (interface{}, error) {
	return []opTerm{}, nil
}

func makeCalcGrammar() (*ll.Grammar, error) {
	b := ll.NewGrammarBuilder("calc")
	b.LHS("Stmt").N("Cmd").Action(func(args []interface{}) (interface{}, error) {
		return args[0], nil
	}).EOF()
	b.LHS("Cmd").T("let").T("id").T("=").N("Expr").Label("assign").Action(func(args []interface{}) (interface{}, error) {
		return &Let{Name: tok(args[1]).Value, X: args[3].(Node), Tok: tok(args[1])}, nil
	}).End()
	b.LHS("Cmd").N("Expr").Label("expr").Action(func(args []interface{}) (interface{}, error) {
		return args[0], nil
	}).End()
	b.LHS("Cmd").Label("empty").Action(func([]interface{}) (interface{}, error) {
		return nil, nil
	}).Epsilon()
	//
	b.LHS("Expr").N("Term").N("ExprTail").Action(func(args []interface{}) (interface{}, error) {
		return fold(args[0].(Node), args[1].([]opTerm)), nil
	}).End()
	b.LHS("ExprTail").T("+").N("Term").N("ExprTail").Label("plus").Action(tailRule).End()
	b.LHS("ExprTail").T("-").N("Term").N("ExprTail").Label("minus").Action(tailRule).End()
	b.LHS("ExprTail").Label("sum_end").Action(emptyTail).Epsilon()
	//
	b.LHS("Term").N("Factor").N("TermTail").Action(func(args []interface{}) (interface{}, error) {
		return fold(args[0].(Node), args[1].([]opTerm)), nil
	}).End()
	b.LHS("TermTail").T("*").N("Factor").N("TermTail").Label("times").Action(tailRule).End()
	b.LHS("TermTail").T("/").N("Factor").N("TermTail").Label("div").Action(tailRule).End()
	b.LHS("TermTail").Label("product_end").Action(emptyTail).Epsilon()
	//
	b.LHS("Factor").T("number").Label("number").Action(func(args []interface{}) (interface{}, error) {
		t := tok(args[0])
		x, err := strconv.ParseFloat(t.Value, 64)
		if err != nil {
			return nil, evalError(t, "invalid number %s", t.Value)
		}
		return &Num{Value: x, Tok: t}, nil
	}).End()
	b.LHS("Factor").T("(").N("Expr").T(")").Label("group").Action(func(args []interface{}) (interface{}, error) {
		return args[1], nil
	}).End()
	b.LHS("Factor").T("-").N("Factor").Label("negate").Action(func(args []interface{}) (interface{}, error) {
		return &Neg{X: args[1].(Node), Tok: tok(args[0])}, nil
	}).End()
	b.LHS("Factor").T("id").N("Call").Label("ref").Action(func(args []interface{}) (interface{}, error) {
		t := tok(args[0])
		if args[1] == nil {
			return &Var{Name: t.Value, Tok: t}, nil
		}
		return &Call{Name: t.Value, Args: args[1].([]Node), Tok: t}, nil
	}).End()
	//
	b.LHS("Call").T("(").N("Args").T(")").Label("call").Action(func(args []interface{}) (interface{}, error) {
		return args[1], nil
	}).End()
	b.LHS("Call").Label("no_call").Action(func([]interface{}) (interface{}, error) {
		return nil, nil
	}).Epsilon()
	b.LHS("Args").N("Exprs").Label("args").Action(func(args []interface{}) (interface{}, error) {
		return args[0], nil
	}).End()
	b.LHS("Args").Label("no_args").Action(func([]interface{}) (interface{}, error) {
		return []Node{}, nil
	}).Epsilon()
	b.Sequence("Exprs", "Expr", ",", func(elems []interface{}) (interface{}, error) {
		nodes := make([]Node, len(elems))
		for i, e := range elems {
			nodes[i] = e.(Node)
		}
		return nodes, nil
	})
	return b.Grammar()
}

var grammar *ll.Grammar
var patternLexer *scanner.PatternLexer
var dfaLexer *lexmach.LMAdapter
var setupErr error

var startOnce sync.Once // monitors one-time creation of grammar and lexers

func setup() error {
	startOnce.Do(func() {
		tracer().Infof("Creating lexers")
		if patternLexer, setupErr = scanner.NewLexer(Patterns(), ll.DefaultEOF); setupErr != nil {
			return
		}
		if dfaLexer, setupErr = lexmach.NewLMAdapter(Patterns(), ll.DefaultEOF); setupErr != nil {
			return
		}
		tracer().Infof("Creating grammar")
		grammar, setupErr = makeCalcGrammar()
	})
	if setupErr != nil {
		return fmt.Errorf("cannot set up calc language: %w", setupErr)
	}
	return nil
}

// Grammar returns the grammar of the calc language.
func Grammar() (*ll.Grammar, error) {
	if err := setup(); err != nil {
		return nil, err
	}
	return grammar, nil
}
