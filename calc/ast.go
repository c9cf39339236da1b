package calc

import (
	"fmt"
	"strings"

	"github.com/npillmayer/llparse"
	"github.com/npillmayer/llparse/runtime"
)

// Node is a node of the abstract syntax tree of a calc statement.
type Node interface {
	Eval(sc *runtime.Scope) (float64, error)
	Label() string        // short description of the node itself
	Children() []Node     // sub-expressions, in order
	Token() llparse.Token // token at the node's position in the input
	String() string       // s-expression of the subtree
}

// EvalError is an error occuring during evaluation, e.g. a division by zero.
type EvalError struct {
	Token llparse.Token
	Msg   string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s:%d: %s\n", e.Token.Source, e.Token.Line, e.Msg) + e.Token.Display()
}

func evalError(tok llparse.Token, format string, args ...interface{}) error {
	return &EvalError{Token: tok, Msg: fmt.Sprintf(format, args...)}
}

func sexpr(label string, children []Node) string {
	parts := []string{label}
	for _, ch := range children {
		parts = append(parts, ch.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// --- Nodes -----------------------------------------------------------------

// Num is a numeric literal.
type Num struct {
	Value float64
	Tok   llparse.Token
}

func (n *Num) Eval(*runtime.Scope) (float64, error) { return n.Value, nil }
func (n *Num) Label() string                        { return n.Tok.Value }
func (n *Num) Children() []Node                     { return nil }
func (n *Num) Token() llparse.Token                 { return n.Tok }
func (n *Num) String() string                       { return n.Label() }

// Var is a reference to a variable.
type Var struct {
	Name string
	Tok  llparse.Token
}

// Eval looks up the variable's value, starting from scope sc.
func (v *Var) Eval(sc *runtime.Scope) (float64, error) {
	tag, _ := sc.ResolveTag(v.Name)
	if tag == nil {
		return 0, evalError(v.Tok, "undefined variable %s", v.Name)
	}
	if tag.Typ != runtime.NumberType {
		return 0, evalError(v.Tok, "%s is not a variable", v.Name)
	}
	return tag.Value.(float64), nil
}

func (v *Var) Label() string        { return v.Name }
func (v *Var) Children() []Node     { return nil }
func (v *Var) Token() llparse.Token { return v.Tok }
func (v *Var) String() string       { return v.Name }

// Neg is a unary minus.
type Neg struct {
	X   Node
	Tok llparse.Token
}

func (n *Neg) Eval(sc *runtime.Scope) (float64, error) {
	x, err := n.X.Eval(sc)
	return -x, err
}

func (n *Neg) Label() string        { return "neg" }
func (n *Neg) Children() []Node     { return []Node{n.X} }
func (n *Neg) Token() llparse.Token { return n.Tok }
func (n *Neg) String() string       { return sexpr("-", n.Children()) }

// BinOp is an arithmetic operation with two operands.
type BinOp struct {
	Op   string // one of + - * /
	L, R Node
	Tok  llparse.Token
}

func (b *BinOp) Eval(sc *runtime.Scope) (float64, error) {
	l, err := b.L.Eval(sc)
	if err != nil {
		return 0, err
	}
	r, err := b.R.Eval(sc)
	if err != nil {
		return 0, err
	}
	switch b.Op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, evalError(b.Tok, "division by zero")
		}
		return l / r, nil
	}
	return 0, evalError(b.Tok, "unknown operator %s", b.Op)
}

func (b *BinOp) Label() string        { return b.Op }
func (b *BinOp) Children() []Node     { return []Node{b.L, b.R} }
func (b *BinOp) Token() llparse.Token { return b.Tok }
func (b *BinOp) String() string       { return sexpr(b.Op, b.Children()) }

// Call is a call of a builtin function.
type Call struct {
	Name string
	Args []Node
	Tok  llparse.Token
}

// Eval evaluates the arguments from left to right and calls the function.
func (c *Call) Eval(sc *runtime.Scope) (float64, error) {
	tag, _ := sc.ResolveTag(c.Name)
	if tag == nil || tag.Typ != runtime.FunctionType {
		return 0, evalError(c.Tok, "undefined function %s", c.Name)
	}
	fn := tag.Value.(*Builtin)
	if len(c.Args) < fn.MinArgs || (fn.MaxArgs >= 0 && len(c.Args) > fn.MaxArgs) {
		return 0, evalError(c.Tok, "wrong number of arguments for %s: %d", c.Name, len(c.Args))
	}
	args := make([]float64, len(c.Args))
	for i, a := range c.Args {
		x, err := a.Eval(sc)
		if err != nil {
			return 0, err
		}
		args[i] = x
	}
	return fn.Fn(args), nil
}

func (c *Call) Label() string        { return c.Name + "()" }
func (c *Call) Children() []Node     { return c.Args }
func (c *Call) Token() llparse.Token { return c.Tok }
func (c *Call) String() string       { return sexpr(c.Name, c.Args) }

// Let assigns the value of an expression to a variable. Variables are
// created on first assignment.
type Let struct {
	Name string
	X    Node
	Tok  llparse.Token
}

// Eval assigns in scope sc. Builtin functions cannot be re-defined.
func (l *Let) Eval(sc *runtime.Scope) (float64, error) {
	x, err := l.X.Eval(sc)
	if err != nil {
		return 0, err
	}
	if tag, _ := sc.ResolveTag(l.Name); tag != nil && tag.Typ == runtime.FunctionType {
		return 0, evalError(l.Tok, "cannot assign to function %s", l.Name)
	}
	tag, _ := sc.Tags().ResolveOrDefineTag(l.Name)
	tag.Set(runtime.NumberType, x)
	tracer().Debugf("%s := %g", l.Name, x)
	return x, nil
}

func (l *Let) Label() string        { return "let " + l.Name }
func (l *Let) Children() []Node     { return []Node{l.X} }
func (l *Let) Token() llparse.Token { return l.Tok }
func (l *Let) String() string       { return sexpr("let "+l.Name, l.Children()) }

// --- Builtins --------------------------------------------------------------

// Builtin is a pre-defined function.
type Builtin struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 for any number
	Fn      func(args []float64) float64
}

var builtins = []*Builtin{
	{"min", 1, -1, func(args []float64) float64 {
		m := args[0]
		for _, x := range args[1:] {
			if x < m {
				m = x
			}
		}
		return m
	}},
	{"max", 1, -1, func(args []float64) float64 {
		m := args[0]
		for _, x := range args[1:] {
			if x > m {
				m = x
			}
		}
		return m
	}},
	{"abs", 1, 1, func(args []float64) float64 {
		if args[0] < 0 {
			return -args[0]
		}
		return args[0]
	}},
}

func predefineBuiltins(sc *runtime.Scope) {
	for _, fn := range builtins {
		tag, _ := sc.DefineTag(fn.Name)
		tag.Set(runtime.FunctionType, fn)
	}
}
