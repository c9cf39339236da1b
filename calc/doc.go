/*
Package calc implements a small calculator language on top of packages
ll, ll/scanner and ll/ll1.

Statements are either expressions or assignments to variables:

	let r = 2.5
	let area = 3.1416 * r * r
	max(area, 10) / -2   # comment

Supported are numbers, variables, the binary operators + - * / with the
usual precedence and left associativity, unary minus, parentheses and calls
of the builtin functions min, max and abs. Variables are held in a
runtime.ScopeTree, with builtins living in a scope enclosing the globals.

The grammar (LL(1), see Grammar()):

	Stmt       ➞ Cmd eof
	Cmd        ➞ let id = Expr  |  Expr  |  ε
	Expr       ➞ Term ExprTail
	ExprTail   ➞ + Term ExprTail  |  - Term ExprTail  |  ε
	Term       ➞ Factor TermTail
	TermTail   ➞ * Factor TermTail  |  / Factor TermTail  |  ε
	Factor     ➞ number  |  ( Expr )  |  - Factor  |  id Call
	Call       ➞ ( Args )  |  ε
	Args       ➞ Exprs  |  ε
	Exprs      ➞ Expr { , Expr }

Semantic actions build an abstract syntax tree of Nodes, which the
Interpreter evaluates.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package calc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llparse.calc'.
func tracer() tracing.Trace {
	return tracing.Select("llparse.calc")
}
