/*
Package ll implements prerequisites for LL(1) parsing: grammars and their
static analysis.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Grammars may contain
epsilon-productions. The first rule is the start rule; it has to end with the
end-of-input terminal.

Example:

    b := ll.NewGrammarBuilder("G")
    b.LHS("S").N("E").EOF()                                // S  ->  E eof
    b.LHS("E").N("T").N("E'").End()                        // E  ->  T E'
    b.LHS("E'").T("+").N("T").N("E'").Action(plus).End()   // E' ->  + T E'
    b.LHS("E'").Epsilon()                                  // E' ->
    b.LHS("T").T("id").End()                               // T  ->  id
    g, err := b.Grammar()

Non-terminals are declared with N(…), terminals with T(…). A symbol used
with N(…) must have rules of its own, a symbol used with T(…) must not.
Clients which already hold a list of rules may call Build directly; the
partition into terminals and non-terminals is then inferred from the
left-hand sides of the rules.

Every rule may carry a semantic action. Actions receive the results of the
right-hand-side symbols, in order, and return the result for the rule's
left-hand side. For terminals, the result is the matched llparse.Token.

Static Grammar Analysis

Building a grammar subjects it to analysis: the set of non-terminals deriving
the empty string, FIRST and FOLLOW sets, and finally the predict table are
computed. If two rules of a non-terminal claim the same lookahead terminal,
the grammar is not LL(1) and building fails with an *llparse.AmbiguityError.

Although FIRST and FOLLOW sets are mainly intended for constructing the
predict table, methods for getting FIRST(X) and FOLLOW(A) are public.

    fmt.Printf("FIRST(E') = %v", g.First("E'"))    // { + ε }
    fmt.Printf("FOLLOW(E) = %v", g.Follow("E"))     // { eof }

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llparse.ll'.
func tracer() tracing.Trace {
	return tracing.Select("llparse.ll")
}
