package ll

import (
	"github.com/npillmayer/llparse"
)

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 4.5 (LL(1) grammars): derives-empty, FIRST and FOLLOW are computed
// by iterating to a fixed point. All sets grow monotonically and are bounded
// by the vocabulary, so the iterations terminate.

// computeDerivesEmpty returns the set of non-terminals A with A ⇒* ε.
func computeDerivesEmpty(rules []*Rule) map[llparse.Symbol]bool {
	derivesEmpty := make(map[llparse.Symbol]bool)
	changed := true
	for changed {
		changed = false
		for _, r := range rules {
			if derivesEmpty[r.LHS] {
				continue
			}
			all := true
			for _, sym := range r.rhs {
				if !derivesEmpty[sym] {
					all = false
					break
				}
			}
			if all {
				derivesEmpty[r.LHS] = true
				changed = true
			}
		}
	}
	return derivesEmpty
}

// firstOfSequence computes FIRST of a sequence of symbols, given the FIRST
// sets of single symbols. FIRST(ε) = { ε }.
func firstOfSequence(first map[llparse.Symbol]*TerminalSet, seq []llparse.Symbol) *TerminalSet {
	result := newTerminalSet()
	if len(seq) == 0 {
		result.addEpsilon()
		return result
	}
	k := len(seq)
	result.union(first[seq[0]], false)
	i := 0
	for i < k-1 && first[seq[i]].HasEpsilon() {
		i++
		result.union(first[seq[i]], false)
	}
	if i == k-1 && first[seq[i]].HasEpsilon() {
		result.addEpsilon()
	}
	return result
}

func computeFirst(g *Grammar) map[llparse.Symbol]*TerminalSet {
	first := make(map[llparse.Symbol]*TerminalSet, len(g.terminals)+len(g.nonterminals))
	for _, t := range g.terminals {
		first[t] = newTerminalSet(t)
	}
	for _, A := range g.nonterminals {
		first[A] = newTerminalSet()
		if g.derivesEmpty[A] {
			first[A].addEpsilon()
		}
	}
	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			rhsFirst := firstOfSequence(first, r.rhs)
			if first[r.LHS].union(rhsFirst, true) {
				changed = true
			}
		}
	}
	return first
}

// computeFollow computes FOLLOW for all non-terminals. FOLLOW of the start
// symbol is the end-of-input marker only, as the start symbol never appears
// on a right-hand side.
// The marker propagates like a terminal to non-terminals at the end of a
// right-hand side.
func computeFollow(g *Grammar) map[llparse.Symbol]*TerminalSet {
	follow := make(map[llparse.Symbol]*TerminalSet, len(g.nonterminals))
	for _, A := range g.nonterminals {
		follow[A] = newTerminalSet()
	}
	follow[g.start].addEndOfInput()
	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			for i, B := range r.rhs {
				if !g.IsNonTerminal(B) {
					continue
				}
				betaFirst := firstOfSequence(g.first, r.rhs[i+1:])
				if follow[B].union(betaFirst, false) {
					changed = true
				}
				if betaFirst.HasEpsilon() {
					if follow[B].union(follow[r.LHS], false) {
						changed = true
					}
				}
			}
		}
	}
	return follow
}

// DerivesEmpty is a predicate: does A derive the empty string?
func (g *Grammar) DerivesEmpty(A llparse.Symbol) bool {
	return g.derivesEmpty[A]
}

// DerivesEmptySet returns all non-terminals deriving the empty string, in order
// of definition.
func (g *Grammar) DerivesEmptySet() []llparse.Symbol {
	var r []llparse.Symbol
	for _, A := range g.nonterminals {
		if g.derivesEmpty[A] {
			r = append(r, A)
		}
	}
	return r
}

// First returns FIRST(X) for a terminal or non-terminal X. Returns nil for
// symbols unknown to g. The returned set must not be modified.
func (g *Grammar) First(X llparse.Symbol) *TerminalSet {
	return g.first[X]
}

// FirstOf returns FIRST of a sequence of symbols.
func (g *Grammar) FirstOf(seq ...llparse.Symbol) *TerminalSet {
	return firstOfSequence(g.first, seq)
}

// Follow returns FOLLOW(A) for a non-terminal A. Returns nil for symbols which
// are not non-terminals of g. The returned set must not be modified.
func (g *Grammar) Follow(A llparse.Symbol) *TerminalSet {
	return g.follow[A]
}
