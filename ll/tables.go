package ll

import (
	"github.com/npillmayer/llparse"
	"github.com/npillmayer/llparse/ll/sparse"
)

// === Predict Table =========================================================

// The predict table maps (non-terminal, lookahead terminal) to the unique rule
// to expand. Rows are non-terminals, columns are terminals, both in order of
// appearance within the grammar; entries are rule serials.
//
// For a rule A → α the predict set is
//
//     FIRST(α)                       if ε ∉ FIRST(α)
//     FIRST(α) \ {ε} ∪ FOLLOW(A)     otherwise
//
// The end-of-input marker of FOLLOW sets never makes it into the table: it is
// not a terminal. Input ends with the end-of-input terminal, which is consumed
// by the start rule.

func (g *Grammar) buildPredictTable() error {
	g.predict = sparse.NewIntMatrix(len(g.nonterminals), len(g.terminals), sparse.DefaultNullValue)
	for _, r := range g.rules {
		A := g.ntIndex[r.LHS]
		for _, t := range g.PredictSet(r).Terminals() {
			prev := g.predict.Set(A, g.tIndex[t], int32(r.Serial))
			if prev != g.predict.NullValue() && int(prev) != r.Serial {
				other := g.rules[prev]
				return &llparse.AmbiguityError{
					Reason:   llparse.RuleConflict,
					Symbol:   r.LHS,
					Terminal: t,
					Rules:    []string{other.Label, r.Label},
				}
			}
			tracer().Debugf("predict(%s, %s) = %d: %v", r.LHS, t, r.Serial, r)
		}
	}
	tracer().Infof("predict table for %q has %d entries", g.Name, g.predict.ValueCount())
	return nil
}

// PredictSet returns the set of lookahead terminals selecting rule r.
func (g *Grammar) PredictSet(r *Rule) *TerminalSet {
	f := firstOfSequence(g.first, r.rhs)
	if !f.HasEpsilon() {
		return f
	}
	p := newTerminalSet()
	p.union(f, false)
	p.union(g.follow[r.LHS], false)
	return p
}

// Predict looks up the rule to expand for non-terminal A with lookahead t.
// Returns false if there is no such rule, i.e. the input has a syntax error.
func (g *Grammar) Predict(A llparse.Symbol, t llparse.Symbol) (*Rule, bool) {
	i, ok := g.ntIndex[A]
	if !ok {
		return nil, false
	}
	j, ok := g.tIndex[t]
	if !ok {
		return nil, false
	}
	v := g.predict.Value(i, j)
	if v == g.predict.NullValue() {
		return nil, false
	}
	return g.rules[v], true
}

// Expected returns all terminals for which the predict table has a rule for A.
func (g *Grammar) Expected(A llparse.Symbol) []llparse.Symbol {
	i, ok := g.ntIndex[A]
	if !ok {
		return nil
	}
	var r []llparse.Symbol
	g.predict.EachInRow(i, func(j int, _ int32) {
		r = append(r, g.terminals[j])
	})
	return r
}

// TableSize returns the number of non-empty cells of the predict table.
func (g *Grammar) TableSize() int {
	return g.predict.ValueCount()
}
