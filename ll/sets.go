package ll

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/llparse"
)

// TerminalSet is a set of terminals, as used for FIRST and FOLLOW sets.
// Two markers are carried besides the terminals: epsilon (the empty string)
// and end-of-input (nothing follows). Neither of them is a terminal, and
// neither can be confused with a terminal of the grammar.
type TerminalSet struct {
	terms      *treeset.Set // terminal names, sorted
	epsilon    bool
	endOfInput bool
}

func newTerminalSet(terminals ...llparse.Symbol) *TerminalSet {
	s := &TerminalSet{terms: treeset.NewWithStringComparator()}
	for _, t := range terminals {
		s.add(t)
	}
	return s
}

// Contains is a predicate: is terminal t a member of S?
func (s *TerminalSet) Contains(t llparse.Symbol) bool {
	if s == nil {
		return false
	}
	return s.terms.Contains(string(t))
}

// HasEpsilon is true if S contains the epsilon marker.
func (s *TerminalSet) HasEpsilon() bool {
	return s != nil && s.epsilon
}

// HasEndOfInput is true if S contains the end-of-input marker.
func (s *TerminalSet) HasEndOfInput() bool {
	return s != nil && s.endOfInput
}

// Size returns the number of terminals in S, not counting markers.
func (s *TerminalSet) Size() int {
	if s == nil {
		return 0
	}
	return s.terms.Size()
}

// Terminals returns the terminals of S in lexical order.
func (s *TerminalSet) Terminals() []llparse.Symbol {
	if s == nil {
		return nil
	}
	r := make([]llparse.Symbol, 0, s.terms.Size())
	for _, v := range s.terms.Values() {
		r = append(r, llparse.Symbol(v.(string)))
	}
	return r
}

func (s *TerminalSet) String() string {
	var b strings.Builder
	b.WriteString("{")
	for _, t := range s.Terminals() {
		b.WriteString(" ")
		b.WriteString(string(t))
	}
	if s.HasEpsilon() {
		b.WriteString(" ε")
	}
	if s.HasEndOfInput() {
		b.WriteString(" $")
	}
	b.WriteString(" }")
	return b.String()
}

func (s *TerminalSet) add(t llparse.Symbol) bool {
	if s.terms.Contains(string(t)) {
		return false
	}
	s.terms.Add(string(t))
	return true
}

func (s *TerminalSet) addEpsilon() bool {
	changed := !s.epsilon
	s.epsilon = true
	return changed
}

func (s *TerminalSet) addEndOfInput() bool {
	changed := !s.endOfInput
	s.endOfInput = true
	return changed
}

// union adds the terminals and the end-of-input marker of other to s.
// The epsilon marker is carried over only if withEpsilon is set.
// Returns true if s has changed.
func (s *TerminalSet) union(other *TerminalSet, withEpsilon bool) bool {
	if other == nil {
		return false
	}
	changed := false
	for _, v := range other.terms.Values() {
		if !s.terms.Contains(v) {
			s.terms.Add(v)
			changed = true
		}
	}
	if other.endOfInput && !s.endOfInput {
		s.endOfInput = true
		changed = true
	}
	if withEpsilon && other.epsilon && !s.epsilon {
		s.epsilon = true
		changed = true
	}
	return changed
}

func (s *TerminalSet) copy() *TerminalSet {
	c := newTerminalSet()
	c.union(s, true)
	return c
}
