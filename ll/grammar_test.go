package ll

import (
	"errors"
	"testing"

	"github.com/npillmayer/llparse"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// We use a small expression grammar for testing:
//
//     S  -> E eof
//     E  -> T E'
//     E' -> + T E'
//     E' ->
//     T  -> id
//
func makeExprGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Expr")
	b.LHS("S").N("E").EOF()
	b.LHS("E").N("T").N("E'").End()
	b.LHS("E'").T("+").N("T").N("E'").End()
	b.LHS("E'").Epsilon()
	b.LHS("T").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot build expression grammar: %v", err)
	}
	return g
}

func symbols(s ...string) []llparse.Symbol {
	r := make([]llparse.Symbol, len(s))
	for i, x := range s {
		r[i] = llparse.Symbol(x)
	}
	return r
}

func sameSymbols(a, b []llparse.Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestVocabulary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.ll")
	defer teardown()
	//
	g := makeExprGrammar(t)
	g.Dump()
	if !sameSymbols(g.NonTerminals(), symbols("S", "E", "E'", "T")) {
		t.Errorf("unexpected non-terminals: %v", g.NonTerminals())
	}
	if !sameSymbols(g.Terminals(), symbols("eof", "+", "id")) {
		t.Errorf("unexpected terminals: %v", g.Terminals())
	}
	for _, A := range g.NonTerminals() {
		if g.IsTerminal(A) {
			t.Errorf("non-terminal %s reported as terminal", A)
		}
	}
	if g.Start() != "S" || g.EOF() != "eof" {
		t.Errorf("expected start S and eof, have %s and %s", g.Start(), g.EOF())
	}
	if g.StartRule().Serial != 0 {
		t.Errorf("expected start rule to be rule #0")
	}
}

func TestDerivesEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Empty")
	b.LHS("S").N("A").T("c").EOF()
	b.LHS("A").N("B").N("C").End()
	b.LHS("B").T("b").End()
	b.LHS("B").Epsilon()
	b.LHS("C").N("D").End()
	b.LHS("D").T("d").End()
	b.LHS("D").Epsilon()
	b.LHS("E").N("A").T("e").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if !sameSymbols(g.DerivesEmptySet(), symbols("A", "B", "C", "D")) {
		t.Errorf("expected A, B, C and D to derive ε, have %v", g.DerivesEmptySet())
	}
	if g.DerivesEmpty("S") || g.DerivesEmpty("E") {
		t.Errorf("S and E must not derive ε")
	}
	again := computeDerivesEmpty(g.rules)
	if len(again) != len(g.derivesEmpty) {
		t.Errorf("re-computing derives-empty should be idempotent")
	}
	for A := range again {
		if !g.derivesEmpty[A] {
			t.Errorf("re-computation added %s", A)
		}
	}
}

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.ll")
	defer teardown()
	//
	g := makeExprGrammar(t)
	for _, c := range []struct {
		sym     llparse.Symbol
		terms   []llparse.Symbol
		epsilon bool
	}{
		{"S", symbols("id"), false},
		{"E", symbols("id"), false},
		{"E'", symbols("+"), true},
		{"T", symbols("id"), false},
		{"+", symbols("+"), false},
	} {
		f := g.First(c.sym)
		if !sameSymbols(f.Terminals(), c.terms) || f.HasEpsilon() != c.epsilon {
			t.Errorf("unexpected FIRST(%s) = %v", c.sym, f)
		}
	}
	if f := g.FirstOf("E'", "E'"); !f.HasEpsilon() || f.Size() != 1 {
		t.Errorf("expected FIRST(E' E') = { + ε }, is %v", f)
	}
	if f := g.FirstOf(); !f.HasEpsilon() || f.Size() != 0 {
		t.Errorf("expected FIRST(ε) = { ε }, is %v", f)
	}
}

func TestFollowSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.ll")
	defer teardown()
	//
	g := makeExprGrammar(t)
	if f := g.Follow("S"); !f.HasEndOfInput() || f.Size() != 0 {
		t.Errorf("expected FOLLOW(S) to be end-of-input only, is %v", f)
	}
	for _, c := range []struct {
		sym   llparse.Symbol
		terms []llparse.Symbol
	}{
		{"E", symbols("eof")},
		{"E'", symbols("eof")},
		{"T", symbols("+", "eof")},
	} {
		f := g.Follow(c.sym)
		if !sameSymbols(f.Terminals(), c.terms) {
			t.Errorf("unexpected FOLLOW(%s) = %v", c.sym, f)
		}
		if f.HasEpsilon() {
			t.Errorf("FOLLOW(%s) must never contain ε", c.sym)
		}
	}
	if g.Follow("id") != nil {
		t.Errorf("expected no FOLLOW set for a terminal")
	}
}

func TestEndOfInputPropagates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.ll")
	defer teardown()
	//
	// S -> A eof,  A -> x B,  B -> y | ε
	b := NewGrammarBuilder("Propagate")
	b.LHS("S").N("A").EOF()
	b.LHS("A").T("x").N("B").End()
	b.LHS("B").T("y").End()
	b.LHS("B").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if f := g.Follow("B"); !f.Contains("eof") || f.HasEndOfInput() {
		t.Errorf("expected FOLLOW(B) = { eof }, is %v", f)
	}
	if r, ok := g.Predict("B", "eof"); !ok || !r.IsEpsilon() {
		t.Errorf("expected B to predict ε on eof")
	}
}

func TestPredictTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.ll")
	defer teardown()
	//
	g := makeExprGrammar(t)
	for _, c := range []struct {
		A, t   llparse.Symbol
		serial int
	}{
		{"S", "id", 0},
		{"E", "id", 1},
		{"E'", "+", 2},
		{"E'", "eof", 3},
		{"T", "id", 4},
	} {
		r, ok := g.Predict(c.A, c.t)
		if !ok || r.Serial != c.serial {
			t.Errorf("expected predict(%s,%s) to be rule %d, is %v", c.A, c.t, c.serial, r)
		}
	}
	if _, ok := g.Predict("T", "eof"); ok {
		t.Errorf("T must not predict anything on eof")
	}
	if _, ok := g.Predict("E", "unknown"); ok {
		t.Errorf("unknown terminals must not predict anything")
	}
	if exp := g.Expected("E'"); !sameSymbols(exp, symbols("eof", "+")) {
		t.Errorf("unexpected expected-set for E': %v", exp)
	}
	if g.TableSize() != 5 {
		t.Errorf("expected 5 table entries, have %d", g.TableSize())
	}
}

func TestAmbiguousRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Ambiguous")
	b.LHS("S").N("A").EOF()
	b.LHS("A").T("x").Label("A1").End()
	b.LHS("A").T("x").T("y").Label("A2").End()
	_, err := b.Grammar()
	var amb *llparse.AmbiguityError
	if !errors.As(err, &amb) {
		t.Fatalf("expected ambiguity error, got %v", err)
	}
	if amb.Reason != llparse.RuleConflict || amb.Symbol != "A" || amb.Terminal != "x" {
		t.Errorf("unexpected ambiguity error: %v", amb)
	}
	if len(amb.Rules) != 2 || amb.Rules[0] != "A1" || amb.Rules[1] != "A2" {
		t.Errorf("expected error to name rules A1 and A2, names %v", amb.Rules)
	}
	t.Logf("error message: %v", err)
}

func TestAmbiguousEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.ll")
	defer teardown()
	//
	// A -> x | ε with x ∈ FOLLOW(A) is a FIRST/FOLLOW conflict
	b := NewGrammarBuilder("FirstFollow")
	b.LHS("S").N("A").T("x").EOF()
	b.LHS("A").T("x").End()
	b.LHS("A").Epsilon()
	_, err := b.Grammar()
	var amb *llparse.AmbiguityError
	if !errors.As(err, &amb) || amb.Reason != llparse.RuleConflict || amb.Terminal != "x" {
		t.Errorf("expected conflict on x, got %v", err)
	}
}

func TestStartRuleChecks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.ll")
	defer teardown()
	//
	for _, c := range []struct {
		name   string
		rules  []*Rule
		reason llparse.Reason
	}{
		{"multiple", []*Rule{
			NewRule("S", symbols("a", "eof"), nil, "S1"),
			NewRule("S", symbols("b", "eof"), nil, "S2"),
		}, llparse.MultipleStartRules},
		{"empty", []*Rule{
			NewRule("S", nil, nil, ""),
		}, llparse.EmptyStartRule},
		{"unterminated", []*Rule{
			NewRule("S", symbols("a"), nil, ""),
		}, llparse.UnterminatedStartRule},
		{"undefined start", []*Rule{
			NewRule("X", symbols("a", "eof"), nil, ""),
		}, llparse.UndefinedSymbol},
		{"eof is non-terminal", []*Rule{
			NewRule("S", symbols("a", "eof"), nil, ""),
			NewRule("eof", symbols("b"), nil, ""),
		}, llparse.VocabularyConflict},
		{"no rules", nil, llparse.UndefinedSymbol},
		{"start on right-hand side", []*Rule{
			NewRule("S", symbols("A", "eof"), nil, ""),
			NewRule("A", symbols("x", "S"), nil, "A_nested"),
			NewRule("A", nil, nil, ""),
		}, llparse.VocabularyConflict},
	} {
		_, err := Build(c.name, c.rules, "S", "eof")
		var amb *llparse.AmbiguityError
		if !errors.As(err, &amb) {
			t.Errorf("%s: expected ambiguity error, got %v", c.name, err)
			continue
		}
		if amb.Reason != c.reason {
			t.Errorf("%s: expected reason %v, got %v", c.name, c.reason, amb.Reason)
		}
	}
}

func TestStartSymbolOnRightHandSide(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Nested")
	b.LHS("S").N("A").EOF()
	b.LHS("A").T("x").N("S").Label("A_nested").End()
	b.LHS("A").Epsilon()
	_, err := b.Grammar()
	var amb *llparse.AmbiguityError
	if !errors.As(err, &amb) {
		t.Fatalf("expected grammar to be rejected, got %v", err)
	}
	if amb.Reason != llparse.VocabularyConflict || amb.Symbol != "S" ||
		len(amb.Rules) != 1 || amb.Rules[0] != "A_nested" {
		t.Errorf("unexpected error for start symbol on right-hand side: %v", err)
	}
}

func TestDeclarationChecks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Undefined")
	b.LHS("S").N("A").EOF()
	_, err := b.Grammar()
	var amb *llparse.AmbiguityError
	if !errors.As(err, &amb) || amb.Reason != llparse.UndefinedSymbol || amb.Symbol != "A" {
		t.Errorf("expected undefined non-terminal A, got %v", err)
	}
	b = NewGrammarBuilder("Clash")
	b.LHS("S").T("A").EOF()
	b.LHS("A").T("a").End()
	_, err = b.Grammar()
	if !errors.As(err, &amb) || amb.Reason != llparse.VocabularyConflict || amb.Symbol != "A" {
		t.Errorf("expected vocabulary conflict for A, got %v", err)
	}
}

func TestRulesAreCopied(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.ll")
	defer teardown()
	//
	rhs := symbols("a", "eof")
	r := NewRule("S", rhs, nil, "")
	rhs[0] = "changed"
	g, err := Build("Copy", []*Rule{r}, "S", "eof")
	if err != nil {
		t.Fatal(err)
	}
	if g.Rule(0).At(0) != "a" || g.Rule(0) == r {
		t.Errorf("grammar rules must be private copies")
	}
	if g.Rule(0).Label != "S -> a eof" {
		t.Errorf("expected default label to be the rule string, is %q", g.Rule(0).Label)
	}
	if g.Rule(1) != nil {
		t.Errorf("expected nil for rule out of range")
	}
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.ll")
	defer teardown()
	//
	g1 := makeExprGrammar(t)
	g2 := makeExprGrammar(t)
	if g1.Fingerprint() == "" || g1.Fingerprint() != g2.Fingerprint() {
		t.Errorf("expected identical grammars to have identical fingerprints")
	}
	b := NewGrammarBuilder("Expr")
	b.LHS("S").N("E").EOF()
	b.LHS("E").T("id").End()
	g3, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g3.Fingerprint() == g1.Fingerprint() {
		t.Errorf("expected different grammars to have different fingerprints")
	}
}

func TestSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("List")
	b.LHS("S").T("(").N("items").T(")").EOF()
	b.Sequence("items", "id", ",", nil)
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	g.Dump()
	if !sameSymbols(g.NonTerminals(), symbols("S", "items", "items_body", "items_tail")) {
		t.Errorf("unexpected non-terminals for sequence: %v", g.NonTerminals())
	}
	if r, ok := g.Predict("items_tail", ")"); !ok || !r.IsEpsilon() {
		t.Errorf("expected list tail to end on )")
	}
	if r, ok := g.Predict("items_tail", ","); !ok || r.At(0) != "," {
		t.Errorf("expected list tail to continue on ,")
	}
	// simulate the actions for the list "a, b, c", innermost first
	tailRule, _ := g.Predict("items_tail", ")")
	bodyRule, _ := g.Predict("items_body", "id")
	sepRule, _ := g.Predict("items_tail", ",")
	listRule, _ := g.Predict("items", "id")
	v, _ := tailRule.Apply(nil)
	v, _ = bodyRule.Apply([]interface{}{"c", v})
	v, _ = sepRule.Apply([]interface{}{",", v})
	v, _ = bodyRule.Apply([]interface{}{"b", v})
	v, _ = sepRule.Apply([]interface{}{",", v})
	v, _ = bodyRule.Apply([]interface{}{"a", v})
	v, _ = listRule.Apply([]interface{}{v})
	list := v.([]interface{})
	if len(list) != 3 || list[0] != "a" || list[1] != "b" || list[2] != "c" {
		t.Errorf("expected list [a b c], have %v", list)
	}
}
