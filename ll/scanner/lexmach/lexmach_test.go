package lexmach

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/llparse"
	"github.com/npillmayer/llparse/ll/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func patterns() *scanner.PatternTable {
	pt := scanner.NewPatternTable()
	pt.Add("number", scanner.MustRegexp(`[0-9]+`))
	pt.Add("id", scanner.MustRegexp(`[A-Za-z_][A-Za-z0-9_]*`))
	pt.Add("let", scanner.Literal("let"))
	pt.AddLiterals("+", "*", "(", ")", "=", "==", ",")
	pt.IgnoreStock(scanner.WhiteSpace, scanner.PoundComment, scanner.CComment)
	return pt
}

var inputStrings = []string{
	"1",
	"1+12",
	"let letter = 7 # comment",
	"x == (y*2) /* c */, z",
	"a\n  b\n",
}

var tokenCounts = []int{1, 3, 4, 9, 2}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.scanner")
	defer teardown()
	//
	LM, err := NewLMAdapter(patterns(), "eof")
	if err != nil {
		t.Fatal(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc := LM.Tokenize(input, "test")
		token, err := sc.NextToken()
		count := 0
		for err == nil && token.Flavor != "eof" {
			t.Logf(" %6s | %15s | @%5d", token.Flavor, token.Value, token.Offset)
			token, err = sc.NextToken()
			count++
		}
		if err != nil {
			t.Errorf("input #%d: unexpected error %v", i, err)
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestLMAgreesWithPatternLexer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.scanner")
	defer teardown()
	//
	LM, err := NewLMAdapter(patterns(), "eof")
	if err != nil {
		t.Fatal(err)
	}
	PL, err := scanner.NewLexer(patterns(), "eof")
	if err != nil {
		t.Fatal(err)
	}
	for i, input := range inputStrings {
		want, err1 := scanner.Tokens(PL, input, "test")
		got, err2 := scanner.Tokens(LM, input, "test")
		if err1 != nil || err2 != nil {
			t.Fatalf("input #%d: unexpected errors %v, %v", i, err1, err2)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("input #%d: tokens differ (-pattern lexer +lexmachine):\n%s", i, diff)
		}
	}
}

func TestLMUnrecognized(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.scanner")
	defer teardown()
	//
	LM, err := NewLMAdapter(patterns(), "eof")
	if err != nil {
		t.Fatal(err)
	}
	var errcount int
	sc := LM.Tokenize("1 $ 2", "test").(*LMScanner)
	sc.SetErrorHandler(func(error) { errcount++ })
	var flavors []llparse.Symbol
	for i := 0; i < 5; i++ { // eof repeats
		tok, err := sc.NextToken()
		if err != nil {
			t.Fatal(err)
		}
		flavors = append(flavors, tok.Flavor)
	}
	want := []llparse.Symbol{"number", scanner.Unrecognized, "number", "eof", "eof"}
	if diff := cmp.Diff(want, flavors); diff != "" {
		t.Errorf("token flavors mismatch (-want +got):\n%s", diff)
	}
	if errcount != 1 {
		t.Errorf("expected error handler to be called once, was called %d times", errcount)
	}
}

func TestLMRejectsEOFPattern(t *testing.T) {
	pt := scanner.NewPatternTable().AddLiterals("eof")
	if _, err := NewLMAdapter(pt, "eof"); err == nil {
		t.Errorf("expected adapter creation to fail for a pattern for eof")
	}
}

func TestLMDefaultErrorHandler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llparse.scanner")
	defer teardown()
	//
	LM, err := NewLMAdapter(patterns(), "eof")
	if err != nil {
		t.Fatal(err)
	}
	sc := LM.Tokenize("7 %d 3", "test").(*LMScanner)
	sc.SetErrorHandler(nil)
	var flavors []llparse.Symbol
	var values []string
	for i := 0; i < 5; i++ {
		tok, err := sc.NextToken()
		if err != nil {
			t.Fatal(err)
		}
		flavors = append(flavors, tok.Flavor)
		values = append(values, tok.Value)
	}
	want := []llparse.Symbol{"number", scanner.Unrecognized, "id", "number", "eof"}
	if diff := cmp.Diff(want, flavors); diff != "" {
		t.Errorf("token flavors mismatch (-want +got):\n%s", diff)
	}
	if values[1] != "%" {
		t.Errorf("expected unrecognized token to be %q, is %q", "%", values[1])
	}
}
