/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the parsers of package ll1.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

The adapter is set up from the same pattern table as the scanner.PatternLexer.
Literal patterns are escaped, regular expressions are handed to lexmachine
as-is; they have to be written in the subset of regular expression syntax
which lexmachine understands (the stock ignorables of package scanner are).

	pt := scanner.NewPatternTable()
	pt.Add("number", scanner.MustRegexp(`[0-9]+`))
	pt.AddLiterals("+", "*", "(", ")")
	pt.IgnoreStock(scanner.WhiteSpace)

	LM, err := lexmach.NewLMAdapter(pt, "eof")
	if err != nil {
		// compiling the DFA failed
	}
	parser, err := ll1.NewParser(g, LM)

The DFA prefers the longest match as well. Keyword-like patterns are added
to the DFA first and thus win over other patterns matching the same text.
Ties between other patterns are resolved by order of registration and are
not reported as errors; use scanner.PatternLexer to detect them.
Input characters no pattern matches are delivered as tokens of flavor
scanner.Unrecognized.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
