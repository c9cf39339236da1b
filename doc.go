/*
Package llparse is an LL(1) parsing toolbox.

llparse derives a predictive parsing table from a context-free grammar,
tokenizes input text with a longest-match lexer and drives a table-guided
top-down parse, applying semantic actions supplied by the client. There is
no code-generation step: grammar, lexer and actions are assembled at run time
and used directly. Package structure is as follows:

■ ll: Package ll holds the grammar builder and the grammar analysis (derives-empty
set, FIRST and FOLLOW sets, predict table).

■ ll/scanner: Package scanner implements the pattern-table lexer. Sub-package
lexmach provides an alternative backend on top of lexmachine.

■ ll/ll1: Package ll1 implements the predictive parser driver.

■ runtime: Package runtime provides some unsophisticated supporting data types for interpreter
runtimes.

■ calc: Package calc is a small expression language built with the toolbox.

The base package contains data types which are used throughout all the other packages:
symbols, tokens and the two error types of the toolbox.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package llparse
