/*
Command crepl is an interactive sandbox for the calc language ("C.REPL").

Users enter calc statements, which are parsed and evaluated; the result is
printed. Lines starting with a colon are commands:

	:tokens <stmt>   show the token stream of a statement
	:tree <stmt>     show the syntax tree of a statement
	:vars            list all variables
	:rules           list the rules of the calc grammar
	:quit            leave the REPL (or use <ctrl>D)

Flags:

	-trace <level>   trace level [Debug|Info|Error]
	-dfa             use the lexmachine based lexer
	-init <file>     evaluate the statements of a file before going interactive

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llparse.calc'
func tracer() tracing.Trace {
	return tracing.Select("llparse.calc")
}
