/*
Package runtime implements a runtime environment for interpreters built
with the toolkit, consisting of scopes and symbols (variable declarations
and references).

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

Symbol Table and Scope Tree

This module implements data structures for scope trees and symbol tables
attached to them. Scopes are pushed and popped like a stack, while each
scope links back to its parent. Resolving a tag searches the current scope
first, then its ancestors.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-22, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software or the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package runtime

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llparse.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("llparse.runtime")
}

// Runtime is a type implementing a runtime environment for an interpreter.
type Runtime struct {
	ScopeTree *ScopeTree  // collect scopes
	UData     interface{} // extension point
}

// NewRuntimeEnvironment constructs a new runtime environment with a scope
// for pre-defined tags (builtins) and a scope for global tags on top of it.
// predefine, if non-nil, is called to fill the builtins scope.
func NewRuntimeEnvironment(predefine func(*Scope)) *Runtime {
	rt := &Runtime{ScopeTree: new(ScopeTree)}
	builtins := rt.ScopeTree.PushNewScope("builtins")
	if predefine != nil {
		predefine(builtins)
	}
	rt.ScopeTree.PushNewScope("globals")
	return rt
}

// Builtins returns the outermost scope, holding pre-defined tags.
func (rt *Runtime) Builtins() *Scope {
	return rt.ScopeTree.Base()
}

// Globals returns the scope for global tags.
func (rt *Runtime) Globals() *Scope {
	sc := rt.ScopeTree.Current()
	for sc.Parent != nil && sc.Parent.Parent != nil {
		sc = sc.Parent
	}
	return sc
}
