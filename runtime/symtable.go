package runtime

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/utils"
)

// Symbol table for variables. Symbol tables are attached to scopes.
// Scopes are organized in a tree.

// --- Tags -------------------------------------------------------

// Tag is the symbols type to be stored into symbol tables. It is not called
// 'Symbol' because grammars consist of symbols (within rules), too.
// Symbols are used in the scope of the grammar, tags are used during
// runtime (of the client program).
type Tag struct {
	name  string
	Typ   int8
	Value interface{}
}

// Pre-defined tag types, if you want to use them.
const (
	Undefined int8 = iota
	NumberType
	StringType
	FunctionType
)

// NewTag creates a new, untyped tag.
func NewTag(nm string) *Tag {
	return &Tag{name: nm}
}

// WithType sets the initial type of a tag. Use as
//
//    tag := NewTag("myTag").WithType(NumberType)
//
func (s *Tag) WithType(t int8) *Tag {
	s.Typ = t
	return s
}

// Set sets type and value of a tag. Returns the tag (for chaining).
func (s *Tag) Set(t int8, value interface{}) *Tag {
	s.Typ = t
	s.Value = value
	return s
}

// String is a debug Stringer for tags.
func (s *Tag) String() string {
	if s.Value == nil {
		return fmt.Sprintf("<tag '%s':%d>", s.name, s.Typ)
	}
	return fmt.Sprintf("<tag '%s':%d=%v>", s.name, s.Typ, s.Value)
}

// Name gets the tag's name.
func (s *Tag) Name() string {
	return s.name
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store tags (map-like semantics).
type SymbolTable struct {
	table map[string]*Tag
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{table: make(map[string]*Tag)}
}

// ResolveTag checks for a tag in the symbol table.
// Returns a tag or nil.
func (t *SymbolTable) ResolveTag(tagname string) *Tag {
	return t.table[tagname]
}

// ResolveOrDefineTag finds a tag in the table, inserts a new one if not found.
// Returns the tag and a flag, signalling wether the tag
// has already been present.
func (t *SymbolTable) ResolveOrDefineTag(tagname string) (*Tag, bool) {
	if len(tagname) == 0 {
		return nil, false
	}
	if tag := t.ResolveTag(tagname); tag != nil {
		return tag, true
	}
	tag, _ := t.DefineTag(tagname)
	return tag, false
}

// DefineTag creates a new tag to store into the symbol table.
// The tag's name may not be empty.
// Overwrites an existing tag with this name, if any.
// Returns the new tag and the previously stored tag (or nil).
func (t *SymbolTable) DefineTag(tagname string) (*Tag, *Tag) {
	if len(tagname) == 0 {
		return nil, nil
	}
	tag := NewTag(tagname)
	return tag, t.InsertTag(tag)
}

// InsertTag inserts a pre-created tag. Returns the tag previously stored
// under this name, if any.
func (t *SymbolTable) InsertTag(tag *Tag) *Tag {
	old := t.table[tag.name]
	t.table[tag.name] = tag
	return old
}

// Size counts the tags in a symbol table.
func (t *SymbolTable) Size() int {
	return len(t.table)
}

// Names returns the names of all tags in lexical order.
func (t *SymbolTable) Names() []string {
	list := arraylist.New()
	for name := range t.table {
		list.Add(name)
	}
	list.Sort(utils.StringComparator)
	names := make([]string, 0, list.Size())
	it := list.Iterator()
	for it.Next() {
		names = append(names, it.Value().(string))
	}
	return names
}

// Each iterates over each tag in the table in lexical order of tag names,
// executing a mapper function.
func (t *SymbolTable) Each(mapper func(string, *Tag)) {
	for _, name := range t.Names() {
		mapper(name, t.table[name])
	}
}

// === Scopes ================================================================

// Scope is a named scope, which may contain tag definitions. Scopes link back to a
// parent scope, forming a tree.
type Scope struct {
	Name   string
	Parent *Scope
	symtab *SymbolTable
}

// NewScope creates a new scope.
func NewScope(nm string, parent *Scope) *Scope {
	return &Scope{
		Name:   nm,
		Parent: parent,
		symtab: NewSymbolTable(),
	}
}

// Prettyfied Stringer.
func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// Tags returns the symbol table of a scope.
func (s *Scope) Tags() *SymbolTable {
	return s.symtab
}

// DefineTag defines a tag in the scope. Returns the new tag and the previously
// stored tag under this key, if any.
func (s *Scope) DefineTag(tagname string) (*Tag, *Tag) {
	return s.symtab.DefineTag(tagname)
}

// ResolveTag finds a tag. Returns the tag (or nil) and a scope. The scope is
// the scope (of a scope-tree-path) the tag was found in.
func (s *Scope) ResolveTag(tagname string) (*Tag, *Scope) {
	for sc := s; sc != nil; sc = sc.Parent {
		if tag := sc.symtab.ResolveTag(tagname); tag != nil {
			return tag, sc
		}
	}
	return nil, nil
}

// ---------------------------------------------------------------------------

// ScopeTree can be treated as a stack during evaluation, thus
// building a tree from scopes which are pushed and popped to/from the stack.
type ScopeTree struct {
	base *Scope
	tos  *Scope
}

// Current gets the current scope of a stack (TOS).
func (scst *ScopeTree) Current() *Scope {
	if scst.tos == nil {
		panic("attempt to access scope from empty stack")
	}
	return scst.tos
}

// Base gets the outermost scope.
func (scst *ScopeTree) Base() *Scope {
	if scst.base == nil {
		panic("attempt to access base scope from empty stack")
	}
	return scst.base
}

// PushNewScope pushes a scope onto the stack of scopes. A scope is constructed,
// including a symbol table for variable declarations.
func (scst *ScopeTree) PushNewScope(nm string) *Scope {
	newsc := NewScope(nm, scst.tos)
	if scst.tos == nil { // the new scope is the outermost scope
		scst.base = newsc
	}
	scst.tos = newsc
	tracer().P("scope", newsc.Name).Debugf("pushing new scope")
	return newsc
}

// PopScope pops the top-most (recent) scope.
func (scst *ScopeTree) PopScope() *Scope {
	if scst.tos == nil {
		panic("attempt to pop scope from empty stack")
	}
	sc := scst.tos
	tracer().Debugf("popping scope [%s]", sc.Name)
	scst.tos = sc.Parent
	if scst.tos == nil {
		scst.base = nil
	}
	return sc
}
