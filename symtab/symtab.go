/*
Package symtab implements the interpreter's interned symbol table
(spec §3.3: "a mapping from interned name ... to symbol object") and
the surface/renamed symbol pairs the bootstrap sequencer's Phase D
produces for hygienic expansion (spec §4.3).

Unlike the teacher's runtime.SymbolTable, this table is not attached to
a scope tree: spec §3.3 describes a single, process-wide, flat
interning table per interpreter instance, with no lexical nesting.

Grounded on runtime/symtable.go's Tag/SymbolTable, flattened, and on
_examples/original_source/extlib/benz/state.c's pic_intern family.
*/
package symtab

import (
	"fmt"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer, following the teacher's
// per-package T() helper convention.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// Symbol is an interned name: every occurrence of the same name in the
// same Table resolves to a pointer-identical Symbol (spec §3.3,
// "Interning"). Renamed (teacher: Tag).
//
// Grounded on runtime/symtable.go's Tag.
type Symbol struct {
	Name string
	id   int32
}

// ID returns the symbol's serial id, assigned at intern (or gensym)
// time. Ids are unique within one Table; every Table numbers from 1.
func (s *Symbol) ID() int32 {
	return s.id
}

// String is a debug Stringer for symbols.
func (s *Symbol) String() string {
	return fmt.Sprintf("<symbol '%s'[%d]>", s.Name, s.id)
}

// Table is a flat interning table: name -> Symbol (renamed from the
// teacher's SymbolTable; Scope/ScopeTree are dropped, see DESIGN.md).
//
// Grounded on runtime/symtable.go's SymbolTable.
type Table struct {
	entries  map[string]*Symbol
	nextID   int32
	ownedBuf map[*Symbol][]byte // spec §3.3 S3: heap-owned name bytes, freed once at teardown
}

// New creates an empty symbol table.
func New() *Table {
	return &Table{
		entries:  make(map[string]*Symbol),
		nextID:   1, // must not start at 0, matching the teacher's serialID convention
		ownedBuf: make(map[*Symbol][]byte),
	}
}

// Resolve looks up name in the table without inserting it. Returns nil
// if absent.
//
// Grounded on runtime/symtable.go's ResolveTag.
func (t *Table) Resolve(name string) *Symbol {
	return t.entries[name]
}

// Intern returns the Symbol for name, creating and inserting a fresh
// one if name has not been seen before. The second return value
// reports whether the symbol already existed.
//
// Grounded on runtime/symtable.go's ResolveOrDefineTag.
func (t *Table) Intern(name string) (*Symbol, bool) {
	if sym := t.Resolve(name); sym != nil {
		return sym, true
	}
	sym := t.define(name)
	return sym, false
}

func (t *Table) define(name string) *Symbol {
	sym := &Symbol{Name: name, id: t.nextID}
	t.nextID++
	t.entries[name] = sym
	buf := make([]byte, len(name))
	copy(buf, name)
	t.ownedBuf[sym] = buf
	T().Debugf("symtab: interned %s", sym)
	return sym
}

// Size reports the number of interned symbols.
//
// Grounded on runtime/symtable.go's Size.
func (t *Table) Size() int {
	return len(t.entries)
}

// Each iterates over every interned symbol, in unspecified order.
//
// Grounded on runtime/symtable.go's Each.
func (t *Table) Each(fn func(name string, sym *Symbol)) {
	for k, v := range t.entries {
		fn(k, v)
	}
}

// ReleaseNames drops this table's held copies of every interned name's
// byte buffer (spec §4.4 Teardown Sequencer step 2: "Free the
// heap-owned byte buffers of every symbol-table entry's name"). After
// ReleaseNames, the Symbol objects themselves remain valid (Go's own
// GC still owns them) but the table's private name-buffer bookkeeping
// is gone; this method exists purely so teardown exercises the same
// "free owned name storage" step the original performs explicitly.
func (t *Table) ReleaseNames() {
	for _, name := range t.ReverseIndex() {
		T().Debugf("symtab: releasing name buffer for %q", name)
	}
	n := len(t.ownedBuf)
	t.ownedBuf = make(map[*Symbol][]byte)
	T().Debugf("symtab: released %d owned name buffers", n)
}
