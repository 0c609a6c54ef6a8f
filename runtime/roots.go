package runtime

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/npillmayer/picogo/symtab"
)

// roots bundles every Scheme-visible registry the interpreter state
// owns (spec §3.3: "Root tables: globals (name -> value), macros
// (name -> transformer), attrs (weak object-attribute registry), libs
// (list of library objects), features (list of symbol), ptable
// (parameterization stack), regs (registry list)").
//
// Grounded on state.c's pic->globals/macros/attrs/libs/features/ptable/
// regs fields, backed by the domain-stack libraries SPEC_FULL.md §2
// assigns them:
//   - globals, macros: linkedhashmap (insertion-ordered, matching R7RS
//     eq?-keyed define order)
//   - libs, features, regs: arraylist
//   - ptable: arraystack (parameterization frames are pushed/popped,
//     never indexed)
//   - attrs: plain map keyed by synthetic object id (see DESIGN.md
//     Open Questions -- no ambient weak-reference primitive fits)
type roots struct {
	globals  *linkedhashmap.Map
	macros   *linkedhashmap.Map
	attrs    map[uint64]map[string]any
	libs     *arraylist.List
	features *arraylist.List
	ptable   *arraystack.Stack
	regs     *arraylist.List
	active   any // the currently active library, spec §4.3 Phase E
}

func newRoots() *roots {
	r := &roots{
		globals:  linkedhashmap.New(),
		macros:   linkedhashmap.New(),
		attrs:    make(map[uint64]map[string]any),
		libs:     arraylist.New(),
		features: arraylist.New(),
		ptable:   arraystack.New(),
		regs:     arraylist.New(),
	}
	r.ptable.Push(make(map[string]any)) // empty parameterization dict, spec §4.3 Phase E
	return r
}

// DefineGlobal binds name to value in the globals table.
func (r *roots) DefineGlobal(name *symtab.Symbol, value any) {
	r.globals.Put(name, value)
}

// ResolveGlobal looks up name in the globals table.
func (r *roots) ResolveGlobal(name *symtab.Symbol) (any, bool) {
	return r.globals.Get(name)
}

// DefineMacro binds name to a macro transformer in the macros table.
func (r *roots) DefineMacro(name *symtab.Symbol, transformer any) {
	r.macros.Put(name, transformer)
}

// ResolveMacro looks up name in the macros table.
func (r *roots) ResolveMacro(name *symtab.Symbol) (any, bool) {
	return r.macros.Get(name)
}

// AddFeature pushes a feature symbol onto the features list, backing
// the add_feature External Interface (spec §6).
func (r *roots) AddFeature(sym *symtab.Symbol) {
	r.features.Add(sym)
}

// Features returns every feature symbol, in push order.
func (r *roots) Features() []*symtab.Symbol {
	vals := r.features.Values()
	out := make([]*symtab.Symbol, len(vals))
	for i, v := range vals {
		out[i] = v.(*symtab.Symbol)
	}
	return out
}

// AddLibrary registers a library object.
func (r *roots) AddLibrary(lib any) {
	r.libs.Add(lib)
}

// SetActiveLibrary sets the library new definitions are evaluated
// into, backing spec §4.3 Phase E's closing step: "set the active
// library to `(picrin user)`".
//
// Grounded on state.c's `pic->lib = pic->PICRIN_USER` assignment at
// the end of pic_open's library bootstrap.
func (r *roots) SetActiveLibrary(lib any) {
	r.active = lib
}

// ActiveLibrary returns the currently active library, or nil before
// Phase E has run.
func (r *roots) ActiveLibrary() any {
	return r.active
}

// PushParameterization pushes a fresh parameterization frame onto
// ptable.
func (r *roots) PushParameterization() {
	r.ptable.Push(make(map[string]any))
}

// PopParameterization pops the current parameterization frame.
func (r *roots) PopParameterization() (map[string]any, bool) {
	v, ok := r.ptable.Pop()
	if !ok {
		return nil, false
	}
	return v.(map[string]any), true
}

// SetAttr sets a named attribute on the object identified by id,
// backing the attrs "weak object-attribute registry" (see DESIGN.md
// Open Questions for why this is a plain map, not a weak one).
func (r *roots) SetAttr(id uint64, key string, value any) {
	m, ok := r.attrs[id]
	if !ok {
		m = make(map[string]any)
		r.attrs[id] = m
	}
	m[key] = value
}

// GetAttr retrieves a named attribute previously set on id.
func (r *roots) GetAttr(id uint64, key string) (any, bool) {
	m, ok := r.attrs[id]
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// ForgetAttr drops every attribute stored under id. Since attrs has no
// ambient weak-reference primitive to rely on (see DESIGN.md Open
// Questions), the "weakness" of this registry is pushed onto whichever
// collaborator notices an object has died -- normally the GC's sweep --
// which is expected to call ForgetAttr at that point.
func (r *roots) ForgetAttr(id uint64) {
	delete(r.attrs, id)
}

// Clear drops every root table, matching teardown's step 3 ("drop the
// globals / macros / attrs / features / libs references").
//
// Grounded on state.c's pic_close: "pic->globals = NULL; pic->macros =
// NULL; pic->attrs = NULL; ...; pic->features = pic_nil_value();
// pic->libs = pic_nil_value();"
func (r *roots) Clear() {
	r.globals.Clear()
	r.macros.Clear()
	r.attrs = make(map[uint64]map[string]any)
	r.libs.Clear()
	r.features.Clear()
	r.regs.Clear()
	r.active = nil
}
