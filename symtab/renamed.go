package symtab

// Renamed holds a surface/hygienic symbol pair: the interned
// surface-level name a Scheme reader would encounter, and a fresh
// renamed symbol used by the expander as the actual hygienic binding
// identifier (spec §3.3: "for every reserved form ... and every
// primitive operator ... two symbols are held").
//
// Grounded directly on
// _examples/original_source/extlib/benz/state.c's R(slot,name) macro
// (pic_gensym(pic, pic_intern_cstr(pic, name)) pairs) -- the teacher's
// own hygiene machinery (terex/termr) is structurally a term-rewriting
// system, not a gensym'd-binding one, so it offers no code to adapt
// here; this type is new, grounded on the original C source instead.
type Renamed struct {
	Surface  *Symbol
	Hygienic *Symbol
}

// Rename interns name's surface symbol in t (if not already present)
// and gensyms a fresh, distinct symbol bearing the same surface name
// for use as the hygienic binding, implementing spec §4.3 Phase D.
func Rename(t *Table, name string) Renamed {
	surface, _ := t.Intern(name)
	hygienic := t.gensym(name)
	T().Debugf("symtab: renamed %s -> %s", surface, hygienic)
	return Renamed{Surface: surface, Hygienic: hygienic}
}

// gensym allocates a fresh Symbol bearing name, distinct from any
// interned entry -- unlike Intern, it never returns an existing
// Symbol and is never itself resolvable via Resolve, matching the
// Glossary's "Gensym: the allocation of a fresh symbol bearing a given
// surface name but distinct identity."
func (t *Table) gensym(name string) *Symbol {
	sym := &Symbol{Name: name, id: t.nextID}
	t.nextID++
	return sym
}
