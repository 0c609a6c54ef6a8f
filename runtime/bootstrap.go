package runtime

import (
	"github.com/npillmayer/schuko/gconf"

	"github.com/npillmayer/picogo/alloc"
	"github.com/npillmayer/picogo/heap"
	"github.com/npillmayer/picogo/port"
	"github.com/npillmayer/picogo/symtab"
)

// syntacticKeywordNames are interned in Phase C and every one of them
// also receives a hygienic renamed binding in Phase D -- this core's
// simplification of the original's two partially-overlapping S()/R()
// macro lists: every name here gets both a surface symbol and a gensym'd renamed
// counterpart.
//
// Grounded on state.c's R(slot,name) invocations in pic_open.
var syntacticKeywordNames = []string{
	"define", "lambda", "if", "begin", "set!", "quote",
	"define-syntax", "import", "export", "define-library", "in-library",
	"cond-expand", "cons", "car", "cdr", "null?", "symbol?", "pair?",
	"+", "-", "*", "/", "=", "<", "<=", ">", ">=", "not",
	"values", "call-with-values",
}

// operatorNames are interned in Phase C only: surface-level names with
// no hygienic renamed counterpart, since nothing in the expander binds
// them directly.
//
// Grounded on state.c's S(slot,name) invocations in pic_open that have
// no matching R(slot,name) entry.
var operatorNames = []string{
	"quasiquote", "unquote", "unquote-splicing", "and", "or", "else",
	"library", "only", "rename", "prefix", "except", "minus",
	"read", "file", "call", "tail-call", "gref", "lref", "cref",
	"return", "tailcall-with-values",
}

// Open constructs a new Interpreter State, running the bootstrap
// sequencer's phases A through G (spec §4.3). Any allocation failure
// unwinds previously-allocated phase-A buffers and returns
// (nil, alloc.ErrAllocationFailed) without a partial state (spec §7
// AllocationFailed).
//
// gconf tunables (falling back to defaultStackCapacity/
// defaultRescueCapacity when unset): "picogo-stack-capacity",
// "picogo-rescue-capacity". Grounded on lr/earley/parsetree.go's
// gconf.GetBool(...) read pattern.
//
// Grounded on state.c's pic_open.
func Open(argv, envp []string, a alloc.Allocator) (*State, error) {
	stackCap := gconf.GetInt("picogo-stack-capacity")
	if stackCap <= 0 {
		stackCap = defaultStackCapacity
	}
	rescueCap := gconf.GetInt("picogo-rescue-capacity")
	if rescueCap <= 0 {
		rescueCap = defaultRescueCapacity
	}

	s := &State{
		a:         a,
		Argv:      argv,
		Envp:      envp,
		gcEnable:  false, // Phase A: GC stays off until every root is initialized
		Keywords:  make(map[string]symtab.Renamed),
		Operators: make(map[string]*symtab.Symbol),
		Err:       errNoError,
	}

	// Phase A -- raw memory. Any allocator failure here unwinds what
	// was already allocated and returns a null state (spec §4.3 Phase A).
	if err := checkAlloc(a); err != nil {
		return nil, err
	}
	s.Values = newValueStack(stackCap)
	if err := checkAlloc(a); err != nil {
		return nil, err
	}
	s.CallInfo = newCallInfoStack(stackCap)
	if err := checkAlloc(a); err != nil {
		return nil, err
	}
	s.Rescue = newRescueStack(rescueCap)
	if err := checkAlloc(a); err != nil {
		return nil, err
	}
	s.Arena = newArena()

	// Phase B -- tables: open the heap, init symbol table, root lists,
	// mark the native stack bottom (no-op in Go; see DESIGN.md).
	s.Heap = heap.NewSimpleHeap()
	if err := s.Heap.Open(); err != nil {
		return nil, err
	}
	s.Symbols = symtab.New()
	s.Roots = newRoots()

	ai := s.Arena.Preserve()

	// Phase C -- interned symbols.
	for _, name := range syntacticKeywordNames {
		s.Symbols.Intern(name)
	}
	for _, name := range operatorNames {
		sym, _ := s.Symbols.Intern(name)
		s.Operators[name] = sym
	}
	s.Arena.Restore(ai)

	// Phase D -- renamed symbols.
	for _, name := range syntacticKeywordNames {
		s.Keywords[name] = symtab.Rename(s.Symbols, name)
	}
	s.Arena.Restore(ai)

	// Phase E -- checkpoint chain, standard ports, base libraries, and
	// set the active library to `(picrin user)`. The root tables and the
	// ptable frame were built by newRoots in Phase B; this core has no
	// reader to open.
	s.Checkpoints = newCheckpointChain()
	s.Stdin, s.Stdout, s.Stderr = port.Standard()
	s.Roots.AddLibrary("(picrin base)")
	const userLibrary = "(picrin user)"
	s.Roots.AddLibrary(userLibrary)
	s.Roots.SetActiveLibrary(userLibrary)

	// Phase F -- enable GC & feature detection.
	s.gcEnable = true
	for _, name := range detectFeatures() {
		sym, _ := s.Symbols.Intern(name)
		s.Roots.AddFeature(sym)
	}

	// Phase G -- base library load: primitive initializers would run
	// here, each bracketed by an arena watermark restore (SPEC_FULL.md
	// §3's "DONE" note); this core provides the bootstrap-script loader
	// contract without the evaluator itself (spec §1 Out of scope).
	ai = s.Arena.Preserve()
	for range primitiveInitializerNames {
		// one per subsystem; the evaluator that would actually register
		// primitive procedures lives outside this core's scope.
		s.Arena.Restore(ai)
	}

	T().Debugf("runtime: bootstrap complete, %d keywords, %d operators, %d features",
		len(s.Keywords), len(s.Operators), len(s.Roots.Features()))

	return s, nil
}

// primitiveInitializerNames names the 23 subsystem initializers the
// original's pic_init_core calls in order, each wrapped in the DONE
// arena-restore macro (SPEC_FULL.md §3). Carried as data (not function
// pointers) since the primitives themselves are outside this core's
// scope.
//
// Grounded on state.c's pic_init_core body.
var primitiveInitializerNames = []string{
	"undef", "bool", "pair", "port", "number", "proc", "symbol",
	"vector", "blob", "cont", "char", "error", "str", "macro", "var",
	"write", "read", "dict", "record", "eval", "lib", "attr", "reg",
}

// checkAlloc performs a zero-size allocator call purely to give every
// bootstrap phase a uniform point at which an injected allocation
// failure (alloc.FailAfter) can be observed, mirroring each of
// pic_open's `if (! pic->X) goto EXIT_X;` checks.
func checkAlloc(a alloc.Allocator) error {
	_, err := a.Alloc(0)
	return err
}
