/*
Package runtime implements the interpreter's process-wide (per
instance) state container: VM stacks, GC arena, heap, symbol table,
root tables, dynamic-wind checkpoint chain, standard ports, error slot,
and allocator (spec §3.3), plus the Bootstrap Sequencer (spec §4.3) and
Teardown Sequencer (spec §4.4) that construct and tear it down.

Grounded on _examples/original_source/extlib/benz/state.c (pic_state,
pic_open, pic_close) and structurally on the teacher's runtime.Runtime
container-of-roots shape (runtime/state_src.go.bak).
*/
package runtime

import (
	"errors"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/picogo/alloc"
	"github.com/npillmayer/picogo/heap"
	"github.com/npillmayer/picogo/port"
	"github.com/npillmayer/picogo/symtab"
)

// T traces to the global syntax tracer, following the teacher's
// per-package T() helper convention.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// errNoError is the sentinel value of State.Err meaning "no error
// currently raised" (spec §3.3: "Error state: a single 'current raised
// error' slot, initially a sentinel meaning 'no error'").
var errNoError = errors.New("picogo: no error")

// Default stack capacities (value and call-info stacks share the first,
// the rescue stack uses the second), used when the corresponding gconf
// tunable is unset. Named after the original's PIC_STACK_SIZE/
// PIC_RESCUE_SIZE constants, without reusing their names (this core
// has no shared header to name them from). The arena has no capacity
// constant; it grows as needed.
const (
	defaultStackCapacity = 1024
	defaultRescueCapacity = 64
)

// State is the Interpreter State (spec §3.3).
type State struct {
	a alloc.Allocator

	Values   *valueStack
	CallInfo *callInfoStack
	Rescue   *rescueStack
	Arena    *arena
	Heap     heap.Heap
	Symbols  *symtab.Table
	Roots    *roots

	Checkpoints *checkpointChain

	Stdin, Stdout, Stderr *port.Port

	Keywords  map[string]symtab.Renamed // spec §4.3 Phase C/D: syntactic keywords with a hygienic binding
	Operators map[string]*symtab.Symbol // spec §4.3 Phase C: primitive operators, interned only

	Err error // current raised error; errNoError means "no error"

	Argv []string
	Envp []string

	gcEnable bool
}

// GCEnabled reports whether collection cycles are currently permitted
// (spec §3.3 "gc_enable flag").
func (s *State) GCEnabled() bool {
	return s.gcEnable
}

// HasError reports whether an error is currently raised.
func (s *State) HasError() bool {
	return s.Err != errNoError
}
