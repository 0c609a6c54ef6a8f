/*
Package heap specifies the external GC-heap collaborator's contract
(spec §1 Non-goals / §3.3: "Heap: an opaque GC-managed heap (external
collaborator), opened on bootstrap, closed on teardown"; spec §1 Out of
scope: "the heap/GC itself ... we only specify the interface the core
requires").

SimpleHeap is a minimal, bookkeeping-only implementation sufficient to
exercise runtime.State's Open/Close/RunGC cooperation in tests -- not a
tracing collector. Go's own runtime already reclaims everything this
core allocates through ordinary `make`/`new`; the interface exists so
the bootstrap/teardown sequencers have a concrete collaborator to call
against, matching the original's pic_heap_open/pic_heap_close/
pic_gc_run call shape.

Grounded on _examples/original_source/extlib/benz/state.c.
*/
package heap

import (
	"errors"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer, following the teacher's
// per-package T() helper convention.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// ErrClosed is returned by any Heap operation performed after Close.
var ErrClosed = errors.New("picogo: heap already closed")

// Heap is the contract runtime.State requires of its GC collaborator.
//
// Grounded on state.c's pic_heap_open/pic_heap_close/pic_gc_run.
type Heap interface {
	// Open prepares the heap for use. Called once, during bootstrap
	// Phase B.
	Open() error
	// RunGC runs one collection cycle. The runtime calls it once,
	// during teardown (spec §4.4 step 4: "Run a full GC pass").
	RunGC() error
	// Close releases the heap. Called once, during teardown Phase 5.
	Close() error
	// Collections reports how many RunGC cycles have completed,
	// exposed for tests asserting the teardown sequencer actually
	// triggers a final pass.
	Collections() int
}

// SimpleHeap is a bookkeeping-only Heap: Open/Close toggle a liveness
// flag and RunGC only increments a counter, since Go's own garbage
// collector already reclaims this core's heap objects.
type SimpleHeap struct {
	open        bool
	collections int
}

// NewSimpleHeap constructs an unopened SimpleHeap.
func NewSimpleHeap() *SimpleHeap {
	return &SimpleHeap{}
}

func (h *SimpleHeap) Open() error {
	if h.open {
		return errors.New("picogo: heap already open")
	}
	h.open = true
	T().Debugf("heap: opened")
	return nil
}

func (h *SimpleHeap) RunGC() error {
	if !h.open {
		return ErrClosed
	}
	h.collections++
	T().Debugf("heap: ran collection cycle #%d", h.collections)
	return nil
}

func (h *SimpleHeap) Close() error {
	if !h.open {
		return ErrClosed
	}
	h.open = false
	T().Debugf("heap: closed")
	return nil
}

func (h *SimpleHeap) Collections() int {
	return h.collections
}
