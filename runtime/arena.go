package runtime

import "github.com/emirpasic/gods/lists/arraylist"

// arena is the GC arena: a bounded root list anchoring freshly
// allocated objects from primitive-initializer code until the
// collector is next permitted to reclaim them, tracked by a
// high-water-mark index (spec §3.3 invariant S2: "arena_idx <=
// arena_capacity at every point collection could occur").
//
// Grounded on state.c's pic->arena/arena_size/arena_idx and the
// pic_gc_arena_preserve/pic_gc_arena_restore/DONE macro pattern
// (SPEC_FULL.md §3). Backed by emirpasic/gods/lists/arraylist, the way
// the teacher's lr/tables.go uses it for a growable indexed collection,
// since the arena itself has no fixed capacity ceiling the way the VM
// stacks do -- only a watermark discipline.
type arena struct {
	roots *arraylist.List
}

func newArena() *arena {
	return &arena{roots: arraylist.New()}
}

// Push records obj as a transient root, returning its index.
func (a *arena) Push(obj any) int {
	a.roots.Add(obj)
	return a.roots.Size() - 1
}

// Preserve returns the current watermark, to be passed to Restore once
// the caller's transient allocations are no longer needed as roots.
//
// Grounded on pic_gc_arena_preserve.
func (a *arena) Preserve() int {
	return a.roots.Size()
}

// Restore truncates the arena back to watermark, dropping every root
// pushed since the matching Preserve call.
//
// Grounded on pic_gc_arena_restore / the DONE macro.
func (a *arena) Restore(watermark int) {
	for a.roots.Size() > watermark {
		a.roots.Remove(a.roots.Size() - 1)
	}
}

// Len reports the current number of live arena roots (the arena_idx
// high-water mark).
func (a *arena) Len() int {
	return a.roots.Size()
}

// Clear drops every root, matching teardown's `arena_idx = 0`.
func (a *arena) Clear() {
	a.roots.Clear()
}
