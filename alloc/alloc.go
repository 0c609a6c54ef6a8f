/*
Package alloc models the allocator contract the interpreter core is
built against (spec §6 External Interfaces): a single callable of shape
(ptr, new_size) -> ptr, with the conventions

	(nil, n) -> allocate n bytes
	(p, 0)   -> free p
	(p, n)   -> realloc p to n bytes

Every owned rope buffer in this core is obtained through an Allocator,
and rope node/slice construction and each bootstrap phase make a
zero-size Allocator call, so that tests can inject a counting or
failing allocator the way the original C code injects a custom
pic_allocf (spec §8: leak detection and allocation-failure propagation
during bootstrap). Rope and String structs themselves and the VM stack
buffers are plain Go allocations.
*/
package alloc

import "errors"

// ErrAllocationFailed is returned when the underlying allocator call
// returns nil. Spec §7: "AllocationFailed -- any allocator call returns
// null during bootstrap -> open returns null without partial state.
// After bootstrap, allocation failure is raised through the
// interpreter's error channel."
var ErrAllocationFailed = errors.New("picogo: allocation failed")

// Block is an opaque handle to a byte buffer obtained from an
// Allocator. It stands in for the C pic_malloc/realloc/free convention
// of passing a raw pointer around; Go code should treat it as opaque
// and only touch Bytes() while the block is known to be live.
type Block struct {
	buf []byte
}

// Bytes returns the live byte buffer backing the block.
func (b *Block) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.buf
}

// Len returns the size of the block in bytes.
func (b *Block) Len() int {
	if b == nil {
		return 0
	}
	return len(b.buf)
}

// Func is the raw allocator callable, mirroring pic_allocf's shape:
// (ptr, new_size) -> ptr. Implementations return (nil, ErrAllocationFailed)
// (or a wrapped variant) on failure, matching the original's "returning
// null on failure is propagated" contract.
type Func func(ptr *Block, newSize int) (*Block, error)

// Allocator is the ergonomic, method-based façade over a Func that the
// rest of this core programs against.
type Allocator interface {
	// Alloc allocates a fresh, zeroed block of size n.
	Alloc(n int) (*Block, error)
	// Realloc resizes b to n bytes, preserving the overlapping prefix.
	// Passing n == 0 is equivalent to Free.
	Realloc(b *Block, n int) (*Block, error)
	// Free releases b. It is a no-op on a nil block.
	Free(b *Block)
}

// funcAllocator adapts a raw Func to the Allocator interface.
type funcAllocator struct {
	fn Func
}

// FromFunc builds an Allocator out of a raw pic_allocf-shaped Func.
func FromFunc(fn Func) Allocator {
	return &funcAllocator{fn: fn}
}

func (a *funcAllocator) Alloc(n int) (*Block, error) {
	return a.fn(nil, n)
}

func (a *funcAllocator) Realloc(b *Block, n int) (*Block, error) {
	return a.fn(b, n)
}

func (a *funcAllocator) Free(b *Block) {
	if b == nil {
		return
	}
	_, _ = a.fn(b, 0)
}

// std is the Func backing StdAllocator: a thin wrapper around Go's own
// allocator, which (unlike malloc) cannot return nil, so this Func never
// fails. It exists so the rest of the system always goes through the
// Allocator contract even in the common case where nothing is actually
// being simulated.
func std(ptr *Block, newSize int) (*Block, error) {
	if newSize == 0 {
		return nil, nil
	}
	nb := &Block{buf: make([]byte, newSize)}
	if ptr != nil {
		n := copy(nb.buf, ptr.buf)
		_ = n
	}
	return nb, nil
}

// StdAllocator returns the default, never-failing Allocator used
// whenever callers don't need to inject failures or count bytes.
func StdAllocator() Allocator {
	return FromFunc(std)
}
