package alloc

import "sync/atomic"

// CountingAllocator wraps another Allocator and tracks the number of
// live blocks and live bytes, so tests can assert "after close, the
// allocator reports zero live bytes" (spec §8, scenario 4) the way the
// original C test suite wires a counting pic_allocf into pic_open.
//
// The runtime is single-threaded per interpreter instance (spec §5),
// but CountingAllocator uses atomics for its counters anyway since
// tests commonly share one allocator across several interpreter
// instances running in parallel subtests.
type CountingAllocator struct {
	inner     Allocator
	liveBytes int64
	liveBlock int64
}

// NewCountingAllocator wraps inner.
func NewCountingAllocator(inner Allocator) *CountingAllocator {
	return &CountingAllocator{inner: inner}
}

// LiveBytes reports the number of bytes currently allocated and not yet
// freed.
func (c *CountingAllocator) LiveBytes() int64 {
	return atomic.LoadInt64(&c.liveBytes)
}

// LiveBlocks reports the number of blocks currently allocated and not
// yet freed.
func (c *CountingAllocator) LiveBlocks() int64 {
	return atomic.LoadInt64(&c.liveBlock)
}

func (c *CountingAllocator) Alloc(n int) (*Block, error) {
	b, err := c.inner.Alloc(n)
	if err != nil || b == nil {
		return b, err
	}
	atomic.AddInt64(&c.liveBytes, int64(n))
	atomic.AddInt64(&c.liveBlock, 1)
	return b, nil
}

func (c *CountingAllocator) Realloc(b *Block, n int) (*Block, error) {
	oldSize := b.Len()
	nb, err := c.inner.Realloc(b, n)
	if err != nil {
		return nb, err
	}
	if n == 0 {
		// realloc-to-zero is a free
		atomic.AddInt64(&c.liveBytes, -int64(oldSize))
		atomic.AddInt64(&c.liveBlock, -1)
		return nb, nil
	}
	atomic.AddInt64(&c.liveBytes, int64(n-oldSize))
	return nb, nil
}

func (c *CountingAllocator) Free(b *Block) {
	if b == nil {
		return
	}
	atomic.AddInt64(&c.liveBytes, -int64(b.Len()))
	atomic.AddInt64(&c.liveBlock, -1)
	c.inner.Free(b)
}

// FailAfter wraps another Allocator and fails every Alloc/Realloc call
// starting from the n-th one (1-indexed), simulating an out-of-memory
// condition partway through bootstrap (spec §8, scenario 5: "open with
// an allocator that fails the third allocation returns null and
// reports zero live bytes").
type FailAfter struct {
	inner Allocator
	n     int
	calls int64
}

// NewFailAfter builds an allocator that fails starting at call number n
// (the n-th Alloc or non-zero-size Realloc call returns
// ErrAllocationFailed).
func NewFailAfter(inner Allocator, n int) *FailAfter {
	return &FailAfter{inner: inner, n: n}
}

// Calls reports how many Alloc and non-zero-size Realloc calls have
// been attempted so far, including failing ones.
func (f *FailAfter) Calls() int64 {
	return atomic.LoadInt64(&f.calls)
}

func (f *FailAfter) Alloc(n int) (*Block, error) {
	call := atomic.AddInt64(&f.calls, 1)
	if int(call) >= f.n {
		return nil, ErrAllocationFailed
	}
	return f.inner.Alloc(n)
}

func (f *FailAfter) Realloc(b *Block, n int) (*Block, error) {
	if n == 0 {
		return f.inner.Realloc(b, 0)
	}
	call := atomic.AddInt64(&f.calls, 1)
	if int(call) >= f.n {
		return nil, ErrAllocationFailed
	}
	return f.inner.Realloc(b, n)
}

func (f *FailAfter) Free(b *Block) {
	f.inner.Free(b)
}
