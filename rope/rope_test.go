package rope

import (
	"bytes"
	"testing"

	"github.com/npillmayer/picogo"
	"github.com/npillmayer/picogo/alloc"
)

func TestFromBytesWeightAndTerm(t *testing.T) {
	a := alloc.StdAllocator()
	r, err := FromBytes(a, []byte("hello"))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if r.Weight() != 5 {
		t.Errorf("expected weight 5, got %d", r.Weight())
	}
	buf, err := Flatten(a, r)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	if !bytes.Equal(buf, []byte("hello")) {
		t.Errorf("expected %q, got %q", "hello", buf)
	}
}

func TestConcatWeight(t *testing.T) {
	a := alloc.StdAllocator()
	h, _ := FromBytes(a, []byte("hello "))
	w, _ := FromBytes(a, []byte("world"))
	hw, err := Concat(a, h, w)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	if hw.Weight() != 11 {
		t.Errorf("expected weight 11, got %d", hw.Weight())
	}
	buf, err := Flatten(a, hw)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	if string(buf) != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", buf)
	}
}

func TestConcatWithNilIsIncref(t *testing.T) {
	a := alloc.StdAllocator()
	h, _ := FromBytes(a, []byte("hello"))
	before := h.Refcnt()
	hw, err := Concat(a, h, nil)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	if hw != h {
		t.Errorf("expected concat with nil to return the same rope")
	}
	if h.Refcnt() != before+1 {
		t.Errorf("expected refcnt to increase by one, got %d -> %d", before, h.Refcnt())
	}
}

func TestSliceFullRangeIsIncref(t *testing.T) {
	a := alloc.StdAllocator()
	r, _ := FromBytes(a, []byte("abcdef"))
	before := r.Refcnt()
	s, err := Slice(a, r, 0, r.Weight())
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	if s != r {
		t.Errorf("expected full-range slice to be pointer-identical to r")
	}
	if r.Refcnt() != before+1 {
		t.Errorf("expected refcnt incremented by exactly one, got %d -> %d", before, r.Refcnt())
	}
}

func TestSliceSubrange(t *testing.T) {
	a := alloc.StdAllocator()
	r, _ := FromBytes(a, []byte("abcdefgh"))
	sub, err := Slice(a, r, 2, 6)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	buf, _ := Flatten(a, sub)
	if string(buf) != "cdef" {
		t.Errorf("expected %q, got %q", "cdef", buf)
	}
}

func TestSliceRangeMatchesSlice(t *testing.T) {
	a := alloc.StdAllocator()
	r, _ := FromBytes(a, []byte("abcdefgh"))
	sub, err := SliceRange(a, r, picogo.NewRange(2, 6))
	if err != nil {
		t.Fatalf("SliceRange failed: %v", err)
	}
	buf, _ := Flatten(a, sub)
	if string(buf) != "cdef" {
		t.Errorf("expected %q, got %q", "cdef", buf)
	}
}

func TestSliceEmptyYieldsZeroWeight(t *testing.T) {
	a := alloc.StdAllocator()
	r, _ := FromBytes(a, []byte("abcdef"))
	s, err := Slice(a, r, 3, 3)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	if s.Weight() != 0 {
		t.Errorf("expected zero-weight slice, got %d", s.Weight())
	}
}

func TestFlattenIsIdempotentNoFurtherAlloc(t *testing.T) {
	a := alloc.NewCountingAllocator(alloc.StdAllocator())
	h, _ := FromBytes(a, []byte("hello "))
	w, _ := FromBytes(a, []byte("world"))
	hw, _ := Concat(a, h, w)

	if _, err := Flatten(a, hw); err != nil {
		t.Fatalf("first flatten failed: %v", err)
	}
	before := a.LiveBlocks()
	if _, err := Flatten(a, hw); err != nil {
		t.Fatalf("second flatten failed: %v", err)
	}
	if a.LiveBlocks() != before {
		t.Errorf("expected no new allocations on repeated flatten, block count %d -> %d", before, a.LiveBlocks())
	}
}

func TestDeepConcatenationChainFlattens(t *testing.T) {
	a := alloc.StdAllocator()
	var r *Rope
	for i := 0; i < 10000; i++ {
		leaf, err := FromBytes(a, []byte{'a'})
		if err != nil {
			t.Fatalf("FromBytes failed at %d: %v", i, err)
		}
		next, err := Concat(a, r, leaf)
		if err != nil {
			t.Fatalf("Concat failed at %d: %v", i, err)
		}
		Decref(a, r)
		Decref(a, leaf)
		r = next
	}
	if r.Weight() != 10000 {
		t.Fatalf("expected weight 10000, got %d", r.Weight())
	}
	buf, err := Flatten(a, r)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	if len(buf) != 10000 {
		t.Fatalf("expected 10000 bytes, got %d", len(buf))
	}
	for _, b := range buf {
		if b != 'a' {
			t.Fatalf("expected all 'a' bytes, found %q", b)
		}
	}
}

func TestLiteralIsZeroCopyAndNoLeak(t *testing.T) {
	a := alloc.NewCountingAllocator(alloc.StdAllocator())
	lit := FromLiteral("define")
	if lit.Weight() != 6 {
		t.Errorf("expected weight 6, got %d", lit.Weight())
	}
	if a.LiveBytes() != 0 {
		t.Errorf("expected zero live bytes from a literal, got %d", a.LiveBytes())
	}
	buf, err := Flatten(a, lit)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	if string(buf) != "define" {
		t.Errorf("expected %q, got %q", "define", buf)
	}
	Decref(a, lit)
}

func TestRefcountBalanceNoLeaks(t *testing.T) {
	a := alloc.NewCountingAllocator(alloc.StdAllocator())
	r1, _ := FromBytes(a, []byte("foo"))
	r2, _ := FromBytes(a, []byte("bar"))
	cat, _ := Concat(a, r1, r2)
	sub, _ := Slice(a, cat, 1, 5)
	Decref(a, r1)
	Decref(a, r2)
	Decref(a, cat)
	Decref(a, sub)
	if a.LiveBytes() != 0 || a.LiveBlocks() != 0 {
		t.Errorf("expected zero live bytes/blocks after balanced decref, got %d/%d", a.LiveBytes(), a.LiveBlocks())
	}
}

func TestAllocationFailurePropagates(t *testing.T) {
	f := alloc.NewFailAfter(alloc.StdAllocator(), 1)
	if _, err := FromBytes(f, []byte("x")); err != alloc.ErrAllocationFailed {
		t.Fatalf("expected ErrAllocationFailed, got %v", err)
	}
}
