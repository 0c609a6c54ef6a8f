package rope

import (
	"unsafe"

	"github.com/npillmayer/picogo"
	"github.com/npillmayer/picogo/alloc"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer, following the teacher's
// per-package T() helper convention.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// Rope is a node in the persistent string segment tree. The zero value
// is not a valid rope; ropes are only ever obtained through the
// constructors below.
type Rope struct {
	block  *alloc.Block
	refcnt int
	weight int
	isLeaf bool

	// leaf fields -- exactly one of {data, literal-via-hasLiteral,
	// owner-via-borrowed} applies.
	data       []byte // owned leaf: inline buffer, len == weight+1, data[weight] == 0
	hasLiteral bool
	literal    string // literal leaf: zero-copy view of a caller string
	owner      *Rope  // borrowed leaf: ultimate root leaf (owned or literal)
	off        int    // borrowed leaf: offset into owner's storage

	// node fields
	left, right *Rope
}

// Weight returns the byte length of the string this rope represents.
func (r *Rope) Weight() int {
	if r == nil {
		return 0
	}
	return r.weight
}

// Refcnt reports the current reference count, exposed for tests that
// verify §5's "live incref count equals outgoing references plus
// external roots" invariant.
func (r *Rope) Refcnt() int {
	if r == nil {
		return 0
	}
	return r.refcnt
}

// checkAlloc performs a zero-size allocator call purely to give the
// node and borrowed-slice constructors (which allocate no buffer) a
// point at which an injected allocation failure (alloc.FailAfter) can
// be observed, mirroring the original's pic_malloc(pic, sizeof(struct
// rope)). FromLiteral makes no allocator call at all.
func checkAlloc(a alloc.Allocator) error {
	_, err := a.Alloc(0)
	return err
}

// FromBytes allocates an owned leaf, copying len(b) bytes into a fresh
// inline buffer terminated with a zero byte.
//
// Grounded on lib/string.c's make_rope_leaf.
func FromBytes(a alloc.Allocator, b []byte) (*Rope, error) {
	r, err := newOwnedLeaf(a, len(b))
	if err != nil {
		return nil, err
	}
	if b != nil {
		copy(r.data, b)
	}
	return r, nil
}

// NewOwned allocates an owned leaf of n bytes (zero-filled, since Go's
// allocator -- unlike C's malloc -- always zeroes memory) plus a
// trailing terminator, without copying any source data. This is the
// "allocate then fill" entry point used by make-string and internally
// by Flatten to materialize a fresh buffer.
//
// Grounded on lib/string.c's make_rope_leaf(pic, NULL, len).
func NewOwned(a alloc.Allocator, n int) (*Rope, error) {
	return newOwnedLeaf(a, n)
}

func newOwnedLeaf(a alloc.Allocator, n int) (*Rope, error) {
	blk, err := a.Alloc(n + 1)
	if err != nil {
		return nil, err
	}
	data := blk.Bytes()
	data[n] = 0
	return &Rope{block: blk, refcnt: 1, weight: n, isLeaf: true, data: data}, nil
}

// FromLiteral allocates a borrowed... rather, a literal leaf referencing
// the bytes of s directly with no copy. The caller guarantees s outlives
// every rope derived from it (spec: "assumed to outlive the
// interpreter"), as is the case for Go string constants and
// process-lifetime interned names.
//
// Grounded on lib/string.c's make_rope_lit.
func FromLiteral(s string) *Rope {
	return &Rope{refcnt: 1, weight: len(s), isLeaf: true, hasLiteral: true, literal: s}
}

// Incref bumps r's reference count and returns r, mirroring
// pic_rope_incref. Safe to call on a nil rope (a no-op returning nil),
// matching the "nil represents the empty rope" convention used by
// Concat.
func Incref(r *Rope) *Rope {
	if r == nil {
		return nil
	}
	r.refcnt++
	return r
}

// Decref drops r's reference count; at zero, it recursively decrefs
// r's owner (borrowed leaf) or children (node), frees an owned leaf's
// buffer through a, and lets the Rope struct itself become garbage
// for Go's own collector.
//
// Grounded on lib/string.c's pic_rope_decref.
func Decref(a alloc.Allocator, r *Rope) {
	if r == nil {
		return
	}
	r.refcnt--
	if r.refcnt > 0 {
		return
	}
	T().Debugf("rope: refcount dropped to zero, freeing (weight=%d, leaf=%v)", r.weight, r.isLeaf)
	if r.isLeaf {
		if r.owner != nil {
			Decref(a, r.owner)
		}
	} else {
		Decref(a, r.left)
		Decref(a, r.right)
		r.left, r.right = nil, nil
	}
	if r.block != nil {
		a.Free(r.block)
		r.block = nil
	}
}

// Concat returns a rope representing the concatenation of a's and b's
// strings. If either operand is nil, returns an increfed copy of the
// other; otherwise allocates a fresh internal node whose children are
// increfed copies of left and right.
//
// Grounded on lib/string.c's merge / pic_str_cat.
func Concat(a alloc.Allocator, left, right *Rope) (*Rope, error) {
	if left == nil {
		return Incref(right), nil
	}
	if right == nil {
		return Incref(left), nil
	}
	if err := checkAlloc(a); err != nil {
		return nil, err
	}
	node := &Rope{
		refcnt: 1,
		weight: left.weight + right.weight,
		isLeaf: false,
		left:   Incref(left),
		right:  Incref(right),
	}
	return node, nil
}

// Slice returns the substring rope r[i:j], 0 <= i <= j <= r.Weight().
// Callers (strval) are responsible for range validation and raising
// IndexOutOfRange; like the original's unchecked pointer arithmetic,
// Slice itself only asserts its precondition via panic, since by the
// time a rope operation runs the Scheme-level bounds check has already
// happened.
//
// Grounded on lib/string.c's slice / make_rope_slice.
func Slice(a alloc.Allocator, r *Rope, i, j int) (*Rope, error) {
	if r == nil {
		panic("rope: Slice called on a nil rope root")
	}
	if i < 0 || j < i || j > r.weight {
		panic("rope: slice indices out of range")
	}
	if i == 0 && j == r.weight {
		return Incref(r), nil
	}
	if r.isLeaf {
		return makeBorrowedSlice(a, r, i, j)
	}
	lw := r.left.weight
	switch {
	case j <= lw:
		return Slice(a, r.left, i, j)
	case lw <= i:
		return Slice(a, r.right, i-lw, j-lw)
	default:
		l, err := Slice(a, r.left, i, lw)
		if err != nil {
			return nil, err
		}
		rr, err := Slice(a, r.right, 0, j-lw)
		if err != nil {
			Decref(a, l)
			return nil, err
		}
		merged, err := Concat(a, l, rr)
		Decref(a, l)
		Decref(a, rr)
		return merged, err
	}
}

// SliceRange is Slice taking a picogo.Range instead of two bare ints, for
// callers that already carry the interval as a value (e.g. a caller
// forwarding bounds computed elsewhere rather than an immediate literal
// pair).
func SliceRange(a alloc.Allocator, r *Rope, rg picogo.Range) (*Rope, error) {
	return Slice(a, r, rg.From(), rg.To())
}

func makeBorrowedSlice(a alloc.Allocator, r *Rope, i, j int) (*Rope, error) {
	if err := checkAlloc(a); err != nil {
		return nil, err
	}
	realOwner := r
	off := i
	if r.owner != nil {
		realOwner = r.owner
		off = r.off + i
	}
	Incref(realOwner)
	return &Rope{refcnt: 1, weight: j - i, isLeaf: true, owner: realOwner, off: off}, nil
}

// leafView returns a zero-copy view of a leaf's visible bytes and
// whether the byte immediately past that view is safely indexable (and
// thus checkable for a null terminator) without risking an
// out-of-bounds read. Go gives no safe way to probe one byte past a
// plain string's backing array (unlike a C string literal's implicit
// trailing NUL), so literal-rooted leaves always report false here;
// see DESIGN.md for the consequence (a bare literal- or
// literal-borrowed leaf never takes Flatten's zero-allocation fast
// path on its first Flatten; that Flatten copies it and re-points it
// at the fresh owned buffer).
func (r *Rope) leafView() (view []byte, canCheckTerm bool) {
	if r.owner == nil {
		if r.hasLiteral {
			return stringBytes(r.literal), false
		}
		return r.data[:r.weight], true
	}
	if r.owner.hasLiteral {
		lit := stringBytes(r.owner.literal)
		return lit[r.off : r.off+r.weight], false
	}
	return r.owner.data[r.off : r.off+r.weight], true
}

func (r *Rope) isTerminated() bool {
	if !r.isLeaf {
		return false
	}
	_, can := r.leafView()
	if !can {
		return false
	}
	if r.owner == nil {
		return r.data[r.weight] == 0
	}
	return r.owner.data[r.off+r.weight] == 0
}

// Flatten produces a contiguous, null-terminated byte view of r's
// entire represented string. If r is already a terminated leaf, no
// allocation occurs. Otherwise a fresh owned leaf is allocated and
// every internal node r transitively reaches is mutated in place into
// a borrowed leaf over the new buffer (path compression); a leaf root
// is likewise re-pointed at the new buffer. Either way a subsequent
// Flatten(r) is O(1) and allocates nothing.
//
// Grounded on lib/string.c's pic_str / flatten.
func Flatten(a alloc.Allocator, r *Rope) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	if r.isTerminated() {
		view, _ := r.leafView()
		return view, nil
	}
	f, err := newOwnedLeaf(a, r.weight)
	if err != nil {
		return nil, err
	}
	dst := f.data[:r.weight]
	wasLeaf := r.isLeaf
	flattenInto(a, dst, r, f, 0)
	if wasLeaf {
		// an unterminated leaf root is re-pointed at f, taking over f's
		// creation reference, so the next Flatten(r) takes the fast path
		if r.owner != nil {
			Decref(a, r.owner)
		}
		r.owner, r.off = f, 0
		r.hasLiteral, r.literal = false, ""
	} else {
		Decref(a, f) // r now holds its own reference to f
	}
	return f.data[:r.weight], nil
}

// flattenInto copies r's bytes into dst at offset base (relative to
// f's buffer) and, for internal nodes, mutates r in place into a
// borrowed leaf owned by f once both children have been copied and
// released.
func flattenInto(a alloc.Allocator, dst []byte, r *Rope, f *Rope, base int) {
	if r.isLeaf {
		view, _ := r.leafView()
		copy(dst[base:base+r.weight], view)
		return
	}
	left, right := r.left, r.right
	flattenInto(a, dst, left, f, base)
	flattenInto(a, dst, right, f, base+left.weight)

	T().Debugf("rope: path-compressing internal node at offset %d (weight=%d)", base, r.weight)
	Incref(f)
	Decref(a, left)
	Decref(a, right)
	r.isLeaf = true
	r.owner = f
	r.off = base
	r.left, r.right = nil, nil
}

// stringBytes returns a zero-copy []byte view of s. s must not be
// mutated through the returned slice (strings are immutable in Go;
// writing through this view is undefined behavior and never done by
// this package).
func stringBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
