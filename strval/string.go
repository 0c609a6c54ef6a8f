package strval

import (
	"github.com/npillmayer/picogo"
	"github.com/npillmayer/picogo/alloc"
	"github.com/npillmayer/picogo/rope"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer, following the teacher's
// per-package T() helper convention.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// Char is a single byte-valued character slot, matching spec.md's
// Non-goals: "strings are byte-indexed with a character-value per byte
// slot, matching the source's behavior" -- no Unicode decoding.
type Char = byte

// String is the Scheme-level string value: a heap object holding
// exactly one reference to a rope root (spec §3.2).
//
// Grounded on lib/string.c's struct pic_string and pic_str_value.
type String struct {
	a    alloc.Allocator
	root *rope.Rope
}

// New wraps r as a String, taking ownership of the single incoming
// reference (the caller must not separately decref r).
func New(a alloc.Allocator, r *rope.Rope) *String {
	return &String{a: a, root: r}
}

// FromBytes copies b into a fresh owned rope leaf.
//
// Grounded on lib/string.c's pic_str_value (the bytes-copying path of
// the Open Question split called out in SPEC_FULL.md §5).
func FromBytes(a alloc.Allocator, b []byte) (*String, error) {
	r, err := rope.FromBytes(a, b)
	if err != nil {
		return nil, err
	}
	return New(a, r), nil
}

// FromLiteral wraps a Go string constant with no copy. s must outlive
// every String derived from it.
//
// Grounded on lib/string.c's pic_str_value (the literal path).
func FromLiteral(a alloc.Allocator, s string) *String {
	return New(a, rope.FromLiteral(s))
}

// MakeString allocates a String of n bytes, every byte set to fill.
//
// Grounded on lib/string.c's pic_str_string (make-string primitive
// body). Spec §7 BadArgument: MakeString rejects n < 0 itself,
// returning ErrBadArgument.
func MakeString(a alloc.Allocator, n int, fill Char) (*String, error) {
	if n < 0 {
		return nil, ErrBadArgument
	}
	r, err := rope.NewOwned(a, n)
	if err != nil {
		return nil, err
	}
	s := New(a, r)
	buf, err := s.bytesForWrite()
	if err != nil {
		return nil, err
	}
	for i := range buf {
		buf[i] = fill
	}
	return s, nil
}

// Length returns the string's byte length.
//
// Grounded on lib/string.c's pic_str_len.
func (s *String) Length() int {
	return s.root.Weight()
}

// Bytes returns a null-terminated view of the string's full byte
// sequence, flattening the underlying rope if needed.
//
// Grounded on lib/string.c's pic_str.
func (s *String) Bytes() ([]byte, error) {
	return rope.Flatten(s.a, s.root)
}

// CStr is like Bytes but fails with ErrEmbeddedNull if any byte in
// [0, Length()) is zero, matching the C convention that a Scheme
// string handed to a NUL-terminated C API must not itself embed NULs.
//
// Grounded on lib/string.c's pic_str_cstr.
func (s *String) CStr() ([]byte, error) {
	b, err := s.Bytes()
	if err != nil {
		return nil, err
	}
	n := s.Length()
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return nil, ErrEmbeddedNull
		}
	}
	return b, nil
}

// bytesForWrite flattens s and returns a mutable view, valid only
// because s.root was just allocated by MakeString and is not yet
// shared -- not a general-purpose mutation path.
func (s *String) bytesForWrite() ([]byte, error) {
	return rope.Flatten(s.a, s.root)
}

// Ref returns the byte at index i.
//
// Grounded on lib/string.c's pic_str_ref / string-ref primitive.
func (s *String) Ref(i int) (Char, error) {
	if i < 0 || i >= s.Length() {
		return 0, ErrIndexOutOfRange
	}
	b, err := s.Bytes()
	if err != nil {
		return 0, err
	}
	return b[i], nil
}

// Concat returns a new String representing s followed by t.
//
// Grounded on lib/string.c's pic_str_cat / string-append.
func Concat(a alloc.Allocator, s, t *String) (*String, error) {
	r, err := rope.Concat(a, s.root, t.root)
	if err != nil {
		return nil, err
	}
	return New(a, r), nil
}

// ConcatAll folds Concat over a slice of Strings, the way string-append
// takes a variable number of arguments.
func ConcatAll(a alloc.Allocator, parts ...*String) (*String, error) {
	if len(parts) == 0 {
		return FromLiteral(a, ""), nil
	}
	acc := parts[0]
	accRoot := rope.Incref(acc.root)
	for _, p := range parts[1:] {
		merged, err := rope.Concat(a, accRoot, p.root)
		rope.Decref(a, accRoot)
		if err != nil {
			return nil, err
		}
		accRoot = merged
	}
	return New(a, accRoot), nil
}

// Sub returns the substring s[i:j].
//
// Grounded on lib/string.c's pic_str_sub / string-copy.
func (s *String) Sub(i, j int) (*String, error) {
	n := s.Length()
	if i < 0 || j < i || j > n {
		return nil, ErrIndexOutOfRange
	}
	r, err := rope.Slice(s.a, s.root, i, j)
	if err != nil {
		return nil, err
	}
	return New(s.a, r), nil
}

// SubRange is Sub taking a picogo.Range instead of two bare ints, for
// callers that already carry the interval as a value.
func (s *String) SubRange(rg picogo.Range) (*String, error) {
	return s.Sub(rg.From(), rg.To())
}

// Hash computes a DJB-style hash of the string's bytes: h := 0; for
// each byte b: h := (h << 5) - h + b, with 32-bit signed wraparound.
//
// Grounded on lib/string.c's pic_str_hash.
func (s *String) Hash() (int32, error) {
	b, err := s.Bytes()
	if err != nil {
		return 0, err
	}
	var h int32
	for _, c := range b {
		h = (h << 5) - h + int32(c)
	}
	return h, nil
}

// Cmp lexicographically compares s and t by bytes; when lengths differ
// but the shorter is a prefix of the longer, the shorter compares
// less. Returns a negative, zero, or positive int the way bytes.Compare
// does.
//
// Grounded on lib/string.c's pic_str_cmp and the DEFINE_STRING_CMP
// family (string=?, string<?, string>?, string<=?, string>=?).
func Cmp(s, t *String) (int, error) {
	a, err := s.Bytes()
	if err != nil {
		return 0, err
	}
	b, err := t.Bytes()
	if err != nil {
		return 0, err
	}
	n := a
	if len(b) < len(n) {
		n = n[:len(b)]
	} else {
		n = n[:len(a)]
	}
	for i := range n {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1, nil
			}
			return 1, nil
		}
	}
	switch {
	case len(a) < len(b):
		return -1, nil
	case len(a) > len(b):
		return 1, nil
	default:
		return 0, nil
	}
}

// IsString reports whether v is a *String, backing the string? type
// predicate. This core has no tagged Scheme value representation (no
// pic_value union to switch on), so the predicate degrades to a Go
// type assertion against the one concrete type this package exports.
//
// Grounded on lib/string.c's pic_str_p / string? primitive body.
func IsString(v any) bool {
	_, ok := v.(*String)
	return ok
}

// Eq reports whether s and t compare equal under Cmp, backing string=?.
func Eq(s, t *String) (bool, error) {
	c, err := Cmp(s, t)
	return c == 0, err
}

// Lt reports whether s sorts strictly before t, backing string<?.
func Lt(s, t *String) (bool, error) {
	c, err := Cmp(s, t)
	return c < 0, err
}

// Gt reports whether s sorts strictly after t, backing string>?.
func Gt(s, t *String) (bool, error) {
	c, err := Cmp(s, t)
	return c > 0, err
}

// Le reports whether s sorts at or before t, backing string<=?.
func Le(s, t *String) (bool, error) {
	c, err := Cmp(s, t)
	return c <= 0, err
}

// Ge reports whether s sorts at or after t, backing string>=?.
func Ge(s, t *String) (bool, error) {
	c, err := Cmp(s, t)
	return c >= 0, err
}

// replaceRope atomically swaps s's root rope for n, increfing n and
// decrefing the old root. This is the single mechanism behind
// string-set!, string-copy!, and string-fill! (spec §4.2 Mutation /
// SPEC_FULL.md §3 str_update).
//
// Grounded on lib/string.c's str_update.
func (s *String) replaceRope(n *rope.Rope) {
	T().Debugf("strval: replacing rope root (old weight=%d, new weight=%d)", s.root.Weight(), n.Weight())
	old := s.root
	s.root = rope.Incref(n)
	rope.Decref(s.a, old)
}

// SetByte destructively sets the byte at index k to c, backing
// string-set!. Copy-on-write underneath: builds a replacement rope via
// Sub+Concat and swaps s's root; any other String sharing the old rope
// is unaffected.
//
// Grounded on lib/string.c's string-set! primitive body.
func (s *String) SetByte(k int, c Char) error {
	n := s.Length()
	if k < 0 || k >= n {
		return ErrIndexOutOfRange
	}
	head, err := s.Sub(0, k)
	if err != nil {
		return err
	}
	mid, err := FromBytes(s.a, []byte{c})
	if err != nil {
		rope.Decref(s.a, head.root)
		return err
	}
	tail, err := s.Sub(k+1, n)
	if err != nil {
		rope.Decref(s.a, head.root)
		rope.Decref(s.a, mid.root)
		return err
	}
	headMid, err := rope.Concat(s.a, head.root, mid.root)
	rope.Decref(s.a, head.root)
	rope.Decref(s.a, mid.root)
	if err != nil {
		rope.Decref(s.a, tail.root)
		return err
	}
	full, err := rope.Concat(s.a, headMid, tail.root)
	rope.Decref(s.a, headMid)
	rope.Decref(s.a, tail.root)
	if err != nil {
		return err
	}
	s.replaceRope(full)
	rope.Decref(s.a, full) // replaceRope took its own incref
	return nil
}

// CopyFrom copies from[start:end) into s starting at position at,
// backing string-copy!. The three-argument and four-argument R7RS call
// shapes collapse to this single four-index form by the caller
// defaulting start=0, end=from.Length() -- mirroring pic_get_args'
// deliberate switch-fallthrough dispatch (SPEC_FULL.md §3) rather than
// being re-derived here.
//
// Grounded on lib/string.c's string-copy! primitive body
// (pic_str_string_copy_ip).
func (s *String) CopyFrom(at int, from *String, start, end int) error {
	if start < 0 || end < start || end > from.Length() {
		return ErrIndexOutOfRange
	}
	n := end - start
	if at < 0 || at+n > s.Length() {
		return ErrIndexOutOfRange
	}
	if n == 0 {
		return nil // spec §8 boundary: a zero-length copy is a no-op
	}
	head, err := s.Sub(0, at)
	if err != nil {
		return err
	}
	mid, err := from.Sub(start, end)
	if err != nil {
		rope.Decref(s.a, head.root)
		return err
	}
	tail, err := s.Sub(at+n, s.Length())
	if err != nil {
		rope.Decref(s.a, head.root)
		rope.Decref(s.a, mid.root)
		return err
	}
	headMid, err := rope.Concat(s.a, head.root, mid.root)
	rope.Decref(s.a, head.root)
	rope.Decref(s.a, mid.root)
	if err != nil {
		rope.Decref(s.a, tail.root)
		return err
	}
	full, err := rope.Concat(s.a, headMid, tail.root)
	rope.Decref(s.a, headMid)
	rope.Decref(s.a, tail.root)
	if err != nil {
		return err
	}
	s.replaceRope(full)
	rope.Decref(s.a, full)
	return nil
}

// Fill sets every byte in [start, end) to c, backing string-fill!.
//
// Grounded on lib/string.c's string-fill! primitive body
// (pic_str_string_fill_ip).
func (s *String) Fill(c Char, start, end int) error {
	if start < 0 || end < start || end > s.Length() {
		return ErrIndexOutOfRange
	}
	n := end - start
	filler, err := MakeString(s.a, n, c)
	if err != nil {
		return err
	}
	return s.CopyFrom(start, filler, 0, n)
}

// ToList converts s[start:end) into a slice of Chars, backing
// string->list. start and end are optional; omitting both defaults to
// the full string (start=0, end=Length()), and passing only start
// defaults end to Length(), mirroring pic_str_string_to_list's
// `pic_get_args("s|ii", ...)` defaults (SPEC_FULL.md §3). Unlike
// ToList, CopyFrom and Fill take every bound explicitly.
//
// Grounded on lib/string.c's string_to_list.
func (s *String) ToList(bounds ...int) ([]Char, error) {
	start, end := 0, s.Length()
	switch len(bounds) {
	case 0:
	case 1:
		start = bounds[0]
	case 2:
		start, end = bounds[0], bounds[1]
	default:
		return nil, ErrBadArgument
	}
	if start < 0 || end < start || end > s.Length() {
		return nil, ErrIndexOutOfRange
	}
	b, err := s.Bytes()
	if err != nil {
		return nil, err
	}
	out := make([]Char, end-start)
	copy(out, b[start:end])
	return out, nil
}

// FromList is the inverse of ToList, backing list->string.
//
// Grounded on lib/string.c's list_to_string.
func FromList(a alloc.Allocator, chars []Char) (*String, error) {
	return FromBytes(a, chars)
}

// Map applies f to the i-th byte of every string in s, for i in
// [0, min(length of each s)), producing a new String of that minimum
// length, backing string-map's full R7RS argument convention (any
// number of string arguments, iteration stops at the shortest one).
// Called with zero strings, Map returns ErrBadArgument (spec §7).
//
// Grounded on lib/string.c's pic_str_map / string-map primitive body
// (_examples/original_source/lib/string.c:604-671), which iterates
// over argc string arguments up to the shortest one's length.
func Map(a alloc.Allocator, f func(...Char) Char, s ...*String) (*String, error) {
	if len(s) == 0 {
		return nil, ErrBadArgument
	}
	bs := make([][]byte, len(s))
	n := -1
	for i, str := range s {
		b, err := str.Bytes()
		if err != nil {
			return nil, err
		}
		bs[i] = b
		if n == -1 || len(b) < n {
			n = len(b)
		}
	}
	out := make([]byte, n)
	args := make([]Char, len(s))
	for i := 0; i < n; i++ {
		for j, b := range bs {
			args[j] = b[i]
		}
		out[i] = f(args...)
	}
	return FromBytes(a, out)
}

// ForEach calls f once per index i in [0, min(length of each s)),
// passing the i-th byte of every string in s, backing
// string-for-each's full R7RS argument convention. Called with zero
// strings, ForEach returns ErrBadArgument (spec §7).
//
// Grounded on lib/string.c's pic_str_for_each / string-for-each
// primitive body (_examples/original_source/lib/string.c:604-671).
func ForEach(f func(...Char), s ...*String) error {
	if len(s) == 0 {
		return ErrBadArgument
	}
	bs := make([][]byte, len(s))
	n := -1
	for i, str := range s {
		b, err := str.Bytes()
		if err != nil {
			return err
		}
		bs[i] = b
		if n == -1 || len(b) < n {
			n = len(b)
		}
	}
	args := make([]Char, len(s))
	for i := 0; i < n; i++ {
		for j, b := range bs {
			args[j] = b[i]
		}
		f(args...)
	}
	return nil
}
