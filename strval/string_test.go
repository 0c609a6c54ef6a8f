package strval

import (
	"errors"
	"testing"

	"github.com/npillmayer/picogo"
	"github.com/npillmayer/picogo/alloc"
	"golang.org/x/exp/slices"
)

func TestHelloWorldAppend(t *testing.T) {
	a := alloc.StdAllocator()
	s1, _ := FromBytes(a, []byte("hello"))
	sp, _ := FromBytes(a, []byte(" "))
	s2, _ := FromBytes(a, []byte("world"))
	s3, err := ConcatAll(a, s1, sp, s2)
	if err != nil {
		t.Fatalf("ConcatAll failed: %v", err)
	}
	if s3.Length() != 11 {
		t.Errorf("expected length 11, got %d", s3.Length())
	}
	b, err := s3.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if string(b) != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", b)
	}
}

func TestMakeStringAndSetByte(t *testing.T) {
	a := alloc.StdAllocator()
	s, err := MakeString(a, 5, 'a')
	if err != nil {
		t.Fatalf("MakeString failed: %v", err)
	}
	if err := s.SetByte(2, 'Z'); err != nil {
		t.Fatalf("SetByte failed: %v", err)
	}
	list, err := s.ToList()
	if err != nil {
		t.Fatalf("ToList failed: %v", err)
	}
	want := []Char{'a', 'a', 'Z', 'a', 'a'}
	if string(list) != string(want) {
		t.Errorf("expected %v, got %v", want, list)
	}
}

func TestSubIsIndependentOfOriginal(t *testing.T) {
	a := alloc.StdAllocator()
	s, _ := FromBytes(a, []byte("abcdefgh"))
	sub, err := s.Sub(2, 6)
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	b, _ := sub.Bytes()
	if string(b) != "cdef" {
		t.Errorf("expected %q, got %q", "cdef", b)
	}
	if err := sub.SetByte(0, 'X'); err != nil {
		t.Fatalf("SetByte failed: %v", err)
	}
	orig, _ := s.Bytes()
	if string(orig) != "abcdefgh" {
		t.Errorf("expected original unchanged, got %q", orig)
	}
	mutated, _ := sub.Bytes()
	if string(mutated) != "Xdef" {
		t.Errorf("expected %q, got %q", "Xdef", mutated)
	}
}

func TestSubRangeMatchesSub(t *testing.T) {
	a := alloc.StdAllocator()
	s, _ := FromBytes(a, []byte("abcdefgh"))
	sub, err := s.SubRange(picogo.NewRange(2, 6))
	if err != nil {
		t.Fatalf("SubRange failed: %v", err)
	}
	b, _ := sub.Bytes()
	if string(b) != "cdef" {
		t.Errorf("expected %q, got %q", "cdef", b)
	}
}

func TestStringListRoundTrip(t *testing.T) {
	a := alloc.StdAllocator()
	want := []Char{'p', 'i', 'c', 'o'}
	s, err := FromList(a, want)
	if err != nil {
		t.Fatalf("FromList failed: %v", err)
	}
	got, err := s.ToList()
	if err != nil {
		t.Fatalf("ToList failed: %v", err)
	}
	if !slices.Equal(got, want) {
		t.Errorf("round-trip mismatch: expected %v, got %v", want, got)
	}
}

func TestAppendIdentity(t *testing.T) {
	a := alloc.StdAllocator()
	s, _ := FromBytes(a, []byte("picogo"))
	empty := FromLiteral(a, "")

	left, err := Concat(a, s, empty)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	lb, _ := left.Bytes()
	if string(lb) != "picogo" {
		t.Errorf("expected append-empty-right identity, got %q", lb)
	}

	right, err := Concat(a, empty, s)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	rb, _ := right.Bytes()
	if string(rb) != "picogo" {
		t.Errorf("expected append-empty-left identity, got %q", rb)
	}
}

func TestCmpReflexiveAndAntisymmetric(t *testing.T) {
	a := alloc.StdAllocator()
	s, _ := FromBytes(a, []byte("abc"))
	t2, _ := FromBytes(a, []byte("abd"))

	c, err := Cmp(s, s)
	if err != nil {
		t.Fatalf("Cmp failed: %v", err)
	}
	if c != 0 {
		t.Errorf("expected Cmp(s, s) == 0, got %d", c)
	}

	c1, _ := Cmp(s, t2)
	c2, _ := Cmp(t2, s)
	if sign(c1) != -sign(c2) {
		t.Errorf("expected antisymmetric sign, got %d and %d", c1, c2)
	}
}

func TestIsStringPredicate(t *testing.T) {
	a := alloc.StdAllocator()
	s := FromLiteral(a, "x")
	if !IsString(s) {
		t.Errorf("expected IsString(*String) to be true")
	}
	if IsString(42) {
		t.Errorf("expected IsString(non-string) to be false")
	}
}

func TestNamedComparators(t *testing.T) {
	a := alloc.StdAllocator()
	s, _ := FromBytes(a, []byte("abc"))
	t2, _ := FromBytes(a, []byte("abd"))

	if eq, err := Eq(s, s); err != nil || !eq {
		t.Errorf("expected Eq(s, s) true, got %v, %v", eq, err)
	}
	if eq, _ := Eq(s, t2); eq {
		t.Errorf("expected Eq(s, t) false")
	}
	if lt, _ := Lt(s, t2); !lt {
		t.Errorf("expected Lt(s, t) true")
	}
	if gt, _ := Gt(t2, s); !gt {
		t.Errorf("expected Gt(t, s) true")
	}
	if le, _ := Le(s, s); !le {
		t.Errorf("expected Le(s, s) true")
	}
	if ge, _ := Ge(s, s); !ge {
		t.Errorf("expected Ge(s, s) true")
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestRefBoundary(t *testing.T) {
	a := alloc.StdAllocator()
	s, _ := FromBytes(a, []byte("abc"))
	if _, err := s.Ref(s.Length() - 1); err != nil {
		t.Fatalf("expected last-index ref to succeed, got %v", err)
	}
	if _, err := s.Ref(s.Length()); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestMakeStringZeroLength(t *testing.T) {
	a := alloc.StdAllocator()
	s, err := MakeString(a, 0, 'x')
	if err != nil {
		t.Fatalf("MakeString failed: %v", err)
	}
	if s.Length() != 0 {
		t.Errorf("expected zero length, got %d", s.Length())
	}
}

func TestMakeStringNegativeLengthIsBadArgument(t *testing.T) {
	a := alloc.StdAllocator()
	if _, err := MakeString(a, -1, 'x'); !errors.Is(err, ErrBadArgument) {
		t.Fatalf("expected ErrBadArgument, got %v", err)
	}
}

func TestCopyFromNoOpAtEnd(t *testing.T) {
	a := alloc.StdAllocator()
	to, _ := FromBytes(a, []byte("target"))
	from, _ := FromBytes(a, []byte("source"))
	if err := to.CopyFrom(to.Length(), from, 0, 0); err != nil {
		t.Fatalf("expected zero-length copy to be a no-op, got %v", err)
	}
	b, _ := to.Bytes()
	if string(b) != "target" {
		t.Errorf("expected %q unchanged, got %q", "target", b)
	}
}

func TestFillRange(t *testing.T) {
	a := alloc.StdAllocator()
	s, _ := FromBytes(a, []byte("aaaaaa"))
	if err := s.Fill('b', 2, 4); err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	b, _ := s.Bytes()
	if string(b) != "aabbaa" {
		t.Errorf("expected %q, got %q", "aabbaa", b)
	}
}

func TestCStrRejectsEmbeddedNull(t *testing.T) {
	a := alloc.StdAllocator()
	s, _ := FromBytes(a, []byte{'a', 0, 'b'})
	if _, err := s.CStr(); !errors.Is(err, ErrEmbeddedNull) {
		t.Fatalf("expected ErrEmbeddedNull, got %v", err)
	}
}

func TestHashDeterministic(t *testing.T) {
	a := alloc.StdAllocator()
	s1, _ := FromBytes(a, []byte("picogo"))
	s2, _ := FromBytes(a, []byte("picogo"))
	h1, err := s1.Hash()
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	h2, _ := s2.Hash()
	if h1 != h2 {
		t.Errorf("expected equal hashes for equal bytes, got %d and %d", h1, h2)
	}
}

func TestMapAndForEach(t *testing.T) {
	a := alloc.StdAllocator()
	s, _ := FromBytes(a, []byte("abc"))
	upper, err := Map(a, func(c ...Char) Char {
		if c[0] >= 'a' && c[0] <= 'z' {
			return c[0] - ('a' - 'A')
		}
		return c[0]
	}, s)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	b, _ := upper.Bytes()
	if string(b) != "ABC" {
		t.Errorf("expected %q, got %q", "ABC", b)
	}

	var seen []Char
	if err := ForEach(func(c ...Char) { seen = append(seen, c[0]) }, s); err != nil {
		t.Fatalf("ForEach failed: %v", err)
	}
	if string(seen) != "abc" {
		t.Errorf("expected %q, got %q", "abc", seen)
	}
}

func TestMapMultipleStringsStopsAtShortest(t *testing.T) {
	a := alloc.StdAllocator()
	s1, _ := FromBytes(a, []byte("abcd"))
	s2, _ := FromBytes(a, []byte("XY"))
	out, err := Map(a, func(c ...Char) Char {
		return c[0] + (c[1] - 'A')
	}, s1, s2)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	b, _ := out.Bytes()
	if len(b) != 2 {
		t.Fatalf("expected length 2 (shortest input), got %d (%q)", len(b), b)
	}
}

func TestForEachMultipleStrings(t *testing.T) {
	a := alloc.StdAllocator()
	s1, _ := FromBytes(a, []byte("ab"))
	s2, _ := FromBytes(a, []byte("12"))
	var pairs [][2]Char
	err := ForEach(func(c ...Char) { pairs = append(pairs, [2]Char{c[0], c[1]}) }, s1, s2)
	if err != nil {
		t.Fatalf("ForEach failed: %v", err)
	}
	if len(pairs) != 2 || pairs[0] != [2]Char{'a', '1'} || pairs[1] != [2]Char{'b', '2'} {
		t.Errorf("unexpected pairs: %v", pairs)
	}
}

func TestMapForEachZeroStringsIsBadArgument(t *testing.T) {
	a := alloc.StdAllocator()
	if _, err := Map(a, func(c ...Char) Char { return c[0] }); !errors.Is(err, ErrBadArgument) {
		t.Fatalf("expected ErrBadArgument from Map with zero strings, got %v", err)
	}
	if err := ForEach(func(c ...Char) {}); !errors.Is(err, ErrBadArgument) {
		t.Fatalf("expected ErrBadArgument from ForEach with zero strings, got %v", err)
	}
}

func TestToListOptionalRange(t *testing.T) {
	a := alloc.StdAllocator()
	s, _ := FromBytes(a, []byte("abcdef"))
	full, err := s.ToList()
	if err != nil || string(full) != "abcdef" {
		t.Fatalf("expected full-range default, got %v, %v", full, err)
	}
	fromStart, err := s.ToList(2)
	if err != nil || string(fromStart) != "cdef" {
		t.Fatalf("expected start-only default end, got %v, %v", fromStart, err)
	}
	ranged, err := s.ToList(1, 3)
	if err != nil || string(ranged) != "bc" {
		t.Fatalf("expected ranged slice, got %v, %v", ranged, err)
	}
	if _, err := s.ToList(0, s.Length()+1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := s.ToList(1, 2, 3); !errors.Is(err, ErrBadArgument) {
		t.Fatalf("expected ErrBadArgument for too many bounds, got %v", err)
	}
}

func TestDeepConcatenationChainFlattens(t *testing.T) {
	a := alloc.StdAllocator()
	s := FromLiteral(a, "")
	for i := 0; i < 10000; i++ {
		piece, err := FromBytes(a, []byte{'x'})
		if err != nil {
			t.Fatalf("FromBytes failed at %d: %v", i, err)
		}
		next, err := Concat(a, s, piece)
		if err != nil {
			t.Fatalf("Concat failed at %d: %v", i, err)
		}
		s = next
	}
	if s.Length() != 10000 {
		t.Fatalf("expected length 10000, got %d", s.Length())
	}
	b, err := s.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if len(b) != 10000 {
		t.Fatalf("expected 10000 bytes, got %d", len(b))
	}
}

func TestSprintfBasic(t *testing.T) {
	a := alloc.StdAllocator()
	name, _ := FromBytes(a, []byte("picogo"))
	s, err := Sprintf(a, "%s v%d.%d (%c)", name, 1, 0, Char('!'))
	if err != nil {
		t.Fatalf("Sprintf failed: %v", err)
	}
	b, err := s.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if string(b) != "picogo v1.0 (!)" {
		t.Errorf("expected %q, got %q", "picogo v1.0 (!)", b)
	}
}

func TestSprintfPercentEscape(t *testing.T) {
	a := alloc.StdAllocator()
	s, err := Sprintf(a, "100%%")
	if err != nil {
		t.Fatalf("Sprintf failed: %v", err)
	}
	b, _ := s.Bytes()
	if string(b) != "100%" {
		t.Errorf("expected %q, got %q", "100%", b)
	}
}
