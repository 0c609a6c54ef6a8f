package picogo

import "fmt"

// --- Byte ranges --------------------------------------------------------

// Range captures a half-open byte interval [From, To) into a string or
// rope. rope.SliceRange and strval.String.SubRange accept a Range as an
// alternative to a bare (i, j int) pair, for callers that already carry
// the interval as a value rather than two immediate literals.
type Range [2]int // [x…y)

// NewRange builds a Range. Callers are expected to have already validated
// user-supplied indices (see strval.ErrIndexOutOfRange) before reaching here;
// NewRange only panics on a programmer error (to < from), not a user error.
func NewRange(from, to int) Range {
	if to < from {
		panic(fmt.Sprintf("picogo: invalid range [%d, %d)", from, to))
	}
	return Range{from, to}
}

// From returns the start offset of the range.
func (r Range) From() int {
	return r[0]
}

// To returns the end offset of the range (exclusive).
func (r Range) To() int {
	return r[1]
}

// Len returns the length of the range, To()-From().
func (r Range) Len() int {
	return r[1] - r[0]
}

// IsEmpty is a predicate: does this range cover zero bytes?
func (r Range) IsEmpty() bool {
	return r[0] == r[1]
}

// Shift returns a copy of r translated by -by. rope.Slice does not use
// it; it shifts its bare int bounds directly when recursing into the
// right child of a rope node.
func (r Range) Shift(by int) Range {
	return Range{r[0] - by, r[1] - by}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d…%d)", r[0], r[1])
}
