package strval

import "errors"

// Sentinel error kinds raised by this package's primitives, per spec §7.
// ErrAllocationFailed is not redeclared here; callers test for it via
// errors.Is against alloc.ErrAllocationFailed, since this package only
// ever surfaces allocation failure by propagating what the allocator
// returned.
var (
	// ErrIndexOutOfRange: string-ref/string-set!/string-copy/etc. with
	// an out-of-bounds k/start/end.
	ErrIndexOutOfRange = errors.New("picogo: string index out of range")

	// ErrTypeMismatch: a primitive expecting a string, character, or
	// list received a value of another kind.
	ErrTypeMismatch = errors.New("picogo: type mismatch")

	// ErrBadArgument: e.g. make-string with negative length;
	// string-map/string-for-each with zero string arguments.
	ErrBadArgument = errors.New("picogo: bad argument")

	// ErrEmbeddedNull: CStr called on a string containing a zero byte.
	ErrEmbeddedNull = errors.New("picogo: embedded null byte")
)
