/*
Package rope implements the persistent, reference-counted string
segment tree backing every Scheme string value in this core.

A rope is either a leaf or an internal node. Leaves come in three
flavors: owned (carries its own null-terminated inline buffer, obtained
from an alloc.Allocator), literal (a zero-copy reference to a
caller-supplied, presumed program-static Go string) and borrowed (a
zero-copy slice into the inline buffer of some owned or literal "root"
leaf, contributing to that root's reference count). Internal nodes hold
two child references and represent the concatenation of the strings
their children represent.

Concatenation is O(1) and does not rebalance; depth is unbounded.
Flattening is the only rebalancing mechanism: it materializes a rope's
full byte sequence into one contiguous, null-terminated buffer and, as
a side effect, mutates every internal node it visits in place into a
borrowed leaf pointing into that buffer (path compression); a leaf
that is flattened is re-pointed at that buffer too. A second flatten of
the same rope handle is therefore O(1).

Grounded on extlib/benz/state.c's sibling file lib/string.c from the
original picrin source (see _examples/original_source), which this
package is a direct, idiomatic-Go port of.
*/
package rope
