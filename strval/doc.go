/*
Package strval implements the Scheme-level string value: a heap object
holding exactly one reference to a rope.Rope root (spec §3.2/§4.2). It
exposes the R7RS string primitive surface named in spec §6 -- string?,
string, make-string, string-length, string-ref, string-set!,
string-copy, string-copy!, string-fill!, string-append, string-map,
string-for-each, list->string, string->list, and the string=?/<?/>?/
<=?/>=? comparison family -- plus a recursive-descent Sprintf in the
style of the original's pic_vstrf_value.

Mutation (SetByte, CopyFrom, Fill) is destructive at this API's surface
but copy-on-write underneath: each builds a replacement rope via
rope.Slice/rope.Concat and atomically swaps the String's root, leaving
any other String that shared the old rope untouched.

Grounded on _examples/original_source/lib/string.c.
*/
package strval
