/*
Package picogo is the runtime core of a small R7RS-flavored Scheme
interpreter. It is deliberately narrow: it covers interpreter-instance
lifecycle and the persistent string engine backing every Scheme string
value, leaving the bytecode VM loop, reader/printer, macro expander,
error-signaling machinery, I/O port layer, tracing GC, and individual
primitive libraries as external collaborators. Package structure is as
follows:

■ rope: Package rope implements a reference-counted, persistent rope
data structure with lazy slicing, O(1) concatenation and
path-compressing flattening.

■ strval: Package strval implements Scheme string values on top of
rope, including the R7RS string primitives.

■ alloc: Package alloc models the C-style allocator contract
((ptr, size) -> ptr) the core is built against, plus counting and
failure-injecting allocators for tests.

■ symtab: Package symtab implements the interned symbol table used to
canonicalize syntactic keywords and primitive operator names.

■ heap: Package heap specifies the contract this core requires from an
external tracing garbage collector.

■ port: Package port wraps the three standard I/O streams as Scheme
port objects.

■ runtime: Package runtime owns the interpreter state container: VM
stacks, GC arena, root tables, the dynamic-wind checkpoint chain, and
the bootstrap/teardown sequencers.

The base package contains data types shared across the other packages.

License

Governed by a 3-Clause BSD license.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package picogo
