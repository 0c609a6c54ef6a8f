package runtime

// Thunk is a zero-argument callback run on entry to or exit from a
// dynamic-wind checkpoint.
type Thunk func()

// checkpoint is one frame of the dynamic-wind chain: a singly-linked
// stack carrying optional in/out thunks and a depth counter (spec
// §3.3: "a singly-linked stack of checkpoints, each with optional
// in/out thunks and a depth counter; the current cp points to the
// deepest active checkpoint").
//
// Grounded on state.c's pic_checkpoint, and structurally on the
// teacher's DynamicMemoryFrame/MemoryFrameStack singly-linked,
// depth-tracked stack (runtime/checkpoint_src.go.bak).
type checkpoint struct {
	prev  *checkpoint
	depth int
	in    Thunk
	out   Thunk
}

// checkpointChain owns the current (deepest) checkpoint.
type checkpointChain struct {
	cp *checkpoint
}

// newCheckpointChain builds the chain with a root checkpoint of depth
// 0 and no thunks (spec §4.3 Phase E).
func newCheckpointChain() *checkpointChain {
	return &checkpointChain{cp: &checkpoint{depth: 0}}
}

// Depth reports the current (deepest) checkpoint's depth.
func (c *checkpointChain) Depth() int {
	if c.cp == nil {
		return -1
	}
	return c.cp.depth
}

// Push enters a new dynamic-wind checkpoint, running in immediately if
// present, and returns the new depth.
func (c *checkpointChain) Push(in, out Thunk) int {
	if in != nil {
		in()
	}
	next := &checkpoint{prev: c.cp, depth: c.cp.depth + 1, in: in, out: out}
	c.cp = next
	T().Debugf("runtime: entered checkpoint at depth %d", next.depth)
	return next.depth
}

// Pop exits the current checkpoint, running its out thunk if present,
// and returns to the parent checkpoint. Popping the root checkpoint
// (depth 0) is a no-op, matching invariant S4 ("depth is monotone
// along prev links in one direction" -- the root never retreats
// further).
func (c *checkpointChain) Pop() {
	if c.cp == nil || c.cp.prev == nil {
		return
	}
	if c.cp.out != nil {
		c.cp.out()
	}
	T().Debugf("runtime: exited checkpoint at depth %d", c.cp.depth)
	c.cp = c.cp.prev
}

// UnwindAll invokes every active checkpoint's out thunk, from deepest
// to root, and leaves the chain empty, root included, so that Depth
// reports -1 afterwards (spec §4.4
// Teardown Sequencer step 1: "For each checkpoint on the chain, from
// deepest to root, invoke its out thunk if present ... Pop to the
// next.").
//
// Grounded on state.c's pic_close "while (pic->cp) { if (pic->cp->out)
// ...; pic->cp = pic->cp->prev; }" loop.
func (c *checkpointChain) UnwindAll() {
	for c.cp != nil {
		if c.cp.out != nil {
			c.cp.out()
		}
		c.cp = c.cp.prev
	}
	T().Debugf("runtime: unwound entire checkpoint chain")
}
