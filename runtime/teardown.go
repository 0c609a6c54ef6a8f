package runtime

// Close tears the state down, in the exact order spec §4.4 prescribes.
//
// Grounded on state.c's pic_close.
func (s *State) Close() error {
	// 1. Unwind every checkpoint, deepest to root, running out thunks.
	s.Checkpoints.UnwindAll()

	// 2. Free the heap-owned byte buffers of every symbol-table entry's
	// name.
	s.Symbols.ReleaseNames()

	// 3. Clear every root: reset stacks to their bases, reset arena_idx
	// to 0, assign the error slot the sentinel, drop globals/macros/
	// attrs/features/libs.
	s.Values.Reset()
	s.CallInfo.Reset()
	s.Rescue.Reset()
	s.Arena.Clear()
	s.Err = errNoError
	s.Roots.Clear()

	// 4. Run a full GC pass (now every object is unreachable).
	if err := s.Heap.RunGC(); err != nil {
		return err
	}

	// 5. Close the heap, close the reader. This core has no reader
	// component (spec §1 Out of scope: the reader/scanner layer); only
	// the heap is closed.
	if err := s.Heap.Close(); err != nil {
		return err
	}

	// 6-8. Free the stack/call-info/rescue/arena buffers, destroy the
	// symbol table structure, free the state container itself: all
	// handled by Go's own garbage collector once s becomes unreachable
	// from the caller. Standard ports are not closed here -- they wrap
	// process-lifetime os.Stdin/Stdout/Stderr, matching the original's
	// treatment of pic->xSTDIN etc. as owned-but-not-OS-closed handles.
	T().Debugf("runtime: teardown complete")
	return nil
}
