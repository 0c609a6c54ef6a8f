package symtab

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// ReverseIndex returns every interned name in sorted order, backed by
// a treeset so the teardown sequencer's symbol-name sweep (spec §4.4
// step 2: "Free the heap-owned byte buffers of every symbol-table
// entry's name") walks names deterministically rather than in Go's
// randomized map iteration order -- useful for reproducible teardown
// traces and tests.
//
// Grounded on the teacher's use of emirpasic/gods/sets/treeset
// (lr/tables.go) for deduplicated, ordered lookup sets.
func (t *Table) ReverseIndex() []string {
	set := treeset.NewWith(utils.StringComparator)
	t.Each(func(name string, _ *Symbol) {
		set.Add(name)
	})
	names := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		names = append(names, v.(string))
	}
	return names
}
