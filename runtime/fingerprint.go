package runtime

import (
	"github.com/cnf/structhash"

	"github.com/npillmayer/picogo/symtab"
)

// fingerprintView is the structural shape Fingerprint hashes: the
// post-bootstrap root-table sizes and feature list, not pointer
// identities (which differ across otherwise-identical Open calls).
type fingerprintView struct {
	Features    []string
	GlobalCount int
	MacroCount  int
	LibCount    int
	SymbolCount int
}

// Fingerprint computes a diagnostic structural hash of the state's
// post-bootstrap root tables, used by bootstrap-determinism tests (two
// Open calls with the same allocator/config should produce the same
// fingerprint).
//
// Grounded on github.com/cnf/structhash, a teacher go.mod dependency
// with no use site in the filtered teacher excerpt (SPEC_FULL.md §2);
// wired here as the one diagnostic surface this core has an actual use
// for.
func (s *State) Fingerprint() (string, error) {
	view := fingerprintView{
		Features:    sortedFeatureNames(featureNames(s.Roots.Features())),
		GlobalCount: s.Roots.globals.Size(),
		MacroCount:  s.Roots.macros.Size(),
		LibCount:    s.Roots.libs.Size(),
		SymbolCount: s.Symbols.Size(),
	}
	return structhash.Hash(view, 1)
}

func featureNames(syms []*symtab.Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = s.Name
	}
	return out
}
