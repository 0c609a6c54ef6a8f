package runtime

import (
	"encoding/binary"
	"runtime"
	"unsafe"

	"golang.org/x/exp/slices"
)

// detectFeatures returns the feature-symbol names the bootstrap
// sequencer's Phase F pushes onto `features`, in the exact order
// state.c's pic_init_features pushes them: picrin/ieee-float first,
// then OS family tags, then architecture, then data model, then byte
// order (SPEC_FULL.md §3).
//
// Grounded on state.c's pic_init_features, with GOOS/GOARCH substituted
// for the original's #ifdef ladder (Go has no preprocessor; runtime.GOOS
// and runtime.GOARCH are resolved at build time the same way the C
// macros are) and byte-order detection grounded on
// _examples/golang-debug/arch/arch.go's `ByteOrder binary.ByteOrder`
// modeling of endianness as data.
func detectFeatures() []string {
	var features []string
	features = append(features, "picrin", "ieee-float")

	switch runtime.GOOS {
	case "linux":
		features = append(features, "posix", "unix", "gnu-linux")
	case "darwin", "freebsd", "netbsd", "openbsd", "dragonfly":
		features = append(features, "posix", "unix")
		if runtime.GOOS == "freebsd" {
			features = append(features, "freebsd")
		}
	case "windows":
		features = append(features, "windows")
	}

	switch runtime.GOARCH {
	case "386":
		features = append(features, "i386")
	case "amd64":
		features = append(features, "x86-64")
	case "ppc64", "ppc64le":
		features = append(features, "ppc")
	case "arm64":
		features = append(features, "arm64")
	}

	if is64BitDataModel() {
		features = append(features, "lp64")
	} else {
		features = append(features, "ilp32")
	}

	if nativeByteOrder() == binary.LittleEndian {
		features = append(features, "little-endian")
	} else {
		features = append(features, "big-endian")
	}

	return features
}

// is64BitDataModel reports whether the native int is 64 bits wide,
// standing in for the original's __ILP32__/__LP64__ macro pair.
func is64BitDataModel() bool {
	return unsafe.Sizeof(int(0)) == 8
}

// nativeByteOrder detects the platform's byte order by probing a
// multi-byte value through unsafe.Pointer, grounded on
// _examples/golang-debug/arch/arch.go's representation of byte order as
// a binary.ByteOrder value rather than a build tag.
func nativeByteOrder() binary.ByteOrder {
	var i uint16 = 1
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// sortedFeatureNames returns names sorted for stable, platform-
// independent test assertions and debug rendering -- the runtime
// itself preserves push order (see roots.Features), this helper is for
// callers that only care about set membership.
func sortedFeatureNames(names []string) []string {
	out := slices.Clone(names)
	slices.Sort(out)
	return out
}
