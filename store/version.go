package store

import "fmt"

// Version selects the physical key layout used by an Overlay (and, via the
// root package, the MPT node layout too). It is defined here, in the
// lowest-level package, because the overlay's physical-key prefixing
// (spec.md §4.2) is the one piece of version-dependent behavior every other
// component builds on.
type Version int

const (
	// V1 prefixes physical keys with only the domain (empty for the
	// accounts trie, the owning address for a storage trie).
	V1 Version = iota
	// V2 additionally reserves a one-byte global tag ahead of the domain:
	// 0x00 for the accounts trie, 0x01 for any storage trie.
	V2
)

func (v Version) String() string {
	switch v {
	case V1:
		return "V1"
	case V2:
		return "V2"
	default:
		return fmt.Sprintf("Version(%d)", int(v))
	}
}

// UsesExtensionNodes reports whether this version's MPT layout includes
// dedicated extension nodes (V2) or branch nodes only (V1).
func (v Version) UsesExtensionNodes() bool {
	return v == V2
}
