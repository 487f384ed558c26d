// Package worldstate implements the authenticated key-value World State of a
// blockchain: an accounts trie mapping addresses to account fields, and a
// per-contract storage trie, both backed by a Merkle-Patricia Trie over a
// caller-supplied key-value backend.
package worldstate

import "github.com/parallelchain-io/go-world-state/store"

// Version selects the physical key layout and the MPT node layout used by a
// WorldState session. It plays the same role the teacher's CommitmentModel
// constructors play for path arity and hash size: a small closed choice
// fixed once at construction and carried through every operation. The type
// itself lives in package store (the lowest-level component whose behavior
// actually branches on it); this is a re-export for callers of this
// package.
type Version = store.Version

const (
	// V1 lays out accounts keys as address||0x01||field and storage keys as
	// 0x00||key, with no reserved global prefix byte, and builds its MPT
	// with branch nodes only (no extension nodes).
	V1 = store.V1
	// V2 drops the embedded visibility byte, reserves a one-byte global
	// prefix (0x00 accounts, 0x01 storage) on every physical key, and
	// builds its MPT with branch and extension nodes.
	V2 = store.V2
)
