// Package store implements the two collaborators the World State keeps
// outside of the MPT proper: the minimal read-only Backend contract (C1)
// and the KeyInstrumentedDB write-buffering overlay (C2). Both are grounded
// on the teacher's common.KVReader/KVWriter split and its buffered node
// store (iotaledger/trie.go mutable.nodeStoreBuffered).
package store

// Backend is the minimum read capability this layer needs from the
// physical key-value engine. It never fails observably: a missing key or a
// backend error are both surfaced as (nil, false) — see spec.md §4.1.
type Backend interface {
	Get(key []byte) ([]byte, bool)
}

// MemBackend is an in-memory Backend, the test fixture equivalent of the
// teacher's common.NewInMemoryKVStore. It also implements Apply so tests can
// round-trip a Batch through a fresh backend (spec.md §8, "Round-trip").
type MemBackend map[string][]byte

// NewMemBackend returns an empty in-memory Backend.
func NewMemBackend() MemBackend {
	return make(MemBackend)
}

func (m MemBackend) Get(key []byte) ([]byte, bool) {
	v, ok := m[string(key)]
	return v, ok
}

// Apply applies a close-batch to m: inserts overwrite, deletes ignore
// absent keys (spec.md §6, "Close-batch surface").
func (m MemBackend) Apply(b Batch) {
	for k, v := range b.Inserts {
		m[k] = v
	}
	for k := range b.Deletes {
		delete(m, k)
	}
}
