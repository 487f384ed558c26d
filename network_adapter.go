package worldstate

import "github.com/parallelchain-io/go-world-state/network"

// networkStorageAdapter satisfies network.Storage over a StorageTrie. The
// network account's own storage schema
// (original_source/src/network/network_account.rs's NetworkAccountStorage
// trait) carries no error channel at all: every accessor returns a bare
// value. This adapter panics on an underlying MPT error rather than
// inventing one to pass through — a trie error against the same backend
// and session every other World State operation is using means the
// session is already corrupt, not a condition the caller could act on.
type networkStorageAdapter struct {
	st *StorageTrie
}

func (a networkStorageAdapter) Get(key []byte) ([]byte, bool) {
	v, ok, err := a.st.Get(key)
	if err != nil {
		panic(err)
	}
	return v, ok
}

func (a networkStorageAdapter) Contains(key []byte) bool {
	ok, err := a.st.Contains(key)
	if err != nil {
		panic(err)
	}
	return ok
}

func (a networkStorageAdapter) Set(key, value []byte) {
	if err := a.st.Set(key, value); err != nil {
		panic(err)
	}
}

func (a networkStorageAdapter) Delete(key []byte) {
	if _, err := a.st.Remove(key); err != nil {
		panic(err)
	}
}
