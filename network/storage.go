// Package network implements the reserved Network Account's storage schema
// (spec.md C10): the dictionary and ordered-collection accessors ParallelChain
// F layers over the storage trie belonging to the all-zero network address,
// grounded on original_source/src/network/*.rs and
// original_source/src/network_account_storage/*.rs.
package network

import "github.com/parallelchain-io/go-world-state/triekey"

// Address is the 32-byte account address type network values key by.
type Address = triekey.Address

const triekeyAddressLength = triekey.AddressLength

// AddressFromBytes copies b (which must be exactly triekey.AddressLength
// bytes) into an Address.
func AddressFromBytes(b []byte) (Address, bool) {
	return triekey.AddressFromBytes(b)
}

// Storage is the minimal key/value surface the network accessors need.
// A StorageTrie session (opened against NetworkAddress) satisfies this
// through the root package's error-free adapter, matching the teacher/spec convention of a narrow capability
// interface rather than a concrete trie dependency.
type Storage interface {
	Get(key []byte) ([]byte, bool)
	Contains(key []byte) bool
	Set(key []byte, value []byte)
	Delete(key []byte)
}

// Keyed is implemented by every value an IndexMap/IndexHeap stores: it names
// the logical key the value is reverse-indexed under.
type Keyed interface {
	Key() []byte
}
