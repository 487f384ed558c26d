// Package triekey builds and parses the physical-adjacent logical keys used
// by the accounts trie and storage tries (spec.md C5), grounded directly on
// original_source/src/trie_key.rs's TrieKey<V>.
package triekey

import "github.com/parallelchain-io/go-world-state/store"

// AddressLength is the fixed size, in bytes, of an account address.
const AddressLength = 32

// Address identifies an account: an externally-owned account or a contract
// account. Defined here, the lowest layer that needs it, and re-exported by
// the root package as a type alias.
type Address [AddressLength]byte

func (a Address) Bytes() []byte {
	b := make([]byte, AddressLength)
	copy(b, a[:])
	return b
}

func AddressFromBytes(b []byte) (Address, bool) {
	var a Address
	if len(b) != AddressLength {
		return a, false
	}
	copy(a[:], b)
	return a, true
}

// AccountField names one of the fields addressed per account in the
// accounts trie.
type AccountField byte

const (
	FieldNonce AccountField = iota
	FieldBalance
	FieldCode
	FieldCbiVersion
	FieldStorageRoot
)

func (f AccountField) String() string {
	switch f {
	case FieldNonce:
		return "Nonce"
	case FieldBalance:
		return "Balance"
	case FieldCode:
		return "Code"
	case FieldCbiVersion:
		return "CbiVersion"
	case FieldStorageRoot:
		return "StorageRoot"
	default:
		return "Unknown"
	}
}

func (f AccountField) Valid() bool {
	return f <= FieldStorageRoot
}

// keyVisibility is V1's one-byte tag distinguishing externally-visible
// lookups (storage keys) from protected ones (account-field keys). V2 drops
// it entirely in favor of the overlay's own tag byte (store.domainTag).
type keyVisibility byte

const (
	visibilityPublic    keyVisibility = 0
	visibilityProtected keyVisibility = 1
)

// AccountKey builds the logical accounts-trie key for (address, field).
//
//	V1: address || Protected || field
//	V2: address || field
func AccountKey(address Address, field AccountField, version store.Version) []byte {
	if version == store.V1 {
		out := make([]byte, 0, AddressLength+2)
		out = append(out, address[:]...)
		out = append(out, byte(visibilityProtected))
		out = append(out, byte(field))
		return out
	}
	out := make([]byte, 0, AddressLength+1)
	out = append(out, address[:]...)
	out = append(out, byte(field))
	return out
}

// StorageKey builds the logical storage-trie key for a caller's raw key.
//
//	V1: Public || key
//	V2: key
func StorageKey(key []byte, version store.Version) []byte {
	if version == store.V1 {
		out := make([]byte, 0, len(key)+1)
		out = append(out, byte(visibilityPublic))
		out = append(out, key...)
		return out
	}
	out := make([]byte, len(key))
	copy(out, key)
	return out
}

// AccountFieldOf extracts the AccountField tag from an accounts-trie key.
func AccountFieldOf(key []byte, version store.Version) (AccountField, error) {
	idx := AddressLength
	if version == store.V1 {
		idx++
	}
	if len(key) <= idx {
		return 0, ErrInvalidAccountField
	}
	f := AccountField(key[idx])
	if !f.Valid() {
		return 0, ErrInvalidAccountField
	}
	return f, nil
}

// AddressOf extracts the address prefix common to every accounts-trie key,
// regardless of version.
func AddressOf(key []byte) (Address, error) {
	if len(key) < AddressLength {
		return Address{}, ErrInvalidPublicAddress
	}
	var a Address
	copy(a[:], key[:AddressLength])
	return a, nil
}

// StripVisibility drops the V1 visibility byte from a storage key, exposing
// the caller's original raw key. It is a no-op under V2, where no such byte
// was ever added.
func StripVisibility(key []byte, version store.Version) ([]byte, error) {
	if version != store.V1 {
		return key, nil
	}
	if len(key) < 1 {
		return nil, ErrOther
	}
	return key[1:], nil
}
