package worldstate

import "github.com/parallelchain-io/go-world-state/triekey"

// AddressLength is the fixed size, in bytes, of an account address.
const AddressLength = triekey.AddressLength

// DigestLength is the fixed size, in bytes, of a trie node digest / state
// root / storage root.
const DigestLength = 32

// Address identifies an account: an externally-owned account or a
// contract account. The canonical definition lives in package triekey,
// the lowest layer that needs it to build trie keys; this is a re-export
// for callers of this package.
type Address = triekey.Address

// Digest is a 32-byte cryptographic hash: a node digest when addressing MPT
// nodes, and a state/storage root when identifying an entire trie.
type Digest [DigestLength]byte

// IsZero reports whether d is the all-zero digest, used as the storage root
// of an account that has never had a storage trie opened.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// Bytes returns a freshly-allocated copy of the digest's bytes.
func (d Digest) Bytes() []byte {
	b := make([]byte, DigestLength)
	copy(b, d[:])
	return b
}

// DigestFromBytes copies b (which must be exactly DigestLength bytes) into a
// Digest. It panics on length mismatch; callers at trust boundaries should
// check len(b) first.
func DigestFromBytes(b []byte) Digest {
	var d Digest
	if len(b) != DigestLength {
		panic("worldstate: DigestFromBytes: wrong length")
	}
	copy(d[:], b)
	return d
}

// AddressFromBytes copies b (which must be exactly AddressLength bytes) into
// an Address. It panics on length mismatch.
func AddressFromBytes(b []byte) Address {
	a, ok := triekey.AddressFromBytes(b)
	if !ok {
		panic("worldstate: AddressFromBytes: wrong length")
	}
	return a
}

// Key is a caller-chosen or logical-trie key.
type Key = []byte

// Value is a stored value.
type Value = []byte

// AccountField names one of the optional fields addressed per account in
// the accounts trie. The canonical definition lives in package triekey.
type AccountField = triekey.AccountField

const (
	FieldNonce       = triekey.FieldNonce
	FieldBalance     = triekey.FieldBalance
	FieldCode        = triekey.FieldCode
	FieldCbiVersion  = triekey.FieldCbiVersion
	FieldStorageRoot = triekey.FieldStorageRoot
)

// ProofLevel tags every node in a proof list with which trie tier produced
// it, so a proof for a storage slot cannot be confused with a proof for an
// accounts-trie field even though both are lists of node encodings.
type ProofLevel byte

const (
	ProofLevelAccounts ProofLevel = 0x00
	ProofLevelStorage  ProofLevel = 0x01
)

// Account is the decoded set of optional fields held for one address in the
// accounts trie. A zero-value Account is exactly the documented default for
// an address that has never been written: nonce 0, balance 0, no code, no
// CBI version, no storage.
type Account struct {
	Nonce       uint64
	Balance     uint64
	Code        []byte
	CbiVersion  uint32
	HasCbi      bool
	StorageRoot Digest
	HasStorage  bool
}

// FullAccount is an Account together with its fully materialized storage
// (see original_source/src/states.rs Account::set_storages / storages). No
// function in this package builds one; callers assemble it themselves.
type FullAccount struct {
	Account
	Storage map[string][]byte
}
