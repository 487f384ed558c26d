package worldstate

import (
	"github.com/parallelchain-io/go-world-state/mpt"
	"github.com/parallelchain-io/go-world-state/store"
	"github.com/parallelchain-io/go-world-state/triekey"
	"golang.org/x/xerrors"
)

// AccountsTrie is the per-address field store (C6): nonce, balance, code,
// CBI version, and storage root, each independently addressable and
// independently provable. Grounded on
// original_source/src/accounts_trie.rs's AccountsTrie.
type AccountsTrie struct {
	trie    *mpt.Trie
	overlay *store.Overlay
	version Version
}

func newAccountsTrie(backend store.Backend, version Version, hasher mpt.Hasher, codec mpt.NodeCodec) *AccountsTrie {
	overlay := store.NewOverlay(backend, nil, version)
	return &AccountsTrie{trie: mpt.New(overlay, version, hasher, codec), overlay: overlay, version: version}
}

func openAccountsTrie(backend store.Backend, root Digest, version Version, hasher mpt.Hasher, codec mpt.NodeCodec) *AccountsTrie {
	overlay := store.NewOverlay(backend, nil, version)
	mroot, _ := mpt.DigestFromBytes(root.Bytes())
	return &AccountsTrie{trie: mpt.Open(overlay, mroot, version, hasher, codec), overlay: overlay, version: version}
}

func (a *AccountsTrie) fieldKey(address Address, field AccountField) []byte {
	return triekey.AccountKey(address, field, a.version)
}

func (a *AccountsTrie) getUint64(address Address, field AccountField) (uint64, error) {
	b, ok, err := a.trie.Get(a.fieldKey(address, field))
	if err != nil {
		return 0, xerrors.Errorf("worldstate: accounts trie get %s: %w", field, err)
	}
	if !ok {
		return 0, nil
	}
	v, okDec := decodeUint64(b)
	if !okDec {
		return 0, xerrors.Errorf("worldstate: accounts trie decode %s: %w", field, ErrDecodeError)
	}
	return v, nil
}

// Nonce returns address's nonce, 0 if never set.
func (a *AccountsTrie) Nonce(address Address) (uint64, error) {
	return a.getUint64(address, FieldNonce)
}

// Balance returns address's balance, 0 if never set.
func (a *AccountsTrie) Balance(address Address) (uint64, error) {
	return a.getUint64(address, FieldBalance)
}

// Code returns address's contract code, nil if never set.
func (a *AccountsTrie) Code(address Address) ([]byte, error) {
	b, ok, err := a.trie.Get(a.fieldKey(address, FieldCode))
	if err != nil {
		return nil, xerrors.Errorf("worldstate: accounts trie get code: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return b, nil
}

// CbiVersion returns address's CBI version and whether it has ever been set.
func (a *AccountsTrie) CbiVersion(address Address) (uint32, bool, error) {
	b, ok, err := a.trie.Get(a.fieldKey(address, FieldCbiVersion))
	if err != nil {
		return 0, false, xerrors.Errorf("worldstate: accounts trie get cbi version: %w", err)
	}
	if !ok {
		return 0, false, nil
	}
	v, okDec := decodeUint32(b)
	if !okDec {
		return 0, false, xerrors.Errorf("worldstate: accounts trie decode cbi version: %w", ErrDecodeError)
	}
	return v, true, nil
}

// StorageRoot returns the storage root committed for address, or the zero
// digest if address has never had a storage trie opened.
func (a *AccountsTrie) StorageRoot(address Address) (Digest, error) {
	b, ok, err := a.trie.Get(a.fieldKey(address, FieldStorageRoot))
	if err != nil {
		return Digest{}, xerrors.Errorf("worldstate: accounts trie get storage root: %w", err)
	}
	if !ok {
		return Digest{}, nil
	}
	if len(b) != DigestLength {
		return Digest{}, xerrors.Errorf("worldstate: accounts trie decode storage root: %w", ErrDecodeError)
	}
	return DigestFromBytes(b), nil
}

// setStorageRoot is package-internal: only WorldState.Close, Storage and
// Upgrade ever write this field (spec.md §4.6, "set_storage_hash is package-internal").
func (a *AccountsTrie) setStorageRoot(address Address, root Digest) error {
	if err := a.trie.Set(a.fieldKey(address, FieldStorageRoot), root.Bytes()); err != nil {
		return xerrors.Errorf("worldstate: accounts trie set storage root: %w", err)
	}
	return nil
}

// SetNonce sets/updates address's nonce.
func (a *AccountsTrie) SetNonce(address Address, nonce uint64) error {
	if err := a.trie.Set(a.fieldKey(address, FieldNonce), encodeUint64(nonce)); err != nil {
		return xerrors.Errorf("worldstate: accounts trie set nonce: %w", err)
	}
	return nil
}

// SetBalance sets/updates address's balance.
func (a *AccountsTrie) SetBalance(address Address, balance uint64) error {
	if err := a.trie.Set(a.fieldKey(address, FieldBalance), encodeUint64(balance)); err != nil {
		return xerrors.Errorf("worldstate: accounts trie set balance: %w", err)
	}
	return nil
}

// SetCode sets/updates address's contract code.
func (a *AccountsTrie) SetCode(address Address, code []byte) error {
	if err := a.trie.Set(a.fieldKey(address, FieldCode), code); err != nil {
		return xerrors.Errorf("worldstate: accounts trie set code: %w", err)
	}
	return nil
}

// SetCbiVersion sets/updates address's CBI version.
func (a *AccountsTrie) SetCbiVersion(address Address, version uint32) error {
	if err := a.trie.Set(a.fieldKey(address, FieldCbiVersion), encodeUint32(version)); err != nil {
		return xerrors.Errorf("worldstate: accounts trie set cbi version: %w", err)
	}
	return nil
}

func (a *AccountsTrie) contains(address Address, field AccountField) (bool, error) {
	ok, err := a.trie.Contains(a.fieldKey(address, field))
	if err != nil {
		return false, xerrors.Errorf("worldstate: accounts trie contains %s: %w", field, err)
	}
	return ok, nil
}

func (a *AccountsTrie) ContainsNonce(address Address) (bool, error) {
	return a.contains(address, FieldNonce)
}

func (a *AccountsTrie) ContainsBalance(address Address) (bool, error) {
	return a.contains(address, FieldBalance)
}

func (a *AccountsTrie) ContainsCode(address Address) (bool, error) {
	return a.contains(address, FieldCode)
}

func (a *AccountsTrie) ContainsCbiVersion(address Address) (bool, error) {
	return a.contains(address, FieldCbiVersion)
}

func (a *AccountsTrie) ContainsStorageRoot(address Address) (bool, error) {
	return a.contains(address, FieldStorageRoot)
}

// proofFor wraps the accounts trie's GetWithProof, tagging every node with
// the ACCOUNTS proof level (spec.md §4.6).
func (a *AccountsTrie) proofFor(key []byte) ([]byte, bool, []ProofNode, error) {
	value, found, nodes, err := a.trie.GetWithProof(key)
	if err != nil {
		return nil, false, nil, xerrors.Errorf("worldstate: accounts trie proof: %w", err)
	}
	proof := make([]ProofNode, len(nodes))
	for i, n := range nodes {
		proof[i] = taggedProofNode(ProofLevelAccounts, n)
	}
	return value, found, proof, nil
}

func (a *AccountsTrie) NonceWithProof(address Address) (uint64, []ProofNode, error) {
	b, _, proof, err := a.proofFor(a.fieldKey(address, FieldNonce))
	if err != nil {
		return 0, nil, err
	}
	v, _ := decodeUint64(b)
	return v, proof, nil
}

func (a *AccountsTrie) BalanceWithProof(address Address) (uint64, []ProofNode, error) {
	b, _, proof, err := a.proofFor(a.fieldKey(address, FieldBalance))
	if err != nil {
		return 0, nil, err
	}
	v, _ := decodeUint64(b)
	return v, proof, nil
}

func (a *AccountsTrie) CodeWithProof(address Address) ([]byte, []ProofNode, error) {
	b, found, proof, err := a.proofFor(a.fieldKey(address, FieldCode))
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, proof, nil
	}
	return b, proof, nil
}

func (a *AccountsTrie) CbiVersionWithProof(address Address) (uint32, bool, []ProofNode, error) {
	b, found, proof, err := a.proofFor(a.fieldKey(address, FieldCbiVersion))
	if err != nil {
		return 0, false, nil, err
	}
	if !found {
		return 0, false, proof, nil
	}
	v, _ := decodeUint32(b)
	return v, true, proof, nil
}

func (a *AccountsTrie) StorageRootWithProof(address Address) (Digest, bool, []ProofNode, error) {
	b, found, proof, err := a.proofFor(a.fieldKey(address, FieldStorageRoot))
	if err != nil {
		return Digest{}, false, nil, err
	}
	if !found {
		return Digest{}, false, proof, nil
	}
	return DigestFromBytes(b), true, proof, nil
}

// All iterates the underlying trie, parses every key, and assembles an
// address -> Account map, matching original_source/src/accounts_trie.rs's
// all().
func (a *AccountsTrie) All() (map[Address]Account, error) {
	accounts := make(map[Address]Account)
	err := a.trie.IterateAll(func(key, value []byte) error {
		address, err := triekey.AddressOf(key)
		if err != nil {
			return xerrors.Errorf("worldstate: accounts trie all: %w", err)
		}
		field, err := triekey.AccountFieldOf(key, a.version)
		if err != nil {
			return xerrors.Errorf("worldstate: accounts trie all: %w", err)
		}
		account := accounts[address]
		switch field {
		case FieldNonce:
			v, ok := decodeUint64(value)
			if !ok {
				return xerrors.Errorf("worldstate: accounts trie all nonce: %w", ErrDecodeError)
			}
			account.Nonce = v
		case FieldBalance:
			v, ok := decodeUint64(value)
			if !ok {
				return xerrors.Errorf("worldstate: accounts trie all balance: %w", ErrDecodeError)
			}
			account.Balance = v
		case FieldCode:
			account.Code = append([]byte(nil), value...)
		case FieldCbiVersion:
			v, ok := decodeUint32(value)
			if !ok {
				return xerrors.Errorf("worldstate: accounts trie all cbi version: %w", ErrDecodeError)
			}
			account.CbiVersion = v
			account.HasCbi = true
		case FieldStorageRoot:
			if len(value) != DigestLength {
				return xerrors.Errorf("worldstate: accounts trie all storage root: %w", ErrDecodeError)
			}
			account.StorageRoot = DigestFromBytes(value)
			account.HasStorage = true
		}
		accounts[address] = account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// close commits the accounts trie's pending mutations and returns the new
// root digest together with the physical-key batch to persist.
func (a *AccountsTrie) close() (Digest, store.Batch, error) {
	root, err := a.trie.Close()
	if err != nil {
		return Digest{}, store.Batch{}, xerrors.Errorf("worldstate: accounts trie close: %w", err)
	}
	return DigestFromBytes(root.Bytes()), a.overlay.Close(), nil
}
