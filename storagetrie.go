package worldstate

import (
	"github.com/parallelchain-io/go-world-state/mpt"
	"github.com/parallelchain-io/go-world-state/store"
	"github.com/parallelchain-io/go-world-state/triekey"
	"golang.org/x/xerrors"
)

// StorageTrie is one contract account's key/value storage (C7), grounded on
// original_source/src/storage_trie.rs's StorageTrie.
type StorageTrie struct {
	trie    *mpt.Trie
	overlay *store.Overlay
	version Version
}

func newStorageTrie(backend store.Backend, address Address, version Version, hasher mpt.Hasher, codec mpt.NodeCodec) *StorageTrie {
	overlay := store.NewOverlay(backend, address.Bytes(), version)
	return &StorageTrie{trie: mpt.New(overlay, version, hasher, codec), overlay: overlay, version: version}
}

func openStorageTrie(backend store.Backend, address Address, root Digest, version Version, hasher mpt.Hasher, codec mpt.NodeCodec) *StorageTrie {
	overlay := store.NewOverlay(backend, address.Bytes(), version)
	mroot, _ := mpt.DigestFromBytes(root.Bytes())
	return &StorageTrie{trie: mpt.Open(overlay, mroot, version, hasher, codec), overlay: overlay, version: version}
}

func (s *StorageTrie) storageKey(key []byte) []byte {
	return triekey.StorageKey(key, s.version)
}

// RootDigest returns the trie's current root digest. If the trie has
// pending mutations, this runs a commit pass first (see mpt.Trie.RootDigest).
func (s *StorageTrie) RootDigest() Digest {
	return DigestFromBytes(s.trie.RootDigest().Bytes())
}

// Get returns the value at key, if any.
func (s *StorageTrie) Get(key []byte) ([]byte, bool, error) {
	v, ok, err := s.trie.Get(s.storageKey(key))
	if err != nil {
		return nil, false, xerrors.Errorf("worldstate: storage trie get: %w", err)
	}
	return v, ok, nil
}

// Contains reports whether key exists in the storage trie.
func (s *StorageTrie) Contains(key []byte) (bool, error) {
	ok, err := s.trie.Contains(s.storageKey(key))
	if err != nil {
		return false, xerrors.Errorf("worldstate: storage trie contains: %w", err)
	}
	return ok, nil
}

// Set inserts or overwrites the value at key.
func (s *StorageTrie) Set(key, value []byte) error {
	if err := s.trie.Set(s.storageKey(key), value); err != nil {
		return xerrors.Errorf("worldstate: storage trie set: %w", err)
	}
	return nil
}

// Remove deletes key, reporting whether it was present.
func (s *StorageTrie) Remove(key []byte) (bool, error) {
	existed, err := s.trie.Remove(s.storageKey(key))
	if err != nil {
		return false, xerrors.Errorf("worldstate: storage trie remove: %w", err)
	}
	return existed, nil
}

// GetWithProof returns key's value together with a proof tagged at the
// STORAGE proof level (spec.md §4.7).
func (s *StorageTrie) GetWithProof(key []byte) ([]byte, bool, []ProofNode, error) {
	value, found, nodes, err := s.trie.GetWithProof(s.storageKey(key))
	if err != nil {
		return nil, false, nil, xerrors.Errorf("worldstate: storage trie proof: %w", err)
	}
	proof := make([]ProofNode, len(nodes))
	for i, n := range nodes {
		proof[i] = taggedProofNode(ProofLevelStorage, n)
	}
	return value, found, proof, nil
}

// RemoveTrie deletes every key in the trie by iterating then batch-removing,
// matching original_source/src/storage_trie.rs's remove_trie. It does not
// itself remove the trie-root sentinel; Deinit during upgrade does that
// (spec.md §4.7).
func (s *StorageTrie) RemoveTrie() error {
	var keys [][]byte
	err := s.trie.IterateAll(func(key, _ []byte) error {
		keys = append(keys, append([]byte(nil), key...))
		return nil
	})
	if err != nil {
		return xerrors.Errorf("worldstate: storage trie remove trie: %w", err)
	}
	for _, k := range keys {
		if _, err := s.trie.Remove(k); err != nil {
			return xerrors.Errorf("worldstate: storage trie remove trie: %w", err)
		}
	}
	return nil
}

func (s *StorageTrie) close() (Digest, store.Batch, error) {
	root, err := s.trie.Close()
	if err != nil {
		return Digest{}, store.Batch{}, xerrors.Errorf("worldstate: storage trie close: %w", err)
	}
	return DigestFromBytes(root.Bytes()), s.overlay.Close(), nil
}
