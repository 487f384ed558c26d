package worldstate

import (
	"github.com/parallelchain-io/go-world-state/mpt"
	"github.com/parallelchain-io/go-world-state/network"
	"github.com/parallelchain-io/go-world-state/store"
	"golang.org/x/xerrors"
)

// Options configures a WorldState's hash primitive and MPT node codec at
// construction time — both declared out of scope in spec.md §1 and
// consumed here as interfaces. The zero value selects the defaults,
// Keccak-256 (mpt.Keccak256Hasher) and the RLP codec (mpt.DefaultCodec).
type Options struct {
	Hasher mpt.Hasher
	Codec  mpt.NodeCodec
}

func (o Options) resolve() (mpt.Hasher, mpt.NodeCodec) {
	hasher := o.Hasher
	if hasher == nil {
		hasher = mpt.Keccak256Hasher{}
	}
	codec := o.Codec
	if codec == nil {
		codec = mpt.DefaultCodec
	}
	return hasher, codec
}

// WorldState owns the accounts trie and the working set of storage tries
// touched since New/Open (C8), grounded on
// original_source/src/world_state.rs's WorldState.
type WorldState struct {
	backend      store.Backend
	version      Version
	hasher       mpt.Hasher
	codec        mpt.NodeCodec
	accounts     *AccountsTrie
	storageTries map[Address]*StorageTrie
}

// New initializes a genesis WorldState: an empty accounts trie and no
// cached storage tries. Meaningful only once per backend.
func New(backend store.Backend, version Version, opts Options) *WorldState {
	hasher, codec := opts.resolve()
	return &WorldState{
		backend:      backend,
		version:      version,
		hasher:       hasher,
		codec:        codec,
		accounts:     newAccountsTrie(backend, version, hasher, codec),
		storageTries: make(map[Address]*StorageTrie),
	}
}

// Open resumes a WorldState at a previously committed state root.
func Open(backend store.Backend, root Digest, version Version, opts Options) *WorldState {
	hasher, codec := opts.resolve()
	return &WorldState{
		backend:      backend,
		version:      version,
		hasher:       hasher,
		codec:        codec,
		accounts:     openAccountsTrie(backend, root, version, hasher, codec),
		storageTries: make(map[Address]*StorageTrie),
	}
}

// Version reports the WorldState's key-layout and MPT-layout version.
func (w *WorldState) Version() Version { return w.version }

// Accounts returns the accounts trie.
func (w *WorldState) Accounts() *AccountsTrie { return w.accounts }

// Storage returns the storage trie for address (spec.md §4.8): it opens
// the trie from the storage root recorded in the accounts trie, creates a
// new empty one (writing its zero root back) if address has never had one,
// or returns the already-cached instance.
func (w *WorldState) Storage(address Address) (*StorageTrie, error) {
	if st, ok := w.storageTries[address]; ok {
		return st, nil
	}

	hasRoot, err := w.accounts.ContainsStorageRoot(address)
	if err != nil {
		return nil, err
	}

	var st *StorageTrie
	if hasRoot {
		root, err := w.accounts.StorageRoot(address)
		if err != nil {
			return nil, err
		}
		st = openStorageTrie(w.backend, address, root, w.version, w.hasher, w.codec)
	} else {
		st = newStorageTrie(w.backend, address, w.version, w.hasher, w.codec)
		if err := w.accounts.setStorageRoot(address, st.RootDigest()); err != nil {
			return nil, err
		}
	}

	w.storageTries[address] = st
	return st, nil
}

// NetworkAccount returns the structured accessor over the reserved network
// account's storage trie (C10).
func (w *WorldState) NetworkAccount() (*network.Account, error) {
	st, err := w.Storage(network.NetworkAddress)
	if err != nil {
		return nil, xerrors.Errorf("worldstate: network account: %w", err)
	}
	return network.NewAccount(networkStorageAdapter{st: st}), nil
}

// Close commits every cached storage trie, writes each new storage root
// back into the accounts trie, then commits the accounts trie, merging
// every batch into one (spec.md §4.8, "Close protocol"). Any per-step MPT
// error aborts close; the WorldState is then unsafe to reuse.
func (w *WorldState) Close() (Digest, store.Batch, error) {
	merged := store.NewBatch()

	for address, st := range w.storageTries {
		root, batch, err := st.close()
		if err != nil {
			return Digest{}, store.Batch{}, xerrors.Errorf("worldstate: close: %w", err)
		}
		if err := w.accounts.setStorageRoot(address, root); err != nil {
			return Digest{}, store.Batch{}, xerrors.Errorf("worldstate: close: %w", err)
		}
		merged.Merge(batch)
	}

	accountsRoot, accountsBatch, err := w.accounts.close()
	if err != nil {
		return Digest{}, store.Batch{}, xerrors.Errorf("worldstate: close: %w", err)
	}
	merged.Merge(accountsBatch)

	return accountsRoot, merged, nil
}
