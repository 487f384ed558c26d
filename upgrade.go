package worldstate

import (
	"github.com/parallelchain-io/go-world-state/triekey"
	"golang.org/x/xerrors"
)

// Upgrade migrates a V1 WorldState into a V2 WorldState whose observable
// (address, field) -> value and (address, storage key) -> value relations
// are identical (spec.md §4.9), grounded on
// original_source/src/accounts_trie.rs's AccountsTrie<V1>::upgrade and
// storage_trie.rs's StorageTrie<V1>::upgrade. State roots differ: V2 uses a
// different key schema and a different MPT node layout.
func Upgrade(v1 *WorldState) (*WorldState, error) {
	if v1.version != V1 {
		return nil, xerrors.Errorf("worldstate: upgrade: source is not a V1 world state: %w", ErrInvalidStateRoot)
	}

	// Step 0: drain every storage trie this session has cached. The accounts
	// trie's storage-root field is only ever refreshed by WorldState.Close
	// (worldstate.go), so a Storage() session that has written keys but was
	// never closed would otherwise still read back the stale (often empty)
	// root below, silently losing its writes. Committing here makes each
	// cached trie's own digests available from its own overlay buffer, so
	// step 6 can keep using the same trie object instead of reopening one
	// from the (now-current) persisted root. Only the trie is committed here;
	// its overlay is not drained, so the committed nodes stay readable.
	for address, st := range v1.storageTries {
		mroot, err := st.trie.Close()
		if err != nil {
			return nil, xerrors.Errorf("worldstate: upgrade: drain v1 storage: %w", err)
		}
		root := DigestFromBytes(mroot.Bytes())
		if err := v1.accounts.setStorageRoot(address, root); err != nil {
			return nil, xerrors.Errorf("worldstate: upgrade: drain v1 storage: %w", err)
		}
	}

	// Step 1: read every (address, field) out of the V1 accounts trie, and
	// separately remember the raw keys so they can be removed afterward.
	accounts, err := v1.accounts.All()
	if err != nil {
		return nil, xerrors.Errorf("worldstate: upgrade: read v1 accounts: %w", err)
	}
	var v1AccountKeys [][]byte
	if err := v1.accounts.trie.IterateAll(func(key, _ []byte) error {
		v1AccountKeys = append(v1AccountKeys, append([]byte(nil), key...))
		return nil
	}); err != nil {
		return nil, xerrors.Errorf("worldstate: upgrade: walk v1 accounts: %w", err)
	}

	// Step 2: batch-remove every key, leaving the trie empty, then deinit it.
	for _, k := range v1AccountKeys {
		if _, err := v1.accounts.trie.Remove(k); err != nil {
			return nil, xerrors.Errorf("worldstate: upgrade: clear v1 accounts: %w", err)
		}
	}
	if err := v1.accounts.trie.Deinit(v1.accounts.overlay); err != nil {
		return nil, xerrors.Errorf("worldstate: upgrade: deinit v1 accounts: %w", err)
	}

	// Step 3/4: the destination world state carries the V2 overlay tag and
	// starts with a fresh, empty V2 accounts trie; the account data already
	// extracted in step 1 is what repopulates it.
	v2 := &WorldState{
		backend:      v1.backend,
		version:      V2,
		hasher:       v1.hasher,
		codec:        v1.codec,
		accounts:     newAccountsTrie(v1.backend, V2, v1.hasher, v1.codec),
		storageTries: make(map[Address]*StorageTrie),
	}

	// Step 5: re-insert every non-default field under the V2 key schema;
	// collect which addresses had a storage root to migrate.
	storageRoots := make(map[Address]Digest)
	for address, account := range accounts {
		if account.Nonce != 0 {
			if err := v2.accounts.SetNonce(address, account.Nonce); err != nil {
				return nil, xerrors.Errorf("worldstate: upgrade: write v2 nonce: %w", err)
			}
		}
		if account.Balance != 0 {
			if err := v2.accounts.SetBalance(address, account.Balance); err != nil {
				return nil, xerrors.Errorf("worldstate: upgrade: write v2 balance: %w", err)
			}
		}
		if len(account.Code) != 0 {
			if err := v2.accounts.SetCode(address, account.Code); err != nil {
				return nil, xerrors.Errorf("worldstate: upgrade: write v2 code: %w", err)
			}
		}
		if account.HasCbi {
			if err := v2.accounts.SetCbiVersion(address, account.CbiVersion); err != nil {
				return nil, xerrors.Errorf("worldstate: upgrade: write v2 cbi version: %w", err)
			}
		}
		if account.HasStorage {
			storageRoots[address] = account.StorageRoot
		}
	}

	// Step 6: for each address with a storage root, open its V1 storage
	// trie, strip the visibility byte from every key, clear and deinit the
	// V1 trie, and replay the translated data into a fresh V2 trie.
	for address, root := range storageRoots {
		if err := migrateStorage(v1, v2, address, root); err != nil {
			return nil, err
		}
	}

	return v2, nil
}

func migrateStorage(v1, v2 *WorldState, address Address, root Digest) error {
	// Prefer the trie object this session already drained in step 0: its
	// committed nodes live only in its own overlay buffer, never reaching
	// v1.backend, so reopening from root here would see an empty trie.
	v1Storage, cached := v1.storageTries[address]
	if !cached {
		v1Storage = openStorageTrie(v1.backend, address, root, V1, v1.hasher, v1.codec)
	}

	type translatedKV struct{ key, value []byte }
	var translated []translatedKV
	var staleKeys [][]byte
	err := v1Storage.trie.IterateAll(func(key, value []byte) error {
		staleKeys = append(staleKeys, append([]byte(nil), key...))
		rawKey, err := triekey.StripVisibility(key, V1)
		if err != nil {
			return xerrors.Errorf("worldstate: upgrade: strip visibility: %w", err)
		}
		translated = append(translated, translatedKV{
			key:   append([]byte(nil), rawKey...),
			value: append([]byte(nil), value...),
		})
		return nil
	})
	if err != nil {
		return xerrors.Errorf("worldstate: upgrade: walk v1 storage: %w", err)
	}

	for _, k := range staleKeys {
		if _, err := v1Storage.trie.Remove(k); err != nil {
			return xerrors.Errorf("worldstate: upgrade: clear v1 storage: %w", err)
		}
	}
	if err := v1Storage.trie.Deinit(v1Storage.overlay); err != nil {
		return xerrors.Errorf("worldstate: upgrade: deinit v1 storage: %w", err)
	}

	v2Storage := newStorageTrie(v1.backend, address, V2, v1.hasher, v1.codec)
	for _, pair := range translated {
		if err := v2Storage.Set(pair.key, pair.value); err != nil {
			return xerrors.Errorf("worldstate: upgrade: write v2 storage: %w", err)
		}
	}
	v2.storageTries[address] = v2Storage
	return nil
}
