package store

import (
	"errors"

	"github.com/iotaledger/hive.go/core/kvstore"
)

// HiveBackend adapts a hive.go kvstore.KVStore partition to Backend. This is
// the same mapping the teacher's hive_adaptor.go performs for its own
// trie_go.KVStore. Get implements the read-only Backend contract this layer
// needs; the close-batch produced by a WorldState session is written only
// when the caller passes it to ApplyBatch.
type HiveBackend struct {
	kvs    kvstore.KVStore
	prefix []byte
}

// NewHiveBackend wraps a prefix partition of kvs as a Backend.
func NewHiveBackend(kvs kvstore.KVStore, prefix []byte) *HiveBackend {
	return &HiveBackend{kvs: kvs, prefix: prefix}
}

func (b *HiveBackend) makeKey(key []byte) []byte {
	if len(b.prefix) == 0 {
		return key
	}
	full := make([]byte, 0, len(b.prefix)+len(key))
	full = append(full, b.prefix...)
	full = append(full, key...)
	return full
}

func (b *HiveBackend) Get(key []byte) ([]byte, bool) {
	v, err := b.kvs.Get(b.makeKey(key))
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, false
	}
	if err != nil {
		// spec.md §4.1: backend errors are mapped to "not found".
		return nil, false
	}
	return v, true
}

// ApplyBatch writes a close-batch into the underlying kvstore.KVStore:
// inserts overwrite, deletes ignore absent keys.
func (b *HiveBackend) ApplyBatch(batch Batch) error {
	wb, err := b.kvs.Batched()
	if err != nil {
		return err
	}
	for k, v := range batch.Inserts {
		if err := wb.Set(b.makeKey([]byte(k)), v); err != nil {
			return err
		}
	}
	for k := range batch.Deletes {
		if err := wb.Delete(b.makeKey([]byte(k))); err != nil {
			return err
		}
	}
	if err := wb.Commit(); err != nil {
		return err
	}
	return b.kvs.Flush()
}
