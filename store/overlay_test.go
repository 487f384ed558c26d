package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOverlayPhysicalKeyPrefixingV1(t *testing.T) {
	backend := NewMemBackend()
	accounts := NewOverlay(backend, nil, V1)
	storage := NewOverlay(backend, []byte("address-a"), V1)

	accounts.Put([]byte("k"), []byte("accounts-value"))
	storage.Put([]byte("k"), []byte("storage-value"))

	backend.Apply(accounts.Close())
	backend.Apply(storage.Close())

	// V1 has no reserved tag byte: accounts use the raw key, storage is
	// prefixed only by the owning address.
	v, ok := backend.Get([]byte("k"))
	require.True(t, ok)
	require.Equal(t, []byte("accounts-value"), v)

	v, ok = backend.Get([]byte("address-ak"))
	require.True(t, ok)
	require.Equal(t, []byte("storage-value"), v)
}

func TestOverlayPhysicalKeyPrefixingV2(t *testing.T) {
	backend := NewMemBackend()
	accounts := NewOverlay(backend, nil, V2)
	storage := NewOverlay(backend, []byte("address-a"), V2)

	accounts.Put([]byte("k"), []byte("accounts-value"))
	storage.Put([]byte("k"), []byte("storage-value"))

	// Different domains/tags under V2 never collide even on an identical
	// raw key.
	av, ok := accounts.Get([]byte("k"))
	require.True(t, ok)
	require.Equal(t, []byte("accounts-value"), av)

	sv, ok := storage.Get([]byte("k"))
	require.True(t, ok)
	require.Equal(t, []byte("storage-value"), sv)

	backend.Apply(accounts.Close())
	backend.Apply(storage.Close())
	require.Len(t, backend, 2)
}

func TestOverlayBufferedDeleteHidesBackendValue(t *testing.T) {
	backend := NewMemBackend()
	o := NewOverlay(backend, nil, V2)
	o.Put([]byte("k"), []byte("v"))
	backend.Apply(o.Close())

	o2 := NewOverlay(backend, nil, V2)
	_, ok := o2.Get([]byte("k"))
	require.True(t, ok)

	o2.Delete([]byte("k"))
	_, ok = o2.Get([]byte("k"))
	require.False(t, ok)

	batch := o2.Close()
	require.Empty(t, batch.Inserts)
	require.Len(t, batch.Deletes, 1)
}

func TestBatchMergePrefersLaterBatch(t *testing.T) {
	a := NewBatch()
	a.Inserts["k"] = []byte("old")
	b := NewBatch()
	b.Inserts["k"] = []byte("new")
	b.Deletes["other"] = struct{}{}

	a.Merge(b)
	require.Equal(t, []byte("new"), a.Inserts["k"])
	_, deleted := a.Deletes["other"]
	require.True(t, deleted)
}
