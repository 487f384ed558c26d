package mpt

import (
	"testing"

	"github.com/parallelchain-io/go-world-state/store"
	"github.com/stretchr/testify/require"
)

func newSession(backend store.MemBackend, version store.Version) *store.Overlay {
	return store.NewOverlay(backend, nil, version)
}

func TestTrieEmptyRoot(t *testing.T) {
	backend := store.NewMemBackend()
	overlay := newSession(backend, store.V2)
	tr := New(overlay, store.V2, Keccak256Hasher{}, DefaultCodec)
	require.True(t, tr.IsEmpty())
	root, err := tr.Close()
	require.NoError(t, err)
	require.Equal(t, emptyRootDigest(Keccak256Hasher{}), root)
}

func TestTrieSetGetRemove(t *testing.T) {
	for _, version := range []store.Version{store.V1, store.V2} {
		backend := store.NewMemBackend()
		overlay := newSession(backend, version)
		tr := New(overlay, version, Keccak256Hasher{}, DefaultCodec)

		require.NoError(t, tr.Set([]byte("alpha"), []byte("1")))
		require.NoError(t, tr.Set([]byte("alphabet"), []byte("2")))
		require.NoError(t, tr.Set([]byte("beta"), []byte("3")))

		v, ok, err := tr.Get([]byte("alpha"))
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []byte("1"), v)

		v, ok, err = tr.Get([]byte("alphabet"))
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []byte("2"), v)

		_, ok, err = tr.Get([]byte("missing"))
		require.NoError(t, err)
		require.False(t, ok)

		existed, err := tr.Remove([]byte("alphabet"))
		require.NoError(t, err)
		require.True(t, existed)

		_, ok, err = tr.Get([]byte("alphabet"))
		require.NoError(t, err)
		require.False(t, ok)

		v, ok, err = tr.Get([]byte("alpha"))
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []byte("1"), v)
	}
}

func TestTrieCloseOpenRoundTrip(t *testing.T) {
	for _, version := range []store.Version{store.V1, store.V2} {
		backend := store.NewMemBackend()
		overlay := newSession(backend, version)
		tr := New(overlay, version, Keccak256Hasher{}, DefaultCodec)
		require.NoError(t, tr.Set([]byte("k1"), []byte("v1")))
		require.NoError(t, tr.Set([]byte("k2"), []byte("v2")))
		require.NoError(t, tr.Set([]byte("k3-long-enough-key"), []byte("v3")))

		root, err := tr.Close()
		require.NoError(t, err)
		backend.Apply(overlay.Close())

		reopenOverlay := newSession(backend, version)
		reopened := Open(reopenOverlay, root, version, Keccak256Hasher{}, DefaultCodec)
		for k, want := range map[string]string{"k1": "v1", "k2": "v2", "k3-long-enough-key": "v3"} {
			v, ok, err := reopened.Get([]byte(k))
			require.NoError(t, err)
			require.True(t, ok, "key %q", k)
			require.Equal(t, want, string(v))
		}
	}
}

func TestTrieDeinitRejectsNonEmpty(t *testing.T) {
	backend := store.NewMemBackend()
	overlay := newSession(backend, store.V2)
	tr := New(overlay, store.V2, Keccak256Hasher{}, DefaultCodec)
	require.NoError(t, tr.Set([]byte("k"), []byte("v")))
	require.ErrorIs(t, tr.Deinit(overlay), ErrInvalidStateRoot)
}

func TestTrieIterateAll(t *testing.T) {
	backend := store.NewMemBackend()
	overlay := newSession(backend, store.V2)
	tr := New(overlay, store.V2, Keccak256Hasher{}, DefaultCodec)
	want := map[string]string{"a": "1", "ab": "2", "b": "3", "bcd": "4"}
	for k, v := range want {
		require.NoError(t, tr.Set([]byte(k), []byte(v)))
	}
	got := map[string]string{}
	require.NoError(t, tr.IterateAll(func(k, v []byte) error {
		got[string(k)] = string(v)
		return nil
	}))
	require.Equal(t, want, got)
}

func TestTrieGetWithProof(t *testing.T) {
	backend := store.NewMemBackend()
	overlay := newSession(backend, store.V2)
	tr := New(overlay, store.V2, Keccak256Hasher{}, DefaultCodec)
	require.NoError(t, tr.Set([]byte("alpha"), []byte("1")))
	require.NoError(t, tr.Set([]byte("alphabet"), []byte("2")))
	require.NoError(t, tr.Set([]byte("beta"), []byte("3")))
	_, err := tr.Close()
	require.NoError(t, err)

	value, found, proof, err := tr.GetWithProof([]byte("alpha"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("1"), value)
	require.NotEmpty(t, proof)
}
