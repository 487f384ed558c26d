package store

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	src := NewMemBackend()
	src["one"] = []byte("1")
	src["two"] = []byte("2")
	src[""] = []byte("empty key")
	src["empty-value"] = []byte{}

	var buf bytes.Buffer
	n, err := ExportSnapshot(src, &buf)
	require.NoError(t, err)
	require.Positive(t, n)

	dst := NewMemBackend()
	dst["stale"] = []byte("should survive, not be wiped")
	imported, err := ImportSnapshot(dst, &buf)
	require.NoError(t, err)
	require.Positive(t, imported)

	for k, v := range src {
		got, ok := dst.Get([]byte(k))
		require.True(t, ok, "key %q", k)
		require.Equal(t, v, got)
	}
	_, ok := dst.Get([]byte("stale"))
	require.True(t, ok, "import must not clear pre-existing keys")
}

func TestSnapshotOverwritesOnReimport(t *testing.T) {
	src := NewMemBackend()
	src["k"] = []byte("first")
	var buf bytes.Buffer
	_, err := ExportSnapshot(src, &buf)
	require.NoError(t, err)

	dst := NewMemBackend()
	dst["k"] = []byte("stale")
	_, err = ImportSnapshot(dst, &buf)
	require.NoError(t, err)

	v, ok := dst.Get([]byte("k"))
	require.True(t, ok)
	require.Equal(t, []byte("first"), v)
}
