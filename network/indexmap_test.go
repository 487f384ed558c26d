package network

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type memStorage map[string][]byte

func newMemStorage() memStorage { return make(memStorage) }

func (m memStorage) Get(key []byte) ([]byte, bool) {
	v, ok := m[string(key)]
	return v, ok
}
func (m memStorage) Contains(key []byte) bool {
	_, ok := m[string(key)]
	return ok
}
func (m memStorage) Set(key, value []byte) {
	cp := make([]byte, len(value))
	copy(cp, value)
	m[string(key)] = cp
}
func (m memStorage) Delete(key []byte) { delete(m, string(key)) }

type testEntry struct {
	key   string
	value uint32
}

func (e testEntry) Key() []byte { return []byte(e.key) }

func encodeTestEntry(e testEntry) []byte {
	return append([]byte{byte(e.value)}, e.key...)
}

func decodeTestEntry(b []byte) testEntry {
	return testEntry{key: string(b[1:]), value: uint32(b[0])}
}

func TestIndexMapPushAndGet(t *testing.T) {
	s := newMemStorage()
	m := NewIndexMap[testEntry](s, []byte("pool-a"), 4, encodeTestEntry, decodeTestEntry)

	require.NoError(t, m.Push(testEntry{key: "x", value: 1}))
	require.NoError(t, m.Push(testEntry{key: "y", value: 2}))
	require.EqualValues(t, 2, m.Length())

	v, ok := m.GetBy([]byte("x"))
	require.True(t, ok)
	require.EqualValues(t, 1, v.value)

	idx, ok := m.IndexOfKey([]byte("y"))
	require.True(t, ok)
	require.EqualValues(t, 1, idx)
}

func TestIndexMapFullReportsError(t *testing.T) {
	s := newMemStorage()
	m := NewIndexMap[testEntry](s, []byte("pool-a"), 1, encodeTestEntry, decodeTestEntry)
	require.NoError(t, m.Push(testEntry{key: "x", value: 1}))
	require.ErrorIs(t, m.Push(testEntry{key: "y", value: 2}), ErrIndexMapFull)
}

func TestIndexMapClearAndReset(t *testing.T) {
	s := newMemStorage()
	m := NewIndexMap[testEntry](s, []byte("pool-a"), 4, encodeTestEntry, decodeTestEntry)
	require.NoError(t, m.Push(testEntry{key: "x", value: 1}))
	require.NoError(t, m.Push(testEntry{key: "y", value: 2}))

	m.Clear()
	require.EqualValues(t, 0, m.Length())
	_, ok := m.GetBy([]byte("x"))
	require.False(t, ok)

	require.NoError(t, m.Reset([]testEntry{{key: "z", value: 9}}))
	require.EqualValues(t, 1, m.Length())
	v, ok := m.GetBy([]byte("z"))
	require.True(t, ok)
	require.EqualValues(t, 9, v.value)
}
