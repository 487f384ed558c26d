package network

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lessByValue(a, b testEntry) bool { return a.value < b.value }

func TestIndexHeapExtractsMinimum(t *testing.T) {
	s := newMemStorage()
	h := NewIndexHeap[testEntry](s, []byte("heap"), 8, encodeTestEntry, decodeTestEntry, lessByValue)

	require.NoError(t, h.Insert(testEntry{key: "c", value: 3}))
	require.NoError(t, h.Insert(testEntry{key: "a", value: 1}))
	require.NoError(t, h.Insert(testEntry{key: "b", value: 2}))

	var order []uint32
	for {
		v, ok := h.Extract()
		if !ok {
			break
		}
		order = append(order, v.value)
	}
	require.Equal(t, []uint32{1, 2, 3}, order)
}

func TestIndexHeapInsertFullReportsError(t *testing.T) {
	s := newMemStorage()
	h := NewIndexHeap[testEntry](s, []byte("heap"), 1, encodeTestEntry, decodeTestEntry, lessByValue)
	require.NoError(t, h.Insert(testEntry{key: "a", value: 1}))
	require.ErrorIs(t, h.Insert(testEntry{key: "b", value: 2}), ErrIndexHeapFull)
}

func TestIndexHeapInsertExtractReplacesMinWhenFull(t *testing.T) {
	s := newMemStorage()
	h := NewIndexHeap[testEntry](s, []byte("heap"), 2, encodeTestEntry, decodeTestEntry, lessByValue)
	require.NoError(t, h.Insert(testEntry{key: "a", value: 5}))
	require.NoError(t, h.Insert(testEntry{key: "b", value: 7}))

	// heap full at capacity 2; inserting a value at least as large as the
	// current minimum succeeds by extracting that minimum first.
	extracted, did, err := h.InsertExtract(testEntry{key: "c", value: 10})
	require.NoError(t, err)
	require.True(t, did)
	require.EqualValues(t, 5, extracted.value)
	require.EqualValues(t, 2, h.Length())
}

func TestIndexHeapInsertExtractRejectsNewMinimumWhenFull(t *testing.T) {
	s := newMemStorage()
	h := NewIndexHeap[testEntry](s, []byte("heap"), 2, encodeTestEntry, decodeTestEntry, lessByValue)
	require.NoError(t, h.Insert(testEntry{key: "a", value: 5}))
	require.NoError(t, h.Insert(testEntry{key: "b", value: 7}))

	_, did, err := h.InsertExtract(testEntry{key: "c", value: 1})
	require.ErrorIs(t, err, ErrIndexHeapFull)
	require.False(t, did)
	require.EqualValues(t, 2, h.Length())
}

func TestIndexHeapRemoveItem(t *testing.T) {
	s := newMemStorage()
	h := NewIndexHeap[testEntry](s, []byte("heap"), 8, encodeTestEntry, decodeTestEntry, lessByValue)
	require.NoError(t, h.Insert(testEntry{key: "a", value: 1}))
	require.NoError(t, h.Insert(testEntry{key: "b", value: 2}))
	require.NoError(t, h.Insert(testEntry{key: "c", value: 3}))

	h.RemoveItem([]byte("b"))
	require.EqualValues(t, 2, h.Length())
	_, ok := h.IndexOfKey([]byte("b"))
	require.False(t, ok)

	vals := h.UnorderedValues()
	require.Len(t, vals, 2)
}
