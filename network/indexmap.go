package network

import "encoding/binary"

// Prefix bytes partitioning an IndexMap's three keyspaces within its domain
// (original_source/src/network/index_map.rs IndexMap::PREFIX_*).
const (
	prefixLen        = 0x00
	prefixKeyIndex   = 0x01
	prefixIndexValue = 0x02
)

// IndexMap is a reverse-indexed ordered collection over a Storage: values
// are addressable both by a dense uint32 index (insertion order, modulo
// deletes) and by their own logical key. Grounded directly on
// original_source/src/network/index_map.rs's IndexMap<T, V>; Rust's
// Into<Vec<u8>>/From<Vec<u8>> trait bounds become plain encode/decode
// function fields here, Go generics having no equivalent trait-bound
// mechanism for free-standing conversions.
type IndexMap[V Keyed] struct {
	store    Storage
	domain   []byte
	capacity uint32
	encode   func(V) []byte
	decode   func([]byte) V
}

// NewIndexMap constructs an IndexMap scoped to domain, bounded to capacity
// entries, using encode/decode to move values to and from their storage
// representation.
func NewIndexMap[V Keyed](store Storage, domain []byte, capacity uint32, encode func(V) []byte, decode func([]byte) V) *IndexMap[V] {
	return &IndexMap[V]{store: store, domain: domain, capacity: capacity, encode: encode, decode: decode}
}

func (m *IndexMap[V]) keyed(suffix ...byte) []byte {
	out := make([]byte, 0, len(m.domain)+len(suffix))
	out = append(out, m.domain...)
	out = append(out, suffix...)
	return out
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// Length returns the number of entries currently held; an empty or
// never-initialized map reports 0.
func (m *IndexMap[V]) Length() uint32 {
	b, ok := m.store.Get(m.keyed(prefixLen))
	if !ok || len(b) != 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// SetLength overwrites the stored length directly; callers outside this
// package should prefer Push/Reset/Clear, which keep it consistent.
func (m *IndexMap[V]) SetLength(length uint32) {
	m.store.Set(m.keyed(prefixLen), le32(length))
}

// IndexOfKey returns the dense index a logical key currently occupies.
func (m *IndexMap[V]) IndexOfKey(key []byte) (uint32, bool) {
	b, ok := m.store.Get(m.keyed(append([]byte{prefixKeyIndex}, key...)...))
	if !ok || len(b) != 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

// Get returns the value at a dense index.
func (m *IndexMap[V]) Get(index uint32) (V, bool) {
	var zero V
	if index >= m.capacity {
		return zero, false
	}
	b, ok := m.store.Get(m.keyed(append([]byte{prefixIndexValue}, le32(index)...)...))
	if !ok {
		return zero, false
	}
	return m.decode(b), true
}

// GetBy returns the value registered under a logical key.
func (m *IndexMap[V]) GetBy(key []byte) (V, bool) {
	idx, ok := m.IndexOfKey(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.Get(idx)
}

// set writes both the key->index and index->value records for v at index.
func (m *IndexMap[V]) set(index uint32, v V) {
	m.store.Set(m.keyed(append([]byte{prefixKeyIndex}, v.Key()...)...), le32(index))
	m.store.Set(m.keyed(append([]byte{prefixIndexValue}, le32(index)...)...), m.encode(v))
}

// delete removes both records for the value that was at index under key.
func (m *IndexMap[V]) delete(index uint32, key []byte) {
	m.store.Delete(m.keyed(append([]byte{prefixKeyIndex}, key...)...))
	m.store.Delete(m.keyed(append([]byte{prefixIndexValue}, le32(index)...)...))
}

// Push appends v, failing if the map is already at capacity.
func (m *IndexMap[V]) Push(v V) error {
	length := m.Length()
	if length >= m.capacity {
		return ErrIndexMapFull
	}
	m.set(length, v)
	m.SetLength(length + 1)
	return nil
}

// Reset clears the map and rewrites it from values, in order.
func (m *IndexMap[V]) Reset(values []V) error {
	if uint32(len(values)) > m.capacity {
		return ErrIndexMapFull
	}
	m.Clear()
	for i, v := range values {
		m.set(uint32(i), v)
	}
	m.SetLength(uint32(len(values)))
	return nil
}

// Clear removes every entry, resetting length to 0.
func (m *IndexMap[V]) Clear() {
	length := m.Length()
	for i := uint32(0); i < length; i++ {
		v, ok := m.Get(i)
		if !ok {
			continue
		}
		m.delete(i, v.Key())
	}
	m.SetLength(0)
}
