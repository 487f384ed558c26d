package network

// IndexHeap layers a minimum binary heap over an IndexMap, used to hold the
// network's next validator set and each pool's delegated stakes ordered by
// power. Grounded directly on
// original_source/src/network/index_heap.rs's IndexHeap<T, V>; Rust's Ord
// bound becomes an explicit less function, for the same reason IndexMap
// takes explicit encode/decode functions.
type IndexHeap[V Keyed] struct {
	*IndexMap[V]
	less func(a, b V) bool
}

// NewIndexHeap constructs an IndexHeap scoped to domain, bounded to
// capacity entries, ordered by less (a strict "a sorts before b" relation).
func NewIndexHeap[V Keyed](store Storage, domain []byte, capacity uint32, encode func(V) []byte, decode func([]byte) V, less func(a, b V) bool) *IndexHeap[V] {
	return &IndexHeap[V]{IndexMap: NewIndexMap(store, domain, capacity, encode, decode), less: less}
}

// Extract removes and returns the minimum value, or ok=false if empty.
func (h *IndexHeap[V]) Extract() (V, bool) {
	var zero V
	length := h.Length()
	if length == 0 {
		return zero, false
	}
	ret, _ := h.Get(0)
	if length == 1 {
		h.SetLength(0)
		h.delete(0, ret.Key())
		return ret, true
	}

	first, _ := h.Get(0)
	last, _ := h.Get(length - 1)
	h.replace(0, first, length-1, last)
	h.SetLength(length - 1)
	h.makeHeap(0, length-1)

	return ret, true
}

// Insert adds value, failing if the heap is already at capacity.
func (h *IndexHeap[V]) Insert(value V) error {
	length := h.Length()
	if length == h.capacity {
		return ErrIndexHeapFull
	}

	index := length
	h.set(index, value)
	h.SetLength(length + 1)

	for index != 0 {
		parent := (index - 1) / 2
		parentV, _ := h.Get(parent)
		v, _ := h.Get(index)
		if h.less(v, parentV) {
			h.swap(index, v, parent, parentV)
			index = parent
		} else {
			break
		}
	}
	return nil
}

// InsertExtract inserts value, extracting and returning the prior minimum
// if the heap was already full. It fails without mutating the heap if the
// heap is full and value would itself be the new minimum.
func (h *IndexHeap[V]) InsertExtract(value V) (extracted V, didExtract bool, err error) {
	length := h.Length()
	if length == 0 {
		_ = h.Insert(value)
		return extracted, false, nil
	}
	first, _ := h.Get(0)

	if length == h.capacity {
		if h.less(value, first) {
			return extracted, false, ErrIndexHeapFull
		}
		extracted, didExtract = h.Extract()
	}
	_ = h.Insert(value)
	return extracted, didExtract, nil
}

// ChangeKey updates the stored value for whichever entry shares value's
// key, re-heapifying around its new position. A no-op if the key is absent.
func (h *IndexHeap[V]) ChangeKey(value V) {
	length := h.Length()
	index, ok := h.IndexOfKey(value.Key())
	if !ok || index >= length {
		return
	}
	old, _ := h.Get(index)

	switch {
	case h.less(old, value):
		h.set(index, value)
		h.makeHeap(index, length)
	case h.less(value, old):
		h.set(index, value)
		for index != 0 {
			parent := (index - 1) / 2
			v, _ := h.Get(index)
			parentV, _ := h.Get(parent)
			if h.less(v, parentV) {
				h.swap(index, v, parent, parentV)
				index = parent
			} else {
				break
			}
		}
	}
}

// RemoveItem deletes whichever entry has the given key, if any.
func (h *IndexHeap[V]) RemoveItem(key []byte) {
	length := h.Length()
	index, ok := h.IndexOfKey(key)
	if !ok || index >= length {
		return
	}
	if index == 0 {
		h.Extract()
		return
	}

	this, _ := h.Get(index)
	if index == length-1 {
		h.SetLength(length - 1)
		h.delete(index, key)
		return
	}
	last, _ := h.Get(length - 1)
	h.replace(index, this, length-1, last)
	h.SetLength(length - 1)

	if h.less(this, last) {
		h.makeHeap(index, length-1)
		return
	}
	for index != 0 {
		parent := (index - 1) / 2
		v, _ := h.Get(index)
		parentV, _ := h.Get(parent)
		if h.less(v, parentV) {
			h.swap(index, v, parent, parentV)
			index = parent
		} else {
			break
		}
	}
}

// UnorderedValues returns every value, in storage (not heap) order.
func (h *IndexHeap[V]) UnorderedValues() []V {
	length := h.Length()
	out := make([]V, 0, length)
	for i := uint32(0); i < length; i++ {
		v, ok := h.Get(i)
		if ok {
			out = append(out, v)
		}
	}
	return out
}

func (h *IndexHeap[V]) makeHeap(index, length uint32) {
	for {
		left, right := 2*index+1, 2*index+2
		head := index
		v, _ := h.Get(head)
		if left < length {
			lv, _ := h.Get(left)
			if h.less(lv, v) {
				head = left
				v = lv
			}
		}
		if right < length {
			rv, _ := h.Get(right)
			if h.less(rv, v) {
				head = right
			}
		}
		if head == index {
			return
		}
		iv, _ := h.Get(index)
		hv, _ := h.Get(head)
		h.swap(index, iv, head, hv)
		index = head
	}
}

// replace moves from_v into to_index, dropping from_index and to_v's own
// key-index record.
func (h *IndexHeap[V]) replace(toIndex uint32, toV V, fromIndex uint32, fromV V) {
	h.store.Delete(h.keyed(append([]byte{prefixIndexValue}, le32(fromIndex)...)...))
	h.store.Delete(h.keyed(append([]byte{prefixKeyIndex}, toV.Key()...)...))
	h.set(toIndex, fromV)
}

func (h *IndexHeap[V]) swap(i uint32, iv V, j uint32, jv V) {
	h.set(i, jv)
	h.set(j, iv)
}
