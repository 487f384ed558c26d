package store

// Batch is the flat close-batch surface a session hands back to its caller
// (spec.md §6): apply Inserts (overwriting), then Deletes (ignoring absent
// keys), and the result is consistent with opening at the new root.
type Batch struct {
	Inserts map[string][]byte
	Deletes map[string]struct{}
}

// NewBatch returns an empty Batch.
func NewBatch() Batch {
	return Batch{Inserts: make(map[string][]byte), Deletes: make(map[string]struct{})}
}

// Merge folds other into b, in place.
func (b Batch) Merge(other Batch) {
	for k, v := range other.Inserts {
		delete(b.Deletes, k)
		b.Inserts[k] = v
	}
	for k := range other.Deletes {
		delete(b.Inserts, k)
		b.Deletes[k] = struct{}{}
	}
}

// Overlay is the key-instrumented write-buffering layer (C2). It buffers
// puts and deletes against one logical trie instance until Close, and
// applies a version-dependent physical-key prefix to every access so that
// two distinct tries sharing one physical backend can never collide
// (spec.md §4.2). It is grounded on the teacher's mutable.nodeStoreBuffered
// (in-memory nodeCache/deleted maps), generalized from trie-node records to
// arbitrary logical key/value pairs and parameterized by a domain + tag
// instead of always operating at the trie root.
type Overlay struct {
	backend Backend
	domain  []byte // empty for the accounts trie, the owning address for a storage trie
	tag     byte   // V2 only: 0x00 accounts, 0x01 storage
	useTag  bool   // true under V2, false under V1

	inserts map[string][]byte
	deletes map[string]struct{}
}

// NewOverlay constructs an Overlay over backend. domain is empty for the
// accounts trie and the 32-byte owning address for a storage trie. version
// selects V1's domain-only prefixing or V2's tag||domain prefixing.
func NewOverlay(backend Backend, domain []byte, version Version) *Overlay {
	return &Overlay{
		backend: backend,
		domain:  domain,
		tag:     domainTag(domain, version),
		useTag:  version == V2,
		inserts: make(map[string][]byte),
		deletes: make(map[string]struct{}),
	}
}

func domainTag(domain []byte, version Version) byte {
	if version != V2 {
		return 0
	}
	if len(domain) == 0 {
		return 0x00
	}
	return 0x01
}

// physicalKey builds the physical backend key for a raw logical key, per
// spec.md §4.2:
//
//	V1: domain || raw_key              (domain empty ⇒ raw key as-is)
//	V2: tag || domain || raw_key
func (o *Overlay) physicalKey(raw []byte) []byte {
	var out []byte
	if o.useTag {
		out = make([]byte, 0, 1+len(o.domain)+len(raw))
		out = append(out, o.tag)
	} else {
		out = make([]byte, 0, len(o.domain)+len(raw))
	}
	out = append(out, o.domain...)
	out = append(out, raw...)
	return out
}

// Put buffers an insert of raw key k with value v.
func (o *Overlay) Put(k, v []byte) {
	pk := string(o.physicalKey(k))
	delete(o.deletes, pk)
	val := make([]byte, len(v))
	copy(val, v)
	o.inserts[pk] = val
}

// Delete buffers a deletion of raw key k.
func (o *Overlay) Delete(k []byte) {
	pk := string(o.physicalKey(k))
	delete(o.inserts, pk)
	o.deletes[pk] = struct{}{}
}

// Get returns the overlay's answer for raw key k: the buffered insert if
// present, then "absent" if buffered-deleted, then the backend's answer.
func (o *Overlay) Get(k []byte) ([]byte, bool) {
	pk := string(o.physicalKey(k))
	if v, ok := o.inserts[pk]; ok {
		return v, true
	}
	if _, ok := o.deletes[pk]; ok {
		return nil, false
	}
	return o.backend.Get([]byte(pk))
}

// Close returns the buffered inserts and deletes as a Batch, keyed by their
// physical keys, and clears the overlay's buffers.
func (o *Overlay) Close() Batch {
	b := Batch{Inserts: o.inserts, Deletes: o.deletes}
	o.inserts = make(map[string][]byte)
	o.deletes = make(map[string]struct{})
	return b
}

// IsEmpty reports whether the overlay has no buffered mutations.
func (o *Overlay) IsEmpty() bool {
	return len(o.inserts) == 0 && len(o.deletes) == 0
}
