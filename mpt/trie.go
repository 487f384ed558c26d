package mpt

import (
	"bytes"

	"github.com/parallelchain-io/go-world-state/store"
)

// Trie is the Merkle-Patricia Trie engine (spec.md §4.4). One Trie wraps one
// session's worth of buffered mutations over a physical key/value backend;
// Close commits the pending mutations and returns the new root digest
// alongside the batch the caller must persist.
//
// The mutation algorithm (insert / split / delete / merge-on-collapse) is
// grounded on the teacher's mutable.trie.go (Update / Delete / splitNode /
// mergeNode / checkReorg), generalized from the teacher's pluggable
// arity/commitment model to this engine's fixed radix-16 branch/
// extension/leaf shapes, and specialized per Version for whether a
// single-child branch may collapse into an extension node (V2) or must
// remain a branch (V1, spec.md §4.4 "no extension" layout).
type Trie struct {
	store   *nodeStore
	hasher  Hasher
	version store.Version
	root    *node // nil means the trie is logically empty
}

// emptyRootDigest is the canonical digest of an empty trie (spec.md §4.4):
// hash(0x00), not the hash of any real encoded node.
func emptyRootDigest(hasher Hasher) Digest {
	return hasher.Sum([]byte{0x00})
}

// New opens a brand-new, empty trie and records the sentinel that lets a
// later Open(emptyRootDigest) locate it.
func New(backend kv, version store.Version, hasher Hasher, codec NodeCodec) *Trie {
	t := &Trie{
		store:   newNodeStore(backend, codec, hasher),
		hasher:  hasher,
		version: version,
	}
	sentinelKey := nodePhysicalKey(nil, emptyRootDigest(hasher))
	backend.Put(sentinelKey, []byte{0x00})
	return t
}

// Open resumes a trie at a previously committed root digest. Resolution of
// the root (and everything beneath it) is lazy: Open itself never touches
// the backend.
func Open(backend kv, root Digest, version store.Version, hasher Hasher, codec NodeCodec) *Trie {
	t := &Trie{
		store:   newNodeStore(backend, codec, hasher),
		hasher:  hasher,
		version: version,
	}
	if root != emptyRootDigest(hasher) {
		t.root = hashNode(root)
	}
	return t
}

// RootDigest returns the trie's current root digest. If the root is dirty
// (uncommitted mutations below it), this runs the same commit pass Close
// does and mutates t.root to the resulting kindHash node as a side effect —
// correct, but only safe on a root with nothing left to mutate through.
// Every current call site (worldstate.go, new storage trie's zero root)
// only ever calls this immediately after New, before any Set/Remove, so the
// root is always either empty or already a kindHash. Do not call this on a
// dirty trie mid-session; use Close instead.
func (t *Trie) RootDigest() Digest {
	if t.root == nil {
		return emptyRootDigest(t.hasher)
	}
	if t.root.kind == kindHash {
		return t.root.digest
	}
	// Uncommitted root: digest is not yet known without a commit pass.
	d, err := t.store.commit(t.root, nil)
	if err != nil || d == nil {
		return emptyRootDigest(t.hasher)
	}
	t.root = hashNode(*d)
	return *d
}

// Get returns the value stored at key, if any.
func (t *Trie) Get(key []byte) ([]byte, bool, error) {
	return t.get(t.root, nil, nibbles(key))
}

func (t *Trie) Contains(key []byte) (bool, error) {
	_, ok, err := t.Get(key)
	return ok, err
}

func (t *Trie) get(n *node, prefix, key []byte) ([]byte, bool, error) {
	n, err := t.store.resolve(n, prefix)
	if err != nil {
		return nil, false, err
	}
	if n == nil {
		return nil, false, nil
	}
	switch n.kind {
	case kindLeaf:
		if bytes.Equal(n.path, key) {
			return n.value, true, nil
		}
		return nil, false, nil
	case kindExtension:
		match := commonPrefixLen(n.path, key)
		if match < len(n.path) {
			return nil, false, nil
		}
		return t.get(n.child, appendPath(prefix, n.path), key[match:])
	case kindBranch:
		if len(key) == 0 {
			if n.value != nil {
				return n.value, true, nil
			}
			return nil, false, nil
		}
		nib := key[0]
		return t.get(n.children[nib], appendPath(prefix, []byte{nib}), key[1:])
	default:
		return nil, false, nil
	}
}

// Set inserts or overwrites the value at key.
func (t *Trie) Set(key, value []byte) error {
	newRoot, err := t.insert(t.root, nil, nibbles(key), value)
	if err != nil {
		return err
	}
	t.root = newRoot
	return nil
}

func (t *Trie) insert(n *node, prefix, key, value []byte) (*node, error) {
	n, err := t.store.resolve(n, prefix)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return leafNode(key, value), nil
	}
	switch n.kind {
	case kindLeaf:
		match := commonPrefixLen(n.path, key)
		if match == len(n.path) && match == len(key) {
			return leafNode(n.path, value), nil
		}
		branch := branchNode()
		if match == len(n.path) {
			branch.value = n.value
		} else {
			branch.children[n.path[match]] = leafNode(n.path[match+1:], n.value)
		}
		if match == len(key) {
			branch.value = value
		} else {
			branch.children[key[match]] = leafNode(key[match+1:], value)
		}
		return t.wrapPrefix(n.path[:match], branch), nil

	case kindExtension:
		match := commonPrefixLen(n.path, key)
		if match == len(n.path) {
			newChild, err := t.insert(n.child, appendPath(prefix, n.path), key[match:], value)
			if err != nil {
				return nil, err
			}
			return t.wrapPrefix(n.path, newChild), nil
		}
		branch := branchNode()
		remain := n.path[match:]
		branch.children[remain[0]] = t.wrapPrefix(remain[1:], n.child)
		if match == len(key) {
			branch.value = value
		} else {
			branch.children[key[match]] = leafNode(key[match+1:], value)
		}
		return t.wrapPrefix(n.path[:match], branch), nil

	case kindBranch:
		n2 := shallowCopyBranch(n)
		if len(key) == 0 {
			n2.value = value
			return n2, nil
		}
		nib := key[0]
		child, err := t.insert(n.children[nib], appendPath(prefix, []byte{nib}), key[1:], value)
		if err != nil {
			return nil, err
		}
		n2.children[nib] = child
		return n2, nil

	default:
		return leafNode(key, value), nil
	}
}

// Remove deletes key, reporting whether it was present.
func (t *Trie) Remove(key []byte) (bool, error) {
	newRoot, existed, err := t.delete(t.root, nil, nibbles(key))
	if err != nil {
		return false, err
	}
	if existed {
		t.root = newRoot
	}
	return existed, nil
}

func (t *Trie) delete(n *node, prefix, key []byte) (*node, bool, error) {
	n, err := t.store.resolve(n, prefix)
	if err != nil {
		return nil, false, err
	}
	if n == nil {
		return nil, false, nil
	}
	switch n.kind {
	case kindLeaf:
		if bytes.Equal(n.path, key) {
			return nil, true, nil
		}
		return n, false, nil

	case kindExtension:
		match := commonPrefixLen(n.path, key)
		if match < len(n.path) {
			return n, false, nil
		}
		child, existed, err := t.delete(n.child, appendPath(prefix, n.path), key[match:])
		if err != nil || !existed {
			return n, existed, err
		}
		if child == nil {
			return nil, true, nil
		}
		merged, err := t.mergeIntoPrefix(n.path, child, appendPath(prefix, n.path))
		if err != nil {
			return nil, false, err
		}
		return merged, true, nil

	case kindBranch:
		if len(key) == 0 {
			if n.value == nil {
				return n, false, nil
			}
			n2 := shallowCopyBranch(n)
			n2.value = nil
			collapsed, err := t.collapseBranch(n2, prefix)
			return collapsed, true, err
		}
		nib := key[0]
		child, existed, err := t.delete(n.children[nib], appendPath(prefix, []byte{nib}), key[1:])
		if err != nil || !existed {
			return n, existed, err
		}
		n2 := shallowCopyBranch(n)
		n2.children[nib] = child
		collapsed, err := t.collapseBranch(n2, prefix)
		return collapsed, true, err

	default:
		return n, false, nil
	}
}

// wrapPrefix attaches prefix (possibly empty) above target. V2 wraps a
// non-empty prefix in a single extension node; V1 has no extension nodes,
// so it materializes one degenerate single-child branch per nibble of
// prefix instead.
func (t *Trie) wrapPrefix(prefix []byte, target *node) *node {
	if len(prefix) == 0 || target == nil {
		return target
	}
	if t.version.UsesExtensionNodes() {
		return extensionNode(prefix, target)
	}
	for i := len(prefix) - 1; i >= 0; i-- {
		b := branchNode()
		b.children[prefix[i]] = target
		target = b
	}
	return target
}

// mergeIntoPrefix folds an extension's own path back onto its (already
// updated) child after a delete, compacting child-of-extension chains the
// way the teacher's mergeNode does for its own node shapes.
func (t *Trie) mergeIntoPrefix(prefix []byte, child *node, childPath []byte) (*node, error) {
	resolved, err := t.store.resolve(child, childPath)
	if err != nil {
		return nil, err
	}
	switch resolved.kind {
	case kindLeaf:
		return leafNode(appendPath(prefix, resolved.path), resolved.value), nil
	case kindExtension:
		if t.version.UsesExtensionNodes() {
			return extensionNode(appendPath(prefix, resolved.path), resolved.child), nil
		}
		return t.wrapPrefix(prefix, resolved), nil
	default:
		return t.wrapPrefix(prefix, resolved), nil
	}
}

// collapseBranch simplifies a branch after one of its slots changed,
// mirroring the teacher's checkReorg: a branch with no children and no
// value vanishes, one with no children but a value becomes a leaf, and one
// with exactly one child and no value folds into that child: a leaf child
// absorbs the nibble in both layouts; any other child is wrapped in an
// extension node under V2 and stays under a single-child branch under V1.
func (t *Trie) collapseBranch(b *node, prefix []byte) (*node, error) {
	count := b.childCount()
	if count == 0 {
		if b.value != nil {
			return leafNode(nil, b.value), nil
		}
		return nil, nil
	}
	if count == 1 && b.value == nil {
		nib, child, _ := b.soleChild()
		resolved, err := t.store.resolve(child, appendPath(prefix, []byte{nib}))
		if err != nil {
			return nil, err
		}
		switch resolved.kind {
		case kindLeaf:
			return leafNode(appendPath([]byte{nib}, resolved.path), resolved.value), nil
		case kindExtension:
			if t.version.UsesExtensionNodes() {
				return extensionNode(appendPath([]byte{nib}, resolved.path), resolved.child), nil
			}
			b2 := branchNode()
			b2.children[nib] = resolved
			return b2, nil
		case kindBranch:
			if t.version.UsesExtensionNodes() {
				return extensionNode([]byte{nib}, resolved), nil
			}
			b2 := branchNode()
			b2.children[nib] = resolved
			return b2, nil
		}
	}
	return b, nil
}

func shallowCopyBranch(n *node) *node {
	n2 := &node{kind: kindBranch, value: n.value}
	n2.children = n.children
	return n2
}

// Close commits every pending mutation, persists the touched nodes via the
// backing kv, and returns the new root digest. The caller is responsible
// for pulling the buffered batch back out of the backend (store.Overlay).
func (t *Trie) Close() (Digest, error) {
	if t.root == nil {
		return emptyRootDigest(t.hasher), nil
	}
	d, err := t.store.commit(t.root, nil)
	if err != nil {
		return Digest{}, err
	}
	if d == nil {
		return emptyRootDigest(t.hasher), nil
	}
	t.root = hashNode(*d)
	return *d, nil
}

// IsEmpty reports whether the trie currently holds no keys.
func (t *Trie) IsEmpty() bool {
	return t.root == nil
}

// Deinit removes the empty-root sentinel a V1 trie's New left behind. It is
// only valid on a trie that is in fact empty; calling it on any other root
// is a caller error (spec.md C8 "destroy"), reported as ErrInvalidStateRoot
// rather than silently deleting live data.
func (t *Trie) Deinit(backend kv) error {
	if !t.IsEmpty() {
		return ErrInvalidStateRoot
	}
	sentinelKey := nodePhysicalKey(nil, emptyRootDigest(t.hasher))
	backend.Delete(sentinelKey)
	return nil
}
