package mpt

// ProofNode is one link of a Merkle proof: the encoded bytes of a node
// visited on the path from the root to a target key, root first.
type ProofNode []byte

// GetWithProof returns the value at key (if present) together with the
// chain of encoded nodes visited from the root down to it, letting a
// verifier recompute the root digest independently (spec.md §4.4 "prove").
// Uncommitted nodes on or below the path are committed into the backing kv
// as a side effect of computing their digests.
func (t *Trie) GetWithProof(key []byte) ([]byte, bool, []ProofNode, error) {
	var proof []ProofNode
	value, found, err := t.collectProof(t.root, nil, nibbles(key), &proof)
	return value, found, proof, err
}

func (t *Trie) collectProof(n *node, prefix, key []byte, proof *[]ProofNode) ([]byte, bool, error) {
	n, err := t.store.resolve(n, prefix)
	if err != nil {
		return nil, false, err
	}
	if n == nil {
		return nil, false, nil
	}
	enc, err := t.encodeForProof(n, prefix)
	if err != nil {
		return nil, false, err
	}
	*proof = append(*proof, enc)

	switch n.kind {
	case kindLeaf:
		if string(n.path) == string(key) {
			return n.value, true, nil
		}
		return nil, false, nil
	case kindExtension:
		match := commonPrefixLen(n.path, key)
		if match < len(n.path) {
			return nil, false, nil
		}
		return t.collectProof(n.child, appendPath(prefix, n.path), key[match:], proof)
	case kindBranch:
		if len(key) == 0 {
			if n.value != nil {
				return n.value, true, nil
			}
			return nil, false, nil
		}
		nib := key[0]
		return t.collectProof(n.children[nib], appendPath(prefix, []byte{nib}), key[1:], proof)
	default:
		return nil, false, nil
	}
}

// encodeForProof re-derives a node's wire encoding directly from its
// children's digests. A kindHash child contributes its stored digest; a
// concrete child is committed (see digestOf) to obtain its digest.
func (t *Trie) encodeForProof(n *node, prefix []byte) ([]byte, error) {
	enc := encodedNode{Kind: n.kind, Path: n.path, Value: n.value}
	switch n.kind {
	case kindExtension:
		if n.child != nil {
			d, err := t.digestOf(n.child, appendPath(prefix, n.path))
			if err != nil {
				return nil, err
			}
			enc.Child = d
		}
	case kindBranch:
		for i, c := range n.children {
			if c == nil {
				continue
			}
			d, err := t.digestOf(c, appendPath(prefix, []byte{byte(i)}))
			if err != nil {
				return nil, err
			}
			enc.Children[i] = d
		}
	}
	return t.store.codec.Encode(enc)
}

func (t *Trie) digestOf(n *node, path []byte) (*Digest, error) {
	if n.kind == kindHash {
		d := n.digest
		return &d, nil
	}
	return t.store.commit(n, path)
}

// IterateAll walks every (key, value) pair in the trie in ascending key
// order, invoking fn for each. Iteration stops at the first error fn
// returns.
func (t *Trie) IterateAll(fn func(key, value []byte) error) error {
	return t.iterate(t.root, nil, nil, fn)
}

func (t *Trie) iterate(n *node, prefix, keySoFar []byte, fn func(key, value []byte) error) error {
	n, err := t.store.resolve(n, prefix)
	if err != nil {
		return err
	}
	if n == nil {
		return nil
	}
	switch n.kind {
	case kindLeaf:
		return fn(nibblesToBytes(appendPath(keySoFar, n.path)), n.value)
	case kindExtension:
		return t.iterate(n.child, appendPath(prefix, n.path), appendPath(keySoFar, n.path), fn)
	case kindBranch:
		if n.value != nil {
			if err := fn(nibblesToBytes(keySoFar), n.value); err != nil {
				return err
			}
		}
		for i, c := range n.children {
			if c == nil {
				continue
			}
			nib := byte(i)
			if err := t.iterate(c, appendPath(prefix, []byte{nib}), appendPath(keySoFar, []byte{nib}), fn); err != nil {
				return err
			}
		}
	}
	return nil
}
