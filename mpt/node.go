package mpt

// kind discriminates the node shapes the engine mutates and persists
// (spec.md §4.4).
type kind byte

const (
	// kindHash is a lazily-resolved pointer: only digest is meaningful.
	// Encountering one during traversal means "load from the backend
	// before going further".
	kindHash kind = iota
	kindLeaf
	kindExtension
	kindBranch
)

// node is the live, in-memory trie node. Children of a branch and the
// target of an extension are themselves *node, which may be kindHash
// (not yet loaded) or fully resolved. This mirrors the classic
// shortNode/fullNode/hashNode split used by every production Go MPT in the
// reference pack (go-ethereum, vechain/thor) — collapsed here into one
// struct with a kind tag for a smaller surface.
type node struct {
	kind kind

	// valid for kindHash: the digest to resolve on next access.
	digest Digest

	// valid for kindLeaf (remaining key nibbles) and kindExtension
	// (shared prefix nibbles).
	path []byte

	// valid for kindLeaf (the stored value) and, optionally, kindBranch
	// (the value of a key that terminates exactly at this branch).
	value []byte

	// valid for kindExtension: the single child this node points to.
	child *node

	// valid for kindBranch: one slot per nibble, nil meaning absent.
	children [16]*node
}

func hashNode(d Digest) *node { return &node{kind: kindHash, digest: d} }

func leafNode(path, value []byte) *node {
	return &node{kind: kindLeaf, path: append([]byte(nil), path...), value: append([]byte(nil), value...)}
}

func extensionNode(path []byte, child *node) *node {
	return &node{kind: kindExtension, path: append([]byte(nil), path...), child: child}
}

func branchNode() *node { return &node{kind: kindBranch} }

// childCount reports how many of a branch's 16 nibble slots are occupied.
func (n *node) childCount() int {
	c := 0
	for _, ch := range n.children {
		if ch != nil {
			c++
		}
	}
	return c
}

// soleChild returns the single occupied nibble slot of a branch, if exactly
// one is occupied.
func (n *node) soleChild() (nibble byte, child *node, ok bool) {
	found := -1
	for i, ch := range n.children {
		if ch != nil {
			if found != -1 {
				return 0, nil, false
			}
			found = i
		}
	}
	if found == -1 {
		return 0, nil, false
	}
	return byte(found), n.children[found], true
}
