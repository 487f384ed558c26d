package worldstate

import "github.com/parallelchain-io/go-world-state/mpt"

// ProofNode is one link of a Merkle proof, tagged with the proof level
// (ACCOUNTS or STORAGE) that produced it so a proof for a storage slot can
// never be confused with a proof for an accounts-trie field, even though
// both are otherwise just lists of node encodings (spec.md §4.6/§4.7).
type ProofNode []byte

// taggedProofNode prepends level's byte tag to an MPT-level proof node.
func taggedProofNode(level ProofLevel, node mpt.ProofNode) ProofNode {
	out := make([]byte, 0, 1+len(node))
	out = append(out, byte(level))
	out = append(out, node...)
	return ProofNode(out)
}
