package mpt

import (
	"github.com/ethereum/go-ethereum/rlp"
)

// encodedNode is the physical, on-disk shape of a node: children are always
// digests, never resolved subtrees. It is the boundary between the live
// node graph (package-internal, *node-linked) and the wire format.
type encodedNode struct {
	Kind     kind
	Path     []byte
	Value    []byte
	Child    *Digest
	Children [16]*Digest
}

// NodeCodec serializes/deserializes the physical form of a trie node.
// spec.md §1 names this library a deliberately external collaborator ("the
// MPT codec library that serializes internal trie nodes"); NodeCodec is the
// seam and rlpCodec below is the concrete default, built on the RLP
// encoding every production Go MPT in the reference pack (go-ethereum,
// vechain/thor, erigon, bsc-erigon) already uses for exactly this purpose.
type NodeCodec interface {
	Encode(n encodedNode) ([]byte, error)
	Decode(data []byte) (encodedNode, error)
}

// wireNode is the RLP-friendly shape of encodedNode: pointers become plain
// byte slices (nil/empty meaning "absent") because RLP cannot encode Go
// pointers directly.
type wireNode struct {
	Kind     uint8
	Path     []byte
	Value    []byte
	Child    []byte
	Children [16][]byte
}

type rlpCodec struct{}

func (rlpCodec) Encode(n encodedNode) ([]byte, error) {
	w := wireNode{Kind: uint8(n.Kind), Path: n.Path, Value: n.Value}
	if n.Child != nil {
		w.Child = n.Child.Bytes()
	}
	for i, c := range n.Children {
		if c != nil {
			w.Children[i] = c.Bytes()
		}
	}
	return rlp.EncodeToBytes(&w)
}

func (rlpCodec) Decode(data []byte) (encodedNode, error) {
	var w wireNode
	if err := rlp.DecodeBytes(data, &w); err != nil {
		return encodedNode{}, ErrDecoderError
	}
	n := encodedNode{Kind: kind(w.Kind), Path: w.Path, Value: w.Value}
	if len(w.Value) == 0 {
		// RLP decodes an absent value as an empty, non-nil slice; the live
		// node graph uses nil to mean "no value at this branch".
		n.Value = nil
	}
	if len(w.Child) > 0 {
		d, ok := DigestFromBytes(w.Child)
		if !ok {
			return encodedNode{}, ErrDecoderError
		}
		n.Child = &d
	}
	for i, cb := range w.Children {
		if len(cb) > 0 {
			d, ok := DigestFromBytes(cb)
			if !ok {
				return encodedNode{}, ErrDecoderError
			}
			n.Children[i] = &d
		}
	}
	return n, nil
}

// DefaultCodec is the package-wide default NodeCodec.
var DefaultCodec NodeCodec = rlpCodec{}
