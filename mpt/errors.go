package mpt

import "golang.org/x/xerrors"

// Error taxonomy for the MPT engine (spec.md §7), declared as sentinels
// with golang.org/x/xerrors, the teacher's own choice in trie/errors.go.
var (
	ErrInvalidStateRoot     = xerrors.New("mpt: invalid state root")
	ErrIncompleteDatabase   = xerrors.New("mpt: incomplete database")
	ErrValueAtIncompleteKey = xerrors.New("mpt: value at incomplete key")
	ErrDecoderError         = xerrors.New("mpt: decoder error")
	ErrInvalidHash          = xerrors.New("mpt: invalid hash")
	ErrEmptyTrie            = xerrors.New("mpt: empty trie")
)
