package worldstate

import (
	"github.com/parallelchain-io/go-world-state/mpt"
	"github.com/parallelchain-io/go-world-state/network"
	"github.com/parallelchain-io/go-world-state/triekey"
	"golang.org/x/xerrors"
)

// Re-exports of the lower-layer error taxonomy (spec.md §7), so callers of
// this package can xerrors.Is against a single import. Each is wrapped, not
// redefined: an error returned from deep inside the MPT still satisfies
// xerrors.Is(err, worldstate.ErrInvalidStateRoot) after every Accounts/
// Storage/WorldState wrap, because xerrors.Errorf("...: %w", err) preserves
// the original sentinel in the chain.
var (
	ErrInvalidStateRoot     = mpt.ErrInvalidStateRoot
	ErrIncompleteDatabase   = mpt.ErrIncompleteDatabase
	ErrValueAtIncompleteKey = mpt.ErrValueAtIncompleteKey
	ErrDecoderError         = mpt.ErrDecoderError
	ErrInvalidHash          = mpt.ErrInvalidHash
	ErrEmptyTrie            = mpt.ErrEmptyTrie

	ErrInvalidAccountField  = triekey.ErrInvalidAccountField
	ErrInvalidPublicAddress = triekey.ErrInvalidPublicAddress
	ErrOther                = triekey.ErrOther

	ErrIndexMapFull  = network.ErrIndexMapFull
	ErrIndexHeapFull = network.ErrIndexHeapFull
)

// ErrDecodeError and ErrEncodeError belong to this layer itself, not to
// the MPT. ErrDecodeError is raised when an accounts-trie value is malformed
// (AccountsTrie.All(), the field readers, and Upgrade, which reads through
// All()). No function in this package returns ErrEncodeError.
var (
	ErrDecodeError = xerrors.New("worldstate: decode error")
	ErrEncodeError = xerrors.New("worldstate: encode error")
)
