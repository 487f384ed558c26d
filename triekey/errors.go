package triekey

import "golang.org/x/xerrors"

var (
	// ErrInvalidAccountField is returned when an accounts-trie key is too
	// short to carry an account-field byte, or the byte it carries does not
	// name a known field.
	ErrInvalidAccountField = xerrors.New("triekey: invalid account field")
	// ErrInvalidPublicAddress is returned when a key is too short to carry
	// a full address prefix.
	ErrInvalidPublicAddress = xerrors.New("triekey: invalid public address")
	// ErrOther covers malformed keys that don't fit the two cases above,
	// such as a V1 key too short to carry its visibility byte.
	ErrOther = xerrors.New("triekey: malformed key")
)
