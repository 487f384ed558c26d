package network

import "golang.org/x/xerrors"

var (
	// ErrIndexMapFull is returned by Push/Reset when the requested write
	// would exceed the collection's fixed capacity.
	ErrIndexMapFull = xerrors.New("network: index map operation error")
	// ErrIndexHeapFull is returned by Insert when the heap is at capacity,
	// and by InsertExtract when the heap is at capacity and the candidate
	// value sorts before the current minimum.
	ErrIndexHeapFull = xerrors.New("network: index heap operation error")
)
