package network

import "encoding/binary"

func leUint64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

func leBytes64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}
