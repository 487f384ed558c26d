package network

import "encoding/binary"

// Stake represents one account's delegated (or operator-owned) voting
// power, grounded on original_source/src/network/stake.rs's Stake.
type Stake struct {
	Owner Address
	Power uint64
}

// Key identifies a Stake by its owner: within one pool's delegated-stakes
// heap, an owner may only appear once.
func (s Stake) Key() []byte {
	return s.Owner.Bytes()
}

// stakeLess orders stakes by ascending power, the ordering the original's
// StakeValue::cmp uses for the delegated-stakes min-heap.
func stakeLess(a, b Stake) bool {
	return a.Power < b.Power
}

func encodeStake(s Stake) []byte {
	out := make([]byte, 0, triekeyAddressLength+8)
	out = append(out, s.Owner.Bytes()...)
	out = binary.LittleEndian.AppendUint64(out, s.Power)
	return out
}

func decodeStake(b []byte) Stake {
	var s Stake
	if len(b) < triekeyAddressLength+8 {
		return s
	}
	addr, _ := AddressFromBytes(b[:triekeyAddressLength])
	s.Owner = addr
	s.Power = binary.LittleEndian.Uint64(b[triekeyAddressLength : triekeyAddressLength+8])
	return s
}
