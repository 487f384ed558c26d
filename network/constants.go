package network

// NetworkAddress is the reserved all-zero address the network's own account
// (pools, deposits, validator sets) is stored under.
var NetworkAddress = Address{}

// MaxStakesPerPool bounds how many delegated stakes one pool's IndexHeap may
// hold (= 2^7).
const MaxStakesPerPool = 128

// MaxValidatorSetSize bounds how many pools a validator-set IndexMap/
// IndexHeap may hold (= 2^6).
const MaxValidatorSetSize = 64
