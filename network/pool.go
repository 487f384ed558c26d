package network

import "bytes"

// Pool is the place stake owners delegate power to, grounded on
// original_source/src/network_account_storage/pool.rs's Pool.
type Pool struct {
	Operator       Address
	CommissionRate uint8
	Power          uint64
	OperatorStake  *Stake // nil when the operator has not self-staked
}

const (
	poolFieldOperator        = 0x00
	poolFieldPower           = 0x01
	poolFieldCommissionRate  = 0x02
	poolFieldOperatorStake   = 0x03
	poolFieldDelegatedStakes = 0x04
)

// PoolDict is the dictionary-style accessor for one pool's fields plus its
// delegated-stakes heap, grounded on
// original_source/src/network_account_storage/pool.rs's PoolDict.
type PoolDict struct {
	prefix   []byte
	store    Storage
	capacity uint32
}

// NewPoolDict scopes a PoolDict to the pool run by operator.
func NewPoolDict(store Storage, operator Address, delegatedStakeCapacity uint32) *PoolDict {
	prefix := make([]byte, 0, triekeyAddressLength)
	prefix = append(prefix, operator.Bytes()...)
	return &PoolDict{prefix: prefix, store: store, capacity: delegatedStakeCapacity}
}

func (p *PoolDict) field(tag byte) []byte {
	return append(append([]byte(nil), p.prefix...), tag)
}

func (p *PoolDict) Exists() bool {
	return p.store.Contains(p.field(poolFieldOperator))
}

func (p *PoolDict) Operator() (Address, bool) {
	b, ok := p.store.Get(p.field(poolFieldOperator))
	if !ok {
		return Address{}, false
	}
	return AddressFromBytes(b)
}

func (p *PoolDict) SetOperator(operator Address) {
	p.store.Set(p.field(poolFieldOperator), operator.Bytes())
}

func (p *PoolDict) Power() (uint64, bool) {
	b, ok := p.store.Get(p.field(poolFieldPower))
	if !ok || len(b) != 8 {
		return 0, false
	}
	return leUint64(b), true
}

func (p *PoolDict) SetPower(power uint64) {
	p.store.Set(p.field(poolFieldPower), leBytes64(power))
}

func (p *PoolDict) CommissionRate() (uint8, bool) {
	b, ok := p.store.Get(p.field(poolFieldCommissionRate))
	if !ok || len(b) != 1 {
		return 0, false
	}
	return b[0], true
}

func (p *PoolDict) SetCommissionRate(rate uint8) {
	p.store.Set(p.field(poolFieldCommissionRate), []byte{rate})
}

func (p *PoolDict) OperatorStake() (*Stake, bool) {
	b, ok := p.store.Get(p.field(poolFieldOperatorStake))
	if !ok {
		return nil, false
	}
	if len(b) == 0 {
		return nil, true
	}
	s := decodeStake(b)
	return &s, true
}

func (p *PoolDict) SetOperatorStake(stake *Stake) {
	if stake == nil {
		p.store.Set(p.field(poolFieldOperatorStake), []byte{})
		return
	}
	p.store.Set(p.field(poolFieldOperatorStake), encodeStake(*stake))
}

// DelegatedStakes returns the min-heap of this pool's delegated stakes,
// ordered by ascending power.
func (p *PoolDict) DelegatedStakes() *IndexHeap[Stake] {
	domain := append(append([]byte(nil), p.prefix...), poolFieldDelegatedStakes)
	return NewIndexHeap[Stake](p.store, domain, p.capacity, encodeStake, decodeStake, stakeLess)
}

// Delete removes every field and clears the delegated-stakes heap.
func (p *PoolDict) Delete() {
	p.store.Delete(p.field(poolFieldOperator))
	p.store.Delete(p.field(poolFieldPower))
	p.store.Delete(p.field(poolFieldCommissionRate))
	p.store.Delete(p.field(poolFieldOperatorStake))
	p.DelegatedStakes().Clear()
}

// ToPool reads every field of a PoolDict into a Pool value, failing if any
// required field is absent.
func (p *PoolDict) ToPool() (Pool, bool) {
	operator, ok := p.Operator()
	if !ok {
		return Pool{}, false
	}
	commission, ok := p.CommissionRate()
	if !ok {
		return Pool{}, false
	}
	power, ok := p.Power()
	if !ok {
		return Pool{}, false
	}
	stake, _ := p.OperatorStake()
	return Pool{Operator: operator, CommissionRate: commission, Power: power, OperatorStake: stake}, true
}

// PoolAddress is the value an IndexMap holds for a validator set (previous
// or current), grounded on pool.rs's PoolAddress.
type PoolAddress struct {
	Address Address
}

func (p PoolAddress) Key() []byte { return p.Address.Bytes() }

func encodePoolAddress(p PoolAddress) []byte { return p.Address.Bytes() }

func decodePoolAddress(b []byte) PoolAddress {
	a, _ := AddressFromBytes(b)
	return PoolAddress{Address: a}
}

// NewValidatorSet returns the IndexMap of pool addresses backing the
// previous or current validator set.
func NewValidatorSet(store Storage, domain []byte, capacity uint32) *IndexMap[PoolAddress] {
	return NewIndexMap[PoolAddress](store, domain, capacity, encodePoolAddress, decodePoolAddress)
}

// PoolKey is a pool's address and power, the value the next-validator-set
// IndexHeap orders by, grounded on pool.rs's PoolKey.
type PoolKey struct {
	Operator Address
	Power    uint64
}

func (k PoolKey) Key() []byte { return k.Operator.Bytes() }

// poolKeyLess orders by ascending power, breaking ties by operator address,
// matching PoolKey::cmp.
func poolKeyLess(a, b PoolKey) bool {
	if a.Power != b.Power {
		return a.Power < b.Power
	}
	return bytes.Compare(a.Operator.Bytes(), b.Operator.Bytes()) < 0
}

func encodePoolKey(k PoolKey) []byte {
	out := make([]byte, 0, triekeyAddressLength+8)
	out = append(out, k.Operator.Bytes()...)
	out = append(out, leBytes64(k.Power)...)
	return out
}

func decodePoolKey(b []byte) PoolKey {
	var k PoolKey
	if len(b) < triekeyAddressLength+8 {
		return k
	}
	addr, _ := AddressFromBytes(b[:triekeyAddressLength])
	k.Operator = addr
	k.Power = leUint64(b[triekeyAddressLength : triekeyAddressLength+8])
	return k
}

// NewNextValidatorPools returns the min-heap of candidate validator pools
// for the next epoch, ordered by ascending power (so the weakest candidate
// is always the cheapest to evict).
func NewNextValidatorPools(store Storage, domain []byte, capacity uint32) *IndexHeap[PoolKey] {
	return NewIndexHeap[PoolKey](store, domain, capacity, encodePoolKey, decodePoolKey, poolKeyLess)
}
