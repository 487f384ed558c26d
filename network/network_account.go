package network

// Domain prefixes partitioning the network account's own keyspace,
// grounded on original_source/src/network/network_account.rs's
// network_account_data module.
var (
	domainPrevValidatorPools = []byte{0x00}
	domainValidatorPools     = []byte{0x01}
	domainNextValidatorPools = []byte{0x02}
	domainPools              = []byte{0x03}
	domainDeposits           = []byte{0x04}
	keyCurrentEpoch          = []byte{0x05}
)

// Account is the reserved network account's storage schema: previous/
// current/next validator sets, per-operator pools, per-(operator, owner)
// deposits, and the current epoch counter. Grounded on
// original_source/src/network/network_account.rs's NetworkAccountSized.
type Account struct {
	store Storage
}

// NewAccount wraps store (expected to be a StorageTrie session opened
// against NetworkAddress) as the network account's accessor.
func NewAccount(store Storage) *Account {
	return &Account{store: store}
}

// PreviousValidatorPools returns the validator set that was active last
// epoch.
func (a *Account) PreviousValidatorPools() *IndexMap[PoolAddress] {
	return NewValidatorSet(a.store, domainPrevValidatorPools, MaxValidatorSetSize)
}

// ValidatorPools returns the validator set active this epoch.
func (a *Account) ValidatorPools() *IndexMap[PoolAddress] {
	return NewValidatorSet(a.store, domainValidatorPools, MaxValidatorSetSize)
}

// NextValidatorPools returns the candidate pool heap being assembled for
// the next epoch.
func (a *Account) NextValidatorPools() *IndexHeap[PoolKey] {
	return NewNextValidatorPools(a.store, domainNextValidatorPools, MaxValidatorSetSize)
}

// Pool returns the dictionary accessor for the pool run by operator.
func (a *Account) Pool(operator Address) *PoolDict {
	prefix := append(append([]byte(nil), domainPools...), operator.Bytes()...)
	return &PoolDict{prefix: prefix, store: a.store, capacity: MaxStakesPerPool}
}

// Deposit returns the dictionary accessor for owner's deposit against
// operator's pool.
func (a *Account) Deposit(operator, owner Address) *DepositDict {
	prefix := append(append([]byte(nil), domainDeposits...), operator.Bytes()...)
	prefix = append(prefix, owner.Bytes()...)
	return &DepositDict{prefix: prefix, store: a.store}
}

// CurrentEpoch returns the network's current epoch counter, defaulting to 0
// if never set.
func (a *Account) CurrentEpoch() uint64 {
	b, ok := a.store.Get(keyCurrentEpoch)
	if !ok || len(b) != 8 {
		return 0
	}
	return leUint64(b)
}

// SetCurrentEpoch overwrites the epoch counter.
func (a *Account) SetCurrentEpoch(epoch uint64) {
	a.store.Set(keyCurrentEpoch, leBytes64(epoch))
}
