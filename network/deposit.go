package network

// Deposit is the amount an owner has staked toward a pool, together with
// whether its epoch rewards auto-compound. Grounded on
// original_source/src/network_account_storage/deposit.rs.
type Deposit struct {
	Balance          uint64
	AutoStakeRewards bool
}

const (
	depositFieldBalance          = 0x00
	depositFieldAutoStakeRewards = 0x01
)

// DepositDict is the dictionary-style accessor for one (operator, owner)
// deposit, grounded on original_source/src/network/deposit.rs's
// DepositDict.
type DepositDict struct {
	prefix []byte
	store  Storage
}

// NewDepositDict scopes a DepositDict to the deposit owned by owner against
// the pool run by operator.
func NewDepositDict(store Storage, operator, owner Address) *DepositDict {
	prefix := make([]byte, 0, 2*triekeyAddressLength)
	prefix = append(prefix, operator.Bytes()...)
	prefix = append(prefix, owner.Bytes()...)
	return &DepositDict{prefix: prefix, store: store}
}

func (d *DepositDict) field(tag byte) []byte {
	return append(append([]byte(nil), d.prefix...), tag)
}

func (d *DepositDict) Exists() bool {
	return d.store.Contains(d.field(depositFieldBalance))
}

func (d *DepositDict) Balance() (uint64, bool) {
	b, ok := d.store.Get(d.field(depositFieldBalance))
	if !ok || len(b) != 8 {
		return 0, false
	}
	return leUint64(b), true
}

func (d *DepositDict) SetBalance(balance uint64) {
	d.store.Set(d.field(depositFieldBalance), leBytes64(balance))
}

func (d *DepositDict) AutoStakeRewards() (bool, bool) {
	b, ok := d.store.Get(d.field(depositFieldAutoStakeRewards))
	if !ok || len(b) != 1 {
		return false, false
	}
	return b[0] == 1, true
}

func (d *DepositDict) SetAutoStakeRewards(on bool) {
	v := byte(0)
	if on {
		v = 1
	}
	d.store.Set(d.field(depositFieldAutoStakeRewards), []byte{v})
}

func (d *DepositDict) Delete() {
	d.store.Delete(d.field(depositFieldBalance))
	d.store.Delete(d.field(depositFieldAutoStakeRewards))
}
