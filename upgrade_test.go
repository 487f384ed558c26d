package worldstate

import (
	"testing"

	"github.com/parallelchain-io/go-world-state/store"
	"github.com/stretchr/testify/require"
)

// TestUpgradePreservesAccountsAndStorage exercises Upgrade against a v1
// WorldState whose storage writes are still only in the live, uncommitted
// session cache (st1 was never Closed): Upgrade's own drain step must
// commit it before reading the accounts trie's storage-root field, or these
// writes would be invisible.
func TestUpgradePreservesAccountsAndStorage(t *testing.T) {
	backend := store.NewMemBackend()
	v1 := New(backend, V1, Options{})

	a1, a2 := addr(0x01), addr(0x02)
	require.NoError(t, v1.Accounts().SetNonce(a1, 5))
	require.NoError(t, v1.Accounts().SetBalance(a1, 1000))
	require.NoError(t, v1.Accounts().SetCode(a1, []byte("code-a1")))
	require.NoError(t, v1.Accounts().SetCbiVersion(a1, 3))
	require.NoError(t, v1.Accounts().SetNonce(a2, 9))

	st1, err := v1.Storage(a1)
	require.NoError(t, err)
	require.NoError(t, st1.Set([]byte("slot-x"), []byte("val-x")))
	require.NoError(t, st1.Set([]byte("slot-y"), []byte("val-y")))

	v2, err := Upgrade(v1)
	require.NoError(t, err)
	require.Equal(t, V2, v2.Version())

	nonce, err := v2.Accounts().Nonce(a1)
	require.NoError(t, err)
	require.EqualValues(t, 5, nonce)

	balance, err := v2.Accounts().Balance(a1)
	require.NoError(t, err)
	require.EqualValues(t, 1000, balance)

	code, err := v2.Accounts().Code(a1)
	require.NoError(t, err)
	require.Equal(t, []byte("code-a1"), code)

	cbi, hasCbi, err := v2.Accounts().CbiVersion(a1)
	require.NoError(t, err)
	require.True(t, hasCbi)
	require.EqualValues(t, 3, cbi)

	nonce2, err := v2.Accounts().Nonce(a2)
	require.NoError(t, err)
	require.EqualValues(t, 9, nonce2)

	st1v2, err := v2.Storage(a1)
	require.NoError(t, err)
	v, ok, err := st1v2.Get([]byte("slot-x"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("val-x"), v)

	v, ok, err = st1v2.Get([]byte("slot-y"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("val-y"), v)
}

// TestUpgradeAfterCloseAndReopen exercises Upgrade against a v1 WorldState
// rebuilt from a persisted state root, with no live session cache at all:
// the storage trie must come entirely from the committed backend, matching
// the Rust destroy/build contract of reading storage strictly from the
// persisted storage_hash.
func TestUpgradeAfterCloseAndReopen(t *testing.T) {
	backend := store.NewMemBackend()
	v1 := New(backend, V1, Options{})

	a := addr(0x03)
	require.NoError(t, v1.Accounts().SetBalance(a, 250))
	st, err := v1.Storage(a)
	require.NoError(t, err)
	require.NoError(t, st.Set([]byte("k"), []byte("v")))

	root, batch, err := v1.Close()
	require.NoError(t, err)
	backend.Apply(batch)

	v1 = Open(backend, root, V1, Options{})

	v2, err := Upgrade(v1)
	require.NoError(t, err)

	balance, err := v2.Accounts().Balance(a)
	require.NoError(t, err)
	require.EqualValues(t, 250, balance)

	st2, err := v2.Storage(a)
	require.NoError(t, err)
	v, ok, err := st2.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), v)
}

func TestUpgradeRejectsNonV1Source(t *testing.T) {
	backend := store.NewMemBackend()
	v2 := New(backend, V2, Options{})
	_, err := Upgrade(v2)
	require.Error(t, err)
}

func TestUpgradeSkipsAddressesWithNoStorage(t *testing.T) {
	backend := store.NewMemBackend()
	v1 := New(backend, V1, Options{})
	a := addr(0x07)
	require.NoError(t, v1.Accounts().SetNonce(a, 1))

	v2, err := Upgrade(v1)
	require.NoError(t, err)
	hasRoot, err := v2.Accounts().ContainsStorageRoot(a)
	require.NoError(t, err)
	require.False(t, hasRoot)
}
