package worldstate

import (
	"testing"

	"github.com/parallelchain-io/go-world-state/network"
	"github.com/parallelchain-io/go-world-state/store"
	"github.com/stretchr/testify/require"
)

func addr(b byte) Address {
	var a Address
	a[0] = b
	return a
}

func TestAccountsTrieFieldRoundTrip(t *testing.T) {
	for _, version := range []Version{V1, V2} {
		backend := store.NewMemBackend()
		ws := New(backend, version, Options{})

		a := addr(0x01)
		ok, err := ws.Accounts().ContainsNonce(a)
		require.NoError(t, err)
		require.False(t, ok)

		require.NoError(t, ws.Accounts().SetNonce(a, 42))
		require.NoError(t, ws.Accounts().SetBalance(a, 100))
		require.NoError(t, ws.Accounts().SetCode(a, []byte("bytecode")))
		require.NoError(t, ws.Accounts().SetCbiVersion(a, 1))

		nonce, err := ws.Accounts().Nonce(a)
		require.NoError(t, err)
		require.EqualValues(t, 42, nonce)

		balance, err := ws.Accounts().Balance(a)
		require.NoError(t, err)
		require.EqualValues(t, 100, balance)

		code, err := ws.Accounts().Code(a)
		require.NoError(t, err)
		require.Equal(t, []byte("bytecode"), code)

		cbi, hasCbi, err := ws.Accounts().CbiVersion(a)
		require.NoError(t, err)
		require.True(t, hasCbi)
		require.EqualValues(t, 1, cbi)

		// untouched account still reports defaults
		other := addr(0x02)
		nonce, err = ws.Accounts().Nonce(other)
		require.NoError(t, err)
		require.Zero(t, nonce)
	}
}

func TestWorldStateCloseAndReopen(t *testing.T) {
	for _, version := range []Version{V1, V2} {
		backend := store.NewMemBackend()
		ws := New(backend, version, Options{})

		a := addr(0x10)
		require.NoError(t, ws.Accounts().SetNonce(a, 7))

		st, err := ws.Storage(a)
		require.NoError(t, err)
		require.NoError(t, st.Set([]byte("slot1"), []byte("value1")))

		root, batch, err := ws.Close()
		require.NoError(t, err)
		backend.Apply(batch)

		reopened := Open(backend, root, version, Options{})
		nonce, err := reopened.Accounts().Nonce(a)
		require.NoError(t, err)
		require.EqualValues(t, 7, nonce)

		st2, err := reopened.Storage(a)
		require.NoError(t, err)
		v, ok, err := st2.Get([]byte("slot1"))
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []byte("value1"), v)
	}
}

func TestStorageIsolatedAcrossAddresses(t *testing.T) {
	backend := store.NewMemBackend()
	ws := New(backend, V2, Options{})

	a1, a2 := addr(0x01), addr(0x02)
	st1, err := ws.Storage(a1)
	require.NoError(t, err)
	st2, err := ws.Storage(a2)
	require.NoError(t, err)

	require.NoError(t, st1.Set([]byte("k"), []byte("from-a1")))
	require.NoError(t, st2.Set([]byte("k"), []byte("from-a2")))

	v1, ok, err := st1.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("from-a1"), v1)

	v2, ok, err := st2.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("from-a2"), v2)
}

func TestAccountsTrieProof(t *testing.T) {
	backend := store.NewMemBackend()
	ws := New(backend, V2, Options{})
	a := addr(0x05)
	require.NoError(t, ws.Accounts().SetBalance(a, 999))
	root, batch, err := ws.Close()
	require.NoError(t, err)
	backend.Apply(batch)

	ws = Open(backend, root, V2, Options{})
	balance, proof, err := ws.Accounts().BalanceWithProof(a)
	require.NoError(t, err)
	require.EqualValues(t, 999, balance)
	require.NotEmpty(t, proof)
	require.Equal(t, ProofLevelAccounts, ProofLevel(proof[0][0]))
}

func TestAccountsTrieAll(t *testing.T) {
	backend := store.NewMemBackend()
	ws := New(backend, V2, Options{})
	a1, a2 := addr(0x01), addr(0x02)
	require.NoError(t, ws.Accounts().SetNonce(a1, 1))
	require.NoError(t, ws.Accounts().SetBalance(a1, 50))
	require.NoError(t, ws.Accounts().SetNonce(a2, 2))

	all, err := ws.Accounts().All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.EqualValues(t, 1, all[a1].Nonce)
	require.EqualValues(t, 50, all[a1].Balance)
	require.EqualValues(t, 2, all[a2].Nonce)
}

func TestNetworkAccountUsesReservedAddress(t *testing.T) {
	backend := store.NewMemBackend()
	ws := New(backend, V2, Options{})

	na, err := ws.NetworkAccount()
	require.NoError(t, err)
	require.NotNil(t, na)

	_, err = ws.Storage(network.NetworkAddress)
	require.NoError(t, err)
}
