package triekey

import (
	"testing"

	"github.com/parallelchain-io/go-world-state/store"
	"github.com/stretchr/testify/require"
)

func TestAccountKeyRoundTrip(t *testing.T) {
	addr := Address{0x01, 0x02, 0x03}
	for _, version := range []store.Version{store.V1, store.V2} {
		key := AccountKey(addr, FieldBalance, version)

		gotAddr, err := AddressOf(key)
		require.NoError(t, err)
		require.Equal(t, addr, gotAddr)

		gotField, err := AccountFieldOf(key, version)
		require.NoError(t, err)
		require.Equal(t, FieldBalance, gotField)
	}
}

func TestStorageKeyStripVisibility(t *testing.T) {
	raw := []byte("some-storage-key")

	v1Key := StorageKey(raw, store.V1)
	require.NotEqual(t, raw, v1Key)
	stripped, err := StripVisibility(v1Key, store.V1)
	require.NoError(t, err)
	require.Equal(t, raw, stripped)

	v2Key := StorageKey(raw, store.V2)
	require.Equal(t, raw, v2Key)
	stripped, err = StripVisibility(v2Key, store.V2)
	require.NoError(t, err)
	require.Equal(t, raw, stripped)
}

func TestAccountFieldOfRejectsInvalidField(t *testing.T) {
	addr := Address{0xAA}
	key := AccountKey(addr, FieldStorageRoot, store.V2)
	key[len(key)-1] = 0xFF // corrupt the field tag byte
	_, err := AccountFieldOf(key, store.V2)
	require.ErrorIs(t, err, ErrInvalidAccountField)
}

func TestAddressOfRejectsShortKey(t *testing.T) {
	_, err := AddressOf([]byte{0x01, 0x02})
	require.ErrorIs(t, err, ErrInvalidPublicAddress)
}
