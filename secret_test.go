package passto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPassphrase(t *testing.T) {
	t.Parallel()

	for _, size := range []int{MinRandomPassphraseSize, 32, 64} {
		passphrase, err := NewPassphrase(size)
		require.NoError(t, err)
		assert.Len(t, passphrase, size)
	}

	a, err := NewPassphrase(32)
	require.NoError(t, err)
	b, err := NewPassphrase(32)
	require.NoError(t, err)
	if bytes.Equal(a, b) {
		t.Fatal("two random passphrases are equal")
	}
}

func TestNewPassphrase_TooShort(t *testing.T) {
	t.Parallel()

	for _, size := range []int{-1, 0, MinRandomPassphraseSize - 1} {
		passphrase, err := NewPassphrase(size)
		assert.ErrorIs(t, err, ErrPassphraseTooShort)
		assert.Nil(t, passphrase)

		_, err = NewPrintablePassphrase(size)
		assert.ErrorIs(t, err, ErrPassphraseTooShort)
	}
}

func TestNewPrintablePassphrase(t *testing.T) {
	t.Parallel()

	printable, err := NewPrintablePassphrase(32)
	require.NoError(t, err)

	material, err := DecodePassphrase(printable)
	require.NoError(t, err)
	// Leading zero bytes are kept by base58.
	assert.Len(t, material, 32)
}

func TestEncodePassphrase_RoundTrip(t *testing.T) {
	t.Parallel()

	passphrase, err := NewPassphrase(32)
	require.NoError(t, err)
	encoded := EncodePassphrase(passphrase)

	decoded, err := DecodePassphrase(encoded)
	require.NoError(t, err)
	assert.Equal(t, passphrase, decoded)

	_, err = DecodePassphrase("0OIl")
	assert.Error(t, err)
}
