package passto

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hexAlphabet  = "0123456789abcdef"
	wideAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
)

// sha256("my-secretexample.com")
var referenceDigest, _ = hex.DecodeString("f83d136c4a39e9cd4a923e0d2182f89abe0bd466ef978f09a3e74642afcb2d9b")

func TestDigest_StandardEncodings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		algo DigestAlgorithm
		want string
	}{
		{DigestHex(), "f83d136c4a39e9cd4a923e0d2182f89abe0bd466ef978f09a3e74642afcb2d9b"},
		{DigestBase64(), "+D0TbEo56c1Kkj4NIYL4mr4L1Gbvl48Jo+dGQq/LLZs="},
		{DigestBase64URL(), "-D0TbEo56c1Kkj4NIYL4mr4L1Gbvl48Jo-dGQq_LLZs"},
	}

	for _, tc := range tests {
		t.Run(string(tc.algo.Type), func(t *testing.T) {
			got, err := tc.algo.Encode(referenceDigest)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDigest_Base64URL_NoPadding(t *testing.T) {
	t.Parallel()

	for n := 0; n < 8; n++ {
		got, err := DigestBase64URL().Encode(make([]byte, n))
		require.NoError(t, err)
		assert.NotContains(t, got, "=")
	}
}

func TestDigest_CustomAlphabet_TooShort(t *testing.T) {
	t.Parallel()

	for _, alphabet := range []string{"", "short", "0123456789abcde", "äöüßÄÖÜ"} {
		_, err := CustomAlphabet(alphabet).Encode(referenceDigest)
		assert.ErrorIs(t, err, ErrCustomAlphabetTooShort, "alphabet %q", alphabet)
	}
}

func TestDigest_CustomAlphabet_MinimumLength(t *testing.T) {
	t.Parallel()

	got, err := CustomAlphabet(hexAlphabet).Encode(referenceDigest)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestDigest_CustomAlphabet_LeastSignificantFirst(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"one", []byte{1, 0, 0}, "1"},
		{"two bytes", []byte{0xff, 0x01}, "ff1"},
		{"max two bytes", []byte{0xff, 0xff}, "ffff"},
		{"sixteen", []byte{0x10}, "01"},
		// Little-endian input with least significant digit first swaps the
		// nibbles of each byte compared to hex.
		{"reference", referenceDigest, "8fd331c6a4939edca429e3d012288fa9ebb04d66fe79f8903a7e6424fabcd2b9"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CustomAlphabet(hexAlphabet).Encode(tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDigest_CustomAlphabet_OrderDoesNotMatter(t *testing.T) {
	t.Parallel()

	reversed := []rune(wideAlphabet)
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}

	a, err := CustomAlphabet(wideAlphabet).Encode(referenceDigest)
	require.NoError(t, err)
	b, err := CustomAlphabet(string(reversed)).Encode(referenceDigest)
	require.NoError(t, err)

	assert.Equal(t, "NbfA^r%0wKthlSJ&CoViXT0Dv55Ipj2CO21F$ntMi9", a)
	assert.Equal(t, a, b)
}

func TestDigest_CustomAlphabet_ZeroIsEmpty(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, {}, {0}, {0, 0, 0}, make([]byte, 64)} {
		got, err := CustomAlphabet(hexAlphabet).Encode(data)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestDigest_CustomAlphabet_Unicode(t *testing.T) {
	t.Parallel()

	alphabet := "αβγδεζηθικλμνξοπ"
	got, err := CustomAlphabet(alphabet).Encode([]byte{0xff, 0x01})
	require.NoError(t, err)
	assert.Equal(t, "ππβ", got)
	for _, r := range got {
		assert.True(t, strings.ContainsRune(alphabet, r))
	}
}

func TestDigest_InvalidType(t *testing.T) {
	t.Parallel()

	_, err := DigestAlgorithm{Type: "base32"}.Encode(referenceDigest)
	assert.ErrorIs(t, err, ErrInvalidDigestAlgorithm)
	assert.ErrorIs(t, DigestAlgorithm{}.Validate(), ErrInvalidDigestAlgorithm)
}

func TestParseDigestType(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]DigestType{
		"hex":            DigestTypeHex,
		"Base64":         DigestTypeBase64,
		"base64-url":     DigestTypeBase64URL,
		"Base64Url":      DigestTypeBase64URL,
		"base64_url":     DigestTypeBase64URL,
		"CustomAlphabet": DigestTypeCustomAlphabet,
	} {
		got, err := ParseDigestType(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	for _, name := range []string{"", "base32"} {
		_, err := ParseDigestType(name)
		assert.ErrorIs(t, err, ErrInvalidDigestAlgorithm, name)
	}
}
