package passto

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
	"slices"
	"unicode/utf8"
)

// DigestType is the kind of encoding used to render a hash as text.
type DigestType string

const (
	DigestTypeHex            DigestType = "hex"
	DigestTypeBase64         DigestType = "base64"
	DigestTypeBase64URL      DigestType = "base64-url"
	DigestTypeCustomAlphabet DigestType = "custom-alphabet"

	// MinAlphabetLength is the minimum number of characters of a custom alphabet.
	MinAlphabetLength = 16
)

// ParseDigestType returns the digest type with the given name, ignoring case,
// dashes and underscores.
func ParseDigestType(name string) (DigestType, error) {
	dt, ok := findTag(name, allDigestTypes)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDigestAlgorithm, name)
	}
	return dt, nil
}

func (dt DigestType) IsValid() bool {
	switch dt {
	case DigestTypeHex, DigestTypeBase64, DigestTypeBase64URL, DigestTypeCustomAlphabet:
		return true
	}
	return false
}

func (dt DigestType) String() string {
	return string(dt)
}

// DigestAlgorithm renders hash bytes into a printable string.
// Alphabet is only used by DigestTypeCustomAlphabet.
type DigestAlgorithm struct {
	Type     DigestType
	Alphabet string
}

// DigestHex encodes as lowercase hexadecimal.
func DigestHex() DigestAlgorithm {
	return DigestAlgorithm{Type: DigestTypeHex}
}

// DigestBase64 encodes as standard base64 with padding.
func DigestBase64() DigestAlgorithm {
	return DigestAlgorithm{Type: DigestTypeBase64}
}

// DigestBase64URL encodes as url-safe base64 without padding.
func DigestBase64URL() DigestAlgorithm {
	return DigestAlgorithm{Type: DigestTypeBase64URL}
}

// CustomAlphabet encodes as a numeral in the base of the given alphabet.
func CustomAlphabet(alphabet string) DigestAlgorithm {
	return DigestAlgorithm{Type: DigestTypeCustomAlphabet, Alphabet: alphabet}
}

// Validate checks whether the digest algorithm is known.
// The alphabet length is checked by Encode.
func (da DigestAlgorithm) Validate() error {
	if !da.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDigestAlgorithm, da.Type)
	}
	return nil
}

// Encode renders data as text.
func (da DigestAlgorithm) Encode(data []byte) (string, error) {
	switch da.Type {
	case DigestTypeHex:
		return hex.EncodeToString(data), nil
	case DigestTypeBase64:
		return base64.StdEncoding.EncodeToString(data), nil
	case DigestTypeBase64URL:
		return base64.RawURLEncoding.EncodeToString(data), nil
	case DigestTypeCustomAlphabet:
		return encodeCustomAlphabet(da.Alphabet, data)
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDigestAlgorithm, da.Type)
	}
}

func (da DigestAlgorithm) String() string {
	if da.Type == DigestTypeCustomAlphabet {
		return fmt.Sprintf("%s(%q)", da.Type, da.Alphabet)
	}
	return string(da.Type)
}

// encodeCustomAlphabet reads data as a little-endian unsigned integer and
// writes its digits in the base of the alphabet, least significant digit
// first. Digits map to the alphabet sorted by code point. Duplicate
// characters are kept and count towards the base.
// A zero value encodes to the empty string.
func encodeCustomAlphabet(alphabet string, data []byte) (string, error) {
	if utf8.RuneCountInString(alphabet) < MinAlphabetLength {
		return "", fmt.Errorf(
			"%w: %d characters, need at least %d",
			ErrCustomAlphabetTooShort,
			utf8.RuneCountInString(alphabet),
			MinAlphabetLength,
		)
	}

	symbols := []rune(alphabet)
	slices.Sort(symbols)

	// big.Int reads big-endian.
	be := make([]byte, len(data))
	for i, b := range data {
		be[len(data)-1-i] = b
	}
	value := new(big.Int).SetBytes(be)

	var (
		base   = big.NewInt(int64(len(symbols)))
		digit  = new(big.Int)
		result = make([]rune, 0, len(data)*2)
	)
	for value.Sign() > 0 {
		value.QuoRem(value, base, digit)
		result = append(result, symbols[digit.Int64()])
	}

	return string(result), nil
}
