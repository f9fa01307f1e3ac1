package passto

import (
	"crypto/rand"
	"fmt"

	"github.com/mr-tron/base58"
)

// MinRandomPassphraseSize is the minimum entropy of a generated passphrase in bytes.
const MinRandomPassphraseSize = 16

// NewPassphrase returns size bytes of random passphrase material.
func NewPassphrase(size int) ([]byte, error) {
	if size < MinRandomPassphraseSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrPassphraseTooShort, size, MinRandomPassphraseSize)
	}

	passphrase := make([]byte, size)
	if _, err := rand.Read(passphrase); err != nil {
		return nil, fmt.Errorf("failed to read random passphrase: %w", err)
	}
	return passphrase, nil
}

// NewPrintablePassphrase returns a random passphrase with size bytes of
// entropy in base58 form. The text itself is the passphrase, so it can be
// written down and typed in again.
func NewPrintablePassphrase(size int) (string, error) {
	passphrase, err := NewPassphrase(size)
	if err != nil {
		return "", err
	}
	defer clear(passphrase)

	return EncodePassphrase(passphrase), nil
}

// EncodePassphrase returns the passphrase material in base58 form.
func EncodePassphrase(passphrase []byte) string {
	return base58.Encode(passphrase)
}

// DecodePassphrase reverses EncodePassphrase.
func DecodePassphrase(encoded string) ([]byte, error) {
	return base58.Decode(encoded)
}
