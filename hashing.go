package passto

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
)

// HashingAlgorithm selects the cryptographic hash used to reduce the salted
// input to a fixed size digest.
type HashingAlgorithm string

const (
	HashingSHA256 HashingAlgorithm = "sha256"
	HashingSHA512 HashingAlgorithm = "sha512"

	DefaultHashing = HashingSHA256
)

// AllHashingAlgorithms returns all supported hashing algorithms.
func AllHashingAlgorithms() []HashingAlgorithm {
	return []HashingAlgorithm{
		HashingSHA256,
		HashingSHA512,
	}
}

// ParseHashingAlgorithm returns the hashing algorithm with the given name,
// ignoring case, dashes and underscores.
func ParseHashingAlgorithm(name string) (HashingAlgorithm, error) {
	ha, ok := findTag(name, AllHashingAlgorithms())
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidHashingAlgorithm, name)
	}
	return ha, nil
}

func (ha HashingAlgorithm) IsValid() bool {
	switch ha {
	case HashingSHA256, HashingSHA512:
		return true
	}
	return false
}

// New returns a new hasher, or nil if the algorithm is invalid.
func (ha HashingAlgorithm) New() hash.Hash {
	switch ha {
	case HashingSHA256:
		return sha256.New()
	case HashingSHA512:
		return sha512.New()
	default:
		return nil
	}
}

// Size returns the digest size in bytes, or 0 if the algorithm is invalid.
func (ha HashingAlgorithm) Size() int {
	switch ha {
	case HashingSHA256:
		return sha256.Size
	case HashingSHA512:
		return sha512.Size
	default:
		return 0
	}
}

// Digest returns the digest of data.
// Panics if the algorithm is invalid.
func (ha HashingAlgorithm) Digest(data []byte) []byte {
	switch ha {
	case HashingSHA256:
		sum := sha256.Sum256(data)
		return sum[:]
	case HashingSHA512:
		sum := sha512.Sum512(data)
		return sum[:]
	default:
		panic("invalid hashing algorithm: " + string(ha))
	}
}

func (ha HashingAlgorithm) String() string {
	return string(ha)
}
