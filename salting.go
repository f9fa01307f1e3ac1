package passto

import "fmt"

// SaltingType is the kind of salting applied to combine passphrase and service.
type SaltingType string

const (
	SaltingPrepend SaltingType = "prepend"
	SaltingAppend  SaltingType = "append"
	SaltingZip     SaltingType = "zip"
)

// ParseSaltingType returns the salting type with the given name, ignoring
// case, dashes and underscores.
func ParseSaltingType(name string) (SaltingType, error) {
	st, ok := findTag(name, allSaltingTypes)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSaltingAlgorithm, name)
	}
	return st, nil
}

func (st SaltingType) IsValid() bool {
	switch st {
	case SaltingPrepend, SaltingAppend, SaltingZip:
		return true
	}
	return false
}

func (st SaltingType) String() string {
	return string(st)
}

// SaltingAlgorithm combines data and salt into a single byte sequence.
// ChunkSize is only used by SaltingZip.
type SaltingAlgorithm struct {
	Type      SaltingType
	ChunkSize int
}

// SaltPrepend puts the salt in front of the data.
func SaltPrepend() SaltingAlgorithm {
	return SaltingAlgorithm{Type: SaltingPrepend}
}

// SaltAppend puts the salt after the data.
func SaltAppend() SaltingAlgorithm {
	return SaltingAlgorithm{Type: SaltingAppend}
}

// Zip interleaves salt and data in chunks of n bytes.
func Zip(n int) SaltingAlgorithm {
	return SaltingAlgorithm{Type: SaltingZip, ChunkSize: n}
}

// Validate checks whether the salting algorithm can be applied.
func (sa SaltingAlgorithm) Validate() error {
	switch sa.Type {
	case SaltingPrepend, SaltingAppend:
		return nil
	case SaltingZip:
		if sa.ChunkSize <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidChunkSize, sa.ChunkSize)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSaltingAlgorithm, sa.Type)
	}
}

// Salt combines data and salt.
//
// Zip splits both inputs into chunks of ChunkSize bytes and emits the salt
// chunk followed by the data chunk for each position. Pairing stops at the
// shorter of both chunk sequences, the remaining chunks of the longer input
// are dropped.
func (sa SaltingAlgorithm) Salt(data, salt []byte) ([]byte, error) {
	if err := sa.Validate(); err != nil {
		return nil, err
	}

	switch sa.Type {
	case SaltingPrepend:
		res := make([]byte, 0, len(data)+len(salt))
		res = append(res, salt...)
		return append(res, data...), nil

	case SaltingAppend:
		res := make([]byte, 0, len(data)+len(salt))
		res = append(res, data...)
		return append(res, salt...), nil

	case SaltingZip:
		n := sa.ChunkSize
		res := make([]byte, 0, len(data)+len(salt))
		for len(data) > 0 && len(salt) > 0 {
			saltChunk := salt[:min(n, len(salt))]
			dataChunk := data[:min(n, len(data))]
			res = append(res, saltChunk...)
			res = append(res, dataChunk...)
			salt = salt[len(saltChunk):]
			data = data[len(dataChunk):]
		}
		return res, nil

	default:
		// Unreachable, checked by Validate.
		return nil, fmt.Errorf("%w: %q", ErrInvalidSaltingAlgorithm, sa.Type)
	}
}

func (sa SaltingAlgorithm) String() string {
	if sa.Type == SaltingZip {
		return fmt.Sprintf("%s(%d)", sa.Type, sa.ChunkSize)
	}
	return string(sa.Type)
}
