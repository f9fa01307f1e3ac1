package passto

import "errors"

var (
	ErrChecksumMismatch        = errors.New("checksum mismatch")
	ErrCustomAlphabetTooShort  = errors.New("custom alphabet too short")
	ErrInvalidChunkSize        = errors.New("invalid zip chunk size")
	ErrInvalidDigestAlgorithm  = errors.New("invalid digest algorithm")
	ErrInvalidHashingAlgorithm = errors.New("invalid hashing algorithm")
	ErrInvalidIterations       = errors.New("invalid iteration count")
	ErrInvalidMaxLength        = errors.New("invalid max length")
	ErrInvalidSaltingAlgorithm = errors.New("invalid salting algorithm")
	ErrPassphraseTooShort      = errors.New("passphrase too short")
	ErrSettingsDeserialization = errors.New("settings deserialization error")
)
