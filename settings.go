package passto

import (
	"errors"
	"fmt"
)

// AlgorithmSettings defines a collection of algorithms and parameters to be
// used together to derive a password.
type AlgorithmSettings struct {
	Hashing HashingAlgorithm
	Digest  DigestAlgorithm
	Salting SaltingAlgorithm

	// MaxLength caps the number of characters of the output. Zero means no cap.
	MaxLength int

	// Iteration counts below one are treated as one.
	HashingIterations int
	SaltingIterations int
}

// DefaultSettings returns the default settings: SHA-256, base64, prepend and
// a single iteration each.
func DefaultSettings() AlgorithmSettings {
	return AlgorithmSettings{
		Hashing:           DefaultHashing,
		Digest:            DigestBase64(),
		Salting:           SaltPrepend(),
		HashingIterations: 1,
		SaltingIterations: 1,
	}
}

// Validate checks the settings for values the pipeline cannot work with.
func (s AlgorithmSettings) Validate() error {
	var errs []error

	if !s.Hashing.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidHashingAlgorithm, s.Hashing))
	}
	if err := s.Digest.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := s.Salting.Validate(); err != nil {
		errs = append(errs, err)
	}
	if s.MaxLength < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidMaxLength, s.MaxLength))
	}
	if s.HashingIterations < 0 {
		errs = append(errs, fmt.Errorf("%w: hashing %d", ErrInvalidIterations, s.HashingIterations))
	}
	if s.SaltingIterations < 0 {
		errs = append(errs, fmt.Errorf("%w: salting %d", ErrInvalidIterations, s.SaltingIterations))
	}

	return errors.Join(errs...)
}

// Normalize returns a copy with unset algorithms replaced by their defaults
// and iteration counts raised to at least one.
func (s AlgorithmSettings) Normalize() AlgorithmSettings {
	if s.Hashing == "" {
		s.Hashing = DefaultHashing
	}
	if s.Digest.Type == "" {
		s.Digest = DigestBase64()
	}
	if s.Salting.Type == "" {
		s.Salting = SaltPrepend()
	}
	s.HashingIterations = max(s.HashingIterations, 1)
	s.SaltingIterations = max(s.SaltingIterations, 1)
	return s
}

// String returns the settings in the JSON text form.
func (s AlgorithmSettings) String() string {
	data, err := s.JSON()
	if err != nil {
		return fmt.Sprintf("<invalid settings: %s>", err)
	}
	return string(data)
}
