package passto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/mr-tron/base58"
	"github.com/zeebo/blake3"
)

const (
	// SettingsTokenPrefix prefixes settings in the text token format.
	SettingsTokenPrefix = "passto:"

	settingsChecksumSize    = 4
	settingsFingerprintSize = 8
)

var canonicalCBOR cbor.EncMode

func init() {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("failed to create cbor encoding mode: " + err.Error())
	}
	canonicalCBOR = em
}

// StoredSettings is an intermediary format used for exporting and importing
// settings in binary form.
type StoredSettings struct {
	Hashing           string `cbor:"h,omitzero" json:"h,omitzero"`
	Digest            string `cbor:"d,omitzero" json:"d,omitzero"`
	Alphabet          string `cbor:"a,omitzero" json:"a,omitzero"`
	Salting           string `cbor:"s,omitzero" json:"s,omitzero"`
	ChunkSize         int    `cbor:"c,omitzero" json:"c,omitzero"`
	MaxLength         int    `cbor:"m,omitzero" json:"m,omitzero"`
	HashingIterations int    `cbor:"hi,omitzero" json:"hi,omitzero"`
	SaltingIterations int    `cbor:"si,omitzero" json:"si,omitzero"`
}

// Export returns the normalized settings in the intermediary storage format.
func (s AlgorithmSettings) Export() *StoredSettings {
	s = s.Normalize()
	return &StoredSettings{
		Hashing:           string(s.Hashing),
		Digest:            string(s.Digest.Type),
		Alphabet:          s.Digest.Alphabet,
		Salting:           string(s.Salting.Type),
		ChunkSize:         s.Salting.ChunkSize,
		MaxLength:         s.MaxLength,
		HashingIterations: s.HashingIterations,
		SaltingIterations: s.SaltingIterations,
	}
}

// LoadSettings loads settings from the intermediary storage format.
// Algorithm names are matched case insensitively.
func LoadSettings(stored *StoredSettings) (AlgorithmSettings, error) {
	var s AlgorithmSettings

	if stored.Hashing != "" {
		ha, ok := findTag(stored.Hashing, AllHashingAlgorithms())
		if !ok {
			return s, fmt.Errorf("%w: %w: %q", ErrSettingsDeserialization, ErrInvalidHashingAlgorithm, stored.Hashing)
		}
		s.Hashing = ha
	}
	if stored.Digest != "" {
		dt, ok := findTag(stored.Digest, allDigestTypes)
		if !ok {
			return s, fmt.Errorf("%w: %w: %q", ErrSettingsDeserialization, ErrInvalidDigestAlgorithm, stored.Digest)
		}
		s.Digest = DigestAlgorithm{Type: dt}
		if dt == DigestTypeCustomAlphabet {
			s.Digest.Alphabet = stored.Alphabet
		}
	}
	if stored.Salting != "" {
		st, ok := findTag(stored.Salting, allSaltingTypes)
		if !ok {
			return s, fmt.Errorf("%w: %w: %q", ErrSettingsDeserialization, ErrInvalidSaltingAlgorithm, stored.Salting)
		}
		s.Salting = SaltingAlgorithm{Type: st}
		if st == SaltingZip {
			s.Salting.ChunkSize = stored.ChunkSize
		}
	}
	s.MaxLength = stored.MaxLength
	s.HashingIterations = stored.HashingIterations
	s.SaltingIterations = stored.SaltingIterations

	s = s.Normalize()
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%w: %w", ErrSettingsDeserialization, err)
	}
	return s, nil
}

// Bytes returns the settings formatted in binary format.
func (s AlgorithmSettings) Bytes() ([]byte, error) {
	return canonicalCBOR.Marshal(s.Export())
}

// LoadSettingsFromBytes loads settings from the binary format.
func LoadSettingsFromBytes(data []byte) (AlgorithmSettings, error) {
	stored := &StoredSettings{}
	if err := cbor.Unmarshal(data, stored); err != nil {
		return AlgorithmSettings{}, fmt.Errorf("%w: %w", ErrSettingsDeserialization, err)
	}
	return LoadSettings(stored)
}

// Text returns the settings as a copyable token with a checksum.
func (s AlgorithmSettings) Text() (string, error) {
	data, err := s.Bytes()
	if err != nil {
		return "", err
	}

	sum := blake3.Sum256(data)
	data = append(data, sum[:settingsChecksumSize]...)
	return SettingsTokenPrefix + base58.Encode(data), nil
}

// LoadSettingsFromText loads settings from the text token format.
func LoadSettingsFromText(text string) (AlgorithmSettings, error) {
	encoded, ok := strings.CutPrefix(strings.TrimSpace(text), SettingsTokenPrefix)
	if !ok {
		return AlgorithmSettings{}, fmt.Errorf("%w: missing %q prefix", ErrSettingsDeserialization, SettingsTokenPrefix)
	}

	data, err := base58.Decode(encoded)
	if err != nil {
		return AlgorithmSettings{}, fmt.Errorf("%w: %w", ErrSettingsDeserialization, err)
	}
	if len(data) <= settingsChecksumSize {
		return AlgorithmSettings{}, fmt.Errorf("%w: too short", ErrSettingsDeserialization)
	}

	// Verify checksum.
	payload := data[:len(data)-settingsChecksumSize]
	sum := blake3.Sum256(payload)
	if !bytes.Equal(data[len(payload):], sum[:settingsChecksumSize]) {
		return AlgorithmSettings{}, fmt.Errorf("%w: %w", ErrSettingsDeserialization, ErrChecksumMismatch)
	}

	return LoadSettingsFromBytes(payload)
}

// Fingerprint returns a short identifier of the settings.
// Settings that derive the same passwords have the same fingerprint.
func (s AlgorithmSettings) Fingerprint() string {
	data, err := s.Bytes()
	if err != nil {
		return ""
	}
	sum := blake3.Sum256(data)
	return base58.Encode(sum[:settingsFingerprintSize])
}

// jsonSettings is the JSON text form of AlgorithmSettings.
type jsonSettings struct {
	Hashing           HashingAlgorithm `json:"hashing"`
	Digest            DigestAlgorithm  `json:"digest"`
	Salting           SaltingAlgorithm `json:"salting"`
	MaxLength         *int             `json:"max_length,omitempty"`
	HashingIterations *int             `json:"hashing_iterations,omitempty"`
	SaltingIterations *int             `json:"salting_iterations,omitempty"`
}

// JSON returns the normalized settings as json.
func (s AlgorithmSettings) JSON() ([]byte, error) {
	s = s.Normalize()
	js := jsonSettings{
		Hashing:           s.Hashing,
		Digest:            s.Digest,
		Salting:           s.Salting,
		HashingIterations: &s.HashingIterations,
		SaltingIterations: &s.SaltingIterations,
	}
	if s.MaxLength > 0 {
		js.MaxLength = &s.MaxLength
	}
	return json.Marshal(js)
}

// LoadSettingsFromJSON loads settings from json.
// Missing fields take their default values.
func LoadSettingsFromJSON(data []byte) (AlgorithmSettings, error) {
	js := &jsonSettings{}
	if err := json.Unmarshal(data, js); err != nil {
		return AlgorithmSettings{}, fmt.Errorf("%w: %w", ErrSettingsDeserialization, err)
	}

	s := AlgorithmSettings{
		Hashing: js.Hashing,
		Digest:  js.Digest,
		Salting: js.Salting,
	}
	if js.MaxLength != nil {
		s.MaxLength = *js.MaxLength
	}
	if js.HashingIterations != nil {
		s.HashingIterations = *js.HashingIterations
	}
	if js.SaltingIterations != nil {
		s.SaltingIterations = *js.SaltingIterations
	}

	s = s.Normalize()
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%w: %w", ErrSettingsDeserialization, err)
	}
	return s, nil
}

var (
	allDigestTypes = []DigestType{
		DigestTypeHex,
		DigestTypeBase64,
		DigestTypeBase64URL,
		DigestTypeCustomAlphabet,
	}
	allSaltingTypes = []SaltingType{
		SaltingPrepend,
		SaltingAppend,
		SaltingZip,
	}
)

// findTag finds the acceptable tag matching the given name, ignoring case,
// dashes and underscores. This also accepts names like "Base64Url" or
// "CustomAlphabet".
func findTag[T ~string](name string, acceptable []T) (found T, ok bool) {
	want := normalizeTag(name)
	for _, entry := range acceptable {
		if normalizeTag(string(entry)) == want {
			return entry, true
		}
	}
	var zero T
	return zero, false
}

func normalizeTag(name string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
}

// UnmarshalJSON implements json.Unmarshaler.
func (ha *HashingAlgorithm) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if name == "" {
		// Unset, like null.
		return nil
	}
	found, ok := findTag(name, AllHashingAlgorithms())
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidHashingAlgorithm, name)
	}
	*ha = found
	return nil
}

// MarshalJSON implements json.Marshaler.
func (da DigestAlgorithm) MarshalJSON() ([]byte, error) {
	if da.Type == DigestTypeCustomAlphabet {
		return json.Marshal(map[string]string{
			string(DigestTypeCustomAlphabet): da.Alphabet,
		})
	}
	return json.Marshal(string(da.Type))
}

// UnmarshalJSON implements json.Unmarshaler.
func (da *DigestAlgorithm) UnmarshalJSON(data []byte) error {
	name, param, err := splitVariant(data)
	switch {
	case err != nil:
		return err
	case name == "":
		return nil
	}

	dt, ok := findTag(name, allDigestTypes)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidDigestAlgorithm, name)
	}

	switch {
	case dt == DigestTypeCustomAlphabet && param == nil:
		return fmt.Errorf("%w: %s requires an alphabet", ErrInvalidDigestAlgorithm, dt)
	case dt != DigestTypeCustomAlphabet && param != nil:
		return fmt.Errorf("%w: %s takes no parameter", ErrInvalidDigestAlgorithm, dt)
	}

	var alphabet string
	if param != nil {
		if err := json.Unmarshal(param, &alphabet); err != nil {
			return err
		}
	}
	*da = DigestAlgorithm{Type: dt, Alphabet: alphabet}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (sa SaltingAlgorithm) MarshalJSON() ([]byte, error) {
	if sa.Type == SaltingZip {
		return json.Marshal(map[string]int{
			string(SaltingZip): sa.ChunkSize,
		})
	}
	return json.Marshal(string(sa.Type))
}

// UnmarshalJSON implements json.Unmarshaler.
func (sa *SaltingAlgorithm) UnmarshalJSON(data []byte) error {
	name, param, err := splitVariant(data)
	switch {
	case err != nil:
		return err
	case name == "":
		return nil
	}

	st, ok := findTag(name, allSaltingTypes)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSaltingAlgorithm, name)
	}

	switch {
	case st == SaltingZip && param == nil:
		return fmt.Errorf("%w: %s requires a chunk size", ErrInvalidSaltingAlgorithm, st)
	case st != SaltingZip && param != nil:
		return fmt.Errorf("%w: %s takes no parameter", ErrInvalidSaltingAlgorithm, st)
	}

	var chunkSize int
	if param != nil {
		if err := json.Unmarshal(param, &chunkSize); err != nil {
			return err
		}
	}
	*sa = SaltingAlgorithm{Type: st, ChunkSize: chunkSize}
	return nil
}

// splitVariant splits a json variant into its tag and parameter.
// A variant is either a plain string or an object with a single key.
// Returns an empty name for null.
func splitVariant(data []byte) (name string, param json.RawMessage, err error) {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return "", nil, nil

	case len(data) > 0 && data[0] == '"':
		if err := json.Unmarshal(data, &name); err != nil {
			return "", nil, err
		}
		return name, nil, nil

	default:
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return "", nil, err
		}
		if len(obj) != 1 {
			return "", nil, fmt.Errorf("variant object must have exactly one key, got %d", len(obj))
		}
		for k, v := range obj {
			name, param = k, v
		}
		if name == "" {
			return "", nil, fmt.Errorf("variant object has an empty key")
		}
		return name, param, nil
	}
}
