package passto

// Derive derives a password from the passphrase and the service name.
// The same inputs always produce the same output. Nothing is retained.
//
// The service is salted with the passphrase, then each further salting
// iteration salts the previous result again. The salted bytes are hashed and
// each further hashing iteration hashes the previous digest. The final digest
// is encoded and cut to MaxLength characters, if set.
func Derive(passphrase, service []byte, settings AlgorithmSettings) (string, error) {
	settings = settings.Normalize()
	if err := settings.Validate(); err != nil {
		return "", err
	}

	// Salt.
	salted, err := settings.Salting.Salt(service, passphrase)
	if err != nil {
		return "", err
	}
	for i := 1; i < settings.SaltingIterations; i++ {
		salted, err = settings.Salting.Salt(salted, passphrase)
		if err != nil {
			return "", err
		}
	}

	// Hash.
	hashed := settings.Hashing.Digest(salted)
	for i := 1; i < settings.HashingIterations; i++ {
		hashed = settings.Hashing.Digest(hashed)
	}

	// Encode.
	digested, err := settings.Digest.Encode(hashed)
	if err != nil {
		return "", err
	}

	return truncate(digested, settings.MaxLength), nil
}

// DeriveString is like Derive, but takes strings.
func DeriveString(passphrase, service string, settings AlgorithmSettings) (string, error) {
	return Derive([]byte(passphrase), []byte(service), settings)
}

// truncate cuts s to at most n characters. Zero means no limit.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}

	var count int
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
