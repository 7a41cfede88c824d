package cryptox

import (
	"bytes"
	"encoding/base64"
	"fmt"
)

// AssertAvailable verifies the runtime supports every primitive the sponsor
// subsystem depends on (P-256 ECDH, AES-256-GCM, the CSPRNG) by running a
// key agreement and an envelope round trip. Absence of any capability is a
// hard failure: falling back to a weaker cipher would break the privacy
// guarantee the subsystem exists to provide, so callers must refuse to
// operate rather than degrade.
func AssertAvailable() error {
	a, err := GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("%w: keygen: %v", ErrCryptoUnavailable, err)
	}
	b, err := GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("%w: keygen: %v", ErrCryptoUnavailable, err)
	}

	ab, err := DeriveSharedKey(a.PrivateKey, b.PublicKey)
	if err != nil {
		return fmt.Errorf("%w: derive: %v", ErrCryptoUnavailable, err)
	}
	ba, err := DeriveSharedKey(b.PrivateKey, a.PublicKey)
	if err != nil {
		return fmt.Errorf("%w: derive: %v", ErrCryptoUnavailable, err)
	}
	if ab != ba {
		return fmt.Errorf("%w: ecdh asymmetry", ErrCryptoUnavailable)
	}

	key, err := base64.StdEncoding.DecodeString(ab)
	if err != nil || len(key) != KeySize {
		return fmt.Errorf("%w: derived key size", ErrCryptoUnavailable)
	}

	probe := []byte("crypto self-check")
	env, err := EncryptEnvelope(key, probe)
	if err != nil {
		return fmt.Errorf("%w: encrypt: %v", ErrCryptoUnavailable, err)
	}
	plain, err := DecryptEnvelope(key, env)
	if err != nil || !bytes.Equal(plain, probe) {
		return fmt.Errorf("%w: round trip", ErrCryptoUnavailable)
	}

	return nil
}
