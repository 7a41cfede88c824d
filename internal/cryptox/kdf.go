package cryptox

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

func DeriveMasterKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

// DeriveSubKey derives an independent 32-byte key from the master key using
// HKDF-SHA256 with the given info string. Distinct info strings yield
// unrelated keys, so the keyring file key and the at-rest wrapping key can
// both come from one passphrase without sharing material.
func DeriveSubKey(masterKey []byte, info string) ([]byte, error) {
	h := hkdf.New(sha256.New, masterKey, nil, []byte(info))
	out := make([]byte, KeySize)
	if _, err := io.ReadFull(h, out); err != nil {
		return nil, fmt.Errorf("hkdf: %w", err)
	}
	return out, nil
}
