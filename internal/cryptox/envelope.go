package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	"github.com/recoverlink/recoverlink/internal/common"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// IVSize is the GCM nonce length in bytes.
	IVSize = 12
)

// Envelope is the result of one AES-256-GCM encryption call: the random IV
// and the ciphertext (which includes the authentication tag), both
// base64-encoded. Every envelope embeds its own IV; IVs are never derived
// from content or counters.
type Envelope struct {
	IV         string `json:"iv"`
	Ciphertext string `json:"ciphertext"`
}

// EncryptEnvelope encrypts plaintext under the given 32-byte shared key.
//
// A fresh random 12-byte IV is generated for each call from the platform
// CSPRNG; an IV is never reused for a given key, which AES-GCM
// confidentiality depends on. Plaintext is treated as UTF-8 bytes.
//
// Returns ErrInvalidKeyLength when the key is not 32 bytes.
func EncryptEnvelope(key []byte, plaintext []byte) (Envelope, error) {
	if len(key) != KeySize {
		return Envelope{}, ErrInvalidKeyLength
	}

	iv := common.GenerateRandByteArray(IVSize)

	block, err := aes.NewCipher(key)
	if err != nil {
		return Envelope{}, fmt.Errorf("new cipher: %w", err)
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return Envelope{}, fmt.Errorf("new gcm: %w", err)
	}

	ciphertext := aesgcm.Seal(nil, iv, plaintext, nil)

	return Envelope{
		IV:         base64.StdEncoding.EncodeToString(iv),
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// DecryptEnvelope decrypts an envelope under the given 32-byte shared key and
// returns the plaintext bytes.
//
// Any failure (authentication-tag mismatch, malformed base64, wrong IV
// length, wrong key) is reported as ErrDecryptionFailed with no partial
// output. Callers must not distinguish the causes: a tampered payload and a
// wrong key are the same condition at this boundary.
func DecryptEnvelope(key []byte, env Envelope) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}

	iv, err := base64.StdEncoding.DecodeString(env.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: iv base64", ErrDecryptionFailed)
	}
	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: iv length %d", ErrDecryptionFailed, len(iv))
	}

	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext base64", ErrDecryptionFailed)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: cipher init", ErrDecryptionFailed)
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: gcm init", ErrDecryptionFailed)
	}

	plaintext, err := aesgcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: open", ErrDecryptionFailed)
	}

	return plaintext, nil
}
