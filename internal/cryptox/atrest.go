package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	"github.com/recoverlink/recoverlink/internal/common"
)

// AtRest is the local content-encryption primitive: it seals strings for
// on-device storage under a device-local key. It protects stored key
// material (per-connection shared keys) and is orthogonal to the
// peer-to-peer envelope; nothing sealed by AtRest is ever transmitted.
type AtRest struct {
	aead cipher.AEAD
}

// NewAtRest builds an at-rest cipher from a 32-byte key, normally a subkey
// derived from the keyring master key.
func NewAtRest(key []byte) (*AtRest, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return &AtRest{aead: aead}, nil
}

// Encrypt seals plaintext and returns a single base64 string carrying
// nonce||ciphertext.
func (a *AtRest) Encrypt(plaintext string) (string, error) {
	nonce := common.GenerateRandByteArray(IVSize)
	sealed := a.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. All failures are ErrDecryptionFailed.
func (a *AtRest) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: base64", ErrDecryptionFailed)
	}
	if len(raw) < IVSize {
		return "", fmt.Errorf("%w: truncated", ErrDecryptionFailed)
	}
	nonce, sealed := raw[:IVSize], raw[IVSize:]
	plaintext, err := a.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: open", ErrDecryptionFailed)
	}
	return string(plaintext), nil
}
