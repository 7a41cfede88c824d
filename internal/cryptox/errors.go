// Package cryptox implements the cryptographic core of the sponsor
// connection subsystem: P-256 key pairs with ECDH shared-secret derivation,
// AES-256-GCM envelopes for peer-to-peer payloads, an at-rest cipher for
// locally stored key material, and the passphrase key-derivation helpers.
//
// Callers should use errors.Is to match the sentinel values below.
package cryptox

import "errors"

var (
	// ErrDecryptionFailed covers every envelope decryption failure: wrong
	// key, tampered ciphertext, malformed base64 or a bad IV. Callers get no
	// partial output and no distinction between the causes.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrCryptoUnavailable indicates the runtime failed the primitive
	// self-check. The subsystem must not run in a degraded mode.
	ErrCryptoUnavailable = errors.New("crypto primitives unavailable")

	// ErrInvalidKeyLength is returned when a symmetric key is not 32 bytes.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrInvalidKey is returned when public or private key material cannot
	// be decoded.
	ErrInvalidKey = errors.New("invalid key material")
)
