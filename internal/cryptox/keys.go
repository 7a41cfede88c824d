package cryptox

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"fmt"
)

// KeyPair holds one party's P-256 key pair in transport encoding: the public
// key as a base64 raw (uncompressed) curve point, the private key as base64
// PKCS #8. The private key never leaves local secure storage; the public key
// is the only key material that travels inside invite/confirm payloads.
type KeyPair struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// GenerateKeyPair creates a fresh ECDH key pair on curve P-256.
//
// The public key is exported in raw point format (65 bytes, uncompressed)
// and the private key in PKCS #8 form, both base64-encoded for storage and
// transmission.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate P-256 key: %w", err)
	}

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("marshal private key: %w", err)
	}

	return &KeyPair{
		PublicKey:  base64.StdEncoding.EncodeToString(priv.PublicKey().Bytes()),
		PrivateKey: base64.StdEncoding.EncodeToString(der),
	}, nil
}

// DeriveSharedKey performs ECDH between the local private key and the remote
// public key and returns the 256-bit shared secret, base64-encoded.
//
// The result is deterministic for a given key pair / peer key combination,
// and DeriveSharedKey(A.private, B.public) equals
// DeriveSharedKey(B.private, A.public): both parties independently compute an
// identical symmetric key without ever transmitting it. The returned secret
// is used directly as the AES-256-GCM key for all envelope operations on the
// connection.
func DeriveSharedKey(localPrivateKey, remotePublicKey string) (string, error) {
	priv, err := parsePrivateKey(localPrivateKey)
	if err != nil {
		return "", err
	}

	pub, err := parsePublicKey(remotePublicKey)
	if err != nil {
		return "", err
	}

	secret, err := priv.ECDH(pub)
	if err != nil {
		return "", fmt.Errorf("%w: ecdh: %v", ErrInvalidKey, err)
	}

	return base64.StdEncoding.EncodeToString(secret), nil
}

func parsePrivateKey(encoded string) (*ecdh.PrivateKey, error) {
	der, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: private key base64: %v", ErrInvalidKey, err)
	}

	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: private key pkcs8: %v", ErrInvalidKey, err)
	}

	switch key := parsed.(type) {
	case *ecdh.PrivateKey:
		return key, nil
	case *ecdsa.PrivateKey:
		ecdhKey, err := key.ECDH()
		if err != nil {
			return nil, fmt.Errorf("%w: private key curve: %v", ErrInvalidKey, err)
		}
		return ecdhKey, nil
	default:
		return nil, fmt.Errorf("%w: unexpected private key type %T", ErrInvalidKey, parsed)
	}
}

func parsePublicKey(encoded string) (*ecdh.PublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: public key base64: %v", ErrInvalidKey, err)
	}

	pub, err := ecdh.P256().NewPublicKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: public key point: %v", ErrInvalidKey, err)
	}
	return pub, nil
}

// DecodeKey decodes a base64 symmetric key and checks it is a valid AES-256
// key.
func DecodeKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: key base64: %v", ErrInvalidKey, err)
	}
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}
	return key, nil
}
