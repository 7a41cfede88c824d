package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateKeyPair_ExportFormats(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	pub, err := base64.StdEncoding.DecodeString(kp.PublicKey)
	require.NoError(t, err)
	require.Len(t, pub, 65, "raw uncompressed P-256 point")
	require.Equal(t, byte(0x04), pub[0], "uncompressed point marker")

	priv, err := base64.StdEncoding.DecodeString(kp.PrivateKey)
	require.NoError(t, err)
	require.NotEmpty(t, priv)
}

func TestDeriveSharedKey_Symmetry(t *testing.T) {
	a, err := GenerateKeyPair()
	require.NoError(t, err)
	b, err := GenerateKeyPair()
	require.NoError(t, err)

	ab, err := DeriveSharedKey(a.PrivateKey, b.PublicKey)
	require.NoError(t, err)
	ba, err := DeriveSharedKey(b.PrivateKey, a.PublicKey)
	require.NoError(t, err)

	require.Equal(t, ab, ba, "both parties must derive the identical secret")

	secret, err := base64.StdEncoding.DecodeString(ab)
	require.NoError(t, err)
	require.Len(t, secret, KeySize, "shared secret must be exactly 256 bits")
}

func TestDeriveSharedKey_Deterministic(t *testing.T) {
	a, err := GenerateKeyPair()
	require.NoError(t, err)
	b, err := GenerateKeyPair()
	require.NoError(t, err)

	first, err := DeriveSharedKey(a.PrivateKey, b.PublicKey)
	require.NoError(t, err)
	second, err := DeriveSharedKey(a.PrivateKey, b.PublicKey)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestDeriveSharedKey_DistinctPeers(t *testing.T) {
	a, err := GenerateKeyPair()
	require.NoError(t, err)
	b, err := GenerateKeyPair()
	require.NoError(t, err)
	c, err := GenerateKeyPair()
	require.NoError(t, err)

	withB, err := DeriveSharedKey(a.PrivateKey, b.PublicKey)
	require.NoError(t, err)
	withC, err := DeriveSharedKey(a.PrivateKey, c.PublicKey)
	require.NoError(t, err)

	require.NotEqual(t, withB, withC)
}

func TestDeriveSharedKey_BadMaterial(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	_, err = DeriveSharedKey("%%%", kp.PublicKey)
	require.ErrorIs(t, err, ErrInvalidKey)

	_, err = DeriveSharedKey(kp.PrivateKey, "%%%")
	require.ErrorIs(t, err, ErrInvalidKey)

	// valid base64 but not a curve point
	notAPoint := base64.StdEncoding.EncodeToString(make([]byte, 65))
	_, err = DeriveSharedKey(kp.PrivateKey, notAPoint)
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestDecodeKey(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString(make([]byte, KeySize))
	key, err := DecodeKey(valid)
	require.NoError(t, err)
	require.Len(t, key, KeySize)

	short := base64.StdEncoding.EncodeToString(make([]byte, 16))
	_, err = DecodeKey(short)
	require.ErrorIs(t, err, ErrInvalidKeyLength)

	_, err = DecodeKey("%%%")
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestAssertAvailable(t *testing.T) {
	require.NoError(t, AssertAvailable())
}
