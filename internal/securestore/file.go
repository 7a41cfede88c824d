package securestore

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/recoverlink/recoverlink/internal/common"
	"github.com/recoverlink/recoverlink/internal/cryptox"
	"github.com/recoverlink/recoverlink/internal/filex"
)

const (
	fileVersion = 1
	kdfName     = "argon2id"
	saltSize    = 16

	infoFileKey   = "recoverlink/keyring-file"
	infoAtRestKey = "recoverlink/content-at-rest"
)

// fileFormat is the on-disk keyring layout. Salt and verifier are plaintext
// header fields; every stored value lives inside the sealed payload.
type fileFormat struct {
	Version  int    `json:"version"`
	KDF      string `json:"kdf"`
	Salt     string `json:"salt"`
	Verifier string `json:"verifier"`
	Payload  string `json:"payload"`
}

// File is a Store backed by a single passphrase-protected file. The
// passphrase is stretched with argon2id; the sha256 verifier gives a precise
// wrong-passphrase error before any decryption is attempted; the value map is
// sealed as one AES-GCM blob and rewritten atomically on every mutation.
type File struct {
	path string

	mu     sync.Mutex
	values map[string]string

	// header fields cached at open/create so persist can rebuild the file
	// without re-deriving anything
	salt     []byte
	verifier []byte

	fileCipher *cryptox.AtRest
	atRest     *cryptox.AtRest
}

// OpenFile opens (or, when absent, creates) the keyring at path and unlocks
// it with passphrase. A wrong passphrase on an existing keyring yields
// ErrUnauthorized. The passphrase slice is not retained.
func OpenFile(path string, passphrase []byte) (*File, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return createFile(path, passphrase)
	}
	if err != nil {
		return nil, fmt.Errorf("read keyring: %w", err)
	}

	var ff fileFormat
	if err := json.Unmarshal(raw, &ff); err != nil {
		return nil, fmt.Errorf("parse keyring: %w", err)
	}
	if ff.Version != fileVersion {
		return nil, fmt.Errorf("unsupported keyring version %d", ff.Version)
	}
	if ff.KDF != kdfName {
		return nil, fmt.Errorf("unsupported keyring kdf %q", ff.KDF)
	}

	salt, err := base64.StdEncoding.DecodeString(ff.Salt)
	if err != nil {
		return nil, fmt.Errorf("parse keyring salt: %w", err)
	}
	verifier, err := base64.StdEncoding.DecodeString(ff.Verifier)
	if err != nil {
		return nil, fmt.Errorf("parse keyring verifier: %w", err)
	}

	masterKey := cryptox.DeriveMasterKey(passphrase, salt)
	defer common.WipeByteArray(masterKey)

	if subtle.ConstantTimeCompare(verifier, cryptox.MakeVerifier(masterKey)) == 0 {
		return nil, ErrUnauthorized
	}

	f, err := newFile(path, masterKey)
	if err != nil {
		return nil, err
	}
	f.salt, f.verifier = salt, verifier

	sealed, err := f.fileCipher.Decrypt(ff.Payload)
	if err != nil {
		return nil, fmt.Errorf("unseal keyring: %w", err)
	}
	if err := json.Unmarshal([]byte(sealed), &f.values); err != nil {
		return nil, fmt.Errorf("parse keyring payload: %w", err)
	}

	return f, nil
}

func createFile(path string, passphrase []byte) (*File, error) {
	salt := common.GenerateRandByteArray(saltSize)

	masterKey := cryptox.DeriveMasterKey(passphrase, salt)
	defer common.WipeByteArray(masterKey)

	f, err := newFile(path, masterKey)
	if err != nil {
		return nil, err
	}
	f.salt, f.verifier = salt, cryptox.MakeVerifier(masterKey)

	if err := f.persist(f.salt, f.verifier); err != nil {
		return nil, err
	}
	return f, nil
}

func newFile(path string, masterKey []byte) (*File, error) {
	fileKey, err := cryptox.DeriveSubKey(masterKey, infoFileKey)
	if err != nil {
		return nil, err
	}
	atRestKey, err := cryptox.DeriveSubKey(masterKey, infoAtRestKey)
	if err != nil {
		return nil, err
	}

	fileCipher, err := cryptox.NewAtRest(fileKey)
	if err != nil {
		return nil, err
	}
	atRest, err := cryptox.NewAtRest(atRestKey)
	if err != nil {
		return nil, err
	}

	return &File{path: path, values: map[string]string{}, fileCipher: fileCipher, atRest: atRest}, nil
}

// AtRest exposes the content-at-rest cipher derived from the same unlock, so
// components can wrap individual secrets (per-connection shared keys) before
// storing them.
func (f *File) AtRest() *cryptox.AtRest { return f.atRest }

func (f *File) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (f *File) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.values[key]
	f.values[key] = value
	if err := f.persist(f.salt, f.verifier); err != nil {
		// roll the in-memory state back so a failed write is not reported
		// as durable on the next read
		if had {
			f.values[key] = prev
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

func (f *File) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.values[key]
	if !had {
		return nil
	}
	delete(f.values, key)
	if err := f.persist(f.salt, f.verifier); err != nil {
		f.values[key] = prev
		return err
	}
	return nil
}

func (f *File) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	return keys, nil
}

func (f *File) persist(salt, verifier []byte) error {
	plain, err := json.Marshal(f.values)
	if err != nil {
		return fmt.Errorf("marshal keyring payload: %w", err)
	}

	sealed, err := f.fileCipher.Encrypt(string(plain))
	if err != nil {
		return fmt.Errorf("seal keyring payload: %w", err)
	}

	ff := fileFormat{
		Version:  fileVersion,
		KDF:      kdfName,
		Salt:     base64.StdEncoding.EncodeToString(salt),
		Verifier: base64.StdEncoding.EncodeToString(verifier),
		Payload:  sealed,
	}

	raw, err := json.MarshalIndent(ff, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal keyring: %w", err)
	}

	if err := filex.WriteFileAtomic(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("write keyring: %w", err)
	}
	return nil
}
