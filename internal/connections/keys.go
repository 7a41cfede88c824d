package connections

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/recoverlink/recoverlink/internal/common"
	"github.com/recoverlink/recoverlink/internal/cryptox"
	"github.com/recoverlink/recoverlink/internal/securestore"
)

// ErrNotReady marks a connection whose key exchange has not completed: the
// record exists but no shared key is stored for it yet.
var ErrNotReady = errors.New("connection not ready: key exchange incomplete")

const keyPendingIdentity = "pending_keypair"

func keyPairKey(id string) string   { return "connection_keypair." + id }
func sharedKeyKey(id string) string { return "connection_shared_key." + id }

// pendingIdentity is the key pair minted with an outgoing invite, parked
// until the matching confirm arrives. Tied to the code it was issued for so
// a rotated code invalidates it.
type pendingIdentity struct {
	Code    string          `json:"code"`
	KeyPair cryptox.KeyPair `json:"keyPair"`
}

// SetKeyPair stores the connection's own key pair. The secure store encrypts
// everything it holds, so no extra wrapping is applied here.
func (s *Store) SetKeyPair(ctx context.Context, id string, kp *cryptox.KeyPair) error {
	raw, err := json.Marshal(kp)
	if err != nil {
		return fmt.Errorf("marshal key pair: %w", err)
	}
	if err := s.store.Set(ctx, keyPairKey(id), string(raw)); err != nil {
		return fmt.Errorf("store key pair: %w", err)
	}
	return nil
}

func (s *Store) KeyPair(ctx context.Context, id string) (*cryptox.KeyPair, error) {
	raw, err := s.store.Get(ctx, keyPairKey(id))
	if err != nil {
		if errors.Is(err, securestore.ErrNotFound) {
			return nil, fmt.Errorf("key pair for connection %s: %w", id, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("read key pair: %w", err)
	}

	var kp cryptox.KeyPair
	if err := json.Unmarshal([]byte(raw), &kp); err != nil {
		return nil, fmt.Errorf("parse key pair: %w", err)
	}
	return &kp, nil
}

// SetSharedKey wraps the derived AES key with the at-rest cipher before it
// reaches the secure store, per the double-wrapping rule for symmetric keys.
func (s *Store) SetSharedKey(ctx context.Context, id string, sharedKey string) error {
	wrapped, err := s.atRest.Encrypt(sharedKey)
	if err != nil {
		return fmt.Errorf("wrap shared key: %w", err)
	}
	if err := s.store.Set(ctx, sharedKeyKey(id), wrapped); err != nil {
		return fmt.Errorf("store shared key: %w", err)
	}
	return nil
}

// SharedKey returns the connection's AES key, unwrapped into memory for the
// duration of the caller's operation. A connection without one is not ready.
func (s *Store) SharedKey(ctx context.Context, id string) (string, error) {
	wrapped, err := s.store.Get(ctx, sharedKeyKey(id))
	if err != nil {
		if errors.Is(err, securestore.ErrNotFound) {
			return "", fmt.Errorf("connection %s: %w", id, ErrNotReady)
		}
		return "", fmt.Errorf("read shared key: %w", err)
	}

	sharedKey, err := s.atRest.Decrypt(wrapped)
	if err != nil {
		return "", fmt.Errorf("unwrap shared key: %w", err)
	}
	return sharedKey, nil
}

// SetPendingKeyPair parks the identity key pair minted for an invite under
// the code it belongs to, replacing any previous pending identity.
func (s *Store) SetPendingKeyPair(ctx context.Context, code string, kp *cryptox.KeyPair) error {
	raw, err := json.Marshal(pendingIdentity{Code: code, KeyPair: *kp})
	if err != nil {
		return fmt.Errorf("marshal pending identity: %w", err)
	}
	if err := s.store.Set(ctx, keyPendingIdentity, string(raw)); err != nil {
		return fmt.Errorf("store pending identity: %w", err)
	}
	return nil
}

// PendingKeyPair returns the parked identity for code. A missing record or
// one minted for a different code reports not found.
func (s *Store) PendingKeyPair(ctx context.Context, code string) (*cryptox.KeyPair, error) {
	raw, err := s.store.Get(ctx, keyPendingIdentity)
	if err != nil {
		if errors.Is(err, securestore.ErrNotFound) {
			return nil, fmt.Errorf("pending identity: %w", common.ErrorNotFound)
		}
		return nil, fmt.Errorf("read pending identity: %w", err)
	}

	var pending pendingIdentity
	if err := json.Unmarshal([]byte(raw), &pending); err != nil {
		return nil, fmt.Errorf("parse pending identity: %w", err)
	}
	if pending.Code != code {
		return nil, fmt.Errorf("pending identity for code %s: %w", code, common.ErrorNotFound)
	}
	return &pending.KeyPair, nil
}

func (s *Store) DeletePendingKeyPair(ctx context.Context) error {
	if err := s.store.Delete(ctx, keyPendingIdentity); err != nil {
		return fmt.Errorf("delete pending identity: %w", err)
	}
	return nil
}
