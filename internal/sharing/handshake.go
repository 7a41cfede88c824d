package sharing

import (
	"context"
	"errors"
	"fmt"

	"github.com/recoverlink/recoverlink/internal/common"
	"github.com/recoverlink/recoverlink/internal/connections"
	"github.com/recoverlink/recoverlink/internal/cryptox"
	"github.com/recoverlink/recoverlink/internal/pairing"
	"github.com/recoverlink/recoverlink/internal/payload"
)

var (
	// ErrNoActiveCode means the device has no current connection code to
	// build or match a handshake against.
	ErrNoActiveCode = errors.New("no active connection code")

	// ErrNotInvite and ErrNotConfirm reject pasted text that does not decode
	// to the expected handshake card.
	ErrNotInvite  = errors.New("text is not a connection invite")
	ErrNotConfirm = errors.New("text is not a connection confirmation")

	// ErrCodeMismatch means a confirmation references a different code than
	// the one currently active on this device.
	ErrCodeMismatch = errors.New("confirmation does not match the active connection code")

	// ErrNoPendingInvite means a confirmation arrived but no invite identity
	// is parked for the active code.
	ErrNoPendingInvite = errors.New("no pending invite for the active connection code")
)

// CreateInvite builds the sponsee's invite card for the currently active
// connection code. The identity key pair is minted on first use and reused
// for repeat invites of the same code, so re-copying an invite never changes
// the handshake.
func (s *Service) CreateInvite(ctx context.Context, sponseeName string) (string, error) {
	code, err := s.codes.Current(ctx)
	if err != nil {
		return "", err
	}
	if code == nil {
		return "", ErrNoActiveCode
	}
	if code.Expired(s.now()) {
		return "", pairing.ErrCodeExpired
	}

	kp, err := s.conns.PendingKeyPair(ctx, code.Code)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return "", err
		}
		kp, err = cryptox.GenerateKeyPair()
		if err != nil {
			return "", err
		}
		if err := s.conns.SetPendingKeyPair(ctx, code.Code, kp); err != nil {
			return "", err
		}
	}

	return payload.Encode(&payload.Invite{
		Version:     payload.CurrentVersion,
		Code:        code.Code,
		SponseeName: sponseeName,
		PublicKey:   kp.PublicKey,
		CreatedAt:   code.CreatedAt,
		ExpiresAt:   code.ExpiresAt,
	})
}

// AcceptInvite runs the sponsor side of the handshake: validate the pasted
// invite, create the connection record, derive and store the shared key, and
// return the confirmation card to send back. localName goes into the
// confirmation as the sponsor's name; peerName overrides the connection's
// display name (falling back to the invite's sponsee name, then the code).
func (s *Service) AcceptInvite(ctx context.Context, raw string, localName string, peerName string) (string, *connections.Connection, error) {
	invite, ok := payload.DecodeInvite(raw)
	if !ok {
		return "", nil, ErrNotInvite
	}

	code := pairing.Normalize(invite.Code)
	if !pairing.ValidateFormat(code) {
		return "", nil, pairing.ErrInvalidCodeFormat
	}
	if !s.now().Before(invite.ExpiresAt) {
		return "", nil, pairing.ErrCodeExpired
	}

	if _, err := s.conns.GetByCode(ctx, code); err == nil {
		return "", nil, fmt.Errorf("connection for code %s already exists", code)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return "", nil, err
	}

	kp, err := cryptox.GenerateKeyPair()
	if err != nil {
		return "", nil, err
	}

	sharedKey, err := cryptox.DeriveSharedKey(kp.PrivateKey, invite.PublicKey)
	if err != nil {
		return "", nil, err
	}

	name := peerName
	if name == "" {
		name = invite.SponseeName
	}
	if name == "" {
		name = code
	}

	conn, err := s.conns.Add(ctx, code, name)
	if err != nil {
		return "", nil, err
	}
	if err := s.conns.SetKeyPair(ctx, conn.ID, kp); err != nil {
		return "", nil, err
	}
	if err := s.conns.SetSharedKey(ctx, conn.ID, sharedKey); err != nil {
		return "", nil, err
	}

	confirm, err := payload.Encode(&payload.Confirm{
		Version:     payload.CurrentVersion,
		Code:        code,
		SponsorName: localName,
		PublicKey:   kp.PublicKey,
		ConfirmedAt: s.now(),
	})
	if err != nil {
		return "", nil, err
	}
	return confirm, conn, nil
}

// AcceptConfirm runs the sponsee side: match the pasted confirmation against
// the active code, derive the shared key with the parked invite identity,
// and create the sponsor-facing connection record. After this call both
// parties hold the identical AES key.
func (s *Service) AcceptConfirm(ctx context.Context, raw string) (*connections.Connection, error) {
	confirm, ok := payload.DecodeConfirm(raw)
	if !ok {
		return nil, ErrNotConfirm
	}

	current, err := s.codes.Current(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoActiveCode
	}
	if pairing.Normalize(confirm.Code) != current.Code {
		return nil, ErrCodeMismatch
	}
	if current.Expired(s.now()) {
		return nil, pairing.ErrCodeExpired
	}

	if _, err := s.conns.GetByCode(ctx, current.Code); err == nil {
		return nil, fmt.Errorf("connection for code %s already exists", current.Code)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	kp, err := s.conns.PendingKeyPair(ctx, current.Code)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrNoPendingInvite
		}
		return nil, err
	}

	sharedKey, err := cryptox.DeriveSharedKey(kp.PrivateKey, confirm.PublicKey)
	if err != nil {
		return nil, err
	}

	name := confirm.SponsorName
	if name == "" {
		name = current.Code
	}

	conn, err := s.conns.Add(ctx, current.Code, name)
	if err != nil {
		return nil, err
	}
	if err := s.conns.SetKeyPair(ctx, conn.ID, kp); err != nil {
		return nil, err
	}
	if err := s.conns.SetSharedKey(ctx, conn.ID, sharedKey); err != nil {
		return nil, err
	}
	if err := s.conns.DeletePendingKeyPair(ctx); err != nil {
		return nil, err
	}

	return conn, nil
}
