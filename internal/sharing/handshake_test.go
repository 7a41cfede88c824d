package sharing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/recoverlink/recoverlink/internal/common"
	"github.com/recoverlink/recoverlink/internal/cryptox"
	"github.com/recoverlink/recoverlink/internal/pairing"
	"github.com/recoverlink/recoverlink/internal/payload"
)

// mintInvite builds a decodable invite line outside the service, for feeding
// AcceptInvite malformed or foreign handshake cards.
func mintInvite(t *testing.T, code string, sponseeName string, expiresAt time.Time) string {
	t.Helper()
	kp, err := cryptox.GenerateKeyPair()
	require.NoError(t, err)

	line, err := payload.Encode(&payload.Invite{
		Version:     payload.CurrentVersion,
		Code:        code,
		SponseeName: sponseeName,
		PublicKey:   kp.PublicKey,
		CreatedAt:   expiresAt.Add(-7 * 24 * time.Hour),
		ExpiresAt:   expiresAt,
	})
	require.NoError(t, err)
	return line
}

func mintConfirm(t *testing.T, code string, sponsorName string) string {
	t.Helper()
	kp, err := cryptox.GenerateKeyPair()
	require.NoError(t, err)

	line, err := payload.Encode(&payload.Confirm{
		Version:     payload.CurrentVersion,
		Code:        code,
		SponsorName: sponsorName,
		PublicKey:   kp.PublicKey,
		ConfirmedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return line
}

func TestHandshakeDerivesIdenticalSharedKeys(t *testing.T) {
	ctx := context.Background()
	sponsee, sponsor, sponseeConn, sponsorConn := pairParties(t)

	sponseeKey, err := sponsee.conns.SharedKey(ctx, sponseeConn.ID)
	require.NoError(t, err)
	sponsorKey, err := sponsor.conns.SharedKey(ctx, sponsorConn.ID)
	require.NoError(t, err)

	require.Equal(t, sponseeKey, sponsorKey)

	raw, err := cryptox.DecodeKey(sponseeKey)
	require.NoError(t, err)
	require.Len(t, raw, 32)
}

func TestHandshakeConnectionRecords(t *testing.T) {
	_, _, sponseeConn, sponsorConn := pairParties(t)

	require.Equal(t, sponseeConn.Code, sponsorConn.Code)
	require.Equal(t, "Alex", sponsorConn.Name)
	require.Equal(t, "Sam", sponseeConn.Name)
	require.NotEqual(t, sponseeConn.ID, sponsorConn.ID)
}

func TestCreateInviteRequiresActiveCode(t *testing.T) {
	p := newParty(t, "user")

	_, err := p.svc.CreateInvite(context.Background(), "Alex")
	require.ErrorIs(t, err, ErrNoActiveCode)
}

func TestCreateInviteRejectsExpiredCode(t *testing.T) {
	ctx := context.Background()
	p := newParty(t, "user")

	_, err := p.codes.Generate(ctx)
	require.NoError(t, err)

	p.svc.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }

	_, err = p.svc.CreateInvite(ctx, "Alex")
	require.ErrorIs(t, err, pairing.ErrCodeExpired)
}

func TestCreateInviteReusesPendingIdentity(t *testing.T) {
	ctx := context.Background()
	p := newParty(t, "user")

	_, err := p.codes.Generate(ctx)
	require.NoError(t, err)

	first, err := p.svc.CreateInvite(ctx, "Alex")
	require.NoError(t, err)
	second, err := p.svc.CreateInvite(ctx, "Alex")
	require.NoError(t, err)

	// same parked key pair and same stored code, so the card is reproducible
	require.Equal(t, first, second)
}

func TestAcceptInviteRejectsNonInvite(t *testing.T) {
	ctx := context.Background()
	p := newParty(t, "user")

	for _, raw := range []string{
		"",
		"not a payload at all",
		mintConfirm(t, "RC-ABC234", "Sam"),
	} {
		_, _, err := p.svc.AcceptInvite(ctx, raw, "Sam", "")
		require.ErrorIs(t, err, ErrNotInvite)
	}
}

func TestAcceptInviteRejectsBadCodeFormat(t *testing.T) {
	p := newParty(t, "user")

	invite := mintInvite(t, "RC-AB01CD", "Alex", time.Now().Add(time.Hour))
	_, _, err := p.svc.AcceptInvite(context.Background(), invite, "Sam", "")
	require.ErrorIs(t, err, pairing.ErrInvalidCodeFormat)
}

func TestAcceptInviteRejectsExpiredInvite(t *testing.T) {
	p := newParty(t, "user")

	invite := mintInvite(t, "RC-ABC234", "Alex", time.Now().Add(-time.Minute))
	_, _, err := p.svc.AcceptInvite(context.Background(), invite, "Sam", "")
	require.ErrorIs(t, err, pairing.ErrCodeExpired)
}

func TestAcceptInviteRejectsDuplicateCode(t *testing.T) {
	ctx := context.Background()
	sponsee := newParty(t, "sponsee-user")
	sponsor := newParty(t, "sponsor-user")

	_, err := sponsee.codes.Generate(ctx)
	require.NoError(t, err)
	invite, err := sponsee.svc.CreateInvite(ctx, "Alex")
	require.NoError(t, err)

	_, _, err = sponsor.svc.AcceptInvite(ctx, invite, "Sam", "")
	require.NoError(t, err)

	_, _, err = sponsor.svc.AcceptInvite(ctx, invite, "Sam", "")
	require.ErrorContains(t, err, "already exists")
}

func TestAcceptInviteNormalizesCode(t *testing.T) {
	p := newParty(t, "user")

	invite := mintInvite(t, "rc-abc234", "Alex", time.Now().Add(time.Hour))
	_, conn, err := p.svc.AcceptInvite(context.Background(), invite, "Sam", "")
	require.NoError(t, err)
	require.Equal(t, "RC-ABC234", conn.Code)
}

func TestAcceptInviteNamePrecedence(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		sponseeName string
		peerName    string
		want        func(code string) string
	}{
		{name: "override wins", sponseeName: "Alex", peerName: "My sponsee", want: func(string) string { return "My sponsee" }},
		{name: "invite name", sponseeName: "Alex", peerName: "", want: func(string) string { return "Alex" }},
		{name: "code as last resort", sponseeName: "", peerName: "", want: func(code string) string { return code }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParty(t, "user")
			invite := mintInvite(t, "RC-ABC234", tt.sponseeName, time.Now().Add(time.Hour))

			_, conn, err := p.svc.AcceptInvite(ctx, invite, "Sam", tt.peerName)
			require.NoError(t, err)
			require.Equal(t, tt.want(conn.Code), conn.Name)
		})
	}
}

func TestAcceptConfirmRejectsNonConfirm(t *testing.T) {
	ctx := context.Background()
	p := newParty(t, "user")

	for _, raw := range []string{
		"",
		"still not a payload",
		mintInvite(t, "RC-ABC234", "Alex", time.Now().Add(time.Hour)),
	} {
		_, err := p.svc.AcceptConfirm(ctx, raw)
		require.ErrorIs(t, err, ErrNotConfirm)
	}
}

func TestAcceptConfirmRequiresActiveCode(t *testing.T) {
	p := newParty(t, "user")

	_, err := p.svc.AcceptConfirm(context.Background(), mintConfirm(t, "RC-ABC234", "Sam"))
	require.ErrorIs(t, err, ErrNoActiveCode)
}

func TestAcceptConfirmRejectsCodeMismatch(t *testing.T) {
	ctx := context.Background()
	p := newParty(t, "user")

	code, err := p.codes.Generate(ctx)
	require.NoError(t, err)
	require.NotEqual(t, "RC-ZZZZZZ", code.Code)

	_, err = p.svc.AcceptConfirm(ctx, mintConfirm(t, "RC-ZZZZZZ", "Sam"))
	require.ErrorIs(t, err, ErrCodeMismatch)
}

func TestAcceptConfirmRejectsExpiredCode(t *testing.T) {
	ctx := context.Background()
	p := newParty(t, "user")

	code, err := p.codes.Generate(ctx)
	require.NoError(t, err)
	_, err = p.svc.CreateInvite(ctx, "Alex")
	require.NoError(t, err)

	p.svc.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }

	_, err = p.svc.AcceptConfirm(ctx, mintConfirm(t, code.Code, "Sam"))
	require.ErrorIs(t, err, pairing.ErrCodeExpired)
}

func TestAcceptConfirmRequiresPendingInvite(t *testing.T) {
	ctx := context.Background()
	p := newParty(t, "user")

	code, err := p.codes.Generate(ctx)
	require.NoError(t, err)

	_, err = p.svc.AcceptConfirm(ctx, mintConfirm(t, code.Code, "Sam"))
	require.ErrorIs(t, err, ErrNoPendingInvite)
}

func TestAcceptConfirmClearsPendingIdentity(t *testing.T) {
	ctx := context.Background()
	sponsee, _, sponseeConn, _ := pairParties(t)

	_, err := sponsee.conns.PendingKeyPair(ctx, sponseeConn.Code)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAcceptConfirmNameFallsBackToCode(t *testing.T) {
	ctx := context.Background()
	sponsee := newParty(t, "sponsee-user")
	sponsor := newParty(t, "sponsor-user")

	_, err := sponsee.codes.Generate(ctx)
	require.NoError(t, err)
	invite, err := sponsee.svc.CreateInvite(ctx, "Alex")
	require.NoError(t, err)

	// sponsor leaves their name empty
	confirm, _, err := sponsor.svc.AcceptInvite(ctx, invite, "", "")
	require.NoError(t, err)

	conn, err := sponsee.svc.AcceptConfirm(ctx, confirm)
	require.NoError(t, err)
	require.Equal(t, conn.Code, conn.Name)
}
