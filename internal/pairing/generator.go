package pairing

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/recoverlink/recoverlink/internal/securestore"
)

// Generator creates, reads and revokes the device's connection code.
// The clock and randomness source are fields so tests can pin them; real
// callers get time.Now and crypto/rand. There is no fallback source: if the
// CSPRNG fails, Generate fails.
type Generator struct {
	store securestore.Store
	ttl   time.Duration

	now  func() time.Time
	rand io.Reader
}

func NewGenerator(store securestore.Store, ttl time.Duration) *Generator {
	return &Generator{
		store: store,
		ttl:   ttl,
		now:   time.Now,
		rand:  rand.Reader,
	}
}

// Generate creates a fresh connection code, replacing any previous one, and
// persists it before reporting it. A code that was never stored is never
// returned.
func (g *Generator) Generate(ctx context.Context) (*ConnectionCode, error) {
	buf := make([]byte, codeLength)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return nil, fmt.Errorf("generate connection code: %w", err)
	}

	chars := make([]byte, codeLength)
	for i, b := range buf {
		chars[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}

	now := g.now()
	code := &ConnectionCode{
		Code:      codePrefix + string(chars),
		CreatedAt: now,
		ExpiresAt: now.Add(g.ttl),
	}

	// expiry first: a stored code always has a stored expiry
	if err := g.store.Set(ctx, keyCodeExpiry, code.ExpiresAt.Format(time.RFC3339Nano)); err != nil {
		return nil, fmt.Errorf("store connection code expiry: %w", err)
	}
	if err := g.store.Set(ctx, keyCode, code.Code); err != nil {
		return nil, fmt.Errorf("store connection code: %w", err)
	}

	return code, nil
}

// Current returns the stored connection code, or nil when none exists. It is
// a pure read: an expired code is still returned, with Expired left to the
// caller.
func (g *Generator) Current(ctx context.Context) (*ConnectionCode, error) {
	code, err := g.store.Get(ctx, keyCode)
	if err != nil {
		if errors.Is(err, securestore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read connection code: %w", err)
	}

	expiryRaw, err := g.store.Get(ctx, keyCodeExpiry)
	if err != nil {
		if errors.Is(err, securestore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read connection code expiry: %w", err)
	}

	expiresAt, err := time.Parse(time.RFC3339Nano, expiryRaw)
	if err != nil {
		return nil, fmt.Errorf("parse connection code expiry: %w", err)
	}

	return &ConnectionCode{
		Code:      code,
		CreatedAt: expiresAt.Add(-g.ttl),
		ExpiresAt: expiresAt,
	}, nil
}

// Revoke deletes the stored code. Revoking when no code exists is not an
// error.
func (g *Generator) Revoke(ctx context.Context) error {
	if err := g.store.Delete(ctx, keyCode); err != nil {
		return fmt.Errorf("revoke connection code: %w", err)
	}
	if err := g.store.Delete(ctx, keyCodeExpiry); err != nil {
		return fmt.Errorf("revoke connection code expiry: %w", err)
	}
	return nil
}
