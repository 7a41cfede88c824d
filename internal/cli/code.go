package cli

import (
	"context"
	"fmt"
	"log"
	"time"
)

// ShowCode prints the active pairing code and its validity window.
func (a *App) ShowCode(ctx context.Context) error {
	code, err := a.codes.Current(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if code == nil {
		fmt.Println("No active connection code. Use 'newcode' to create one.")
		return nil
	}

	fmt.Printf("Connection code: %s\n", code.Code)
	if code.Expired(time.Now()) {
		fmt.Printf("Expired %s. Use 'newcode' to create a fresh one.\n", code.ExpiresAt.Format("2006-01-02 15:04"))
	} else {
		fmt.Printf("Valid until %s.\n", code.ExpiresAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// NewCode creates a pairing code, replacing any previous one.
func (a *App) NewCode(ctx context.Context) error {
	code, err := a.codes.Generate(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Connection code: %s\n", code.Code)
	fmt.Printf("Valid until %s. Share it with your sponsor along with an invite.\n", code.ExpiresAt.Format("2006-01-02 15:04"))
	return nil
}

// RevokeCode drops the active pairing code so no new connection can be built
// on it. Existing connections are unaffected.
func (a *App) RevokeCode(ctx context.Context) error {
	if err := a.codes.Revoke(ctx); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println("Connection code revoked.")
	return nil
}
