package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/recoverlink/recoverlink/internal/sharing"
)

// getSimpleText and getMultiline are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline

// Invite builds the invite card for the active pairing code and prints it
// for the user to copy to their sponsor.
func (a *App) Invite(ctx context.Context) error {
	card, err := a.svc.CreateInvite(ctx, a.profile.DisplayName)
	if err != nil {
		if errors.Is(err, sharing.ErrNoActiveCode) {
			fmt.Println("No active connection code. Use 'newcode' first.")
		} else {
			log.Printf("error: %v", err)
		}
		return err
	}

	fmt.Println("Send this invite to your sponsor:")
	fmt.Println(card)
	return nil
}

// Accept runs the sponsor side of the handshake on a pasted invite. It prints
// the confirmation card to send back.
func (a *App) Accept(ctx context.Context) error {
	raw, err := getSimpleText(a.reader, "Paste the invite", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Name for this connection (Enter to use theirs)", os.Stdout)
	if err != nil {
		return err
	}

	confirm, conn, err := a.svc.AcceptInvite(ctx, raw, a.profile.DisplayName, name)
	if err != nil {
		if errors.Is(err, sharing.ErrNotInvite) {
			fmt.Println("That text is not a connection invite.")
		} else {
			log.Printf("error: %v", err)
		}
		return err
	}

	fmt.Printf("Connected to %s.\n", conn.Name)
	fmt.Println("Send this confirmation back to finish the handshake:")
	fmt.Println(confirm)
	return nil
}

// Confirm finishes the sponsee side of the handshake on a pasted
// confirmation card.
func (a *App) Confirm(ctx context.Context) error {
	raw, err := getSimpleText(a.reader, "Paste the confirmation", os.Stdout)
	if err != nil {
		return err
	}

	conn, err := a.svc.AcceptConfirm(ctx, raw)
	if err != nil {
		switch {
		case errors.Is(err, sharing.ErrNotConfirm):
			fmt.Println("That text is not a connection confirmation.")
		case errors.Is(err, sharing.ErrNoPendingInvite):
			fmt.Println("No invite was created for the active code. Use 'invite' first.")
		default:
			log.Printf("error: %v", err)
		}
		return err
	}

	fmt.Printf("Connected to %s. You can now share entries.\n", conn.Name)
	return nil
}
