package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/recoverlink/recoverlink/internal/sharing"
)

// Profile shows the local identity and optionally changes the display name.
func (a *App) Profile(ctx context.Context) error {
	fmt.Printf("User id: %s\n", a.profile.UserID)
	if a.profile.DisplayName != "" {
		fmt.Printf("Display name: %s\n", a.profile.DisplayName)
	} else {
		fmt.Println("Display name not set; outgoing payloads carry no sender name.")
	}

	name, err := getSimpleText(a.reader, "New display name (Enter to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}

	profile, err := sharing.EnsureProfile(ctx, a.keyring, name)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.profile = profile
	fmt.Println("Saved.")
	return nil
}
