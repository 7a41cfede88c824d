package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/recoverlink/recoverlink/internal/common"
	"github.com/recoverlink/recoverlink/internal/connections"
	"github.com/recoverlink/recoverlink/internal/filex"
	"github.com/recoverlink/recoverlink/internal/pairing"
	"github.com/recoverlink/recoverlink/internal/securestore"
	"github.com/recoverlink/recoverlink/internal/sharing"
)

// getPassphrase is an indirection used to facilitate testing.
var getPassphrase = GetPassphrase

// Unlock prompts for the keyring passphrase and wires the unlocked services:
// connection store, code generator and sharing service. On a fresh data
// directory the keyring and database files are created. A wrong passphrase
// leaves the App locked so the user can retry with the unlock command.
func (a *App) Unlock(ctx context.Context) error {
	if a.isUnlocked() {
		fmt.Println("Already unlocked.")
		return nil
	}

	if err := filex.EnsureParentDir(a.config.KeyringPath); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if err := filex.EnsureParentDir(a.config.DatabasePath); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	passphrase, err := getPassphrase(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(passphrase)

	keyring, err := securestore.OpenFile(a.config.KeyringPath, passphrase)
	if err != nil {
		if errors.Is(err, securestore.ErrUnauthorized) {
			fmt.Println("Wrong passphrase.")
		} else {
			log.Printf("error: %v", err)
		}
		return err
	}

	profile, err := sharing.EnsureProfile(ctx, keyring, a.config.DisplayName)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	db, err := sharing.OpenDatabase(ctx, a.config.DatabasePath)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	atRest := keyring.AtRest()
	conns := connections.NewStore(keyring, atRest)
	codes := pairing.NewGenerator(keyring, a.config.CodeTTL)

	a.keyring = keyring
	a.profile = profile
	a.db = db
	a.conns = conns
	a.codes = codes
	a.svc = sharing.NewService(db, conns, codes, profile.UserID, a.logger)

	fmt.Println("Unlocked.")
	return nil
}
