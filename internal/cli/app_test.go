package cli

import (
	"testing"

	"github.com/recoverlink/recoverlink/internal/logging"
	"github.com/recoverlink/recoverlink/internal/securestore"
	"github.com/recoverlink/recoverlink/internal/sharing"
)

func TestIsUnlocked_NilKeyring(t *testing.T) {
	app := &App{}
	if app.isUnlocked() {
		t.Fatalf("expected isUnlocked() == false before Unlock")
	}
}

func TestIsUnlocked_WithKeyring(t *testing.T) {
	app := &App{keyring: securestore.NewMemory()}
	if !app.isUnlocked() {
		t.Fatalf("expected isUnlocked() == true with a keyring attached")
	}
}

func TestGetStatus(t *testing.T) {
	app := &App{}
	if got := app.getStatus(); got != "(locked)" {
		t.Fatalf("locked status: got %q", got)
	}

	app.keyring = securestore.NewMemory()
	if got := app.getStatus(); got != "(unlocked)" {
		t.Fatalf("unlocked status: got %q", got)
	}

	app.profile = &sharing.Profile{UserID: "u", DisplayName: "Alex"}
	if got := app.getStatus(); got != "(Alex)" {
		t.Fatalf("named status: got %q", got)
	}
}

func TestNewApp_RunsCryptoSelfCheck(t *testing.T) {
	app, err := NewApp(testConfig(t), logging.NewNopLogger())
	if err != nil {
		t.Fatalf("NewApp err: %v", err)
	}
	if app.isUnlocked() {
		t.Fatalf("fresh App must start locked")
	}
}
