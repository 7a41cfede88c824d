package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/recoverlink/recoverlink/internal/config"
	"github.com/recoverlink/recoverlink/internal/connections"
	"github.com/recoverlink/recoverlink/internal/cryptox"
	"github.com/recoverlink/recoverlink/internal/logging"
	"github.com/recoverlink/recoverlink/internal/pairing"
	"github.com/recoverlink/recoverlink/internal/securestore"
	"github.com/recoverlink/recoverlink/internal/sharing"

	_ "modernc.org/sqlite"
)

// shareOps is the slice of the sharing service the commands call. Kept as an
// interface so command tests can substitute a fake.
type shareOps interface {
	CreateInvite(ctx context.Context, sponseeName string) (string, error)
	AcceptInvite(ctx context.Context, raw string, localName string, peerName string) (string, *connections.Connection, error)
	AcceptConfirm(ctx context.Context, raw string) (*connections.Connection, error)
	ShareEntries(ctx context.Context, connectionID string, entries []sharing.Entry, senderName string) ([]string, error)
	ShareComment(ctx context.Context, connectionID string, entryID string, text string, senderName string) (string, error)
	ImportPayloads(ctx context.Context, raw string) (*sharing.ImportResult, error)
	LoadIncomingEntries(ctx context.Context, connectionID string) ([]sharing.EntryView, error)
	LoadCommentsForEntry(ctx context.Context, entryID string) ([]sharing.CommentView, error)
}

type connectionOps interface {
	List(ctx context.Context) ([]connections.Connection, error)
	GetByID(ctx context.Context, id string) (*connections.Connection, error)
	UpdateName(ctx context.Context, id string, name string) error
	Remove(ctx context.Context, id string) error
}

type codeOps interface {
	Generate(ctx context.Context) (*pairing.ConnectionCode, error)
	Current(ctx context.Context) (*pairing.ConnectionCode, error)
	Revoke(ctx context.Context) error
}

// App holds the CLI state. Before Unlock only config, reader and logger are
// set; Unlock opens the keyring and wires the rest.
type App struct {
	config  *config.Config
	keyring securestore.Store
	profile *sharing.Profile
	conns   connectionOps
	codes   codeOps
	svc     shareOps
	db      *sql.DB
	reader  *bufio.Reader
	logger  logging.Logger
}

// NewApp builds a locked App. The crypto self-check runs here so a runtime
// missing a required primitive refuses to start instead of degrading.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	if err := cryptox.AssertAvailable(); err != nil {
		return nil, err
	}
	return &App{config: c, reader: bufio.NewReader(os.Stdin), logger: logger}, nil
}

// Run starts the REPL, prompting for the keyring passphrase first. It blocks
// until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Println("RecoverLink CLI (type 'help' for commands)")

	_ = a.Unlock(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the share database. Safe to call on a locked App.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}

func (a *App) isUnlocked() bool {
	return a.keyring != nil
}

func (a *App) getStatus() string {
	if !a.isUnlocked() {
		return "(locked)"
	}
	if a.profile != nil && a.profile.DisplayName != "" {
		return fmt.Sprintf("(%s)", a.profile.DisplayName)
	}
	return "(unlocked)"
}
