package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isUnlocked() bool
	Unlock(ctx context.Context) error
	ShowCode(ctx context.Context) error
	NewCode(ctx context.Context) error
	RevokeCode(ctx context.Context) error
	Invite(ctx context.Context) error
	Accept(ctx context.Context) error
	Confirm(ctx context.Context) error
	List(ctx context.Context) error
	Rename(ctx context.Context) error
	Remove(ctx context.Context) error
	Share(ctx context.Context) error
	Comment(ctx context.Context) error
	Import(ctx context.Context) error
	Inbox(ctx context.Context) error
	Comments(ctx context.Context) error
	Status(ctx context.Context) error
	Profile(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the RecoverLink CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Locked:
//	  - help           - show available commands
//	  - unlock         - open the keyring with a passphrase
//	  - exit | quit    - leave the program
//
//	Unlocked:
//	  - help           - show available commands
//	  - code           - show the active pairing code
//	  - newcode        - create or replace the pairing code
//	  - revokecode     - revoke the pairing code
//	  - invite         - build an invite card for a sponsor
//	  - accept         - accept a pasted invite (sponsor side)
//	  - confirm        - accept a pasted confirmation (sponsee side)
//	  - (l)ist         - list connections
//	  - rename         - rename a connection
//	  - remove         - remove a connection and its keys
//	  - share          - encrypt and share a journal entry
//	  - comment        - comment on a shared entry
//	  - import         - import pasted payloads
//	  - inbox          - show entries received from a connection
//	  - comments       - show comments on an entry
//	  - status         - build a progress summary card
//	  - profile        - show or change the local profile
//	  - exit | quit    - leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("rl> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isUnlocked() {
				printlnFn("Available commands: code, newcode, revokecode, invite, accept, confirm, (l)ist, rename, remove, share, comment, import, inbox, comments, status, profile, exit")
			} else {
				printlnFn("Available commands: unlock, exit")
			}

		case "unlock":
			_ = a.Unlock(ctx)

		case "code":
			_ = a.ShowCode(ctx)

		case "newcode":
			_ = a.NewCode(ctx)

		case "revokecode":
			_ = a.RevokeCode(ctx)

		case "invite":
			_ = a.Invite(ctx)

		case "accept":
			_ = a.Accept(ctx)

		case "confirm":
			_ = a.Confirm(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "rename":
			_ = a.Rename(ctx)

		case "remove":
			_ = a.Remove(ctx)

		case "share":
			_ = a.Share(ctx)

		case "comment":
			_ = a.Comment(ctx)

		case "import":
			_ = a.Import(ctx)

		case "inbox":
			_ = a.Inbox(ctx)

		case "comments":
			_ = a.Comments(ctx)

		case "status":
			_ = a.Status(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
