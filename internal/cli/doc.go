// Package cli provides the interactive RecoverLink sponsor-connection client.
//
// It wires configuration, the encrypted keyring, the local share database and
// an interactive REPL for the offline pairing-and-sharing flows. Typical
// session: unlock the keyring with a passphrase, pair with a sponsor or
// sponsee by exchanging pasted invite and confirmation cards, then share
// encrypted journal entries and import the payloads the other side sends
// back.
//
// Key features:
//   - Pairing codes: create, show, revoke
//   - Handshake: invite, accept, confirm
//   - Connections: list, rename, remove
//   - Sharing: encrypt entries and comments, import pasted payloads
//   - Status: privacy-limited progress summary cards
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
