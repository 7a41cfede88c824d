// Package payload is the wire codec for sponsor-connection cards. Every card
// travels as a single text line, `<PREFIX>:<base64(JSON)>`, built for manual
// copy/paste or a message body rather than a network protocol. Decoding
// treats an unparseable line as a normal outcome reported as (nil, false),
// never an error, so a batch importer can classify mixed pasted text line
// by line.
package payload

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// CurrentVersion is stamped into every encoded card. Decoders reject any
// other value instead of guessing at a shape.
const CurrentVersion = 1

// Kind doubles as the wire prefix of its card.
type Kind string

const (
	KindInvite       Kind = "RCINVITE"
	KindConfirm      Kind = "RCCONFIRM"
	KindEntryShare   Kind = "RCSHARE"
	KindCommentShare Kind = "RCCOMMENT"
	KindStatus       Kind = "RCSTATUS"
)

// Payload is implemented by every card kind. The unexported method keeps the
// set closed, so a type switch over kinds covers every possible value.
type Payload interface {
	Kind() Kind
	isPayload()
}

// Encode serializes p into its single-line wire form.
func Encode(p Payload) (string, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode %s payload: %w", p.Kind(), err)
	}
	return string(p.Kind()) + ":" + base64.StdEncoding.EncodeToString(body), nil
}

// Decode sniffs line against every known kind in a fixed order. It reports
// false for anything no kind claims.
func Decode(line string) (Payload, bool) {
	if p, ok := DecodeInvite(line); ok {
		return p, true
	}
	if p, ok := DecodeConfirm(line); ok {
		return p, true
	}
	if p, ok := DecodeEntryShare(line); ok {
		return p, true
	}
	if p, ok := DecodeCommentShare(line); ok {
		return p, true
	}
	if p, ok := DecodeStatus(line); ok {
		return p, true
	}
	return nil, false
}

// SplitBatch splits pasted text into trimmed, non-empty lines ready for
// per-line decoding.
func SplitBatch(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// decodeBody strips the kind's prefix and undoes the base64 layer. A wrong
// prefix or broken base64 reports false.
func decodeBody(kind Kind, line string) ([]byte, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), string(kind)+":")
	if !ok {
		return nil, false
	}
	body, err := base64.StdEncoding.DecodeString(rest)
	if err != nil {
		return nil, false
	}
	return body, true
}
