package payload

import (
	"encoding/json"
	"time"

	"github.com/recoverlink/recoverlink/internal/cryptox"
)

// EntryShare carries one encrypted journal entry. EntryID is the sponsee's
// local entry id, opaque to the recipient, used to attach comments later.
type EntryShare struct {
	Version    int              `json:"version"`
	Code       string           `json:"code"`
	EntryID    string           `json:"entryId"`
	Encrypted  cryptox.Envelope `json:"encrypted"`
	SenderName string           `json:"senderName,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}

func (*EntryShare) Kind() Kind { return KindEntryShare }
func (*EntryShare) isPayload() {}

// CommentShare carries one encrypted comment on a previously shared entry,
// referenced by the same opaque EntryID.
type CommentShare struct {
	Version    int              `json:"version"`
	Code       string           `json:"code"`
	EntryID    string           `json:"entryId"`
	Encrypted  cryptox.Envelope `json:"encrypted"`
	SenderName string           `json:"senderName,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}

func (*CommentShare) Kind() Kind { return KindCommentShare }
func (*CommentShare) isPayload() {}

func DecodeEntryShare(line string) (*EntryShare, bool) {
	body, ok := decodeBody(KindEntryShare, line)
	if !ok {
		return nil, false
	}
	var p EntryShare
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, false
	}
	if p.Version != CurrentVersion {
		return nil, false
	}
	return &p, true
}

func DecodeCommentShare(line string) (*CommentShare, bool) {
	body, ok := decodeBody(KindCommentShare, line)
	if !ok {
		return nil, false
	}
	var p CommentShare
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, false
	}
	if p.Version != CurrentVersion {
		return nil, false
	}
	return &p, true
}
