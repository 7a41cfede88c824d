package payload

import (
	"encoding/json"
	"time"
)

// Invite is the sponsee's opening card: connection code plus the sponsee's
// public key, valid until the code expires.
type Invite struct {
	Version     int       `json:"version"`
	Code        string    `json:"code"`
	SponseeName string    `json:"sponseeName,omitempty"`
	PublicKey   string    `json:"publicKey"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (*Invite) Kind() Kind { return KindInvite }
func (*Invite) isPayload() {}

// Confirm is the sponsor's reply carrying the sponsor's public key. Once the
// sponsee processes it, both sides can derive the same shared key.
type Confirm struct {
	Version     int       `json:"version"`
	Code        string    `json:"code"`
	SponsorName string    `json:"sponsorName,omitempty"`
	PublicKey   string    `json:"publicKey"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}

func (*Confirm) Kind() Kind { return KindConfirm }
func (*Confirm) isPayload() {}

func DecodeInvite(line string) (*Invite, bool) {
	body, ok := decodeBody(KindInvite, line)
	if !ok {
		return nil, false
	}
	var p Invite
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, false
	}
	if p.Version != CurrentVersion {
		return nil, false
	}
	return &p, true
}

func DecodeConfirm(line string) (*Confirm, bool) {
	body, ok := decodeBody(KindConfirm, line)
	if !ok {
		return nil, false
	}
	var p Confirm
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, false
	}
	if p.Version != CurrentVersion {
		return nil, false
	}
	return &p, true
}
