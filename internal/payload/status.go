package payload

import (
	"encoding/json"

	"github.com/recoverlink/recoverlink/internal/summary"
)

// Status carries the unencrypted aggregate snapshot of the coarse sharing
// mode. It gets its own prefix so the sniffing decoder never has to tell it
// apart from an encrypted entry share by content.
type Status struct {
	Version int `json:"version"`
	summary.ShareData
}

func (*Status) Kind() Kind { return KindStatus }
func (*Status) isPayload() {}

func DecodeStatus(line string) (*Status, bool) {
	body, ok := decodeBody(KindStatus, line)
	if !ok {
		return nil, false
	}
	var p Status
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, false
	}
	if p.Version != CurrentVersion {
		return nil, false
	}
	return &p, true
}
