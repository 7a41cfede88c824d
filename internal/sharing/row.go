package sharing

import "time"

// Direction tags a row in the local share store. Entries are outgoing on the
// sender's device and incoming on the recipient's; comments use one tag in
// both directions.
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
	DirectionComment  Direction = "comment"
)

// Row is one record of the sponsor_shared_entries table: a transmitted or
// received payload kept for history and de-duplication. Payload is the full
// encoded wire string; everything displayable is recovered from it.
type Row struct {
	ID             string
	UserID         string
	ConnectionID   string
	Direction      Direction
	JournalEntryID string
	Payload        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Entry is a journal entry handed over for sharing. The journal itself lives
// outside this subsystem; callers pass in the fields they want shared.
type Entry struct {
	ID        string
	Title     string
	Body      string
	Mood      int
	Craving   int
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SharedEntryContent is the plaintext snapshot sealed inside an entry-share
// envelope. It is fixed at share time: later edits to the journal entry do
// not change what was shared.
type SharedEntryContent struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Mood      int       `json:"mood"`
	Craving   int       `json:"craving"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentContent is the plaintext sealed inside a comment envelope.
type CommentContent struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// EntryView is a decrypted incoming entry ready for display.
type EntryView struct {
	RowID        string
	ConnectionID string
	EntryID      string
	SenderName   string
	Content      SharedEntryContent
	ReceivedAt   time.Time
}

// CommentView is a decrypted comment on a shared entry, sent or received.
type CommentView struct {
	RowID        string
	ConnectionID string
	EntryID      string
	SenderName   string
	Content      CommentContent
	ReceivedAt   time.Time
}

// ImportResult aggregates one batch import. Skipped counts every line that
// was not recorded, whatever the reason.
type ImportResult struct {
	Entries  int
	Comments int
	Skipped  int
}
