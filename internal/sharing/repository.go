package sharing

import "context"

// Repository is the persistence surface for share rows. Implementations are
// bound to a dbx.DBTX at construction, so the same code runs against the
// plain handle or inside a transaction.
type Repository interface {
	// Insert stores a new row.
	Insert(ctx context.Context, row *Row) error

	// ExistsByPayload reports whether a row with exactly this encoded
	// payload is already recorded. Backs the import dedup check.
	ExistsByPayload(ctx context.Context, payload string) (bool, error)

	// ListByConnection returns the connection's rows with the given
	// direction, oldest first.
	ListByConnection(ctx context.Context, connectionID string, direction Direction) ([]Row, error)

	// ListByEntry returns rows referencing the journal entry with the given
	// direction, oldest first. Used to collect the comments on one entry.
	ListByEntry(ctx context.Context, entryID string, direction Direction) ([]Row, error)
}
